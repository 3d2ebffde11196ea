// Package output renders bomctl results for a terminal.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/osse101/RecipeBOM_Go/internal/domain"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")
	colorPrimary = lipgloss.Color("#7C3AED")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(colorInfo)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	primaryStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)

	headerStyle = primaryStyle.Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)

	kindStyles = map[domain.ItemKind]lipgloss.Style{
		domain.KindProduct:  primaryStyle,
		domain.KindMaterial: infoStyle,
		domain.KindBase:     lipgloss.NewStyle().Foreground(colorSuccess),
	}
)

// Printer writes styled lines to w
type Printer struct {
	w io.Writer
}

// New creates a printer over w
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.w, successStyle.Render("✓ ")+fmt.Sprintf(format, args...))
}

func (p *Printer) Warning(format string, args ...any) {
	fmt.Fprintln(p.w, warningStyle.Render("⚠ ")+fmt.Sprintf(format, args...))
}

func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.w, errorStyle.Render("✗ ")+fmt.Sprintf(format, args...))
}

func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.w, infoStyle.Render("ℹ ")+fmt.Sprintf(format, args...))
}

func (p *Printer) Muted(format string, args ...any) {
	fmt.Fprintln(p.w, mutedStyle.Render(fmt.Sprintf(format, args...)))
}

// Section prints a title underlined to its width
func (p *Printer) Section(title string) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, primaryStyle.Render(title))
	fmt.Fprintln(p.w, mutedStyle.Render(strings.Repeat("═", lipgloss.Width(title))))
}

// Quantity formats a float without trailing zeros, to at most four decimals
func Quantity(q float64) string {
	s := strconv.FormatFloat(q, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// Cost formats a monetary value with two decimals
func Cost(c float64) string {
	return strconv.FormatFloat(c, 'f', 2, 64)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...)
}

// Report prints a formatted requirements report as a table with a total row
func (p *Printer) Report(report *domain.RequirementsReport) {
	if len(report.Requirements) == 0 {
		p.Muted("No base materials required")
		return
	}

	t := newTable("ID", "Base material", "Quantity", "Unit cost", "Line cost").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 1:
				return cellStyle
			default:
				return numberStyle
			}
		})
	for _, line := range report.Requirements {
		t.Row(strconv.FormatInt(line.ID, 10), line.Name, Quantity(line.Quantity), Cost(line.UnitCost), Cost(line.LineCost))
	}
	fmt.Fprintln(p.w, t.String())
	fmt.Fprintln(p.w, primaryStyle.Render("Total cost: "+Cost(report.TotalCost)))
}

// Unresolved warns once per dangling reference skipped by an expansion
func (p *Printer) Unresolved(refs []domain.ItemRef) {
	for _, ref := range refs {
		p.Warning("%s %d no longer exists; its contribution was skipped", ref.Kind, ref.ID)
	}
}

// Tree prints an expansion tree with absolute quantities on every node
func (p *Printer) Tree(root *domain.BOMNode) {
	fmt.Fprintln(p.w, buildTree(root).String())
}

func buildTree(n *domain.BOMNode) *tree.Tree {
	t := tree.Root(nodeLabel(n)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(mutedStyle)
	for _, c := range n.Children {
		if len(c.Children) == 0 {
			t.Child(nodeLabel(c))
			continue
		}
		t.Child(buildTree(c))
	}
	return t
}

func nodeLabel(n *domain.BOMNode) string {
	label := fmt.Sprintf("%s × %s", n.Name, Quantity(n.Quantity))
	style, ok := kindStyles[n.Kind]
	if !ok {
		style = mutedStyle
	}
	suffix := mutedStyle.Render(fmt.Sprintf(" [%s #%d]", n.Kind, n.ID))
	return style.Render(label) + suffix
}

// Stats prints catalog row counts
func (p *Printer) Stats(stats *domain.CatalogStats) {
	t := newTable("Table", "Rows").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 1:
				return numberStyle
			default:
				return cellStyle
			}
		}).
		Row("Base materials", strconv.Itoa(stats.BaseMaterials)).
		Row("Materials", strconv.Itoa(stats.Materials)).
		Row("Products", strconv.Itoa(stats.Products)).
		Row("Recipe requirements", strconv.Itoa(stats.Requirements))
	fmt.Fprintln(p.w, t.String())
}

// Search prints name matches grouped by kind
func (p *Printer) Search(res *domain.SearchResult) {
	total := len(res.BaseMaterials) + len(res.Materials) + len(res.Products)
	if total == 0 {
		p.Muted("No matches")
		return
	}

	t := newTable("Kind", "ID", "Name").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, m := range res.BaseMaterials {
		t.Row(string(domain.KindBase), strconv.FormatInt(m.ID, 10), m.Name)
	}
	for _, m := range res.Materials {
		t.Row(string(domain.KindMaterial), strconv.FormatInt(m.ID, 10), m.Name)
	}
	for _, m := range res.Products {
		t.Row(string(domain.KindProduct), strconv.FormatInt(m.ID, 10), m.Name)
	}
	fmt.Fprintln(p.w, t.String())
	p.Muted("%d match(es)", total)
}
