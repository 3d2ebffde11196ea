package domain

// Requirements maps base material id to the total quantity required
type Requirements map[int64]float64

// Add accumulates qty for the given base material
func (r Requirements) Add(baseID int64, qty float64) {
	r[baseID] += qty
}

// Merge adds every entry of other into r
func (r Requirements) Merge(other Requirements) {
	for id, qty := range other {
		r[id] += qty
	}
}

// BOMRequest is one top-level line of a calculation request
type BOMRequest struct {
	Kind     ItemKind `json:"kind"`
	ID       int64    `json:"id"`
	Quantity float64  `json:"quantity"`
}

// BOMNode is one position of an expansion tree.
// Quantity is the absolute amount needed at this position, already scaled by every ancestor.
type BOMNode struct {
	ID             int64      `json:"id"`
	Kind           ItemKind   `json:"kind"`
	Name           string     `json:"name"`
	Quantity       float64    `json:"quantity"`
	OutputQuantity int        `json:"output_quantity,omitempty"`
	Children       []*BOMNode `json:"children"`
}

// Leaves sums base-kind leaf quantities by base id
func (n *BOMNode) Leaves() Requirements {
	out := Requirements{}
	n.collectLeaves(out)
	return out
}

func (n *BOMNode) collectLeaves(acc Requirements) {
	if n == nil {
		return
	}
	if n.Kind == KindBase {
		acc.Add(n.ID, n.Quantity)
		return
	}
	for _, c := range n.Children {
		c.collectLeaves(acc)
	}
}

// Expansion is a flat aggregation plus every dangling reference that was skipped
type Expansion struct {
	Requirements Requirements `json:"requirements"`
	Unresolved   []ItemRef    `json:"unresolved,omitempty"`
}

// RequirementLine is one display row of a formatted flat result
type RequirementLine struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	UnitCost float64 `json:"unit_cost"`
	LineCost float64 `json:"line_cost"`
}

// RequirementsReport is a flat result joined with base material costs
type RequirementsReport struct {
	Requirements []RequirementLine `json:"requirements"`
	TotalCost    float64           `json:"total_cost"`
}

// TreeExpansion is an expansion tree plus every dangling reference that was omitted from it
type TreeExpansion struct {
	Root       *BOMNode  `json:"root"`
	Unresolved []ItemRef `json:"unresolved,omitempty"`
}
