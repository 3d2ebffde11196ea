package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/osse101/RecipeBOM_Go/internal/bom"
	"github.com/osse101/RecipeBOM_Go/internal/domain"
)

// CalculateRequest asks for the base materials of one item, addressed by id or by name
type CalculateRequest struct {
	Kind     domain.ItemKind `json:"kind" validate:"required,recipekind"`
	ID       int64           `json:"id" validate:"required_without=Name,omitempty,gt=0"`
	Name     string          `json:"name" validate:"required_without=ID,omitempty,max=200"`
	Quantity float64         `json:"quantity" validate:"gt=0"`
}

// BatchItem is one line of a shopping list
type BatchItem struct {
	Kind     domain.ItemKind `json:"kind" validate:"required,recipekind"`
	ID       int64           `json:"id" validate:"required,gt=0"`
	Quantity float64         `json:"quantity" validate:"gt=0"`
}

// BatchRequest sums the requirements of several items
type BatchRequest struct {
	Items []BatchItem `json:"items" validate:"required,min=1,max=500,dive"`
}

// RequirementsResponse is a formatted report plus one warning per skipped ingredient
type RequirementsResponse struct {
	domain.RequirementsReport
	Warnings []string `json:"warnings,omitempty"`
}

// TreeResponse is an expansion tree plus one warning per skipped ingredient
type TreeResponse struct {
	Root     *domain.BOMNode `json:"root"`
	Warnings []string        `json:"warnings,omitempty"`
}

// HandleCalculate handles POST /bom/calculate
// @Summary Calculate base material requirements
// @Description Expand one material or product, addressed by id or exact name, down to base materials
// @Tags bom
// @Accept json
// @Produce json
// @Param request body CalculateRequest true "Item and quantity"
// @Success 200 {object} RequirementsResponse "Requirements with costs"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Item not found"
// @Failure 422 {object} ErrorResponse "Cyclic or too deep recipe"
// @Router /bom/calculate [post]
func HandleCalculate(engine *bom.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CalculateRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpCalculate); err != nil {
			return
		}

		var (
			exp *domain.Expansion
			err error
		)
		if req.ID > 0 {
			exp, err = engine.Expand(r.Context(), req.Kind, req.ID, req.Quantity)
		} else {
			exp, err = engine.ExpandByName(r.Context(), req.Kind, req.Name, req.Quantity)
		}
		if err != nil {
			respondServiceError(w, r, OpCalculate, err)
			return
		}
		respondReport(w, r, engine, OpCalculate, exp)
	}
}

// HandleBatch handles POST /bom/batch
// @Summary Calculate requirements for a shopping list
// @Description Sum the base materials of several items; shared ingredients are aggregated
// @Tags bom
// @Accept json
// @Produce json
// @Param request body BatchRequest true "Items"
// @Success 200 {object} RequirementsResponse "Aggregated requirements with costs"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "An item was not found"
// @Router /bom/batch [post]
func HandleBatch(engine *bom.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BatchRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpBatch); err != nil {
			return
		}

		reqs := make([]domain.BOMRequest, len(req.Items))
		for i, it := range req.Items {
			reqs[i] = domain.BOMRequest{Kind: it.Kind, ID: it.ID, Quantity: it.Quantity}
		}
		exp, err := engine.ExpandMultiple(r.Context(), reqs)
		if err != nil {
			respondServiceError(w, r, OpBatch, err)
			return
		}
		respondReport(w, r, engine, OpBatch, exp)
	}
}

// HandleTree handles GET /bom/tree/{kind}/{id}?quantity=
// @Summary Get the recipe tree of an item
// @Tags bom
// @Produce json
// @Param kind path string true "material or product"
// @Param id path int true "Item id"
// @Param quantity query number false "Root quantity (default 1)"
// @Success 200 {object} TreeResponse "Tree with absolute quantities"
// @Failure 404 {object} ErrorResponse "Item not found"
// @Router /bom/tree/{kind}/{id} [get]
func HandleTree(engine *bom.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := pathKind(r, w)
		if !ok {
			return
		}
		id, ok := pathID(r, w)
		if !ok {
			return
		}
		quantity, err := strconv.ParseFloat(GetOptionalQueryParam(r, "quantity", "1"), 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidQuantityParam)
			return
		}

		tree, err := engine.ExpandTree(r.Context(), kind, id, quantity)
		if err != nil {
			respondServiceError(w, r, OpTree, err)
			return
		}
		respondJSON(w, http.StatusOK, TreeResponse{Root: tree.Root, Warnings: warnings(tree.Unresolved)})
	}
}

func respondReport(w http.ResponseWriter, r *http.Request, engine *bom.Engine, op string, exp *domain.Expansion) {
	report, err := engine.FormatRequirementsForDisplay(r.Context(), exp.Requirements)
	if err != nil {
		respondServiceError(w, r, op, err)
		return
	}
	respondJSON(w, http.StatusOK, RequirementsResponse{RequirementsReport: *report, Warnings: warnings(exp.Unresolved)})
}

func warnings(refs []domain.ItemRef) []string {
	if len(refs) == 0 {
		return nil
	}
	out := make([]string, len(refs))
	for i, ref := range refs {
		out[i] = fmt.Sprintf(MsgUnresolvedFormat, ref.Kind, ref.ID)
	}
	return out
}
