package handler

import (
	"net/http"

	"github.com/osse101/RecipeBOM_Go/internal/catalog"
	"github.com/osse101/RecipeBOM_Go/internal/domain"
)

// SetRecipeRequest replaces the whole ingredient list of a recipe
type SetRecipeRequest struct {
	Ingredients []catalog.IngredientInput `json:"ingredients" validate:"max=500,dive"`
}

// AddIngredientRequest appends one ingredient to a recipe
type AddIngredientRequest struct {
	catalog.IngredientInput
}

// HandleGetRecipe handles GET /recipes/{kind}/{id}
func HandleGetRecipe(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := pathKind(r, w)
		if !ok {
			return
		}
		id, ok := pathID(r, w)
		if !ok {
			return
		}
		recipe, err := svc.GetRecipe(r.Context(), kind, id)
		if err != nil {
			respondServiceError(w, r, OpGetRecipe, err)
			return
		}
		respondJSON(w, http.StatusOK, recipe)
	}
}

// HandleSetRecipe handles PUT /recipes/{kind}/{id}; the list is replaced atomically
// @Summary Replace a recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Param kind path string true "material or product"
// @Param id path int true "Item id"
// @Param request body SetRecipeRequest true "Ingredient list"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Invalid ingredient"
// @Failure 404 {object} ErrorResponse "Recipe or ingredient not found"
// @Failure 409 {object} ErrorResponse "Ingredient listed twice"
// @Router /recipes/{kind}/{id} [put]
func HandleSetRecipe(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := pathKind(r, w)
		if !ok {
			return
		}
		id, ok := pathID(r, w)
		if !ok {
			return
		}
		var req SetRecipeRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpSetRecipe); err != nil {
			return
		}
		if err := svc.SetRecipe(r.Context(), kind, id, req.Ingredients); err != nil {
			respondServiceError(w, r, OpSetRecipe, err)
			return
		}
		recipe, err := svc.GetRecipe(r.Context(), kind, id)
		if err != nil {
			respondServiceError(w, r, OpGetRecipe, err)
			return
		}
		respondJSON(w, http.StatusOK, recipe)
	}
}

// HandleAddIngredient handles POST /recipes/{kind}/{id}/ingredients
func HandleAddIngredient(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := pathKind(r, w)
		if !ok {
			return
		}
		id, ok := pathID(r, w)
		if !ok {
			return
		}
		var req AddIngredientRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpAddRequirement); err != nil {
			return
		}
		reqID, err := svc.AddRequirement(r.Context(), &domain.RecipeRequirement{
			RecipeKind:     kind,
			RecipeID:       id,
			IngredientKind: req.Kind,
			IngredientID:   req.ID,
			Quantity:       req.Quantity,
		})
		if err != nil {
			respondServiceError(w, r, OpAddRequirement, err)
			return
		}
		respondJSON(w, http.StatusCreated, CreatedResponse{ID: reqID})
	}
}

// HandleClearRecipe handles DELETE /recipes/{kind}/{id}; the item itself is kept
func HandleClearRecipe(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := pathKind(r, w)
		if !ok {
			return
		}
		id, ok := pathID(r, w)
		if !ok {
			return
		}
		if err := svc.DeleteRequirements(r.Context(), kind, id); err != nil {
			respondServiceError(w, r, OpDeleteRequirement, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgRecipeCleared})
	}
}

// HandleFindDependents handles GET /dependents/{kind}/{id}
func HandleFindDependents(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := pathKind(r, w)
		if !ok {
			return
		}
		id, ok := pathID(r, w)
		if !ok {
			return
		}
		deps, err := svc.FindDependents(r.Context(), kind, id)
		if err != nil {
			respondServiceError(w, r, OpFindDependents, err)
			return
		}
		if deps == nil {
			deps = []domain.Dependent{}
		}
		respondJSON(w, http.StatusOK, deps)
	}
}
