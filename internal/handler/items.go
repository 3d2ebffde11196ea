package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/osse101/RecipeBOM_Go/internal/catalog"
	"github.com/osse101/RecipeBOM_Go/internal/domain"
)

// BaseMaterialRequest is the body for creating or updating a base material
type BaseMaterialRequest struct {
	Name        string  `json:"name" validate:"required,max=200,excludesall=\x00\n\r\t"`
	Description string  `json:"description" validate:"max=2000"`
	UnitCost    float64 `json:"unit_cost" validate:"gte=0"`
}

func (req BaseMaterialRequest) toDomain(id int64) *domain.BaseMaterial {
	return &domain.BaseMaterial{ID: id, Name: req.Name, Description: req.Description, UnitCost: req.UnitCost}
}

// CraftableRequest is the body for creating or updating a material or product.
// OutputQuantity 0 is treated as 1.
type CraftableRequest struct {
	Name           string  `json:"name" validate:"required,max=200,excludesall=\x00\n\r\t"`
	Description    string  `json:"description" validate:"max=2000"`
	OutputQuantity int     `json:"output_quantity" validate:"gte=0"`
	UnitPrice      float64 `json:"unit_price" validate:"gte=0"`
}

func (req CraftableRequest) toMaterial(id int64) *domain.Material {
	return &domain.Material{ID: id, Name: req.Name, Description: req.Description, OutputQuantity: req.OutputQuantity, UnitPrice: req.UnitPrice}
}

func (req CraftableRequest) toProduct(id int64) *domain.Product {
	return &domain.Product{ID: id, Name: req.Name, Description: req.Description, OutputQuantity: req.OutputQuantity, UnitPrice: req.UnitPrice}
}

// HandleCreateBaseMaterial handles POST /base-materials
func HandleCreateBaseMaterial(svc catalog.Service) http.HandlerFunc {
	return handleCreate(BaseMaterialRequest.toDomain, svc.AddBaseMaterial)
}

// HandleCreateMaterial handles POST /materials
func HandleCreateMaterial(svc catalog.Service) http.HandlerFunc {
	return handleCreate(CraftableRequest.toMaterial, svc.AddMaterial)
}

// HandleCreateProduct handles POST /products
func HandleCreateProduct(svc catalog.Service) http.HandlerFunc {
	return handleCreate(CraftableRequest.toProduct, svc.AddProduct)
}

// HandleListBaseMaterials handles GET /base-materials; ?name= returns the single exact match
func HandleListBaseMaterials(svc catalog.Service) http.HandlerFunc {
	return handleList(svc.ListBaseMaterials, svc.GetBaseMaterialByName)
}

// HandleListMaterials handles GET /materials
func HandleListMaterials(svc catalog.Service) http.HandlerFunc {
	return handleList(svc.ListMaterials, svc.GetMaterialByName)
}

// HandleListProducts handles GET /products
func HandleListProducts(svc catalog.Service) http.HandlerFunc {
	return handleList(svc.ListProducts, svc.GetProductByName)
}

// HandleGetBaseMaterial handles GET /base-materials/{id}
func HandleGetBaseMaterial(svc catalog.Service) http.HandlerFunc {
	return handleGet(svc.GetBaseMaterial)
}

// HandleGetMaterial handles GET /materials/{id}
func HandleGetMaterial(svc catalog.Service) http.HandlerFunc {
	return handleGet(svc.GetMaterial)
}

// HandleGetProduct handles GET /products/{id}
func HandleGetProduct(svc catalog.Service) http.HandlerFunc {
	return handleGet(svc.GetProduct)
}

// HandleUpdateBaseMaterial handles PUT /base-materials/{id}
func HandleUpdateBaseMaterial(svc catalog.Service) http.HandlerFunc {
	return handleUpdate(BaseMaterialRequest.toDomain, svc.UpdateBaseMaterial, svc.GetBaseMaterial)
}

// HandleUpdateMaterial handles PUT /materials/{id}
func HandleUpdateMaterial(svc catalog.Service) http.HandlerFunc {
	return handleUpdate(CraftableRequest.toMaterial, svc.UpdateMaterial, svc.GetMaterial)
}

// HandleUpdateProduct handles PUT /products/{id}
func HandleUpdateProduct(svc catalog.Service) http.HandlerFunc {
	return handleUpdate(CraftableRequest.toProduct, svc.UpdateProduct, svc.GetProduct)
}

// HandleDeleteBaseMaterial handles DELETE /base-materials/{id}.
// Recipes that still use it are listed in the response and left dangling.
func HandleDeleteBaseMaterial(svc catalog.Service) http.HandlerFunc {
	return handleDelete(svc.DeleteBaseMaterial)
}

// HandleDeleteMaterial handles DELETE /materials/{id}
func HandleDeleteMaterial(svc catalog.Service) http.HandlerFunc {
	return handleDelete(svc.DeleteMaterial)
}

// HandleDeleteProduct handles DELETE /products/{id}
func HandleDeleteProduct(svc catalog.Service) http.HandlerFunc {
	return handleDelete(svc.DeleteProduct)
}

func handleCreate[REQ any, T any](toItem func(REQ, int64) *T, add func(context.Context, *T) (int64, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req REQ
		if err := DecodeAndValidateRequest(r, w, &req, OpCreateItem); err != nil {
			return
		}
		id, err := add(r.Context(), toItem(req, 0))
		if err != nil {
			respondServiceError(w, r, OpCreateItem, err)
			return
		}
		respondJSON(w, http.StatusCreated, CreatedResponse{ID: id})
	}
}

func handleList[T any](list func(context.Context) ([]T, error), byName func(context.Context, string) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if name := r.URL.Query().Get("name"); name != "" {
			item, err := byName(r.Context(), name)
			if err != nil {
				respondServiceError(w, r, OpGetItem, err)
				return
			}
			respondJSON(w, http.StatusOK, item)
			return
		}
		items, err := list(r.Context())
		if err != nil {
			respondServiceError(w, r, OpListItems, err)
			return
		}
		if items == nil {
			items = []T{}
		}
		respondJSON(w, http.StatusOK, items)
	}
}

func handleGet[T any](get func(context.Context, int64) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, w)
		if !ok {
			return
		}
		item, err := get(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, OpGetItem, err)
			return
		}
		respondJSON(w, http.StatusOK, item)
	}
}

func handleUpdate[REQ any, T any](toItem func(REQ, int64) *T, update func(context.Context, *T) error, get func(context.Context, int64) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, w)
		if !ok {
			return
		}
		var req REQ
		if err := DecodeAndValidateRequest(r, w, &req, OpUpdateItem); err != nil {
			return
		}
		if err := update(r.Context(), toItem(req, id)); err != nil {
			respondServiceError(w, r, OpUpdateItem, err)
			return
		}
		item, err := get(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, OpGetItem, err)
			return
		}
		respondJSON(w, http.StatusOK, item)
	}
}

func handleDelete(del func(context.Context, int64) ([]domain.Dependent, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, w)
		if !ok {
			return
		}
		deps, err := del(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, OpDeleteItem, err)
			return
		}
		resp := DeleteResponse{Message: MsgItemDeleted, Dependents: deps}
		if len(deps) > 0 {
			resp.Message = fmt.Sprintf(MsgDanglingWarning, len(deps))
		}
		respondJSON(w, http.StatusOK, resp)
	}
}
