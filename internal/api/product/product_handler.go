package product

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/FACorreiaa/storefront-api/internal/api"
	"github.com/FACorreiaa/storefront-api/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	ListProducts(w http.ResponseWriter, r *http.Request)
	GetProduct(w http.ResponseWriter, r *http.Request)
	CreateProduct(w http.ResponseWriter, r *http.Request)
	UpdateProduct(w http.ResponseWriter, r *http.Request)
	DeleteProduct(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	service ProductService
	logger  *slog.Logger
}

func NewHandlerImpl(service ProductService, logger *slog.Logger) *HandlerImpl {
	if logger == nil {
		panic("product handler requires a logger")
	}
	return &HandlerImpl{service: service, logger: logger}
}

// ListProducts godoc
// @Summary      List products
// @Description  search matches name and description, plus product translations in English and Arabic.
// @Tags         Products
// @Produce      json
// @Param        category_id query string false "Category ID"
// @Param        search      query string false "Case-insensitive substring"
// @Param        page        query int    false "Page number" default(1)
// @Param        limit       query int    false "Page size" default(20)
// @Success      200 {object} types.PaginatedResponse[types.Product]
// @Failure      400 {object} types.Response "Invalid category_id"
// @Router       /products [get]
func (h *HandlerImpl) ListProducts(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "ListProducts"))

	q := r.URL.Query()
	filter := types.ProductFilter{Search: q.Get("search")}
	if raw := q.Get("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			api.HandleError(w, r, l, fmt.Errorf("%w: invalid category_id %q", types.ErrValidation, raw), "Invalid category id")
			return
		}
		filter.CategoryID = &id
	}

	resp, err := h.service.ListProducts(r.Context(), filter, api.ParsePage(r))
	if err != nil {
		api.HandleError(w, r, l, err, "Failed to list products")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// GetProduct godoc
// @Summary      Get a product
// @Tags         Products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} types.Product
// @Failure      404 {object} types.Response "Product not found"
// @Router       /products/{id} [get]
func (h *HandlerImpl) GetProduct(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "GetProduct"))

	id, err := api.ParseUUIDParam(r, "id")
	if err != nil {
		api.HandleError(w, r, l, err, "Invalid product id")
		return
	}
	p, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		api.HandleError(w, r, l, err, "Failed to fetch product")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, p)
}

// CreateProduct godoc
// @Summary      Create a product
// @Tags         Products
// @Accept       json
// @Produce      json
// @Param        body body types.ProductInput true "Product"
// @Success      200 {object} types.Product
// @Failure      400 {object} types.Response "Invalid input"
// @Failure      401 {object} types.Response "Not authenticated"
// @Failure      403 {object} types.Response "Admin access required"
// @Security     BearerAuth
// @Router       /products [post]
func (h *HandlerImpl) CreateProduct(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "CreateProduct"))

	var input types.ProductInput
	if err := api.DecodeAndValidate(w, r, &input); err != nil {
		api.HandleError(w, r, l, err, "Invalid product")
		return
	}
	p, err := h.service.CreateProduct(r.Context(), input)
	if err != nil {
		api.HandleError(w, r, l, err, "Failed to create product")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, p)
}

// UpdateProduct godoc
// @Summary      Replace a product
// @Tags         Products
// @Accept       json
// @Produce      json
// @Param        id   path string true "Product ID"
// @Param        body body types.ProductInput true "Product"
// @Success      200 {object} types.Product
// @Failure      404 {object} types.Response "Product not found"
// @Security     BearerAuth
// @Router       /products/{id} [put]
func (h *HandlerImpl) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "UpdateProduct"))

	id, err := api.ParseUUIDParam(r, "id")
	if err != nil {
		api.HandleError(w, r, l, err, "Invalid product id")
		return
	}
	var input types.ProductInput
	if err := api.DecodeAndValidate(w, r, &input); err != nil {
		api.HandleError(w, r, l, err, "Invalid product")
		return
	}
	p, err := h.service.UpdateProduct(r.Context(), id, input)
	if err != nil {
		api.HandleError(w, r, l, err, "Failed to update product")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, p)
}

// DeleteProduct godoc
// @Summary      Delete a product
// @Tags         Products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} types.MessageResponse
// @Failure      404 {object} types.Response "Product not found"
// @Security     BearerAuth
// @Router       /products/{id} [delete]
func (h *HandlerImpl) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "DeleteProduct"))

	id, err := api.ParseUUIDParam(r, "id")
	if err != nil {
		api.HandleError(w, r, l, err, "Invalid product id")
		return
	}
	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		api.HandleError(w, r, l, err, "Failed to delete product")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, types.MessageResponse{Message: "Product deleted"})
}
