package category

import (
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/storefront-api/internal/api"
	"github.com/FACorreiaa/storefront-api/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	ListCategories(w http.ResponseWriter, r *http.Request)
	GetCategory(w http.ResponseWriter, r *http.Request)
	CreateCategory(w http.ResponseWriter, r *http.Request)
	UpdateCategory(w http.ResponseWriter, r *http.Request)
	DeleteCategory(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	service CategoryService
	logger  *slog.Logger
}

func NewHandlerImpl(service CategoryService, logger *slog.Logger) *HandlerImpl {
	if logger == nil {
		panic("category handler requires a logger")
	}
	return &HandlerImpl{service: service, logger: logger}
}

// ListCategories godoc
// @Summary      List categories
// @Tags         Categories
// @Produce      json
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Page size" default(20)
// @Success      200 {object} types.PaginatedResponse[types.Category]
// @Router       /categories [get]
func (h *HandlerImpl) ListCategories(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "ListCategories"))

	resp, err := h.service.ListCategories(r.Context(), api.ParsePage(r))
	if err != nil {
		api.HandleError(w, r, l, err, "Failed to list categories")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// GetCategory godoc
// @Summary      Get a category
// @Tags         Categories
// @Produce      json
// @Param        id path string true "Category ID"
// @Success      200 {object} types.Category
// @Failure      404 {object} types.Response "Category not found"
// @Router       /categories/{id} [get]
func (h *HandlerImpl) GetCategory(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "GetCategory"))

	id, err := api.ParseUUIDParam(r, "id")
	if err != nil {
		api.HandleError(w, r, l, err, "Invalid category id")
		return
	}
	c, err := h.service.GetCategory(r.Context(), id)
	if err != nil {
		api.HandleError(w, r, l, err, "Failed to fetch category")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, c)
}

// CreateCategory godoc
// @Summary      Create a category
// @Tags         Categories
// @Accept       json
// @Produce      json
// @Param        body body types.CategoryInput true "Category"
// @Success      200 {object} types.Category
// @Failure      400 {object} types.Response "Invalid input"
// @Failure      403 {object} types.Response "Admin access required"
// @Security     BearerAuth
// @Router       /categories [post]
func (h *HandlerImpl) CreateCategory(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "CreateCategory"))

	var input types.CategoryInput
	if err := api.DecodeAndValidate(w, r, &input); err != nil {
		api.HandleError(w, r, l, err, "Invalid category")
		return
	}
	c, err := h.service.CreateCategory(r.Context(), input)
	if err != nil {
		api.HandleError(w, r, l, err, "Failed to create category")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, c)
}

// UpdateCategory godoc
// @Summary      Replace a category
// @Tags         Categories
// @Accept       json
// @Produce      json
// @Param        id   path string true "Category ID"
// @Param        body body types.CategoryInput true "Category"
// @Success      200 {object} types.Category
// @Failure      404 {object} types.Response "Category not found"
// @Security     BearerAuth
// @Router       /categories/{id} [put]
func (h *HandlerImpl) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "UpdateCategory"))

	id, err := api.ParseUUIDParam(r, "id")
	if err != nil {
		api.HandleError(w, r, l, err, "Invalid category id")
		return
	}
	var input types.CategoryInput
	if err := api.DecodeAndValidate(w, r, &input); err != nil {
		api.HandleError(w, r, l, err, "Invalid category")
		return
	}
	c, err := h.service.UpdateCategory(r.Context(), id, input)
	if err != nil {
		api.HandleError(w, r, l, err, "Failed to update category")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, c)
}

// DeleteCategory godoc
// @Summary      Delete a category
// @Tags         Categories
// @Produce      json
// @Param        id path string true "Category ID"
// @Success      200 {object} types.MessageResponse
// @Failure      404 {object} types.Response "Category not found"
// @Security     BearerAuth
// @Router       /categories/{id} [delete]
func (h *HandlerImpl) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "DeleteCategory"))

	id, err := api.ParseUUIDParam(r, "id")
	if err != nil {
		api.HandleError(w, r, l, err, "Invalid category id")
		return
	}
	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		api.HandleError(w, r, l, err, "Failed to delete category")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, types.MessageResponse{Message: "Category deleted"})
}
