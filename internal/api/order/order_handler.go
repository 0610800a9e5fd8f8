package order

import (
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/storefront-api/internal/api"
	"github.com/FACorreiaa/storefront-api/internal/api/auth"
	"github.com/FACorreiaa/storefront-api/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	ListOrders(w http.ResponseWriter, r *http.Request)
	GetOrder(w http.ResponseWriter, r *http.Request)
	CreateOrder(w http.ResponseWriter, r *http.Request)
	UpdateOrderStatus(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	service OrderService
	logger  *slog.Logger
}

func NewHandlerImpl(service OrderService, logger *slog.Logger) *HandlerImpl {
	if logger == nil {
		panic("order handler requires a logger")
	}
	return &HandlerImpl{service: service, logger: logger}
}

func (h *HandlerImpl) actor(w http.ResponseWriter, r *http.Request) (*types.User, bool) {
	user, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Not authenticated")
		return nil, false
	}
	return user, true
}

// ListOrders godoc
// @Summary      List orders
// @Description  Admins see every order, customers only their own. Newest first.
// @Tags         Orders
// @Produce      json
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Page size" default(20)
// @Success      200 {object} types.PaginatedResponse[types.Order]
// @Failure      401 {object} types.Response
// @Security     BearerAuth
// @Router       /orders [get]
func (h *HandlerImpl) ListOrders(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "ListOrders"))
	user, ok := h.actor(w, r)
	if !ok {
		return
	}

	resp, err := h.service.ListOrders(r.Context(), user, api.ParsePage(r))
	if err != nil {
		api.HandleError(w, r, l, err, "Failed to list orders")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// GetOrder godoc
// @Summary      Get an order
// @Tags         Orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} types.Order
// @Failure      403 {object} types.Response "Access denied"
// @Failure      404 {object} types.Response "Order not found"
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *HandlerImpl) GetOrder(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "GetOrder"))
	user, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, err := api.ParseUUIDParam(r, "id")
	if err != nil {
		api.HandleError(w, r, l, err, "Invalid order id")
		return
	}

	o, err := h.service.GetOrder(r.Context(), user, id)
	if err != nil {
		api.HandleError(w, r, l, err, "Failed to fetch order")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, o)
}

// CreateOrder godoc
// @Summary      Place an order
// @Tags         Orders
// @Accept       json
// @Produce      json
// @Param        body body types.CreateOrderRequest true "Order"
// @Success      200 {object} types.Order
// @Failure      400 {object} types.Response "Invalid input"
// @Security     BearerAuth
// @Router       /orders [post]
func (h *HandlerImpl) CreateOrder(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "CreateOrder"))
	user, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req types.CreateOrderRequest
	if err := api.DecodeAndValidate(w, r, &req); err != nil {
		api.HandleError(w, r, l, err, "Invalid order")
		return
	}
	o, err := h.service.CreateOrder(r.Context(), user, req)
	if err != nil {
		api.HandleError(w, r, l, err, "Failed to create order")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, o)
}

// UpdateOrderStatus godoc
// @Summary      Change an order's status
// @Tags         Orders
// @Accept       json
// @Produce      json
// @Param        id   path string                         true "Order ID"
// @Param        body body types.UpdateOrderStatusRequest true "New status"
// @Success      200 {object} types.Order
// @Failure      400 {object} types.Response "Invalid status"
// @Failure      404 {object} types.Response "Order not found"
// @Security     BearerAuth
// @Router       /orders/{id}/status [put]
func (h *HandlerImpl) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "UpdateOrderStatus"))
	id, err := api.ParseUUIDParam(r, "id")
	if err != nil {
		api.HandleError(w, r, l, err, "Invalid order id")
		return
	}

	var req types.UpdateOrderStatusRequest
	if err := api.DecodeAndValidate(w, r, &req); err != nil {
		api.HandleError(w, r, l, err, "Invalid status")
		return
	}
	o, err := h.service.UpdateOrderStatus(r.Context(), id, req.Status)
	if err != nil {
		api.HandleError(w, r, l, err, "Failed to update order")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, o)
}
