package user

import (
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/storefront-api/internal/api"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	ListUsers(w http.ResponseWriter, r *http.Request)
	GetUser(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	userService UserService
	logger      *slog.Logger
}

func NewHandlerImpl(userService UserService, logger *slog.Logger) *HandlerImpl {
	if logger == nil {
		panic("user handler requires a logger")
	}
	return &HandlerImpl{userService: userService, logger: logger}
}

// ListUsers godoc
// @Summary      List users
// @Tags         Users
// @Produce      json
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Page size" default(20)
// @Success      200 {object} types.PaginatedResponse[types.User]
// @Failure      403 {object} types.Response "Admin access required"
// @Security     BearerAuth
// @Router       /users [get]
func (h *HandlerImpl) ListUsers(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "ListUsers"))

	resp, err := h.userService.ListUsers(r.Context(), api.ParsePage(r))
	if err != nil {
		api.HandleError(w, r, l, err, "Failed to list users")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// GetUser godoc
// @Summary      Get a user
// @Tags         Users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} types.User
// @Failure      404 {object} types.Response "User not found"
// @Security     BearerAuth
// @Router       /users/{id} [get]
func (h *HandlerImpl) GetUser(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "GetUser"))
	id, err := api.ParseUUIDParam(r, "id")
	if err != nil {
		api.HandleError(w, r, l, err, "Invalid user id")
		return
	}

	u, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		api.HandleError(w, r, l, err, "Failed to fetch user")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, u)
}
