package theme

import (
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/storefront-api/internal/api"
	"github.com/FACorreiaa/storefront-api/internal/types"
)

type HandlerImpl struct {
	service ThemeService
	logger  *slog.Logger
}

func NewHandlerImpl(service ThemeService, logger *slog.Logger) *HandlerImpl {
	if logger == nil {
		panic("theme handler requires a logger")
	}
	return &HandlerImpl{service: service, logger: logger}
}

// GetTheme godoc
// @Summary      Storefront theme
// @Tags         Theme
// @Produce      json
// @Success      200 {object} types.Theme
// @Router       /theme [get]
func (h *HandlerImpl) GetTheme(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "GetTheme"))

	t, err := h.service.GetTheme(r.Context())
	if err != nil {
		api.HandleError(w, r, l, err, "Failed to load theme")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, t)
}

// UpdateTheme godoc
// @Summary      Replace the storefront theme
// @Tags         Theme
// @Accept       json
// @Produce      json
// @Param        body body types.Theme true "Theme"
// @Success      200 {object} types.Theme
// @Failure      400 {object} types.Response "Invalid input"
// @Security     BearerAuth
// @Router       /theme [put]
func (h *HandlerImpl) UpdateTheme(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "UpdateTheme"))

	var t types.Theme
	if err := api.DecodeAndValidate(w, r, &t); err != nil {
		api.HandleError(w, r, l, err, "Invalid theme")
		return
	}
	saved, err := h.service.UpdateTheme(r.Context(), t)
	if err != nil {
		api.HandleError(w, r, l, err, "Failed to save theme")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, saved)
}
