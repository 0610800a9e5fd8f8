package analytics

import (
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/storefront-api/internal/api"
)

type HandlerImpl struct {
	service AnalyticsService
	logger  *slog.Logger
}

func NewHandlerImpl(service AnalyticsService, logger *slog.Logger) *HandlerImpl {
	if logger == nil {
		panic("analytics handler requires a logger")
	}
	return &HandlerImpl{service: service, logger: logger}
}

// GetAnalytics godoc
// @Summary      Store dashboard figures
// @Tags         Analytics
// @Produce      json
// @Success      200 {object} types.Analytics
// @Failure      403 {object} types.Response "Admin access required"
// @Security     BearerAuth
// @Router       /analytics [get]
func (h *HandlerImpl) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "GetAnalytics"))

	result, err := h.service.GetAnalytics(r.Context())
	if err != nil {
		api.HandleError(w, r, l, err, "Failed to compute analytics")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, result)
}
