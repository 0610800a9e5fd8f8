package partner

import (
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/storefront-api/internal/api"
	"github.com/FACorreiaa/storefront-api/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	ListPartners(w http.ResponseWriter, r *http.Request)
	CreatePartner(w http.ResponseWriter, r *http.Request)
	DeletePartner(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	service PartnerService
	logger  *slog.Logger
}

func NewHandlerImpl(service PartnerService, logger *slog.Logger) *HandlerImpl {
	if logger == nil {
		panic("partner handler requires a logger")
	}
	return &HandlerImpl{service: service, logger: logger}
}

// ListPartners godoc
// @Summary      List partner logos
// @Tags         Partners
// @Produce      json
// @Success      200 {array} types.Partner
// @Router       /partners [get]
func (h *HandlerImpl) ListPartners(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "ListPartners"))

	partners, err := h.service.ListPartners(r.Context())
	if err != nil {
		api.HandleError(w, r, l, err, "Failed to list partners")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, partners)
}

// CreatePartner godoc
// @Summary      Add a partner
// @Tags         Partners
// @Accept       json
// @Produce      json
// @Param        body body types.PartnerInput true "Partner"
// @Success      200 {object} types.Partner
// @Failure      400 {object} types.Response "Invalid input"
// @Security     BearerAuth
// @Router       /partners [post]
func (h *HandlerImpl) CreatePartner(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "CreatePartner"))

	var input types.PartnerInput
	if err := api.DecodeAndValidate(w, r, &input); err != nil {
		api.HandleError(w, r, l, err, "Invalid partner")
		return
	}
	p, err := h.service.CreatePartner(r.Context(), input)
	if err != nil {
		api.HandleError(w, r, l, err, "Failed to create partner")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, p)
}

// DeletePartner godoc
// @Summary      Remove a partner
// @Tags         Partners
// @Produce      json
// @Param        id path string true "Partner ID"
// @Success      200 {object} types.MessageResponse
// @Failure      404 {object} types.Response "Partner not found"
// @Security     BearerAuth
// @Router       /partners/{id} [delete]
func (h *HandlerImpl) DeletePartner(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "DeletePartner"))
	id, err := api.ParseUUIDParam(r, "id")
	if err != nil {
		api.HandleError(w, r, l, err, "Invalid partner id")
		return
	}
	if err := h.service.DeletePartner(r.Context(), id); err != nil {
		api.HandleError(w, r, l, err, "Failed to delete partner")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, types.MessageResponse{Message: "Partner deleted"})
}
