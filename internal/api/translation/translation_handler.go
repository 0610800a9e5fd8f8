package translation

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FACorreiaa/storefront-api/internal/api"
	"github.com/FACorreiaa/storefront-api/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	GetTranslations(w http.ResponseWriter, r *http.Request)
	UpsertTranslation(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	service TranslationService
	logger  *slog.Logger
}

func NewHandlerImpl(service TranslationService, logger *slog.Logger) *HandlerImpl {
	if logger == nil {
		panic("translation handler requires a logger")
	}
	return &HandlerImpl{service: service, logger: logger}
}

// GetTranslations godoc
// @Summary      Translation dictionary for a language
// @Tags         Translations
// @Produce      json
// @Param        lang   path  string true  "Language" Enums(en, ar)
// @Param        ref_id query string false "Only entries tied to this record"
// @Success      200 {object} map[string]string
// @Failure      400 {object} types.Response "Unsupported language"
// @Router       /translations/{lang} [get]
func (h *HandlerImpl) GetTranslations(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "GetTranslations"))

	lang := types.Language(chi.URLParam(r, "lang"))
	if !lang.Valid() {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Unsupported language")
		return
	}

	dict, err := h.service.Dictionary(r.Context(), lang, r.URL.Query().Get("ref_id"))
	if err != nil {
		api.HandleError(w, r, l, err, "Failed to load translations")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, dict)
}

// UpsertTranslation godoc
// @Summary      Create or replace a translation entry
// @Tags         Translations
// @Accept       json
// @Produce      json
// @Param        body body types.Translation true "Entry keyed by key"
// @Success      200 {object} types.MessageResponse
// @Failure      400 {object} types.Response "Invalid input"
// @Security     BearerAuth
// @Router       /translations [post]
func (h *HandlerImpl) UpsertTranslation(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "UpsertTranslation"))

	var entry types.Translation
	if err := api.DecodeAndValidate(w, r, &entry); err != nil {
		api.HandleError(w, r, l, err, "Invalid translation")
		return
	}
	if err := h.service.Upsert(r.Context(), entry); err != nil {
		api.HandleError(w, r, l, err, "Failed to save translation")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, types.MessageResponse{Message: "OK"})
}
