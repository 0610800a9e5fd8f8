package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/FACorreiaa/storefront-api/internal/api"
	"github.com/FACorreiaa/storefront-api/internal/types"
)

// Storer is satisfied by *Gateway.
type Storer interface {
	Store(ctx context.Context, key string, data []byte) (string, error)
}

type HandlerImpl struct {
	store   Storer
	local   *LocalTransport
	maxSize int64
	logger  *slog.Logger
}

func NewHandlerImpl(store Storer, local *LocalTransport, maxSize int64, logger *slog.Logger) *HandlerImpl {
	if logger == nil {
		panic("upload handler requires a logger")
	}
	return &HandlerImpl{store: store, local: local, maxSize: maxSize, logger: logger}
}

// Upload godoc
// @Summary      Upload a file
// @Description  Stores the file on the primary transport, falling back to local storage.
// @Tags         Uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file     formData file   true  "File"
// @Param        category formData string false "Folder to file the upload under"
// @Success      200 {object} types.UploadResponse
// @Failure      400 {object} types.Response "Invalid file"
// @Failure      500 {object} types.Response "Upload failed"
// @Security     BearerAuth
// @Router       /upload [post]
func (h *HandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "Upload"))

	// Multipart overhead gets a small allowance on top of the file limit.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+1<<20)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		api.HandleError(w, r, l, fmt.Errorf("%w: invalid multipart form", types.ErrValidation), "Invalid file")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil || header.Filename == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxSize+1))
	if err != nil {
		api.HandleError(w, r, l, err, "Failed to read upload")
		return
	}
	if int64(len(data)) > h.maxSize {
		api.ErrorResponse(w, r, http.StatusBadRequest, fmt.Sprintf("File exceeds %d bytes", h.maxSize))
		return
	}

	key := ObjectKey(header.Filename, r.FormValue("category"))
	url, err := h.store.Store(r.Context(), key, data)
	if err != nil {
		api.HandleError(w, r, l, err, "Upload failed")
		return
	}
	l.InfoContext(r.Context(), "File uploaded", slog.String("key", key), slog.Int("size", len(data)))
	api.WriteJSONResponse(w, r, http.StatusOK, types.UploadResponse{URL: url})
}

// ServeUpload godoc
// @Summary      Fetch a locally stored upload
// @Tags         Uploads
// @Produce      octet-stream
// @Param        filename path string true "Stored name"
// @Success      200 {file} file
// @Failure      404 {object} types.Response "File not found"
// @Router       /uploads/{filename} [get]
func (h *HandlerImpl) ServeUpload(w http.ResponseWriter, r *http.Request) {
	full, err := h.local.Resolve(chi.URLParam(r, "*"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusNotFound, "File not found")
		return
	}

	f, err := os.Open(full)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			h.logger.WarnContext(r.Context(), "Failed to open upload", slog.Any("error", err))
		}
		api.ErrorResponse(w, r, http.StatusNotFound, "File not found")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		api.ErrorResponse(w, r, http.StatusNotFound, "File not found")
		return
	}

	// Lift the server write timeout; the download lasts as long as the client keeps reading.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		h.logger.DebugContext(r.Context(), "Could not clear write deadline", slog.Any("error", err))
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
