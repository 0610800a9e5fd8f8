package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/FACorreiaa/storefront-api/internal/types"
)

const maxJSONBodyBytes = 1_048_576

// ErrorResponse writes the standard JSON error envelope including the request id.
func ErrorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	WriteJSONResponse(w, r, status, map[string]interface{}{
		"success":    false,
		"error":      message,
		"request_id": middleware.GetReqID(r.Context()),
	})
}

// WriteJSONResponse encodes data to JSON and writes the status and body.
func WriteJSONResponse(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}

	js, err := json.Marshal(data)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to marshal JSON response",
			slog.Any("error", err),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(js); err != nil {
		slog.ErrorContext(r.Context(), "Failed to write response body",
			slog.Any("error", err),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	}
}

// DecodeJSONBody reads a single JSON value of at most 1 MiB into dst, rejecting unknown fields.
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)

		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")

		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q (wanted %s)", unmarshalTypeError.Field, unmarshalTypeError.Type)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)

		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")

		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
			return fmt.Errorf("body contains unknown key %q", fieldName)

		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)

		case errors.As(err, &invalidUnmarshalError):
			panic(fmt.Errorf("developer error: invalid argument passed to json.Unmarshal: %w", err))

		default:
			return fmt.Errorf("error decoding JSON body: %w", err)
		}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}

// DecodeAndValidate decodes the body and runs the struct validation tags.
// Both failure kinds wrap types.ErrValidation.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if err := DecodeJSONBody(w, r, dst); err != nil {
		return fmt.Errorf("%w: %s", types.ErrValidation, err.Error())
	}
	return ValidateStruct(dst)
}

// StatusForError maps domain errors onto HTTP status codes.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, types.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrInvalidCredentials),
		errors.Is(err, types.ErrInvalidToken),
		errors.Is(err, types.ErrExpiredToken),
		errors.Is(err, types.ErrWrongTokenType),
		errors.Is(err, types.ErrRevokedToken),
		errors.Is(err, types.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, types.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, types.ErrNotFound), errors.Is(err, types.ErrUserNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// HandleError logs err and writes it with the mapped status. Internal failures get a generic message.
func HandleError(w http.ResponseWriter, r *http.Request, l *slog.Logger, err error, fallback string) {
	status := StatusForError(err)
	if status >= http.StatusInternalServerError {
		l.ErrorContext(r.Context(), fallback, slog.Any("error", err))
		ErrorResponse(w, r, status, fallback)
		return
	}
	l.WarnContext(r.Context(), fallback, slog.Any("error", err))
	ErrorResponse(w, r, status, publicMessage(err))
}

// publicSentinels are reported with their own wording whatever detail they were wrapped with.
var publicSentinels = []error{
	types.ErrInvalidCredentials,
	types.ErrExpiredToken,
	types.ErrInvalidToken,
	types.ErrWrongTokenType,
	types.ErrRevokedToken,
	types.ErrUserNotFound,
	types.ErrUnauthenticated,
}

func publicMessage(err error) string {
	var ve *ValidationErrors
	if errors.As(err, &ve) {
		return ve.Error()
	}
	for _, sentinel := range publicSentinels {
		if errors.Is(err, sentinel) {
			return capitalize(sentinel.Error())
		}
	}

	msg := err.Error()
	if errors.Is(err, types.ErrValidation) {
		prefix := types.ErrValidation.Error() + ": "
		if i := strings.Index(msg, prefix); i >= 0 {
			msg = msg[i+len(prefix):]
		}
		return capitalize(msg)
	}
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		msg = msg[i+2:]
	}
	return capitalize(msg)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseUUIDParam reads a chi URL parameter as a UUID.
func ParseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s %q", types.ErrValidation, name, raw)
	}
	return id, nil
}

// ParsePage reads page and limit query parameters. Invalid values fall back to the defaults.
func ParsePage(r *http.Request) types.Page {
	q := r.URL.Query()
	page := 1
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		page = v
	}
	limit := types.DefaultPageLimit
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > types.MaxPageLimit {
		limit = types.MaxPageLimit
	}
	if maxPage := types.MaxPageOffset/limit + 1; page > maxPage {
		page = maxPage
	}
	return types.Page{Page: page, Limit: limit}
}
