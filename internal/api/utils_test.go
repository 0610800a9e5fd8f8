package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/storefront-api/internal/types"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: name is required", types.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: email already registered", types.ErrConflict), http.StatusBadRequest},
		{types.ErrInvalidCredentials, http.StatusUnauthorized},
		{fmt.Errorf("refresh: %w", types.ErrRevokedToken), http.StatusUnauthorized},
		{types.ErrWrongTokenType, http.StatusUnauthorized},
		{types.ErrExpiredToken, http.StatusUnauthorized},
		{fmt.Errorf("%w: access denied", types.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("%w: product not found", types.ErrNotFound), http.StatusNotFound},
		{types.ErrUserNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: ftp down", types.ErrUpstream), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusForError(tt.err))
		})
	}
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "Product not found",
		publicMessage(fmt.Errorf("failed to get product: %w", fmt.Errorf("%w: product not found", types.ErrNotFound))))
	assert.Equal(t, "Invalid email or password",
		publicMessage(fmt.Errorf("login: %w", types.ErrInvalidCredentials)))
	assert.Equal(t, "Invalid token",
		publicMessage(fmt.Errorf("%w: token is malformed: could not base64 decode header", types.ErrInvalidToken)))
	assert.Equal(t, "Category does not exist: 123",
		publicMessage(fmt.Errorf("%w: category does not exist: 123", types.ErrValidation)))
	assert.Equal(t, "Invalid request: name is required",
		publicMessage(fmt.Errorf("create: %w", &ValidationErrors{Fields: []string{"name is required"}})))
}

func TestHandleError_HidesInternalDetail(t *testing.T) {
	l := slog.New(slog.NewTextHandler(io.Discard, nil))

	rec := httptest.NewRecorder()
	HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), l,
		fmt.Errorf("query: %w", errors.New("connection refused")), "Failed to list products")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Failed to list products", body["error"])
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

type sample struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gt=0"`
	Email string  `json:"email,omitempty" validate:"omitempty,email"`
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"ok", `{"name":"Tea","price":2.5}`, ""},
		{"missing required", `{"price":2.5}`, "name is required"},
		{"non positive", `{"name":"Tea","price":0}`, "price must be greater than 0"},
		{"bad email", `{"name":"Tea","price":1,"email":"nope"}`, "email must be a valid email address"},
		{"unknown field", `{"name":"Tea","price":1,"colour":"red"}`, "unknown key"},
		{"malformed", `{"name":`, "badly-formed"},
		{"empty", ``, "must not be empty"},
		{"two values", `{"name":"Tea","price":1}{}`, "single JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst sample
			err := DecodeAndValidate(httptest.NewRecorder(), req, &dst)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "Tea", dst.Name)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrValidation)
			assert.Contains(t, strings.ToLower(err.Error()), strings.ToLower(tt.wantErr))
		})
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		query string
		want  types.Page
	}{
		{"", types.Page{Page: 1, Limit: types.DefaultPageLimit}},
		{"page=3&limit=10", types.Page{Page: 3, Limit: 10}},
		{"page=0&limit=-4", types.Page{Page: 1, Limit: types.DefaultPageLimit}},
		{"page=abc&limit=xyz", types.Page{Page: 1, Limit: types.DefaultPageLimit}},
		{"limit=1000", types.Page{Page: 1, Limit: types.MaxPageLimit}},
		{"page=9223372036854775807&limit=20", types.Page{Page: types.MaxPageOffset/20 + 1, Limit: 20}},
		{"page=99999999999999999999", types.Page{Page: 1, Limit: types.DefaultPageLimit}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/products?"+tt.query, nil)
			got := ParsePage(req)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got.Offset(), 0)
		})
	}
}

func TestParseUUIDParam(t *testing.T) {
	id := uuid.New()
	withParam := func(v string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", v)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	got, err := ParseUUIDParam(withParam(id.String()), "id")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseUUIDParam(withParam("42"), "id")
	assert.ErrorIs(t, err, types.ErrValidation)
}
