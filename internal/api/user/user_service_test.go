package user

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/storefront-api/internal/types"
)

// MockUserRepo is a mock implementation of UserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) List(ctx context.Context, page types.Page) ([]types.User, int, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]types.User), args.Int(1), args.Error(2)
}

func (m *MockUserRepo) Get(ctx context.Context, id uuid.UUID) (*types.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func setupUserRouter() (*MockUserRepo, http.Handler) {
	repo := new(MockUserRepo)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandlerImpl(NewUserService(repo, logger), logger)

	r := chi.NewRouter()
	r.Get("/users", h.ListUsers)
	r.Get("/users/{id}", h.GetUser)
	return repo, r
}

func TestNewHandlerImpl_PanicsWithoutLogger(t *testing.T) {
	assert.Panics(t, func() { NewHandlerImpl(nil, nil) })
}

func TestUserService_ListUsers(t *testing.T) {
	repo := new(MockUserRepo)
	svc := NewUserService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	page := types.Page{Page: 1, Limit: 2}

	repo.On("List", mock.Anything, page).Return([]types.User{
		{ID: uuid.New(), Email: "a@example.com"},
		{ID: uuid.New(), Email: "b@example.com"},
	}, 5, nil).Once()

	resp, err := svc.ListUsers(context.Background(), page)
	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, types.Pagination{Page: 1, Limit: 2, Total: 5, Pages: 3}, resp.Pagination)

	repo.On("List", mock.Anything, page).Return(nil, 0, errors.New("db down")).Once()
	_, err = svc.ListUsers(context.Background(), page)
	assert.Error(t, err)
	repo.AssertExpectations(t)
}

func TestHandler_ListUsersHidesPasswordHash(t *testing.T) {
	repo, router := setupUserRouter()
	repo.On("List", mock.Anything, types.Page{Page: 1, Limit: types.DefaultPageLimit}).Return([]types.User{
		{ID: uuid.New(), Email: "a@example.com", Role: types.RoleCustomer, PasswordHash: "$2a$10$secret"},
	}, 1, nil).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")

	var body struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "a@example.com", body.Data[0]["email"])
	assert.NotContains(t, body.Data[0], "password_hash")
}

func TestHandler_GetUser(t *testing.T) {
	tests := []struct {
		name   string
		path   func(id uuid.UUID) string
		setup  func(repo *MockUserRepo, id uuid.UUID)
		status int
	}{
		{
			name: "found",
			path: func(id uuid.UUID) string { return "/users/" + id.String() },
			setup: func(repo *MockUserRepo, id uuid.UUID) {
				repo.On("Get", mock.Anything, id).Return(&types.User{ID: id, Email: "a@example.com"}, nil)
			},
			status: http.StatusOK,
		},
		{
			name: "missing",
			path: func(id uuid.UUID) string { return "/users/" + id.String() },
			setup: func(repo *MockUserRepo, id uuid.UUID) {
				repo.On("Get", mock.Anything, id).Return(nil, types.ErrNotFound)
			},
			status: http.StatusNotFound,
		},
		{
			name:   "bad id",
			path:   func(uuid.UUID) string { return "/users/not-a-uuid" },
			setup:  func(*MockUserRepo, uuid.UUID) {},
			status: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, router := setupUserRouter()
			id := uuid.New()
			tt.setup(repo, id)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path(id), nil))
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			repo.AssertExpectations(t)
		})
	}
}
