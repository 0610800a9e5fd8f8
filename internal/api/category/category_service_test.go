package category

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/storefront-api/internal/types"
)

// MockCategoryRepo is a mock implementation of CategoryRepo
type MockCategoryRepo struct {
	mock.Mock
}

func (m *MockCategoryRepo) List(ctx context.Context, page types.Page) ([]types.Category, int, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]types.Category), args.Int(1), args.Error(2)
}

func (m *MockCategoryRepo) Get(ctx context.Context, id uuid.UUID) (*types.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Category), args.Error(1)
}

func (m *MockCategoryRepo) Create(ctx context.Context, input types.CategoryInput) (*types.Category, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Category), args.Error(1)
}

func (m *MockCategoryRepo) Update(ctx context.Context, id uuid.UUID, input types.CategoryInput) (*types.Category, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Category), args.Error(1)
}

func (m *MockCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func setupServiceTest() (*CategoryServiceImpl, *MockCategoryRepo) {
	repo := new(MockCategoryRepo)
	return NewCategoryService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func TestCategoryService_ListCategories(t *testing.T) {
	svc, repo := setupServiceTest()
	page := types.Page{Page: 1, Limit: 2}
	repo.On("List", mock.Anything, page).
		Return([]types.Category{{Name: "A"}, {Name: "B"}}, 5, nil).Once()

	resp, err := svc.ListCategories(context.Background(), page)
	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, types.Pagination{Page: 1, Limit: 2, Total: 5, Pages: 3}, resp.Pagination)
	repo.AssertExpectations(t)
}

func TestCategoryService_ListCategoriesPastEnd(t *testing.T) {
	svc, repo := setupServiceTest()
	page := types.Page{Page: 9, Limit: 20}
	repo.On("List", mock.Anything, page).Return(nil, 4, nil).Once()

	resp, err := svc.ListCategories(context.Background(), page)
	require.NoError(t, err)
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
	assert.Equal(t, 4, resp.Pagination.Total)
}

func TestCategoryService_GetMissingKeepsNotFound(t *testing.T) {
	svc, repo := setupServiceTest()
	id := uuid.New()
	repo.On("Get", mock.Anything, id).Return(nil, types.ErrNotFound).Once()

	_, err := svc.GetCategory(context.Background(), id)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestCategoryService_CreateUpdateDelete(t *testing.T) {
	svc, repo := setupServiceTest()
	ctx := context.Background()
	id := uuid.New()
	input := types.CategoryInput{Name: "Books"}

	repo.On("Create", mock.Anything, input).Return(&types.Category{ID: id, Name: "Books"}, nil).Once()
	created, err := svc.CreateCategory(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, id, created.ID)

	renamed := types.CategoryInput{Name: "Novels"}
	repo.On("Update", mock.Anything, id, renamed).Return(&types.Category{ID: id, Name: "Novels"}, nil).Once()
	updated, err := svc.UpdateCategory(ctx, id, renamed)
	require.NoError(t, err)
	assert.Equal(t, "Novels", updated.Name)

	repo.On("Delete", mock.Anything, id).Return(nil).Once()
	require.NoError(t, svc.DeleteCategory(ctx, id))

	repo.On("Delete", mock.Anything, id).Return(types.ErrNotFound).Once()
	assert.ErrorIs(t, svc.DeleteCategory(ctx, id), types.ErrNotFound)
	repo.AssertExpectations(t)
}
