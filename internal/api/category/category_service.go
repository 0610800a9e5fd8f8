package category

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/storefront-api/internal/types"
)

var _ CategoryService = (*CategoryServiceImpl)(nil)

type CategoryService interface {
	ListCategories(ctx context.Context, page types.Page) (types.PaginatedResponse[types.Category], error)
	GetCategory(ctx context.Context, id uuid.UUID) (*types.Category, error)
	CreateCategory(ctx context.Context, input types.CategoryInput) (*types.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input types.CategoryInput) (*types.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type CategoryServiceImpl struct {
	logger *slog.Logger
	repo   CategoryRepo
}

func NewCategoryService(repo CategoryRepo, logger *slog.Logger) *CategoryServiceImpl {
	return &CategoryServiceImpl{logger: logger, repo: repo}
}

func (s *CategoryServiceImpl) ListCategories(ctx context.Context, page types.Page) (types.PaginatedResponse[types.Category], error) {
	ctx, span := otel.Tracer("CategoryService").Start(ctx, "ListCategories")
	defer span.End()

	categories, total, err := s.repo.List(ctx, page)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list categories")
		return types.PaginatedResponse[types.Category]{}, fmt.Errorf("error listing categories: %w", err)
	}
	return types.NewPaginatedResponse(categories, page, total), nil
}

func (s *CategoryServiceImpl) GetCategory(ctx context.Context, id uuid.UUID) (*types.Category, error) {
	ctx, span := otel.Tracer("CategoryService").Start(ctx, "GetCategory", trace.WithAttributes(
		attribute.String("category.id", id.String()),
	))
	defer span.End()

	c, err := s.repo.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("error fetching category: %w", err)
	}
	return c, nil
}

func (s *CategoryServiceImpl) CreateCategory(ctx context.Context, input types.CategoryInput) (*types.Category, error) {
	ctx, span := otel.Tracer("CategoryService").Start(ctx, "CreateCategory")
	defer span.End()

	c, err := s.repo.Create(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create category")
		return nil, fmt.Errorf("error creating category: %w", err)
	}
	s.logger.InfoContext(ctx, "Category created", slog.String("categoryID", c.ID.String()))
	return c, nil
}

func (s *CategoryServiceImpl) UpdateCategory(ctx context.Context, id uuid.UUID, input types.CategoryInput) (*types.Category, error) {
	ctx, span := otel.Tracer("CategoryService").Start(ctx, "UpdateCategory", trace.WithAttributes(
		attribute.String("category.id", id.String()),
	))
	defer span.End()

	c, err := s.repo.Update(ctx, id, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update category")
		return nil, fmt.Errorf("error updating category: %w", err)
	}
	return c, nil
}

func (s *CategoryServiceImpl) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	ctx, span := otel.Tracer("CategoryService").Start(ctx, "DeleteCategory", trace.WithAttributes(
		attribute.String("category.id", id.String()),
	))
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete category")
		return fmt.Errorf("error deleting category: %w", err)
	}
	s.logger.InfoContext(ctx, "Category deleted", slog.String("categoryID", id.String()))
	return nil
}
