package product

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/storefront-api/internal/types"
)

var _ ProductService = (*ProductServiceImpl)(nil)

type ProductService interface {
	ListProducts(ctx context.Context, filter types.ProductFilter, page types.Page) (types.PaginatedResponse[types.Product], error)
	GetProduct(ctx context.Context, id uuid.UUID) (*types.Product, error)
	CreateProduct(ctx context.Context, input types.ProductInput) (*types.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input types.ProductInput) (*types.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// CategoryLookup is satisfied by the category repository.
type CategoryLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*types.Category, error)
}

type ProductServiceImpl struct {
	logger     *slog.Logger
	repo       ProductRepo
	categories CategoryLookup
}

func NewProductService(repo ProductRepo, categories CategoryLookup, logger *slog.Logger) *ProductServiceImpl {
	return &ProductServiceImpl{logger: logger, repo: repo, categories: categories}
}

func (s *ProductServiceImpl) ListProducts(ctx context.Context, filter types.ProductFilter, page types.Page) (types.PaginatedResponse[types.Product], error) {
	ctx, span := otel.Tracer("ProductService").Start(ctx, "ListProducts", trace.WithAttributes(
		attribute.String("filter.search", filter.Search),
	))
	defer span.End()

	products, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list products")
		return types.PaginatedResponse[types.Product]{}, fmt.Errorf("error listing products: %w", err)
	}
	return types.NewPaginatedResponse(products, page, total), nil
}

func (s *ProductServiceImpl) GetProduct(ctx context.Context, id uuid.UUID) (*types.Product, error) {
	ctx, span := otel.Tracer("ProductService").Start(ctx, "GetProduct", trace.WithAttributes(
		attribute.String("product.id", id.String()),
	))
	defer span.End()

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("error fetching product: %w", err)
	}
	return p, nil
}

func (s *ProductServiceImpl) checkCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.Get(ctx, id); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return fmt.Errorf("%w: category %s does not exist", types.ErrValidation, id)
		}
		return fmt.Errorf("error checking category: %w", err)
	}
	return nil
}

func (s *ProductServiceImpl) CreateProduct(ctx context.Context, input types.ProductInput) (*types.Product, error) {
	ctx, span := otel.Tracer("ProductService").Start(ctx, "CreateProduct")
	defer span.End()

	if err := s.checkCategory(ctx, input.CategoryID); err != nil {
		span.SetStatus(codes.Error, "Unknown category")
		return nil, err
	}
	p, err := s.repo.Create(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create product")
		return nil, fmt.Errorf("error creating product: %w", err)
	}
	s.logger.InfoContext(ctx, "Product created", slog.String("productID", p.ID.String()))
	return p, nil
}

func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, id uuid.UUID, input types.ProductInput) (*types.Product, error) {
	ctx, span := otel.Tracer("ProductService").Start(ctx, "UpdateProduct", trace.WithAttributes(
		attribute.String("product.id", id.String()),
	))
	defer span.End()

	if err := s.checkCategory(ctx, input.CategoryID); err != nil {
		span.SetStatus(codes.Error, "Unknown category")
		return nil, err
	}
	p, err := s.repo.Update(ctx, id, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update product")
		return nil, fmt.Errorf("error updating product: %w", err)
	}
	return p, nil
}

func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	ctx, span := otel.Tracer("ProductService").Start(ctx, "DeleteProduct", trace.WithAttributes(
		attribute.String("product.id", id.String()),
	))
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete product")
		return fmt.Errorf("error deleting product: %w", err)
	}
	return nil
}
