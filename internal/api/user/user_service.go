package user

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

var _ UserService = (*UserServiceImpl)(nil)

type UserService interface {
	ListUsers(ctx context.Context, page types.Page) (types.PaginatedResponse[types.User], error)
	GetUser(ctx context.Context, id uuid.UUID) (*types.User, error)
}

type UserServiceImpl struct {
	logger *slog.Logger
	repo   UserRepo
}

func NewUserService(repo UserRepo, logger *slog.Logger) *UserServiceImpl {
	return &UserServiceImpl{logger: logger, repo: repo}
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, page types.Page) (types.PaginatedResponse[types.User], error) {
	ctx, span := otel.Tracer("UserService").Start(ctx, "ListUsers", trace.WithAttributes(
		attribute.Int("page", page.Page),
	))
	defer span.End()

	users, total, err := s.repo.List(ctx, page)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list users")
		return types.PaginatedResponse[types.User]{}, fmt.Errorf("error listing users: %w", err)
	}
	return types.NewPaginatedResponse(users, page, total), nil
}

func (s *UserServiceImpl) GetUser(ctx context.Context, id uuid.UUID) (*types.User, error) {
	ctx, span := otel.Tracer("UserService").Start(ctx, "GetUser", trace.WithAttributes(
		attribute.String("user.id", id.String()),
	))
	defer span.End()

	u, err := s.repo.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	return u, nil
}
