package partner

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

var _ PartnerService = (*PartnerServiceImpl)(nil)

type PartnerService interface {
	ListPartners(ctx context.Context) ([]types.Partner, error)
	CreatePartner(ctx context.Context, input types.PartnerInput) (*types.Partner, error)
	DeletePartner(ctx context.Context, id uuid.UUID) error
}

type PartnerServiceImpl struct {
	logger *slog.Logger
	repo   PartnerRepo
}

func NewPartnerService(repo PartnerRepo, logger *slog.Logger) *PartnerServiceImpl {
	return &PartnerServiceImpl{logger: logger, repo: repo}
}

func (s *PartnerServiceImpl) ListPartners(ctx context.Context) ([]types.Partner, error) {
	ctx, span := otel.Tracer("PartnerService").Start(ctx, "ListPartners")
	defer span.End()

	partners, err := s.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list partners")
		return nil, fmt.Errorf("error listing partners: %w", err)
	}
	return partners, nil
}

func (s *PartnerServiceImpl) CreatePartner(ctx context.Context, input types.PartnerInput) (*types.Partner, error) {
	ctx, span := otel.Tracer("PartnerService").Start(ctx, "CreatePartner", trace.WithAttributes(
		attribute.String("partner.name", input.Name),
	))
	defer span.End()

	p, err := s.repo.Create(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create partner")
		return nil, fmt.Errorf("error creating partner: %w", err)
	}
	return p, nil
}

func (s *PartnerServiceImpl) DeletePartner(ctx context.Context, id uuid.UUID) error {
	ctx, span := otel.Tracer("PartnerService").Start(ctx, "DeletePartner", trace.WithAttributes(
		attribute.String("partner.id", id.String()),
	))
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("error deleting partner: %w", err)
	}
	return nil
}
