package theme

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/storefront-api/internal/types"
)

var _ ThemeService = (*ThemeServiceImpl)(nil)

type ThemeService interface {
	// GetTheme falls back to types.DefaultTheme when nothing has been saved.
	GetTheme(ctx context.Context) (*types.Theme, error)
	UpdateTheme(ctx context.Context, t types.Theme) (*types.Theme, error)
}

const themeCacheKey = "theme"

type ThemeServiceImpl struct {
	logger *slog.Logger
	repo   ThemeRepo
	cache  *cache.Cache
}

func NewThemeService(repo ThemeRepo, logger *slog.Logger) *ThemeServiceImpl {
	return &ThemeServiceImpl{
		logger: logger,
		repo:   repo,
		cache:  cache.New(cache.NoExpiration, 0),
	}
}

func (s *ThemeServiceImpl) GetTheme(ctx context.Context) (*types.Theme, error) {
	ctx, span := otel.Tracer("ThemeService").Start(ctx, "GetTheme")
	defer span.End()

	if cached, ok := s.cache.Get(themeCacheKey); ok {
		t := cached.(types.Theme)
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return &t, nil
	}

	t, err := s.repo.Get(ctx)
	if errors.Is(err, types.ErrNotFound) {
		def := types.DefaultTheme()
		return &def, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load theme")
		return nil, fmt.Errorf("error loading theme: %w", err)
	}
	s.cache.SetDefault(themeCacheKey, *t)
	return t, nil
}

func (s *ThemeServiceImpl) UpdateTheme(ctx context.Context, t types.Theme) (*types.Theme, error) {
	ctx, span := otel.Tracer("ThemeService").Start(ctx, "UpdateTheme")
	defer span.End()

	saved, err := s.repo.Upsert(ctx, t)
	if err != nil {
		s.cache.Delete(themeCacheKey)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to save theme")
		return nil, fmt.Errorf("error saving theme: %w", err)
	}
	s.cache.SetDefault(themeCacheKey, *saved)
	s.logger.InfoContext(ctx, "Theme updated", slog.String("primary_color", saved.PrimaryColor))
	return saved, nil
}
