package translation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/storefront-api/internal/types"
)

var _ TranslationService = (*TranslationServiceImpl)(nil)

type TranslationService interface {
	// Dictionary maps every key to its text in lang, falling back to English, then "".
	Dictionary(ctx context.Context, lang types.Language, refID string) (map[string]string, error)
	Upsert(ctx context.Context, t types.Translation) error
}

const dictionaryTTL = 5 * time.Minute

type TranslationServiceImpl struct {
	logger *slog.Logger
	repo   TranslationRepo
	cache  *cache.Cache
	now    func() time.Time
}

func NewTranslationService(repo TranslationRepo, logger *slog.Logger) *TranslationServiceImpl {
	return &TranslationServiceImpl{
		logger: logger,
		repo:   repo,
		cache:  cache.New(dictionaryTTL, 2*dictionaryTTL),
		now:    time.Now,
	}
}

func dictionaryKey(lang types.Language, refID string) string {
	return string(lang) + "|" + refID
}

func (s *TranslationServiceImpl) Dictionary(ctx context.Context, lang types.Language, refID string) (map[string]string, error) {
	ctx, span := otel.Tracer("TranslationService").Start(ctx, "Dictionary", trace.WithAttributes(
		attribute.String("lang", string(lang)),
	))
	defer span.End()

	if !lang.Valid() {
		return nil, fmt.Errorf("%w: unsupported language", types.ErrValidation)
	}

	key := dictionaryKey(lang, refID)
	if cached, ok := s.cache.Get(key); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached.(map[string]string), nil
	}

	entries, err := s.repo.List(ctx, refID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load translations")
		return nil, fmt.Errorf("error loading translations: %w", err)
	}

	dict := make(map[string]string, len(entries))
	for _, e := range entries {
		dict[e.Key] = e.Value(lang)
	}
	s.cache.SetDefault(key, dict)
	return dict, nil
}

func (s *TranslationServiceImpl) Upsert(ctx context.Context, t types.Translation) error {
	ctx, span := otel.Tracer("TranslationService").Start(ctx, "Upsert", trace.WithAttributes(
		attribute.String("translation.key", t.Key),
	))
	defer span.End()

	t.UpdatedAt = s.now().UTC()
	if err := s.repo.Upsert(ctx, t); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upsert translation")
		return fmt.Errorf("error saving translation: %w", err)
	}
	s.cache.Flush()
	s.logger.DebugContext(ctx, "Translation saved, dictionary cache flushed", slog.String("key", t.Key))
	return nil
}
