package translation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/storefront-api/internal/types"
)

// MockTranslationRepo is a mock implementation of TranslationRepo
type MockTranslationRepo struct {
	mock.Mock
}

func (m *MockTranslationRepo) List(ctx context.Context, refID string) ([]types.Translation, error) {
	args := m.Called(ctx, refID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Translation), args.Error(1)
}

func (m *MockTranslationRepo) Upsert(ctx context.Context, t types.Translation) error {
	return m.Called(ctx, t).Error(0)
}

func setupTranslationServiceTest() (*TranslationServiceImpl, *MockTranslationRepo) {
	repo := new(MockTranslationRepo)
	return NewTranslationService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

var entries = []types.Translation{
	{Key: "nav.home", EN: "Home", AR: "الرئيسية"},
	{Key: "nav.cart", EN: "Cart"},
	{Key: "nav.empty"},
}

func TestTranslationService_Dictionary(t *testing.T) {
	svc, repo := setupTranslationServiceTest()
	ctx := context.Background()
	repo.On("List", mock.Anything, "").Return(entries, nil).Twice()

	ar, err := svc.Dictionary(ctx, types.LangAR, "")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"nav.home": "الرئيسية", "nav.cart": "Cart", "nav.empty": ""}, ar)

	en, err := svc.Dictionary(ctx, types.LangEN, "")
	require.NoError(t, err)
	assert.Equal(t, "Home", en["nav.home"])

	// Both languages are now cached.
	_, err = svc.Dictionary(ctx, types.LangAR, "")
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "List", 2)
}

func TestTranslationService_DictionaryUnsupportedLanguage(t *testing.T) {
	svc, repo := setupTranslationServiceTest()

	_, err := svc.Dictionary(context.Background(), types.Language("fr"), "")
	assert.ErrorIs(t, err, types.ErrValidation)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestTranslationService_DictionaryRepoError(t *testing.T) {
	svc, repo := setupTranslationServiceTest()
	repo.On("List", mock.Anything, "p1").Return(nil, errors.New("db down")).Once()

	_, err := svc.Dictionary(context.Background(), types.LangEN, "p1")
	require.Error(t, err)
}

func TestTranslationService_UpsertFlushesCache(t *testing.T) {
	svc, repo := setupTranslationServiceTest()
	ctx := context.Background()
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	repo.On("List", mock.Anything, "").Return(entries, nil).Once()
	_, err := svc.Dictionary(ctx, types.LangEN, "")
	require.NoError(t, err)

	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(tr types.Translation) bool {
		return tr.Key == "nav.cart" && tr.UpdatedAt.Equal(fixed)
	})).Return(nil).Once()
	require.NoError(t, svc.Upsert(ctx, types.Translation{Key: "nav.cart", EN: "Basket"}))

	updated := []types.Translation{{Key: "nav.cart", EN: "Basket"}}
	repo.On("List", mock.Anything, "").Return(updated, nil).Once()
	dict, err := svc.Dictionary(ctx, types.LangEN, "")
	require.NoError(t, err)
	assert.Equal(t, "Basket", dict["nav.cart"])
	repo.AssertExpectations(t)
}
