package services

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

	"github.com/magabrotheeeer/milk-delivery/internal/models"
	"github.com/magabrotheeeer/milk-delivery/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateRate(ctx context.Context, rate models.MilkRate) (int, error) {
	args := m.Called(ctx, rate)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) UpdateRate(ctx context.Context, id int, price float64, notes string) error {
	return m.Called(ctx, id, price, notes).Error(0)
}
func (m *RepoMock) ReadRate(ctx context.Context, id int) (*models.MilkRate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MilkRate), args.Error(1)
}
func (m *RepoMock) ListRates(ctx context.Context) ([]*models.MilkRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MilkRate), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestList(t *testing.T) {
	rates := []*models.MilkRate{
		{ID: 1, Quantity: 250, Price: 12.5},
		{ID: 2, Quantity: 500, Price: 25},
	}

	t.Run("промах кеша идёт в хранилище и кеширует", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", "milkrates:all", mock.Anything).Return(false, nil).Once()
		repo.On("ListRates", mock.Anything).Return(rates, nil).Once()
		cache.On("Set", "milkrates:all", rates, time.Hour).Return(nil).Once()

		svc := NewCatalogService(repo, cache, newNoopLogger())
		got, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, got, 2)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("попадание в кеш не трогает хранилище", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", "milkrates:all", mock.Anything).Return(true, nil).Once()

		svc := NewCatalogService(repo, cache, newNoopLogger())
		_, err := svc.List(context.Background())
		require.NoError(t, err)
		repo.AssertNotCalled(t, "ListRates")
	})

	t.Run("ошибка кеша не фатальна", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", "milkrates:all", mock.Anything).Return(false, errors.New("redis down")).Once()
		repo.On("ListRates", mock.Anything).Return(rates, nil).Once()
		cache.On("Set", "milkrates:all", rates, time.Hour).Return(errors.New("redis down")).Once()

		svc := NewCatalogService(repo, cache, newNoopLogger())
		got, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestCreate(t *testing.T) {
	t.Run("создание инвалидирует кеш", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		repo.On("CreateRate", mock.Anything, mock.MatchedBy(func(rate models.MilkRate) bool {
			return rate.Quantity == 750 && rate.Price == 37.5
		})).Return(7, nil).Once()
		cache.On("Invalidate", "milkrates:all").Return(nil).Once()
		repo.On("ReadRate", mock.Anything, 7).
			Return(&models.MilkRate{ID: 7, Quantity: 750, Price: 37.5}, nil).Once()

		svc := NewCatalogService(repo, cache, newNoopLogger())
		rate, err := svc.Create(context.Background(), models.DummyRate{Quantity: 750, Price: 37.5})
		require.NoError(t, err)
		assert.Equal(t, 7, rate.ID)
		cache.AssertExpectations(t)
	})

	t.Run("дубликат объёма", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		repo.On("CreateRate", mock.Anything, mock.Anything).
			Return(0, repository.ErrDuplicateQuantity).Once()

		svc := NewCatalogService(repo, cache, newNoopLogger())
		_, err := svc.Create(context.Background(), models.DummyRate{Quantity: 500, Price: 25})
		require.ErrorIs(t, err, repository.ErrDuplicateQuantity)
		cache.AssertNotCalled(t, "Invalidate")
	})
}

func TestUpdate(t *testing.T) {
	t.Run("обновление инвалидирует кеш", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		repo.On("UpdateRate", mock.Anything, 2, 30.0, "new notes").Return(nil).Once()
		cache.On("Invalidate", "milkrates:all").Return(nil).Once()
		repo.On("ReadRate", mock.Anything, 2).
			Return(&models.MilkRate{ID: 2, Quantity: 500, Price: 30}, nil).Once()

		svc := NewCatalogService(repo, cache, newNoopLogger())
		rate, err := svc.Update(context.Background(), 2, models.DummyRateUpdate{Price: 30, Notes: "new notes"})
		require.NoError(t, err)
		assert.Equal(t, 30.0, rate.Price)
	})

	t.Run("несуществующий тариф", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		repo.On("UpdateRate", mock.Anything, 99, 30.0, "").
			Return(repository.ErrNotFound).Once()

		svc := NewCatalogService(repo, cache, newNoopLogger())
		_, err := svc.Update(context.Background(), 99, models.DummyRateUpdate{Price: 30})
		require.ErrorIs(t, err, repository.ErrNotFound)
	})
}
