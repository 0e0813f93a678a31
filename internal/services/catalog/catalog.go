// Package services содержит бизнес-логику каталога тарифов на молоко.
// Каталог читается на каждый заказ и поэтому кешируется в Redis;
// любое изменение тарифов администратором инвалидирует кеш.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/milk-delivery/internal/models"
)

const ratesCacheKey = "milkrates:all"

// RateRepository определяет методы для работы с тарифами в хранилище.
type RateRepository interface {
	// CreateRate добавляет новый тариф и возвращает его ID.
	CreateRate(ctx context.Context, rate models.MilkRate) (int, error)
	// UpdateRate обновляет цену и примечание тарифа.
	UpdateRate(ctx context.Context, id int, price float64, notes string) error
	// ReadRate возвращает тариф по ID.
	ReadRate(ctx context.Context, id int) (*models.MilkRate, error)
	// ListRates возвращает все тарифы по возрастанию объёма.
	ListRates(ctx context.Context) ([]*models.MilkRate, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// CatalogService реализует бизнес-логику работы с каталогом тарифов.
type CatalogService struct {
	repo  RateRepository
	cache Cache
	log   *slog.Logger
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(repo RateRepository, cache Cache, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// List возвращает все тарифы каталога, используя кеш или хранилище.
func (s *CatalogService) List(ctx context.Context) ([]*models.MilkRate, error) {
	var result []*models.MilkRate
	found, err := s.cache.Get(ratesCacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read rates from cache", slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListRates(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ratesCacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache rates", slog.Any("err", err))
	}
	return result, nil
}

// Create добавляет новый тариф и инвалидирует кеш каталога.
// Дубликат объёма отклоняется уникальным индексом хранилища.
func (s *CatalogService) Create(ctx context.Context, req models.DummyRate) (*models.MilkRate, error) {
	id, err := s.repo.CreateRate(ctx, models.MilkRate{
		Quantity: req.Quantity,
		Price:    req.Price,
		Notes:    req.Notes,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("created new milk rate", slog.Int("id", id), slog.Int("quantity", req.Quantity))

	if err := s.cache.Invalidate(ratesCacheKey); err != nil {
		s.log.Warn("failed to invalidate rates cache", slog.Any("err", err))
	}
	return s.repo.ReadRate(ctx, id)
}

// Update меняет цену и примечание тарифа и инвалидирует кеш каталога.
// Снимки цены в уже созданных доставках не пересчитываются.
func (s *CatalogService) Update(ctx context.Context, id int, req models.DummyRateUpdate) (*models.MilkRate, error) {
	if err := s.repo.UpdateRate(ctx, id, req.Price, req.Notes); err != nil {
		return nil, err
	}
	s.log.Info("updated milk rate", slog.Int("id", id))

	if err := s.cache.Invalidate(ratesCacheKey); err != nil {
		s.log.Warn("failed to invalidate rates cache", slog.Any("err", err))
	}
	return s.repo.ReadRate(ctx, id)
}
