// Package services содержит бизнес-логику планирования доставок молока.
// Заказ фиксирует снимок объёма и цены из каталога: последующие изменения
// тарифа не влияют на стоимость уже созданных доставок.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/milk-delivery/internal/lib/month"
	"github.com/magabrotheeeer/milk-delivery/internal/models"
	"github.com/magabrotheeeer/milk-delivery/internal/storage/repository"
)

// Ошибки планировщика заказов.
var (
	// ErrInvalidOption возвращается при заказе по несуществующему тарифу.
	ErrInvalidOption = errors.New("invalid milk option")
	// ErrInvalidDate возвращается при некорректной календарной дате доставки.
	ErrInvalidDate = errors.New("invalid delivery date")
)

// DeliveryRepository определяет методы для работы с доставками в хранилище.
type DeliveryRepository interface {
	CreateDelivery(ctx context.Context, d models.Delivery) (int, error)
	ReadDeliveryForUser(ctx context.Context, id int, userUID string) (*models.Delivery, error)
	ReadDeliveryWithRate(ctx context.Context, id int) (*models.DeliveryWithRate, error)
	UpdateDelivery(ctx context.Context, d models.Delivery) (int, error)
	RemoveDelivery(ctx context.Context, id int, userUID string) (int, error)
	ListDeliveriesForUser(ctx context.Context, userUID string, start, end time.Time) ([]*models.DeliveryWithRate, error)
	UserStats(ctx context.Context, userUID string, start, end time.Time) (int, float64, int, error)
	ReadRate(ctx context.Context, id int) (*models.MilkRate, error)
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// EventPublisher публикует события о созданных заказах для сервиса уведомлений.
type EventPublisher interface {
	PublishOrderPlaced(event models.OrderPlacedEvent) error
}

// DeliveryService реализует бизнес-логику планирования доставок.
type DeliveryService struct {
	repo      DeliveryRepository
	publisher EventPublisher
	log       *slog.Logger
}

// NewDeliveryService создает новый экземпляр DeliveryService.
// publisher может быть nil — тогда события о заказах не публикуются.
func NewDeliveryService(repo DeliveryRepository, publisher EventPublisher, log *slog.Logger) *DeliveryService {
	return &DeliveryService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// PlaceOrder создаёт доставку по заказу пользователя.
// Тариф разрешается через каталог, объём и цена снимаются на момент заказа.
// Занятый слот отклоняется уникальным индексом хранилища (ErrSlotTaken).
func (s *DeliveryService) PlaceOrder(ctx context.Context, userUID string, req models.DummyOrder) (*models.DeliveryWithRate, error) {
	deliveryDate, err := time.Parse(models.DateLayout, req.DeliveryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, req.DeliveryDate)
	}

	rate, err := s.repo.ReadRate(ctx, req.MilkID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidOption
		}
		return nil, err
	}

	entry := models.Delivery{
		UserUID:      userUID,
		MilkRateID:   rate.ID,
		Quantity:     rate.Quantity,
		TotalPrice:   rate.Price,
		DeliveryTime: req.DeliveryTime,
		DeliveryDate: deliveryDate,
	}
	id, err := s.repo.CreateDelivery(ctx, entry)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new delivery", slog.Int("id", id))

	created, err := s.repo.ReadDeliveryWithRate(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publishOrderPlaced(ctx, created)
	return created, nil
}

// UpdateOrder меняет заказ пользователя. Новый milk_id переснимает объём
// и цену из каталога; перенос в занятый слот отклоняется индексом.
func (s *DeliveryService) UpdateOrder(ctx context.Context, userUID string, id int, req models.DummyOrderUpdate) (*models.DeliveryWithRate, error) {
	entry, err := s.repo.ReadDeliveryForUser(ctx, id, userUID)
	if err != nil {
		return nil, err
	}

	if req.MilkID != nil {
		rate, err := s.repo.ReadRate(ctx, *req.MilkID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrInvalidOption
			}
			return nil, err
		}
		entry.MilkRateID = rate.ID
		entry.Quantity = rate.Quantity
		entry.TotalPrice = rate.Price
	}
	if req.DeliveryTime != nil {
		entry.DeliveryTime = *req.DeliveryTime
	}
	if req.DeliveryDate != nil {
		deliveryDate, err := time.Parse(models.DateLayout, *req.DeliveryDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, *req.DeliveryDate)
		}
		entry.DeliveryDate = deliveryDate
	}

	if _, err := s.repo.UpdateDelivery(ctx, *entry); err != nil {
		return nil, err
	}
	s.log.Info("updated delivery", slog.Int("id", id))

	return s.repo.ReadDeliveryWithRate(ctx, id)
}

// CancelOrder удаляет доставку пользователя без ограничений по сроку.
func (s *DeliveryService) CancelOrder(ctx context.Context, userUID string, id int) error {
	count, err := s.repo.RemoveDelivery(ctx, id, userUID)
	if err != nil {
		return err
	}
	if count == 0 {
		return repository.ErrNotFound
	}
	s.log.Info("cancelled delivery", slog.Int("id", id))
	return nil
}

// ListForUser возвращает историю доставок пользователя.
// Нулевые month/year означают выборку без ограничения по окну.
func (s *DeliveryService) ListForUser(ctx context.Context, userUID string, m, year int) ([]*models.DeliveryWithRate, error) {
	var start, end time.Time
	if m != 0 && year != 0 {
		start, end = month.Window(m, year)
	}
	return s.repo.ListDeliveriesForUser(ctx, userUID, start, end)
}

// MonthlyStats считает месячную статистику пользователя.
func (s *DeliveryService) MonthlyStats(ctx context.Context, userUID string, m, year int) (*models.UserStats, error) {
	start, end := month.Window(m, year)
	totalMilk, totalAmount, count, err := s.repo.UserStats(ctx, userUID, start, end)
	if err != nil {
		return nil, err
	}
	return &models.UserStats{
		Month:         m,
		Year:          year,
		TotalMilk:     totalMilk,
		TotalAmount:   totalAmount,
		DeliveryCount: count,
	}, nil
}

// publishOrderPlaced отправляет событие о заказе в очередь уведомлений.
// Ошибки публикации не проваливают заказ, только логируются.
func (s *DeliveryService) publishOrderPlaced(ctx context.Context, d *models.DeliveryWithRate) {
	if s.publisher == nil {
		return
	}
	user, err := s.repo.GetUser(ctx, d.UserUID)
	if err != nil {
		s.log.Warn("failed to resolve user for order event", slog.Any("err", err))
		return
	}
	event := models.OrderPlacedEvent{
		DeliveryID:   d.ID,
		UserUID:      d.UserUID,
		Email:        user.Email,
		Name:         user.Name,
		Quantity:     d.Quantity,
		TotalPrice:   d.TotalPrice,
		DeliveryTime: d.DeliveryTime,
		DeliveryDate: d.DeliveryDate,
	}
	if err := s.publisher.PublishOrderPlaced(event); err != nil {
		s.log.Warn("failed to publish order event", slog.Any("err", err))
	}
}
