// Package services содержит бизнес-логику биллинга: фиксацию платежей
// и расчёт месячной задолженности пользователя.
package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/milk-delivery/internal/lib/month"
	"github.com/magabrotheeeer/milk-delivery/internal/models"
	"github.com/magabrotheeeer/milk-delivery/internal/storage/repository"
)

// PaymentRepository определяет методы для работы с платежами и суммами в хранилище.
type PaymentRepository interface {
	CreatePayment(ctx context.Context, p models.Payment) (int, error)
	ReadPayment(ctx context.Context, id int) (*models.Payment, error)
	ReadPaymentByKey(ctx context.Context, userUID, key string) (*models.Payment, error)
	ListPaymentsForUser(ctx context.Context, userUID string) ([]*models.Payment, error)
	SumPayments(ctx context.Context, userUID, status string, start, end time.Time) (float64, error)
	SumDeliveries(ctx context.Context, userUID string, start, end time.Time) (float64, error)
}

// PaymentService реализует бизнес-логику учёта платежей.
type PaymentService struct {
	repo PaymentRepository
	log  *slog.Logger
}

// NewPaymentService создает новый экземпляр PaymentService.
func NewPaymentService(repo PaymentRepository, log *slog.Logger) *PaymentService {
	return &PaymentService{
		repo: repo,
		log:  log,
	}
}

// RecordPayment фиксирует платёж пользователя со статусом paid.
// Сумма не сверяется с задолженностью: переплата допускается.
// Непустой idempotencyKey дедуплицирует повторные отправки — повтор
// возвращает уже созданный платёж, а не новую запись.
func (s *PaymentService) RecordPayment(ctx context.Context, userUID string, req models.DummyPayment, idempotencyKey string) (*models.Payment, error) {
	entry := models.Payment{
		UserUID:       userUID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		Status:        models.PaymentStatusPaid,
		PaymentDate:   time.Now().UTC(),
	}
	if idempotencyKey != "" {
		entry.IdempotencyKey = &idempotencyKey
	}

	id, err := s.repo.CreatePayment(ctx, entry)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) && idempotencyKey != "" {
			s.log.Info("duplicate payment submission", slog.String("idempotency_key", idempotencyKey))
			return s.repo.ReadPaymentByKey(ctx, userUID, idempotencyKey)
		}
		return nil, err
	}
	s.log.Info("recorded payment", slog.Int("id", id))

	return s.repo.ReadPayment(ctx, id)
}

// ListForUser возвращает историю платежей пользователя, новые первыми.
func (s *PaymentService) ListForUser(ctx context.Context, userUID string) ([]*models.Payment, error) {
	return s.repo.ListPaymentsForUser(ctx, userUID)
}

// OutstandingBalance считает задолженность пользователя за календарный месяц:
// сумма доставок минус сумма оплаченных платежей, отрицательный остаток
// обрезается до нуля и не переносится на следующий месяц.
func (s *PaymentService) OutstandingBalance(ctx context.Context, userUID string, m, year int) (*models.OutstandingBalance, error) {
	start, end := month.Window(m, year)

	totalDeliveries, err := s.repo.SumDeliveries(ctx, userUID, start, end)
	if err != nil {
		return nil, err
	}
	totalPayments, err := s.repo.SumPayments(ctx, userUID, models.PaymentStatusPaid, start, end)
	if err != nil {
		return nil, err
	}

	outstanding := totalDeliveries - totalPayments
	if outstanding < 0 {
		outstanding = 0
	}
	return &models.OutstandingBalance{
		Month:             m,
		Year:              year,
		TotalDeliveries:   totalDeliveries,
		TotalPayments:     totalPayments,
		OutstandingAmount: outstanding,
	}, nil
}
