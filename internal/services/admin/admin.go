// Package services содержит бизнес-логику админской отчётности.
// Все операции — чистая композиция агрегирующих запросов без побочных эффектов.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/milk-delivery/internal/lib/month"
	"github.com/magabrotheeeer/milk-delivery/internal/models"
)

// AdminRepository определяет агрегирующие методы хранилища для отчётности.
type AdminRepository interface {
	CountSubscribers(ctx context.Context) (int, error)
	CountDeliveriesAndRevenue(ctx context.Context, start, end time.Time) (int, float64, error)
	DailyDeliveries(ctx context.Context, start, end time.Time) ([]*models.DailyDelivery, error)
	CountPaymentsByStatus(ctx context.Context, status string, start, end time.Time) (int, error)
	ListSubscribers(ctx context.Context) ([]*models.User, error)
	ListDeliveriesAdmin(ctx context.Context, filter models.DeliveryFilter) ([]*models.DeliveryAdminItem, error)
	ListAllPayments(ctx context.Context) ([]*models.PaymentAdminItem, error)
}

// AdminService реализует отчётность для административной панели.
type AdminService struct {
	repo AdminRepository
	log  *slog.Logger
}

// NewAdminService создает новый экземпляр AdminService.
func NewAdminService(repo AdminRepository, log *slog.Logger) *AdminService {
	return &AdminService{
		repo: repo,
		log:  log,
	}
}

// Dashboard собирает сводку по месяцу: пользователи, доставки, выручка,
// счётчики платежей и поденная разбивка для календаря.
func (s *AdminService) Dashboard(ctx context.Context, m, year int) (*models.DashboardStats, error) {
	start, end := month.Window(m, year)

	totalUsers, err := s.repo.CountSubscribers(ctx)
	if err != nil {
		return nil, err
	}
	totalDeliveries, totalRevenue, err := s.repo.CountDeliveriesAndRevenue(ctx, start, end)
	if err != nil {
		return nil, err
	}
	daily, err := s.repo.DailyDeliveries(ctx, start, end)
	if err != nil {
		return nil, err
	}
	paid, err := s.repo.CountPaymentsByStatus(ctx, models.PaymentStatusPaid, start, end)
	if err != nil {
		return nil, err
	}
	pending, err := s.repo.CountPaymentsByStatus(ctx, models.PaymentStatusPending, start, end)
	if err != nil {
		return nil, err
	}

	return &models.DashboardStats{
		Month:           m,
		Year:            year,
		TotalUsers:      totalUsers,
		TotalDeliveries: totalDeliveries,
		TotalRevenue:    totalRevenue,
		PaidPayments:    paid,
		PendingPayments: pending,
		DailyDeliveries: daily,
	}, nil
}

// ListUsers возвращает всех подписчиков сервиса.
func (s *AdminService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListSubscribers(ctx)
}

// ListDeliveries возвращает доставки с данными пользователей по фильтру.
func (s *AdminService) ListDeliveries(ctx context.Context, filter models.DeliveryFilter) ([]*models.DeliveryAdminItem, error) {
	return s.repo.ListDeliveriesAdmin(ctx, filter)
}

// ListPayments возвращает все платежи с данными пользователей.
func (s *AdminService) ListPayments(ctx context.Context) ([]*models.PaymentAdminItem, error) {
	return s.repo.ListAllPayments(ctx)
}
