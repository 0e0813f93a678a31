package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/milk-delivery/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CountSubscribers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) CountDeliveriesAndRevenue(ctx context.Context, start, end time.Time) (int, float64, error) {
	args := m.Called(ctx, start, end)
	return args.Int(0), args.Get(1).(float64), args.Error(2)
}
func (m *RepoMock) DailyDeliveries(ctx context.Context, start, end time.Time) ([]*models.DailyDelivery, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DailyDelivery), args.Error(1)
}
func (m *RepoMock) CountPaymentsByStatus(ctx context.Context, status string, start, end time.Time) (int, error) {
	args := m.Called(ctx, status, start, end)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListSubscribers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}
func (m *RepoMock) ListDeliveriesAdmin(ctx context.Context, filter models.DeliveryFilter) ([]*models.DeliveryAdminItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DeliveryAdminItem), args.Error(1)
}
func (m *RepoMock) ListAllPayments(ctx context.Context) ([]*models.PaymentAdminItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PaymentAdminItem), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestDashboard(t *testing.T) {
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

	repo := new(RepoMock)
	repo.On("CountSubscribers", mock.Anything).Return(12, nil).Once()
	repo.On("CountDeliveriesAndRevenue", mock.Anything, start, end).
		Return(40, 2000.0, nil).Once()
	repo.On("DailyDeliveries", mock.Anything, start, end).
		Return([]*models.DailyDelivery{
			{DeliveryDate: start, Count: 3},
			{DeliveryDate: start.AddDate(0, 0, 1), Count: 2},
		}, nil).Once()
	repo.On("CountPaymentsByStatus", mock.Anything, models.PaymentStatusPaid, start, end).
		Return(10, nil).Once()
	repo.On("CountPaymentsByStatus", mock.Anything, models.PaymentStatusPending, start, end).
		Return(2, nil).Once()

	svc := NewAdminService(repo, newNoopLogger())
	dashboardStats, err := svc.Dashboard(context.Background(), 9, 2025)
	require.NoError(t, err)

	assert.Equal(t, 12, dashboardStats.TotalUsers)
	assert.Equal(t, 40, dashboardStats.TotalDeliveries)
	assert.Equal(t, 2000.0, dashboardStats.TotalRevenue)
	assert.Equal(t, 10, dashboardStats.PaidPayments)
	assert.Equal(t, 2, dashboardStats.PendingPayments)
	assert.Len(t, dashboardStats.DailyDeliveries, 2)
	repo.AssertExpectations(t)
}

func TestListDeliveries_PassesFilter(t *testing.T) {
	date := time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)
	uid := "uid-1"
	filter := models.DeliveryFilter{Date: &date, UserUID: &uid}

	repo := new(RepoMock)
	repo.On("ListDeliveriesAdmin", mock.Anything, filter).
		Return([]*models.DeliveryAdminItem{}, nil).Once()

	svc := NewAdminService(repo, newNoopLogger())
	_, err := svc.ListDeliveries(context.Background(), filter)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
