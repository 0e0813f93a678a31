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

func (m *RepoMock) CreateDelivery(ctx context.Context, d models.Delivery) (int, error) {
	args := m.Called(ctx, d)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ReadDeliveryForUser(ctx context.Context, id int, userUID string) (*models.Delivery, error) {
	args := m.Called(ctx, id, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Delivery), args.Error(1)
}
func (m *RepoMock) ReadDeliveryWithRate(ctx context.Context, id int) (*models.DeliveryWithRate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeliveryWithRate), args.Error(1)
}
func (m *RepoMock) UpdateDelivery(ctx context.Context, d models.Delivery) (int, error) {
	args := m.Called(ctx, d)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) RemoveDelivery(ctx context.Context, id int, userUID string) (int, error) {
	args := m.Called(ctx, id, userUID)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListDeliveriesForUser(ctx context.Context, userUID string, start, end time.Time) ([]*models.DeliveryWithRate, error) {
	args := m.Called(ctx, userUID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DeliveryWithRate), args.Error(1)
}
func (m *RepoMock) UserStats(ctx context.Context, userUID string, start, end time.Time) (int, float64, int, error) {
	args := m.Called(ctx, userUID, start, end)
	return args.Int(0), args.Get(1).(float64), args.Int(2), args.Error(3)
}
func (m *RepoMock) ReadRate(ctx context.Context, id int) (*models.MilkRate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MilkRate), args.Error(1)
}
func (m *RepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) PublishOrderPlaced(event models.OrderPlacedEvent) error {
	return m.Called(event).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestPlaceOrder(t *testing.T) {
	rate := &models.MilkRate{ID: 2, Quantity: 500, Price: 25}
	order := models.DummyOrder{
		MilkID:       2,
		DeliveryTime: models.DeliveryMorning,
		DeliveryDate: "2025-09-10",
	}

	tests := []struct {
		name       string
		req        models.DummyOrder
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name: "успешный заказ фиксирует снимок тарифа",
			req:  order,
			setupMocks: func(r *RepoMock) {
				r.On("ReadRate", mock.Anything, 2).Return(rate, nil).Once()
				r.On("CreateDelivery", mock.Anything, mock.MatchedBy(func(d models.Delivery) bool {
					return d.UserUID == "uid-1" &&
						d.MilkRateID == 2 &&
						d.Quantity == 500 &&
						d.TotalPrice == 25 &&
						d.DeliveryTime == models.DeliveryMorning
				})).Return(11, nil).Once()
				r.On("ReadDeliveryWithRate", mock.Anything, 11).
					Return(&models.DeliveryWithRate{Delivery: models.Delivery{ID: 11}}, nil).Once()
			},
		},
		{
			name: "несуществующий тариф",
			req:  order,
			setupMocks: func(r *RepoMock) {
				r.On("ReadRate", mock.Anything, 2).Return(nil, repository.ErrNotFound).Once()
			},
			wantErr: ErrInvalidOption,
		},
		{
			name: "некорректная дата",
			req: models.DummyOrder{
				MilkID:       2,
				DeliveryTime: models.DeliveryMorning,
				DeliveryDate: "10.09.2025",
			},
			setupMocks: func(_ *RepoMock) {},
			wantErr:    ErrInvalidDate,
		},
		{
			name: "занятый слот",
			req:  order,
			setupMocks: func(r *RepoMock) {
				r.On("ReadRate", mock.Anything, 2).Return(rate, nil).Once()
				r.On("CreateDelivery", mock.Anything, mock.Anything).
					Return(0, repository.ErrSlotTaken).Once()
			},
			wantErr: repository.ErrSlotTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			svc := NewDeliveryService(repo, nil, newNoopLogger())

			created, err := svc.PlaceOrder(context.Background(), "uid-1", tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 11, created.ID)
			repo.AssertExpectations(t)
		})
	}
}

func TestPlaceOrder_PublishesEvent(t *testing.T) {
	repo := new(RepoMock)
	publisher := new(PublisherMock)

	rate := &models.MilkRate{ID: 2, Quantity: 500, Price: 25}
	repo.On("ReadRate", mock.Anything, 2).Return(rate, nil).Once()
	repo.On("CreateDelivery", mock.Anything, mock.Anything).Return(11, nil).Once()
	repo.On("ReadDeliveryWithRate", mock.Anything, 11).Return(&models.DeliveryWithRate{
		Delivery: models.Delivery{ID: 11, UserUID: "uid-1", Quantity: 500, TotalPrice: 25},
	}, nil).Once()
	repo.On("GetUser", mock.Anything, "uid-1").
		Return(&models.User{UID: "uid-1", Email: "user@example.com", Name: "Test User"}, nil).Once()
	publisher.On("PublishOrderPlaced", mock.MatchedBy(func(e models.OrderPlacedEvent) bool {
		return e.DeliveryID == 11 && e.Email == "user@example.com"
	})).Return(nil).Once()

	svc := NewDeliveryService(repo, publisher, newNoopLogger())

	_, err := svc.PlaceOrder(context.Background(), "uid-1", models.DummyOrder{
		MilkID:       2,
		DeliveryTime: models.DeliveryMorning,
		DeliveryDate: "2025-09-10",
	})
	require.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestPlaceOrder_PublishErrorDoesNotFailOrder(t *testing.T) {
	repo := new(RepoMock)
	publisher := new(PublisherMock)

	repo.On("ReadRate", mock.Anything, 2).Return(&models.MilkRate{ID: 2, Quantity: 500, Price: 25}, nil).Once()
	repo.On("CreateDelivery", mock.Anything, mock.Anything).Return(11, nil).Once()
	repo.On("ReadDeliveryWithRate", mock.Anything, 11).Return(&models.DeliveryWithRate{
		Delivery: models.Delivery{ID: 11, UserUID: "uid-1"},
	}, nil).Once()
	repo.On("GetUser", mock.Anything, "uid-1").Return(&models.User{UID: "uid-1"}, nil).Once()
	publisher.On("PublishOrderPlaced", mock.Anything).Return(errors.New("amqp down")).Once()

	svc := NewDeliveryService(repo, publisher, newNoopLogger())

	created, err := svc.PlaceOrder(context.Background(), "uid-1", models.DummyOrder{
		MilkID:       2,
		DeliveryTime: models.DeliveryMorning,
		DeliveryDate: "2025-09-10",
	})
	require.NoError(t, err)
	assert.Equal(t, 11, created.ID)
}

func TestUpdateOrder(t *testing.T) {
	existing := models.Delivery{
		ID:           11,
		UserUID:      "uid-1",
		MilkRateID:   2,
		Quantity:     500,
		TotalPrice:   25,
		DeliveryTime: models.DeliveryMorning,
		DeliveryDate: time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC),
	}

	t.Run("смена тарифа переснимает объём и цену", func(t *testing.T) {
		repo := new(RepoMock)
		newMilkID := 3
		entry := existing

		repo.On("ReadDeliveryForUser", mock.Anything, 11, "uid-1").Return(&entry, nil).Once()
		repo.On("ReadRate", mock.Anything, 3).
			Return(&models.MilkRate{ID: 3, Quantity: 1000, Price: 50}, nil).Once()
		repo.On("UpdateDelivery", mock.Anything, mock.MatchedBy(func(d models.Delivery) bool {
			return d.MilkRateID == 3 && d.Quantity == 1000 && d.TotalPrice == 50
		})).Return(1, nil).Once()
		repo.On("ReadDeliveryWithRate", mock.Anything, 11).
			Return(&models.DeliveryWithRate{Delivery: models.Delivery{ID: 11}}, nil).Once()

		svc := NewDeliveryService(repo, nil, newNoopLogger())
		_, err := svc.UpdateOrder(context.Background(), "uid-1", 11, models.DummyOrderUpdate{MilkID: &newMilkID})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("чужая доставка не видна", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ReadDeliveryForUser", mock.Anything, 11, "uid-2").
			Return(nil, repository.ErrNotFound).Once()

		svc := NewDeliveryService(repo, nil, newNoopLogger())
		_, err := svc.UpdateOrder(context.Background(), "uid-2", 11, models.DummyOrderUpdate{})
		require.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("перенос в занятый слот", func(t *testing.T) {
		repo := new(RepoMock)
		entry := existing
		newDate := "2025-09-11"

		repo.On("ReadDeliveryForUser", mock.Anything, 11, "uid-1").Return(&entry, nil).Once()
		repo.On("UpdateDelivery", mock.Anything, mock.Anything).
			Return(0, repository.ErrSlotTaken).Once()

		svc := NewDeliveryService(repo, nil, newNoopLogger())
		_, err := svc.UpdateOrder(context.Background(), "uid-1", 11, models.DummyOrderUpdate{DeliveryDate: &newDate})
		require.ErrorIs(t, err, repository.ErrSlotTaken)
	})
}

func TestCancelOrder(t *testing.T) {
	t.Run("успешная отмена", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("RemoveDelivery", mock.Anything, 11, "uid-1").Return(1, nil).Once()

		svc := NewDeliveryService(repo, nil, newNoopLogger())
		require.NoError(t, svc.CancelOrder(context.Background(), "uid-1", 11))
	})

	t.Run("нет такой доставки", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("RemoveDelivery", mock.Anything, 99, "uid-1").Return(0, nil).Once()

		svc := NewDeliveryService(repo, nil, newNoopLogger())
		err := svc.CancelOrder(context.Background(), "uid-1", 99)
		require.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestListForUser_WithoutWindow(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListDeliveriesForUser", mock.Anything, "uid-1", time.Time{}, time.Time{}).
		Return([]*models.DeliveryWithRate{}, nil).Once()

	svc := NewDeliveryService(repo, nil, newNoopLogger())
	_, err := svc.ListForUser(context.Background(), "uid-1", 0, 0)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestMonthlyStats(t *testing.T) {
	repo := new(RepoMock)
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	repo.On("UserStats", mock.Anything, "uid-1", start, end).
		Return(4500, 225.0, 9, nil).Once()

	svc := NewDeliveryService(repo, nil, newNoopLogger())
	userStats, err := svc.MonthlyStats(context.Background(), "uid-1", 9, 2025)
	require.NoError(t, err)
	assert.Equal(t, 4500, userStats.TotalMilk)
	assert.Equal(t, 225.0, userStats.TotalAmount)
	assert.Equal(t, 9, userStats.DeliveryCount)
}
