package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/milk-delivery/internal/models"
)

// CountDeliveriesAndRevenue считает число доставок и выручку за окно [start, end).
func (s *Storage) CountDeliveriesAndRevenue(ctx context.Context, start, end time.Time) (int, float64, error) {
	const op = "storage.CountDeliveriesAndRevenue"
	select {
	case <-ctx.Done():
		return 0, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*), COALESCE(SUM(total_price), 0)
			  FROM deliveries
			  WHERE delivery_date >= $1 AND delivery_date < $2`
	var count int
	var revenue float64
	if err := s.DB.QueryRowContext(ctx, query, start, end).Scan(&count, &revenue); err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, revenue, nil
}

// DailyDeliveries возвращает по каждому дню окна количество и сумму доставок.
func (s *Storage) DailyDeliveries(ctx context.Context, start, end time.Time) ([]*models.DailyDelivery, error) {
	const op = "storage.DailyDeliveries"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT delivery_date, COUNT(*), COALESCE(SUM(total_price), 0)
			  FROM deliveries
			  WHERE delivery_date >= $1 AND delivery_date < $2
			  GROUP BY delivery_date
			  ORDER BY delivery_date ASC`
	rows, err := s.DB.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.DailyDelivery
	for rows.Next() {
		var item models.DailyDelivery
		if err := rows.Scan(&item.DeliveryDate, &item.Count, &item.TotalAmount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountPaymentsByStatus считает платежи с данным статусом за окно [start, end).
func (s *Storage) CountPaymentsByStatus(ctx context.Context, status string, start, end time.Time) (int, error) {
	const op = "storage.CountPaymentsByStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*)
			  FROM payments
			  WHERE status = $1 AND payment_date >= $2 AND payment_date < $3`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, status, start, end).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// ListDeliveriesAdmin возвращает доставки с данными пользователей для админского списка.
func (s *Storage) ListDeliveriesAdmin(ctx context.Context, filter models.DeliveryFilter) ([]*models.DeliveryAdminItem, error) {
	const op = "storage.ListDeliveriesAdmin"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT d.id, d.user_uid, d.milk_rate_id, d.quantity, d.total_price,
			      d.delivery_time, d.delivery_date, d.created_at, u.name, u.email
			  FROM deliveries d
			  JOIN users u ON u.uid = d.user_uid
			  WHERE ($1::date IS NULL OR d.delivery_date = $1)
			    AND ($2::uuid IS NULL OR d.user_uid = $2)
			  ORDER BY d.delivery_date DESC`
	rows, err := s.DB.QueryContext(ctx, query, filter.Date, filter.UserUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.DeliveryAdminItem
	for rows.Next() {
		var item models.DeliveryAdminItem
		if err := rows.Scan(&item.ID, &item.UserUID, &item.MilkRateID, &item.Quantity,
			&item.TotalPrice, &item.DeliveryTime, &item.DeliveryDate, &item.CreatedAt,
			&item.UserName, &item.UserEmail); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
