package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/milk-delivery/internal/models"
)

// CreateDelivery вставляет новую доставку и возвращает её ID.
// Уникальный индекс по слоту гарантирует, что два конкурентных запроса
// на одну пару (дата, время) не пройдут оба: проигравший получает ErrSlotTaken.
func (s *Storage) CreateDelivery(ctx context.Context, d models.Delivery) (int, error) {
	const op = "storage.CreateDelivery"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO deliveries (user_uid, milk_rate_id, quantity, total_price,
			      delivery_time, delivery_date)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		d.UserUID, d.MilkRateID, d.Quantity, d.TotalPrice,
		d.DeliveryTime, d.DeliveryDate).Scan(&newID)
	if err != nil {
		if name, ok := uniqueViolation(err); ok && name == constraintDeliverySlot {
			return 0, fmt.Errorf("%s: %w", op, ErrSlotTaken)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadDeliveryForUser возвращает доставку по ID, если она принадлежит пользователю.
func (s *Storage) ReadDeliveryForUser(ctx context.Context, id int, userUID string) (*models.Delivery, error) {
	const op = "storage.ReadDeliveryForUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, milk_rate_id, quantity, total_price,
			      delivery_time, delivery_date, created_at
			  FROM deliveries
			  WHERE id = $1 AND user_uid = $2`
	row := s.DB.QueryRowContext(ctx, query, id, userUID)

	var result models.Delivery
	if err := row.Scan(&result.ID, &result.UserUID, &result.MilkRateID, &result.Quantity,
		&result.TotalPrice, &result.DeliveryTime, &result.DeliveryDate, &result.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ReadDeliveryWithRate возвращает доставку вместе с текущими данными её тарифа.
func (s *Storage) ReadDeliveryWithRate(ctx context.Context, id int) (*models.DeliveryWithRate, error) {
	const op = "storage.ReadDeliveryWithRate"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT d.id, d.user_uid, d.milk_rate_id, d.quantity, d.total_price,
			      d.delivery_time, d.delivery_date, d.created_at,
			      r.quantity, r.price
			  FROM deliveries d
			  JOIN milk_rates r ON r.id = d.milk_rate_id
			  WHERE d.id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.DeliveryWithRate
	if err := row.Scan(&result.ID, &result.UserUID, &result.MilkRateID, &result.Quantity,
		&result.TotalPrice, &result.DeliveryTime, &result.DeliveryDate, &result.CreatedAt,
		&result.RateQuantity, &result.RatePrice); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateDelivery перезаписывает изменяемые поля доставки.
// Уникальный индекс по слоту действует и на UPDATE: перенос заказа
// в занятый слот возвращает ErrSlotTaken.
func (s *Storage) UpdateDelivery(ctx context.Context, d models.Delivery) (int, error) {
	const op = "storage.UpdateDelivery"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE deliveries
			  SET milk_rate_id = $1, quantity = $2, total_price = $3,
			      delivery_time = $4, delivery_date = $5
			  WHERE id = $6 AND user_uid = $7`
	result, err := s.DB.ExecContext(ctx, query,
		d.MilkRateID, d.Quantity, d.TotalPrice, d.DeliveryTime, d.DeliveryDate,
		d.ID, d.UserUID)
	if err != nil {
		if name, ok := uniqueViolation(err); ok && name == constraintDeliverySlot {
			return 0, fmt.Errorf("%s: %w", op, ErrSlotTaken)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveDelivery удаляет доставку пользователя и возвращает количество удалённых строк.
func (s *Storage) RemoveDelivery(ctx context.Context, id int, userUID string) (int, error) {
	const op = "storage.RemoveDelivery"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM deliveries WHERE id = $1 AND user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListDeliveriesForUser возвращает доставки пользователя, новые даты первыми.
// Ненулевые start/end ограничивают выборку полуинтервалом [start, end).
func (s *Storage) ListDeliveriesForUser(ctx context.Context, userUID string, start, end time.Time) ([]*models.DeliveryWithRate, error) {
	const op = "storage.ListDeliveriesForUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT d.id, d.user_uid, d.milk_rate_id, d.quantity, d.total_price,
			      d.delivery_time, d.delivery_date, d.created_at,
			      r.quantity, r.price
			  FROM deliveries d
			  JOIN milk_rates r ON r.id = d.milk_rate_id
			  WHERE d.user_uid = $1
			    AND ($2::timestamptz IS NULL OR (d.delivery_date >= $2 AND d.delivery_date < $3))
			  ORDER BY d.delivery_date DESC, d.delivery_time`
	var startArg, endArg any
	if !start.IsZero() {
		startArg, endArg = start, end
	}
	rows, err := s.DB.QueryContext(ctx, query, userUID, startArg, endArg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.DeliveryWithRate
	for rows.Next() {
		var item models.DeliveryWithRate
		if err := rows.Scan(&item.ID, &item.UserUID, &item.MilkRateID, &item.Quantity,
			&item.TotalPrice, &item.DeliveryTime, &item.DeliveryDate, &item.CreatedAt,
			&item.RateQuantity, &item.RatePrice); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SumDeliveries возвращает сумму total_price доставок пользователя в окне [start, end).
func (s *Storage) SumDeliveries(ctx context.Context, userUID string, start, end time.Time) (float64, error) {
	const op = "storage.SumDeliveries"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COALESCE(SUM(total_price), 0)
			  FROM deliveries
			  WHERE user_uid = $1 AND delivery_date >= $2 AND delivery_date < $3`
	var total float64
	if err := s.DB.QueryRowContext(ctx, query, userUID, start, end).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// UserStats считает месячную статистику пользователя: объём, сумму и число доставок.
func (s *Storage) UserStats(ctx context.Context, userUID string, start, end time.Time) (int, float64, int, error) {
	const op = "storage.UserStats"
	select {
	case <-ctx.Done():
		return 0, 0, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COALESCE(SUM(quantity), 0), COALESCE(SUM(total_price), 0), COUNT(*)
			  FROM deliveries
			  WHERE user_uid = $1 AND delivery_date >= $2 AND delivery_date < $3`
	var totalMilk, count int
	var totalAmount float64
	if err := s.DB.QueryRowContext(ctx, query, userUID, start, end).Scan(&totalMilk, &totalAmount, &count); err != nil {
		return 0, 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	return totalMilk, totalAmount, count, nil
}
