package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/milk-delivery/internal/models"
)

// CreateRate вставляет новый тариф и возвращает его ID.
// Возвращает ErrDuplicateQuantity, если тариф на такой объём уже есть.
func (s *Storage) CreateRate(ctx context.Context, rate models.MilkRate) (int, error) {
	const op = "storage.CreateRate"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO milk_rates (quantity, price, notes)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query, rate.Quantity, rate.Price, rate.Notes).Scan(&newID)
	if err != nil {
		if name, ok := uniqueViolation(err); ok && name == constraintRateQuantity {
			return 0, fmt.Errorf("%s: %w", op, ErrDuplicateQuantity)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// UpdateRate обновляет цену и примечание тарифа по ID.
// Объём не меняется. Возвращает ErrNotFound, если тарифа нет.
func (s *Storage) UpdateRate(ctx context.Context, id int, price float64, notes string) error {
	const op = "storage.UpdateRate"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE milk_rates
			  SET price = $1, notes = $2, updated_at = NOW()
			  WHERE id = $3`
	result, err := s.DB.ExecContext(ctx, query, price, notes, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// ReadRate возвращает тариф по его ID или ErrNotFound.
func (s *Storage) ReadRate(ctx context.Context, id int) (*models.MilkRate, error) {
	const op = "storage.ReadRate"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, quantity, price, notes, created_at, updated_at
			  FROM milk_rates WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.MilkRate
	if err := row.Scan(&result.ID, &result.Quantity, &result.Price, &result.Notes,
		&result.CreatedAt, &result.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListRates возвращает все тарифы каталога по возрастанию объёма.
func (s *Storage) ListRates(ctx context.Context) ([]*models.MilkRate, error) {
	const op = "storage.ListRates"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, quantity, price, notes, created_at, updated_at
			  FROM milk_rates
			  ORDER BY quantity ASC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.MilkRate
	for rows.Next() {
		var item models.MilkRate
		if err := rows.Scan(&item.ID, &item.Quantity, &item.Price, &item.Notes,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
