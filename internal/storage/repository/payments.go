package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/milk-delivery/internal/models"
)

// CreatePayment сохраняет платёж и возвращает его ID.
// Повторный запрос с тем же ключом идемпотентности возвращает ErrDuplicateKey.
func (s *Storage) CreatePayment(ctx context.Context, p models.Payment) (int, error) {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (user_uid, amount, payment_method, notes, status,
			      payment_date, idempotency_key)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		p.UserUID, p.Amount, p.PaymentMethod, p.Notes, p.Status,
		p.PaymentDate, p.IdempotencyKey).Scan(&newID)
	if err != nil {
		if name, ok := uniqueViolation(err); ok && name == constraintIdempotencyKey {
			return 0, fmt.Errorf("%s: %w", op, ErrDuplicateKey)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadPayment возвращает платёж по ID или ErrNotFound.
func (s *Storage) ReadPayment(ctx context.Context, id int) (*models.Payment, error) {
	const op = "storage.ReadPayment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, amount, payment_method, notes, status,
			      payment_date, idempotency_key, created_at
			  FROM payments WHERE id = $1`
	return s.scanPayment(s.DB.QueryRowContext(ctx, query, id), op)
}

// ReadPaymentByKey возвращает платёж пользователя по ключу идемпотентности.
func (s *Storage) ReadPaymentByKey(ctx context.Context, userUID, key string) (*models.Payment, error) {
	const op = "storage.ReadPaymentByKey"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, amount, payment_method, notes, status,
			      payment_date, idempotency_key, created_at
			  FROM payments
			  WHERE user_uid = $1 AND idempotency_key = $2`
	return s.scanPayment(s.DB.QueryRowContext(ctx, query, userUID, key), op)
}

func (s *Storage) scanPayment(row *sql.Row, op string) (*models.Payment, error) {
	var result models.Payment
	var method, notes sql.NullString
	if err := row.Scan(&result.ID, &result.UserUID, &result.Amount, &method, &notes,
		&result.Status, &result.PaymentDate, &result.IdempotencyKey, &result.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result.PaymentMethod = method.String
	result.Notes = notes.String
	return &result, nil
}

// SumPayments возвращает сумму платежей пользователя с данным статусом в окне [start, end).
func (s *Storage) SumPayments(ctx context.Context, userUID, status string, start, end time.Time) (float64, error) {
	const op = "storage.SumPayments"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COALESCE(SUM(amount), 0)
			  FROM payments
			  WHERE user_uid = $1 AND status = $2
			    AND payment_date >= $3 AND payment_date < $4`
	var total float64
	if err := s.DB.QueryRowContext(ctx, query, userUID, status, start, end).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// ListPaymentsForUser возвращает все платежи пользователя, новые первыми.
func (s *Storage) ListPaymentsForUser(ctx context.Context, userUID string) ([]*models.Payment, error) {
	const op = "storage.ListPaymentsForUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, amount, payment_method, notes, status,
			      payment_date, idempotency_key, created_at
			  FROM payments
			  WHERE user_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		var item models.Payment
		var method, notes sql.NullString
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Amount, &method, &notes,
			&item.Status, &item.PaymentDate, &item.IdempotencyKey, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.PaymentMethod = method.String
		item.Notes = notes.String
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAllPayments возвращает все платежи с данными пользователей, новые первыми.
func (s *Storage) ListAllPayments(ctx context.Context) ([]*models.PaymentAdminItem, error) {
	const op = "storage.ListAllPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT p.id, p.user_uid, p.amount, p.payment_method, p.notes, p.status,
			      p.payment_date, p.idempotency_key, p.created_at, u.name, u.email
			  FROM payments p
			  JOIN users u ON u.uid = p.user_uid
			  ORDER BY p.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.PaymentAdminItem
	for rows.Next() {
		var item models.PaymentAdminItem
		var method, notes sql.NullString
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Amount, &method, &notes,
			&item.Status, &item.PaymentDate, &item.IdempotencyKey, &item.CreatedAt,
			&item.UserName, &item.UserEmail); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.PaymentMethod = method.String
		item.Notes = notes.String
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
