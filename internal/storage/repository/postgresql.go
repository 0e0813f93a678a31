// Package repository реализует хранилище данных на основе PostgreSQL
// для управления тарифами, доставками, платежами и пользователями.
// Инварианты уникальности (слот доставки, объём тарифа, ключ идемпотентности)
// обеспечиваются уникальными индексами, а не проверками в коде: нарушения
// транслируются в доменные ошибки-сентинелы.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Доменные ошибки хранилища. Обработчики сопоставляют их с HTTP-статусами.
var (
	// ErrNotFound — запись отсутствует либо не принадлежит вызывающему.
	ErrNotFound = errors.New("record not found")
	// ErrSlotTaken — слот (пользователь, дата, время) уже занят другой доставкой.
	ErrSlotTaken = errors.New("delivery slot already booked")
	// ErrDuplicateQuantity — тариф на такой объём уже существует.
	ErrDuplicateQuantity = errors.New("milk rate for this quantity already exists")
	// ErrDuplicateKey — платёж с таким ключом идемпотентности уже зафиксирован.
	ErrDuplicateKey = errors.New("payment with this idempotency key already exists")
	// ErrUserExists — пользователь с таким username или email уже зарегистрирован.
	ErrUserExists = errors.New("user already exists")
)

// Имена уникальных ограничений схемы, см. migrations/000001_init.up.sql.
const (
	constraintDeliverySlot   = "ux_deliveries_slot"
	constraintRateQuantity   = "milk_rates_quantity_key"
	constraintIdempotencyKey = "payments_user_uid_idempotency_key_key"
	constraintUserEmail      = "users_email_key"
	constraintUserUsername   = "users_username_key"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с доменными сущностями.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'deliveries'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table deliveries missing or query error: %w", err)
	}
	return nil
}

// uniqueViolation возвращает имя нарушенного ограничения, если err —
// нарушение уникальности PostgreSQL.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}
