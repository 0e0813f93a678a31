package models

import "time"

// Статусы платежа.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusPaid      = "paid"
	PaymentStatusCancelled = "cancelled"
)

// Payment представляет зафиксированный платёж пользователя.
// Сумма не сверяется с задолженностью: пользователь может переплатить.
type Payment struct {
	ID             int       `json:"id"`
	UserUID        string    `json:"user_uid"`
	Amount         float64   `json:"amount"`
	PaymentMethod  string    `json:"payment_method,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	Status         string    `json:"status"`
	PaymentDate    time.Time `json:"payment_date"`
	IdempotencyKey *string   `json:"-"` // Ключ дедупликации повторных запросов
	CreatedAt      time.Time `json:"created_at"`
}

// PaymentAdminItem — платёж с данными пользователя для админских списков.
type PaymentAdminItem struct {
	Payment
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

// DummyPayment используется для приёма платежа из JSON-запроса.
type DummyPayment struct {
	Amount        float64 `json:"amount" validate:"required,gt=0"` // Сумма платежа (>0)
	PaymentMethod string  `json:"payment_method,omitempty"`        // Способ оплаты (опционально)
	Notes         string  `json:"notes,omitempty"`                 // Примечание (опционально)
}

// OutstandingBalance — задолженность пользователя за календарный месяц.
// Отрицательный остаток (переплата) обрезается до нуля и не переносится.
type OutstandingBalance struct {
	Month             int     `json:"month"`
	Year              int     `json:"year"`
	TotalDeliveries   float64 `json:"totalDeliveries"`
	TotalPayments     float64 `json:"totalPayments"`
	OutstandingAmount float64 `json:"outstandingAmount"`
}
