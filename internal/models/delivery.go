// Package models содержит доменные структуры доставки молока.
// Доставка хранит снимок объёма и цены из каталога на момент заказа:
// последующие изменения тарифа не влияют на уже созданные записи.
package models

import "time"

// Время доставки в течение дня.
const (
	DeliveryMorning = "morning"
	DeliveryEvening = "evening"
)

// DateLayout формат календарной даты доставки.
const DateLayout = "2006-01-02"

// Delivery представляет запланированную доставку молока.
// Пара (UserUID, DeliveryDate, DeliveryTime) уникальна — слот нельзя занять дважды.
type Delivery struct {
	ID           int       `json:"delivery_id"`   // Идентификатор доставки
	UserUID      string    `json:"user_uid"`      // Владелец доставки
	MilkRateID   int       `json:"milk_id"`       // Тариф, по которому сделан заказ
	Quantity     int       `json:"quantity"`      // Снимок объёма на момент заказа
	TotalPrice   float64   `json:"total_price"`   // Снимок цены на момент заказа
	DeliveryTime string    `json:"delivery_time"` // morning или evening
	DeliveryDate time.Time `json:"delivery_date"` // Календарная дата доставки
	CreatedAt    time.Time `json:"created_at"`    // Дата создания записи
}

// DeliveryWithRate — доставка вместе с текущими данными тарифа каталога.
type DeliveryWithRate struct {
	Delivery
	RateQuantity int     `json:"rate_quantity"` // Текущий объём тарифа
	RatePrice    float64 `json:"rate_price"`    // Текущая цена тарифа
}

// DeliveryAdminItem — доставка с данными пользователя для админских списков.
type DeliveryAdminItem struct {
	Delivery
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

// DummyOrder используется для приёма заказа из JSON-запроса.
// Дата приходит строкой, чтобы её можно было валидировать и парсить вручную.
type DummyOrder struct {
	MilkID       int    `json:"milk_id" validate:"required,gt=0"`                        // Идентификатор тарифа
	DeliveryTime string `json:"delivery_time" validate:"required,oneof=morning evening"` // Время доставки
	DeliveryDate string `json:"delivery_date" validate:"required"`                       // Дата в формате 2006-01-02
}

// DummyOrderUpdate используется для частичного изменения заказа.
// Поля-указатели: nil означает, что поле не меняется. Новый milk_id
// переснимает объём и цену из каталога.
type DummyOrderUpdate struct {
	MilkID       *int    `json:"milk_id,omitempty" validate:"omitempty,gt=0"`
	DeliveryTime *string `json:"delivery_time,omitempty" validate:"omitempty,oneof=morning evening"`
	DeliveryDate *string `json:"delivery_date,omitempty"`
}

// DeliveryFilter — параметры фильтрации админского списка доставок.
type DeliveryFilter struct {
	Date    *time.Time // Конкретная дата доставки (nil — без фильтра)
	UserUID *string    // Конкретный пользователь (nil — без фильтра)
}
