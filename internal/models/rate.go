// Package models содержит доменные структуры тарифов на молоко,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// MilkRate представляет тариф каталога: объём в миллилитрах и цену за доставку.
// Quantity — естественный ключ, в каталоге не бывает двух тарифов на один объём.
type MilkRate struct {
	ID        int       `json:"id"`         // Идентификатор тарифа
	Quantity  int       `json:"quantity"`   // Объём молока в миллилитрах
	Price     float64   `json:"price"`      // Цена за одну доставку
	Notes     string    `json:"notes"`      // Примечание, например "500ml milk"
	CreatedAt time.Time `json:"created_at"` // Дата создания тарифа
	UpdatedAt time.Time `json:"updated_at"` // Дата последнего изменения
}

// DummyRate используется для приёма данных нового тарифа из JSON-запроса.
type DummyRate struct {
	Quantity int     `json:"quantity" validate:"required,gt=0"` // Объём (>0)
	Price    float64 `json:"price" validate:"gte=0"`            // Цена (>=0)
	Notes    string  `json:"notes,omitempty"`                   // Примечание (опционально)
}

// DummyRateUpdate используется для приёма обновления тарифа из JSON-запроса.
// Объём тарифа не меняется: это естественный ключ записи каталога.
type DummyRateUpdate struct {
	Price float64 `json:"price" validate:"gte=0"` // Новая цена (>=0)
	Notes string  `json:"notes,omitempty"`        // Новое примечание
}
