package models

import "time"

// OrderPlacedEvent — событие о созданном заказе, публикуемое в RabbitMQ
// для сервиса почтовых уведомлений.
type OrderPlacedEvent struct {
	DeliveryID   int       `json:"delivery_id"`
	UserUID      string    `json:"user_uid"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Quantity     int       `json:"quantity"`
	TotalPrice   float64   `json:"total_price"`
	DeliveryTime string    `json:"delivery_time"`
	DeliveryDate time.Time `json:"delivery_date"`
}
