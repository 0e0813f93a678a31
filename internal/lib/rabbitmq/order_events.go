package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/milk-delivery/internal/models"
)

// OrderEventPublisher публикует события о заказах в exchange доставок.
type OrderEventPublisher struct {
	ch *amqp.Channel
}

// NewOrderEventPublisher создает новый экземпляр OrderEventPublisher.
func NewOrderEventPublisher(ch *amqp.Channel) *OrderEventPublisher {
	return &OrderEventPublisher{ch: ch}
}

// PublishOrderPlaced публикует событие о созданном заказе.
func (p *OrderEventPublisher) PublishOrderPlaced(event models.OrderPlacedEvent) error {
	return PublishMessage(p.ch, DeliveriesExchange, OrderPlacedKey, event)
}
