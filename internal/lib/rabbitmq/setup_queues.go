package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// Топология событий о заказах: exchange, очередь уведомлений и ключ маршрутизации.
const (
	DeliveriesExchange = "deliveries"
	OrdersQueue        = "delivery.notifications"
	OrderPlacedKey     = "delivery.ordered"
)

// SetupQueues объявляет exchange, очередь уведомлений и их привязку.
// Повторный вызов на существующей топологии безопасен.
func SetupQueues(ch *amqp.Channel) error {
	const op = "rabbitmq.SetupQueues"

	if err := ch.ExchangeDeclare(
		DeliveriesExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := ch.QueueDeclare(
		OrdersQueue,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := ch.QueueBind(
		OrdersQueue,
		OrderPlacedKey,
		DeliveriesExchange,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
