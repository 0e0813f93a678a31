// Package services содержит логику сервиса почтовых уведомлений:
// разбор событий о заказах и отправку писем-подтверждений.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/milk-delivery/internal/lib/smtp"
	"github.com/magabrotheeeer/milk-delivery/internal/models"
)

// MailTransport описывает SMTP-транспорт для отправки писем.
type MailTransport interface {
	Connect() (smtp.Client, error)
	Send(client smtp.Client, to, subject, body string) error
}

// SenderService обрабатывает события о заказах и отправляет подтверждения.
type SenderService struct {
	transport MailTransport
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport MailTransport, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// HandleMessage разбирает событие о заказе и отправляет письмо пользователю.
func (s *SenderService) HandleMessage(body []byte) error {
	const op = "sender.HandleMessage"

	var event models.OrderPlacedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	subject, text := ComposeOrderConfirmation(event)

	client, err := s.transport.Connect()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = client.Quit()
	}()

	if err := s.transport.Send(client, event.Email, subject, text); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("sent order confirmation",
		slog.Int("delivery_id", event.DeliveryID),
		slog.String("email", event.Email))
	return nil
}

// ComposeOrderConfirmation формирует тему и текст письма-подтверждения.
func ComposeOrderConfirmation(event models.OrderPlacedEvent) (subject, text string) {
	subject = "Your milk delivery is scheduled"
	text = fmt.Sprintf(
		"Hello %s!\n\nYour order is confirmed: %dml of milk will be delivered on %s (%s).\nTotal price: %.2f\n\nMilk Delivery Team",
		event.Name,
		event.Quantity,
		event.DeliveryDate.Format(models.DateLayout),
		event.DeliveryTime,
		event.TotalPrice,
	)
	return subject, text
}
