// Package paymentlist реализует HTTP-обработчик списка платежей для администратора.
package paymentlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/milk-delivery/internal/http/response"
	"github.com/magabrotheeeer/milk-delivery/internal/lib/sl"
	"github.com/magabrotheeeer/milk-delivery/internal/models"
)

// Handler управляет HTTP-запросами списка платежей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отчётности.
type Service interface {
	ListPayments(ctx context.Context) ([]*models.PaymentAdminItem, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить список платежей
// @Tags Admin
// @Produce  json
// @Success 200 {array} models.PaymentAdminItem "Платежи"
// @Security BearerAuth
// @Router /admin/payments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.paymentlist"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	payments, err := h.service.ListPayments(r.Context())
	if err != nil {
		log.Error("failed to list payments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list payments"))
		return
	}

	log.Info("success to list payments", slog.Int("count", len(payments)))
	render.JSON(w, r, response.StatusOKWithData(payments))
}
