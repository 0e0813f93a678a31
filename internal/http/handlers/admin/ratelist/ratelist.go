// Package ratelist реализует HTTP-обработчик списка тарифов для администратора.
package ratelist

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

// Handler управляет HTTP-запросами списка тарифов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	List(ctx context.Context) ([]*models.MilkRate, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить список тарифов
// @Tags Admin
// @Produce  json
// @Success 200 {array} models.MilkRate "Тарифы"
// @Security BearerAuth
// @Router /admin/milk-rates [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.ratelist"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	rates, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list milk rates", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list milk rates"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(rates))
}
