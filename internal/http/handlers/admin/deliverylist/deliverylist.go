// Package deliverylist реализует HTTP-обработчик списка доставок для администратора.
package deliverylist

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/milk-delivery/internal/http/response"
	"github.com/magabrotheeeer/milk-delivery/internal/lib/sl"
	"github.com/magabrotheeeer/milk-delivery/internal/models"
)

// Handler управляет HTTP-запросами списка доставок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отчётности.
type Service interface {
	ListDeliveries(ctx context.Context, filter models.DeliveryFilter) ([]*models.DeliveryAdminItem, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить список доставок
// @Description Возвращает доставки с данными пользователей, опционально отфильтрованные по дате и пользователю.
// @Tags Admin
// @Produce  json
// @Param date query string false "Дата доставки (YYYY-MM-DD)"
// @Param user_uid query string false "UID пользователя"
// @Success 200 {array} models.DeliveryAdminItem "Доставки"
// @Failure 400 {object} response.ErrorResponse "Некорректный фильтр"
// @Security BearerAuth
// @Router /admin/deliveries [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.deliverylist"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var filter models.DeliveryFilter
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse(models.DateLayout, dateStr)
		if err != nil {
			log.Error("invalid date filter", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid date filter"))
			return
		}
		filter.Date = &date
	}
	if uidStr := r.URL.Query().Get("user_uid"); uidStr != "" {
		if _, err := uuid.Parse(uidStr); err != nil {
			log.Error("invalid user uid filter", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid user uid filter"))
			return
		}
		filter.UserUID = &uidStr
	}

	deliveries, err := h.service.ListDeliveries(r.Context(), filter)
	if err != nil {
		log.Error("failed to list deliveries", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list deliveries"))
		return
	}

	log.Info("success to list deliveries", slog.Int("count", len(deliveries)))
	render.JSON(w, r, response.StatusOKWithData(deliveries))
}
