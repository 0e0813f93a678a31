// Package deliverylist реализует HTTP-обработчик истории доставок пользователя.
package deliverylist

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/milk-delivery/internal/http/middlewarectx"
	"github.com/magabrotheeeer/milk-delivery/internal/http/response"
	"github.com/magabrotheeeer/milk-delivery/internal/lib/month"
	"github.com/magabrotheeeer/milk-delivery/internal/lib/sl"
	"github.com/magabrotheeeer/milk-delivery/internal/models"
)

// Handler управляет HTTP-запросами истории доставок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики выборки доставок.
type Service interface {
	ListForUser(ctx context.Context, userUID string, m, year int) ([]*models.DeliveryWithRate, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить историю доставок
// @Description Возвращает доставки текущего пользователя. Без параметров — всю историю, с month и year — за указанный месяц.
// @Tags User
// @Produce  json
// @Param month query int false "Месяц (1-12)"
// @Param year query int false "Год"
// @Success 200 {array} models.DeliveryWithRate "Доставки"
// @Failure 400 {object} response.ErrorResponse "Некорректный месяц или год"
// @Security BearerAuth
// @Router /users/deliveries [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.deliverylist"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("missing user uid in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	monthStr := r.URL.Query().Get("month")
	yearStr := r.URL.Query().Get("year")

	// Без параметров отдаём всю историю, не текущий месяц.
	var m, year int
	if monthStr != "" || yearStr != "" {
		var err error
		m, year, err = month.Resolve(monthStr, yearStr, time.Now().UTC())
		if err != nil {
			log.Error("invalid month or year", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid month or year"))
			return
		}
	}

	deliveries, err := h.service.ListForUser(r.Context(), userUID, m, year)
	if err != nil {
		log.Error("failed to list deliveries", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list deliveries"))
		return
	}

	log.Info("success to list deliveries", slog.Int("count", len(deliveries)))
	render.JSON(w, r, response.StatusOKWithData(deliveries))
}
