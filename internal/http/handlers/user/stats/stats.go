// Package stats реализует HTTP-обработчик месячной статистики пользователя.
package stats

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

// Handler управляет HTTP-запросами статистики пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики статистики доставок.
type Service interface {
	MonthlyStats(ctx context.Context, userUID string, m, year int) (*models.UserStats, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить месячную статистику
// @Description Возвращает объём молока, сумму и число доставок пользователя за месяц.
// @Tags User
// @Produce  json
// @Param month query int false "Месяц (1-12), по умолчанию текущий"
// @Param year query int false "Год, по умолчанию текущий"
// @Success 200 {object} models.UserStats "Статистика"
// @Failure 400 {object} response.ErrorResponse "Некорректный месяц или год"
// @Security BearerAuth
// @Router /users/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.stats"
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

	m, year, err := month.Resolve(r.URL.Query().Get("month"), r.URL.Query().Get("year"), time.Now().UTC())
	if err != nil {
		log.Error("invalid month or year", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid month or year"))
		return
	}

	userStats, err := h.service.MonthlyStats(r.Context(), userUID, m, year)
	if err != nil {
		log.Error("failed to calculate stats", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to calculate stats"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(userStats))
}
