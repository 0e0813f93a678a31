// Package dashboard реализует HTTP-обработчик сводной статистики для администратора.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/milk-delivery/internal/http/response"
	"github.com/magabrotheeeer/milk-delivery/internal/lib/month"
	"github.com/magabrotheeeer/milk-delivery/internal/lib/sl"
	"github.com/magabrotheeeer/milk-delivery/internal/models"
)

// Handler управляет HTTP-запросами админской сводки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отчётности.
type Service interface {
	Dashboard(ctx context.Context, m, year int) (*models.DashboardStats, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить сводку за месяц
// @Description Возвращает число подписчиков, доставок, выручку, счётчики платежей и поденную разбивку.
// @Tags Admin
// @Produce  json
// @Param month query int false "Месяц (1-12), по умолчанию текущий"
// @Param year query int false "Год, по умолчанию текущий"
// @Success 200 {object} models.DashboardStats "Сводка"
// @Failure 400 {object} response.ErrorResponse "Некорректный месяц или год"
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.dashboard"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	m, year, err := month.Resolve(r.URL.Query().Get("month"), r.URL.Query().Get("year"), time.Now().UTC())
	if err != nil {
		log.Error("invalid month or year", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid month or year"))
		return
	}

	dashboardStats, err := h.service.Dashboard(r.Context(), m, year)
	if err != nil {
		log.Error("failed to build dashboard", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to build dashboard"))
		return
	}

	log.Info("success to build dashboard", slog.Int("month", m), slog.Int("year", year))
	render.JSON(w, r, response.StatusOKWithData(dashboardStats))
}
