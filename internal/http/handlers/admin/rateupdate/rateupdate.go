// Package rateupdate реализует HTTP-обработчик изменения тарифа администратором.
//
// Изменение цены действует только на будущие заказы: снимки цены в уже
// созданных доставках не пересчитываются.
package rateupdate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/milk-delivery/internal/http/response"
	"github.com/magabrotheeeer/milk-delivery/internal/lib/sl"
	"github.com/magabrotheeeer/milk-delivery/internal/models"
	"github.com/magabrotheeeer/milk-delivery/internal/storage/repository"
)

// Handler управляет HTTP-запросами на изменение тарифа.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	Update(ctx context.Context, id int, req models.DummyRateUpdate) (*models.MilkRate, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Изменить тариф
// @Description Меняет цену и примечание тарифа. Объём тарифа неизменяем.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param id path int true "ID тарифа"
// @Param request body models.DummyRateUpdate true "Новая цена и примечание"
// @Success 200 {object} models.MilkRate "Обновлённый тариф"
// @Failure 404 {object} response.ErrorResponse "Тариф не найден"
// @Security BearerAuth
// @Router /admin/milk-rates/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.rateupdate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid milk rate id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid milk rate id"))
		return
	}

	var req models.DummyRateUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	rate, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("milk rate not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("milk rate not found"))
			return
		}
		log.Error("failed to update milk rate", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update milk rate"))
		return
	}

	log.Info("success to update milk rate", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(rate))
}
