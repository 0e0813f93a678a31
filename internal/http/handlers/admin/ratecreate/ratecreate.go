// Package ratecreate реализует HTTP-обработчик добавления тарифа администратором.
package ratecreate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/milk-delivery/internal/http/response"
	"github.com/magabrotheeeer/milk-delivery/internal/lib/sl"
	"github.com/magabrotheeeer/milk-delivery/internal/models"
	"github.com/magabrotheeeer/milk-delivery/internal/storage/repository"
)

// Handler управляет HTTP-запросами на добавление тарифа.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	Create(ctx context.Context, req models.DummyRate) (*models.MilkRate, error)
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
// @Summary Добавить тариф
// @Description Создает тариф с уникальным объёмом молока. Дубликат объёма отклоняется.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body models.DummyRate true "Новый тариф"
// @Success 200 {object} models.MilkRate "Созданный тариф"
// @Failure 400 {object} response.ErrorResponse "Тариф с таким объёмом уже существует"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Security BearerAuth
// @Router /admin/milk-rates [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.ratecreate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyRate
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

	rate, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateQuantity) {
			log.Error("duplicate milk rate quantity", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("milk rate with this quantity already exists"))
			return
		}
		log.Error("failed to create milk rate", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create milk rate"))
		return
	}

	log.Info("success to create milk rate", slog.Int("id", rate.ID))
	render.JSON(w, r, response.StatusOKWithData(rate))
}
