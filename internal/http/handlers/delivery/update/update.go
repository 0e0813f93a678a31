// Package update реализует HTTP-обработчик изменения заказа на доставку.
package update

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

	"github.com/magabrotheeeer/milk-delivery/internal/http/middlewarectx"
	"github.com/magabrotheeeer/milk-delivery/internal/http/response"
	"github.com/magabrotheeeer/milk-delivery/internal/lib/sl"
	"github.com/magabrotheeeer/milk-delivery/internal/models"
	deliveryservice "github.com/magabrotheeeer/milk-delivery/internal/services/delivery"
	"github.com/magabrotheeeer/milk-delivery/internal/storage/repository"
)

// Handler управляет HTTP-запросами на изменение заказа.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики изменения доставок.
type Service interface {
	UpdateOrder(ctx context.Context, userUID string, id int, req models.DummyOrderUpdate) (*models.DeliveryWithRate, error)
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
// @Summary Изменить заказ на доставку
// @Description Меняет тариф, дату или время существующей доставки пользователя.
// @Tags Delivery
// @Accept  json
// @Produce  json
// @Param id path int true "ID доставки"
// @Param request body models.DummyOrderUpdate true "Изменяемые поля"
// @Success 200 {object} models.DeliveryWithRate "Обновлённая доставка"
// @Failure 400 {object} response.ErrorResponse "Неверный тариф, дата или занятый слот"
// @Failure 404 {object} response.ErrorResponse "Доставка не найдена"
// @Security BearerAuth
// @Router /deliveries/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.delivery.update"
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

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid delivery id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid delivery id"))
		return
	}

	var req models.DummyOrderUpdate
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

	updated, err := h.service.UpdateOrder(r.Context(), userUID, id, req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			log.Error("delivery not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("delivery not found"))
		case errors.Is(err, deliveryservice.ErrInvalidOption):
			log.Error("invalid milk option", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid milk option"))
		case errors.Is(err, deliveryservice.ErrInvalidDate):
			log.Error("invalid delivery date", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid delivery date"))
		case errors.Is(err, repository.ErrSlotTaken):
			log.Error("delivery slot already taken", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("delivery already scheduled for this date and time"))
		default:
			log.Error("failed to update order", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update order"))
		}
		return
	}

	log.Info("success to update order", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(updated))
}
