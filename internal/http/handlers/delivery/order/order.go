// Package order реализует HTTP-обработчик создания заказа на доставку молока.
//
// Объём и цена фиксируются из каталога на момент заказа, занятый слот
// (дата + время доставки) отклоняется со статусом 400.
package order

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

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

// Handler управляет HTTP-запросами на создание заказа.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики планирования доставок.
type Service interface {
	PlaceOrder(ctx context.Context, userUID string, req models.DummyOrder) (*models.DeliveryWithRate, error)
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
// @Summary Заказать доставку молока
// @Description Создает доставку по выбранному тарифу на указанные дату и время.
// @Tags Delivery
// @Accept  json
// @Produce  json
// @Param request body models.DummyOrder true "Параметры заказа"
// @Success 200 {object} models.DeliveryWithRate "Созданная доставка"
// @Failure 400 {object} response.ErrorResponse "Неверный тариф, дата или занятый слот"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /deliveries/order [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.delivery.order"
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

	var req models.DummyOrder
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

	created, err := h.service.PlaceOrder(r.Context(), userUID, req)
	if err != nil {
		switch {
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
			log.Error("failed to place order", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to place order"))
		}
		return
	}

	log.Info("success to place order", slog.Int("id", created.ID))
	render.JSON(w, r, response.StatusOKWithData(created))
}
