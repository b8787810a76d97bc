package controller

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"backoffice/internal/domain"
	"backoffice/internal/dto"
	"backoffice/internal/infrastructure/httpio"
)

type OrderService interface {
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	UpdateOrderFlags(ctx context.Context, id string, flags domain.OrderFlags) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

type OrdersController struct {
	service OrderService
	logger  *zap.Logger
}

func NewOrdersController(service OrderService, logger *zap.Logger) *OrdersController {
	return &OrdersController{
		service: service,
		logger:  logger,
	}
}

func (c *OrdersController) Routes(r chi.Router) {
	r.Get("/{id}", c.HandleGetOrder)
	r.Patch("/{id}", c.HandleUpdateOrder)
	r.Delete("/{id}", c.HandleDeleteOrder)
}

func (c *OrdersController) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := c.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpio.WriteError(w, r, c.logger, err)
		return
	}
	httpio.WriteJSON(w, c.logger, http.StatusOK, dto.NewOrderDTO(*order))
}

func (c *OrdersController) HandleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateOrderRequest
	if err := httpio.DecodeStrict(w, r, &req); err != nil {
		httpio.WriteError(w, r, c.logger, err)
		return
	}

	order, err := c.service.UpdateOrderFlags(r.Context(), chi.URLParam(r, "id"), domain.OrderFlags{
		Paid:        req.Paid,
		Fulfillment: req.Fulfillment,
	})
	if err != nil {
		httpio.WriteError(w, r, c.logger, err)
		return
	}
	httpio.WriteJSON(w, c.logger, http.StatusOK, dto.NewOrderDTO(*order))
}

func (c *OrdersController) HandleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := c.service.DeleteOrder(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpio.WriteError(w, r, c.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
