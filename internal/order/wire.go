package order

import (
	"go.uber.org/zap"

	"backoffice/internal/order/controller"
	"backoffice/internal/order/service"
)

func NewModule(orderRepo service.OrderRepository, logger *zap.Logger) *controller.OrdersController {
	svc := service.NewOrderService(orderRepo, logger)
	return controller.NewOrdersController(svc, logger)
}
