package product

import (
	"go.uber.org/zap"

	"backoffice/internal/config"
	"backoffice/internal/product/controller"
	"backoffice/internal/product/service"
)

func NewModule(repo service.Repository, observer service.MutationObserver, cfg config.InventoryConfig, logger *zap.Logger) *controller.Controller {
	products := service.NewService(repo, logger)
	inventory := service.NewInventoryService(repo, observer, logger, cfg.MutationTimeout)
	return controller.NewController(products, inventory, logger)
}
