package service

import (
	"context"

	"go.uber.org/zap"

	"backoffice/internal/domain"
	apperrors "backoffice/internal/errors"
)

type OrderRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	UpdateFlags(ctx context.Context, id string, flags domain.OrderFlags) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}

type OrderService struct {
	orderRepo OrderRepository
	logger    *zap.Logger
}

func NewOrderService(orderRepo OrderRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}

// UpdateOrderFlags sets the paid and fulfillment flags. At least one of
// them must be present.
func (s *OrderService) UpdateOrderFlags(ctx context.Context, id string, flags domain.OrderFlags) (*domain.Order, error) {
	if flags.IsEmpty() {
		return nil, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "body",
			Message: "at least one of paid, fulfillment must be provided",
		})
	}

	order, err := s.orderRepo.UpdateFlags(ctx, id, flags)
	if err != nil {
		s.logger.Warn("failed to update order flags", zap.String("orderId", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("order flags updated",
		zap.String("orderId", id),
		zap.Bool("paid", order.Paid),
		zap.Bool("fulfillment", order.Fulfillment),
	)
	return order, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("order deleted", zap.String("orderId", id))
	return nil
}
