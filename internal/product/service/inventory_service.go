package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"backoffice/internal/domain"
	apperrors "backoffice/internal/errors"
)

const (
	OpSetColorQuantity       = "set_color_quantity"
	OpIncrementColorQuantity = "increment_color_quantity"
	OpSetStock               = "set_stock"
)

// MutationObserver is told the outcome of every inventory mutation.
type MutationObserver interface {
	ObserveMutation(operation, outcome string)
}

type noopObserver struct{}

func (noopObserver) ObserveMutation(string, string) {}

// InventoryService applies quantity changes to a product's inventory.
// Each call is one read-modify-write through Repository.Mutate, so a
// rejected call leaves the stored record exactly as it was. Concurrent
// calls on the same product resolve last-write-wins at record granularity.
type InventoryService struct {
	repo     Repository
	observer MutationObserver
	logger   *zap.Logger
	timeout  time.Duration
}

func NewInventoryService(repo Repository, observer MutationObserver, logger *zap.Logger, timeout time.Duration) *InventoryService {
	if observer == nil {
		observer = noopObserver{}
	}
	return &InventoryService{
		repo:     repo,
		observer: observer,
		logger:   logger,
		timeout:  timeout,
	}
}

// SetColorQuantity replaces the quantity of an existing ledger color.
func (s *InventoryService) SetColorQuantity(ctx context.Context, productID, color string, newQty int) (*domain.Product, error) {
	if err := validateColorArgs(productID, color, "quantity", newQty); err != nil {
		return nil, s.reject(OpSetColorQuantity, productID, err)
	}

	return s.mutate(ctx, OpSetColorQuantity, productID, func(p *domain.Product) error {
		ledger, err := ledgerOf(p, color)
		if err != nil {
			return err
		}
		p.Colors, err = ledger.WithQuantity(color, newQty)
		return err
	}, zap.String("color", color), zap.Int("quantity", newQty))
}

// IncrementColorQuantity adds delta to the quantity of an existing ledger
// color. Only increases are supported.
func (s *InventoryService) IncrementColorQuantity(ctx context.Context, productID, color string, delta int) (*domain.Product, error) {
	if err := validateColorArgs(productID, color, "delta", delta); err != nil {
		return nil, s.reject(OpIncrementColorQuantity, productID, err)
	}

	return s.mutate(ctx, OpIncrementColorQuantity, productID, func(p *domain.Product) error {
		ledger, err := ledgerOf(p, color)
		if err != nil {
			return err
		}
		current := ledger[ledger.IndexOf(color)].Qty
		if delta > math.MaxInt-current {
			return apperrors.NewValidationError("delta overflows the stored quantity", apperrors.ValidationDetail{
				Field:   "delta",
				Message: fmt.Sprintf("current quantity %d cannot grow by %d", current, delta),
			})
		}
		p.Colors, err = ledger.WithQuantity(color, current+delta)
		return err
	}, zap.String("color", color), zap.Int("delta", delta))
}

// SetStock replaces the scalar stock of a single product.
func (s *InventoryService) SetStock(ctx context.Context, productID string, newStock int) (*domain.Product, error) {
	var details []apperrors.ValidationDetail
	if strings.TrimSpace(productID) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "id", Message: "product id is required"})
	}
	if newStock < 0 {
		details = append(details, apperrors.ValidationDetail{Field: "stock", Message: "stock must be a non-negative integer"})
	}
	if len(details) > 0 {
		return nil, s.reject(OpSetStock, productID, apperrors.NewValidationError("validation failed", details...))
	}

	return s.mutate(ctx, OpSetStock, productID, func(p *domain.Product) error {
		if p.Kind != domain.VariantSingle {
			return variantMismatch(p, domain.VariantSingle)
		}
		stock := newStock
		p.Stock = &stock
		return nil
	}, zap.Int("stock", newStock))
}

func (s *InventoryService) mutate(ctx context.Context, op, productID string, fn func(p *domain.Product) error, fields ...zap.Field) (*domain.Product, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	updated, err := s.repo.Mutate(ctx, productID, fn)
	if err != nil {
		return nil, s.reject(op, productID, err)
	}

	s.observer.ObserveMutation(op, OutcomeSuccess)
	s.logger.Info("inventory updated",
		append([]zap.Field{zap.String("operation", op), zap.String("productId", productID)}, fields...)...)
	return updated, nil
}

func (s *InventoryService) reject(op, productID string, err error) error {
	outcome := Outcome(err)
	s.observer.ObserveMutation(op, outcome)

	logFields := []zap.Field{zap.String("operation", op), zap.String("productId", productID), zap.String("outcome", outcome), zap.Error(err)}
	switch outcome {
	case OutcomeInvalidArgument, OutcomeNotFound:
		s.logger.Warn("inventory mutation rejected", logFields...)
	default:
		s.logger.Error("inventory mutation failed", logFields...)
	}
	return err
}

func validateColorArgs(productID, color, qtyField string, qty int) error {
	var details []apperrors.ValidationDetail
	if strings.TrimSpace(productID) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "id", Message: "product id is required"})
	}
	if strings.TrimSpace(color) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "selectedColor", Message: "selectedColor is required"})
	}
	if qty < 0 {
		details = append(details, apperrors.ValidationDetail{Field: qtyField, Message: qtyField + " must be a non-negative integer"})
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

// ledgerOf checks, in order, that p is a collection, that its ledger is
// well formed and that color is one of its keys.
func ledgerOf(p *domain.Product, color string) (domain.ColorLedger, error) {
	if p.Kind != domain.VariantCollection {
		return nil, variantMismatch(p, domain.VariantCollection)
	}
	if err := p.Colors.Validate(); err != nil {
		return nil, apperrors.NewDataIntegrityError(fmt.Sprintf("product %s has a malformed color ledger", p.ID), err)
	}
	if p.Colors.IndexOf(color) < 0 {
		return nil, apperrors.NewResourceNotFoundError(apperrors.ResourceColor, color)
	}
	return p.Colors, nil
}

func variantMismatch(p *domain.Product, want domain.VariantKind) error {
	msg := fmt.Sprintf("product %s is a %s product, operation requires %s", p.ID, p.Kind, want)
	return apperrors.NewValidationError(msg, apperrors.ValidationDetail{
		Field:   "variantKind",
		Message: msg,
	})
}
