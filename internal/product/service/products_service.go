package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"backoffice/internal/domain"
	"backoffice/internal/dto"
	apperrors "backoffice/internal/errors"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Create(ctx context.Context, p domain.Product) error
	Mutate(ctx context.Context, id string, fn func(p *domain.Product) error) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type ProductService struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

func NewService(repo Repository, logger *zap.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return s.repo.List(ctx, filter)
}

// CreateProduct builds a product with exactly one populated inventory
// representation. Collections are built from the palette and every chosen
// color must start with a positive quantity.
func (s *ProductService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error) {
	kind, details := validateCreateRequest(req)
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	now := s.now()
	p := domain.Product{
		ID:           s.newID(),
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Price:        req.Price,
		Discount:     req.Discount,
		Category:     strings.TrimSpace(req.Category),
		IsNewArrival: req.IsNewArrival,
		Kind:         kind,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	switch kind {
	case domain.VariantSingle:
		if req.Stock != nil {
			stock := req.Stock.Int()
			p.Stock = &stock
		}
	case domain.VariantCollection:
		p.Colors = make(domain.ColorLedger, len(req.Colors))
		for i, c := range req.Colors {
			p.Colors[i] = domain.ColorEntry{Color: c.Color, Qty: c.Qty.Int()}
		}
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	s.logger.Info("product created", zap.String("productId", p.ID), zap.String("variantKind", string(kind)))
	return &p, nil
}

func validateCreateRequest(req dto.CreateProductRequest) (domain.VariantKind, []apperrors.ValidationDetail) {
	var details []apperrors.ValidationDetail
	add := func(field, msg string) {
		details = append(details, apperrors.ValidationDetail{Field: field, Message: msg})
	}

	if strings.TrimSpace(req.Title) == "" {
		add("title", "title is required")
	}
	if req.Price.IsNegative() {
		add("price", "price must be non-negative")
	}
	if req.Discount != nil && req.Discount.IsNegative() {
		add("discount", "discount must be non-negative")
	}
	if strings.TrimSpace(req.Category) == "" {
		add("category", "category is required")
	}

	kind, err := domain.ParseVariantKind(req.VariantKind)
	if err != nil {
		add("variantKind", "variantKind must be one of single, collection")
		return "", details
	}

	switch kind {
	case domain.VariantSingle:
		if len(req.Colors) > 0 {
			add("colors", "colors are only allowed on collection products")
		}
		if req.Stock != nil && req.Stock.Int() < 0 {
			add("stock", "stock must be a non-negative integer")
		}
	case domain.VariantCollection:
		if req.Stock != nil {
			add("stock", "stock is only allowed on single products")
		}
		if len(req.Colors) == 0 {
			add("colors", "select at least one color with a quantity")
		}
		seen := make(map[string]struct{}, len(req.Colors))
		for i, c := range req.Colors {
			field := fmt.Sprintf("colors[%d]", i)
			if !domain.IsPaletteColor(c.Color) {
				add(field+".color", fmt.Sprintf("color must be one of %s", strings.Join(domain.Palette, ", ")))
			}
			if _, dup := seen[c.Color]; dup {
				add(field+".color", "color must not be duplicated")
			}
			seen[c.Color] = struct{}{}
			if c.Qty.Int() <= 0 {
				add(field+".qty", "quantity must be greater than zero")
			}
		}
	}

	return kind, details
}

// UpdateProductDetails applies general field edits. Quantities are never
// touched here.
func (s *ProductService) UpdateProductDetails(ctx context.Context, id string, req dto.UpdateProductRequest) (*domain.Product, error) {
	if details := validateUpdateRequest(req); len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	updated, err := s.repo.Mutate(ctx, id, func(p *domain.Product) error {
		if req.Title != nil {
			p.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if req.Price != nil {
			p.Price = *req.Price
		}
		if req.Discount != nil {
			d := *req.Discount
			p.Discount = &d
		}
		if req.Category != nil {
			p.Category = strings.TrimSpace(*req.Category)
		}
		if req.IsNewArrival != nil {
			p.IsNewArrival = *req.IsNewArrival
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product updated", zap.String("productId", id))
	return updated, nil
}

func validateUpdateRequest(req dto.UpdateProductRequest) []apperrors.ValidationDetail {
	var details []apperrors.ValidationDetail
	if req.IsEmpty() {
		return append(details, apperrors.ValidationDetail{Field: "body", Message: "at least one field must be provided"})
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "title", Message: "title must not be empty"})
	}
	if req.Price != nil && req.Price.IsNegative() {
		details = append(details, apperrors.ValidationDetail{Field: "price", Message: "price must be non-negative"})
	}
	if req.Discount != nil && req.Discount.IsNegative() {
		details = append(details, apperrors.ValidationDetail{Field: "discount", Message: "discount must be non-negative"})
	}
	if req.Category != nil && strings.TrimSpace(*req.Category) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "category", Message: "category must not be empty"})
	}
	return details
}

// DeleteProduct removes a product unconditionally.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.String("productId", id))
	return nil
}
