package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"backoffice/internal/domain"
)

type ColorQuantityDTO struct {
	Color string   `json:"color"`
	Qty   Quantity `json:"qty"`
}

type CreateProductRequest struct {
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Price        decimal.Decimal    `json:"price"`
	Discount     *decimal.Decimal   `json:"discount"`
	Category     string             `json:"category"`
	IsNewArrival bool               `json:"isNewArrival"`
	VariantKind  string             `json:"variantKind"`
	Stock        *Quantity          `json:"stock"`
	Colors       []ColorQuantityDTO `json:"colors"`
}

// UpdateProductRequest edits general product fields. Inventory is changed
// only through the dedicated quantity endpoints.
type UpdateProductRequest struct {
	Title        *string          `json:"title"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	Discount     *decimal.Decimal `json:"discount"`
	Category     *string          `json:"category"`
	IsNewArrival *bool            `json:"isNewArrival"`
}

func (r UpdateProductRequest) IsEmpty() bool {
	return r.Title == nil && r.Description == nil && r.Price == nil &&
		r.Discount == nil && r.Category == nil && r.IsNewArrival == nil
}

type SetColorQuantityRequest struct {
	SelectedColor string    `json:"selectedColor"`
	Quantity      *Quantity `json:"quantity"`
}

type IncrementColorQuantityRequest struct {
	SelectedColor string    `json:"selectedColor"`
	Delta         *Quantity `json:"delta"`
}

type SetStockRequest struct {
	Stock *Quantity `json:"stock"`
}

type ColorEntryDTO struct {
	Color string `json:"color"`
	Qty   int    `json:"qty"`
}

type ProductDTO struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Price        decimal.Decimal  `json:"price"`
	Discount     *decimal.Decimal `json:"discount"`
	Category     string           `json:"category"`
	IsNewArrival bool             `json:"isNewArrival"`
	VariantKind  string           `json:"variantKind"`
	Stock        *int             `json:"stock"`
	Colors       []ColorEntryDTO  `json:"colors"`
	OutOfStock   bool             `json:"outOfStock"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// NewProductDTO renders only the representation the variant kind selects.
func NewProductDTO(p domain.Product) ProductDTO {
	out := ProductDTO{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Price:        p.Price,
		Discount:     p.Discount,
		Category:     p.Category,
		IsNewArrival: p.IsNewArrival,
		VariantKind:  string(p.Kind),
		OutOfStock:   p.IsOutOfStock(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}

	switch p.Kind {
	case domain.VariantSingle:
		out.Stock = p.Stock
	case domain.VariantCollection:
		out.Colors = make([]ColorEntryDTO, len(p.Colors))
		for i, e := range p.Colors {
			out.Colors[i] = ColorEntryDTO{Color: e.Color, Qty: e.Qty}
		}
	}

	return out
}

type ListProductsResponse struct {
	Products []ProductDTO `json:"products"`
}
