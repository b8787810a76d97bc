package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"backoffice/internal/domain"
)

type UpdateOrderRequest struct {
	Paid        *bool `json:"paid"`
	Fulfillment *bool `json:"fulfillment"`
}

type OrderDTO struct {
	ID          string          `json:"id"`
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	Email       string          `json:"email"`
	Phone       *string         `json:"phone"`
	Address     *string         `json:"address"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	Paid        bool            `json:"paid"`
	Fulfillment bool            `json:"fulfillment"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func NewOrderDTO(o domain.Order) OrderDTO {
	return OrderDTO{
		ID:          o.ID,
		FirstName:   o.FirstName,
		LastName:    o.LastName,
		Email:       o.Email,
		Phone:       o.Phone,
		Address:     o.Address,
		TotalPrice:  o.TotalPrice,
		Paid:        o.Paid,
		Fulfillment: o.Fulfillment,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
