package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID          string
	FirstName   string
	LastName    string
	Email       string
	Phone       *string
	Address     *string
	TotalPrice  decimal.Decimal
	Paid        bool
	Fulfillment bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderFlags carries the flag edits an admin may apply to an order.
// Nil fields are left unchanged.
type OrderFlags struct {
	Paid        *bool
	Fulfillment *bool
}

func (f OrderFlags) IsEmpty() bool {
	return f.Paid == nil && f.Fulfillment == nil
}

func (o *Order) Apply(f OrderFlags) {
	if f.Paid != nil {
		o.Paid = *f.Paid
	}
	if f.Fulfillment != nil {
		o.Fulfillment = *f.Fulfillment
	}
}
