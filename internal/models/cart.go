package models

import "github.com/shopspring/decimal"

// CartLine is a product snapshot plus a positive quantity. In JSON the
// product fields are flattened alongside "quantity".
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
