package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophstore/internal/common"
	"github.com/shopspring/decimal"
)

// Prices and totals are written as JSON numbers, like the stored records
// they are read from.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DefaultProductImage is used when a product is created without an image.
const DefaultProductImage = "https://images.unsplash.com/photo-1649972904349-6e44c42644a7?w=400&h=300&fit=crop"

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image"`
	AdminID     string          `json:"adminId"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ProductInput carries the caller-supplied fields of a new product.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Stock       int
	Image       string
	AdminID     string
}

func (in ProductInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", common.ErrValidation)
	}
	return checkAmounts(in.Price, in.Stock)
}

// ProductPatch is a partial update; nil fields are left unchanged.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *string
	Stock       *int
	Image       *string
}

// Apply returns p with the non-nil patch fields merged in.
func (pp ProductPatch) Apply(p Product) (Product, error) {
	if pp.Name != nil {
		if strings.TrimSpace(*pp.Name) == "" {
			return p, fmt.Errorf("%w: name is required", common.ErrValidation)
		}
		p.Name = *pp.Name
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.Stock != nil {
		p.Stock = *pp.Stock
	}
	if pp.Image != nil {
		p.Image = *pp.Image
	}
	return p, checkAmounts(p.Price, p.Stock)
}

func checkAmounts(price decimal.Decimal, stock int) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", common.ErrValidation)
	}
	if stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", common.ErrValidation)
	}
	return nil
}

// ParsePrice parses user input such as "9.99". Non-numeric and negative
// values are rejected.
func ParsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: price %q is not a number", common.ErrValidation, s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: price must not be negative", common.ErrValidation)
	}
	return d, nil
}

// ParseStock parses a non-negative integer quantity.
func ParseStock(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: stock %q is not an integer", common.ErrValidation, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: stock must not be negative", common.ErrValidation)
	}
	return n, nil
}
