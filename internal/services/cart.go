package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophstore/internal/dbx"
	"github.com/dmitrijs2005/gophstore/internal/logging"
	"github.com/dmitrijs2005/gophstore/internal/models"
	"github.com/dmitrijs2005/gophstore/internal/repositories/collection"
	"github.com/dmitrijs2005/gophstore/internal/repositories/kv"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// CartService manages the anonymous, per-store cart. At most one line per
// product id; quantities are always positive.
type CartService struct {
	db  *sql.DB
	log logging.Logger
}

func NewCartService(db *sql.DB, log logging.Logger) *CartService {
	return &CartService{db: db, log: log.With("component", "cart")}
}

func cartOf(r kv.Repository) *collection.Collection[models.CartLine] {
	return collection.New[models.CartLine](r, collection.KeyCart)
}

// AddToCart increments the line for p, or inserts it with quantity 1.
func (s *CartService) AddToCart(ctx context.Context, p models.Product) (models.CartLine, error) {
	var line models.CartLine
	err := s.mutate(ctx, func(lines []models.CartLine) []models.CartLine {
		_, idx, found := lo.FindIndexOf(lines, func(l models.CartLine) bool { return l.ID == p.ID })
		if found {
			lines[idx].Quantity++
			line = lines[idx]
			return lines
		}
		line = models.CartLine{Product: p, Quantity: 1}
		return append(lines, line)
	})
	if err != nil {
		return models.CartLine{}, err
	}
	s.log.Debug(ctx, "added to cart", "product", p.ID, "quantity", line.Quantity)
	return line, nil
}

// UpdateQuantity sets the line quantity; n <= 0 removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, id string, n int) error {
	if n <= 0 {
		return s.RemoveItem(ctx, id)
	}
	return s.mutate(ctx, func(lines []models.CartLine) []models.CartLine {
		for i := range lines {
			if lines[i].ID == id {
				lines[i].Quantity = n
			}
		}
		return lines
	})
}

// RemoveItem drops the line for id, if present.
func (s *CartService) RemoveItem(ctx context.Context, id string) error {
	return s.mutate(ctx, func(lines []models.CartLine) []models.CartLine {
		return lo.Reject(lines, func(l models.CartLine, _ int) bool { return l.ID == id })
	})
}

func (s *CartService) Lines(ctx context.Context) ([]models.CartLine, error) {
	return cartOf(kv.NewSQLiteRepository(s.db)).Load(ctx)
}

// TotalPrice is the sum of price × quantity over all lines.
func (s *CartService) TotalPrice(ctx context.Context) (decimal.Decimal, error) {
	lines, err := s.Lines(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return models.LinesTotal(lines), nil
}

// TotalItems is the sum of quantities.
func (s *CartService) TotalItems(ctx context.Context) (int, error) {
	lines, err := s.Lines(ctx)
	if err != nil {
		return 0, err
	}
	return models.LinesQuantity(lines), nil
}

func (s *CartService) mutate(ctx context.Context, fn func([]models.CartLine) []models.CartLine) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		cart := cartOf(kv.NewSQLiteRepository(tx))
		lines, err := cart.Load(ctx)
		if err != nil {
			return err
		}
		return cart.Save(ctx, fn(lines))
	})
}
