package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophstore/internal/common"
	"github.com/dmitrijs2005/gophstore/internal/dbx"
	"github.com/dmitrijs2005/gophstore/internal/logging"
	"github.com/dmitrijs2005/gophstore/internal/models"
	"github.com/dmitrijs2005/gophstore/internal/repositories/collection"
	"github.com/dmitrijs2005/gophstore/internal/repositories/kv"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// CatalogService owns the product collection. It does not check roles;
// callers gate admin actions.
type CatalogService struct {
	db  *sql.DB
	log logging.Logger
	now func() time.Time
}

func NewCatalogService(db *sql.DB, log logging.Logger) *CatalogService {
	return &CatalogService{db: db, log: log.With("component", "catalog"), now: time.Now}
}

func productsOf(r kv.Repository) *collection.Collection[models.Product] {
	return collection.New[models.Product](r, collection.KeyProducts)
}

// AddProduct assigns an ID and creation time and appends the product.
// An empty image falls back to models.DefaultProductImage.
func (s *CatalogService) AddProduct(ctx context.Context, in models.ProductInput) (models.Product, error) {
	if err := in.Validate(); err != nil {
		return models.Product{}, err
	}

	p := models.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Stock:       in.Stock,
		Image:       lo.Ternary(in.Image == "", models.DefaultProductImage, in.Image),
		AdminID:     in.AdminID,
		CreatedAt:   s.now().UTC(),
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		products := productsOf(kv.NewSQLiteRepository(tx))
		items, err := products.Load(ctx)
		if err != nil {
			return err
		}
		return products.Save(ctx, append(items, p))
	})
	if err != nil {
		return models.Product{}, fmt.Errorf("add product: %w", err)
	}

	s.log.Info(ctx, "product added", "id", p.ID, "name", p.Name)
	return p, nil
}

// UpdateProduct merges patch into the product with the given id. An
// unknown id is a no-op.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		products := productsOf(kv.NewSQLiteRepository(tx))
		items, err := products.Load(ctx)
		if err != nil {
			return err
		}
		_, idx, found := lo.FindIndexOf(items, func(p models.Product) bool { return p.ID == id })
		if !found {
			return nil
		}
		updated, err := patch.Apply(items[idx])
		if err != nil {
			return err
		}
		items[idx] = updated
		if err := products.Save(ctx, items); err != nil {
			return err
		}
		s.log.Info(ctx, "product updated", "id", id)
		return nil
	})
}

// DeleteProduct removes the product. Carts holding it are left alone.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		products := productsOf(kv.NewSQLiteRepository(tx))
		items, err := products.Load(ctx)
		if err != nil {
			return err
		}
		kept := lo.Reject(items, func(p models.Product, _ int) bool { return p.ID == id })
		if len(kept) == len(items) {
			return nil
		}
		if err := products.Save(ctx, kept); err != nil {
			return err
		}
		s.log.Info(ctx, "product deleted", "id", id)
		return nil
	})
}

// ListProducts returns every product in insertion order.
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return productsOf(kv.NewSQLiteRepository(s.db)).Load(ctx)
}

// GetProduct returns common.ErrNotFound for an unknown id.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (models.Product, error) {
	items, err := s.ListProducts(ctx)
	if err != nil {
		return models.Product{}, err
	}
	p, found := lo.Find(items, func(p models.Product) bool { return p.ID == id })
	if !found {
		return models.Product{}, fmt.Errorf("product %s: %w", id, common.ErrNotFound)
	}
	return p, nil
}
