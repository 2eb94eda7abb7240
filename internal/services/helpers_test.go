package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/gophstore/internal/logging"
	"github.com/dmitrijs2005/gophstore/internal/models"
	"github.com/dmitrijs2005/gophstore/internal/repositories/kv"
	"github.com/dmitrijs2005/gophstore/internal/storage"
	"github.com/samber/mo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "shop.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func rawValue(t *testing.T, db *sql.DB, key string) []byte {
	t.Helper()
	v, err := kv.NewSQLiteRepository(db).Get(context.Background(), key)
	require.NoError(t, err)
	return v
}

type shop struct {
	db       *sql.DB
	identity *IdentityService
	catalog  *CatalogService
	cart     *CartService
	orders   *OrderService
}

func newShop(t *testing.T) *shop {
	t.Helper()
	db := setupDB(t)
	nop := logging.Nop()
	s := &shop{db: db}
	s.identity = NewIdentityService(db, nop)
	s.catalog = NewCatalogService(db, nop)
	s.cart = NewCartService(db, nop)
	s.orders = NewOrderService(db, s.identity, 0, nop)
	return s
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func widgetInput(adminID string) models.ProductInput {
	return models.ProductInput{Name: "Widget", Price: price("9.99"), Stock: 3, Category: "tools", AdminID: adminID}
}

// fakeSession is a fixed Session for tests that do not need IdentityService.
type fakeSession struct {
	acc mo.Option[models.Account]
}

func (f fakeSession) Current() mo.Option[models.Account] { return f.acc }
func (f fakeSession) IsAdmin() bool {
	a, ok := f.acc.Get()
	return ok && a.IsAdmin()
}

func kvRepo(db *sql.DB) kv.Repository { return kv.NewSQLiteRepository(db) }
