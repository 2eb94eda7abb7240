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

// OrderService turns the cart into orders and drives order status.
type OrderService struct {
	db      *sql.DB
	session Session
	log     logging.Logger

	// paymentDelay emulates payment latency during checkout.
	paymentDelay time.Duration
	sleep        func(time.Duration)
	now          func() time.Time
}

func NewOrderService(db *sql.DB, session Session, paymentDelay time.Duration, log logging.Logger) *OrderService {
	return &OrderService{
		db:           db,
		session:      session,
		log:          log.With("component", "orders"),
		paymentDelay: paymentDelay,
		sleep:        time.Sleep,
		now:          time.Now,
	}
}

func ordersOf(r kv.Repository) *collection.Collection[models.Order] {
	return collection.New[models.Order](r, collection.KeyOrders)
}

// Checkout records the current cart as an order owned by the session
// account and empties the cart. The order append and the cart removal are
// committed together or not at all.
//
// Errors: common.ErrUnauthorized without a session, common.ErrValidation
// for incomplete payment details, common.ErrEmptyCart for an empty cart.
// The simulated payment delay cannot be interrupted.
func (s *OrderService) Checkout(ctx context.Context, payment models.PaymentDetails) (models.Order, error) {
	acc, ok := s.session.Current().Get()
	if !ok {
		return models.Order{}, fmt.Errorf("checkout: %w", common.ErrUnauthorized)
	}
	if payment == nil {
		return models.Order{}, fmt.Errorf("%w: payment details required", common.ErrValidation)
	}
	if err := payment.Validate(); err != nil {
		return models.Order{}, err
	}

	lines, err := cartOf(kv.NewSQLiteRepository(s.db)).Load(ctx)
	if err != nil {
		return models.Order{}, err
	}
	if len(lines) == 0 {
		s.log.Warn(ctx, "checkout rejected", "user", acc.ID, "reason", "empty cart")
		return models.Order{}, common.ErrEmptyCart
	}

	if s.paymentDelay > 0 {
		s.sleep(s.paymentDelay)
	}

	var order models.Order
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)

		lines, err := cartOf(repo).Load(ctx)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return common.ErrEmptyCart
		}

		orders, err := ordersOf(repo).Load(ctx)
		if err != nil {
			return err
		}
		order = models.NewOrder(uuid.NewString(), acc.ID, lines, payment, s.now().UTC())
		if err := ordersOf(repo).Save(ctx, append(orders, order)); err != nil {
			return err
		}
		return cartOf(repo).Clear(ctx)
	})
	if err != nil {
		return models.Order{}, err
	}

	s.log.Info(ctx, "order placed",
		"id", order.ID, "user", acc.ID, "total", order.Total.String(),
		"payment", order.PaymentMethod, "status", order.Status)
	return order, nil
}

// ListOrders returns every order for an admin viewer and only the viewer's
// own orders otherwise.
func (s *OrderService) ListOrders(ctx context.Context, viewer models.Account) ([]models.Order, error) {
	orders, err := ordersOf(kv.NewSQLiteRepository(s.db)).Load(ctx)
	if err != nil {
		return nil, err
	}
	if viewer.IsAdmin() {
		return orders, nil
	}
	return lo.Filter(orders, func(o models.Order, _ int) bool { return o.UserID == viewer.ID }), nil
}

// AdvanceStatus moves the order one step forward when target is exactly
// the next status. It reports whether the order changed. A non-admin
// session gets common.ErrForbidden; an unknown id or any other target is
// a no-op.
func (s *OrderService) AdvanceStatus(ctx context.Context, orderID string, target models.OrderStatus) (bool, error) {
	if !s.session.IsAdmin() {
		return false, fmt.Errorf("advance status: %w", common.ErrForbidden)
	}

	changed := false
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		orders := ordersOf(kv.NewSQLiteRepository(tx))
		items, err := orders.Load(ctx)
		if err != nil {
			return err
		}
		_, idx, found := lo.FindIndexOf(items, func(o models.Order) bool { return o.ID == orderID })
		if !found || !items[idx].Status.CanAdvanceTo(target) {
			return nil
		}
		items[idx].Status = target
		changed = true
		return orders.Save(ctx, items)
	})
	if err != nil {
		return false, err
	}

	if changed {
		s.log.Info(ctx, "order status advanced", "id", orderID, "status", target)
	} else {
		s.log.Warn(ctx, "status change ignored", "id", orderID, "target", target)
	}
	return changed, nil
}

// NextStatus is the only transition a view should offer for o.
func NextStatus(o models.Order) (models.OrderStatus, bool) {
	return o.Status.Next()
}
