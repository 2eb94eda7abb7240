package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// OrderStatus moves strictly forward:
// pending -> processing -> shipped -> delivered.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
)

var statusNext = map[OrderStatus]OrderStatus{
	StatusPending:    StatusProcessing,
	StatusProcessing: StatusShipped,
	StatusShipped:    StatusDelivered,
}

// Next returns the single allowed successor. Delivered and unknown
// statuses have none.
func (s OrderStatus) Next() (OrderStatus, bool) {
	n, ok := statusNext[s]
	return n, ok
}

// CanAdvanceTo reports whether target is exactly the next step from s.
func (s OrderStatus) CanAdvanceTo(target OrderStatus) bool {
	n, ok := s.Next()
	return ok && n == target
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

// InitialStatus seeds a new order: card payments are already being
// processed, manual transfers wait for the money.
func InitialStatus(m PaymentMethod) OrderStatus {
	if m == PaymentCard {
		return StatusProcessing
	}
	return StatusPending
}

// Order is an immutable checkout record with a mutable Status.
type Order struct {
	ID            string
	UserID        string
	Items         []CartLine
	Total         decimal.Decimal
	PaymentMethod PaymentMethod
	Payment       PaymentDetails
	Status        OrderStatus
	CreatedAt     time.Time
}

// NewOrder snapshots lines into an order owned by userID. The total is the
// sum of line subtotals and the status is seeded from the payment method.
func NewOrder(id, userID string, lines []CartLine, payment PaymentDetails, now time.Time) Order {
	items := make([]CartLine, len(lines))
	copy(items, lines)

	return Order{
		ID:            id,
		UserID:        userID,
		Items:         items,
		Total:         LinesTotal(items),
		PaymentMethod: payment.Method(),
		Payment:       payment,
		Status:        InitialStatus(payment.Method()),
		CreatedAt:     now,
	}
}

// LinesTotal sums price × quantity over lines.
func LinesTotal(lines []CartLine) decimal.Decimal {
	return lo.Reduce(lines, func(acc decimal.Decimal, l CartLine, _ int) decimal.Decimal {
		return acc.Add(l.Subtotal())
	}, decimal.Zero)
}

// LinesQuantity sums quantities over lines.
func LinesQuantity(lines []CartLine) int {
	return lo.SumBy(lines, func(l CartLine) int { return l.Quantity })
}

type orderJSON struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	Items          []CartLine      `json:"items"`
	Total          decimal.Decimal `json:"total"`
	PaymentMethod  PaymentMethod   `json:"paymentMethod,omitempty"`
	PaymentDetails json.RawMessage `json:"paymentDetails,omitempty"`
	Status         OrderStatus     `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
}

func (o Order) MarshalJSON() ([]byte, error) {
	details, err := encodePayment(o.Payment)
	if err != nil {
		return nil, fmt.Errorf("encode payment details: %w", err)
	}
	items := o.Items
	if items == nil {
		items = []CartLine{}
	}
	return json.Marshal(orderJSON{
		ID:             o.ID,
		UserID:         o.UserID,
		Items:          items,
		Total:          o.Total,
		PaymentMethod:  o.PaymentMethod,
		PaymentDetails: details,
		Status:         o.Status,
		CreatedAt:      o.CreatedAt,
	})
}

// UnmarshalJSON accepts records written before payment selection existed:
// a missing paymentMethod becomes LegacyPaymentMethod with no details.
func (o *Order) UnmarshalJSON(b []byte) error {
	var raw orderJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	method := raw.PaymentMethod
	if method == "" {
		method = LegacyPaymentMethod
	}
	details, err := decodePayment(method, raw.PaymentDetails)
	if err != nil {
		return fmt.Errorf("order %s: %w", raw.ID, err)
	}

	*o = Order{
		ID:            raw.ID,
		UserID:        raw.UserID,
		Items:         raw.Items,
		Total:         raw.Total,
		PaymentMethod: method,
		Payment:       details,
		Status:        raw.Status,
		CreatedAt:     raw.CreatedAt,
	}
	return nil
}
