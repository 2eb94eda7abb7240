package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophstore/internal/common"
)

type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentManual PaymentMethod = "manual"
)

// LegacyPaymentMethod is assumed for stored orders that predate payment
// selection; those orders were always created as pending transfers.
const LegacyPaymentMethod = PaymentManual

// PaymentDetails is the payment declaration attached to an order. It is
// implemented only by CardPayment and TransferPayment.
type PaymentDetails interface {
	Method() PaymentMethod
	Validate() error
	sealed()
}

// CardPayment fields are checked for presence only.
type CardPayment struct {
	Holder string `json:"holder"`
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

func (CardPayment) Method() PaymentMethod { return PaymentCard }
func (CardPayment) sealed()               {}

func (c CardPayment) Validate() error {
	fields := []struct{ name, value string }{
		{"holder", c.Holder},
		{"number", c.Number},
		{"expiry", c.Expiry},
		{"cvv", c.CVV},
	}
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: card %s required", common.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// Masked returns the card number with all but the last four digits hidden.
func (c CardPayment) Masked() string {
	n := strings.ReplaceAll(c.Number, " ", "")
	if len(n) <= 4 {
		return n
	}
	return strings.Repeat("*", len(n)-4) + n[len(n)-4:]
}

// TransferPayment is a manual bank transfer identified by its reference.
type TransferPayment struct {
	Reference string `json:"reference"`
}

func (TransferPayment) Method() PaymentMethod { return PaymentManual }
func (TransferPayment) sealed()               {}

func (t TransferPayment) Validate() error {
	if strings.TrimSpace(t.Reference) == "" {
		return fmt.Errorf("%w: transfer reference required", common.ErrValidation)
	}
	return nil
}

func encodePayment(p PaymentDetails) (json.RawMessage, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

func decodePayment(method PaymentMethod, raw json.RawMessage) (PaymentDetails, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	switch method {
	case PaymentCard:
		var c CardPayment
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	case PaymentManual:
		var t TransferPayment
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, err
		}
		return t, nil
	}
	return nil, fmt.Errorf("unknown payment method %q", method)
}
