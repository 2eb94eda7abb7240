package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophstore/internal/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func widget(price string) Product {
	return Product{ID: "p1", Name: "Widget", Price: decimal.RequireFromString(price), Stock: 3}
}

func TestOrderStatus_ForwardOnly(t *testing.T) {
	tests := []struct {
		from   OrderStatus
		target OrderStatus
		want   bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusProcessing, StatusShipped, true},
		{StatusShipped, StatusDelivered, true},
		{StatusPending, StatusShipped, false},
		{StatusPending, StatusDelivered, false},
		{StatusProcessing, StatusPending, false},
		{StatusDelivered, StatusPending, false},
		{StatusDelivered, StatusDelivered, false},
		{StatusShipped, StatusShipped, false},
		{OrderStatus("lost"), StatusProcessing, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.target), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanAdvanceTo(tt.target))
		})
	}

	_, ok := StatusDelivered.Next()
	assert.False(t, ok, "delivered is terminal")
	assert.False(t, OrderStatus("lost").Valid())
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusProcessing, InitialStatus(PaymentCard))
	assert.Equal(t, StatusPending, InitialStatus(PaymentManual))
}

func TestNewOrder_TotalsAndSnapshot(t *testing.T) {
	lines := []CartLine{{Product: widget("9.99"), Quantity: 2}}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	o := NewOrder("o1", "u1", lines, TransferPayment{Reference: "REF-1"}, now)

	assert.True(t, decimal.RequireFromString("19.98").Equal(o.Total), o.Total.String())
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, PaymentManual, o.PaymentMethod)

	lines[0].Quantity = 99
	assert.Equal(t, 2, o.Items[0].Quantity, "order lines must be a copy")
}

func TestLinesTotalsAndQuantity(t *testing.T) {
	lines := []CartLine{
		{Product: widget("0.10"), Quantity: 3},
		{Product: widget("0.20"), Quantity: 1},
	}
	assert.Equal(t, "0.5", LinesTotal(lines).String())
	assert.Equal(t, 4, LinesQuantity(lines))
	assert.True(t, LinesTotal(nil).IsZero())
	assert.Equal(t, 0, LinesQuantity(nil))
}

func TestOrder_JSONRoundTripKeepsPaymentVariant(t *testing.T) {
	lines := []CartLine{{Product: widget("5"), Quantity: 1}}
	card := CardPayment{Holder: "Alice", Number: "4111111111111111", Expiry: "12/30", CVV: "123"}
	in := NewOrder("o1", "u1", lines, card, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))

	b, err := json.Marshal(in)
	require.NoError(t, err)

	var out Order
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, PaymentCard, out.PaymentMethod)
	assert.Equal(t, card, out.Payment)
	assert.Equal(t, StatusProcessing, out.Status)
	assert.True(t, in.Total.Equal(out.Total))
	assert.Equal(t, "Widget", out.Items[0].Name)
}

func TestOrder_LegacyRecordWithoutPaymentMethod(t *testing.T) {
	legacy := `{
		"id": "1700000000000",
		"userId": "1699999999999",
		"items": [{"id":"p1","name":"Widget","price":9.99,"stock":3,"quantity":2}],
		"total": 19.98,
		"status": "pending",
		"createdAt": "2023-11-14T22:13:20.000Z"
	}`

	var o Order
	require.NoError(t, json.Unmarshal([]byte(legacy), &o))
	assert.Equal(t, LegacyPaymentMethod, o.PaymentMethod)
	assert.Nil(t, o.Payment)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, 2, o.Items[0].Quantity)
	assert.Equal(t, "19.98", o.Items[0].Subtotal().String())
}

func TestOrder_UnknownPaymentMethod(t *testing.T) {
	var o Order
	err := json.Unmarshal([]byte(`{"id":"x","paymentMethod":"crypto","paymentDetails":{"wallet":"w"}}`), &o)
	require.Error(t, err)
}

func TestCartLine_JSONIsFlat(t *testing.T) {
	b, err := json.Marshal(CartLine{Product: widget("1.50"), Quantity: 2})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "p1", m["id"])
	assert.Equal(t, float64(2), m["quantity"])
	assert.NotContains(t, m, "Product")
}

func TestAmounts_AreJSONNumbers(t *testing.T) {
	b, err := json.Marshal(widget("9.99"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"price":9.99`)

	order := NewOrder("o1", "u1", []CartLine{{Product: widget("9.99"), Quantity: 2}}, TransferPayment{Reference: "R"}, time.Now())
	b, err = json.Marshal(order)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"total":19.98`)

	var back Order
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, "19.98", back.Total.StringFixed(2))
	assert.Equal(t, "9.99", back.Items[0].Price.StringFixed(2))
}

func TestPaymentValidation(t *testing.T) {
	require.NoError(t, CardPayment{Holder: "A", Number: "1", Expiry: "1", CVV: "1"}.Validate())

	err := CardPayment{Holder: "A"}.Validate()
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "number, expiry, cvv")

	require.NoError(t, TransferPayment{Reference: "R"}.Validate())
	require.ErrorIs(t, TransferPayment{Reference: "  "}.Validate(), common.ErrValidation)
}

func TestCardPayment_Masked(t *testing.T) {
	assert.Equal(t, "************1111", CardPayment{Number: "4111 1111 1111 1111"}.Masked())
	assert.Equal(t, "123", CardPayment{Number: "123"}.Masked())
}

func TestParsePriceAndStock(t *testing.T) {
	p, err := ParsePrice(" 9.99 ")
	require.NoError(t, err)
	assert.Equal(t, "9.99", p.String())

	for _, bad := range []string{"", "abc", "NaN", "-1"} {
		_, err := ParsePrice(bad)
		require.ErrorIs(t, err, common.ErrValidation, bad)
	}

	n, err := ParseStock("3")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for _, bad := range []string{"", "2.5", "x", "-4"} {
		_, err := ParseStock(bad)
		require.ErrorIs(t, err, common.ErrValidation, bad)
	}
}

func TestProductPatch_Apply(t *testing.T) {
	name := "Gadget"
	stock := 7
	price := decimal.RequireFromString("1.25")

	p, err := ProductPatch{Name: &name, Stock: &stock, Price: &price}.Apply(widget("9.99"))
	require.NoError(t, err)
	assert.Equal(t, "Gadget", p.Name)
	assert.Equal(t, 7, p.Stock)
	assert.Equal(t, "1.25", p.Price.String())
	assert.Equal(t, "p1", p.ID)

	neg := -1
	_, err = ProductPatch{Stock: &neg}.Apply(widget("1"))
	require.ErrorIs(t, err, common.ErrValidation)

	empty := " "
	_, err = ProductPatch{Name: &empty}.Apply(widget("1"))
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestProductInput_Validate(t *testing.T) {
	require.NoError(t, ProductInput{Name: "Widget", Price: decimal.RequireFromString("9.99"), Stock: 3}.Validate())
	require.ErrorIs(t, ProductInput{Price: decimal.Zero}.Validate(), common.ErrValidation)
	require.ErrorIs(t, ProductInput{Name: "x", Price: decimal.NewFromInt(-1)}.Validate(), common.ErrValidation)
}

func TestParseRoleAndPublic(t *testing.T) {
	r, err := ParseRole("")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, r)

	r, err = ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	_, err = ParseRole("root")
	require.ErrorIs(t, err, common.ErrValidation)

	a := Account{ID: "1", Role: RoleAdmin, PasswordHash: []byte{1}, PasswordSalt: []byte{2}}
	pub := a.Public()
	assert.Nil(t, pub.PasswordHash)
	assert.Nil(t, pub.PasswordSalt)
	assert.True(t, pub.IsAdmin())
	assert.NotNil(t, a.PasswordHash, "receiver untouched")
}
