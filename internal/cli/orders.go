package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophstore/internal/common"
	"github.com/dmitrijs2005/gophstore/internal/models"
	"github.com/dmitrijs2005/gophstore/internal/services"
	"github.com/fatih/color"
)

var statusColors = map[models.OrderStatus]*color.Color{
	models.StatusPending:    color.New(color.FgYellow),
	models.StatusProcessing: color.New(color.FgBlue),
	models.StatusShipped:    color.New(color.FgMagenta),
	models.StatusDelivered:  color.New(color.FgGreen, color.Bold),
}

func statusBadge(s models.OrderStatus) string {
	c, ok := statusColors[s]
	if !ok {
		return string(s)
	}
	return c.Sprint(s)
}

func (a *App) readPayment() (models.PaymentDetails, error) {
	method, err := getOptional(a.reader, "Payment method (card/manual)", string(models.PaymentManual), a.out)
	if err != nil {
		return nil, err
	}

	switch models.PaymentMethod(strings.ToLower(method)) {
	case models.PaymentCard:
		var c models.CardPayment
		for _, f := range []struct {
			prompt string
			dst    *string
		}{
			{"Card holder", &c.Holder},
			{"Card number", &c.Number},
			{"Expiry (MM/YY)", &c.Expiry},
			{"CVV", &c.CVV},
		} {
			if *f.dst, err = getSimpleText(a.reader, f.prompt, a.out); err != nil {
				return nil, err
			}
		}
		return c, nil
	case models.PaymentManual:
		ref, err := getSimpleText(a.reader, "Transfer reference", a.out)
		if err != nil {
			return nil, err
		}
		return models.TransferPayment{Reference: ref}, nil
	}
	return nil, fmt.Errorf("%w: unknown payment method %q", common.ErrValidation, method)
}

// Checkout shows the cart total, asks for payment details and places the order.
func (a *App) Checkout(ctx context.Context) error {
	lines, err := a.cart.Lines(ctx)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return common.ErrEmptyCart
	}
	fmt.Fprintf(a.out, "Total: $%s\n", models.LinesTotal(lines).StringFixed(2))

	payment, err := a.readPayment()
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Processing payment...")
	order, err := a.orders.Checkout(ctx, payment)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Order placed successfully!")
	fmt.Fprintf(a.out, "Order %s: $%s, %s\n", order.ID, order.Total.StringFixed(2), statusBadge(order.Status))
	return nil
}

func describePayment(o models.Order) string {
	switch p := o.Payment.(type) {
	case models.CardPayment:
		return "card " + p.Masked()
	case models.TransferPayment:
		return "transfer " + p.Reference
	}
	return string(o.PaymentMethod)
}

// Orders lists the viewer's orders, or all of them for an admin.
func (a *App) Orders(ctx context.Context) error {
	viewer, ok := a.identity.Current().Get()
	if !ok {
		return common.ErrUnauthorized
	}
	orders, err := a.orders.ListOrders(ctx, viewer)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Fprintln(a.out, "No orders yet")
		return nil
	}

	for i, o := range orders {
		fmt.Fprintf(a.out, "%d. %s  %s  %s  $%s  %s\n",
			i+1, o.ID, o.CreatedAt.Local().Format("2006-01-02 15:04"),
			statusBadge(o.Status), o.Total.StringFixed(2), describePayment(o))
		if viewer.IsAdmin() {
			fmt.Fprintf(a.out, "     customer: %s\n", o.UserID)
		}
		for _, l := range o.Items {
			fmt.Fprintf(a.out, "     %s x%d @ $%s\n", l.Name, l.Quantity, l.Price.StringFixed(2))
		}
	}
	return nil
}

// Advance moves an order to the given status, or to its next one when no
// status is named.
func (a *App) Advance(ctx context.Context, args []string) error {
	viewer, _ := a.identity.Current().Get()

	ref, err := a.argOrPrompt(args, 0, "Order number or ID")
	if err != nil {
		return err
	}
	orders, err := a.orders.ListOrders(ctx, viewer)
	if err != nil {
		return err
	}
	o, ok := pick(orders, ref, func(o models.Order) string { return o.ID })
	if !ok {
		return fmt.Errorf("order %s: %w", ref, common.ErrNotFound)
	}

	next, hasNext := services.NextStatus(o)
	target := next
	if len(args) > 1 {
		target = models.OrderStatus(strings.ToLower(args[1]))
	} else if !hasNext {
		fmt.Fprintf(a.out, "Order %s is already %s\n", o.ID, statusBadge(o.Status))
		return nil
	}

	changed, err := a.orders.AdvanceStatus(ctx, o.ID, target)
	if err != nil {
		return err
	}
	if !changed {
		if hasNext {
			fmt.Fprintf(a.out, "Cannot move %s order to %s; next step is %s\n", o.Status, target, next)
		} else {
			fmt.Fprintf(a.out, "Order %s is already %s\n", o.ID, o.Status)
		}
		return nil
	}
	fmt.Fprintf(a.out, "Order %s is now %s\n", o.ID, statusBadge(target))
	return nil
}
