package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/gophstore/internal/common"
	"github.com/dmitrijs2005/gophstore/internal/models"
)

func (a *App) resolveLine(ctx context.Context, ref string) (models.CartLine, error) {
	lines, err := a.cart.Lines(ctx)
	if err != nil {
		return models.CartLine{}, err
	}
	l, ok := pick(lines, ref, func(l models.CartLine) string { return l.ID })
	if !ok {
		return models.CartLine{}, fmt.Errorf("cart item %s: %w", ref, common.ErrNotFound)
	}
	return l, nil
}

func (a *App) AddToCart(ctx context.Context, args []string) error {
	ref, err := a.argOrPrompt(args, 0, "Product number or ID")
	if err != nil {
		return err
	}
	p, err := a.resolveProduct(ctx, ref)
	if err != nil {
		return err
	}
	if p.Stock == 0 {
		return fmt.Errorf("%w: %s is out of stock", common.ErrValidation, p.Name)
	}
	line, err := a.cart.AddToCart(ctx, p)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s to cart (quantity %d)\n", line.Name, line.Quantity)
	return nil
}

func (a *App) Cart(ctx context.Context) error {
	lines, err := a.cart.Lines(ctx)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		fmt.Fprintln(a.out, "Your cart is empty")
		return nil
	}
	for i, l := range lines {
		fmt.Fprintf(a.out, "%d. %s x%d @ $%s = $%s\n",
			i+1, l.Name, l.Quantity, l.Price.StringFixed(2), l.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(a.out, "Total: $%s (%d items)\n",
		models.LinesTotal(lines).StringFixed(2), models.LinesQuantity(lines))
	return nil
}

// UpdateQuantity sets the quantity of a cart line; zero or less removes it.
func (a *App) UpdateQuantity(ctx context.Context, args []string) error {
	ref, err := a.argOrPrompt(args, 0, "Cart item number or ID")
	if err != nil {
		return err
	}
	l, err := a.resolveLine(ctx, ref)
	if err != nil {
		return err
	}
	s, err := a.argOrPrompt(args, 1, "Quantity")
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%w: quantity %q is not a number", common.ErrValidation, s)
	}

	if err := a.cart.UpdateQuantity(ctx, l.ID, n); err != nil {
		return err
	}
	if n <= 0 {
		fmt.Fprintln(a.out, "Item removed from cart")
	} else {
		fmt.Fprintf(a.out, "%s quantity set to %d\n", l.Name, n)
	}
	return nil
}

func (a *App) RemoveItem(ctx context.Context, args []string) error {
	ref, err := a.argOrPrompt(args, 0, "Cart item number or ID")
	if err != nil {
		return err
	}
	l, err := a.resolveLine(ctx, ref)
	if err != nil {
		return err
	}
	if err := a.cart.RemoveItem(ctx, l.ID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Item removed from cart")
	return nil
}
