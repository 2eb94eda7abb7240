package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophstore/internal/common"
	"github.com/dmitrijs2005/gophstore/internal/filex"
	"github.com/dmitrijs2005/gophstore/internal/models"
	"github.com/samber/lo"
)

// pick resolves ref as a 1-based position in items or, failing that, as
// an ID matched by idOf.
func pick[T any](items []T, ref string, idOf func(T) string) (T, bool) {
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(items) {
		return items[n-1], true
	}
	return lo.Find(items, func(item T) bool { return idOf(item) == ref })
}

// argOrPrompt returns args[i] when present, otherwise asks for it.
func (a *App) argOrPrompt(args []string, i int, prompt string) (string, error) {
	if i < len(args) {
		return args[i], nil
	}
	s, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", errCancelled
	}
	return s, nil
}

func (a *App) resolveProduct(ctx context.Context, ref string) (models.Product, error) {
	products, err := a.catalog.ListProducts(ctx)
	if err != nil {
		return models.Product{}, err
	}
	p, ok := pick(products, ref, func(p models.Product) string { return p.ID })
	if !ok {
		return models.Product{}, fmt.Errorf("product %s: %w", ref, common.ErrNotFound)
	}
	return p, nil
}

func (a *App) Products(ctx context.Context) error {
	products, err := a.catalog.ListProducts(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		fmt.Fprintln(a.out, "No products yet")
		return nil
	}
	for i, p := range products {
		stock := fmt.Sprintf("stock:%d", p.Stock)
		if p.Stock == 0 {
			stock = "Out of Stock"
		}
		fmt.Fprintf(a.out, "%d. %s  $%s  %s  [%s]  %s\n",
			i+1, p.Name, p.Price.StringFixed(2), stock, p.Category, p.ID)
		if p.Description != "" {
			fmt.Fprintf(a.out, "     %s\n", p.Description)
		}
	}
	return nil
}

// readImage keeps URLs as they are and turns a local file into a data URL.
func readImage(s string) (string, error) {
	switch {
	case s == "",
		strings.HasPrefix(s, "http://"),
		strings.HasPrefix(s, "https://"),
		strings.HasPrefix(s, "data:"):
		return s, nil
	}
	return filex.ReadDataURL(s)
}

// AddProduct prompts for the product fields. It is only reachable for admins.
func (a *App) AddProduct(ctx context.Context) error {
	acc, _ := a.identity.Current().Get()

	in := models.ProductInput{AdminID: acc.ID}
	var err error

	if in.Name, err = getSimpleText(a.reader, "Name", a.out); err != nil {
		return err
	}
	if in.Description, err = getSimpleText(a.reader, "Description", a.out); err != nil {
		return err
	}

	price, err := getSimpleText(a.reader, "Price", a.out)
	if err != nil {
		return err
	}
	if in.Price, err = models.ParsePrice(price); err != nil {
		return err
	}

	if in.Category, err = getSimpleText(a.reader, "Category", a.out); err != nil {
		return err
	}

	stock, err := getOptional(a.reader, "Stock", "0", a.out)
	if err != nil {
		return err
	}
	if in.Stock, err = models.ParseStock(stock); err != nil {
		return err
	}

	image, err := getSimpleText(a.reader, "Image URL or file path (empty for default)", a.out)
	if err != nil {
		return err
	}
	if in.Image, err = readImage(image); err != nil {
		return err
	}

	p, err := a.catalog.AddProduct(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s (%s)\n", p.Name, p.ID)
	return nil
}

// EditProduct asks for every field with the current value as default;
// unchanged answers are left out of the patch.
func (a *App) EditProduct(ctx context.Context, args []string) error {
	ref, err := a.argOrPrompt(args, 0, "Product number or ID")
	if err != nil {
		return err
	}
	p, err := a.resolveProduct(ctx, ref)
	if err != nil {
		return err
	}

	var patch models.ProductPatch

	text := func(prompt, cur string, dst **string) error {
		s, err := getOptional(a.reader, prompt, cur, a.out)
		if err != nil {
			return err
		}
		if s != cur {
			*dst = &s
		}
		return nil
	}

	if err := text("Name", p.Name, &patch.Name); err != nil {
		return err
	}
	if err := text("Description", p.Description, &patch.Description); err != nil {
		return err
	}

	price, err := getOptional(a.reader, "Price", p.Price.StringFixed(2), a.out)
	if err != nil {
		return err
	}
	newPrice, err := models.ParsePrice(price)
	if err != nil {
		return err
	}
	if !newPrice.Equal(p.Price) {
		patch.Price = &newPrice
	}

	if err := text("Category", p.Category, &patch.Category); err != nil {
		return err
	}

	stock, err := getOptional(a.reader, "Stock", strconv.Itoa(p.Stock), a.out)
	if err != nil {
		return err
	}
	newStock, err := models.ParseStock(stock)
	if err != nil {
		return err
	}
	if newStock != p.Stock {
		patch.Stock = &newStock
	}

	image, err := getOptional(a.reader, "Image URL or file path", p.Image, a.out)
	if err != nil {
		return err
	}
	if image != p.Image {
		if image, err = readImage(image); err != nil {
			return err
		}
		patch.Image = &image
	}

	if err := a.catalog.UpdateProduct(ctx, p.ID, patch); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated %s\n", p.ID)
	return nil
}

func (a *App) DeleteProduct(ctx context.Context, args []string) error {
	ref, err := a.argOrPrompt(args, 0, "Product number or ID")
	if err != nil {
		return err
	}
	p, err := a.resolveProduct(ctx, ref)
	if err != nil {
		return err
	}
	if err := a.catalog.DeleteProduct(ctx, p.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s\n", p.Name)
	return nil
}
