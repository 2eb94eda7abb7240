package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophstore/internal/repositories/collection"
)

func (a *App) Summary(ctx context.Context) error {
	counts, err := a.summary.Summary(ctx)
	if err != nil {
		return err
	}
	for _, key := range collection.Keys {
		fmt.Fprintf(a.out, "%-12s %d\n", key, counts[key])
	}
	return nil
}
