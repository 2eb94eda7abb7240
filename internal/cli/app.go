package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gophstore/internal/config"
	"github.com/dmitrijs2005/gophstore/internal/logging"
	"github.com/dmitrijs2005/gophstore/internal/services"
	"github.com/dmitrijs2005/gophstore/internal/storage"
)

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB

	identity *services.IdentityService
	catalog  *services.CatalogService
	cart     *services.CartService
	orders   *services.OrderService
	summary  *services.SummaryService

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the store at c.DatabasePath, wires the services and restores
// the persisted session, if any.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	identity := services.NewIdentityService(db, log)
	if _, err := identity.Restore(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("restore session: %w", err)
	}

	return &App{
		config:   c,
		log:      log,
		db:       db,
		identity: identity,
		catalog:  services.NewCatalogService(db, log),
		cart:     services.NewCartService(db, log),
		orders:   services.NewOrderService(db, identity, c.CheckoutDelay, log),
		summary:  services.NewSummaryService(db),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

// Run drives the REPL on stdin until exit or EOF.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to GophStore (type 'help' for commands)")
	if acc, ok := a.identity.Current().Get(); ok {
		fmt.Fprintf(a.out, "Welcome back, %s\n", acc.Name)
	}
	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.identity.Current().IsPresent()
}

func (a *App) isAdmin() bool {
	return a.identity.IsAdmin()
}

func (a *App) getStatus(ctx context.Context) string {
	who := "guest"
	if acc, ok := a.identity.Current().Get(); ok {
		who = acc.Email
		if acc.IsAdmin() {
			who += " admin"
		}
	}
	items, err := a.cart.TotalItems(ctx)
	if err != nil {
		a.log.Warn(ctx, "cart unavailable", "error", err)
	}
	return fmt.Sprintf("(%s) [cart %d]", who, items)
}

// reportError prints a one-line message for err. Failures other than the
// expected domain outcomes are also logged.
func (a *App) reportError(ctx context.Context, cmd string, err error) {
	msg, expected := describe(err)
	if !expected {
		a.log.Error(ctx, "command failed", "command", cmd, "error", err)
	}
	fmt.Fprintln(a.out, msg)
}
