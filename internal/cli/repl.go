package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	reportError(ctx context.Context, cmd string, err error)

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	Products(ctx context.Context) error
	AddToCart(ctx context.Context, args []string) error
	Cart(ctx context.Context) error
	UpdateQuantity(ctx context.Context, args []string) error
	RemoveItem(ctx context.Context, args []string) error
	Summary(ctx context.Context) error

	Checkout(ctx context.Context) error
	Orders(ctx context.Context) error

	AddProduct(ctx context.Context) error
	EditProduct(ctx context.Context, args []string) error
	DeleteProduct(ctx context.Context, args []string) error
	Advance(ctx context.Context, args []string) error
}

var sessionCommands = map[string]bool{
	"checkout": true,
	"orders":   true,
	"logout":   true,
	"whoami":   true,
}

var adminCommands = map[string]bool{
	"addproduct":    true,
	"editproduct":   true,
	"deleteproduct": true,
	"advance":       true,
}

// runREPL is the read–eval–print loop of the storefront CLI.
//
// It reads a line from reader, takes the first token as the command and the
// rest as its arguments, and dispatches to a. The loop exits on EOF or when
// the user types "exit" or "quit".
//
//	Anyone:
//	  - help                         show available commands
//	  - register | login             create an account or authenticate
//	  - products | p                 list the catalog
//	  - add <product>                put a product in the cart
//	  - cart                         show the cart
//	  - qty <line> <n>               set a cart quantity (0 removes)
//	  - remove <line>                drop a cart line
//	  - summary                      record counts in the store
//	  - exit | quit                  leave the program
//
//	Logged in:
//	  - checkout | orders | whoami | logout
//
//	Admin:
//	  - addproduct | editproduct <product> | deleteproduct <product>
//	  - advance <order> [status]
//
// Command errors go to a.reportError; the loop keeps running.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gs> %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if sessionCommands[cmd] && !a.isLoggedIn() {
			printlnFn("Please login first")
			continue
		}
		if adminCommands[cmd] && !a.isAdmin() {
			printlnFn("Admin access required")
			continue
		}

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpText(a))

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "p", "products":
			cmdErr = a.Products(ctx)

		case "add":
			cmdErr = a.AddToCart(ctx, args)

		case "cart":
			cmdErr = a.Cart(ctx)

		case "qty":
			cmdErr = a.UpdateQuantity(ctx, args)

		case "remove":
			cmdErr = a.RemoveItem(ctx, args)

		case "summary":
			cmdErr = a.Summary(ctx)

		case "checkout":
			cmdErr = a.Checkout(ctx)

		case "orders":
			cmdErr = a.Orders(ctx)

		case "addproduct":
			cmdErr = a.AddProduct(ctx)

		case "editproduct":
			cmdErr = a.EditProduct(ctx, args)

		case "deleteproduct":
			cmdErr = a.DeleteProduct(ctx, args)

		case "advance":
			cmdErr = a.Advance(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			a.reportError(ctx, cmd, cmdErr)
		}
		if errors.Is(err, io.EOF) {
			return
		}
	}
}

func helpText(a execIface) string {
	cmds := []string{"products", "add", "cart", "qty", "remove", "summary"}
	if a.isLoggedIn() {
		cmds = append(cmds, "checkout", "orders", "whoami", "logout")
	} else {
		cmds = append(cmds, "register", "login")
	}
	if a.isAdmin() {
		cmds = append(cmds, "addproduct", "editproduct", "deleteproduct", "advance")
	}
	cmds = append(cmds, "exit")
	return "Available commands: " + strings.Join(cmds, ", ")
}
