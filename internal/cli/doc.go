// Package cli is the interactive storefront front-end.
//
// It reads commands in a small REPL and binds each one to the identity,
// catalog, cart and order services. Session and admin gating happen in the
// REPL before a command runs. Items, cart lines and orders can be referred
// to by their position in the last listing or by their ID.
package cli
