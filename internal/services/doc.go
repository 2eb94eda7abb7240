// Package services contains the storefront application services: identity
// (accounts and the active session), catalog, cart, orders and a store
// summary. Every service works against the local store through
// repositories built per call, and every read-modify-write runs inside one
// dbx.WithTx transaction.
package services
