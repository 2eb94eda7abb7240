// Package models defines the storefront records persisted in the local
// store: accounts, products, cart lines and orders.
//
// Records are plain values serialised as JSON with camelCase field names.
// Relationships are by identifier; no record holds a pointer to another.
// Order lines are copies of the cart taken at checkout, so deleting a
// product later does not alter past orders.
package models
