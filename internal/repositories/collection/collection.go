// Package collection maps the named JSON documents of the local store onto
// typed Go values.
package collection

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/gophstore/internal/repositories/kv"
	"github.com/samber/mo"
)

// Keys of the persisted collections.
const (
	KeyUsers       = "users"
	KeyCurrentUser = "currentUser"
	KeyProducts    = "products"
	KeyCart        = "cart"
	KeyOrders      = "orders"
)

// Keys lists every key the storefront owns, in display order.
var Keys = []string{KeyUsers, KeyCurrentUser, KeyProducts, KeyCart, KeyOrders}

// Collection is an ordered sequence of T stored as one JSON array.
type Collection[T any] struct {
	repo kv.Repository
	key  string
}

func New[T any](repo kv.Repository, key string) *Collection[T] {
	return &Collection[T]{repo: repo, key: key}
}

// Load returns the stored sequence; an absent key yields an empty slice.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	raw, err := c.repo.Get(ctx, c.key)
	if err != nil {
		return nil, err
	}
	items := make([]T, 0)
	if len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.key, err)
	}
	return items, nil
}

// Save replaces the stored sequence with items.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	return c.repo.Set(ctx, c.key, raw)
}

// Clear removes the key, so a later Load sees an empty sequence.
func (c *Collection[T]) Clear(ctx context.Context) error {
	return c.repo.Delete(ctx, c.key)
}

// Slot holds zero or one T under a single key.
type Slot[T any] struct {
	repo kv.Repository
	key  string
}

func NewSlot[T any](repo kv.Repository, key string) *Slot[T] {
	return &Slot[T]{repo: repo, key: key}
}

func (s *Slot[T]) Load(ctx context.Context) (mo.Option[T], error) {
	raw, err := s.repo.Get(ctx, s.key)
	if err != nil {
		return mo.None[T](), err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return mo.None[T](), nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return mo.None[T](), fmt.Errorf("decode %s: %w", s.key, err)
	}
	return mo.Some(v), nil
}

func (s *Slot[T]) Store(ctx context.Context, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}
	return s.repo.Set(ctx, s.key, raw)
}

func (s *Slot[T]) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, s.key)
}
