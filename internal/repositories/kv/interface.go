// Package kv is the durable string-keyed store behind every collection:
// one row per key, value held as an opaque JSON document.
//
// The SQLite implementation runs over dbx.DBTX, so the same repository type
// serves plain reads on *sql.DB and atomic units of work on *sql.Tx:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    repo := kv.NewSQLiteRepository(tx)
//	    if err := repo.Set(ctx, "orders", orders); err != nil {
//	        return err
//	    }
//	    return repo.Delete(ctx, "cart")
//	})
package kv

import "context"

// Repository is a key/value store. Get returns (nil, nil) for an absent
// key; Delete of an absent key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
