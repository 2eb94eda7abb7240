package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophstore/internal/repositories/collection"
	"github.com/dmitrijs2005/gophstore/internal/repositories/kv"
	"github.com/tidwall/gjson"
)

// SummaryService reports how many records each collection holds. It reads
// the raw documents and never decodes records.
type SummaryService struct {
	db *sql.DB
}

func NewSummaryService(db *sql.DB) *SummaryService {
	return &SummaryService{db: db}
}

// Summary maps every known collection key to its record count; absent keys
// count as zero and the currentUser slot counts as 0 or 1.
func (s *SummaryService) Summary(ctx context.Context) (map[string]int64, error) {
	all, err := kv.NewSQLiteRepository(s.db).List(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(collection.Keys))
	for _, key := range collection.Keys {
		raw, ok := all[key]
		if !ok {
			out[key] = 0
			continue
		}
		doc := gjson.ParseBytes(raw)
		switch {
		case doc.IsArray():
			out[key] = doc.Get("#").Int()
		case doc.IsObject():
			out[key] = 1
		default:
			out[key] = 0
		}
	}
	return out, nil
}
