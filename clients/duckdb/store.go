package duckdb

import (
	"context"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/quarry-data/quarry/lib/config"
	"github.com/quarry-data/quarry/lib/db"
)

// LoadStore opens the DuckDB database at cfg.Path; an empty path opens an
// in-memory database.
func LoadStore(ctx context.Context, cfg config.DuckDB) (db.Store, error) {
	return db.Open(ctx, "duckdb", cfg.Path)
}
