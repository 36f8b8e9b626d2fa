package utils

import (
	"context"
	"fmt"

	"github.com/quarry-data/quarry/clients/duckdb"
	duckDBDialect "github.com/quarry-data/quarry/clients/duckdb/dialect"
	"github.com/quarry-data/quarry/clients/postgres"
	postgresDialect "github.com/quarry-data/quarry/clients/postgres/dialect"
	"github.com/quarry-data/quarry/clients/snowflake"
	snowflakeDialect "github.com/quarry-data/quarry/clients/snowflake/dialect"
	"github.com/quarry-data/quarry/lib/config"
	"github.com/quarry-data/quarry/lib/config/constants"
	"github.com/quarry-data/quarry/lib/db"
	"github.com/quarry-data/quarry/lib/sql"
)

// LoadStore dials the configured destination.
func LoadStore(ctx context.Context, cfg *config.Config) (db.Store, error) {
	switch cfg.Output {
	case constants.Snowflake:
		return snowflake.LoadStore(ctx, *cfg.Snowflake)
	case constants.Postgres:
		return postgres.LoadStore(ctx, *cfg.Postgres)
	case constants.DuckDB:
		return duckdb.LoadStore(ctx, *cfg.DuckDB)
	default:
		return nil, fmt.Errorf("unsupported destination: %q", cfg.Output)
	}
}

// LoadDialect returns the SQL dialect for the configured destination.
func LoadDialect(kind constants.DestinationKind) (sql.Dialect, error) {
	switch kind {
	case constants.Snowflake:
		return snowflakeDialect.SnowflakeDialect{}, nil
	case constants.Postgres:
		return postgresDialect.PostgresDialect{}, nil
	case constants.DuckDB:
		return duckDBDialect.DuckDBDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported destination: %q", kind)
	}
}
