package postgres

import (
	"context"
	"fmt"
	"net/url"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/quarry-data/quarry/lib/config"
	"github.com/quarry-data/quarry/lib/db"
)

func LoadStore(ctx context.Context, cfg config.Postgres) (db.Store, error) {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.Username, cfg.Password),
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:   cfg.Database,
	}

	return db.Open(ctx, "pgx", dsn.String())
}
