package snowflake

import (
	"context"
	"fmt"

	"github.com/snowflakedb/gosnowflake"

	"github.com/quarry-data/quarry/lib/config"
	"github.com/quarry-data/quarry/lib/db"
)

func LoadStore(ctx context.Context, cfg config.Snowflake) (db.Store, error) {
	snowflakeCfg := &gosnowflake.Config{
		Account:   cfg.AccountID,
		User:      cfg.Username,
		Password:  cfg.Password,
		Warehouse: cfg.Warehouse,
		Region:    cfg.Region,
		Database:  cfg.Database,
	}

	if cfg.Host != "" {
		// In the case that the host is specified, the account and region must not be set.
		// https://pkg.go.dev/github.com/snowflakedb/gosnowflake#Config
		snowflakeCfg.Host = cfg.Host
		snowflakeCfg.Account = ""
		snowflakeCfg.Region = ""
	}

	dsn, err := gosnowflake.DSN(snowflakeCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Snowflake DSN: %w", err)
	}

	return db.Open(ctx, "snowflake", dsn)
}
