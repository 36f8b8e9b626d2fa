package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quarry-data/quarry/lib/config/constants"
)

const (
	defaultInsertBatchRows = 1_000
	// Snowflake has a limit of 2^14 elements within an expression, so we cap how
	// many rows a single INSERT may carry.
	// https://github.com/snowflakedb/snowflake-connector-python/issues/37
	maxInsertBatchRows = 10_000
)

type Sentry struct {
	DSN string `yaml:"dsn"`
}

type Reporting struct {
	Sentry *Sentry `yaml:"sentry"`
}

type Snowflake struct {
	AccountID string `yaml:"account"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	Warehouse string `yaml:"warehouse"`
	Region    string `yaml:"region"`
	Host      string `yaml:"host"`
	Database  string `yaml:"database"`
}

func (s Snowflake) String() string {
	// Don't log credentials.
	return fmt.Sprintf("account=%s, username=%s, warehouse=%s, pass_set=%v", s.AccountID, s.Username, s.Warehouse, s.Password != "")
}

type Postgres struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

func (p Postgres) String() string {
	return fmt.Sprintf("host=%s, port=%d, username=%s, database=%s, pass_set=%v", p.Host, p.Port, p.Username, p.Database, p.Password != "")
}

type DuckDB struct {
	// Path to the database file; empty means in-memory.
	Path string `yaml:"path"`
}

type Config struct {
	Output constants.DestinationKind `yaml:"outputSource"`

	Snowflake *Snowflake `yaml:"snowflake,omitempty"`
	Postgres  *Postgres  `yaml:"postgres,omitempty"`
	DuckDB    *DuckDB    `yaml:"duckdb,omitempty"`

	InsertBatchRows int `yaml:"insertBatchRows"`

	Reporting Reporting `yaml:"reporting"`
}

func readFileToConfig(pathToConfig string) (*Config, error) {
	file, err := os.Open(pathToConfig)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	var config Config
	if err = yaml.Unmarshal(bytes, &config); err != nil {
		return nil, err
	}

	if config.InsertBatchRows == 0 {
		config.InsertBatchRows = defaultInsertBatchRows
	}

	return &config, nil
}

// Validate checks the configuration at construction time so that malformed
// settings fail fast rather than at point-of-use.
func (c Config) Validate() error {
	if !constants.IsValidDestination(c.Output) {
		return fmt.Errorf("invalid destination: %q", c.Output)
	}

	if c.InsertBatchRows < 0 || c.InsertBatchRows > maxInsertBatchRows {
		return fmt.Errorf("insertBatchRows (%d) must be within (0, %d]", c.InsertBatchRows, maxInsertBatchRows)
	}

	switch c.Output {
	case constants.Snowflake:
		if c.Snowflake == nil {
			return fmt.Errorf("snowflake config is nil")
		}
		if c.Snowflake.AccountID == "" || c.Snowflake.Username == "" {
			return fmt.Errorf("snowflake config is missing account or username")
		}
	case constants.Postgres:
		if c.Postgres == nil {
			return fmt.Errorf("postgres config is nil")
		}
		if c.Postgres.Host == "" || c.Postgres.Database == "" {
			return fmt.Errorf("postgres config is missing host or database")
		}
	case constants.DuckDB:
		if c.DuckDB == nil {
			return fmt.Errorf("duckdb config is nil")
		}
	}

	return nil
}
