package values

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	duckDBDialect "github.com/quarry-data/quarry/clients/duckdb/dialect"
	snowflakeDialect "github.com/quarry-data/quarry/clients/snowflake/dialect"
	"github.com/quarry-data/quarry/lib/typing"
)

func TestToString(t *testing.T) {
	{
		value, err := ToString("hello", typing.String)
		assert.NoError(t, err)
		assert.Equal(t, "hello", value)
	}
	{
		value, err := ToString([]byte("raw"), typing.String)
		assert.NoError(t, err)
		assert.Equal(t, "raw", value)
	}
	{
		value, err := ToString(int64(42), typing.Integer)
		assert.NoError(t, err)
		assert.Equal(t, "42", value)
	}
	{
		// Drivers may hand integers back as floats.
		value, err := ToString(float64(42), typing.Integer)
		assert.NoError(t, err)
		assert.Equal(t, "42", value)
	}
	{
		value, err := ToString(1.5, typing.Float)
		assert.NoError(t, err)
		assert.Equal(t, "1.5", value)
	}
	{
		value, err := ToString(true, typing.Boolean)
		assert.NoError(t, err)
		assert.Equal(t, "true", value)
	}
	{
		ts := time.Date(2022, 1, 1, 10, 30, 0, 0, time.UTC)
		value, err := ToString(ts, typing.TimestampTZ)
		assert.NoError(t, err)
		assert.Equal(t, "2022-01-01 10:30:00", value)
	}
	{
		value, err := ToString(time.Date(2022, 1, 1, 10, 30, 0, 0, time.UTC), typing.Date)
		assert.NoError(t, err)
		assert.Equal(t, "2022-01-01", value)
	}
	{
		_, err := ToString(nil, typing.String)
		assert.ErrorContains(t, err, "colVal is nil")
	}
	{
		_, err := ToString("not-a-bool", typing.Boolean)
		assert.Error(t, err)
	}
}

func TestFromString(t *testing.T) {
	{
		value, err := FromString("hello", typing.String)
		assert.NoError(t, err)
		assert.Equal(t, "hello", value)
	}
	{
		value, err := FromString("42", typing.Integer)
		assert.NoError(t, err)
		assert.Equal(t, int64(42), value)
	}
	{
		value, err := FromString("1.5", typing.Float)
		assert.NoError(t, err)
		assert.Equal(t, 1.5, value)
	}
	{
		value, err := FromString("true", typing.Boolean)
		assert.NoError(t, err)
		assert.Equal(t, true, value)
	}
	{
		value, err := FromString("2022-01-01 10:30:00.5", typing.TimestampTZ)
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2022, 1, 1, 10, 30, 0, 500_000_000, time.UTC), value)
	}
	{
		// Date-only timestamps are accepted.
		value, err := FromString("2022-01-01", typing.TimestampTZ)
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), value)
	}
	{
		value, err := FromString("2022-01-01", typing.Date)
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), value)
	}
	{
		_, err := FromString("not-a-number", typing.Integer)
		assert.Error(t, err)
	}
	{
		_, err := FromString("x", typing.Invalid)
		assert.ErrorContains(t, err, "unsupported kind")
	}
}

func TestToSQLLiteral(t *testing.T) {
	dialect := duckDBDialect.DuckDBDialect{}
	{
		value, err := ToSQLLiteral(dialect, nil, typing.String)
		assert.NoError(t, err)
		assert.Equal(t, "NULL", value)
	}
	{
		value, err := ToSQLLiteral(dialect, "red", typing.String)
		assert.NoError(t, err)
		assert.Equal(t, "'red'", value)
	}
	{
		value, err := ToSQLLiteral(dialect, int64(7), typing.Integer)
		assert.NoError(t, err)
		assert.Equal(t, "7", value)
	}
	{
		value, err := ToSQLLiteral(dialect, time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), typing.TimestampTZ)
		assert.NoError(t, err)
		assert.Equal(t, "'2022-01-01 00:00:00'", value)
	}
	{
		// Escaping follows the dialect: quote doubling for DuckDB/Postgres,
		// backslashes for Snowflake.
		value, err := ToSQLLiteral(dialect, "bob's", typing.String)
		assert.NoError(t, err)
		assert.Equal(t, "'bob''s'", value)

		value, err = ToSQLLiteral(dialect, `a\b`, typing.String)
		assert.NoError(t, err)
		assert.Equal(t, `'a\b'`, value)

		value, err = ToSQLLiteral(snowflakeDialect.SnowflakeDialect{}, "bob's", typing.String)
		assert.NoError(t, err)
		assert.Equal(t, `'bob\'s'`, value)

		value, err = ToSQLLiteral(snowflakeDialect.SnowflakeDialect{}, `a\b`, typing.String)
		assert.NoError(t, err)
		assert.Equal(t, `'a\\b'`, value)
	}
}
