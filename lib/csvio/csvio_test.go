package csvio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/quarry-data/quarry/lib/arrowutil"
	"github.com/quarry-data/quarry/lib/typing"
)

func TestRoundTrip(t *testing.T) {
	schema, err := arrowutil.NewSchema(
		[]string{"the_date", "color", "value"},
		[]typing.KindDetails{typing.TimestampTZ, typing.String, typing.Integer},
	)
	assert.NoError(t, err)

	record, err := arrowutil.RecordFromRows(schema, [][]any{
		{time.Date(2022, 1, 2, 3, 4, 5, 0, time.UTC), "red", int64(1)},
		{time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC), "", nil},
	})
	assert.NoError(t, err)
	defer record.Release()

	filePath := filepath.Join(t.TempDir(), "payload.csv")
	assert.NoError(t, WriteRecord(filePath, record))

	contents, err := os.ReadFile(filePath)
	assert.NoError(t, err)
	assert.Equal(t, "the_date,color,value\n2022-01-02 03:04:05,red,1\n2022-01-03 00:00:00,,\n", string(contents))

	readBack, err := ReadRecord(filePath, map[string]typing.KindDetails{
		"the_date": typing.TimestampTZ,
		"color":    typing.String,
		"value":    typing.Integer,
	})
	assert.NoError(t, err)
	defer readBack.Release()

	assert.Equal(t, int64(2), readBack.NumRows())

	value, err := arrowutil.ValueAt(readBack, 0, 0)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2022, 1, 2, 3, 4, 5, 0, time.UTC), value)

	// The empty string column survives as an empty string, the empty integer
	// column comes back as NULL.
	value, err = arrowutil.ValueAt(readBack, 1, 1)
	assert.NoError(t, err)
	assert.Equal(t, "", value)

	value, err = arrowutil.ValueAt(readBack, 2, 1)
	assert.NoError(t, err)
	assert.Nil(t, value)
}

func TestReadRecord_Errors(t *testing.T) {
	{
		// Header column without a declared kind.
		filePath := filepath.Join(t.TempDir(), "payload.csv")
		assert.NoError(t, os.WriteFile(filePath, []byte("a,b\n1,2\n"), 0o644))

		_, err := ReadRecord(filePath, map[string]typing.KindDetails{"a": typing.Integer})
		assert.ErrorContains(t, err, `no kind declared for column "b"`)
	}
	{
		// Unparseable cell names the column and line.
		filePath := filepath.Join(t.TempDir(), "payload.csv")
		assert.NoError(t, os.WriteFile(filePath, []byte("a\nnot-a-number\n"), 0o644))

		_, err := ReadRecord(filePath, map[string]typing.KindDetails{"a": typing.Integer})
		assert.ErrorContains(t, err, `column "a", line 2`)
	}
	{
		// Date-only timestamps are accepted.
		filePath := filepath.Join(t.TempDir(), "payload.csv")
		assert.NoError(t, os.WriteFile(filePath, []byte("d\n2022-01-02\n"), 0o644))

		record, err := ReadRecord(filePath, map[string]typing.KindDetails{"d": typing.TimestampTZ})
		assert.NoError(t, err)
		defer record.Release()

		value, err := arrowutil.ValueAt(record, 0, 0)
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC), value)
	}
	{
		// Empty file.
		filePath := filepath.Join(t.TempDir(), "payload.csv")
		assert.NoError(t, os.WriteFile(filePath, []byte(""), 0o644))

		_, err := ReadRecord(filePath, map[string]typing.KindDetails{})
		assert.ErrorContains(t, err, "has no header row")
	}
}
