package partition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDimensionsForKey_TimeWindow(t *testing.T) {
	definition := NewDailyDefinition(time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC))

	dimensions, err := DimensionsForKey(definition, NewExpr("event_at"), NewKey("2022-01-01"))
	assert.NoError(t, err)
	assert.Len(t, dimensions, 1)
	assert.Equal(t, TimeWindowKind, dimensions[0].Kind)
	assert.Equal(t, "event_at", dimensions[0].Expr)
	assert.Equal(t, time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), dimensions[0].Window.Start)
	assert.Equal(t, time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC), dimensions[0].Window.End)
}

func TestDimensionsForKey_Static(t *testing.T) {
	definition := StaticDefinition{Keys: []string{"red", "yellow", "blue"}}
	{
		dimensions, err := DimensionsForKey(definition, NewExpr("color"), NewKey("red"))
		assert.NoError(t, err)
		assert.Len(t, dimensions, 1)
		assert.Equal(t, CategoricalKind, dimensions[0].Kind)
		assert.Equal(t, []string{"red"}, dimensions[0].Keys)
	}
	{
		_, err := DimensionsForKey(definition, NewExpr("color"), NewKey("green"))
		assert.ErrorContains(t, err, `partition key "green" is not in the partition set`)
	}
	{
		_, err := DimensionsForKey(definition, Expr{}, NewKey("red"))
		assert.ErrorContains(t, err, "no partition expression provided")
	}
}

func TestDimensionsForKey_Dynamic(t *testing.T) {
	definition := NewDynamicDefinition("fruits")
	{
		// Unregistered keys are rejected.
		_, err := DimensionsForKey(definition, NewExpr("fruit"), NewKey("apple"))
		assert.ErrorContains(t, err, "has not been registered")
	}

	definition.AddKeys("apple", "orange")
	definition.AddKeys("apple") // idempotent
	assert.Equal(t, []string{"apple", "orange"}, definition.Keys())

	dimensions, err := DimensionsForKey(definition, NewExpr("fruit"), NewKey("apple"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"apple"}, dimensions[0].Keys)
}

func TestDimensionsForKey_Multi(t *testing.T) {
	timeDefinition := NewDailyDefinition(time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC))
	colorDefinition := StaticDefinition{Keys: []string{"red", "yellow", "blue"}}

	definition, err := NewMultiDefinition(map[string]Definition{
		"time":  timeDefinition,
		"color": colorDefinition,
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"color", "time"}, definition.DimensionNames())

	expr := NewMultiExpr(map[string]string{
		"time":  "CAST(event_at AS TIMESTAMP)",
		"color": "color",
	})
	{
		key := NewMultiKey(map[string]string{"time": "2022-01-01", "color": "red"})
		dimensions, err := DimensionsForKey(definition, expr, key)
		assert.NoError(t, err)
		assert.Len(t, dimensions, 2)

		// Dimensions come back ordered by name.
		assert.Equal(t, "color", dimensions[0].Name)
		assert.Equal(t, CategoricalKind, dimensions[0].Kind)
		assert.Equal(t, []string{"red"}, dimensions[0].Keys)

		assert.Equal(t, "time", dimensions[1].Name)
		assert.Equal(t, TimeWindowKind, dimensions[1].Kind)
		assert.Equal(t, "CAST(event_at AS TIMESTAMP)", dimensions[1].Expr)
	}
	{
		// Missing dimension in the key.
		_, err := DimensionsForKey(definition, expr, NewMultiKey(map[string]string{"time": "2022-01-01"}))
		assert.ErrorContains(t, err, `partition key is missing dimension "color"`)
	}
	{
		// Scalar key against a multi definition.
		_, err := DimensionsForKey(definition, expr, NewKey("2022-01-01"))
		assert.ErrorContains(t, err, "requires a multi partition key")
	}
	{
		// Multi key against a scalar definition.
		_, err := DimensionsForKey(colorDefinition, NewExpr("color"), NewMultiKey(map[string]string{"color": "red"}))
		assert.ErrorContains(t, err, "requires a multi definition")
	}
}

func TestNewMultiDefinition(t *testing.T) {
	{
		_, err := NewMultiDefinition(map[string]Definition{})
		assert.ErrorContains(t, err, "at least one dimension")
	}
	{
		inner, err := NewMultiDefinition(map[string]Definition{"color": StaticDefinition{Keys: []string{"red"}}})
		assert.NoError(t, err)

		_, err = NewMultiDefinition(map[string]Definition{"nested": inner})
		assert.ErrorContains(t, err, "cannot be nested")
	}
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "red", NewKey("red").String())
	// Multi keys render ordered by dimension name.
	assert.Equal(t, "red|2022-01-01", NewMultiKey(map[string]string{"time": "2022-01-01", "color": "red"}).String())
}
