// Package values renders column values as SQL literals for generated DML.
package values

import (
	"fmt"
	"strconv"
	"time"

	"github.com/quarry-data/quarry/lib/sql"
	"github.com/quarry-data/quarry/lib/typing"
)

// ToString renders a value as its canonical unquoted string form for the given kind.
func ToString(colVal any, kd typing.KindDetails) (string, error) {
	if colVal == nil {
		return "", fmt.Errorf("colVal is nil")
	}

	switch kd.Kind {
	case typing.String.Kind:
		switch castedVal := colVal.(type) {
		case string:
			return castedVal, nil
		case []byte:
			return string(castedVal), nil
		default:
			return fmt.Sprint(colVal), nil
		}
	case typing.Integer.Kind:
		switch castedVal := colVal.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return fmt.Sprint(castedVal), nil
		case float64:
			// Integers scanned out of generic drivers may come back as floats.
			return strconv.FormatInt(int64(castedVal), 10), nil
		default:
			return "", fmt.Errorf("expected an integer value, got %T", colVal)
		}
	case typing.Float.Kind:
		switch castedVal := colVal.(type) {
		case float32:
			return strconv.FormatFloat(float64(castedVal), 'f', -1, 32), nil
		case float64:
			return strconv.FormatFloat(castedVal, 'f', -1, 64), nil
		case int, int8, int16, int32, int64:
			return fmt.Sprint(castedVal), nil
		default:
			return "", fmt.Errorf("expected a float value, got %T", colVal)
		}
	case typing.Boolean.Kind:
		castedVal, err := typing.AssertType[bool](colVal)
		if err != nil {
			return "", err
		}

		return strconv.FormatBool(castedVal), nil
	case typing.Date.Kind:
		return timeToString(colVal, typing.DateLayout)
	case typing.Time.Kind:
		return timeToString(colVal, typing.TimeLayout)
	case typing.TimestampTZ.Kind:
		return timeToString(colVal, typing.TimestampLayout)
	default:
		return "", fmt.Errorf("unsupported kind: %q", kd.Kind)
	}
}

// ToSQLLiteral renders a value as a literal that can be embedded in a statement.
// Textual and temporal kinds are single-quoted in the dialect's escaping style;
// numeric and boolean kinds are not.
func ToSQLLiteral(dialect sql.Dialect, colVal any, kd typing.KindDetails) (string, error) {
	if colVal == nil {
		return "NULL", nil
	}

	value, err := ToString(colVal, kd)
	if err != nil {
		return "", err
	}

	switch kd.Kind {
	case typing.String.Kind, typing.Date.Kind, typing.Time.Kind, typing.TimestampTZ.Kind:
		return dialect.QuoteLiteral(value), nil
	default:
		return value, nil
	}
}

// FromString parses the canonical string form back into a native value.
// This is the inverse of [ToString].
func FromString(value string, kd typing.KindDetails) (any, error) {
	switch kd.Kind {
	case typing.String.Kind:
		return value, nil
	case typing.Integer.Kind:
		return strconv.ParseInt(value, 10, 64)
	case typing.Float.Kind:
		return strconv.ParseFloat(value, 64)
	case typing.Boolean.Kind:
		return strconv.ParseBool(value)
	case typing.Date.Kind:
		return time.ParseInLocation(typing.DateLayout, value, time.UTC)
	case typing.Time.Kind:
		return time.ParseInLocation(typing.TimeLayout, value, time.UTC)
	case typing.TimestampTZ.Kind:
		parsed, err := time.ParseInLocation(typing.TimestampLayout, value, time.UTC)
		if err != nil {
			// Date-only timestamps are common in hand-written files.
			return time.ParseInLocation(typing.DateLayout, value, time.UTC)
		}
		return parsed, nil
	default:
		return nil, fmt.Errorf("unsupported kind: %q", kd.Kind)
	}
}

func timeToString(colVal any, layout string) (string, error) {
	switch castedVal := colVal.(type) {
	case time.Time:
		return castedVal.UTC().Format(layout), nil
	case string:
		// Already rendered upstream; trust the caller.
		return castedVal, nil
	default:
		return "", fmt.Errorf("expected time.Time, got %T", colVal)
	}
}
