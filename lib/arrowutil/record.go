// Package arrowutil bridges Arrow records (the dataframe payload) with the
// warehouse type model: schema derivation, record construction from scanned
// rows, and per-cell value extraction as native Go values.
package arrowutil

import (
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/quarry-data/quarry/lib/typing"
)

// KindForField maps an Arrow field to its warehouse kind.
// Unrecognized types are an error, never silently defaulted.
func KindForField(field arrow.Field) (typing.KindDetails, error) {
	switch field.Type.ID() {
	case arrow.STRING, arrow.LARGE_STRING:
		return typing.String, nil
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		return typing.Integer, nil
	case arrow.FLOAT32, arrow.FLOAT64:
		return typing.Float, nil
	case arrow.BOOL:
		return typing.Boolean, nil
	case arrow.TIMESTAMP:
		return typing.TimestampTZ, nil
	case arrow.DATE32, arrow.DATE64:
		return typing.Date, nil
	case arrow.TIME32, arrow.TIME64:
		return typing.Time, nil
	default:
		return typing.Invalid, fmt.Errorf("column %q has an unsupported arrow type: %s", field.Name, field.Type)
	}
}

// ArrowTypeForKind maps a warehouse kind to the Arrow type we materialize it as.
func ArrowTypeForKind(kd typing.KindDetails) (arrow.DataType, error) {
	switch kd.Kind {
	case typing.String.Kind:
		return arrow.BinaryTypes.String, nil
	case typing.Integer.Kind:
		return arrow.PrimitiveTypes.Int64, nil
	case typing.Float.Kind:
		return arrow.PrimitiveTypes.Float64, nil
	case typing.Boolean.Kind:
		return arrow.FixedWidthTypes.Boolean, nil
	case typing.TimestampTZ.Kind:
		return arrow.FixedWidthTypes.Timestamp_us, nil
	case typing.Date.Kind:
		return arrow.FixedWidthTypes.Date32, nil
	case typing.Time.Kind:
		return arrow.FixedWidthTypes.Time64us, nil
	default:
		return nil, fmt.Errorf("unsupported kind: %q", kd.Kind)
	}
}

// NewSchema builds an Arrow schema from parallel column names and kinds.
func NewSchema(names []string, kinds []typing.KindDetails) (*arrow.Schema, error) {
	if len(names) != len(kinds) {
		return nil, fmt.Errorf("names (%d) and kinds (%d) must be the same length", len(names), len(kinds))
	}

	fields := make([]arrow.Field, len(names))
	for i, name := range names {
		arrowType, err := ArrowTypeForKind(kinds[i])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}

		fields[i] = arrow.Field{Name: name, Type: arrowType, Nullable: true}
	}

	return arrow.NewSchema(fields, nil), nil
}

// RecordFromRows builds a record from row-major values. Values must be native
// Go scalars (string, []byte, int64 and friends, float64, bool, time.Time) or nil.
func RecordFromRows(schema *arrow.Schema, rows [][]any) (arrow.Record, error) {
	recordBuilder := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer recordBuilder.Release()

	for rowIdx, row := range rows {
		if len(row) != schema.NumFields() {
			return nil, fmt.Errorf("row %d has %d values, schema has %d fields", rowIdx, len(row), schema.NumFields())
		}

		for colIdx, value := range row {
			if err := appendValue(recordBuilder.Field(colIdx), value); err != nil {
				return nil, fmt.Errorf("column %q, row %d: %w", schema.Field(colIdx).Name, rowIdx, err)
			}
		}
	}

	return recordBuilder.NewRecord(), nil
}

// ValueAt extracts one cell as a native Go value (nil for SQL NULL).
func ValueAt(record arrow.Record, colIdx, rowIdx int) (any, error) {
	column := record.Column(colIdx)
	if column.IsNull(rowIdx) {
		return nil, nil
	}

	switch castedColumn := column.(type) {
	case *array.String:
		return castedColumn.Value(rowIdx), nil
	case *array.LargeString:
		return castedColumn.Value(rowIdx), nil
	case *array.Int8:
		return int64(castedColumn.Value(rowIdx)), nil
	case *array.Int16:
		return int64(castedColumn.Value(rowIdx)), nil
	case *array.Int32:
		return int64(castedColumn.Value(rowIdx)), nil
	case *array.Int64:
		return castedColumn.Value(rowIdx), nil
	case *array.Float32:
		return float64(castedColumn.Value(rowIdx)), nil
	case *array.Float64:
		return castedColumn.Value(rowIdx), nil
	case *array.Boolean:
		return castedColumn.Value(rowIdx), nil
	case *array.Timestamp:
		unit := castedColumn.DataType().(*arrow.TimestampType).Unit
		return castedColumn.Value(rowIdx).ToTime(unit).UTC(), nil
	case *array.Date32:
		return castedColumn.Value(rowIdx).ToTime().UTC(), nil
	case *array.Date64:
		return castedColumn.Value(rowIdx).ToTime().UTC(), nil
	case *array.Time64:
		unit := castedColumn.DataType().(*arrow.Time64Type).Unit
		return castedColumn.Value(rowIdx).ToTime(unit).UTC(), nil
	default:
		return nil, fmt.Errorf("unsupported arrow array type: %T", column)
	}
}

func appendValue(builder array.Builder, value any) error {
	if value == nil {
		builder.AppendNull()
		return nil
	}

	switch castedBuilder := builder.(type) {
	case *array.StringBuilder:
		switch castedValue := value.(type) {
		case string:
			castedBuilder.Append(castedValue)
		case []byte:
			castedBuilder.Append(string(castedValue))
		default:
			castedBuilder.Append(fmt.Sprint(castedValue))
		}
	case *array.Int64Builder:
		castedValue, err := toInt64(value)
		if err != nil {
			return err
		}
		castedBuilder.Append(castedValue)
	case *array.Float64Builder:
		switch castedValue := value.(type) {
		case float64:
			castedBuilder.Append(castedValue)
		case float32:
			castedBuilder.Append(float64(castedValue))
		case int64:
			castedBuilder.Append(float64(castedValue))
		default:
			return fmt.Errorf("expected a float, got %T", value)
		}
	case *array.BooleanBuilder:
		castedValue, err := typing.AssertType[bool](value)
		if err != nil {
			return err
		}
		castedBuilder.Append(castedValue)
	case *array.TimestampBuilder:
		castedValue, err := typing.AssertType[time.Time](value)
		if err != nil {
			return err
		}
		castedBuilder.Append(arrow.Timestamp(castedValue.UTC().UnixMicro()))
	case *array.Date32Builder:
		castedValue, err := typing.AssertType[time.Time](value)
		if err != nil {
			return err
		}
		castedBuilder.Append(arrow.Date32FromTime(castedValue))
	case *array.Time64Builder:
		castedValue, err := typing.AssertType[time.Time](value)
		if err != nil {
			return err
		}
		castedValue = castedValue.UTC()
		micros := int64(castedValue.Hour())*3600_000_000 +
			int64(castedValue.Minute())*60_000_000 +
			int64(castedValue.Second())*1_000_000 +
			int64(castedValue.Nanosecond())/1_000
		castedBuilder.Append(arrow.Time64(micros))
	default:
		return fmt.Errorf("unsupported builder type: %T", builder)
	}

	return nil
}

func toInt64(value any) (int64, error) {
	switch castedValue := value.(type) {
	case int:
		return int64(castedValue), nil
	case int8:
		return int64(castedValue), nil
	case int16:
		return int64(castedValue), nil
	case int32:
		return int64(castedValue), nil
	case int64:
		return castedValue, nil
	case uint8:
		return int64(castedValue), nil
	case uint16:
		return int64(castedValue), nil
	case uint32:
		return int64(castedValue), nil
	case uint64:
		return int64(castedValue), nil
	case float64:
		// Generic drivers may scan integral columns into floats.
		return int64(castedValue), nil
	default:
		return 0, fmt.Errorf("expected an integer, got %T", value)
	}
}
