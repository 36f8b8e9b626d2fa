package partition

import "fmt"

// TimeWindowMapping maps an asset's current partition to an upstream partition
// of the same timeline by a fixed window offset. A start/end offset of -1 reads
// the previous window, which is how a partitioned asset depends on its own
// prior materialization.
type TimeWindowMapping struct {
	StartOffset int
	EndOffset   int
}

// WindowForKey resolves the mapped window for a partition key. The result is
// clamped to the partition start: mapping before the first partition yields an
// empty window rather than an error, so the dependent read comes back empty.
func (t TimeWindowMapping) WindowForKey(definition TimeWindowDefinition, key string) (TimeWindow, error) {
	if t.StartOffset > t.EndOffset {
		return TimeWindow{}, fmt.Errorf("start offset (%d) cannot exceed end offset (%d)", t.StartOffset, t.EndOffset)
	}

	window, err := definition.WindowForKey(key)
	if err != nil {
		return TimeWindow{}, err
	}

	return definition.OffsetWindow(window, t.StartOffset, t.EndOffset), nil
}

// DimensionForKey resolves the mapped window into a ready-to-use dimension.
func (t TimeWindowMapping) DimensionForKey(definition TimeWindowDefinition, expr, key string) (Dimension, error) {
	window, err := t.WindowForKey(definition, key)
	if err != nil {
		return Dimension{}, err
	}

	return Dimension{Name: expr, Expr: expr, Kind: TimeWindowKind, Window: window}, nil
}
