package partition

import (
	"fmt"
	"time"
)

type Cadence string

const (
	Hourly  Cadence = "hourly"
	Daily   Cadence = "daily"
	Monthly Cadence = "monthly"
)

// TimeWindow is a half-open interval [Start, End).
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Empty reports whether the window addresses no time range at all.
func (t TimeWindow) Empty() bool {
	return !t.Start.Before(t.End)
}

// TimeWindowDefinition partitions a timeline into fixed windows starting at Start.
// Keys are formatted timestamps identifying the start of their window.
type TimeWindowDefinition struct {
	Start   time.Time
	Cadence Cadence
	// Format is the key layout, e.g. time.DateOnly for daily partitions.
	Format string
}

func NewDailyDefinition(start time.Time) TimeWindowDefinition {
	return TimeWindowDefinition{Start: start, Cadence: Daily, Format: time.DateOnly}
}

func NewHourlyDefinition(start time.Time) TimeWindowDefinition {
	return TimeWindowDefinition{Start: start, Cadence: Hourly, Format: "2006-01-02-15"}
}

func NewMonthlyDefinition(start time.Time) TimeWindowDefinition {
	return TimeWindowDefinition{Start: start, Cadence: Monthly, Format: "2006-01"}
}

func (t TimeWindowDefinition) definitionKind() {}

// WindowForKey parses a partition key into its [start, end) window.
func (t TimeWindowDefinition) WindowForKey(key string) (TimeWindow, error) {
	start, err := time.ParseInLocation(t.Format, key, time.UTC)
	if err != nil {
		return TimeWindow{}, fmt.Errorf("failed to parse partition key %q with format %q: %w", key, t.Format, err)
	}

	if start.Before(t.Start) {
		return TimeWindow{}, fmt.Errorf("partition key %q predates the partition start %q", key, t.Start.Format(t.Format))
	}

	return TimeWindow{Start: start, End: t.advance(start, 1)}, nil
}

// OffsetWindow shifts a window by whole cadence units, clamping at the partition
// start. A window shifted entirely before the start collapses to an empty window,
// which addresses zero rows.
func (t TimeWindowDefinition) OffsetWindow(window TimeWindow, startOffset, endOffset int) TimeWindow {
	start := t.advance(window.Start, startOffset)
	end := t.advance(window.End, endOffset)

	if start.Before(t.Start) {
		start = t.Start
	}

	if end.Before(t.Start) {
		end = t.Start
	}

	return TimeWindow{Start: start, End: end}
}

func (t TimeWindowDefinition) advance(value time.Time, units int) time.Time {
	switch t.Cadence {
	case Hourly:
		return value.Add(time.Duration(units) * time.Hour)
	case Monthly:
		return value.AddDate(0, units, 0)
	default:
		return value.AddDate(0, 0, units)
	}
}
