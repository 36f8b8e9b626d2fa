package typing

import "fmt"

// KindDetails is the warehouse-agnostic column type. The set of kinds is closed;
// dialects map these to and from their native data types.
type KindDetails struct {
	Kind string
}

var (
	Invalid = KindDetails{Kind: "invalid"}

	String      = KindDetails{Kind: "string"}
	Integer     = KindDetails{Kind: "int"}
	Float       = KindDetails{Kind: "float"}
	Boolean     = KindDetails{Kind: "bool"}
	Date        = KindDetails{Kind: "date"}
	Time        = KindDetails{Kind: "time"}
	TimestampTZ = KindDetails{Kind: "timestamp_tz"}
)

// KindFromString resolves a kind by its name, e.g. from a CLI schema argument.
func KindFromString(name string) (KindDetails, error) {
	for _, kd := range []KindDetails{String, Integer, Float, Boolean, Date, Time, TimestampTZ} {
		if kd.Kind == name {
			return kd, nil
		}
	}

	return Invalid, fmt.Errorf("unknown kind: %q", name)
}

// AssertType is a convenience wrapper around a type assertion that returns a descriptive error.
func AssertType[T any](val any) (T, error) {
	castedVal, ok := val.(T)
	if !ok {
		return castedVal, fmt.Errorf("expected type %T, got %T", castedVal, val)
	}

	return castedVal, nil
}
