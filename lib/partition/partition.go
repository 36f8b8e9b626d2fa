// Package partition models partition definitions as a closed set of variants
// (time window, static, dynamic, multi-dimensional) and resolves partition keys
// into the dimensions that address a table slice.
package partition

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

type DimensionKind string

const (
	TimeWindowKind  DimensionKind = "time_window"
	CategoricalKind DimensionKind = "categorical"
)

// Dimension is one resolved axis of partitioning: the SQL expression it filters
// on plus either a time window or a categorical key set. Dimensions combine
// conjunctively; a row belongs to the addressed slice only if it satisfies
// every dimension.
type Dimension struct {
	Name   string
	Expr   string
	Kind   DimensionKind
	Window TimeWindow
	Keys   []string
}

// Key is a partition key: a scalar string for single-dimension partitions or a
// mapping from dimension name to scalar for multi-dimensional ones.
type Key struct {
	value       string
	byDimension map[string]string
}

func NewKey(value string) Key {
	return Key{value: value}
}

func NewMultiKey(byDimension map[string]string) Key {
	return Key{byDimension: byDimension}
}

func (k Key) IsMulti() bool {
	return k.byDimension != nil
}

// ByDimension returns the per-dimension scalars of a multi key.
func (k Key) ByDimension() map[string]string {
	return k.byDimension
}

func (k Key) String() string {
	if !k.IsMulti() {
		return k.value
	}

	names := make([]string, 0, len(k.byDimension))
	for name := range k.byDimension {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = k.byDimension[name]
	}
	return strings.Join(parts, "|")
}

// Definition is the closed set of partition definition variants:
// [TimeWindowDefinition], [StaticDefinition], [DynamicDefinition], [MultiDefinition].
type Definition interface {
	definitionKind()
}

// StaticDefinition partitions by a fixed categorical key set.
type StaticDefinition struct {
	Keys []string
}

func (s StaticDefinition) definitionKind() {}

// DynamicDefinition partitions by a categorical key set registered at runtime.
type DynamicDefinition struct {
	Name string
	keys []string
}

func NewDynamicDefinition(name string, keys ...string) *DynamicDefinition {
	return &DynamicDefinition{Name: name, keys: keys}
}

func (d *DynamicDefinition) definitionKind() {}

func (d *DynamicDefinition) AddKeys(keys ...string) {
	for _, key := range keys {
		if !slices.Contains(d.keys, key) {
			d.keys = append(d.keys, key)
		}
	}
}

func (d *DynamicDefinition) Keys() []string {
	return slices.Clone(d.keys)
}

// MultiDefinition combines named sub-definitions; the cross product of their
// key sets forms the partition space.
type MultiDefinition struct {
	names          []string
	subDefinitions map[string]Definition
}

func NewMultiDefinition(byName map[string]Definition) (MultiDefinition, error) {
	names := make([]string, 0, len(byName))
	for name, subDefinition := range byName {
		if _, ok := subDefinition.(MultiDefinition); ok {
			return MultiDefinition{}, fmt.Errorf("dimension %q: multi definitions cannot be nested", name)
		}
		names = append(names, name)
	}

	if len(names) == 0 {
		return MultiDefinition{}, fmt.Errorf("multi definition requires at least one dimension")
	}

	sort.Strings(names)
	return MultiDefinition{names: names, subDefinitions: byName}, nil
}

func (m MultiDefinition) definitionKind() {}

func (m MultiDefinition) DimensionNames() []string {
	return slices.Clone(m.names)
}

// Expr names the SQL expression each partition dimension filters on.
type Expr struct {
	single      string
	byDimension map[string]string
}

func NewExpr(expression string) Expr {
	return Expr{single: expression}
}

func NewMultiExpr(byDimension map[string]string) Expr {
	return Expr{byDimension: byDimension}
}

// DimensionsForKey resolves a partition key against a definition into the
// ordered dimensions addressing the corresponding table slice. Multi keys
// must carry an entry (and an expression) for every named sub-definition.
func DimensionsForKey(definition Definition, expr Expr, key Key) ([]Dimension, error) {
	switch castedDefinition := definition.(type) {
	case MultiDefinition:
		byDimension := key.ByDimension()
		if byDimension == nil {
			return nil, fmt.Errorf("multi definition requires a multi partition key, got %q", key)
		}

		var dimensions []Dimension
		for _, name := range castedDefinition.names {
			subKey, ok := byDimension[name]
			if !ok {
				return nil, fmt.Errorf("partition key is missing dimension %q", name)
			}

			subExpr, ok := expr.byDimension[name]
			if !ok {
				return nil, fmt.Errorf("no partition expression for dimension %q", name)
			}

			dimension, err := scalarDimension(castedDefinition.subDefinitions[name], name, subExpr, subKey)
			if err != nil {
				return nil, err
			}

			dimensions = append(dimensions, dimension)
		}

		return dimensions, nil
	default:
		if key.IsMulti() {
			return nil, fmt.Errorf("multi partition key %q requires a multi definition", key)
		}

		if expr.single == "" {
			return nil, fmt.Errorf("no partition expression provided")
		}

		dimension, err := scalarDimension(definition, expr.single, expr.single, key.value)
		if err != nil {
			return nil, err
		}

		return []Dimension{dimension}, nil
	}
}

func scalarDimension(definition Definition, name, expr, key string) (Dimension, error) {
	switch castedDefinition := definition.(type) {
	case TimeWindowDefinition:
		window, err := castedDefinition.WindowForKey(key)
		if err != nil {
			return Dimension{}, fmt.Errorf("dimension %q: %w", name, err)
		}

		return Dimension{Name: name, Expr: expr, Kind: TimeWindowKind, Window: window}, nil
	case StaticDefinition:
		if !slices.Contains(castedDefinition.Keys, key) {
			return Dimension{}, fmt.Errorf("dimension %q: partition key %q is not in the partition set", name, key)
		}

		return Dimension{Name: name, Expr: expr, Kind: CategoricalKind, Keys: []string{key}}, nil
	case *DynamicDefinition:
		if !slices.Contains(castedDefinition.keys, key) {
			return Dimension{}, fmt.Errorf("dimension %q: partition key %q has not been registered", name, key)
		}

		return Dimension{Name: name, Expr: expr, Kind: CategoricalKind, Keys: []string{key}}, nil
	default:
		return Dimension{}, fmt.Errorf("dimension %q: unsupported definition type %T", name, definition)
	}
}
