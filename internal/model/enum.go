package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownName is returned when an enum name cannot be resolved
var ErrUnknownName = errors.New("unknown enum name")

// enumTable is a bidirectional name<->value lookup for a closed set of tags
type enumTable[T ~int] struct {
	kind   string
	names  map[T]string
	values map[string]T
}

func newEnumTable[T ~int](kind string, names map[T]string) enumTable[T] {
	values := make(map[string]T, len(names))
	for v, n := range names {
		values[n] = v
	}
	return enumTable[T]{kind: kind, names: names, values: values}
}

func (e enumTable[T]) name(v T) string {
	if n, ok := e.names[v]; ok {
		return n
	}
	return fmt.Sprintf("%s(%d)", e.kind, int(v))
}

func (e enumTable[T]) parse(name string) (T, error) {
	if v, ok := e.values[name]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("%w: %s %q (valid: %s)", ErrUnknownName, e.kind, name, strings.Join(e.allNames(), ", "))
}

// allNames returns the names ordered by value
func (e enumTable[T]) allNames() []string {
	vals := make([]T, 0, len(e.names))
	for v := range e.names {
		vals = append(vals, v)
	}
	sort.Slice(vals, func(i, j int) bool { return vals[i] < vals[j] })

	names := make([]string, 0, len(vals))
	for _, v := range vals {
		names = append(names, e.names[v])
	}
	return names
}
