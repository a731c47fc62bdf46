package bindconv

import (
	"fmt"
	"reflect"
)

// ConvertFunc performs a single registered conversion. The destination
// descriptor carries the reified target type and the annotations attached to
// the binding site.
type ConvertFunc func(v any, dst Descriptor) (any, error)

// conversion is one conditional rule held by a Registry. Rules are consulted
// in registration order after the exact-pair table.
type conversion interface {
	matches(src, dst Descriptor) bool
	convert(v any, src, dst Descriptor) (any, error)
}

type typePair struct {
	from reflect.Type
	to   reflect.Type
}

// Registry is a general-purpose conversion service keyed by runtime types.
// Lookup order is fixed: exact source-to-target pairs first, then conditional
// rules in registration order, and finally a direct pass-through when the
// source type is assignable to the target. Anything else fails with
// ErrNoConverter.
//
// A Registry is safe for concurrent use only after registration is finished;
// Register must not race with Convert.
type Registry struct {
	exact map[typePair]ConvertFunc
	rules []conversion
}

// NewRegistry returns an empty registry with no conversions registered.
func NewRegistry() *Registry {
	return &Registry{exact: make(map[typePair]ConvertFunc)}
}

// NewDefaultRegistry returns a fresh registry loaded with the default
// converter set and the delimited-string converters. It is the recipe the
// shared instance is built from; use it when a bind needs defaults plus
// local additions without touching process-wide state.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	AddDefaultConverters(r)
	AddDelimitedStringConverters(r)
	return r
}

// Register adds an exact source-to-target conversion, replacing any previous
// registration for the same pair.
func (r *Registry) Register(from, to reflect.Type, fn ConvertFunc) {
	r.exact[typePair{from: from, to: to}] = fn
}

func (r *Registry) add(c conversion) {
	r.rules = append(r.rules, c)
}

func (r *Registry) CanConvert(src, dst Descriptor) bool {
	if src.IsNil() {
		return true
	}
	if dst.IsNil() {
		return false
	}
	if _, ok := r.exact[typePair{from: src.rtype, to: dst.rtype}]; ok {
		return true
	}
	for _, c := range r.rules {
		if c.matches(src, dst) {
			return true
		}
	}
	return src.rtype.AssignableTo(dst.rtype)
}

func (r *Registry) Convert(v any, src, dst Descriptor) (any, error) {
	if v == nil || src.IsNil() {
		return nil, nil
	}
	if dst.IsNil() {
		return nil, fmt.Errorf("%w: %s to %s", ErrNoConverter, src, dst)
	}
	if fn, ok := r.exact[typePair{from: src.rtype, to: dst.rtype}]; ok {
		return fn(v, dst)
	}
	for _, c := range r.rules {
		if c.matches(src, dst) {
			return c.convert(v, src, dst)
		}
	}
	if src.rtype.AssignableTo(dst.rtype) {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %s to %s", ErrNoConverter, src, dst)
}
