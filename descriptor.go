package bindconv

import (
	"reflect"
	"slices"
)

// Descriptor identifies one endpoint of a conversion: a reified runtime type
// together with the annotations attached to the binding site (struct tag
// options, caller-supplied hints). The zero Descriptor carries no type at all
// and stands in for an untyped nil value.
//
// Descriptors are immutable once constructed and safe to copy and share.
type Descriptor struct {
	rtype reflect.Type
	anns  []any
}

// NewDescriptor builds a descriptor for t carrying the given annotations.
// A nil t produces the nil-value descriptor.
func NewDescriptor(t reflect.Type, anns ...any) Descriptor {
	return Descriptor{rtype: t, anns: slices.Clone(anns)}
}

// DescriptorOf builds a descriptor from the runtime type of v. An untyped nil
// yields the nil-value descriptor.
func DescriptorOf(v any) Descriptor {
	if v == nil {
		return Descriptor{}
	}
	return Descriptor{rtype: reflect.TypeOf(v)}
}

// DescriptorFor builds a descriptor for the type T carrying the given
// annotations. Unlike DescriptorOf it preserves interface types:
//
//	bindconv.DescriptorFor[[]int]()
//	bindconv.DescriptorFor[time.Duration](bindconv.DurationUnit{Unit: time.Second})
func DescriptorFor[T any](anns ...any) Descriptor {
	return NewDescriptor(reflect.TypeOf((*T)(nil)).Elem(), anns...)
}

// Type returns the described runtime type, nil for the nil-value descriptor.
func (d Descriptor) Type() reflect.Type {
	return d.rtype
}

// Kind returns the described type's kind, reflect.Invalid for the nil-value
// descriptor.
func (d Descriptor) Kind() reflect.Kind {
	if d.rtype == nil {
		return reflect.Invalid
	}
	return d.rtype.Kind()
}

// IsNil reports whether the descriptor describes an untyped nil value.
func (d Descriptor) IsNil() bool {
	return d.rtype == nil
}

// IsCollection reports whether the described type is a slice or an array.
func (d Descriptor) IsCollection() bool {
	k := d.Kind()
	return k == reflect.Slice || k == reflect.Array
}

// IsMap reports whether the described type is a map.
func (d Descriptor) IsMap() bool {
	return d.Kind() == reflect.Map
}

// Elem returns the descriptor of the element type for slices, arrays, maps
// and pointers, carrying over the annotations so element conversions see the
// hints attached to the enclosing binding site. Other kinds yield the
// nil-value descriptor.
func (d Descriptor) Elem() Descriptor {
	switch d.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Pointer:
		return Descriptor{rtype: d.rtype.Elem(), anns: d.anns}
	}
	return Descriptor{}
}

// Key returns the descriptor of the key type for maps, carrying over the
// annotations. Other kinds yield the nil-value descriptor.
func (d Descriptor) Key() Descriptor {
	if d.Kind() == reflect.Map {
		return Descriptor{rtype: d.rtype.Key(), anns: d.anns}
	}
	return Descriptor{}
}

// Annotations returns a copy of the annotations attached to the descriptor.
func (d Descriptor) Annotations() []any {
	return slices.Clone(d.anns)
}

// String renders the described type, "<nil>" for the nil-value descriptor.
func (d Descriptor) String() string {
	if d.rtype == nil {
		return "<nil>"
	}
	return d.rtype.String()
}

// AnnotationOf returns the first annotation of type T attached to d.
func AnnotationOf[T any](d Descriptor) (T, bool) {
	for _, a := range d.anns {
		if t, ok := a.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}
