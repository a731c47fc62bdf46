package bindconv

import "reflect"

// Bindable packages a bind target: the reified type of the value being bound
// together with the annotations attached to its binding site, typically
// parsed out of a struct tag.
type Bindable struct {
	Type        reflect.Type
	Annotations []any
}

// BindableOf builds a Bindable for the type T.
func BindableOf[T any](anns ...any) Bindable {
	return Bindable{Type: reflect.TypeOf((*T)(nil)).Elem(), Annotations: anns}
}

// Descriptor returns the conversion descriptor for the bind target.
func (b Bindable) Descriptor() Descriptor {
	return NewDescriptor(b.Type, b.Annotations...)
}
