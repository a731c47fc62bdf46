package bindconv

import (
	"fmt"
	"reflect"
)

// editorRule bridges the editor registry into a conversion chain. It claims
// exactly the conversions editors can do, from text to a single exact target
// type, and only when a usable editor exists for that type.
type editorRule struct {
	editors *EditorRegistry
}

func (c editorRule) matches(src, dst Descriptor) bool {
	if src.Kind() != reflect.String {
		return false
	}
	return c.editors.find(dst.Type()) != nil
}

func (c editorRule) convert(v any, _, dst Descriptor) (any, error) {
	ed := c.editors.find(dst.Type())
	if ed == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoConverter, dst)
	}
	out, err := ed.FromText(reflect.ValueOf(v).String())
	if err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", dst, err)
	}
	return out, nil
}

// newEditorService assembles the first delegate of a session's chain: a
// registry holding the editor-backed rule plus the delimited-string
// converters, so legacy editors and the string splitting and joining
// utilities present themselves as one conversion service. The initializer,
// when non-nil, runs once against the fresh editor registry before the
// service is used.
func newEditorService(init func(*EditorRegistry)) *Registry {
	editors := newEditorRegistry()
	if init != nil {
		init(editors)
	}
	r := NewRegistry()
	r.add(editorRule{editors: editors})
	AddDelimitedStringConverters(r)
	return r
}
