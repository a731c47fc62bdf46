package bindconv

import (
	"encoding"
	"net/url"
	"os"
	"reflect"
	"regexp"
	"time"
)

// Editor is the legacy text-to-value mechanism kept alongside the registry:
// a single-type parser that turns text into one exact target type. Editors
// predate the converter chain and survive for the conversions users register
// through the session's editor initializer.
type Editor interface {
	FromText(text string) (any, error)
}

// EditorFunc adapts a plain function to the Editor interface.
type EditorFunc func(text string) (any, error)

func (f EditorFunc) FromText(text string) (any, error) {
	return f(text)
}

// EditorRegistry holds the custom editors of a single conversion session.
// It is populated exactly once, by the initializer callback passed to New,
// and must not be mutated afterwards; the session performs no locking around
// it.
type EditorRegistry struct {
	custom map[reflect.Type]Editor
}

func newEditorRegistry() *EditorRegistry {
	return &EditorRegistry{custom: make(map[reflect.Type]Editor)}
}

// Register makes ed the editor for targets of exactly type t. Editors never
// match subtypes or implementations; lookup is by type identity.
func (r *EditorRegistry) Register(t reflect.Type, ed Editor) {
	r.custom[t] = ed
}

// RegisterEditor registers ed for the type T:
//
//	bindconv.RegisterEditor[LogLevel](r, bindconv.EditorFunc(parseLogLevel))
func RegisterEditor[T any](r *EditorRegistry, ed Editor) {
	r.Register(reflect.TypeOf((*T)(nil)).Elem(), ed)
}

// find returns the editor for targets of type t, or nil when the type is
// outside editor territory, has no editor, or its editor is excluded.
// Lookup order is fixed: built-in default editor, then custom editor, then
// the TextUnmarshaler convention. The convention step is skipped for the
// plain string type so string targets never round-trip through an editor.
func (r *EditorRegistry) find(t reflect.Type) Editor {
	if t == nil || !editableType(t) {
		return nil
	}
	ed := defaultEditors[t]
	if ed == nil {
		ed = r.custom[t]
	}
	if ed == nil && t != stringType {
		ed = conventionEditor(t)
	}
	if ed == nil {
		return nil
	}
	if _, excluded := excludedEditors[reflect.TypeOf(ed)]; excluded {
		return nil
	}
	return ed
}

// editableType reports whether t may be served by an editor at all. The
// universal any type and all collection and map types are carved out for the
// richer converter registry, which handles elements and entries properly.
func editableType(t reflect.Type) bool {
	if t.Kind() == reflect.Interface && t.NumMethod() == 0 {
		return false
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return false
	}
	return true
}

// defaultEditors are always available without registration and take
// precedence over custom editors for the same type.
var defaultEditors = map[reflect.Type]Editor{
	reflect.TypeOf((*url.URL)(nil)).Elem():        urlEditor{},
	reflect.TypeOf((**url.URL)(nil)).Elem():       urlEditor{ptr: true},
	reflect.TypeOf((**regexp.Regexp)(nil)).Elem(): regexpEditor{},
	reflect.TypeOf((**time.Location)(nil)).Elem(): locationEditor{},
	reflect.TypeOf((*time.Time)(nil)).Elem():      timeEditor{},
	reflect.TypeOf((**os.File)(nil)).Elem():       FileEditor{},
}

// excludedEditors lists editor implementations the lookup refuses to serve
// even when registered. Keyed by the editor's own type so a registration
// under any target type is caught.
var excludedEditors = map[reflect.Type]struct{}{
	reflect.TypeOf((*FileEditor)(nil)).Elem(): {},
}

type urlEditor struct {
	ptr bool
}

func (e urlEditor) FromText(text string) (any, error) {
	u, err := url.Parse(text)
	if err != nil {
		return nil, err
	}
	if e.ptr {
		return u, nil
	}
	return *u, nil
}

type regexpEditor struct{}

func (regexpEditor) FromText(text string) (any, error) {
	return regexp.Compile(text)
}

type locationEditor struct{}

func (locationEditor) FromText(text string) (any, error) {
	return time.LoadLocation(text)
}

type timeEditor struct{}

func (timeEditor) FromText(text string) (any, error) {
	return parseTime(text)
}

// FileEditor opens the named file for reading. It ships in the default
// editor set for completeness but sits on the exclusion list: binding should
// not resolve relative paths against the process working directory or hand
// out open file handles, so the chain never picks it.
type FileEditor struct{}

func (FileEditor) FromText(text string) (any, error) {
	return os.Open(text)
}

// conventionEditor synthesizes an editor for types implementing
// encoding.TextUnmarshaler directly or through their pointer type.
func conventionEditor(t reflect.Type) Editor {
	if t.Kind() == reflect.Pointer && t.Implements(textUnmarshalerType) {
		return unmarshalerEditor{alloc: t.Elem(), ptr: true}
	}
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return unmarshalerEditor{alloc: t}
	}
	return nil
}

// unmarshalerEditor allocates a fresh value per conversion and delegates to
// its UnmarshalText method.
type unmarshalerEditor struct {
	alloc reflect.Type
	ptr   bool
}

func (e unmarshalerEditor) FromText(text string) (any, error) {
	pv := reflect.New(e.alloc)
	if err := pv.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text)); err != nil {
		return nil, err
	}
	if e.ptr {
		return pv.Interface(), nil
	}
	return pv.Elem().Interface(), nil
}
