package binder

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/dmitrymomot/bindconv"
)

// Option configures a single Bind call.
type Option func(*options)

type options struct {
	tag       string
	converter bindconv.Converter
	editors   func(*bindconv.EditorRegistry)
}

func newOptions(opts []Option) options {
	o := options{tag: "bind"}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithTag overrides the struct tag consulted for configuration keys. The
// default is "bind".
func WithTag(name string) Option {
	return func(o *options) {
		if name != "" {
			o.tag = name
		}
	}
}

// WithConverter sets the primary conversion service for the bind. Without it
// the bind runs against bindconv.Shared().
func WithConverter(c bindconv.Converter) Option {
	return func(o *options) {
		o.converter = c
	}
}

// WithEditors installs custom editors for the duration of the bind:
//
//	binder.WithEditors(func(r *bindconv.EditorRegistry) {
//		bindconv.RegisterEditor[LogLevel](r, bindconv.EditorFunc(parseLogLevel))
//	})
func WithEditors(init func(*bindconv.EditorRegistry)) Option {
	return func(o *options) {
		o.editors = init
	}
}

// Bind binds a decoded configuration tree onto the struct pointed to by dst.
//
// Keys are matched against the `bind` struct tag, falling back to the
// lowercased field name. Tag options tune individual fields:
//   - `bind:"name"` - binds the key "name"
//   - `bind:"-"` - skips the field
//   - `bind:"hosts,delimiter=;"` - splits delimited text on ";"
//   - `bind:"ttl,unit=s"` - reads bare numbers as seconds
//
// Leaf values are converted through a fresh conversion session shared by the
// whole bind, so every field sees the same custom editors and the same
// primary converter. Nested mappings descend into struct and pointer-to-
// struct fields; missing and null keys leave fields at their zero values. A
// non-empty nested mapping none of whose keys match a bindable field fails
// with ErrInvalidValue rather than binding nothing.
func Bind(src map[string]any, dst any, opts ...Option) error {
	o := newOptions(opts)

	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", ErrInvalidTarget)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", ErrInvalidTarget)
	}

	s := bindconv.New(o.converter, o.editors)
	_, err := bindStruct(s, o.tag, src, rv, "")
	return err
}

// bindStruct binds values onto the fields of rv, recursing into nested
// mappings. path accumulates the dotted key path for error reporting. The
// returned count says how many keys of values matched a bindable field, so
// callers can tell a mapping that bound nothing from one that was empty.
func bindStruct(s *bindconv.Session, tagName string, values map[string]any, rv reflect.Value, path string) (int, error) {
	rt := rv.Type()
	consumed := 0

	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		fieldType := rt.Field(i)

		// Skip unexported fields
		if !field.CanSet() {
			continue
		}

		name, anns, skip, err := parseFieldTag(fieldType, tagName)
		if err != nil {
			return 0, fmt.Errorf("%w: field %s: %v", ErrInvalidTag, joinPath(path, strings.ToLower(fieldType.Name)), err)
		}
		if skip {
			continue
		}

		value, exists := values[name]
		if !exists {
			continue
		}
		consumed++
		if value == nil {
			// Null values leave the zero value in place
			continue
		}

		fieldPath := joinPath(path, name)
		target := bindconv.Bindable{Type: fieldType.Type, Annotations: anns}

		if s.CanConvert(value, target.Descriptor()) {
			converted, err := s.Convert(value, target.Descriptor())
			if err != nil {
				return 0, fmt.Errorf("%w: field %s: %v", ErrInvalidValue, fieldPath, err)
			}
			if err := setField(field, converted); err != nil {
				return 0, fmt.Errorf("%w: field %s: %v", ErrInvalidValue, fieldPath, err)
			}
			continue
		}

		child, ok := value.(map[string]any)
		if !ok {
			return 0, fmt.Errorf("%w: field %s: cannot bind %T to %s", ErrInvalidValue, fieldPath, value, fieldType.Type)
		}

		switch {
		case fieldType.Type.Kind() == reflect.Struct:
			if err := bindChild(s, tagName, child, field, fieldPath, fieldType.Type); err != nil {
				return 0, err
			}
		case fieldType.Type.Kind() == reflect.Pointer && fieldType.Type.Elem().Kind() == reflect.Struct:
			if field.IsNil() {
				field.Set(reflect.New(fieldType.Type.Elem()))
			}
			if err := bindChild(s, tagName, child, field.Elem(), fieldPath, fieldType.Type); err != nil {
				return 0, err
			}
		default:
			return 0, fmt.Errorf("%w: field %s: cannot bind %T to %s", ErrInvalidValue, fieldPath, value, fieldType.Type)
		}
	}

	return consumed, nil
}

// bindChild recurses into a nested mapping and rejects one that bound
// nothing, so a mistyped key or a target without settable fields surfaces
// instead of silently leaving the zero value.
func bindChild(s *bindconv.Session, tagName string, child map[string]any, rv reflect.Value, path string, ft reflect.Type) error {
	n, err := bindStruct(s, tagName, child, rv, path)
	if err != nil {
		return err
	}
	if n == 0 && len(child) > 0 {
		return fmt.Errorf("%w: field %s: no bindable keys for %s", ErrInvalidValue, path, ft)
	}
	return nil
}

// parseFieldTag reads the binding tag and returns the configuration key, the
// annotations built from tag options, and whether to skip the field.
func parseFieldTag(field reflect.StructField, tagName string) (string, []any, bool, error) {
	tag := field.Tag.Get(tagName)
	if tag == "" {
		// No tag, use field name in lowercase
		return strings.ToLower(field.Name), nil, false, nil
	}
	if tag == "-" {
		// Skip this field
		return "", nil, true, nil
	}

	parts := strings.Split(tag, ",")
	name := parts[0]
	if name == "" {
		name = strings.ToLower(field.Name)
	}

	var anns []any
	for _, opt := range parts[1:] {
		key, optValue, found := strings.Cut(opt, "=")
		switch {
		case found && key == "delimiter":
			anns = append(anns, bindconv.Delimiter{Value: optValue})
		case found && key == "unit":
			unit, err := parseUnit(optValue)
			if err != nil {
				return "", nil, false, err
			}
			anns = append(anns, bindconv.DurationUnit{Unit: unit})
		case opt == "omitempty":
			// Accepted for symmetry with encoding tags, no effect here
		default:
			return "", nil, false, fmt.Errorf("unknown tag option %q", opt)
		}
	}

	return name, anns, false, nil
}

// parseUnit accepts either a bare unit suffix ("s", "ms") or a full duration
// ("1m") as the unit for numeric duration text.
func parseUnit(value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		d, err = time.ParseDuration("1" + value)
	}
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid duration unit %q", value)
	}
	return d, nil
}

// setField assigns the converted value, verifying assignability so an editor
// returning the wrong type surfaces as an error instead of a panic.
func setField(field reflect.Value, v any) error {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(field.Type()) {
		return fmt.Errorf("cannot assign %T to %s", v, field.Type())
	}
	field.Set(rv)
	return nil
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
