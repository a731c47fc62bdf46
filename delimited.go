package bindconv

import (
	"fmt"
	"reflect"
	"strings"
)

// AddDelimitedStringConverters registers the pair of converters that split
// delimited text into collections and join collections back into delimited
// text. The separator defaults to a comma and is overridden per binding site
// with the Delimiter annotation; split elements are trimmed of surrounding
// whitespace before element conversion.
func AddDelimitedStringConverters(r *Registry) {
	r.add(splitRule{r: r})
	r.add(joinRule{r: r})
}

// delimiterFor picks the separator for a binding site.
func delimiterFor(d Descriptor) string {
	if a, ok := AnnotationOf[Delimiter](d); ok && a.Value != "" {
		return a.Value
	}
	return ","
}

// splitRule turns delimited text into a slice or array, converting each piece
// through the owning registry. It only claims targets whose element type the
// registry can produce from text, so chains holding a partially capable
// registry fall through to a later delegate instead of failing here.
type splitRule struct {
	r *Registry
}

func (c splitRule) matches(src, dst Descriptor) bool {
	if src.Kind() != reflect.String || !dst.IsCollection() {
		return false
	}
	return c.r.CanConvert(NewDescriptor(stringType), dst.Elem())
}

func (c splitRule) convert(v any, _, dst Descriptor) (any, error) {
	value := reflect.ValueOf(v).String()

	var parts []string
	if value != "" {
		parts = strings.Split(value, delimiterFor(dst))
	}

	out, err := makeCollection(dst, len(parts))
	if err != nil {
		return nil, err
	}
	for i, part := range parts {
		part = strings.TrimSpace(part)
		converted, err := c.r.Convert(part, NewDescriptor(stringType), dst.Elem())
		if err != nil {
			return nil, err
		}
		if converted != nil {
			ev, err := typedValue(converted, dst.Type().Elem())
			if err != nil {
				return nil, err
			}
			out.Index(i).Set(ev)
		}
	}
	return out.Interface(), nil
}

// joinRule renders a slice or array as delimited text, converting each
// element to a string through the owning registry.
type joinRule struct {
	r *Registry
}

func (c joinRule) matches(src, dst Descriptor) bool {
	if dst.Type() != stringType || !src.IsCollection() {
		return false
	}
	if src.Elem().Kind() == reflect.Interface {
		return true
	}
	return c.r.CanConvert(src.Elem(), NewDescriptor(stringType))
}

func (c joinRule) convert(v any, _, dst Descriptor) (any, error) {
	sv := reflect.ValueOf(v)
	parts := make([]string, sv.Len())
	for i := 0; i < sv.Len(); i++ {
		elem := sv.Index(i).Interface()
		converted, err := c.r.Convert(elem, DescriptorOf(elem), NewDescriptor(stringType))
		if err != nil {
			return nil, err
		}
		if converted != nil {
			text, ok := converted.(string)
			if !ok {
				return nil, fmt.Errorf("%w: got %T, want string", ErrTypeMismatch, converted)
			}
			parts[i] = text
		}
	}
	return strings.Join(parts, delimiterFor(dst)), nil
}
