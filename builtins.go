package bindconv

import (
	"encoding"
	"fmt"
	"net"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

var (
	stringType          = reflect.TypeOf((*string)(nil)).Elem()
	bytesType           = reflect.TypeOf((*[]byte)(nil)).Elem()
	durationType        = reflect.TypeOf((*time.Duration)(nil)).Elem()
	timeType            = reflect.TypeOf((*time.Time)(nil)).Elem()
	uuidType            = reflect.TypeOf((*uuid.UUID)(nil)).Elem()
	languageTagType     = reflect.TypeOf((*language.Tag)(nil)).Elem()
	ipType              = reflect.TypeOf((*net.IP)(nil)).Elem()
	stringerType        = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// AddDefaultConverters registers the general-purpose converter set on r:
// text-to-scalar coercion, numeric widening and narrowing, element-wise
// collection and map conversion, pointer wrapping and unwrapping,
// stringification, and the exact pairs for common value types such as
// time.Duration, time.Time, uuid.UUID, language.Tag and net.IP.
func AddDefaultConverters(r *Registry) {
	r.add(scalarRule{})
	r.add(durationNumberRule{})
	r.add(numericRule{})
	r.add(collectionRule{r: r})
	r.add(mapRule{r: r})
	r.add(ptrTargetRule{r: r})
	r.add(ptrSourceRule{r: r})
	r.add(stringifyRule{})

	r.Register(stringType, durationType, convertDuration)
	r.Register(stringType, timeType, convertTime)
	r.Register(stringType, uuidType, convertUUID)
	r.Register(stringType, languageTagType, convertLanguageTag)
	r.Register(stringType, ipType, convertIP)
	r.Register(stringType, bytesType, func(v any, _ Descriptor) (any, error) {
		return []byte(v.(string)), nil
	})
	r.Register(bytesType, stringType, func(v any, _ Descriptor) (any, error) {
		return string(v.([]byte)), nil
	})
}

// scalarRule coerces string-kinded sources into scalar targets. Booleans are
// parsed leniently so form-style values like "on" and "yes" bind cleanly.
type scalarRule struct{}

func (scalarRule) matches(src, dst Descriptor) bool {
	if src.Kind() != reflect.String {
		return false
	}
	switch dst.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func (scalarRule) convert(v any, _, dst Descriptor) (any, error) {
	value := reflect.ValueOf(v).String()
	out := reflect.New(dst.Type()).Elem()

	switch dst.Kind() {
	case reflect.String:
		out.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// time.Duration is an int64 but accepts duration text, not raw
		// nanosecond counts.
		if dst.Type() == durationType {
			return convertDuration(value, dst)
		}
		n, err := strconv.ParseInt(value, 10, dst.Type().Bits())
		if err != nil {
			return nil, fmt.Errorf("invalid int value %q", value)
		}
		out.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, dst.Type().Bits())
		if err != nil {
			return nil, fmt.Errorf("invalid uint value %q", value)
		}
		out.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, dst.Type().Bits())
		if err != nil {
			return nil, fmt.Errorf("invalid float value %q", value)
		}
		out.SetFloat(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			// Be lenient with boolean values
			switch strings.ToLower(value) {
			case "on", "yes", "1":
				b = true
			case "off", "no", "0", "":
				b = false
			default:
				return nil, fmt.Errorf("invalid bool value %q", value)
			}
		}
		out.SetBool(b)

	default:
		return nil, fmt.Errorf("unsupported type %s", dst.Kind())
	}

	return out.Interface(), nil
}

// durationNumberRule scales numeric sources into time.Duration using the
// binding site's unit, so a numeric 1500 and the text "1500" produce the same
// duration. Duration sources are already in nanoseconds and pass through
// untouched.
type durationNumberRule struct{}

func (durationNumberRule) matches(src, dst Descriptor) bool {
	return dst.Type() == durationType && src.Type() != durationType && isNumericKind(src.Kind())
}

func (durationNumberRule) convert(v any, _, dst Descriptor) (any, error) {
	unit := time.Millisecond
	if u, ok := AnnotationOf[DurationUnit](dst); ok && u.Unit > 0 {
		unit = u.Unit
	}
	value := reflect.ValueOf(v)
	switch value.Kind() {
	case reflect.Float32, reflect.Float64:
		return time.Duration(value.Float() * float64(unit)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return time.Duration(value.Uint()) * unit, nil
	default:
		return time.Duration(value.Int()) * unit, nil
	}
}

// numericRule converts between numeric kinds using Go conversion semantics,
// so narrowing truncates the way a Go type conversion would.
type numericRule struct{}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func (numericRule) matches(src, dst Descriptor) bool {
	return isNumericKind(src.Kind()) && isNumericKind(dst.Kind())
}

func (numericRule) convert(v any, _, dst Descriptor) (any, error) {
	return reflect.ValueOf(v).Convert(dst.Type()).Interface(), nil
}

// collectionRule converts slices and arrays element by element through the
// owning registry. Interface-typed source elements are matched optimistically
// and resolved against their runtime types during conversion, which is what
// lets a decoded []any tree land in a typed slice.
type collectionRule struct {
	r *Registry
}

func (c collectionRule) matches(src, dst Descriptor) bool {
	if !src.IsCollection() || !dst.IsCollection() {
		return false
	}
	if src.Elem().Kind() == reflect.Interface {
		return true
	}
	return c.r.CanConvert(src.Elem(), dst.Elem())
}

func (c collectionRule) convert(v any, _, dst Descriptor) (any, error) {
	sv := reflect.ValueOf(v)
	out, err := makeCollection(dst, sv.Len())
	if err != nil {
		return nil, err
	}
	for i := 0; i < sv.Len(); i++ {
		elem := sv.Index(i).Interface()
		converted, err := c.r.Convert(elem, DescriptorOf(elem), dst.Elem())
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

// makeCollection allocates a settable slice or array value for dst with room
// for n elements.
func makeCollection(dst Descriptor, n int) (reflect.Value, error) {
	if dst.Kind() == reflect.Array {
		if dst.Type().Len() != n {
			return reflect.Value{}, fmt.Errorf("cannot fit %d elements into %s", n, dst)
		}
		return reflect.New(dst.Type()).Elem(), nil
	}
	return reflect.MakeSlice(dst.Type(), n, n), nil
}

// typedValue wraps v for assignment to a slot of type t, verifying
// assignability so a converter or editor that produced the wrong type
// surfaces as ErrTypeMismatch instead of a reflect panic.
func typedValue(v any, t reflect.Type) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(t) {
		return reflect.Value{}, fmt.Errorf("%w: got %T, want %s", ErrTypeMismatch, v, t)
	}
	return rv, nil
}

// mapRule converts maps entry by entry, coercing keys and values through the
// owning registry.
type mapRule struct {
	r *Registry
}

func (c mapRule) matches(src, dst Descriptor) bool {
	if !src.IsMap() || !dst.IsMap() {
		return false
	}
	if src.Key().Kind() != reflect.Interface && !c.r.CanConvert(src.Key(), dst.Key()) {
		return false
	}
	if src.Elem().Kind() == reflect.Interface {
		return true
	}
	return c.r.CanConvert(src.Elem(), dst.Elem())
}

func (c mapRule) convert(v any, _, dst Descriptor) (any, error) {
	sv := reflect.ValueOf(v)
	out := reflect.MakeMapWithSize(dst.Type(), sv.Len())
	iter := sv.MapRange()
	for iter.Next() {
		key := iter.Key().Interface()
		ck, err := c.r.Convert(key, DescriptorOf(key), dst.Key())
		if err != nil {
			return nil, err
		}
		if ck == nil {
			continue
		}
		kv, err := typedValue(ck, dst.Type().Key())
		if err != nil {
			return nil, err
		}
		value := iter.Value().Interface()
		cv, err := c.r.Convert(value, DescriptorOf(value), dst.Elem())
		if err != nil {
			return nil, err
		}
		ev := reflect.Zero(dst.Type().Elem())
		if cv != nil {
			ev, err = typedValue(cv, dst.Type().Elem())
			if err != nil {
				return nil, err
			}
		}
		out.SetMapIndex(kv, ev)
	}
	return out.Interface(), nil
}

// ptrTargetRule converts to the pointee type and returns its address, so a
// *int target accepts everything an int target would.
type ptrTargetRule struct {
	r *Registry
}

func (c ptrTargetRule) matches(src, dst Descriptor) bool {
	return dst.Kind() == reflect.Pointer && c.r.CanConvert(src, dst.Elem())
}

func (c ptrTargetRule) convert(v any, src, dst Descriptor) (any, error) {
	converted, err := c.r.Convert(v, src, dst.Elem())
	if err != nil {
		return nil, err
	}
	out := reflect.New(dst.Type().Elem())
	if converted != nil {
		ev, err := typedValue(converted, dst.Type().Elem())
		if err != nil {
			return nil, err
		}
		out.Elem().Set(ev)
	}
	return out.Interface(), nil
}

// ptrSourceRule dereferences pointer sources. A nil source pointer converts
// to nil rather than an error so optional values stay optional.
type ptrSourceRule struct {
	r *Registry
}

func (c ptrSourceRule) matches(src, dst Descriptor) bool {
	return src.Kind() == reflect.Pointer && c.r.CanConvert(src.Elem(), dst)
}

func (c ptrSourceRule) convert(v any, _, dst Descriptor) (any, error) {
	pv := reflect.ValueOf(v)
	if pv.IsNil() {
		return nil, nil
	}
	elem := pv.Elem().Interface()
	return c.r.Convert(elem, DescriptorOf(elem), dst)
}

// stringifyRule renders fmt.Stringer implementations and scalar values as
// plain strings. It deliberately skips non-Stringer collections so the
// delimited join converter owns those.
type stringifyRule struct{}

func (stringifyRule) matches(src, dst Descriptor) bool {
	if dst.Type() != stringType {
		return false
	}
	if src.Type().Implements(stringerType) {
		return true
	}
	switch src.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func (stringifyRule) convert(v any, _, _ Descriptor) (any, error) {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String(), nil
	}
	return fmt.Sprintf("%v", v), nil
}

func convertTime(v any, _ Descriptor) (any, error) {
	return parseTime(v.(string))
}

// timeLayouts are tried in order; RFC 3339 first since that is what config
// files and APIs overwhelmingly carry.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time value %q", value)
}

func convertUUID(v any, _ Descriptor) (any, error) {
	id, err := uuid.Parse(v.(string))
	if err != nil {
		return nil, fmt.Errorf("invalid UUID value %q", v)
	}
	return id, nil
}

func convertLanguageTag(v any, _ Descriptor) (any, error) {
	tag, err := language.Parse(v.(string))
	if err != nil {
		return nil, fmt.Errorf("invalid language tag %q", v)
	}
	return tag, nil
}

func convertIP(v any, _ Descriptor) (any, error) {
	ip := net.ParseIP(strings.TrimSpace(v.(string)))
	if ip == nil {
		return nil, fmt.Errorf("invalid IP address %q", v)
	}
	return ip, nil
}
