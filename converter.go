package bindconv

// Converter converts values between runtime types. CanConvert reports whether
// a source-to-target conversion is supported without performing it; Convert
// performs the conversion and returns the converted value.
//
// Implementations must treat the nil-value source descriptor as convertible
// to anything and convert it to nil.
type Converter interface {
	CanConvert(src, dst Descriptor) bool
	Convert(v any, src, dst Descriptor) (any, error)
}
