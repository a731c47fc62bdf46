package bindconv

import "fmt"

// Session is the conversion facade for one top-level bind operation. It owns
// a fixed chain of strategies: the legacy editor service built from the
// initializer, the primary converter, and the shared registry as the final
// fallback when the primary is not already the shared instance. Sessions are
// cheap; create one per bind rather than sharing a long-lived one, since the
// editor registry behind the chain is not synchronized.
type Session struct {
	chain composite
}

// New creates a conversion session around primary. A nil primary selects the
// shared registry, which also keeps the chain to two delegates. The editors
// initializer, when non-nil, runs once to populate the session's custom
// editor registry:
//
//	s := bindconv.New(nil, func(r *bindconv.EditorRegistry) {
//		bindconv.RegisterEditor[Level](r, bindconv.EditorFunc(parseLevel))
//	})
func New(primary Converter, editors func(*EditorRegistry)) *Session {
	if primary == nil {
		primary = Shared()
	}
	return &Session{chain: newComposite(newEditorService(editors), primary)}
}

// CanConvert reports whether any strategy in the chain converts value to the
// target. A nil value is convertible to anything.
func (s *Session) CanConvert(value any, target Descriptor) bool {
	if value == nil {
		return true
	}
	return s.chain.CanConvert(DescriptorOf(value), target)
}

// Convert converts value to the target. A nil value converts to nil without
// consulting the chain. Failures from the selected strategy propagate as-is;
// the chain never retries a later strategy after the selected one fails.
func (s *Session) Convert(value any, target Descriptor) (any, error) {
	if value == nil {
		return nil, nil
	}
	return s.chain.Convert(value, DescriptorOf(value), target)
}

// To converts value to the type T, attaching the given annotations to the
// target:
//
//	d, err := bindconv.To[time.Duration](s, "250", bindconv.DurationUnit{Unit: time.Second})
//
// It fails with ErrTypeMismatch when the winning strategy produces a value
// that is not a T.
func To[T any](s *Session, value any, anns ...any) (T, error) {
	var zero T
	out, err := s.Convert(value, DescriptorFor[T](anns...))
	if err != nil {
		return zero, err
	}
	if out == nil {
		return zero, nil
	}
	typed, ok := out.(T)
	if !ok {
		return zero, fmt.Errorf("%w: got %T", ErrTypeMismatch, out)
	}
	return typed, nil
}
