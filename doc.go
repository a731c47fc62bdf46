// Package bindconv converts configuration values onto typed Go values. It
// exists for the awkward middle ground every binder ends up in: some
// conversions live in a modern registry of type-to-type converters, some in
// legacy single-type text editors, and some callers bring their own service.
// A Session lines all three up in one chain with fixed, predictable
// semantics.
//
// # Chain semantics
//
// A session's chain always starts with the editor service (custom editors,
// built-in defaults, the TextUnmarshaler convention, plus the
// delimited-string utilities), followed by the primary converter, and closed
// by the process-wide shared registry unless the primary already is that
// exact instance.
//
// CanConvert asks every delegate in order and reports the first yes. Convert
// asks every delegate except the last whether it can convert and lets the
// first claimant do the work; if none claims the conversion the last
// delegate is invoked unconditionally, so the chain ends in a loud
// ErrNoConverter instead of a silent skip. A failure from the claiming
// delegate propagates immediately; later delegates are never retried.
//
// # Basic use
//
//	s := bindconv.New(nil, nil)
//
//	port, err := bindconv.To[int](s, "8080")
//	tags, err := bindconv.To[[]string](s, "a, b, c")
//	wait, err := bindconv.To[time.Duration](s, "PT1H30M")
//
// Annotations tune individual binding sites without touching the chain:
//
//	hosts, err := bindconv.To[[]string](s, "a;b;c", bindconv.Delimiter{Value: ";"})
//	ttl, err := bindconv.To[time.Duration](s, "30", bindconv.DurationUnit{Unit: time.Second})
//
// # Custom editors
//
// Editors cover the single-type text parsers that do not warrant a full
// registry. They are registered per session through the initializer and
// matched by exact target type:
//
//	s := bindconv.New(nil, func(r *bindconv.EditorRegistry) {
//		bindconv.RegisterEditor[Color](r, bindconv.EditorFunc(parseColor))
//	})
//
// Collection, map and untyped interface targets never use editors; they are
// carved out for the registry, which converts elements and entries properly.
//
// # Concurrency
//
// The shared registry is immutable after creation and safe for concurrent
// use. A Session is not: its editor registry is populated without locking,
// so create one session per bind operation instead of sharing one across
// goroutines.
package bindconv
