// Package binder binds decoded configuration trees onto Go structs.
//
// It sits on top of the bindconv conversion chain: every leaf value in the
// tree is converted through one session shared by the whole bind, so legacy
// editors, the primary converter and the shared registry all apply uniformly
// to every field.
//
// # Basic Usage
//
//	// Define a configuration struct with binding tags
//	type Config struct {
//	    Host    string        `bind:"host"`
//	    Port    int           `bind:"port"`
//	    Timeout time.Duration `bind:"timeout"`       // "30s", "PT30S" or bare millis
//	    Tags    []string      `bind:"tags"`          // sequence or "a, b, c"
//	    TLS     *TLSConfig    `bind:"tls"`           // allocated when present
//	    Secret  string        `bind:"-"`             // never bound
//	}
//
//	var cfg Config
//	if err := binder.BindYAML(data, &cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// # Tag Options
//
// Options after the key name tune the conversion of that field:
//
//   - `bind:"hosts,delimiter=;"` - split delimited text on ";" instead of ","
//   - `bind:"ttl,unit=s"` - read bare numeric durations as seconds
//
// # Custom Conversions
//
// Per-bind editors and converters come in through options:
//
//	err := binder.BindYAML(data, &cfg,
//	    binder.WithEditors(func(r *bindconv.EditorRegistry) {
//	        bindconv.RegisterEditor[LogLevel](r, bindconv.EditorFunc(parseLogLevel))
//	    }),
//	)
//
// # Error Handling
//
// The package defines several error variables for common binding failures:
//
//   - ErrInvalidTarget: destination is not a non-nil pointer to struct
//   - ErrInvalidYAML: document failed to decode
//   - ErrInvalidValue: a value could not be converted, wrapped with the
//     dotted key path of the failing field
//   - ErrInvalidTag: a struct tag carries an unknown or malformed option
//
// Conversion failures stop the bind at the first failing field; there is no
// partial-success reporting.
package binder
