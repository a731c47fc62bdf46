package envconf

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/bindconv"
)

// configCache provides a type-safe way to store and retrieve configuration
// instances using generics
type configCache struct {
	mu     sync.RWMutex
	values map[string]any
	onces  map[string]*sync.Once
}

var (
	// globalCache is the singleton instance for caching configurations
	globalCache = &configCache{
		values: make(map[string]any),
		onces:  make(map[string]*sync.Once),
	}

	defaultEnvLoaded sync.Once
)

// Option configures the conversion side of a Load call.
type Option func(*options)

type options struct {
	converter bindconv.Converter
	editors   func(*bindconv.EditorRegistry)
}

// WithConverter sets the primary conversion service used to parse field
// values. Without it parsing runs against bindconv.Shared().
func WithConverter(c bindconv.Converter) Option {
	return func(o *options) {
		o.converter = c
	}
}

// WithEditors installs custom editors for the load, so single-type text
// parsers apply to matching fields without a full converter registration.
func WithEditors(init func(*bindconv.EditorRegistry)) Option {
	return func(o *options) {
		o.editors = init
	}
}

// Load loads environment variables into the provided configuration struct.
// It ensures that each unique configuration type is only loaded once
// throughout the application lifecycle.
//
// The function first attempts to load the default .env file if it hasn't been
// loaded yet, then parses environment variables into a struct based on field
// tags. Field values pass through a bindconv session, so everything the
// conversion chain understands binds directly: ISO-8601 durations, UUIDs,
// language tags, IP addresses, and any type covered by a custom editor.
// Once a configuration type is successfully loaded, subsequent calls for the
// same type return the cached version; options only participate in the first
// load of each type.
//
// Example:
//
//	type ServerConfig struct {
//		Host        string        `env:"HOST" envDefault:"localhost"`
//		Port        int           `env:"PORT" envDefault:"8080"`
//		ReadTimeout time.Duration `env:"READ_TIMEOUT" envDefault:"PT30S"`
//		InstanceID  uuid.UUID     `env:"INSTANCE_ID,required"`
//	}
//
//	var cfg ServerConfig
//	err := envconf.Load(&cfg)
//	if err != nil {
//		// Handle error
//	}
func Load[T any](v *T, opts ...Option) error {
	defaultEnvLoaded.Do(func() {
		// Ignore errors - the .env file might not exist and that's ok
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	typeName := getTypeName[T]()

	globalCache.mu.RLock()
	if cached, ok := globalCache.values[typeName]; ok {
		*v = cached.(T)
		globalCache.mu.RUnlock()
		return nil
	}
	globalCache.mu.RUnlock()

	globalCache.mu.Lock()
	once, exists := globalCache.onces[typeName]
	if !exists {
		once = new(sync.Once)
		globalCache.onces[typeName] = once
	}
	globalCache.mu.Unlock()

	var err error

	// Use sync.Once to ensure the config is parsed only once per type
	once.Do(func() {
		session := bindconv.New(o.converter, o.editors)
		parseOpts := env.Options{FuncMap: parserFuncs(session, reflect.TypeOf((*T)(nil)).Elem())}
		if parseErr := env.ParseWithOptions(v, parseOpts); parseErr != nil {
			err = errors.Join(ErrParsingConfig, parseErr)
			return
		}

		globalCache.mu.Lock()
		globalCache.values[typeName] = *v // Store a copy to avoid external modifications
		globalCache.mu.Unlock()
	})

	if err != nil {
		return err
	}

	// Ensure the value is loaded from cache for concurrent requests
	globalCache.mu.RLock()
	if cached, ok := globalCache.values[typeName]; ok {
		*v = cached.(T)
		globalCache.mu.RUnlock()
		return nil
	}
	globalCache.mu.RUnlock()

	return ErrConfigNotLoaded
}

// MustLoad works like Load but panics if configuration loading fails.
// This is useful for configurations that are required for the application to start.
//
// Example:
//
//	var cfg ServerConfig
//	envconf.MustLoad(&cfg)
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}

// Reset clears the configuration cache so the next Load of each type parses
// the environment again. Intended for tests.
func Reset() {
	globalCache.mu.Lock()
	defer globalCache.mu.Unlock()
	globalCache.values = make(map[string]any)
	globalCache.onces = make(map[string]*sync.Once)
}

// getTypeName returns a string identifier for the generic type T
func getTypeName[T any]() string {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		// Handle interface types
		return fmt.Sprintf("%T", *new(T))
	}
	return t.String()
}

// parserFuncs walks the configuration type and builds an env parser for every
// field type the conversion session can produce from text. Plain builtin
// kinds are left to the env library's native parsing, and unnamed slices keep
// its native separator handling with the session converting their elements.
func parserFuncs(s *bindconv.Session, t reflect.Type) map[reflect.Type]env.ParserFunc {
	parsers := make(map[reflect.Type]env.ParserFunc)
	collectFieldTypes(t, make(map[reflect.Type]bool), func(ft reflect.Type) {
		if plainKind(ft) || !s.CanConvert("", bindconv.NewDescriptor(ft)) {
			return
		}
		parsers[ft] = parserFor(s, ft)
	})
	return parsers
}

// parserFor adapts the session to the env parser contract. The env library
// assigns whatever the parser returns without checking, so conversion output
// of the wrong type is rejected here rather than panicking inside it.
func parserFor(s *bindconv.Session, t reflect.Type) env.ParserFunc {
	target := bindconv.NewDescriptor(t)
	return func(v string) (any, error) {
		out, err := s.Convert(v, target)
		if err != nil {
			return nil, err
		}
		if out == nil {
			return reflect.Zero(t).Interface(), nil
		}
		if !reflect.TypeOf(out).AssignableTo(t) {
			return nil, fmt.Errorf("%w: got %T, want %s", bindconv.ErrTypeMismatch, out, t)
		}
		return out, nil
	}
}

// collectFieldTypes visits every type reachable from t through struct fields,
// pointers, collections and maps. Named slice and array types such as
// uuid.UUID or net.IP are visited as a whole; unnamed ones only contribute
// their element type.
func collectFieldTypes(t reflect.Type, seen map[reflect.Type]bool, visit func(reflect.Type)) {
	if t == nil || seen[t] {
		return
	}
	seen[t] = true

	switch t.Kind() {
	case reflect.Pointer:
		collectFieldTypes(t.Elem(), seen, visit)
	case reflect.Slice, reflect.Array:
		if t.PkgPath() != "" {
			visit(t)
		}
		collectFieldTypes(t.Elem(), seen, visit)
	case reflect.Map:
		collectFieldTypes(t.Key(), seen, visit)
		collectFieldTypes(t.Elem(), seen, visit)
	case reflect.Struct:
		visit(t)
		for i := 0; i < t.NumField(); i++ {
			collectFieldTypes(t.Field(i).Type, seen, visit)
		}
	default:
		visit(t)
	}
}

// plainKind reports the unnamed builtin types the env library parses natively
// with the right semantics.
func plainKind(t reflect.Type) bool {
	if t.PkgPath() != "" {
		return false
	}
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
