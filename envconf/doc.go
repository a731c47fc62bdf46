// Package envconf provides a type-safe, generic and cached way to load
// application configuration from environment variables, with field parsing
// backed by the bindconv conversion chain.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11` to
// deliver a convenient API that:
//
//   - Loads the default `.env` file from the current working directory once
//     per process before the first parse.
//   - Parses the environment into any Go struct using field tags.
//   - Converts field values through a bindconv session, so ISO-8601
//     durations, UUIDs, language tags, IP addresses and custom editor types
//     bind without per-project parser plumbing.
//   - Caches each successfully loaded configuration type so it is only
//     parsed once for the lifetime of the process.
//   - Exposes a helper that panics on failure (`MustLoad`) for configuration
//     the application cannot start without.
//
// # Architecture
//
// Internally the package keeps a singleton cache that stores parsed struct
// copies keyed by their fully-qualified type name. Each key also holds a
// `sync.Once` guaranteeing the expensive parsing work is executed at most
// once per configuration type even when accessed from multiple goroutines
// concurrently. Parsing is delegated to `env.ParseWithOptions` with a parser
// function map built by walking the configuration type and asking the
// conversion chain which field types it can produce from text.
//
// # Usage
//
// Create a struct describing your configuration and annotate its fields with
// `env` tags:
//
//	type ServerConfig struct {
//	    Host        string        `env:"HOST" envDefault:"localhost"`
//	    Port        int           `env:"PORT" envDefault:"8080"`
//	    ReadTimeout time.Duration `env:"READ_TIMEOUT" envDefault:"PT30S"`
//	    Locale      language.Tag  `env:"LOCALE" envDefault:"en-US"`
//	    InstanceID  uuid.UUID     `env:"INSTANCE_ID,required"`
//	}
//
//	var cfg ServerConfig
//	if err := envconf.Load(&cfg); err != nil {
//	    log.Fatalf("parsing env: %v", err)
//	}
//
// Subsequent calls to `envconf.Load(&cfg)` are served from the in-memory
// cache without re-parsing. Tests that need a clean slate call `Reset`.
package envconf
