package envconf_test

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/bindconv"
	"github.com/dmitrymomot/bindconv/envconf"
)

type serverEnv struct {
	Host        string        `env:"BINDCONV_TEST_HOST" envDefault:"localhost"`
	Port        int           `env:"BINDCONV_TEST_PORT" envDefault:"8080"`
	ReadTimeout time.Duration `env:"BINDCONV_TEST_READ_TIMEOUT" envDefault:"PT30S"`
	Locale      language.Tag  `env:"BINDCONV_TEST_LOCALE" envDefault:"en"`
}

type durationEnv struct {
	GoStyle time.Duration `env:"BINDCONV_TEST_DUR_GO" envDefault:"45s"`
	ISO     time.Duration `env:"BINDCONV_TEST_DUR_ISO" envDefault:"PT5S"`
	Bare    time.Duration `env:"BINDCONV_TEST_DUR_BARE" envDefault:"1500"`
}

type idEnv struct {
	Instance uuid.UUID `env:"BINDCONV_TEST_INSTANCE,required"`
}

type sliceEnv struct {
	Delays []time.Duration `env:"BINDCONV_TEST_DELAYS" envDefault:"PT1S,PT2S"`
}

type cacheEnv struct {
	Value string `env:"BINDCONV_TEST_CACHE_VALUE" envDefault:"default"`
}

type requiredEnv struct {
	Value string `env:"BINDCONV_TEST_REQUIRED_VALUE,required"`
}

type mustEnv struct {
	Value string `env:"BINDCONV_TEST_MUST_VALUE,required"`
}

type editorEnv struct {
	Level verbosity `env:"BINDCONV_TEST_LEVEL" envDefault:"quiet"`
}

type verbosity int

type brokenEditorEnv struct {
	Loudness loudness `env:"BINDCONV_TEST_LOUDNESS"`
}

type loudness int

func TestLoad_Success(t *testing.T) {
	t.Setenv("BINDCONV_TEST_HOST", "example.com")
	t.Setenv("BINDCONV_TEST_PORT", "9090")
	t.Setenv("BINDCONV_TEST_READ_TIMEOUT", "PT1M30S")
	t.Setenv("BINDCONV_TEST_LOCALE", "uk")
	envconf.Reset()

	var cfg serverEnv
	err := envconf.Load(&cfg)

	require.NoError(t, err, "Load should not return an error with valid environment variables")
	assert.Equal(t, "example.com", cfg.Host)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 90*time.Second, cfg.ReadTimeout)
	assert.Equal(t, language.MustParse("uk"), cfg.Locale)
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("BINDCONV_TEST_HOST")
	os.Unsetenv("BINDCONV_TEST_PORT")
	os.Unsetenv("BINDCONV_TEST_READ_TIMEOUT")
	os.Unsetenv("BINDCONV_TEST_LOCALE")
	envconf.Reset()

	var cfg serverEnv
	err := envconf.Load(&cfg)

	require.NoError(t, err, "Load should not return an error when using default values")
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.ReadTimeout, "ISO-8601 default should parse")
	assert.Equal(t, language.MustParse("en"), cfg.Locale)
}

func TestLoad_DurationShapes(t *testing.T) {
	envconf.Reset()

	var cfg durationEnv
	err := envconf.Load(&cfg)

	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.GoStyle)
	assert.Equal(t, 5*time.Second, cfg.ISO)
	assert.Equal(t, 1500*time.Millisecond, cfg.Bare, "bare numbers default to milliseconds")
}

func TestLoad_UUID(t *testing.T) {
	t.Setenv("BINDCONV_TEST_INSTANCE", "6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	envconf.Reset()

	var cfg idEnv
	err := envconf.Load(&cfg)

	require.NoError(t, err)
	assert.Equal(t, uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"), cfg.Instance)
}

func TestLoad_Slices(t *testing.T) {
	envconf.Reset()

	var cfg sliceEnv
	err := envconf.Load(&cfg)

	require.NoError(t, err)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, cfg.Delays)
}

func TestLoad_CustomEditor(t *testing.T) {
	t.Setenv("BINDCONV_TEST_LEVEL", "loud")
	envconf.Reset()

	var cfg editorEnv
	err := envconf.Load(&cfg, envconf.WithEditors(func(r *bindconv.EditorRegistry) {
		bindconv.RegisterEditor[verbosity](r, bindconv.EditorFunc(func(text string) (any, error) {
			switch text {
			case "quiet":
				return verbosity(0), nil
			case "loud":
				return verbosity(2), nil
			}
			return verbosity(1), nil
		}))
	}))

	require.NoError(t, err)
	assert.Equal(t, verbosity(2), cfg.Level)
}

func TestLoad_MisbehavingEditor(t *testing.T) {
	t.Setenv("BINDCONV_TEST_LOUDNESS", "high")
	envconf.Reset()

	var cfg brokenEditorEnv
	err := envconf.Load(&cfg, envconf.WithEditors(func(r *bindconv.EditorRegistry) {
		bindconv.RegisterEditor[loudness](r, bindconv.EditorFunc(func(string) (any, error) {
			return "not a loudness", nil
		}))
	}))

	require.Error(t, err, "a wrong-typed editor result should fail the load, not panic")
	assert.ErrorIs(t, err, envconf.ErrParsingConfig)
	assert.Contains(t, err.Error(), "unexpected type")
}

func TestLoad_Caching(t *testing.T) {
	t.Setenv("BINDCONV_TEST_CACHE_VALUE", "first")
	envconf.Reset()

	var cfg cacheEnv
	require.NoError(t, envconf.Load(&cfg))
	assert.Equal(t, "first", cfg.Value)

	t.Setenv("BINDCONV_TEST_CACHE_VALUE", "second")

	var again cacheEnv
	require.NoError(t, envconf.Load(&again))
	assert.Equal(t, "first", again.Value, "second Load should be served from cache")

	envconf.Reset()

	var fresh cacheEnv
	require.NoError(t, envconf.Load(&fresh))
	assert.Equal(t, "second", fresh.Value, "Reset should force a re-parse")
}

func TestLoad_RequiredMissing(t *testing.T) {
	os.Unsetenv("BINDCONV_TEST_REQUIRED_VALUE")
	envconf.Reset()

	var cfg requiredEnv
	err := envconf.Load(&cfg)

	require.Error(t, err)
	assert.ErrorIs(t, err, envconf.ErrParsingConfig)
}

func TestLoad_NilPointer(t *testing.T) {
	err := envconf.Load[serverEnv](nil)
	assert.ErrorIs(t, err, envconf.ErrNilPointer)
}

func TestMustLoad_Panics(t *testing.T) {
	os.Unsetenv("BINDCONV_TEST_MUST_VALUE")
	envconf.Reset()

	var cfg mustEnv
	require.Panics(t, func() {
		envconf.MustLoad(&cfg)
	})
}

func TestMustLoad_Success(t *testing.T) {
	t.Setenv("BINDCONV_TEST_MUST_VALUE", "present")
	envconf.Reset()

	var cfg mustEnv
	require.NotPanics(t, func() {
		envconf.MustLoad(&cfg)
	})
	assert.Equal(t, "present", cfg.Value)
}
