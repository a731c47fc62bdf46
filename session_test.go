package bindconv_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bindconv"
)

// recordingConverter counts invocations so tests can prove which strategies
// the chain touched.
type recordingConverter struct {
	can       bool
	result    any
	canCalls  int
	convCalls int
}

func (r *recordingConverter) CanConvert(src, dst bindconv.Descriptor) bool {
	r.canCalls++
	return r.can
}

func (r *recordingConverter) Convert(v any, src, dst bindconv.Descriptor) (any, error) {
	r.convCalls++
	return r.result, nil
}

func TestSessionNilValue(t *testing.T) {
	t.Parallel()
	rec := &recordingConverter{can: true, result: "never"}
	s := bindconv.New(rec, nil)

	assert.True(t, s.CanConvert(nil, bindconv.DescriptorFor[int]()))

	out, err := s.Convert(nil, bindconv.DescriptorFor[int]())
	require.NoError(t, err)
	assert.Nil(t, out)

	n, err := bindconv.To[int](s, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	// no strategy in the chain was ever touched
	assert.Zero(t, rec.canCalls)
	assert.Zero(t, rec.convCalls)
}

func TestSessionChainOrder(t *testing.T) {
	t.Parallel()

	t.Run("primary wins over shared fallback", func(t *testing.T) {
		t.Parallel()
		primary := bindconv.NewRegistry()
		primary.Register(reflect.TypeOf(""), reflect.TypeOf(0), func(any, bindconv.Descriptor) (any, error) {
			return 999, nil
		})
		s := bindconv.New(primary, nil)

		n, err := bindconv.To[int](s, "5")
		require.NoError(t, err)
		assert.Equal(t, 999, n)
	})

	t.Run("editor service wins over primary", func(t *testing.T) {
		t.Parallel()
		rec := &recordingConverter{can: true, result: 111}
		s := bindconv.New(rec, func(r *bindconv.EditorRegistry) {
			bindconv.RegisterEditor[int](r, bindconv.EditorFunc(func(string) (any, error) {
				return 222, nil
			}))
		})

		n, err := bindconv.To[int](s, "5")
		require.NoError(t, err)
		assert.Equal(t, 222, n)
		assert.Zero(t, rec.convCalls)
	})

	t.Run("unclaimed conversions fail through the fallback", func(t *testing.T) {
		t.Parallel()
		type opaque struct{ X int }
		s := bindconv.New(&recordingConverter{}, nil)

		_, err := bindconv.To[opaque](s, "x")
		require.ErrorIs(t, err, bindconv.ErrNoConverter)
	})
}

func TestSessionConversions(t *testing.T) {
	t.Parallel()
	s := bindconv.New(nil, nil)

	t.Run("delimited text to typed slice", func(t *testing.T) {
		t.Parallel()
		out, err := bindconv.To[[]int](s, "1,2,3")
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, out)
	})

	t.Run("iso duration through the registry", func(t *testing.T) {
		t.Parallel()
		d, err := bindconv.To[time.Duration](s, "PT5S")
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, d)
	})

	t.Run("annotations reach the winning strategy", func(t *testing.T) {
		t.Parallel()
		hosts, err := bindconv.To[[]string](s, "a;b;c", bindconv.Delimiter{Value: ";"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, hosts)

		ttl, err := bindconv.To[time.Duration](s, "30", bindconv.DurationUnit{Unit: time.Second})
		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, ttl)
	})

	t.Run("decoded tree values", func(t *testing.T) {
		t.Parallel()
		out, err := bindconv.To[map[string]int](s, map[string]any{"a": "1", "b": 2})
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"a": 1, "b": 2}, out)
	})

	t.Run("convert with explicit descriptor", func(t *testing.T) {
		t.Parallel()
		out, err := s.Convert("yes", bindconv.DescriptorFor[bool]())
		require.NoError(t, err)
		assert.Equal(t, true, out)
	})

	t.Run("bindable targets", func(t *testing.T) {
		t.Parallel()
		target := bindconv.BindableOf[[]string](bindconv.Delimiter{Value: "|"})
		out, err := s.Convert("a|b", target.Descriptor())
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, out)
	})
}

func TestTo(t *testing.T) {
	t.Parallel()

	t.Run("type mismatch from a misbehaving editor", func(t *testing.T) {
		t.Parallel()
		type marker struct{ v int }
		s := bindconv.New(nil, func(r *bindconv.EditorRegistry) {
			bindconv.RegisterEditor[marker](r, bindconv.EditorFunc(func(string) (any, error) {
				return "not a marker", nil
			}))
		})

		_, err := bindconv.To[marker](s, "x")
		require.ErrorIs(t, err, bindconv.ErrTypeMismatch)
	})

	t.Run("pointer results", func(t *testing.T) {
		t.Parallel()
		s := bindconv.New(nil, nil)
		p, err := bindconv.To[*int](s, "5")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, 5, *p)
	})
}
