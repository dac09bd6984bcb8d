package paramtype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/deeplink/core/paramtype"
)

func TestInt(t *testing.T) {
	t.Parallel()

	typ := paramtype.Int()

	v, ok := typ.Convert("123")
	require.True(t, ok)
	assert.Equal(t, 123, v)

	v, ok = typ.Convert("-7")
	require.True(t, ok)
	assert.Equal(t, -7, v)

	for _, in := range []string{"", "abc", "1.5", "12a", " 1"} {
		_, ok := typ.Convert(in)
		assert.False(t, ok, in)
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "abc", "Bob Jones", "72172"} {
		v, ok := paramtype.String().Convert(in)
		require.True(t, ok)
		assert.Equal(t, in, v)
	}
}

func TestBool(t *testing.T) {
	t.Parallel()

	typ := paramtype.Bool()

	for _, in := range []string{"True", "true", "yes", "1"} {
		v, ok := typ.Convert(in)
		require.True(t, ok, in)
		assert.Equal(t, true, v, in)
	}

	for _, in := range []string{"False", "false", "no", "0"} {
		v, ok := typ.Convert(in)
		require.True(t, ok, in)
		assert.Equal(t, false, v, in)
	}

	for _, in := range []string{"TRUE", "Yes", "No", "2", "", "on", "off"} {
		_, ok := typ.Convert(in)
		assert.False(t, ok, in)
	}
}

func TestArray(t *testing.T) {
	t.Parallel()

	ints := paramtype.Array(paramtype.Int())

	t.Run("converts every element", func(t *testing.T) {
		v, ok := ints.Convert("981,215,91")
		require.True(t, ok)
		assert.Equal(t, []any{981, 215, 91}, v)
	})

	t.Run("single element", func(t *testing.T) {
		v, ok := ints.Convert("15")
		require.True(t, ok)
		assert.Equal(t, []any{15}, v)
	})

	t.Run("fails on empty elements", func(t *testing.T) {
		for _, in := range []string{"981,,91", "71,", ",71", ""} {
			_, ok := ints.Convert(in)
			assert.False(t, ok, in)
		}
	})

	t.Run("fails when any element fails", func(t *testing.T) {
		_, ok := ints.Convert("1,abc,3")
		assert.False(t, ok)
	})

	t.Run("empty elements fail even for strings", func(t *testing.T) {
		_, ok := paramtype.Array(paramtype.String()).Convert("a,,b")
		assert.False(t, ok)
	})

	t.Run("booleans", func(t *testing.T) {
		v, ok := paramtype.Array(paramtype.Bool()).Convert("yes,0,True")
		require.True(t, ok)
		assert.Equal(t, []any{true, false, true}, v)
	})
}

func TestPattern(t *testing.T) {
	t.Parallel()

	slug, err := paramtype.Pattern("slug", `[a-z0-9-]+`)
	require.NoError(t, err)
	assert.Equal(t, "slug", slug.Name())

	v, ok := slug.Convert("oakland-warriors")
	require.True(t, ok)
	assert.Equal(t, "oakland-warriors", v)

	_, ok = slug.Convert("Oakland Warriors")
	assert.False(t, ok)

	_, ok = slug.Convert("ok-prefix!")
	assert.False(t, ok, "pattern must match the whole value")

	_, err = paramtype.Pattern("broken", `[a-`)
	assert.ErrorIs(t, err, paramtype.ErrInvalidRegexp)
}

func TestEnum(t *testing.T) {
	t.Parallel()

	color := paramtype.Enum("color", "red", "green")

	v, ok := color.Convert("red")
	require.True(t, ok)
	assert.Equal(t, "red", v)

	_, ok = color.Convert("blue")
	assert.False(t, ok)
}

func TestUUID(t *testing.T) {
	t.Parallel()

	typ := paramtype.UUID()
	assert.Equal(t, "uuid", typ.Name())

	v, ok := typ.Convert("F47AC10B-58CC-4372-A567-0E02B2C3D479")
	require.True(t, ok)
	assert.Equal(t, "f47ac10b-58cc-4372-a567-0e02b2c3d479", v)

	_, ok = typ.Convert("not-a-uuid")
	assert.False(t, ok)
}
