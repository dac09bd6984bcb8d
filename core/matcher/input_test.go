package matcher_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/deeplink/core/matcher"
)

func TestParseURL(t *testing.T) {
	t.Parallel()

	t.Run("decodes path and query", func(t *testing.T) {
		in, err := matcher.ParseURL("http://www.example.com/newsfeed/?postId=111&source=deeplink&name=Bob%20Jones")
		require.NoError(t, err)

		assert.Equal(t, "/newsfeed", in.Path())
		assert.Equal(t, 3, in.QueryLen())

		v, ok := in.Query("postId")
		require.True(t, ok)
		assert.Equal(t, "111", v)

		v, ok = in.Query("name")
		require.True(t, ok)
		assert.Equal(t, "Bob Jones", v)
	})

	t.Run("last value wins", func(t *testing.T) {
		in, err := matcher.ParseURL("/a?x=1&x=2")
		require.NoError(t, err)
		v, _ := in.Query("x")
		assert.Equal(t, "2", v)
	})

	t.Run("decodes keys", func(t *testing.T) {
		in, err := matcher.ParseURL("/a?first%5Fname=Bob")
		require.NoError(t, err)
		v, ok := in.Query("first_name")
		require.True(t, ok)
		assert.Equal(t, "Bob", v)
	})

	t.Run("keeps plus signs", func(t *testing.T) {
		in, err := matcher.ParseURL("/a?q=a+b")
		require.NoError(t, err)
		v, _ := in.Query("q")
		assert.Equal(t, "a+b", v)
	})

	t.Run("skips items without value or with bad escapes", func(t *testing.T) {
		in, err := matcher.ParseURL("/a?flag&bad=%zz&ok=1&empty=")
		require.NoError(t, err)

		_, ok := in.Query("flag")
		assert.False(t, ok)
		_, ok = in.Query("bad")
		assert.False(t, ok)

		v, ok := in.Query("empty")
		require.True(t, ok)
		assert.Empty(t, v)
		assert.Equal(t, 2, in.QueryLen())
	})

	t.Run("root and empty paths", func(t *testing.T) {
		in, err := matcher.ParseURL("http://www.example.com/")
		require.NoError(t, err)
		assert.Equal(t, "/", in.Path())

		in, err = matcher.ParseURL("http://www.example.com")
		require.NoError(t, err)
		assert.Equal(t, "", in.Path())
	})

	t.Run("invalid URL", func(t *testing.T) {
		_, err := matcher.ParseURL("http://[::1")
		assert.Error(t, err)
	})
}

func TestNewInput(t *testing.T) {
	t.Parallel()

	query := map[string]string{"a": "1"}
	in := matcher.NewInput("/newsfeed/", query)
	query["a"] = "2"

	assert.Equal(t, "/newsfeed", in.Path())
	v, _ := in.Query("a")
	assert.Equal(t, "1", v, "input keeps its own copy of the query")
}

func TestFromURL(t *testing.T) {
	t.Parallel()

	u := &url.URL{Path: "/team/oakland-warriors", RawQuery: "x=%2F"}
	in := matcher.FromURL(u)
	assert.Equal(t, "/team/oakland-warriors", in.Path())
	v, _ := in.Query("x")
	assert.Equal(t, "/", v)
}
