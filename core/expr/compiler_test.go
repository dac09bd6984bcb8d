package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/deeplink/core/expr"
	"github.com/dmitrymomot/deeplink/core/paramtype"
)

const segment = `([A-Za-z0-9_.\-~]+)`

func newCompiler(t *testing.T) *expr.Compiler {
	t.Helper()
	c, err := expr.NewCompiler(paramtype.MustNew(), "source_id")
	require.NoError(t, err)
	return c
}

func kind(p expr.QueryParam) string {
	switch p.(type) {
	case expr.Required:
		return "required"
	case expr.Optional:
		return "optional"
	case expr.Literal:
		return "literal"
	default:
		return "unknown"
	}
}

func TestNewCompiler(t *testing.T) {
	t.Parallel()

	t.Run("requires a registry", func(t *testing.T) {
		_, err := expr.NewCompiler(nil)
		assert.ErrorIs(t, err, expr.ErrNilRegistry)
	})

	t.Run("rejects invalid global names", func(t *testing.T) {
		_, err := expr.NewCompiler(paramtype.MustNew(), "source-id")
		assert.ErrorIs(t, err, expr.ErrInvalidParamName)
	})
}

func TestCompile_Errors(t *testing.T) {
	t.Parallel()

	c := newCompiler(t)

	t.Run("expression must start with slash", func(t *testing.T) {
		_, err := c.Compile("newsfeed/")
		require.ErrorIs(t, err, expr.ErrInvalidFormat)
		assert.Contains(t, err.Error(), `expression must start with "/"`)
	})

	t.Run("unknown types are rejected everywhere", func(t *testing.T) {
		for _, expression := range []string{
			"/newsfeed/:postId{bigint}",
			"/newsfeed/?:postId{bigint}",
			"/newsfeed/?:postId{bigint?}",
			"/newsfeed/?:postIds{[bigint]}",
			"/newsfeed/?:postIds{[bigint]?}",
		} {
			_, err := c.Compile(expression)
			require.ErrorIs(t, err, expr.ErrInvalidType, expression)
			assert.Contains(t, err.Error(), `"bigint"`, expression)
		}
	})

	t.Run("duplicate path names", func(t *testing.T) {
		_, err := c.Compile("/a/:x/:x")
		require.ErrorIs(t, err, expr.ErrDuplicateParam)
		assert.Contains(t, err.Error(), `"x"`)
	})

	t.Run("duplicate across path and query", func(t *testing.T) {
		_, err := c.Compile("/newsfeed/:postId/?:postId")
		require.ErrorIs(t, err, expr.ErrDuplicateParam)
		assert.Contains(t, err.Error(), `param name "postId" can only be referenced once in expression`)
	})

	t.Run("duplicate with a global name", func(t *testing.T) {
		_, err := c.Compile("/newsfeed/?:source_id")
		require.ErrorIs(t, err, expr.ErrDuplicateParam)
		assert.Contains(t, err.Error(), `"source_id"`)
	})

	t.Run("reports the first repeated name in scan order", func(t *testing.T) {
		_, err := c.Compile("/a/:b/:c/?:c{int?}&:b{'x'}")
		require.ErrorIs(t, err, expr.ErrDuplicateParam)
		assert.Contains(t, err.Error(), `"c"`)
	})

	t.Run("type errors win over duplicates", func(t *testing.T) {
		_, err := c.Compile("/a/:x/:x{bigint}")
		assert.ErrorIs(t, err, expr.ErrInvalidType)
	})

	t.Run("uncompilable path text", func(t *testing.T) {
		_, err := c.Compile("/newsfeed/?:postIds{[int?}")
		assert.ErrorIs(t, err, expr.ErrInvalidFormat)
	})
}

func TestCompile_Path(t *testing.T) {
	t.Parallel()

	c := newCompiler(t)

	t.Run("global params are attached", func(t *testing.T) {
		p, err := c.Compile("/newsfeed")
		require.NoError(t, err)
		assert.Empty(t, p.PathParams())
		assert.Empty(t, p.QueryParams())
		require.Len(t, p.GlobalParams(), 1)
		assert.Equal(t, "source_id", p.GlobalParams()[0].Name)
		assert.Equal(t, "^/newsfeed$", p.PathRegex())
		assert.Equal(t, "/newsfeed", p.Expression())
	})

	t.Run("inferred path params", func(t *testing.T) {
		p, err := c.Compile("/newsfeed/:postId/:commentId")
		require.NoError(t, err)
		require.Len(t, p.PathParams(), 2)
		assert.Equal(t, "postId", p.PathParams()[0].Name)
		assert.Equal(t, "commentId", p.PathParams()[1].Name)

		v, ok := p.PathParams()[0].Type.Convert("abc")
		require.True(t, ok)
		assert.Equal(t, "abc", v)

		assert.Equal(t, "^/newsfeed/"+segment+"/"+segment+"$", p.PathRegex())
		assert.Equal(t, `^/newsfeed/([A-Za-z0-9_.\-~]+)/([A-Za-z0-9_.\-~]+)$`, p.PathRegex())
	})

	t.Run("trailing slash is stripped", func(t *testing.T) {
		p, err := c.Compile("/newsfeed/:postId/:commentId/")
		require.NoError(t, err)
		assert.Equal(t, "^/newsfeed/"+segment+"/"+segment+"$", p.PathRegex())
	})

	t.Run("root path is kept", func(t *testing.T) {
		p, err := c.Compile("/")
		require.NoError(t, err)
		assert.Equal(t, "^/$", p.PathRegex())
	})

	t.Run("typed path params", func(t *testing.T) {
		p, err := c.Compile("/newsfeed/:postId{string}/comment/:commentId{int}")
		require.NoError(t, err)
		require.Len(t, p.PathParams(), 2)

		v, ok := p.PathParams()[1].Type.Convert("123")
		require.True(t, ok)
		assert.Equal(t, 123, v)

		assert.Equal(t, "^/newsfeed/"+segment+"/comment/"+segment+"$", p.PathRegex())
	})

	t.Run("malformed path tokens stay literal", func(t *testing.T) {
		p, err := c.Compile("/newsfeed/:postIdstring}/comment/:commentId{/int}")
		require.NoError(t, err)
		assert.Empty(t, p.PathParams())
		assert.Empty(t, p.QueryParams())

		p, err = c.Compile("/newsfeed/:postId/commentId:/")
		require.NoError(t, err)
		require.Len(t, p.PathParams(), 1)
		assert.Equal(t, "^/newsfeed/"+segment+"/commentId:$", p.PathRegex())
	})

	t.Run("query-only forms are literal in the path", func(t *testing.T) {
		p, err := c.Compile("/a/:b{int?}/:c{'x'}")
		require.NoError(t, err)
		assert.Empty(t, p.PathParams())
	})

	t.Run("wildcard text is preserved", func(t *testing.T) {
		p, err := c.Compile("/newsfeed/.*")
		require.NoError(t, err)
		assert.Equal(t, "^/newsfeed/.*$", p.PathRegex())
	})
}

func TestCompile_Query(t *testing.T) {
	t.Parallel()

	c := newCompiler(t)

	t.Run("query with root path", func(t *testing.T) {
		p, err := c.Compile("/?:postId{int}&:commentId")
		require.NoError(t, err)
		assert.Empty(t, p.PathParams())
		require.Len(t, p.QueryParams(), 2)
		assert.Equal(t, "postId", p.QueryParams()[0].ParamName())
		assert.Equal(t, "required", kind(p.QueryParams()[0]))
		assert.Equal(t, "commentId", p.QueryParams()[1].ParamName())
		assert.Equal(t, "required", kind(p.QueryParams()[1]))
		assert.Equal(t, "^/$", p.PathRegex())
	})

	t.Run("required", func(t *testing.T) {
		p, err := c.Compile("/newsfeed/?:postId{int}&:commentId")
		require.NoError(t, err)
		require.Len(t, p.QueryParams(), 2)
		assert.Equal(t, "required", kind(p.QueryParams()[0]))
		assert.Equal(t, "^/newsfeed$", p.PathRegex())
	})

	t.Run("optional", func(t *testing.T) {
		p, err := c.Compile("/newsfeed/?:postId{int?}&:commentId{string?}")
		require.NoError(t, err)
		require.Len(t, p.QueryParams(), 2)
		assert.Equal(t, "optional", kind(p.QueryParams()[0]))
		assert.Equal(t, "optional", kind(p.QueryParams()[1]))
		assert.Equal(t, "^/newsfeed$", p.PathRegex())
	})

	t.Run("literal", func(t *testing.T) {
		p, err := c.Compile("/newsfeed/?:postId{'abcd'}&:commentId{'172362'}")
		require.NoError(t, err)
		require.Len(t, p.QueryParams(), 2)

		lit, ok := p.QueryParams()[1].(expr.Literal)
		require.True(t, ok)
		assert.Equal(t, "commentId", lit.Name)
		assert.Equal(t, "172362", lit.Value)
	})

	t.Run("scan order is required then optional then literal", func(t *testing.T) {
		p, err := c.Compile("/newsfeed/:post{int}/?:action{'like_post'}&:ref{string?}&:user")
		require.NoError(t, err)
		require.Len(t, p.PathParams(), 1)
		require.Len(t, p.QueryParams(), 3)

		assert.Equal(t, "user", p.QueryParams()[0].ParamName())
		assert.Equal(t, "required", kind(p.QueryParams()[0]))
		assert.Equal(t, "ref", p.QueryParams()[1].ParamName())
		assert.Equal(t, "optional", kind(p.QueryParams()[1]))
		assert.Equal(t, "action", p.QueryParams()[2].ParamName())
		assert.Equal(t, "literal", kind(p.QueryParams()[2]))

		assert.Equal(t, []string{"post", "source_id", "user", "ref", "action"}, p.Names())
		assert.Equal(t, "^/newsfeed/"+segment+"$", p.PathRegex())
	})

	t.Run("malformed query keeps the whole expression as path", func(t *testing.T) {
		p, err := c.Compile("/newsfeed/?:postIds{int]}")
		require.NoError(t, err)
		assert.Empty(t, p.PathParams())
		assert.Empty(t, p.QueryParams())
	})

	t.Run("required array", func(t *testing.T) {
		p, err := c.Compile("/newsfeed/?:postIds{[int]}")
		require.NoError(t, err)
		require.Len(t, p.QueryParams(), 1)

		req, ok := p.QueryParams()[0].(expr.Required)
		require.True(t, ok)
		v, ok := req.Type.Convert("1,2")
		require.True(t, ok)
		assert.Equal(t, []any{1, 2}, v)
	})

	t.Run("optional array", func(t *testing.T) {
		p, err := c.Compile("/newsfeed/?:postIds{[int]?}")
		require.NoError(t, err)
		require.Len(t, p.QueryParams(), 1)

		opt, ok := p.QueryParams()[0].(expr.Optional)
		require.True(t, ok)
		_, ok = opt.Type.Convert("1,,2")
		assert.False(t, ok)
	})

	t.Run("custom types resolve", func(t *testing.T) {
		reg := paramtype.MustNew(paramtype.Enum("color", "red", "green"))
		cc, err := expr.NewCompiler(reg)
		require.NoError(t, err)

		p, err := cc.Compile("/paint/:color{color}?:accents{[color]?}")
		require.NoError(t, err)
		require.Len(t, p.PathParams(), 1)
		require.Len(t, p.QueryParams(), 1)
		assert.Empty(t, p.GlobalParams())
	})
}

func TestMustCompile(t *testing.T) {
	t.Parallel()

	c := newCompiler(t)
	assert.NotPanics(t, func() { c.MustCompile("/a/:b") })
	assert.Panics(t, func() { c.MustCompile("a") })
}
