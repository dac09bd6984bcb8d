package routefile_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/deeplink/core/expr"
	"github.com/dmitrymomot/deeplink/core/matcher"
	"github.com/dmitrymomot/deeplink/core/paramtype"
	"github.com/dmitrymomot/deeplink/pkg/routefile"
)

const yamlTable = `
global_params: [source_id]
types:
  - name: color
    kind: enum
    values: [red, green]
  - name: slug
    kind: pattern
    pattern: "[a-z0-9-]+"
  - kind: uuid
routes:
  - name: post
    expression: /newsfeed/:postId{int}
  - name: feed
    expression: /newsfeed/.*
  - name: paint
    expression: /paint/:c{color}/?:finish{slug?}
  - expression: /order/:id{uuid}
`

const jsonTable = `{
  "global_params": ["source_id"],
  "routes": [
    {"name": "user", "expression": "/user/?:name&:source{'deeplink'}"}
  ]
}`

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		table, err := routefile.Parse([]byte(yamlTable), routefile.FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, []string{"source_id"}, table.GlobalParams)
		assert.Len(t, table.Types, 3)
		require.Len(t, table.Routes, 4)
		assert.Equal(t, "post", table.Routes[0].Name)
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		table, err := routefile.Parse([]byte(jsonTable), routefile.FormatJSON)
		require.NoError(t, err)
		require.Len(t, table.Routes, 1)
		assert.Equal(t, "/user/?:name&:source{'deeplink'}", table.Routes[0].Expression)
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		t.Parallel()

		_, err := routefile.Parse([]byte("routez: []\n"), routefile.FormatYAML)
		assert.ErrorIs(t, err, routefile.ErrInvalidTable)

		_, err = routefile.Parse([]byte(`{"routez": []}`), routefile.FormatJSON)
		assert.ErrorIs(t, err, routefile.ErrInvalidTable)
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()

		cases := map[string]error{
			"routes: [{name: x}]\n":                            routefile.ErrInvalidTable,
			"types: [{name: x, kind: pattern}]\n":              routefile.ErrInvalidTable,
			"types: [{name: x, kind: enum}]\n":                 routefile.ErrInvalidTable,
			"types: [{name: x, kind: money}]\n":                routefile.ErrUnknownTypeKind,
			"routes: [{expression: /a}]\nroutes_extra: true\n": routefile.ErrInvalidTable,
		}
		for doc, want := range cases {
			_, err := routefile.Parse([]byte(doc), routefile.FormatYAML)
			assert.ErrorIs(t, err, want, doc)
		}
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		table, err := routefile.Parse(nil, routefile.FormatYAML)
		require.NoError(t, err)
		assert.Empty(t, table.Routes)
	})

	t.Run("unsupported format", func(t *testing.T) {
		t.Parallel()

		_, err := routefile.Parse([]byte("x"), routefile.Format("toml"))
		assert.ErrorIs(t, err, routefile.ErrUnsupportedFormat)
	})
}

func TestFormatOf(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]routefile.Format{
		"routes.yaml":        routefile.FormatYAML,
		"conf/routes.YML":    routefile.FormatYAML,
		"s3/key/routes.json": routefile.FormatJSON,
	} {
		got, err := routefile.FormatOf(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := routefile.FormatOf("routes.txt")
	assert.ErrorIs(t, err, routefile.ErrUnsupportedFormat)
}

func TestTable_Registry(t *testing.T) {
	t.Parallel()

	table, err := routefile.Parse([]byte(yamlTable), routefile.FormatYAML)
	require.NoError(t, err)

	reg, err := table.Registry()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"int", "string", "bool", "color", "slug", "uuid"}, reg.Names())

	t.Run("invalid type names surface registry errors", func(t *testing.T) {
		t.Parallel()

		bad := &routefile.Table{Types: []routefile.TypeDecl{{Name: "int", Kind: routefile.KindEnum, Values: []string{"a"}}}}
		_, err := bad.Registry()
		assert.ErrorIs(t, err, paramtype.ErrDuplicateName)

		bad = &routefile.Table{Types: []routefile.TypeDecl{{Name: "x", Kind: routefile.KindPattern, Pattern: "("}}}
		_, err = bad.Registry()
		assert.ErrorIs(t, err, paramtype.ErrInvalidRegexp)
	})
}

func TestTable_Router(t *testing.T) {
	t.Parallel()

	table, err := routefile.Parse([]byte(yamlTable), routefile.FormatYAML)
	require.NoError(t, err)

	router, err := table.Router()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/newsfeed/:postId{int}",
		"/newsfeed/.*",
		"/paint/:c{color}/?:finish{slug?}",
		"/order/:id{uuid}",
	}, router.Routes())

	t.Run("first match wins", func(t *testing.T) {
		t.Parallel()

		res, ok := router.MatchString("https://example.com/newsfeed/111?source_id=555")
		require.True(t, ok)
		assert.Equal(t, routefile.Named{Name: "post", Params: matcher.Params{"postId": 111}}, res.Route)
		assert.Equal(t, matcher.Params{"source_id": "555"}, res.Global)

		res, ok = router.MatchString("https://example.com/newsfeed/notANumber")
		require.True(t, ok)
		assert.Equal(t, "feed", res.Route.Name)
		assert.Empty(t, res.Global)
	})

	t.Run("declared types", func(t *testing.T) {
		t.Parallel()

		res, ok := router.MatchString("/paint/red?finish=high-gloss")
		require.True(t, ok)
		assert.Equal(t, matcher.Params{"c": "red", "finish": "high-gloss"}, res.Route.Params)

		_, ok = router.MatchString("/paint/red?finish=High_Gloss")
		assert.False(t, ok)

		res, ok = router.MatchString("/order/6BA7B810-9DAD-11D1-80B4-00C04FD430C8")
		require.True(t, ok)
		assert.Equal(t, "/order/:id{uuid}", res.Route.Name)
		assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", res.Route.Params["id"])
	})

	t.Run("compile errors name the route", func(t *testing.T) {
		t.Parallel()

		bad := &routefile.Table{Routes: []routefile.Route{{Name: "broken", Expression: "/a/:x{money}"}}}
		_, err := bad.Router()
		require.Error(t, err)
		assert.ErrorIs(t, err, expr.ErrInvalidType)
		assert.Contains(t, err.Error(), `route "broken"`)
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "routes.json")
		require.NoError(t, os.WriteFile(path, []byte(jsonTable), 0o600))

		table, err := routefile.LoadFile(path)
		require.NoError(t, err)
		assert.Len(t, table.Routes, 1)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := routefile.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, routefile.ErrLoadFailed)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := routefile.Load(ctx, routefile.File("routes.yaml"))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("in-memory source", func(t *testing.T) {
		t.Parallel()

		table, err := routefile.Load(context.Background(), routefile.Bytes("routes.yaml", []byte(yamlTable)))
		require.NoError(t, err)
		assert.Len(t, table.Routes, 4)
	})

	t.Run("source errors pass through", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		_, err := routefile.Load(context.Background(), routefile.SourceFunc(func(context.Context) ([]byte, string, error) {
			return nil, "", boom
		}))
		assert.ErrorIs(t, err, boom)
	})
}
