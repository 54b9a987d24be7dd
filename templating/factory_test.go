package templating_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/hbs_renderer/fault"
	"github.com/byte4ever/hbs_renderer/resolver"
	"github.com/byte4ever/hbs_renderer/templating"
)

func TestCreate_selects_engine(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTemp(t, dir, "page.hbs", "page")

	ctx := context.Background()
	params := templating.Params{BasePath: dir}

	rd, err := templating.Create(ctx, templating.Options{
		Outputs: []templating.InlineOutput{{Qualifier: "q", Template: "t"}},
	}, params)
	require.NoError(t, err)
	assert.IsType(t, templating.Inline{}, rd)

	rd, err = templating.Create(ctx, templating.Options{
		Kind:     templating.KindBundle,
		Template: "page.hbs",
	}, params)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "page.hbs"), rd.(templating.Bundle).Template)

	rd, err = templating.Create(ctx, templating.Options{
		Template: "page.hbs",
	}, params)
	require.NoError(t, err)
	assert.Equal(
		t,
		[]string{filepath.Join(dir, "page.hbs")},
		rd.(templating.Multi).Templates,
	)

	_, err = templating.Create(ctx, templating.Options{Kind: "zip"}, params)
	require.ErrorIs(t, err, templating.ErrUnknownKind)

	_, err = templating.Create(ctx, templating.Options{
		Kind: templating.KindBundle,
	}, params)
	require.ErrorIs(t, err, templating.ErrNoTemplate)

	_, err = templating.Create(ctx, templating.Options{}, params)
	require.ErrorIs(t, err, templating.ErrNoTemplate)
}

func TestCreateMulti_expands_in_pattern_order(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTemp(t, dir, "b/2.hbs", "")
	writeTemp(t, dir, "b/1.hbs", "")
	writeTemp(t, dir, "a/x.hbs", "")

	rd, err := templating.CreateMulti(
		context.Background(),
		templating.Options{
			Templates: []string{"b/*.hbs", "a/*.hbs", "none/*.hbs"},
			Partials:  templating.Patterns{"partials/*.hbs"},
		},
		templating.Params{BasePath: dir},
	)

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "b", "1.hbs"),
		filepath.Join(dir, "b", "2.hbs"),
		filepath.Join(dir, "a", "x.hbs"),
	}, rd.Templates)
	assert.Equal(t, []string{filepath.Join(dir, "partials", "*.hbs")}, rd.Partials)
}

func TestCreate_module_identifiers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTemp(t, dir, "mod/templates/main.hbs", "from {{name}}")
	writeTemp(t, dir, "mod/partials/p.hbs", "P")

	modules := resolver.ModuleResolverFunc(func(
		_ context.Context,
		moduleID string,
		_ string,
	) (string, error) {
		if moduleID != "example.com/mod" {
			return "", resolver.ErrModuleNotFound
		}

		return filepath.Join(dir, "mod", "dist", "index.js"), nil
	})

	rd, err := templating.Create(
		context.Background(),
		templating.Options{
			Kind:     templating.KindBundle,
			Template: "example.com/mod#templates/main.hbs",
			Partials: templating.Patterns{"example.com/mod#partials/*.hbs"},
		},
		templating.Params{BasePath: dir, Modules: modules},
	)
	require.NoError(t, err)

	outs, err := rd.Render(
		context.Background(),
		templating.Context{Payload: map[string]any{"name": "mod"}},
	)
	require.NoError(t, err)
	assert.Equal(t, "from mod", string(outs[0].Buffer))

	_, err = templating.Create(
		context.Background(),
		templating.Options{Template: "other#x.hbs"},
		templating.Params{BasePath: dir, Modules: modules},
	)
	require.ErrorIs(t, err, fault.ErrResolution)
	assert.True(t, errors.Is(err, resolver.ErrModuleNotFound))
}

func TestParseOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want templating.Options
	}{
		{
			name: "single partial string",
			doc:  "kind: bundle\ntemplate: page.hbs\npartials: partials/*.hbs\n",
			want: templating.Options{
				Kind:     templating.KindBundle,
				Template: "page.hbs",
				Partials: templating.Patterns{"partials/*.hbs"},
			},
		},
		{
			name: "partial list",
			doc:  "templates: [a.hbs, b/*.hbs]\npartials:\n  - one/*.hbs\n  - two/*.hbs\n",
			want: templating.Options{
				Templates: []string{"a.hbs", "b/*.hbs"},
				Partials:  templating.Patterns{"one/*.hbs", "two/*.hbs"},
			},
		},
		{
			name: "outputs keep document order",
			doc:  "outputs:\n  z.txt: \"Z {{name}}\"\n  a.txt: A\n",
			want: templating.Options{
				Outputs: []templating.InlineOutput{
					{Qualifier: "z.txt", Template: "Z {{name}}"},
					{Qualifier: "a.txt", Template: "A"},
				},
			},
		},
		{
			name: "json document",
			doc:  `{"template": "page.hbs", "partials": ["p/*.hbs"]}`,
			want: templating.Options{
				Template: "page.hbs",
				Partials: templating.Patterns{"p/*.hbs"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := templating.ParseOptions([]byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOptions_errors(t *testing.T) {
	t.Parallel()

	_, err := templating.ParseOptions([]byte("partials: {a: b}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), templating.ErrPatterns.Error())

	_, err = templating.ParseOptions([]byte("outputs:\n  a.txt: [1, 2]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template must be a string")
}

func TestLoadOptions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pa := writeTemp(t, dir, "opts.yaml", "outputs:\n  out1.txt: \"Hello {{name}}\"\n")

	opts, err := templating.LoadOptions(pa)
	require.NoError(t, err)

	rd, err := templating.Create(context.Background(), opts, templating.Params{})
	require.NoError(t, err)

	outs, err := rd.Render(
		context.Background(),
		templating.Context{Payload: map[string]any{"name": "World"}},
	)
	require.NoError(t, err)
	require.Len(t, outs, 1)
	assert.Equal(t, "out1.txt", outs[0].Qualifier)
	assert.Equal(t, "Hello World", string(outs[0].Buffer))

	_, err = templating.LoadOptions(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, fault.ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
