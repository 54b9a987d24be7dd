package resolver_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/hbs_renderer/resolver"
)

// fakeRunner records the invocation and replies with out.
type fakeRunner struct {
	dir  string
	name string
	args []string
	out  string
	err  error
}

func (fr *fakeRunner) run(
	_ context.Context,
	dir string,
	name string,
	arg ...string,
) ([]byte, error) {
	fr.dir = dir
	fr.name = name
	fr.args = arg

	return []byte(fr.out), fr.err
}

func TestGoModules_resolves_go_mod(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "mod")
	fr := &fakeRunner{
		out: `{"Path":"example.com/mod","Dir":"` +
			filepath.ToSlash(dir) + `","GoMod":"` +
			filepath.ToSlash(filepath.Join(dir, "go.mod")) + `"}`,
	}

	gm := resolver.GoModules{Run: fr.run}

	got, err := gm.Resolve(
		context.Background(), "example.com/mod", "/work",
	)

	require.NoError(t, err)
	assert.Equal(
		t,
		filepath.ToSlash(filepath.Join(dir, "go.mod")),
		filepath.ToSlash(got),
	)
	assert.Equal(t, "/work", fr.dir)
	assert.Equal(t, "go", fr.name)
	assert.Equal(
		t,
		[]string{"list", "-m", "-json", "example.com/mod"},
		fr.args,
	)
}

func TestGoModules_cache_go_mod_falls_back_to_dir(t *testing.T) {
	t.Parallel()

	fr := &fakeRunner{
		out: `{"Path":"example.com/mod","Dir":"/cache/mod@v1",` +
			`"GoMod":"/cache/download/mod/@v/v1.mod"}`,
	}

	gm := resolver.GoModules{GoCmd: "go1.25", Run: fr.run}

	got, err := gm.Resolve(context.Background(), "example.com/mod", "")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/cache/mod@v1", "go.mod"), got)
	assert.Equal(t, "go1.25", fr.name)
}

func TestGoModules_reports_list_error(t *testing.T) {
	t.Parallel()

	fr := &fakeRunner{
		out: `{"Path":"example.com/nope","Error":{"Err":"not a known dependency"}}`,
	}

	gm := resolver.GoModules{Run: fr.run}

	_, err := gm.Resolve(context.Background(), "example.com/nope", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, resolver.ErrModuleNotFound)
	assert.Contains(t, err.Error(), "not a known dependency")
}

func TestGoModules_not_downloaded(t *testing.T) {
	t.Parallel()

	fr := &fakeRunner{out: `{"Path":"example.com/mod"}`}

	gm := resolver.GoModules{Run: fr.run}

	_, err := gm.Resolve(context.Background(), "example.com/mod", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, resolver.ErrModuleNotFound)
}

func TestGoModules_command_failure(t *testing.T) {
	t.Parallel()

	fr := &fakeRunner{err: errors.New("exit status 1")}

	gm := resolver.GoModules{Run: fr.run}

	_, err := gm.Resolve(context.Background(), "example.com/mod", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolving go module example.com/mod")
}

func TestGoModules_bad_output(t *testing.T) {
	t.Parallel()

	fr := &fakeRunner{out: "not json"}

	gm := resolver.GoModules{Run: fr.run}

	_, err := gm.Resolve(context.Background(), "example.com/mod", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding go list output")
}
