package partials

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/byte4ever/hbs_renderer/fault"
	"github.com/byte4ever/hbs_renderer/fileset"
)

// DuplicatePolicy decides what happens when two matches derive
// the same partial name.
type DuplicatePolicy int

const (
	// Overwrite keeps the last registered match.
	Overwrite DuplicatePolicy = iota

	// Reject fails the load.
	Reject
)

// ErrDuplicate is returned under the Reject policy.
var ErrDuplicate = errors.New("duplicate partial name")

// Partial is one registered partial template.
type Partial struct {
	Name   string
	Path   string
	Source string
}

// Set maps partial names to partials.
type Set map[string]Partial

// Sources returns the name to template text mapping.
func (s Set) Sources() map[string]string {
	out := make(map[string]string, len(s))
	for name, pa := range s {
		out[name] = pa.Source
	}

	return out
}

// Loader expands partial patterns. The zero value is ready to
// use.
type Loader struct {
	// Duplicates selects the collision policy.
	Duplicates DuplicatePolicy

	// Parallelism bounds concurrent file reads.
	Parallelism int
}

// Load expands every pattern and reads the matched files. A
// pattern that matches nothing contributes no partials.
func (ld Loader) Load(
	ctx context.Context,
	patterns []string,
) (Set, error) {
	const errCtx = "loading partials"

	var found []Partial

	for _, pattern := range patterns {
		matches, err := Expand(pattern)
		if err != nil {
			return nil, err
		}

		abs, err := filepath.Abs(pattern)
		if err != nil {
			return nil, fault.Resolution(errCtx, pattern, err)
		}

		for _, match := range matches {
			found = append(found, Partial{
				Name: Name(abs, match),
				Path: match,
			})
		}
	}

	paths := make([]string, len(found))
	for idx := range found {
		paths[idx] = found[idx].Path
	}

	contents, err := fileset.Read(ctx, paths, ld.Parallelism)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	set := make(Set, len(found))

	for idx := range found {
		found[idx].Source = contents[idx]

		if err := ld.register(set, found[idx]); err != nil {
			return nil, err
		}
	}

	return set, nil
}

// register is the single decision point for name collisions.
func (ld Loader) register(set Set, pa Partial) error {
	if prev, ok := set[pa.Name]; ok {
		if ld.Duplicates == Reject {
			return fault.Template(
				"registering partial "+pa.Name,
				pa.Path,
				fmt.Errorf("%w: already loaded from %s", ErrDuplicate, prev.Path),
			)
		}

		slog.Debug(
			"partial overwritten",
			"name", pa.Name,
			"previous", prev.Path,
			"path", pa.Path,
		)
	}

	set[pa.Name] = pa

	slog.Debug("partial registered", "name", pa.Name, "path", pa.Path)

	return nil
}

// Expand returns the absolute, sorted file matches of pattern.
// Directories are skipped. No match is not an error.
func Expand(pattern string) ([]string, error) {
	const errCtx = "expanding pattern"

	abs, err := filepath.Abs(pattern)
	if err != nil {
		return nil, fault.Resolution(errCtx, pattern, err)
	}

	matches, err := doublestar.FilepathGlob(abs, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fault.Resolution(errCtx, pattern, err)
	}

	sort.Strings(matches)

	return matches, nil
}
