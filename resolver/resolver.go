package resolver

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/byte4ever/hbs_renderer/fault"
)

const (
	moduleSep = "#"

	// buildOutputDir is stepped over when a module publishes its
	// entry file under a compiled output directory.
	buildOutputDir = "dist"
)

// ErrNoModuleResolver is returned for module references when no
// ModuleResolver is configured.
var ErrNoModuleResolver = errors.New("no module resolver configured")

// ResolveArtifactPath resolves identifier to an absolute path.
//
// A "module#sub/path" identifier is resolved by locating module
// through modules, taking the directory of the returned file
// (one level higher when that directory is "dist") and resolving
// sub/path against it. Anything after a second "#" is ignored.
//
// A plain identifier is resolved against basePath, or against the
// working directory when basePath is empty. Glob characters are
// kept as-is.
func ResolveArtifactPath(
	ctx context.Context,
	identifier string,
	basePath string,
	modules ModuleResolver,
) (string, error) {
	const errCtx = "resolving artifact path"

	if strings.Contains(identifier, moduleSep) {
		parts := strings.SplitN(identifier, moduleSep, 3)
		moduleID, subPath := parts[0], parts[1]

		if modules == nil {
			return "", fault.Resolution(
				errCtx, identifier, ErrNoModuleResolver,
			)
		}

		entry, err := modules.Resolve(ctx, moduleID, basePath)
		if err != nil {
			return "", fault.Resolution(errCtx, identifier, err)
		}

		dir := filepath.Dir(entry)
		if filepath.Base(dir) == buildOutputDir {
			dir = filepath.Dir(dir)
		}

		return resolve(dir, subPath)
	}

	if basePath != "" {
		return resolve(basePath, identifier)
	}

	abs, err := filepath.Abs(identifier)
	if err != nil {
		return "", fault.Resolution(errCtx, identifier, err)
	}

	return abs, nil
}

// ResolveAll resolves every identifier in order.
func ResolveAll(
	ctx context.Context,
	identifiers []string,
	basePath string,
	modules ModuleResolver,
) ([]string, error) {
	paths := make([]string, 0, len(identifiers))

	for _, id := range identifiers {
		pa, err := ResolveArtifactPath(ctx, id, basePath, modules)
		if err != nil {
			return nil, err
		}

		paths = append(paths, pa)
	}

	return paths, nil
}

// resolve joins target onto base unless target is already
// absolute, then makes the result absolute.
func resolve(base, target string) (string, error) {
	if !filepath.IsAbs(target) {
		target = filepath.Join(base, target)
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fault.Resolution("resolving path", target, err)
	}

	return abs, nil
}
