package resolver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/byte4ever/hbs_renderer/exec"
)

// ModuleResolver locates a module by identifier. Resolve returns
// the path of a file at the module root (its manifest or entry
// file); callers use its directory.
type ModuleResolver interface {
	Resolve(
		ctx context.Context,
		moduleID string,
		basePath string,
	) (string, error)
}

// ModuleResolverFunc adapts a plain function to the
// ModuleResolver interface.
type ModuleResolverFunc func(
	ctx context.Context,
	moduleID string,
	basePath string,
) (string, error)

// Resolve delegates to the wrapped function.
func (f ModuleResolverFunc) Resolve(
	ctx context.Context,
	moduleID string,
	basePath string,
) (string, error) {
	return f(ctx, moduleID, basePath)
}

// ErrModuleNotFound is returned when a module has no local
// directory.
var ErrModuleNotFound = errors.New("module not found")

// GoModules resolves Go module paths with "go list -m -json",
// run from the base directory so the enclosing module's
// requirements and replace directives apply.
type GoModules struct {
	// GoCmd is the go binary name or path. Defaults to "go".
	GoCmd string

	// Run executes commands. Defaults to exec.Run.
	Run exec.Runner
}

// goListModule mirrors the fields of "go list -m -json" output
// that are needed to locate a module.
type goListModule struct {
	Path  string `json:"Path"`
	Dir   string `json:"Dir"`
	GoMod string `json:"GoMod"`
	Error *struct {
		Err string `json:"Err"`
	} `json:"Error"`
}

// Resolve returns the go.mod path of moduleID.
func (gm GoModules) Resolve(
	ctx context.Context,
	moduleID string,
	basePath string,
) (string, error) {
	const errCtx = "resolving go module"

	goCmd := gm.GoCmd
	if goCmd == "" {
		goCmd = "go"
	}

	run := gm.Run
	if run == nil {
		run = exec.Run
	}

	out, err := run(ctx, basePath, goCmd, "list", "-m", "-json", moduleID)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", errCtx, moduleID, err)
	}

	var mod goListModule
	if err := json.Unmarshal(out, &mod); err != nil {
		return "", fmt.Errorf(
			"%s %s: decoding go list output: %w",
			errCtx, moduleID, err,
		)
	}

	if mod.Error != nil {
		return "", fmt.Errorf(
			"%s %s: %w: %s",
			errCtx, moduleID, ErrModuleNotFound, mod.Error.Err,
		)
	}

	if mod.Dir == "" {
		return "", fmt.Errorf(
			"%s %s: %w: not downloaded",
			errCtx, moduleID, ErrModuleNotFound,
		)
	}

	if mod.GoMod != "" && filepath.Dir(mod.GoMod) == mod.Dir {
		return mod.GoMod, nil
	}

	return filepath.Join(mod.Dir, "go.mod"), nil
}
