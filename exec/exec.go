// Package exec provides command execution helpers.
package exec

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Runner runs a command and returns its standard output.
type Runner func(
	ctx context.Context,
	dir string,
	name string,
	arg ...string,
) ([]byte, error)

// Run executes the named command in dir and returns its
// stdout. Stderr is folded into the returned error. Pass
// empty dir to use the current working directory.
func Run(
	ctx context.Context,
	dir string,
	name string,
	arg ...string,
) ([]byte, error) {
	const errCtx = "executing command"

	slog.Debug(
		"executing",
		"cmd", name,
		"args", strings.Join(arg, " "),
		"dir", dir,
	)

	cmd := exec.CommandContext(ctx, name, arg...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), fmt.Errorf(
			"%s: %s %s: %w: %s",
			errCtx,
			name,
			strings.Join(arg, " "),
			err,
			strings.TrimSpace(stderr.String()),
		)
	}

	return stdout.Bytes(), nil
}
