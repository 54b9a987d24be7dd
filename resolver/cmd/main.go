// Package main provides the resolve_artifact CLI that prints
// the absolute path of each artifact identifier, resolving
// "module#sub/path" references through go list.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/byte4ever/hbs_renderer/resolver"
)

func run() error {
	const errCtx = "resolve_artifact"

	var (
		basePath string
		goCmd    string
	)

	flag.StringVar(
		&basePath, "base_path", "",
		"base directory for relative identifiers (default: cwd)",
	)

	flag.StringVar(
		&goCmd, "go_cmd", "go",
		"go binary name or path used for module lookups",
	)

	flag.Parse()

	paths, err := resolver.ResolveAll(
		context.Background(),
		flag.Args(),
		basePath,
		resolver.GoModules{GoCmd: goCmd},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	for _, pa := range paths {
		if _, err := fmt.Fprintln(os.Stdout, pa); err != nil {
			return fmt.Errorf(
				"%s: writing to stdout: %w",
				errCtx, err,
			)
		}
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
