// Binary hbs_render renders handlebars templates against a
// payload built from a data file, stamp info files and explicit
// variables.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/natefinch/atomic"

	"github.com/byte4ever/hbs_renderer/digester"
	"github.com/byte4ever/hbs_renderer/partials"
	"github.com/byte4ever/hbs_renderer/resolver"
	"github.com/byte4ever/hbs_renderer/stamper"
	"github.com/byte4ever/hbs_renderer/templating"
)

var errOutput = errors.New("-output needs exactly one rendered buffer")

type arrayFlags []string

func (af *arrayFlags) String() string {
	return strings.Join(*af, ",")
}

func (af *arrayFlags) Set(value string) error {
	*af = append(*af, value)
	return nil
}

type config struct {
	options       string
	kind          string
	template      string
	templates     arrayFlags
	partials      arrayFlags
	basePath      string
	payload       string
	stampInfoFile arrayFlags
	variable      arrayFlags
	output        string
	outputDir     string
	skipUnchanged bool
	rejectDups    bool
	parallelism   int
	goCmd         string
	verbose       bool
}

func parseFlags() config {
	var cfg config

	flag.StringVar(
		&cfg.options, "options", "",
		"options manifest (YAML or JSON); flags below override it",
	)

	flag.StringVar(
		&cfg.kind, "kind", "",
		"renderer kind: bundle, index or inline",
	)

	flag.StringVar(
		&cfg.template, "template", "",
		"template identifier",
	)

	flag.Var(
		&cfg.templates, "templates",
		"template glob identifier (repeatable)",
	)

	flag.Var(
		&cfg.partials, "partials",
		"partial glob identifier (repeatable)",
	)

	flag.StringVar(
		&cfg.basePath, "base_path", "",
		"base directory for relative identifiers (default: cwd)",
	)

	flag.StringVar(
		&cfg.payload, "payload", "",
		"payload file, JSON when named *.json, YAML otherwise",
	)

	flag.Var(
		&cfg.stampInfoFile, "stamp_info_file",
		"stamp info file path (repeatable)",
	)

	flag.Var(
		&cfg.variable, "variable",
		"payload variable in NAME=VALUE format (repeatable)",
	)

	flag.StringVar(
		&cfg.output, "output", "",
		"output file for a single rendered buffer",
	)

	flag.StringVar(
		&cfg.outputDir, "output_dir", "",
		"directory receiving one file per rendered buffer",
	)

	flag.BoolVar(
		&cfg.skipUnchanged, "skip_unchanged", false,
		"leave outputs whose content did not change untouched",
	)

	flag.BoolVar(
		&cfg.rejectDups, "reject_duplicate_partials", false,
		"fail when two partial files derive the same name",
	)

	flag.IntVar(
		&cfg.parallelism, "parallelism", 0,
		"concurrent file reads (default 8)",
	)

	flag.StringVar(
		&cfg.goCmd, "go_cmd", "go",
		"go binary used to resolve module#path identifiers",
	)

	flag.BoolVar(
		&cfg.verbose, "verbose", false,
		"enable debug logging",
	)

	flag.Parse()

	return cfg
}

func (cfg config) renderOptions() (templating.Options, error) {
	var opts templating.Options

	if cfg.options != "" {
		loaded, err := templating.LoadOptions(cfg.options)
		if err != nil {
			return opts, err
		}

		opts = loaded
	}

	if cfg.kind != "" {
		opts.Kind = templating.Kind(cfg.kind)
	}

	if cfg.template != "" {
		opts.Template = cfg.template
	}

	if len(cfg.templates) > 0 {
		opts.Templates = cfg.templates
	}

	if len(cfg.partials) > 0 {
		opts.Partials = templating.Patterns(cfg.partials)
	}

	return opts, nil
}

// buildPayload layers stamps, the payload file and variables. A
// payload file that is not a mapping is used as-is.
func (cfg config) buildPayload(ctx context.Context) (any, error) {
	const errCtx = "building payload"

	stamps, err := stamper.Load(ctx, cfg.stampInfoFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	vars, err := stamps.Variables(cfg.variable)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	var data any

	if cfg.payload != "" {
		raw, err := os.ReadFile(cfg.payload) //nolint:gosec // path from CLI flag
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		if strings.EqualFold(filepath.Ext(cfg.payload), ".json") {
			err = json.Unmarshal(raw, &data)
		} else {
			err = yaml.Unmarshal(raw, &data)
		}

		if err != nil {
			return nil, fmt.Errorf(
				"%s: decoding %s: %w", errCtx, cfg.payload, err,
			)
		}
	}

	switch tv := data.(type) {
	case nil:
		return stamper.Merge(stamps, vars), nil
	case map[string]any:
		return stamper.Merge(stamps, tv, vars), nil
	default:
		return data, nil
	}
}

// target returns where out is written, or "" for stdout.
func (cfg config) target(out templating.Output) string {
	switch {
	case cfg.output != "":
		return cfg.output
	case cfg.outputDir == "":
		return ""
	case out.Qualifier != "":
		return filepath.Join(cfg.outputDir, filepath.FromSlash(out.Qualifier))
	default:
		base := filepath.Base(out.Source)

		return filepath.Join(
			cfg.outputDir,
			strings.TrimSuffix(base, filepath.Ext(base)),
		)
	}
}

func (cfg config) write(out templating.Output) error {
	const errCtx = "writing output"

	pa := cfg.target(out)
	if pa == "" {
		if _, err := os.Stdout.Write(out.Buffer); err != nil {
			return fmt.Errorf("%s: writing to stdout: %w", errCtx, err)
		}

		return nil
	}

	if cfg.skipUnchanged {
		same, err := digester.Unchanged(pa, out.Buffer)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		if same {
			slog.Info("output unchanged", "path", pa)

			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(pa), 0o750); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := atomic.WriteFile(pa, bytes.NewReader(out.Buffer)); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Info("output written", "path", pa, "bytes", len(out.Buffer))

	return nil
}

// writeAll writes every output. -output takes exactly one.
func (cfg config) writeAll(outs []templating.Output) error {
	if cfg.output != "" && len(outs) != 1 {
		return fmt.Errorf("%w, got %d", errOutput, len(outs))
	}

	for _, out := range outs {
		if err := cfg.write(out); err != nil {
			return err
		}
	}

	return nil
}

func run() error {
	const errCtx = "hbs_render"

	cfg := parseFlags()

	if cfg.verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	ctx := context.Background()

	opts, err := cfg.renderOptions()
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	loader := partials.Loader{Parallelism: cfg.parallelism}
	if cfg.rejectDups {
		loader.Duplicates = partials.Reject
	}

	rd, err := templating.Create(ctx, opts, templating.Params{
		BasePath: cfg.basePath,
		Modules:  resolver.GoModules{GoCmd: cfg.goCmd},
		Loader:   loader,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	payload, err := cfg.buildPayload(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	outs, err := rd.Render(ctx, templating.Context{Payload: payload})
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := cfg.writeAll(outs); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
