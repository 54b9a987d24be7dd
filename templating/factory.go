package templating

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/byte4ever/hbs_renderer/partials"
	"github.com/byte4ever/hbs_renderer/resolver"
)

// Kind selects a render engine.
type Kind string

// Engine kinds.
const (
	KindBundle Kind = "bundle"
	KindIndex  Kind = "index"
	KindInline Kind = "inline"
)

// Errors reported by the factories.
var (
	ErrNoTemplate  = errors.New("no template configured")
	ErrUnknownKind = errors.New("unknown renderer kind")
)

// Options selects and configures an engine. Callers set one of
// Template, Templates or Outputs.
type Options struct {
	Kind      Kind
	Template  string
	Templates []string
	Partials  Patterns
	Outputs   []InlineOutput
}

// Params carries what paths are resolved against.
type Params struct {
	// BasePath anchors relative identifiers. Empty means the
	// working directory.
	BasePath string

	// Modules resolves "module#path" identifiers. May be nil when
	// no identifier uses a module.
	Modules resolver.ModuleResolver

	// Loader configures partial loading and file reads.
	Loader partials.Loader
}

// Create builds the engine selected by opts. Without an explicit
// kind, outputs select the inline engine and anything else the
// index engine.
func Create(
	ctx context.Context,
	opts Options,
	params Params,
) (Renderer, error) {
	const errCtx = "creating renderer"

	var (
		rd  Renderer
		err error
	)

	switch {
	case opts.Kind == KindBundle:
		rd, err = CreateBundle(ctx, opts, params)
	case opts.Kind == KindInline,
		opts.Kind == "" && len(opts.Outputs) > 0:
		rd = CreateInline(opts)
	case opts.Kind == KindIndex, opts.Kind == "":
		rd, err = CreateMulti(ctx, opts, params)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownKind, opts.Kind)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return rd, nil
}

// CreateBundle builds a Bundle from opts.Template and
// opts.Partials.
func CreateBundle(
	ctx context.Context,
	opts Options,
	params Params,
) (Bundle, error) {
	const errCtx = "creating bundle renderer"

	if opts.Template == "" {
		return Bundle{}, fmt.Errorf("%s: %w", errCtx, ErrNoTemplate)
	}

	tpl, err := resolver.ResolveArtifactPath(
		ctx, opts.Template, params.BasePath, params.Modules,
	)
	if err != nil {
		return Bundle{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	parts, err := resolver.ResolveAll(
		ctx, opts.Partials, params.BasePath, params.Modules,
	)
	if err != nil {
		return Bundle{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Debug("renderer created", "kind", KindBundle, "template", tpl)

	return Bundle{
		Template: tpl,
		Partials: parts,
		Loader:   params.Loader,
	}, nil
}

// CreateMulti builds a Multi. Templates patterns are resolved and
// glob expanded, flattened in pattern order. Without patterns the
// single Template is resolved as-is.
func CreateMulti(
	ctx context.Context,
	opts Options,
	params Params,
) (Multi, error) {
	const errCtx = "creating index renderer"

	var templates []string

	switch {
	case len(opts.Templates) > 0:
		patterns, err := resolver.ResolveAll(
			ctx, opts.Templates, params.BasePath, params.Modules,
		)
		if err != nil {
			return Multi{}, fmt.Errorf("%s: %w", errCtx, err)
		}

		for _, pattern := range patterns {
			matches, err := partials.Expand(pattern)
			if err != nil {
				return Multi{}, fmt.Errorf("%s: %w", errCtx, err)
			}

			templates = append(templates, matches...)
		}
	case opts.Template != "":
		tpl, err := resolver.ResolveArtifactPath(
			ctx, opts.Template, params.BasePath, params.Modules,
		)
		if err != nil {
			return Multi{}, fmt.Errorf("%s: %w", errCtx, err)
		}

		templates = []string{tpl}
	default:
		return Multi{}, fmt.Errorf("%s: %w", errCtx, ErrNoTemplate)
	}

	parts, err := resolver.ResolveAll(
		ctx, opts.Partials, params.BasePath, params.Modules,
	)
	if err != nil {
		return Multi{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Debug(
		"renderer created",
		"kind", KindIndex,
		"templates", len(templates),
	)

	return Multi{
		Templates: templates,
		Partials:  parts,
		Loader:    params.Loader,
	}, nil
}

// CreateInline builds an Inline from opts.Outputs, keeping their
// order.
func CreateInline(opts Options) Inline {
	outs := make([]InlineOutput, len(opts.Outputs))
	copy(outs, opts.Outputs)

	slog.Debug("renderer created", "kind", KindInline, "outputs", len(outs))

	return Inline{Outputs: outs}
}
