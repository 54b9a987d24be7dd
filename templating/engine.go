package templating

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/byte4ever/hbs_renderer/fileset"
	"github.com/byte4ever/hbs_renderer/helpers"
	"github.com/byte4ever/hbs_renderer/partials"
)

// Context is the data bound into templates for one Render call.
type Context struct {
	Payload any
}

// Output is one rendered buffer.
type Output struct {
	// Qualifier is the output key of an inline template. Empty for
	// file based engines.
	Qualifier string

	// Source is the template path of file based engines.
	Source string

	Buffer []byte
}

// Renderer renders templates against a context. A call either
// returns every output or an error.
type Renderer interface {
	Render(ctx context.Context, rc Context) ([]Output, error)
}

// Bundle renders a single template file with the bundle helper
// set.
type Bundle struct {
	Template string
	Partials []string
	Loader   partials.Loader
}

// Render implements Renderer.
func (bu Bundle) Render(ctx context.Context, rc Context) ([]Output, error) {
	const errCtx = "rendering bundle"

	slog.Debug("rendering", "engine", "bundle", "template", bu.Template)

	env := newEnvironment(helpers.Bundle())
	if err := env.loadPartials(ctx, bu.Loader, bu.Partials); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	sources, err := fileset.Read(ctx, []string{bu.Template}, 1)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	buf, err := env.render(bu.Template, sources[0], rc.Payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return []Output{{Source: bu.Template, Buffer: buf}}, nil
}

// Multi renders every template file in order with the full
// helper set.
type Multi struct {
	Templates []string
	Partials  []string
	Loader    partials.Loader
}

// Render implements Renderer. No templates yield no outputs.
func (mu Multi) Render(ctx context.Context, rc Context) ([]Output, error) {
	const errCtx = "rendering templates"

	slog.Debug("rendering", "engine", "index", "templates", len(mu.Templates))

	env := newEnvironment(helpers.Full())
	if err := env.loadPartials(ctx, mu.Loader, mu.Partials); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	sources, err := fileset.Read(ctx, mu.Templates, mu.Loader.Parallelism)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	outs := make([]Output, 0, len(sources))

	for idx, src := range sources {
		buf, err := env.render(mu.Templates[idx], src, rc.Payload)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		outs = append(outs, Output{Source: mu.Templates[idx], Buffer: buf})
	}

	return outs, nil
}

// InlineOutput pairs an output qualifier with its template text.
type InlineOutput struct {
	Qualifier string
	Template  string
}

// Inline renders template texts keyed by output qualifier with
// the full helper set.
type Inline struct {
	Outputs []InlineOutput
}

// Render implements Renderer.
func (in Inline) Render(ctx context.Context, rc Context) ([]Output, error) {
	const errCtx = "rendering inline templates"

	slog.Debug("rendering", "engine", "inline", "outputs", len(in.Outputs))

	env := newEnvironment(helpers.Full())
	outs := make([]Output, 0, len(in.Outputs))

	for _, item := range in.Outputs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		buf, err := env.render(item.Qualifier, item.Template, rc.Payload)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		outs = append(outs, Output{Qualifier: item.Qualifier, Buffer: buf})
	}

	return outs, nil
}
