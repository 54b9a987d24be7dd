package templating

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/aymerick/raymond"

	"github.com/byte4ever/hbs_renderer/fault"
	"github.com/byte4ever/hbs_renderer/helpers"
	"github.com/byte4ever/hbs_renderer/partials"
)

// Evaluation errors.
var (
	ErrPanic    = errors.New("template evaluation panicked")
	ErrNotBlock = errors.New("helper cannot be used as a block")
)

var (
	anyType     = reflect.TypeOf((*any)(nil)).Elem()
	optionsType = reflect.TypeOf((*raymond.Options)(nil))
)

// environment holds everything one Render call registers into its
// templates. It is built per call and never shared.
type environment struct {
	helpers  helpers.Set
	prep     *preparer
	partials map[string]string
}

func newEnvironment(set helpers.Set) *environment {
	env := &environment{
		helpers:  set,
		partials: make(map[string]string),
	}

	env.prep = newPreparer(func(name string) bool {
		_, ok := env.helpers[name]

		return ok
	})

	return env
}

// loadPartials loads every pattern and registers the prepared
// partial sources.
func (env *environment) loadPartials(
	ctx context.Context,
	loader partials.Loader,
	patterns []string,
) error {
	if len(patterns) == 0 {
		return nil
	}

	set, err := loader.Load(ctx, patterns)
	if err != nil {
		return err
	}

	for name, src := range set.Sources() {
		env.partials[name] = env.prep.prepare(src)
	}

	return nil
}

// render compiles src and executes it against payload. name
// identifies the template in errors and logs.
func (env *environment) render(
	name string,
	src string,
	payload any,
) ([]byte, error) {
	const errCtx = "rendering template"

	tpl, err := raymond.Parse(env.prep.prepare(src))
	if err != nil {
		return nil, fault.Template("compiling template", name, err)
	}

	tpl.RegisterHelpers(env.helperFuncs())

	if len(env.partials) > 0 {
		tpl.RegisterPartials(env.partials)
	}

	out, err := execute(tpl, payload)
	if err != nil {
		return nil, fault.Template(errCtx, name, err)
	}

	slog.Debug("template rendered", "template", name, "bytes", len(out))

	return []byte(out), nil
}

// helperFuncs returns one raymond helper per call shape used by
// the prepared sources so far.
func (env *environment) helperFuncs() map[string]any {
	funcs := make(map[string]any, len(env.prep.used))

	for name, al := range env.prep.used {
		funcs[name] = adapt(env.helpers[al.helper], al)
	}

	return funcs
}

// adapt builds a function taking exactly al.args values followed
// by the raymond options, as raymond requires fixed arity helpers.
// A block call renders the block when the helper result is truthy
// and the inverse block otherwise. Failures panic with an error,
// which raymond turns into the Exec error.
func adapt(hp helpers.Helper, al alias) any {
	in := make([]reflect.Type, al.args+1)
	for idx := range al.args {
		in[idx] = anyType
	}

	in[al.args] = optionsType

	fnType := reflect.FuncOf(in, []reflect.Type{anyType}, false)

	return reflect.MakeFunc(fnType, func(vals []reflect.Value) []reflect.Value {
		if al.block && !hp.Block {
			panic(fmt.Errorf("%s: %w", hp.Name, ErrNotBlock))
		}

		params := make([]any, al.args)
		for idx := range params {
			params[idx] = vals[idx].Interface()
		}

		opts, _ := vals[al.args].Interface().(*raymond.Options)

		var hash map[string]any
		if opts != nil {
			hash = opts.Hash()
		}

		out, err := hp.Call(params, hash)
		if err != nil {
			panic(err)
		}

		if al.block {
			if helpers.Truthy(out) {
				out = opts.Fn()
			} else {
				out = opts.Inverse()
			}
		}

		res := reflect.New(anyType).Elem()
		if out != nil {
			res.Set(reflect.ValueOf(out))
		}

		return []reflect.Value{res}
	}).Interface()
}

// execute runs tpl, turning any panic raymond lets through into
// an error.
func execute(tpl *raymond.Template, payload any) (out string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, rec)
		}
	}()

	if payload == nil {
		payload = map[string]any{}
	}

	return tpl.Exec(payload)
}
