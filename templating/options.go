package templating

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/byte4ever/hbs_renderer/fault"
)

// ErrPatterns is returned for a partials entry that is neither a
// string nor a list of strings.
var ErrPatterns = errors.New("patterns must be a string or a list of strings")

// Patterns is a list of path patterns that also decodes from a
// single string.
type Patterns []string

// UnmarshalYAML implements yaml.BytesUnmarshaler.
func (pa *Patterns) UnmarshalYAML(data []byte) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch tv := raw.(type) {
	case nil:
		*pa = nil
	case string:
		*pa = Patterns{tv}
	case []any:
		out := make(Patterns, 0, len(tv))

		for _, item := range tv {
			str, ok := item.(string)
			if !ok {
				return fmt.Errorf("%w: got %T item", ErrPatterns, item)
			}

			out = append(out, str)
		}

		*pa = out
	default:
		return fmt.Errorf("%w: got %T", ErrPatterns, raw)
	}

	return nil
}

// manifest is the on-disk shape of Options.
type manifest struct {
	Kind      Kind          `yaml:"kind"`
	Template  string        `yaml:"template"`
	Templates []string      `yaml:"templates"`
	Partials  Patterns      `yaml:"partials"`
	Outputs   yaml.MapSlice `yaml:"outputs"`
}

// ParseOptions decodes an options manifest. JSON documents are
// accepted as YAML. Outputs keep their document order.
func ParseOptions(data []byte) (Options, error) {
	const errCtx = "parsing options"

	var mf manifest
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return Options{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	opts := Options{
		Kind:      mf.Kind,
		Template:  mf.Template,
		Templates: mf.Templates,
		Partials:  mf.Partials,
	}

	for _, item := range mf.Outputs {
		key, ok := item.Key.(string)
		if !ok {
			key = fmt.Sprint(item.Key)
		}

		tpl, ok := item.Value.(string)
		if !ok {
			return Options{}, fmt.Errorf(
				"%s: output %q: template must be a string, got %T",
				errCtx, key, item.Value,
			)
		}

		opts.Outputs = append(opts.Outputs, InlineOutput{
			Qualifier: key,
			Template:  tpl,
		})
	}

	return opts, nil
}

// LoadOptions reads and decodes the manifest at path.
func LoadOptions(path string) (Options, error) {
	const errCtx = "loading options"

	data, err := os.ReadFile(path) //nolint:gosec // path from CLI flag
	if err != nil {
		return Options{}, fault.IO(errCtx, path, err)
	}

	opts, err := ParseOptions(data)
	if err != nil {
		return Options{}, fmt.Errorf("%s %s: %w", errCtx, path, err)
	}

	return opts, nil
}
