package templating_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/byte4ever/hbs_renderer/templating"
)

func TestPrepare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		want    string
		aliases []string
	}{
		{
			name: "plain text",
			src:  "no tags here",
			want: "no tags here",
		},
		{
			name: "path mustache is unescaped",
			src:  "Hello {{name}}!",
			want: "Hello {{{name}}}!",
		},
		{
			name: "whitespace control kept",
			src:  "{{~ name ~}}",
			want: "{{~{ name }~}}",
		},
		{
			name:    "helper call aliased by arity",
			src:     `{{repeat "ab" 3}}`,
			want:    `{{{repeat__2 "ab" 3}}}`,
			aliases: []string{"repeat__2"},
		},
		{
			name:    "hash pairs are not counted",
			src:     `{{abbreviate name separator="."}}`,
			want:    `{{{abbreviate__1 name separator="."}}}`,
			aliases: []string{"abbreviate__1"},
		},
		{
			name:    "sub expressions aliased",
			src:     `{{#if (eq a (concat b "x y"))}}y{{/if}}`,
			want:    `{{#if (eq__2 a (concat__2 b "x y"))}}y{{/if}}`,
			aliases: []string{"eq__2", "concat__2"},
		},
		{
			name:    "hash value sub expression",
			src:     `{{abbreviate n separator=(concat "-")}}`,
			want:    `{{{abbreviate__1 n separator=(concat__1 "-")}}}`,
			aliases: []string{"abbreviate__1", "concat__1"},
		},
		{
			name:    "triple stache kept and aliased",
			src:     "{{{uuid}}}",
			want:    "{{{uuid__0}}}",
			aliases: []string{"uuid__0"},
		},
		{
			name:    "ampersand aliased",
			src:     "{{& upperFirst x}}",
			want:    "{{& upperFirst__1 x}}",
			aliases: []string{"upperFirst__1"},
		},
		{
			name: "unknown names untouched",
			src:  "{{other x}}",
			want: "{{{other x}}}",
		},
		{
			name: "helper name as argument untouched",
			src:  "{{other repeat}}",
			want: "{{{other repeat}}}",
		},
		{
			name:    "separator helper",
			src:     "{{---}}",
			want:    "{{{_2d_2d_2d__0}}}",
			aliases: []string{"_2d_2d_2d__0"},
		},
		{
			name:    "block helper and its closing tag",
			src:     "{{#eq n 2}}yes{{else}}no{{/eq}}",
			want:    "{{#eq__b2 n 2}}yes{{else}}no{{/eq__b2}}",
			aliases: []string{"eq__b2"},
		},
		{
			name:    "nested blocks close in order",
			src:     "{{#each xs}}{{#eq this 1}}one{{/eq}}{{/each}}",
			want:    "{{#each xs}}{{#eq__b2 this 1}}one{{/eq__b2}}{{/each}}",
			aliases: []string{"eq__b2"},
		},
		{
			name:    "inverted block helper",
			src:     "{{^eq a b}}x{{~/eq~}}",
			want:    "{{^eq__b2 a b}}x{{~/eq__b2~}}",
			aliases: []string{"eq__b2"},
		},
		{
			name:    "same helper inline and as block",
			src:     "{{eq a b}}{{#eq a b}}y{{/eq}}",
			want:    "{{{eq__2 a b}}}{{#eq__b2 a b}}y{{/eq__b2}}",
			aliases: []string{"eq__2", "eq__b2"},
		},
		{
			name: "blocks and else",
			src:  "{{#each items}}{{this}}{{else}}none{{/each}}",
			want: "{{#each items}}{{{this}}}{{else}}none{{/each}}",
		},
		{
			name:    "else if with sub expression",
			src:     "{{#if a}}1{{else if (eq a 2)}}2{{/if}}",
			want:    "{{#if a}}1{{else if (eq__2 a 2)}}2{{/if}}",
			aliases: []string{"eq__2"},
		},
		{
			name: "partials",
			src:  "{{> header}}{{> foo/bar}}",
			want: "{{> header}}{{> foo/bar}}",
		},
		{
			name: "comments copied",
			src:  "{{! repeat x }}{{!-- {{repeat}} --}}",
			want: "{{! repeat x }}{{!-- {{repeat}} --}}",
		},
		{
			name: "raw block content not rewritten",
			src:  "{{{{raw}}}}{{repeat x 2}}{{{{/raw}}}}{{name}}",
			want: "{{{{raw}}}}{{repeat x 2}}{{{{/raw}}}}{{{name}}}",
		},
		{
			name: "escaped mustache",
			src:  `\{{name}} {{name}}`,
			want: `\{{name}} {{{name}}}`,
		},
		{
			name:    "closing braces in strings",
			src:     `{{concat "}}" x}}`,
			want:    `{{{concat__2 "}}" x}}}`,
			aliases: []string{"concat__2"},
		},
		{
			name: "data variables",
			src:  "{{#each m}}{{@key}}={{.}}{{/each}}",
			want: "{{#each m}}{{{@key}}}={{{.}}}{{/each}}",
		},
		{
			name: "unterminated tag left to the parser",
			src:  "a {{name",
			want: "a {{name",
		},
	}

	known := []string{
		"repeat", "abbreviate", "eq", "concat", "uuid", "upperFirst", "---",
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, aliases := templating.Prepare(tt.src, known...)

			assert.Equal(t, tt.want, got)
			assert.ElementsMatch(t, tt.aliases, aliases)
		})
	}
}

func FuzzPrepare(f *testing.F) {
	f.Add("Hello {{name}}")
	f.Add(`{{#if (eq a "b")}}{{repeat x 2}}{{/if}}`)
	f.Add("{{!-- c --}}{{{raw}}}")
	f.Add(`\{{x}} {{`)

	f.Fuzz(func(t *testing.T, src string) {
		got, _ := templating.Prepare(src, "repeat", "eq")

		if !strings.Contains(src, "{{") {
			assert.Equal(t, src, got)
		}
	})
}
