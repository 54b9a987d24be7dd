// Package templating renders handlebars templates against a data
// payload.
//
// Three engines share one render protocol: Bundle renders a single
// template file with a reduced helper set, Multi renders a list of
// template files (usually glob expanded) and Inline renders a
// map of output qualifiers to template text. Every Render call
// builds a fresh environment holding the helper set and the loaded
// partials, so engines are immutable and safe for concurrent use.
//
// Output is never HTML escaped. Create builds the engine selected
// by an Options value, resolving every path through the resolver
// package.
package templating
