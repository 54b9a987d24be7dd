// Package helpers is the template helper library. Each Helper is a
// plain Go value with a declared arity; the templating package binds
// helpers into a handlebars environment.
//
// Two sets are exposed. Bundle carries the string helpers used by the
// bundle renderer; Full adds document, identifier, path and hashing
// helpers for the index and inline renderers. Both include the common
// string and comparison helpers.
package helpers
