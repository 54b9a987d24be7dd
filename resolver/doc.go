// Package resolver turns artifact identifiers into absolute filesystem
// paths. An identifier is either a plain (possibly glob bearing) path,
// resolved against a base directory, or a "module#sub/path" reference
// whose module part is located through a ModuleResolver such as
// GoModules.
package resolver
