// Package partials expands glob patterns into partial templates and
// derives a stable name for each match from the pattern's wildcard
// structure: with pattern "templates/*/*.hbs", the file
// "templates/foo/bar.hbs" becomes the partial "foo/bar".
//
// Names that collide are settled by a single DuplicatePolicy; the
// default keeps the last match.
package partials
