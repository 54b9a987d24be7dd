// Package stamper builds render payload entries from build stamp
// files and NAME=VALUE variables.
//
// A stamp file holds "KEY VALUE" lines, the first space being the
// delimiter. Variable values may reference stamps with single-brace
// {KEY} placeholders, which are substituted with
// valyala/fasttemplate. Unknown placeholders are kept as-is.
package stamper
