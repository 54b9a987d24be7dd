// Package fault defines the error kinds reported by the renderer:
// resolution failures, unreadable files and template failures. Every
// error carries the operation and path that failed and matches both its
// kind sentinel and its cause with errors.Is.
package fault
