package fault

import (
	"errors"
	"fmt"
)

// Kind sentinels. Match them with errors.Is.
var (
	ErrResolution = errors.New("resolution error")
	ErrIO         = errors.New("io error")
	ErrTemplate   = errors.New("template error")
)

// Error is a classified failure.
type Error struct {
	Kind error
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg += ": " + e.Op
	}

	if e.Path != "" {
		msg += fmt.Sprintf(" %q", e.Path)
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap exposes both the kind sentinel and the cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

// Resolution reports an identifier or pattern that cannot be located.
func Resolution(op, path string, err error) error {
	return &Error{Kind: ErrResolution, Op: op, Path: path, Err: err}
}

// IO reports a file that cannot be read.
func IO(op, path string, err error) error {
	return &Error{Kind: ErrIO, Op: op, Path: path, Err: err}
}

// Template reports a compilation or evaluation failure.
func Template(op, path string, err error) error {
	return &Error{Kind: ErrTemplate, Op: op, Path: path, Err: err}
}

// Is reports whether err carries any fault kind.
func Is(err error) bool {
	return errors.Is(err, ErrResolution) ||
		errors.Is(err, ErrIO) ||
		errors.Is(err, ErrTemplate)
}
