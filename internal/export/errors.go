package export

import (
	"errors"
	"fmt"
)

var (
	ErrRasterize = errors.New("rasterization failed")
	ErrEncode    = errors.New("encoding failed")
	ErrSink      = errors.New("saving export failed")
	ErrFormat    = errors.New("unsupported export format")
)

// Error reports a failed export step. It matches both its Kind sentinel and the
// underlying cause with errors.Is.
type Error struct {
	Op     string
	Format Format
	Kind   error
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("export %s: %s: %v", e.Format, e.Op, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func fail(op string, format Format, kind, err error) error {
	return &Error{Op: op, Format: format, Kind: kind, Err: err}
}
