package specfile

import (
	"errors"
	"fmt"
)

// ErrFileFormat is wrapped by every [FormatError].
var ErrFileFormat = errors.New("specfile: file format error")

// FormatError reports a recognized file whose contents cannot be parsed.
type FormatError struct {
	Path string
	Line int // 1-based; 0 when the problem is not tied to a line
	Msg  string
	Err  error
}

func (e *FormatError) Error() string {
	msg := e.Msg
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, msg)
	}
	return fmt.Sprintf("%s: %s", e.Path, msg)
}

func (e *FormatError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrFileFormat, e.Err}
	}
	return []error{ErrFileFormat}
}
