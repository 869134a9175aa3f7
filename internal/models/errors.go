package models

import (
	"errors"
	"fmt"
	"strings"
)

// The domain error set is closed: every error a service surfaces to the
// boundary layer is one of these, so handlers can map each to a distinct
// client-facing response.
var (
	ErrBoardNotExists  = errors.New("board does not exist")
	ErrThreadNotExists = errors.New("thread does not exist")
	ErrFileNotExists   = errors.New("file does not exist")
)

// UnsupportedFileTypeError reports an attachment whose extension is outside
// the allowed set for its class.
type UnsupportedFileTypeError struct {
	Filename string
	Allowed  []string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("unsupported file type %q: allowed types are %s",
		e.Filename, strings.Join(e.Allowed, ", "))
}
