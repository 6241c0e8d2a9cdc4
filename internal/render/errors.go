package render

import (
	"errors"
	"fmt"
)

// ErrSurfaceClosed signals that the user closed the surface (window close,
// quit request). It is returned from Present and is not an error condition
// the caller should log as a failure.
var ErrSurfaceClosed = errors.New("render: surface closed")

// SetupError wraps a fatal rendering setup failure (missing runtime, driver
// or display). It carries a remediation hint for the user; callers should
// surface it once and stop, not retry.
type SetupError struct {
	Op   string
	Hint string
	Err  error
}

func (e *SetupError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("render: %s: %v (%s)", e.Op, e.Err, e.Hint)
	}
	return fmt.Sprintf("render: %s: %v", e.Op, e.Err)
}

func (e *SetupError) Unwrap() error { return e.Err }

// IsSetup reports whether err is a fatal setup error.
func IsSetup(err error) bool {
	var se *SetupError
	return errors.As(err, &se)
}
