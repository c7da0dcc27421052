package compose

import (
	"errors"
	"fmt"
)

// Every failure mode of a compositing request is a named kind; callers
// distinguish them with errors.Is through the CompositingError wrapper.
var (
	ErrOpen            = errors.New("video open failure")
	ErrLoad            = errors.New("thumbnail load failure")
	ErrDegenerateAsset = errors.New("thumbnail has zero dimensions")
	ErrOversizedAsset  = errors.New("scaled thumbnail exceeds video dimensions")
	ErrDecode          = errors.New("frame decode failure")
	ErrWrite           = errors.New("frame write failure")
	ErrFlush           = errors.New("output finalize failure")
)

// CompositingError wraps any failure of a compositing request with the
// operation name and the output path it was producing.
type CompositingError struct {
	Op   string
	Path string
	Err  error
}

func (e *CompositingError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *CompositingError) Unwrap() error {
	return e.Err
}

func wrapErr(op, path string, kind, cause error) error {
	if cause == nil {
		return &CompositingError{Op: op, Path: path, Err: kind}
	}
	if errors.Is(cause, kind) || isKind(cause) {
		return &CompositingError{Op: op, Path: path, Err: cause}
	}
	return &CompositingError{Op: op, Path: path, Err: fmt.Errorf("%w: %v", kind, cause)}
}

func isKind(err error) bool {
	for _, kind := range []error{ErrOpen, ErrLoad, ErrDegenerateAsset, ErrOversizedAsset, ErrDecode, ErrWrite, ErrFlush} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
