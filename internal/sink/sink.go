// Package sink provides sequential writers that encode a frame stream
// into a container file.
package sink

import (
	"github.com/ivlev/thumbvid/internal/media"
)

// FrameSink consumes frames in order. Close flushes and finalizes the
// container; Discard aborts the encode and removes any partial output.
// Exactly one of Close or Discard is called per sink.
type FrameSink interface {
	WriteFrame(*media.Frame) error
	Close() error
	Discard()
}
