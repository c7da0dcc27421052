// Package source provides sequential readers over a video's frame stream.
package source

import (
	"github.com/ivlev/thumbvid/internal/media"
)

// FrameSource reads decoded frames in presentation order. NextFrame
// returns io.EOF once the stream is exhausted. A source is owned by a
// single compositing request and must be safe to Close at any point.
type FrameSource interface {
	Properties() media.Properties
	NextFrame() (*media.Frame, error)
	Rewind() error
	Close() error
}
