package media

import "github.com/ivlev/thumbvid/internal/system"

// Properties describes a probed video stream. Immutable after probing.
type Properties struct {
	Width      int
	Height     int
	FrameRate  float64
	FrameCount int
}

// Duration returns the stream duration in seconds (0 when the rate is unknown).
func (p Properties) Duration() float64 {
	if p.FrameRate <= 0 {
		return 0
	}
	return float64(p.FrameCount) / p.FrameRate
}

// FrameBytes returns the size of one packed rgb24 frame.
func (p Properties) FrameBytes() int {
	return p.Width * p.Height * 3
}

// Frame is a single packed rgb24 frame buffer (stride = Width*3).
// Ownership is handed off stage to stage; whoever is done with it
// calls Release to return the buffer to the pool.
type Frame struct {
	Pix    []byte
	Width  int
	Height int
}

// NewFrame allocates a frame buffer for the given dimensions from the pool.
func NewFrame(width, height int) *Frame {
	return &Frame{
		Pix:    system.GetBuffer(width * height * 3),
		Width:  width,
		Height: height,
	}
}

func (f *Frame) Release() {
	if f == nil {
		return
	}
	system.PutBuffer(f.Pix)
	f.Pix = nil
}
