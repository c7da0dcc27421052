package compose

import (
	"errors"
	"fmt"
	"io"

	"github.com/ivlev/thumbvid/internal/asset"
	"github.com/ivlev/thumbvid/internal/media"
	"github.com/ivlev/thumbvid/internal/sink"
	"github.com/ivlev/thumbvid/internal/source"
)

// Mode selects the frame-emission strategy.
type Mode int

const (
	// ModeIntroSplice prepends held thumbnail frames before the video.
	ModeIntroSplice Mode = iota
	// ModeOverlay blends the thumbnail onto the leading frames.
	ModeOverlay
)

// Request is one resolved frame-emission run: frame counts and pixel
// geometry are already derived from seconds and the probed frame rate.
type Request struct {
	Mode           Mode
	IntroFrames    int       // ModeIntroSplice
	DurationFrames int       // ModeOverlay
	Placement      Placement // ModeOverlay
	Opacity        float64   // ModeOverlay
}

// Sequencer drives one compositing request: it pulls frames from the
// source, blends where the strategy says so and pushes every emitted
// frame to the sink. It owns the resized-thumbnail cache for the
// lifetime of the request and shares no state with other requests.
type Sequencer struct {
	Source source.FrameSource
	Sink   sink.FrameSink
	Asset  *asset.Asset
}

func (s *Sequencer) Run(req Request) error {
	switch req.Mode {
	case ModeIntroSplice:
		return s.runIntroSplice(req)
	case ModeOverlay:
		return s.runOverlay(req)
	default:
		return fmt.Errorf("unknown compositing mode %d", req.Mode)
	}
}

// runIntroSplice emits IntroFrames copies of the thumbnail stretched to
// the full video size (aspect is deliberately not preserved here), then
// the source frames unmodified. Emitted count = IntroFrames + FrameCount.
func (s *Sequencer) runIntroSplice(req Request) error {
	props := s.Source.Properties()

	intro := &media.Frame{
		Pix:    resizeRGB(s.Asset.Image(), props.Width, props.Height),
		Width:  props.Width,
		Height: props.Height,
	}
	for i := 0; i < req.IntroFrames; i++ {
		if err := s.Sink.WriteFrame(intro); err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
	}

	return s.emitBody(0, nil, req)
}

// runOverlay makes a single linear pass: one frame in, one frame out,
// the first DurationFrames frames blended, the rest passed through.
func (s *Sequencer) runOverlay(req Request) error {
	b := newBlender(s.Asset.Image(), req.Placement.ScaledW, req.Placement.ScaledH)
	return s.emitBody(req.DurationFrames, b, req)
}

// emitBody streams the source to the sink, blending frames with index
// below blendUntil. The pass ends when the source is exhausted.
func (s *Sequencer) emitBody(blendUntil int, b *blender, req Request) error {
	for i := 0; ; i++ {
		frame, err := s.Source.NextFrame()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrDecode, err)
		}

		if b != nil && i < blendUntil {
			b.blendInto(frame, req.Placement.X, req.Placement.Y, req.Opacity)
		}

		werr := s.Sink.WriteFrame(frame)
		frame.Release()
		if werr != nil {
			return fmt.Errorf("%w: %v", ErrWrite, werr)
		}
	}
}
