// Package compose is the frame-accurate compositing core: it embeds a
// thumbnail into a video either as a held intro screen or as a blended
// corner overlay. The package itself never logs; every failure surfaces
// as a typed CompositingError and an aborted run never leaves a partial
// output file behind.
package compose

import (
	"context"
	"math"

	"github.com/ivlev/thumbvid/internal/asset"
	"github.com/ivlev/thumbvid/internal/sink"
	"github.com/ivlev/thumbvid/internal/source"
)

// DefaultOverlayOpacity matches the fixed overlay weight of the original
// tool.
const DefaultOverlayOpacity = 0.8

// Settings carries the encoder collaborators' configuration. Zero values
// mean "ffmpeg/ffprobe from PATH, auto-detected encoder, default quality".
type Settings struct {
	FFmpegPath  string
	FFprobePath string
	Encoder     string
	Quality     int
}

func (s Settings) sinkOptions() sink.Options {
	return sink.Options{FFmpegPath: s.FFmpegPath, Encoder: s.Encoder, Quality: s.Quality}
}

// IntroSplice prepends introSeconds worth of held thumbnail frames
// before the original video and writes the result to outPath.
func IntroSplice(ctx context.Context, videoPath, thumbPath, outPath string, introSeconds float64, s Settings) error {
	a, err := asset.LoadAny(thumbPath)
	if err != nil {
		return wrapErr("intro-splice", outPath, ErrLoad, err)
	}
	return IntroSpliceAsset(ctx, videoPath, a, outPath, introSeconds, s)
}

// IntroSpliceAsset is IntroSplice with an already-loaded thumbnail
// (generated QR codes, rendered PDFs).
func IntroSpliceAsset(ctx context.Context, videoPath string, a *asset.Asset, outPath string, introSeconds float64, s Settings) error {
	src, err := source.OpenVideo(ctx, s.FFmpegPath, s.FFprobePath, videoPath)
	if err != nil {
		return wrapErr("intro-splice", outPath, ErrOpen, err)
	}
	defer src.Close()

	return IntroSpliceSource(ctx, src, a, outPath, introSeconds, s)
}

// IntroSpliceSource is IntroSplice over an already-open source; the
// stream is not probed again. The caller keeps ownership of the source.
func IntroSpliceSource(ctx context.Context, src source.FrameSource, a *asset.Asset, outPath string, introSeconds float64, s Settings) error {
	const op = "intro-splice"

	props := src.Properties()
	req := Request{
		Mode:        ModeIntroSplice,
		IntroFrames: int(math.Round(props.FrameRate * introSeconds)),
	}

	return run(ctx, op, src, a, outPath, req, s)
}

// Overlay blends the thumbnail onto the leading overlaySeconds of the
// video at the given anchor, scaled to ratio of the video width, with
// the default opacity.
func Overlay(ctx context.Context, videoPath, thumbPath, outPath string, anchor Anchor, ratio, overlaySeconds float64, s Settings) error {
	a, err := asset.LoadAny(thumbPath)
	if err != nil {
		return wrapErr("overlay", outPath, ErrLoad, err)
	}
	return OverlayAsset(ctx, videoPath, a, outPath, anchor, ratio, overlaySeconds, DefaultOverlayOpacity, s)
}

// OverlayAsset is Overlay with an already-loaded thumbnail and an
// explicit opacity in [0, 1].
func OverlayAsset(ctx context.Context, videoPath string, a *asset.Asset, outPath string, anchor Anchor, ratio, overlaySeconds, opacity float64, s Settings) error {
	src, err := source.OpenVideo(ctx, s.FFmpegPath, s.FFprobePath, videoPath)
	if err != nil {
		return wrapErr("overlay", outPath, ErrOpen, err)
	}
	defer src.Close()

	return OverlaySource(ctx, src, a, outPath, anchor, ratio, overlaySeconds, opacity, s)
}

// OverlaySource is OverlayAsset over an already-open source; the stream
// is not probed again. The caller keeps ownership of the source.
func OverlaySource(ctx context.Context, src source.FrameSource, a *asset.Asset, outPath string, anchor Anchor, ratio, overlaySeconds, opacity float64, s Settings) error {
	const op = "overlay"

	props := src.Properties()
	placement, err := ResolvePlacement(props.Width, props.Height, a.Width(), a.Height(), ratio, anchor)
	if err != nil {
		return &CompositingError{Op: op, Path: outPath, Err: err}
	}

	req := Request{
		Mode:           ModeOverlay,
		DurationFrames: int(math.Round(props.FrameRate * overlaySeconds)),
		Placement:      placement,
		Opacity:        opacity,
	}

	return run(ctx, op, src, a, outPath, req, s)
}

// run opens the sink, drives the sequencer and guarantees that any
// failure after the sink exists discards the partial output.
func run(ctx context.Context, op string, src source.FrameSource, a *asset.Asset, outPath string, req Request, s Settings) error {
	snk, err := sink.Create(ctx, outPath, src.Properties(), s.sinkOptions())
	if err != nil {
		return wrapErr(op, outPath, ErrOpen, err)
	}
	return drive(op, outPath, &Sequencer{Source: src, Sink: snk, Asset: a}, req)
}

// drive runs the sequencer against an already-open sink and enforces the
// abort contract: the sink is either closed cleanly or discarded.
func drive(op, outPath string, seq *Sequencer, req Request) error {
	if err := seq.Run(req); err != nil {
		seq.Sink.Discard()
		return &CompositingError{Op: op, Path: outPath, Err: err}
	}

	if err := seq.Sink.Close(); err != nil {
		seq.Sink.Discard()
		return wrapErr(op, outPath, ErrFlush, err)
	}
	return nil
}
