package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/ivlev/thumbvid/internal/media"
	"github.com/ivlev/thumbvid/internal/probe"
)

// FFmpegSource streams rgb24 rawvideo frames from an ffmpeg child process.
type FFmpegSource struct {
	ctx        context.Context
	ffmpegPath string
	path       string
	props      media.Properties

	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr bytes.Buffer
}

// OpenVideo probes the file and starts the decoder process.
func OpenVideo(ctx context.Context, ffmpegPath, ffprobePath, path string) (*FFmpegSource, error) {
	props, err := probe.Probe(ctx, ffprobePath, path)
	if err != nil {
		return nil, err
	}

	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}

	s := &FFmpegSource{
		ctx:        ctx,
		ffmpegPath: ffmpegPath,
		path:       path,
		props:      props,
	}
	if err := s.start(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FFmpegSource) start() error {
	cmd := exec.CommandContext(s.ctx, s.ffmpegPath,
		"-v", "error",
		"-i", s.path,
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-",
	)
	s.stderr.Reset()
	cmd.Stderr = &s.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe error: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start error: %w", err)
	}

	s.cmd = cmd
	s.stdout = stdout
	return nil
}

func (s *FFmpegSource) Properties() media.Properties {
	return s.props
}

// NextFrame reads exactly one frame worth of rgb24 bytes. The returned
// frame buffer comes from the shared pool; the caller releases it.
func (s *FFmpegSource) NextFrame() (*media.Frame, error) {
	if s.cmd == nil {
		return nil, io.EOF
	}
	frame := media.NewFrame(s.props.Width, s.props.Height)

	_, err := io.ReadFull(s.stdout, frame.Pix)
	if err == io.EOF {
		frame.Release()
		if werr := s.cmd.Wait(); werr != nil {
			s.cmd = nil
			return nil, fmt.Errorf("ffmpeg decode error: %v, log: %s", werr, strings.TrimSpace(s.stderr.String()))
		}
		s.cmd = nil
		return nil, io.EOF
	}
	if err != nil {
		// Неполный кадр посреди потока
		frame.Release()
		return nil, fmt.Errorf("truncated frame: %v, log: %s", err, strings.TrimSpace(s.stderr.String()))
	}

	return frame, nil
}

// Rewind restarts the decoder process from the beginning of the file.
func (s *FFmpegSource) Rewind() error {
	s.stop()
	return s.start()
}

func (s *FFmpegSource) Close() error {
	s.stop()
	return nil
}

func (s *FFmpegSource) stop() {
	if s.cmd == nil {
		return
	}
	s.stdout.Close()
	if s.cmd.Process != nil {
		s.cmd.Process.Kill()
	}
	s.cmd.Wait()
	s.cmd = nil
}
