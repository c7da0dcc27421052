package sink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/ivlev/thumbvid/internal/media"
	"github.com/ivlev/thumbvid/internal/system"
)

// Options controls the encoder invocation.
type Options struct {
	FFmpegPath string
	Encoder    string // пусто — автоопределение через system.GetBestH264Encoder
	Quality    int    // 0 — значение по умолчанию для выбранного энкодера
}

// FFmpegSink pipes rgb24 rawvideo frames into an ffmpeg encode process.
type FFmpegSink struct {
	path   string
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	done   bool
}

// Create opens the encoder for the given output path and stream properties.
func Create(ctx context.Context, path string, props media.Properties, opts Options) (*FFmpegSink, error) {
	ffmpegPath := opts.FFmpegPath
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}

	encoder := opts.Encoder
	if encoder == "" {
		encoder = system.GetBestH264Encoder(ffmpegPath)
	}
	quality := opts.Quality
	if quality == 0 {
		quality = 23
	}

	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgb24",
		"-video_size", fmt.Sprintf("%dx%d", props.Width, props.Height),
		"-framerate", fmt.Sprintf("%f", props.FrameRate),
		"-i", "-",
		"-an",
		"-pix_fmt", "yuv420p",
		"-c:v", encoder,
	}

	// Качество в зависимости от энкодера
	switch encoder {
	case "h264_videotoolbox":
		bitrate := quality * 100
		args = append(args, "-b:v", fmt.Sprintf("%dk", bitrate))
	case "h264_nvenc":
		args = append(args, "-cq", fmt.Sprintf("%d", quality))
	case "libx264":
		args = append(args, "-crf", fmt.Sprintf("%d", quality), "-preset", "medium")
	}

	args = append(args, path)

	cmd := exec.CommandContext(ctx, ffmpegPath, args...)
	s := &FFmpegSink{path: path, cmd: cmd}
	cmd.Stderr = &s.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}
	s.stdin = stdin

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}

	return s, nil
}

func (s *FFmpegSink) WriteFrame(frame *media.Frame) error {
	if _, err := s.stdin.Write(frame.Pix); err != nil {
		return fmt.Errorf("write raw error: %v, log: %s", err, strings.TrimSpace(s.stderr.String()))
	}
	return nil
}

// Close flushes the stream and waits for the muxer to finalize the file.
func (s *FFmpegSink) Close() error {
	if s.done {
		return nil
	}
	s.done = true

	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %v, log: %s", err, strings.TrimSpace(s.stderr.String()))
	}
	return nil
}

// Discard aborts the encode and removes the partial output file.
func (s *FFmpegSink) Discard() {
	if !s.done {
		s.done = true
		s.stdin.Close()
		if s.cmd.Process != nil {
			s.cmd.Process.Kill()
		}
		s.cmd.Wait()
	}
	os.Remove(s.path)
}
