package sink

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/ivlev/thumbvid/internal/media"
	"github.com/ivlev/thumbvid/internal/probe"
)

func checkFFmpeg(t *testing.T) {
	t.Helper()
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(bin); err != nil {
			t.Skipf("%s not found in PATH, skipping test", bin)
		}
	}
}

var testProps = media.Properties{Width: 64, Height: 48, FrameRate: 10, FrameCount: 10}

func testFrame(v byte) *media.Frame {
	pix := make([]byte, testProps.FrameBytes())
	for i := range pix {
		pix[i] = v
	}
	return &media.Frame{Pix: pix, Width: testProps.Width, Height: testProps.Height}
}

func TestFFmpegSinkWritesContainer(t *testing.T) {
	checkFFmpeg(t)
	path := filepath.Join(t.TempDir(), "out.mp4")

	s, err := Create(context.Background(), path, testProps, Options{Encoder: "mpeg4"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for i := 0; i < 10; i++ {
		if err := s.WriteFrame(testFrame(byte(i * 20))); err != nil {
			t.Fatalf("WriteFrame %d: %v", i, err)
		}
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	props, err := probe.Probe(context.Background(), "", path)
	if err != nil {
		t.Fatalf("probe output: %v", err)
	}
	if props.FrameCount != 10 {
		t.Errorf("expected 10 frames in output, got %d", props.FrameCount)
	}
	if props.Width != 64 || props.Height != 48 {
		t.Errorf("expected 64x48, got %dx%d", props.Width, props.Height)
	}
}

func TestFFmpegSinkDiscardRemovesPartialOutput(t *testing.T) {
	checkFFmpeg(t)
	path := filepath.Join(t.TempDir(), "out.mp4")

	s, err := Create(context.Background(), path, testProps, Options{Encoder: "mpeg4"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := s.WriteFrame(testFrame(50)); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
	}

	s.Discard()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("partial output must be removed after Discard")
	}
}

func TestFFmpegSinkCloseAfterDiscardIsNoop(t *testing.T) {
	checkFFmpeg(t)
	path := filepath.Join(t.TempDir(), "out.mp4")

	s, err := Create(context.Background(), path, testProps, Options{Encoder: "mpeg4"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	s.Discard()

	if err := s.Close(); err != nil {
		t.Errorf("Close after Discard: %v", err)
	}
}
