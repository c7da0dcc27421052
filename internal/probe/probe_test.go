package probe

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestParseProperties(t *testing.T) {
	out := "width=1920\nheight=1080\nr_frame_rate=30/1\nnb_frames=90\nduration=3.000000\n"

	props, err := parseProperties(out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if props.Width != 1920 || props.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", props.Width, props.Height)
	}
	if props.FrameRate != 30 {
		t.Errorf("expected rate 30, got %f", props.FrameRate)
	}
	if props.FrameCount != 90 {
		t.Errorf("expected 90 frames, got %d", props.FrameCount)
	}
	if math.Abs(props.Duration()-3.0) > 0.0001 {
		t.Errorf("expected duration 3.0, got %f", props.Duration())
	}
}

func TestParsePropertiesNTSCRate(t *testing.T) {
	out := "width=1280\nheight=720\nr_frame_rate=30000/1001\nnb_frames=300\nduration=10.01\n"

	props, err := parseProperties(out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(props.FrameRate-29.97) > 0.01 {
		t.Errorf("expected rate ~29.97, got %f", props.FrameRate)
	}
}

func TestParsePropertiesMissingFrameCount(t *testing.T) {
	// Контейнеры вроде MKV не отдают nb_frames
	out := "width=640\nheight=480\nr_frame_rate=25/1\nnb_frames=N/A\nduration=4.0\n"

	props, err := parseProperties(out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if props.FrameCount != 100 {
		t.Errorf("expected fallback frame count 100, got %d", props.FrameCount)
	}
}

func TestProbeIgnoresStderrNoise(t *testing.T) {
	// Подменный ffprobe: валидные ключи в stdout, мусор с "=" в stderr.
	// В разбор должен попасть только stdout.
	script := filepath.Join(t.TempDir(), "ffprobe-stub")
	body := "#!/bin/sh\n" +
		"echo 'nb_frames=999' 1>&2\n" +
		"echo 'width=trash' 1>&2\n" +
		"echo 'width=640'\n" +
		"echo 'height=480'\n" +
		"echo 'r_frame_rate=25/1'\n" +
		"echo 'nb_frames=50'\n"
	if err := os.WriteFile(script, []byte(body), 0755); err != nil {
		t.Fatal(err)
	}

	props, err := Probe(context.Background(), script, "whatever.mp4")
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if props.Width != 640 || props.Height != 480 {
		t.Errorf("expected 640x480, got %dx%d", props.Width, props.Height)
	}
	if props.FrameCount != 50 {
		t.Errorf("expected 50 frames, got %d", props.FrameCount)
	}
}

func TestParsePropertiesInvalid(t *testing.T) {
	tests := []struct {
		name string
		out  string
	}{
		{"empty", ""},
		{"no resolution", "r_frame_rate=30/1\nnb_frames=10\n"},
		{"no rate", "width=640\nheight=480\nnb_frames=10\n"},
		{"no frames", "width=640\nheight=480\nr_frame_rate=30/1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseProperties(tt.out); err == nil {
				t.Errorf("expected error for %q", tt.out)
			}
		})
	}
}
