package config

import "testing"

func TestLoadEnvDefaults(t *testing.T) {
	env, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if env.FFmpegPath != "ffmpeg" {
		t.Errorf("expected default ffmpeg path, got %q", env.FFmpegPath)
	}
	if env.FFprobePath != "ffprobe" {
		t.Errorf("expected default ffprobe path, got %q", env.FFprobePath)
	}
	if env.Workers != 2 {
		t.Errorf("expected default 2 workers, got %d", env.Workers)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("THUMBVID_FFMPEG", "/opt/ffmpeg/bin/ffmpeg")
	t.Setenv("THUMBVID_ENCODER", "h264_nvenc")
	t.Setenv("THUMBVID_QUALITY", "28")

	env, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if env.FFmpegPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("ffmpeg path override not applied: %q", env.FFmpegPath)
	}
	if env.Encoder != "h264_nvenc" {
		t.Errorf("encoder override not applied: %q", env.Encoder)
	}
	if env.Quality != 28 {
		t.Errorf("quality override not applied: %d", env.Quality)
	}
}
