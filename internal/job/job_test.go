package job

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/thumbvid/internal/compose"
)

func writeBatchFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadBatch(t *testing.T) {
	path := writeBatchFile(t, `
version: "1.0"
jobs:
  - name: promo
    mode: overlay
    video: input/video/promo.mp4
    thumbnail: input/thumb/logo.png
    output: output/promo.mp4
    anchor: bottom-left
    size_ratio: 0.3
    opacity: 0.5
    duration: 5
  - name: lecture
    mode: intro
    video: input/video/lecture.mp4
    thumbnail: input/thumb/title.pdf
    output: output/lecture.mp4
    duration: 2
`)

	batch, err := ReadBatch(path)
	require.NoError(t, err)
	require.Len(t, batch.Jobs, 2)

	promo := batch.Jobs[0]
	assert.Equal(t, "overlay", promo.Mode)
	assert.Equal(t, "bottom-left", promo.Anchor)
	assert.Equal(t, 0.3, promo.SizeRatio)
	assert.Equal(t, 0.5, promo.Opacity)
	assert.Equal(t, 5.0, promo.Duration)

	lecture := batch.Jobs[1]
	assert.Equal(t, "intro", lecture.Mode)
	assert.Equal(t, "input/thumb/title.pdf", lecture.Thumbnail)
}

func TestReadBatchDefaults(t *testing.T) {
	path := writeBatchFile(t, `
jobs:
  - video: in.mp4
    qr_text: https://example.com
    output: out.mp4
`)

	batch, err := ReadBatch(path)
	require.NoError(t, err)
	require.Len(t, batch.Jobs, 1)

	j := batch.Jobs[0]
	assert.Equal(t, "overlay", j.Mode)
	assert.Equal(t, "top-right", j.Anchor)
	assert.Equal(t, 0.2, j.SizeRatio)
	assert.Equal(t, compose.DefaultOverlayOpacity, j.Opacity)
	assert.Equal(t, 3.0, j.Duration)
}

func TestReadBatchInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad mode", "jobs:\n  - mode: fade\n    video: a.mp4\n    thumbnail: t.png\n    output: o.mp4\n"},
		{"no video", "jobs:\n  - mode: overlay\n    thumbnail: t.png\n    output: o.mp4\n"},
		{"no output", "jobs:\n  - mode: overlay\n    video: a.mp4\n    thumbnail: t.png\n"},
		{"no thumbnail", "jobs:\n  - mode: overlay\n    video: a.mp4\n    output: o.mp4\n"},
		{"bad anchor", "jobs:\n  - mode: overlay\n    video: a.mp4\n    thumbnail: t.png\n    output: o.mp4\n    anchor: middle\n"},
		{"not yaml", "{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeBatchFile(t, tt.content)
			_, err := ReadBatch(path)
			assert.Error(t, err)
		})
	}
}

func TestWriteBatchRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	batch := &Batch{
		Version: "1.0",
		Jobs: []Job{
			{Mode: "overlay", Video: "in.mp4", Thumbnail: "t.png", Output: "out.mp4", Anchor: "center", SizeRatio: 0.25, Opacity: 0.8, Duration: 4},
		},
	}

	require.NoError(t, WriteBatch(batch, path))

	got, err := ReadBatch(path)
	require.NoError(t, err)
	require.Len(t, got.Jobs, 1)
	assert.Equal(t, batch.Jobs[0], got.Jobs[0])
}
