// Package job reads YAML batch files describing compositing requests
// and runs them with a bounded worker pool.
package job

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/thumbvid/internal/asset"
	"github.com/ivlev/thumbvid/internal/compose"
)

// qrSize is the rendered size of generated QR-code thumbnails.
const qrSize = 512

// Job is one compositing request from a batch file.
type Job struct {
	Name      string  `yaml:"name"`
	Mode      string  `yaml:"mode"` // intro | overlay
	Video     string  `yaml:"video"`
	Thumbnail string  `yaml:"thumbnail"`
	QRText    string  `yaml:"qr_text"` // альтернатива thumbnail: QR-код со ссылкой
	Output    string  `yaml:"output"`
	Anchor    string  `yaml:"anchor"`
	SizeRatio float64 `yaml:"size_ratio"`
	Opacity   float64 `yaml:"opacity"`
	Duration  float64 `yaml:"duration"` // секунды интро или наложения
}

// Batch is a YAML file with a list of jobs.
type Batch struct {
	Version string `yaml:"version"`
	Jobs    []Job  `yaml:"jobs"`
}

// ReadBatch loads a batch file and applies per-job defaults.
func ReadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var batch Batch
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	for i := range batch.Jobs {
		batch.Jobs[i].applyDefaults()
		if err := batch.Jobs[i].Validate(); err != nil {
			return nil, fmt.Errorf("%s, job %d: %w", path, i+1, err)
		}
	}
	return &batch, nil
}

// WriteBatch writes a batch file (used to scaffold job templates).
func WriteBatch(batch *Batch, path string) error {
	data, err := yaml.Marshal(batch)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (j *Job) applyDefaults() {
	if j.Mode == "" {
		j.Mode = "overlay"
	}
	if j.Anchor == "" {
		j.Anchor = "top-right"
	}
	if j.SizeRatio == 0 {
		j.SizeRatio = 0.2
	}
	if j.Opacity == 0 {
		j.Opacity = compose.DefaultOverlayOpacity
	}
	if j.Duration == 0 {
		j.Duration = 3
	}
}

func (j Job) Validate() error {
	if j.Mode != "intro" && j.Mode != "overlay" {
		return fmt.Errorf("unknown mode %q (expected intro or overlay)", j.Mode)
	}
	if j.Video == "" {
		return fmt.Errorf("video path is required")
	}
	if j.Output == "" {
		return fmt.Errorf("output path is required")
	}
	if j.Thumbnail == "" && j.QRText == "" {
		return fmt.Errorf("either thumbnail or qr_text is required")
	}
	if _, err := compose.ParseAnchor(j.Anchor); err != nil {
		return err
	}
	return nil
}

func (j Job) loadAsset() (*asset.Asset, error) {
	if j.QRText != "" {
		return asset.GenerateQR(j.QRText, qrSize)
	}
	return asset.LoadAny(j.Thumbnail)
}

// Run executes the job against the compositing core.
func (j Job) Run(ctx context.Context, settings compose.Settings) error {
	a, err := j.loadAsset()
	if err != nil {
		return fmt.Errorf("%w: %v", compose.ErrLoad, err)
	}

	if j.Mode == "intro" {
		return compose.IntroSpliceAsset(ctx, j.Video, a, j.Output, j.Duration, settings)
	}

	anchor, err := compose.ParseAnchor(j.Anchor)
	if err != nil {
		return err
	}
	return compose.OverlayAsset(ctx, j.Video, a, j.Output, anchor, j.SizeRatio, j.Duration, j.Opacity, settings)
}
