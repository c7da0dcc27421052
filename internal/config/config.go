package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config описывает один запрос компоновки. Собирается из флагов CLI
// или из job-файла.
type Config struct {
	Mode       string
	VideoPath  string
	ThumbPath  string
	QRText     string
	OutputPath string
	Anchor     string
	SizeRatio  float64
	Opacity    float64
	Duration   float64
	ShowStats  bool
}

// Env — настройки уровня инструмента, читаются из переменных окружения.
type Env struct {
	FFmpegPath  string `env:"THUMBVID_FFMPEG, default=ffmpeg"`
	FFprobePath string `env:"THUMBVID_FFPROBE, default=ffprobe"`
	Encoder     string `env:"THUMBVID_ENCODER"`
	Quality     int    `env:"THUMBVID_QUALITY, default=0"`
	Workers     int    `env:"THUMBVID_WORKERS, default=2"`
}

// LoadEnv reads tool-level settings from the environment.
func LoadEnv() (*Env, error) {
	env := &Env{}
	if err := envconfig.Process(context.Background(), env); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return env, nil
}
