// Package probe reads intrinsic video properties through ffprobe.
package probe

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"github.com/ivlev/thumbvid/internal/media"
)

// Probe returns the properties of the first video stream in the file.
func Probe(ctx context.Context, ffprobePath, path string) (media.Properties, error) {
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}

	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,r_frame_rate,nb_frames",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1",
		path,
	)
	// stderr отдельно от потока key=value: предупреждения ffprobe
	// не должны попадать в разбор
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return media.Properties{}, fmt.Errorf("ffprobe %s: %v, log: %s", path, err, strings.TrimSpace(stderr.String()))
	}

	props, err := parseProperties(string(out))
	if err != nil {
		return media.Properties{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return props, nil
}

// parseProperties decodes ffprobe key=value output.
func parseProperties(out string) (media.Properties, error) {
	var props media.Properties
	duration := 0.0

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		key, value, ok := strings.Cut(line, "=")
		if !ok || value == "N/A" {
			continue
		}
		switch key {
		case "width":
			props.Width, _ = strconv.Atoi(value)
		case "height":
			props.Height, _ = strconv.Atoi(value)
		case "r_frame_rate":
			props.FrameRate = parseRate(value)
		case "nb_frames":
			props.FrameCount, _ = strconv.Atoi(value)
		case "duration":
			duration, _ = strconv.ParseFloat(value, 64)
		}
	}

	if props.Width <= 0 || props.Height <= 0 {
		return media.Properties{}, fmt.Errorf("не удалось определить разрешение видео")
	}
	if props.FrameRate <= 0 {
		return media.Properties{}, fmt.Errorf("не удалось определить частоту кадров")
	}

	// Некоторые контейнеры не хранят nb_frames, восстанавливаем из длительности
	if props.FrameCount <= 0 && duration > 0 {
		props.FrameCount = int(math.Round(duration * props.FrameRate))
	}
	if props.FrameCount <= 0 {
		return media.Properties{}, fmt.Errorf("не удалось определить количество кадров")
	}

	return props, nil
}

// parseRate handles ffprobe rational rates like "30000/1001".
func parseRate(value string) float64 {
	num, den, ok := strings.Cut(value, "/")
	if !ok {
		rate, _ := strconv.ParseFloat(value, 64)
		return rate
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return 0
	}
	return n / d
}
