package system

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"
)

func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось получить лимит файлов: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось установить лимит файлов: %v", err)
	}
}

var videoExtensions = []string{".mp4", ".avi", ".mov", ".mkv", ".wmv"}
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".pdf"}

// FindLatestVideo возвращает самый свежий видеофайл в папке.
func FindLatestVideo(dir string) (string, error) {
	path, err := findLatest(dir, videoExtensions)
	if err != nil {
		return "", fmt.Errorf("в папке %s не найдено видеофайлов", dir)
	}
	return path, nil
}

// FindLatestImage возвращает самое свежее изображение (или PDF) в папке.
func FindLatestImage(dir string) (string, error) {
	path, err := findLatest(dir, imageExtensions)
	if err != nil {
		return "", fmt.Errorf("в папке %s не найдено изображений", dir)
	}
	return path, nil
}

func findLatest(dir string, extensions []string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		matched := false
		for _, ext := range extensions {
			if strings.HasSuffix(strings.ToLower(f.Name()), ext) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", os.ErrNotExist
	}

	return latestFile, nil
}

func GetBestH264Encoder(ffmpegPath string) string {
	// Приоритеты:
	// 1. MacOS (VideoToolbox)
	// 2. NVIDIA (NVENC)
	// 3. Software (libx264)
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}

	encoders := []string{"h264_videotoolbox", "h264_nvenc"}

	cmd := exec.Command(ffmpegPath, "-encoders")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "libx264"
	}

	for _, enc := range encoders {
		if strings.Contains(string(out), enc) {
			return enc
		}
	}

	return "libx264"
}
