package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/ivlev/thumbvid/internal/asset"
	"github.com/ivlev/thumbvid/internal/compose"
	"github.com/ivlev/thumbvid/internal/config"
	"github.com/ivlev/thumbvid/internal/job"
	"github.com/ivlev/thumbvid/internal/source"
	"github.com/ivlev/thumbvid/internal/system"
)

const qrSize = 512

func main() {
	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits()

	// Создаем нужные директории, если их нет
	dirs := []string{"input/video", "input/thumb", "output"}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}

	modePtr := flag.String("mode", "overlay", "Режим: intro (заставка перед видео) или overlay (наложение в углу)")
	videoPtr := flag.String("video", "", "Путь к видео (по умолчанию: самый свежий файл в input/video/)")
	thumbPtr := flag.String("thumb", "", "Путь к миниатюре: PNG/JPG/BMP или PDF (по умолчанию: самый свежий файл в input/thumb/)")
	qrPtr := flag.String("qr", "", "Сгенерировать миниатюру-QR-код из текста/ссылки вместо файла")
	outputPtr := flag.String("output", "", "Путь к результату (если пусто, генерируется автоматически в output/)")
	anchorPtr := flag.String("anchor", "top-right", "Позиция наложения: top-right, top-left, bottom-right, bottom-left, center")
	ratioPtr := flag.Float64("ratio", 0.2, "Размер наложения относительно ширины видео (0..1]")
	opacityPtr := flag.Float64("opacity", compose.DefaultOverlayOpacity, "Непрозрачность наложения [0..1]")
	durationPtr := flag.Float64("duration", 3, "Длительность заставки или наложения (сек)")
	jobPtr := flag.String("job", "", "YAML-файл с пакетом заданий (остальные флаги игнорируются)")
	workersPtr := flag.Int("workers", 0, "Параллельные задания в пакетном режиме (0 — из окружения)")
	encoderPtr := flag.String("encoder", "", "Энкодер: libx264, h264_nvenc, h264_videotoolbox (пусто — авто)")
	qualityPtr := flag.Int("quality", 0, "Качество видео (0 - авто, x264: CRF 1-51, VideoToolbox: битрейт = Q*100кбит/с)")
	statsPtr := flag.Bool("stats", false, "Показать отчет о производительности")

	flag.Parse()

	env, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("[-] Ошибка конфигурации: %v", err)
	}

	settings := compose.Settings{
		FFmpegPath:  env.FFmpegPath,
		FFprobePath: env.FFprobePath,
		Encoder:     env.Encoder,
		Quality:     env.Quality,
	}
	if *encoderPtr != "" {
		settings.Encoder = *encoderPtr
	}
	if *qualityPtr != 0 {
		settings.Quality = *qualityPtr
	}

	ctx := context.Background()

	// Пакетный режим
	if *jobPtr != "" {
		batch, err := job.ReadBatch(*jobPtr)
		if err != nil {
			log.Fatalf("[-] Ошибка чтения пакета заданий: %v", err)
		}

		workers := *workersPtr
		if workers <= 0 {
			workers = env.Workers
		}

		fmt.Printf("[*] Пакет: %s | Заданий: %d | Потоков: %d\n", *jobPtr, len(batch.Jobs), workers)
		start := time.Now()
		if err := job.RunBatch(ctx, batch, workers, settings); err != nil {
			log.Fatalf("[-] Пакет завершился с ошибкой: %v", err)
		}
		fmt.Printf("[+++] Успех! Обработано заданий: %d за %.2fs\n", len(batch.Jobs), time.Since(start).Seconds())
		return
	}

	cfg := config.Config{
		Mode:       *modePtr,
		VideoPath:  *videoPtr,
		ThumbPath:  *thumbPtr,
		QRText:     *qrPtr,
		OutputPath: *outputPtr,
		Anchor:     *anchorPtr,
		SizeRatio:  *ratioPtr,
		Opacity:    *opacityPtr,
		Duration:   *durationPtr,
		ShowStats:  *statsPtr,
	}

	if err := runSingle(ctx, cfg, settings); err != nil {
		log.Fatalf("[-] Ошибка: %v", err)
	}
}

func runSingle(ctx context.Context, cfg config.Config, settings compose.Settings) error {
	videoPath := cfg.VideoPath
	if videoPath == "" {
		latest, err := system.FindLatestVideo("input/video")
		if err != nil {
			return fmt.Errorf("%v. Положите видео в input/video/", err)
		}
		videoPath = latest
		fmt.Printf("[*] Выбрано видео: %s\n", videoPath)
	}

	// Миниатюра: файл или QR-код
	var a *asset.Asset
	var err error
	if cfg.QRText != "" {
		a, err = asset.GenerateQR(cfg.QRText, qrSize)
		if err != nil {
			return fmt.Errorf("генерация QR-кода: %v", err)
		}
		fmt.Printf("[*] Миниатюра: QR-код %dx%d\n", a.Width(), a.Height())
	} else {
		thumbPath := cfg.ThumbPath
		if thumbPath == "" {
			latest, err := system.FindLatestImage("input/thumb")
			if err != nil {
				return fmt.Errorf("%v. Положите изображение в input/thumb/", err)
			}
			thumbPath = latest
			fmt.Printf("[*] Выбрана миниатюра: %s\n", thumbPath)
		}
		a, err = asset.LoadAny(thumbPath)
		if err != nil {
			return fmt.Errorf("загрузка миниатюры: %v", err)
		}
	}

	// Источник открывается один раз: и для панели информации,
	// и для самой компоновки
	src, err := source.OpenVideo(ctx, settings.FFmpegPath, settings.FFprobePath, videoPath)
	if err != nil {
		return err
	}
	defer src.Close()
	props := src.Properties()

	fmt.Println("--- [VIDEO INFO] ---")
	fmt.Printf("[*] Разрешение: %dx%d @ %.2f FPS\n", props.Width, props.Height, props.FrameRate)
	fmt.Printf("[*] Кадров: %d | Длительность: %.1fs\n", props.FrameCount, props.Duration())
	fmt.Println("--------------------")

	outputPath := cfg.OutputPath
	if outputPath == "" {
		base := filepath.Base(videoPath)
		outputPath = filepath.Join("output", "thumbnail_"+base)
	}

	start := time.Now()
	emitted := props.FrameCount

	switch cfg.Mode {
	case "intro":
		fmt.Printf("[*] Заставка %.1fs перед видео...\n", cfg.Duration)
		emitted += int(math.Round(props.FrameRate * cfg.Duration))
		err = compose.IntroSpliceSource(ctx, src, a, outputPath, cfg.Duration, settings)
	case "overlay":
		anchor, perr := compose.ParseAnchor(cfg.Anchor)
		if perr != nil {
			return perr
		}
		fmt.Printf("[*] Наложение %s, %.0f%% ширины, %.1fs...\n", anchor, cfg.SizeRatio*100, cfg.Duration)
		err = compose.OverlaySource(ctx, src, a, outputPath, anchor, cfg.SizeRatio, cfg.Duration, cfg.Opacity, settings)
	default:
		return fmt.Errorf("неизвестный режим %q (ожидается intro или overlay)", cfg.Mode)
	}
	if err != nil {
		return err
	}

	if cfg.ShowStats {
		fmt.Println(system.CollectRunStats(emitted, time.Since(start)).Report())
	}

	fmt.Printf("[+++] Успех! Видео сохранено: %s\n", outputPath)
	return nil
}
