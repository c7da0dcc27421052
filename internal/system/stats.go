package system

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// RunStats агрегирует показатели одного прогона компоновки.
type RunStats struct {
	Frames     int
	Elapsed    time.Duration
	CPUPercent float64
	RSSMb      float64
}

// CollectRunStats снимает показатели процесса через gopsutil.
func CollectRunStats(frames int, elapsed time.Duration) RunStats {
	stats := RunStats{Frames: frames, Elapsed: elapsed}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err == nil {
		if mem, err := proc.MemoryInfo(); err == nil && mem != nil {
			stats.RSSMb = float64(mem.RSS) / (1024 * 1024)
		}
	}

	return stats
}

func (s RunStats) Report() string {
	fps := 0.0
	if s.Elapsed.Seconds() > 0 {
		fps = float64(s.Frames) / s.Elapsed.Seconds()
	}
	return fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Frames: %d\n"+
			"Total Time: %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"CPU: %.1f%%\n"+
			"RSS: %.1f MB\n"+
			"----------------------------",
		s.Frames, s.Elapsed.Seconds(), fps, s.CPUPercent, s.RSSMb,
	)
}
