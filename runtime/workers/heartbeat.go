package workers

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/process"
)

// ProcessStats is a sample of the server's own process.
type ProcessStats struct {
	PID        int32     `json:"pid"`
	RSS        uint64    `json:"rss_bytes"`
	CPUPercent float64   `json:"cpu_percent"`
	Status     string    `json:"status"`
	SampledAt  time.Time `json:"sampled_at"`
}

// HeartbeatWorker samples CPU, RAM and OS status of the process at a fixed
// interval and keeps the latest sample for the health endpoint.
type HeartbeatWorker struct {
	log      *slog.Logger
	interval time.Duration
	latest   atomic.Pointer[ProcessStats]
}

func NewHeartbeatWorker(log *slog.Logger, interval time.Duration) *HeartbeatWorker {
	return &HeartbeatWorker{log: log, interval: interval}
}

func (w *HeartbeatWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}
	w.sample(p)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.sample(p)
		}
	}
}

// Latest returns the last sample, false before the first one was taken.
func (w *HeartbeatWorker) Latest() (ProcessStats, bool) {
	stats := w.latest.Load()
	if stats == nil {
		return ProcessStats{}, false
	}
	return *stats, true
}

func (w *HeartbeatWorker) sample(p *process.Process) {
	stats, err := selfStats(p)
	if err != nil {
		w.log.Error("Failed to collect self stats", "err", err)
		return
	}
	w.latest.Store(&stats)
	w.log.Debug("Heartbeat", "rss", stats.RSS, "cpu", stats.CPUPercent, "status", stats.Status)
}

func selfStats(p *process.Process) (ProcessStats, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return ProcessStats{}, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return ProcessStats{}, err
	}
	status, err := p.Status()
	if err != nil {
		return ProcessStats{}, err
	}
	return ProcessStats{
		PID:        p.Pid,
		RSS:        memInfo.RSS,
		CPUPercent: cpuPercent,
		Status:     status,
		SampledAt:  time.Now().UTC(),
	}, nil
}
