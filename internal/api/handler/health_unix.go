//go:build linux || darwin

package handler

import (
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// cpuSampler remembers the previous rusage sample so each Stats call
// reports usage since the last one.
var cpuSampler struct {
	mu       sync.Mutex
	lastCPU  time.Duration
	lastWall time.Time
}

// processCPUPercent returns this process's CPU usage since the previous call,
// as a single-core percentage capped at 100. The first call reports 0.
func processCPUPercent() float64 {
	var rusage unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &rusage); err != nil {
		return 0
	}
	cpu := time.Duration(rusage.Utime.Nano() + rusage.Stime.Nano())
	now := time.Now()

	cpuSampler.mu.Lock()
	defer cpuSampler.mu.Unlock()

	prevCPU, prevWall := cpuSampler.lastCPU, cpuSampler.lastWall
	cpuSampler.lastCPU, cpuSampler.lastWall = cpu, now

	if prevWall.IsZero() {
		return 0
	}
	wall := now.Sub(prevWall)
	if wall <= 0 {
		return 0
	}

	pct := float64(cpu-prevCPU) / float64(wall) * 100
	return min(max(pct, 0), 100)
}
