//go:build windows

package handler

// processCPUPercent is not sampled on Windows.
func processCPUPercent() float64 {
	return 0
}
