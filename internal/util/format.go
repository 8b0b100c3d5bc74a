package util

import (
	"fmt"
	"math"
	"time"
)

// Elapsed converts a duration to "HH:MM:SS", rounding to the nearest second.
func Elapsed(d time.Duration) string {
	return Timeify(int(d.Round(time.Second) / time.Second))
}

// Timeify converts seconds to "HH:MM:SS" format.
func Timeify(seconds int) string {
	hours := int(math.Floor(float64(seconds) / 3600))
	seconds %= 3600
	minutes := int(math.Floor(float64(seconds) / 60))
	seconds %= 60
	hours = int(math.Max(float64(hours), 0))
	minutes = int(math.Max(float64(minutes), 0))
	seconds = int(math.Max(float64(seconds), 0))
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// Sizeify converts bytes to a human-readable string (B, KiB, MiB, GiB, TiB).
func Sizeify(size int64) string {
	switch {
	case size >= int64(TiB):
		return fmt.Sprintf("%.2f TiB", float64(size)/float64(TiB))
	case size >= int64(GiB):
		return fmt.Sprintf("%.2f GiB", float64(size)/float64(GiB))
	case size >= int64(MiB):
		return fmt.Sprintf("%.2f MiB", float64(size)/float64(MiB))
	case size >= int64(KiB):
		return fmt.Sprintf("%.2f KiB", float64(size)/float64(KiB))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
