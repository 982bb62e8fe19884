package dashboard

import "fmt"

// FormatUptime renders seconds as "Hh Mm", "Mm Ss" or "Ss" using floor
// division, so 3661 is "1h 1m" and 125 is "2m 5s". Negative input counts as
// zero.
func FormatUptime(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, secs)
	}
	return fmt.Sprintf("%ds", secs)
}

func FormatCPU(percent float64) string {
	return fmt.Sprintf("%.1f%%", percent)
}

func FormatMemory(mb float64) string {
	if mb >= 1024 {
		return fmt.Sprintf("%.2f GB", mb/1024)
	}
	return fmt.Sprintf("%.0f MB", mb)
}

func FormatSizeMB(mb float64) string {
	return fmt.Sprintf("%.2f MB", mb)
}
