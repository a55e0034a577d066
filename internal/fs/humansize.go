package fs

import "fmt"

// HumanSize formats a byte count with binary units (B, KiB, MiB, GiB, TiB).
func HumanSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB"}
	value := float64(bytes) / unit
	idx := 0
	for value >= unit && idx < len(suffixes)-1 {
		value /= unit
		idx++
	}
	return fmt.Sprintf("%.2f %s", value, suffixes[idx])
}
