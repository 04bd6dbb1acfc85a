package format

import (
	"fmt"
	"strconv"
	"strings"
)

// Bytes formats a byte count into a human-readable string with 1 decimal
// place. Thresholds: <1KB → B, <1MB → KB, <1GB → MB, <1TB → GB, else TB.
func Bytes(bytes uint64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
		tb = gb * 1024
	)
	switch {
	case bytes < kb:
		return fmt.Sprintf("%d B", bytes)
	case bytes < mb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kb)
	case bytes < gb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/mb)
	case bytes < tb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/gb)
	default:
		return fmt.Sprintf("%.1f TB", float64(bytes)/tb)
	}
}

// Speed formats a bytes-per-second rate, e.g. "1.5 MB/s". Negative values
// clamp to 0.
func Speed(bps float64) string {
	if bps < 0 {
		bps = 0
	}
	return Bytes(uint64(bps)) + "/s"
}

// Number formats an integer with comma separators every three digits.
// Example: 12345678 → "12,345,678".
func Number(n uint64) string {
	return insertCommas(strconv.FormatUint(n, 10))
}

// Percent formats a percentage with one decimal place.
func Percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// Uptime formats a second count as a compact day/hour/minute string.
// Examples: 42 → "42s", 3700 → "1h 1m", 90061 → "1d 1h".
func Uptime(seconds uint64) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
	case seconds < 86400:
		return fmt.Sprintf("%dh %dm", seconds/3600, (seconds%3600)/60)
	default:
		return fmt.Sprintf("%dd %dh", seconds/86400, (seconds%86400)/3600)
	}
}

// insertCommas inserts comma separators into a digit string every 3 digits
// from the right.
func insertCommas(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var buf strings.Builder
	lead := n % 3
	if lead > 0 {
		buf.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(s[i : i+3])
	}
	return buf.String()
}
