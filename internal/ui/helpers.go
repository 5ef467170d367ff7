package ui

import (
	"fmt"
	"strings"

	"github.com/reelgrid/reelgrid/internal/gallery"
)

// describeError words permission rejections differently from generic
// failures so the user knows to sign in rather than retry.
func describeError(err error) string {
	if gallery.IsAuthorization(err) {
		return "permission denied: sign in with REELGRID_EMAIL/REELGRID_PASSWORD or set api_key"
	}
	return err.Error()
}

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

// formatCount renders counters compactly: 950 stays 950, 1200 becomes
// 1.2k, 3400000 becomes 3.4m.
func formatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return trimZero(fmt.Sprintf("%.1fm", float64(n)/1_000_000))
	case n >= 1_000:
		return trimZero(fmt.Sprintf("%.1fk", float64(n)/1_000))
	default:
		return fmt.Sprintf("%d", n)
	}
}

func trimZero(s string) string {
	return strings.Replace(s, ".0", "", 1)
}

// padRight pads s with spaces to at least width characters.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}
