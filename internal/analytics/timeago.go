package analytics

import (
	"fmt"
	"time"
)

// TimeAgo renders a submission timestamp as a relative label. Granularity
// stops at weeks; very old responses still render as "N weeks ago".
func TimeAgo(t, now time.Time) string {
	minutes := int(now.Sub(t).Minutes())

	if minutes < 1 {
		return "Just now"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d minutes ago", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%d hour%s ago", hours, plural(hours))
	}

	days := hours / 24
	if days < 7 {
		return fmt.Sprintf("%d day%s ago", days, plural(days))
	}

	weeks := days / 7
	return fmt.Sprintf("%d week%s ago", weeks, plural(weeks))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
