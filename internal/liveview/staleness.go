package liveview

import (
	"time"

	"github.com/dustin/go-humanize"
)

// StalenessLabel возвращает "updated 3 minutes ago" относительно now
func StalenessLabel(updated, now time.Time) string {
	if updated.IsZero() {
		return "never updated"
	}
	rel := humanize.RelTime(updated, now, "ago", "from now")
	if rel == "now" {
		return "updated just now"
	}
	return "updated " + rel
}
