package timeline

import (
	"fmt"
	"time"

	"github.com/vanshika/fintrace/investigator/internal/domain"
)

// Unknown is shown for missing or unparseable timestamps.
const Unknown = "Unknown"

const dateDisplay = "Jan 2, 2006"

// Relative formats raw relative to now: "just now", "5m ago", "3h ago", "2d ago", and
// the calendar date once a week has passed. Future timestamps are shown as dates.
func Relative(raw string, now time.Time) string {
	ts, ok := domain.ParseTimestamp(raw)
	if !ok {
		return Unknown
	}
	diff := now.Sub(ts)
	switch {
	case diff < 0:
		return ts.Format(dateDisplay)
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff/time.Minute))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff/time.Hour))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff/(24*time.Hour)))
	default:
		return ts.Format(dateDisplay)
	}
}

// Absolute formats raw as a full UTC date and time, or Unknown.
func Absolute(raw string) string {
	ts, ok := domain.ParseTimestamp(raw)
	if !ok {
		return Unknown
	}
	return ts.Format("2006-01-02 15:04:05")
}
