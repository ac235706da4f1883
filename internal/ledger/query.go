package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/vanshika/fintrace/investigator/internal/domain"
)

// SortKey is the single active sort column.
type SortKey string

const (
	SortByAmount    SortKey = "amount"
	SortByTimestamp SortKey = "timestamp"
)

// SortDirection orders the active sort column.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// PageSize is fixed for the investigation ledger.
const PageSize = 5

const dateLayout = "2006-01-02"

// Query captures filter, sort and page state. Transitions return a new Query; any filter
// or sort change moves back to the first page.
type Query struct {
	MinAmount     *float64         `json:"minAmount,omitempty"`
	MaxAmount     *float64         `json:"maxAmount,omitempty"`
	Direction     domain.Direction `json:"direction"`
	TypeSubstring string           `json:"type,omitempty"`
	DateFrom      *time.Time       `json:"dateFrom,omitempty"`
	DateTo        *time.Time       `json:"dateTo,omitempty"`
	SortKey       SortKey          `json:"sortKey"`
	SortDirection SortDirection    `json:"sortDirection"`
	Page          int              `json:"page"`
}

// DefaultQuery is applied whenever a new report is loaded.
func DefaultQuery() Query {
	return Query{
		Direction:     domain.DirectionAll,
		SortKey:       SortByTimestamp,
		SortDirection: Descending,
		Page:          1,
	}
}

// WithAmountRange sets inclusive amount bounds; nil disables a bound.
func (q Query) WithAmountRange(min, max *float64) Query {
	q.MinAmount = copyFloat(min)
	q.MaxAmount = copyFloat(max)
	q.Page = 1
	return q
}

// WithDirection filters on direction; DirectionAll disables the filter.
func (q Query) WithDirection(direction domain.Direction) Query {
	q.Direction = domain.ParseDirection(string(direction))
	q.Page = 1
	return q
}

// WithType sets the case-insensitive type substring filter.
func (q Query) WithType(substring string) Query {
	q.TypeSubstring = strings.TrimSpace(substring)
	q.Page = 1
	return q
}

// WithDateRange sets the date window. Only the calendar day of each bound is used and the
// end day is included in full.
func (q Query) WithDateRange(from, to *time.Time) Query {
	q.DateFrom = truncateDay(from)
	q.DateTo = truncateDay(to)
	q.Page = 1
	return q
}

// SortBy selects a column. Selecting the active column toggles direction; a new column
// starts descending.
func (q Query) SortBy(key SortKey) Query {
	if key != SortByAmount {
		key = SortByTimestamp
	}
	if q.SortKey == key {
		if q.SortDirection == Ascending {
			q.SortDirection = Descending
		} else {
			q.SortDirection = Ascending
		}
	} else {
		q.SortKey = key
		q.SortDirection = Descending
	}
	q.Page = 1
	return q
}

// WithSort sets column and direction explicitly.
func (q Query) WithSort(key SortKey, direction SortDirection) Query {
	if key != SortByAmount {
		key = SortByTimestamp
	}
	if direction != Ascending {
		direction = Descending
	}
	q.SortKey = key
	q.SortDirection = direction
	q.Page = 1
	return q
}

// WithPage requests a page. The value is clamped when the view is evaluated.
func (q Query) WithPage(page int) Query {
	q.Page = page
	return q
}

// Matches reports whether a record passes every active filter.
func (q Query) Matches(r domain.TransactionRecord) bool {
	if q.MinAmount != nil && r.Amount < *q.MinAmount {
		return false
	}
	if q.MaxAmount != nil && r.Amount > *q.MaxAmount {
		return false
	}
	if q.Direction != "" && q.Direction != domain.DirectionAll && r.Direction != q.Direction {
		return false
	}
	if q.TypeSubstring != "" && !strings.Contains(strings.ToLower(r.Type), strings.ToLower(q.TypeSubstring)) {
		return false
	}
	return q.matchesDate(r)
}

// matchesDate keeps records without a usable timestamp.
func (q Query) matchesDate(r domain.TransactionRecord) bool {
	if q.DateFrom == nil && q.DateTo == nil {
		return true
	}
	ts, ok := domain.ParseTimestamp(r.Timestamp)
	if !ok {
		return true
	}
	if q.DateFrom != nil && ts.Before(*q.DateFrom) {
		return false
	}
	if q.DateTo != nil && !ts.Before(q.DateTo.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// ParseDate parses a YYYY-MM-DD bound. An empty string yields nil.
func ParseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	day, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", raw, err)
	}
	return &day, nil
}

func truncateDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	day := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	return &day
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
