package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownEvent is returned for event types the session does not handle.
var ErrUnknownEvent = errors.New("unknown session event")

// EventType names a user interaction.
type EventType string

const (
	EventZoomIn    EventType = "zoom_in"
	EventZoomOut   EventType = "zoom_out"
	EventWheel     EventType = "wheel"
	EventReset     EventType = "reset"
	EventDragStart EventType = "drag_start"
	EventDragMove  EventType = "drag_move"
	EventDragEnd   EventType = "drag_end"
	EventHover     EventType = "hover"
	EventUnhover   EventType = "unhover"
	EventClick     EventType = "click"
	EventSearch    EventType = "search"
	EventFilter    EventType = "filter"
	EventSort      EventType = "sort"
	EventPage      EventType = "page"
)

// Event is one interaction as recorded in a replay script.
type Event struct {
	Type  EventType `json:"type"`
	ID    string    `json:"id,omitempty"`
	X     float64   `json:"x,omitempty"`
	Y     float64   `json:"y,omitempty"`
	Delta float64   `json:"delta,omitempty"`
	Query string    `json:"query,omitempty"`
	Page  int       `json:"page,omitempty"`
	Key   string    `json:"key,omitempty"`
	Order string    `json:"order,omitempty"`

	MinAmount *float64 `json:"minAmount,omitempty"`
	MaxAmount *float64 `json:"maxAmount,omitempty"`
	Direction string   `json:"direction,omitempty"`
	TxType    string   `json:"txType,omitempty"`
	DateFrom  string   `json:"dateFrom,omitempty"`
	DateTo    string   `json:"dateTo,omitempty"`
}

// ParseEvents decodes a JSON-lines script. Blank lines and lines starting with # are skipped.
func ParseEvents(script string) ([]Event, error) {
	var events []Event
	for i, line := range strings.Split(script, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var ev Event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		events = append(events, ev)
	}
	return events, nil
}
