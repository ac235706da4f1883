package domain

import "time"

// Direction describes a transaction relative to the investigated wallet.
type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
	DirectionRelated  Direction = "related"
	// DirectionAll disables direction filtering.
	DirectionAll Direction = "all"
)

// ParseDirection maps free-form input onto a Direction; unknown values become DirectionAll.
func ParseDirection(raw string) Direction {
	switch Direction(raw) {
	case DirectionIncoming, DirectionOutgoing, DirectionRelated:
		return Direction(raw)
	default:
		return DirectionAll
	}
}

// TransactionRecord is one row of the investigation ledger. Records are never mutated.
type TransactionRecord struct {
	ID          int64     `json:"id"`
	FromAddress string    `json:"from_address"`
	ToAddress   string    `json:"to_address"`
	Amount      float64   `json:"amount"`
	Direction   Direction `json:"direction"`
	Timestamp   string    `json:"timestamp,omitempty"`
	Type        string    `json:"type,omitempty"`
	Suspicious  bool      `json:"suspicious,omitempty"`
}

// Time returns the parsed timestamp, or the zero time when it is missing or unparseable.
func (r TransactionRecord) Time() time.Time {
	ts, ok := ParseTimestamp(r.Timestamp)
	if !ok {
		return time.Time{}
	}
	return ts
}

// SortMillis is the ordering key for timestamp sorts; missing timestamps count as epoch 0.
func (r TransactionRecord) SortMillis() int64 {
	ts, ok := ParseTimestamp(r.Timestamp)
	if !ok {
		return 0
	}
	return ts.UnixMilli()
}
