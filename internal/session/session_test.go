package session

import (
	"errors"
	"testing"

	"github.com/vanshika/fintrace/investigator/internal/domain"
	"github.com/vanshika/fintrace/investigator/internal/ledger"
)

func testPayload() domain.Payload {
	records := make([]domain.TransactionRecord, 0, 12)
	for i := 1; i <= 12; i++ {
		dir := domain.DirectionIncoming
		if i > 6 {
			dir = domain.DirectionOutgoing
		}
		records = append(records, domain.TransactionRecord{
			ID:          int64(i),
			FromAddress: "0xsrc",
			ToAddress:   "0xW",
			Amount:      float64(i * 10),
			Direction:   dir,
			Timestamp:   "2024-03-01T10:00:00Z",
			Type:        "TRANSFER",
		})
	}
	return domain.Payload{
		Wallet: "0xW",
		GraphData: []domain.FlowEdge{
			{From: "0xA", To: "0xW", Amount: 500},
			{From: "0xB", To: "0xW", Amount: 300},
			{From: "0xW", To: "0xC", Amount: 700},
		},
		Transactions: records,
	}
}

func TestApplyViewportEvents(t *testing.T) {
	s := New(testPayload(), nil)

	for i := 0; i < 20; i++ {
		if err := s.Apply(Event{Type: EventZoomIn}); err != nil {
			t.Fatalf("zoom in: %v", err)
		}
	}
	if s.Viewport().Zoom != 3 {
		t.Fatalf("expected zoom clamped at 3, got %v", s.Viewport().Zoom)
	}

	events := []Event{
		{Type: EventDragStart, X: 10, Y: 10},
		{Type: EventDragMove, X: 40, Y: 25},
		{Type: EventDragEnd},
	}
	if err := s.Replay(events); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if s.Viewport().Pan.X != 30 || s.Viewport().Pan.Y != 15 {
		t.Fatalf("unexpected pan %+v", s.Viewport().Pan)
	}

	if err := s.Apply(Event{Type: EventReset}); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if s.Viewport().Zoom != 1 || s.Viewport().Pan.X != 0 {
		t.Fatalf("expected reset viewport, got %+v", s.Viewport())
	}
}

func TestApplyInteractionEvents(t *testing.T) {
	s := New(testPayload(), nil)

	_ = s.Apply(Event{Type: EventClick, ID: "0xA"})
	_ = s.Apply(Event{Type: EventHover, ID: "0xC"})
	snap := s.Snapshot()
	if snap.Scene.Panel == nil || snap.Scene.Panel.ID != "0xC" {
		t.Fatalf("expected hovered node in panel, got %+v", snap.Scene.Panel)
	}
	if s.Interaction().SelectedID != "0xA" {
		t.Fatalf("hover must not clear selection")
	}

	_ = s.Apply(Event{Type: EventUnhover, ID: "0xC"})
	if got := s.Snapshot().Scene.Panel; got == nil || got.ID != "0xA" {
		t.Fatalf("expected selection in panel after unhover, got %+v", got)
	}

	_ = s.Apply(Event{Type: EventClick, ID: "0xA"})
	if s.Interaction().SelectedID != "" {
		t.Fatalf("second click should clear selection")
	}

	_ = s.Apply(Event{Type: EventClick, ID: "0xNOPE"})
	if s.Interaction().SelectedID != "" {
		t.Fatalf("clicking an unknown id should be ignored")
	}
}

func TestApplyLedgerEvents(t *testing.T) {
	s := New(testPayload(), nil)

	if err := s.Apply(Event{Type: EventPage, Page: 9}); err != nil {
		t.Fatalf("page: %v", err)
	}
	if page := s.Snapshot().Ledger.Pagination.Page; page != 3 {
		t.Fatalf("expected page clamped to 3, got %d", page)
	}

	min := 30.0
	if err := s.Apply(Event{Type: EventFilter, MinAmount: &min, Direction: "incoming"}); err != nil {
		t.Fatalf("filter: %v", err)
	}
	view := s.Snapshot().Ledger
	if view.Pagination.Page != 1 || view.Pagination.TotalItems != 4 {
		t.Fatalf("unexpected filtered view: %+v", view.Pagination)
	}

	if err := s.Apply(Event{Type: EventSort, Key: "amount"}); err != nil {
		t.Fatalf("sort: %v", err)
	}
	if first := s.Snapshot().Ledger.Items[0]; first.Amount != 60 {
		t.Fatalf("expected largest amount first, got %v", first.Amount)
	}
	if err := s.Apply(Event{Type: EventSort, Key: "amount", Order: "asc"}); err != nil {
		t.Fatalf("sort asc: %v", err)
	}
	if s.Ledger().Query().SortDirection != ledger.Ascending {
		t.Fatalf("expected explicit ascending order")
	}
}

func TestApplyRejectsBadEventsWithoutChangingState(t *testing.T) {
	s := New(testPayload(), nil)
	before := s.Ledger().Query()

	if err := s.Apply(Event{Type: EventFilter, DateFrom: "01/03/2024"}); err == nil {
		t.Fatalf("expected invalid date error")
	}
	if s.Ledger().Query() != before {
		t.Fatalf("failed filter should leave query unchanged")
	}

	if err := s.Apply(Event{Type: "teleport"}); !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("expected ErrUnknownEvent, got %v", err)
	}
}

func TestLoadResetsState(t *testing.T) {
	s := New(testPayload(), nil)
	_ = s.Apply(Event{Type: EventZoomIn})
	_ = s.Apply(Event{Type: EventClick, ID: "0xA"})
	_ = s.Apply(Event{Type: EventSort, Key: "amount"})

	s.Load(testPayload())
	if s.Viewport().Zoom != 1 || s.Interaction().SelectedID != "" {
		t.Fatalf("expected fresh viewport and interaction")
	}
	if s.Ledger().Query() != ledger.DefaultQuery() {
		t.Fatalf("expected default ledger query")
	}
}

func TestModelCacheMemoizes(t *testing.T) {
	cache := NewModelCache(nil)
	p := testPayload()

	a := New(p, cache)
	b := New(p, cache)
	if a.Model() != b.Model() {
		t.Fatalf("expected shared model for identical payloads")
	}
	hits, misses := cache.Stats()
	if hits != 1 || misses != 1 {
		t.Fatalf("unexpected stats hits=%d misses=%d", hits, misses)
	}

	p.GraphData[0].Amount = 501
	New(p, cache)
	if cache.Len() != 2 {
		t.Fatalf("expected a new entry after edge change, got %d", cache.Len())
	}
}

func TestDigestSeparatesFields(t *testing.T) {
	a := Digest([]domain.FlowEdge{{From: "ab", To: "c", Amount: 1}}, "w")
	b := Digest([]domain.FlowEdge{{From: "a", To: "bc", Amount: 1}}, "w")
	if a == b {
		t.Fatalf("expected distinct digests")
	}
}

func TestParseEvents(t *testing.T) {
	script := `
# warm up
{"type":"zoom_in"}

{"type":"click","id":"0xA"}
{"type":"filter","minAmount":10,"dateTo":"2024-03-02"}
`
	events, err := ParseEvents(script)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(events) != 3 || events[1].ID != "0xA" || *events[2].MinAmount != 10 {
		t.Fatalf("unexpected events %+v", events)
	}

	if _, err := ParseEvents(`{"type":`); err == nil {
		t.Fatalf("expected parse error")
	}
}
