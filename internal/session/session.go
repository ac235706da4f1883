package session

import (
	"fmt"

	"github.com/vanshika/fintrace/investigator/internal/domain"
	"github.com/vanshika/fintrace/investigator/internal/flowgraph"
	"github.com/vanshika/fintrace/investigator/internal/ledger"
)

// Session owns the investigation state for one payload. It is not safe for concurrent use.
type Session struct {
	cache       *ModelCache
	payload     domain.Payload
	model       *flowgraph.Model
	viewport    flowgraph.Viewport
	interaction flowgraph.Interaction
	ledger      *ledger.Engine
}

// Snapshot is the rendered state after the latest event.
type Snapshot struct {
	Scene  flowgraph.Scene `json:"scene"`
	Ledger ledger.View     `json:"ledger"`
}

// New starts a session for p. A nil cache gets a private one.
func New(p domain.Payload, cache *ModelCache) *Session {
	if cache == nil {
		cache = NewModelCache(nil)
	}
	s := &Session{cache: cache, ledger: ledger.NewEngine(nil)}
	s.Load(p)
	return s
}

// Load replaces the payload. Viewport, interaction and ledger query start over.
func (s *Session) Load(p domain.Payload) {
	s.payload = p
	s.model = s.cache.Get(p.GraphData, p.Wallet)
	s.viewport = flowgraph.NewViewport()
	s.interaction = flowgraph.Interaction{}
	s.ledger.Load(p.Transactions)
}

// Payload returns the loaded payload.
func (s *Session) Payload() domain.Payload { return s.payload }

// Model returns the positioned flow graph.
func (s *Session) Model() *flowgraph.Model { return s.model }

// Viewport returns the current zoom and pan.
func (s *Session) Viewport() flowgraph.Viewport { return s.viewport }

// Interaction returns the current hover, selection and search state.
func (s *Session) Interaction() flowgraph.Interaction { return s.interaction }

// Ledger exposes the ledger engine.
func (s *Session) Ledger() *ledger.Engine { return s.ledger }

// Apply runs one event. A failed event leaves the session unchanged.
func (s *Session) Apply(ev Event) error {
	switch ev.Type {
	case EventZoomIn:
		s.viewport = s.viewport.ZoomIn()
	case EventZoomOut:
		s.viewport = s.viewport.ZoomOut()
	case EventWheel:
		s.viewport = s.viewport.ZoomBy(ev.Delta)
	case EventReset:
		s.viewport = s.viewport.Reset()
	case EventDragStart:
		s.viewport = s.viewport.BeginDrag(flowgraph.Point{X: ev.X, Y: ev.Y})
	case EventDragMove:
		s.viewport = s.viewport.ContinueDrag(flowgraph.Point{X: ev.X, Y: ev.Y})
	case EventDragEnd:
		s.viewport = s.viewport.EndDrag()
	case EventHover:
		if s.model.Has(ev.ID) {
			s.interaction = s.interaction.Hover(ev.ID)
		}
	case EventUnhover:
		s.interaction = s.interaction.Unhover(ev.ID)
	case EventClick:
		if s.model.Has(ev.ID) {
			s.interaction = s.interaction.Click(ev.ID)
		}
	case EventSearch:
		s.interaction = s.interaction.Search(ev.Query)
	case EventFilter:
		return s.applyFilter(ev)
	case EventSort:
		key := ledger.SortKey(ev.Key)
		if ev.Order != "" {
			s.ledger.Update(func(q ledger.Query) ledger.Query {
				return q.WithSort(key, ledger.SortDirection(ev.Order))
			})
		} else {
			s.ledger.SortBy(key)
		}
	case EventPage:
		s.ledger.GoTo(ev.Page)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
	return nil
}

func (s *Session) applyFilter(ev Event) error {
	from, err := ledger.ParseDate(ev.DateFrom)
	if err != nil {
		return fmt.Errorf("filter dateFrom: %w", err)
	}
	to, err := ledger.ParseDate(ev.DateTo)
	if err != nil {
		return fmt.Errorf("filter dateTo: %w", err)
	}
	s.ledger.Update(func(q ledger.Query) ledger.Query {
		return q.
			WithAmountRange(ev.MinAmount, ev.MaxAmount).
			WithDirection(domain.ParseDirection(ev.Direction)).
			WithType(ev.TxType).
			WithDateRange(from, to)
	})
	return nil
}

// Replay applies events in order and stops at the first failure.
func (s *Session) Replay(events []Event) error {
	for i, ev := range events {
		if err := s.Apply(ev); err != nil {
			return fmt.Errorf("event %d (%s): %w", i+1, ev.Type, err)
		}
	}
	return nil
}

// Snapshot renders the current graph scene and ledger page.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Scene:  flowgraph.Render(s.model, s.viewport, s.interaction),
		Ledger: s.ledger.View(),
	}
}
