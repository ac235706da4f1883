package flowgraph

import (
	"strings"

	"github.com/vanshika/fintrace/investigator/internal/domain"
)

const (
	opacityDimmed  = 0.25
	opacityActive  = 1.0
	opacityDefault = 0.85

	edgeOpacityDimmed  = 0.15
	edgeOpacityDefault = 0.6
)

// Interaction is the hover, selection and search state of the graph view.
type Interaction struct {
	HoveredID   string `json:"hoveredId,omitempty"`
	SelectedID  string `json:"selectedId,omitempty"`
	SearchQuery string `json:"searchQuery,omitempty"`
}

// Hover marks id as hovered.
func (s Interaction) Hover(id string) Interaction {
	s.HoveredID = id
	return s
}

// Unhover clears the hover if it still points at id.
func (s Interaction) Unhover(id string) Interaction {
	if s.HoveredID == id {
		s.HoveredID = ""
	}
	return s
}

// Click toggles the selection of id.
func (s Interaction) Click(id string) Interaction {
	if s.SelectedID == id {
		s.SelectedID = ""
	} else {
		s.SelectedID = id
	}
	return s
}

// Search sets the search query.
func (s Interaction) Search(query string) Interaction {
	s.SearchQuery = query
	return s
}

// ActiveID is the node shown in the info panel: hover wins over selection.
func (s Interaction) ActiveID() string {
	if s.HoveredID != "" {
		return s.HoveredID
	}
	return s.SelectedID
}

// Matches reports a case-insensitive search hit on the node id.
func (s Interaction) Matches(id string) bool {
	if s.SearchQuery == "" {
		return false
	}
	return strings.Contains(strings.ToLower(id), strings.ToLower(s.SearchQuery))
}

// Dimmed reports whether a selection exists that the node is neither part of nor linked to.
func (s Interaction) Dimmed(m *Model, id string) bool {
	if s.SelectedID == "" || s.SelectedID == id {
		return false
	}
	return !m.Connected(s.SelectedID, id)
}

// NodeOpacity derives the node's opacity from selection, hover and search.
func (s Interaction) NodeOpacity(m *Model, id string) float64 {
	switch {
	case s.Dimmed(m, id):
		return opacityDimmed
	case s.HoveredID == id, s.SelectedID == id, s.Matches(id):
		return opacityActive
	default:
		return opacityDefault
	}
}

// NodeStroke derives the outline colour and width.
func (s Interaction) NodeStroke(id string) (string, float64) {
	switch {
	case s.SelectedID == id:
		return ColorSelected, 3
	case s.Matches(id):
		return ColorSearchMatch, 2
	default:
		return ColorStroke, 1
	}
}

// EdgeOpacity dims edges that do not touch the current selection.
func (s Interaction) EdgeOpacity(edge domain.FlowEdge) float64 {
	if s.SelectedID != "" && edge.From != s.SelectedID && edge.To != s.SelectedID {
		return edgeOpacityDimmed
	}
	return edgeOpacityDefault
}
