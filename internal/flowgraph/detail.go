package flowgraph

import (
	"fmt"

	"github.com/vanshika/fintrace/investigator/internal/domain"
)

// Detail is the info panel content for the active node.
type Detail struct {
	ID             string      `json:"id"`
	Role           domain.Role `json:"role"`
	RoleLabel      string      `json:"roleLabel"`
	ConnectedNodes int         `json:"connectedNodes"`
	Transactions   int         `json:"transactions"`
	TotalFlow      float64     `json:"totalFlow"`
}

// FlowLabel formats the total flow in thousands with one decimal.
func (d Detail) FlowLabel() string {
	return fmt.Sprintf("%.1fk", d.TotalFlow/1000)
}

// Describe builds the info panel for the interaction's active node.
// It returns false when nothing is hovered or selected, or the id is not in the model.
func Describe(m *Model, s Interaction) (Detail, bool) {
	id := s.ActiveID()
	if id == "" {
		return Detail{}, false
	}
	node, ok := m.Node(id)
	if !ok {
		return Detail{}, false
	}

	edges := m.Incident(id)
	peers := make(map[string]struct{})
	total := 0.0
	for _, edge := range edges {
		total += edge.Amount
		if edge.From != id {
			peers[edge.From] = struct{}{}
		}
		if edge.To != id {
			peers[edge.To] = struct{}{}
		}
	}

	return Detail{
		ID:             id,
		Role:           node.Role,
		RoleLabel:      RoleLabel(node.Role),
		ConnectedNodes: len(peers),
		Transactions:   len(edges),
		TotalFlow:      total,
	}, true
}
