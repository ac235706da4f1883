package flowgraph

import "github.com/vanshika/fintrace/investigator/internal/domain"

// Layout assigns coordinates to nodes. Implementations must be deterministic.
type Layout interface {
	Place(nodes []domain.FlowNode) []domain.FlowNode
}

// GridLayout places nodes row by row on a fixed grid in input order.
// It does not avoid label overlap on large graphs.
type GridLayout struct {
	Columns   int
	OriginX   float64
	OriginY   float64
	ColumnGap float64
	RowGap    float64
}

// DefaultGrid is the 4-column grid used by the money flow view.
func DefaultGrid() GridLayout {
	return GridLayout{
		Columns:   4,
		OriginX:   100,
		OriginY:   100,
		ColumnGap: 200,
		RowGap:    150,
	}
}

// Place implements Layout.
func (g GridLayout) Place(nodes []domain.FlowNode) []domain.FlowNode {
	columns := g.Columns
	if columns <= 0 {
		columns = 1
	}
	out := make([]domain.FlowNode, len(nodes))
	for i, node := range nodes {
		node.X = g.OriginX + float64(i%columns)*g.ColumnGap
		node.Y = g.OriginY + float64(i/columns)*g.RowGap
		out[i] = node
	}
	return out
}
