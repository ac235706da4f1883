package flowgraph

import (
	"math"
	"strings"

	"github.com/vanshika/fintrace/investigator/internal/domain"
)

var (
	sourceMarkers      = []string{"VICTIM", "INVESTOR"}
	destinationMarkers = []string{"MULE", "EXIT", "CLEAN"}
)

// Model is the classified node set and validated edge set derived from one payload.
// A Model is immutable once built; WithLayout returns a positioned copy.
type Model struct {
	focal    string
	nodes    []domain.FlowNode
	index    map[string]int
	edges    []domain.FlowEdge
	adjacent map[string]map[string]struct{}
	dropped  int
}

// Build turns a flat edge list into a node set in first-seen order.
// Edges without both endpoints are dropped and counted; invalid amounts count as zero.
func Build(edges []domain.FlowEdge, focal string) *Model {
	m := &Model{
		focal:    focal,
		index:    make(map[string]int),
		adjacent: make(map[string]map[string]struct{}),
	}

	for _, edge := range edges {
		if edge.From == "" || edge.To == "" {
			m.dropped++
			continue
		}
		amount := sanitizeAmount(edge.Amount)

		m.ensureNode(edge.From, domain.RoleSource)
		m.ensureNode(edge.To, domain.RoleDestination)

		if edge.From != focal {
			m.nodes[m.index[edge.From]].AggregateAmount += amount
		}
		if edge.To != focal {
			m.nodes[m.index[edge.To]].AggregateAmount += amount
		}

		m.edges = append(m.edges, domain.FlowEdge{From: edge.From, To: edge.To, Amount: amount})
		m.link(edge.From, edge.To)
	}

	return m
}

// Classify applies the first-match role heuristic. fallback is used when no rule matches
// and reflects the position the id was first seen in.
func Classify(id, focal string, fallback domain.Role) domain.Role {
	if id == focal {
		return domain.RoleWallet
	}
	if containsAny(id, sourceMarkers) {
		return domain.RoleSource
	}
	if containsAny(id, destinationMarkers) {
		return domain.RoleDestination
	}
	return fallback
}

func (m *Model) ensureNode(id string, fallback domain.Role) {
	if _, ok := m.index[id]; ok {
		return
	}
	m.index[id] = len(m.nodes)
	m.nodes = append(m.nodes, domain.FlowNode{
		ID:   id,
		Role: Classify(id, m.focal, fallback),
	})
}

func (m *Model) link(a, b string) {
	if m.adjacent[a] == nil {
		m.adjacent[a] = make(map[string]struct{})
	}
	if m.adjacent[b] == nil {
		m.adjacent[b] = make(map[string]struct{})
	}
	m.adjacent[a][b] = struct{}{}
	m.adjacent[b][a] = struct{}{}
}

// Focal returns the investigated wallet address.
func (m *Model) Focal() string { return m.focal }

// Empty reports whether the graph has no nodes; renderers show an empty state instead.
func (m *Model) Empty() bool { return len(m.nodes) == 0 }

// Dropped is the number of malformed edges discarded during Build.
func (m *Model) Dropped() int { return m.dropped }

// Nodes returns the nodes in first-seen order.
func (m *Model) Nodes() []domain.FlowNode {
	return append([]domain.FlowNode(nil), m.nodes...)
}

// Edges returns the validated edges in input order.
func (m *Model) Edges() []domain.FlowEdge {
	return append([]domain.FlowEdge(nil), m.edges...)
}

// Node looks up a node by id.
func (m *Model) Node(id string) (domain.FlowNode, bool) {
	idx, ok := m.index[id]
	if !ok {
		return domain.FlowNode{}, false
	}
	return m.nodes[idx], true
}

// Has reports whether id is a node of the model.
func (m *Model) Has(id string) bool {
	_, ok := m.index[id]
	return ok
}

// Connected reports whether at least one edge links a and b, in either direction.
func (m *Model) Connected(a, b string) bool {
	_, ok := m.adjacent[a][b]
	return ok
}

// Incident returns every edge touching id.
func (m *Model) Incident(id string) []domain.FlowEdge {
	var out []domain.FlowEdge
	for _, edge := range m.edges {
		if edge.From == id || edge.To == id {
			out = append(out, edge)
		}
	}
	return out
}

// MaxAggregate is the largest node aggregate, floored at 1 so it can be used as a divisor.
func (m *Model) MaxAggregate() float64 {
	maxAmount := 1.0
	for _, node := range m.nodes {
		if node.AggregateAmount > maxAmount {
			maxAmount = node.AggregateAmount
		}
	}
	return maxAmount
}

// WithLayout returns a copy of the model whose nodes carry the positions assigned by layout.
func (m *Model) WithLayout(layout Layout) *Model {
	if layout == nil {
		layout = DefaultGrid()
	}
	placed := layout.Place(m.Nodes())

	out := *m
	out.nodes = m.Nodes()
	for _, node := range placed {
		if idx, ok := m.index[node.ID]; ok {
			out.nodes[idx].X = node.X
			out.nodes[idx].Y = node.Y
		}
	}
	return &out
}

// Assemble builds the model and positions it with layout (the default grid when nil).
func Assemble(edges []domain.FlowEdge, focal string, layout Layout) *Model {
	return Build(edges, focal).WithLayout(layout)
}

func sanitizeAmount(amount float64) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return 0
	}
	return amount
}

func containsAny(id string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(id, marker) {
			return true
		}
	}
	return false
}
