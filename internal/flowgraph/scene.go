package flowgraph

import "github.com/vanshika/fintrace/investigator/internal/domain"

// NodeStyle is the fully resolved visual weight of a node.
type NodeStyle struct {
	Fill        string  `json:"fill"`
	Radius      float64 `json:"radius"`
	Opacity     float64 `json:"opacity"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
	Label       string  `json:"label"`
	AmountLabel string  `json:"amountLabel,omitempty"`
}

// EdgeStyle is the fully resolved visual weight of an edge.
type EdgeStyle struct {
	Color   string  `json:"color"`
	Width   float64 `json:"width"`
	Opacity float64 `json:"opacity"`
}

// SceneNode pairs a positioned node with its style.
type SceneNode struct {
	domain.FlowNode
	Style NodeStyle `json:"style"`
}

// SceneEdge is an edge with endpoint coordinates and style.
type SceneEdge struct {
	From   string    `json:"from"`
	To     string    `json:"to"`
	Amount float64   `json:"amount"`
	Start  Point     `json:"start"`
	End    Point     `json:"end"`
	Style  EdgeStyle `json:"style"`
}

// ViewportView is the presentation state of the viewport controls.
type ViewportView struct {
	Viewport
	Percent      int    `json:"percent"`
	PanHint      bool   `json:"panHint"`
	Cursor       string `json:"cursor"`
	CanZoomIn    bool   `json:"canZoomIn"`
	CanZoomOut   bool   `json:"canZoomOut"`
	TransitionMS int64  `json:"transitionMs"`
}

// Scene is everything a renderer needs to draw the graph for one state.
type Scene struct {
	Wallet       string       `json:"wallet"`
	Width        int          `json:"width"`
	Height       int          `json:"height"`
	Empty        bool         `json:"empty"`
	MaxAggregate float64      `json:"maxAggregate"`
	Nodes        []SceneNode  `json:"nodes"`
	Edges        []SceneEdge  `json:"edges"`
	Viewport     ViewportView `json:"viewport"`
	Interaction  Interaction  `json:"interaction"`
	Panel        *Detail      `json:"panel,omitempty"`
}

// Render resolves styles for every node and edge of a positioned model.
func Render(m *Model, v Viewport, s Interaction) Scene {
	scene := Scene{
		Wallet:      m.Focal(),
		Width:       CanvasWidth,
		Height:      CanvasHeight,
		Empty:       m.Empty(),
		Nodes:       []SceneNode{},
		Edges:       []SceneEdge{},
		Viewport:    viewportView(v),
		Interaction: s,
	}
	if scene.Empty {
		scene.MaxAggregate = 1
		return scene
	}

	maxAggregate := m.MaxAggregate()
	scene.MaxAggregate = maxAggregate

	for _, edge := range m.Edges() {
		from, okFrom := m.Node(edge.From)
		to, okTo := m.Node(edge.To)
		if !okFrom || !okTo {
			continue
		}
		scene.Edges = append(scene.Edges, SceneEdge{
			From:   edge.From,
			To:     edge.To,
			Amount: edge.Amount,
			Start:  Point{X: from.X, Y: from.Y},
			End:    Point{X: to.X, Y: to.Y},
			Style: EdgeStyle{
				Color:   EdgeColor(from.Role, to.Role),
				Width:   EdgeWidth(edge.Amount, maxAggregate),
				Opacity: s.EdgeOpacity(edge),
			},
		})
	}

	for _, node := range m.Nodes() {
		stroke, strokeWidth := s.NodeStroke(node.ID)
		scene.Nodes = append(scene.Nodes, SceneNode{
			FlowNode: node,
			Style: NodeStyle{
				Fill:        NodeFill(node.Role),
				Radius:      NodeRadius(node.Role),
				Opacity:     s.NodeOpacity(m, node.ID),
				Stroke:      stroke,
				StrokeWidth: strokeWidth,
				Label:       Label(node.ID),
				AmountLabel: AmountLabel(node.AggregateAmount),
			},
		})
	}

	if detail, ok := Describe(m, s); ok {
		scene.Panel = &detail
	}
	return scene
}

func viewportView(v Viewport) ViewportView {
	return ViewportView{
		Viewport:     v,
		Percent:      v.Percent(),
		PanHint:      v.PanHint(),
		Cursor:       v.Cursor(),
		CanZoomIn:    v.CanZoomIn(),
		CanZoomOut:   v.CanZoomOut(),
		TransitionMS: v.Transition().Milliseconds(),
	}
}
