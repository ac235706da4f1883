package flowgraph

import (
	"math"
	"time"
)

const (
	MinZoom     = 0.5
	MaxZoom     = 3.0
	ZoomStep    = 0.2
	DefaultZoom = 1.0

	// transitionDuration is applied by renderers to non-drag transforms.
	transitionDuration = 100 * time.Millisecond
)

// Point is a 2D position in screen or graph units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Viewport holds zoom and pan state. Every transition returns a new value.
type Viewport struct {
	Zoom       float64 `json:"zoom"`
	Pan        Point   `json:"pan"`
	Dragging   bool    `json:"dragging"`
	DragAnchor Point   `json:"dragAnchor"`
}

// NewViewport returns the default viewport created for every new payload.
func NewViewport() Viewport {
	return Viewport{Zoom: DefaultZoom}
}

// ZoomIn increases zoom by one step up to MaxZoom.
func (v Viewport) ZoomIn() Viewport {
	v.Zoom = clampZoom(v.Zoom + ZoomStep)
	return v
}

// ZoomOut decreases zoom by one step down to MinZoom.
func (v Viewport) ZoomOut() Viewport {
	v.Zoom = clampZoom(v.Zoom - ZoomStep)
	return v
}

// ZoomBy applies wheel input. A positive delta (scrolling down) zooms out.
func (v Viewport) ZoomBy(delta float64) Viewport {
	step := ZoomStep
	if delta > 0 {
		step = -ZoomStep
	}
	v.Zoom = clampZoom(v.Zoom + step)
	return v
}

// Reset restores default zoom and clears the pan offset.
func (v Viewport) Reset() Viewport {
	v.Zoom = DefaultZoom
	v.Pan = Point{}
	return v
}

// BeginDrag starts a pan gesture at pointer.
func (v Viewport) BeginDrag(pointer Point) Viewport {
	v.Dragging = true
	v.DragAnchor = pointer.Sub(v.Pan)
	return v
}

// ContinueDrag moves the pan offset while a drag is active.
func (v Viewport) ContinueDrag(pointer Point) Viewport {
	if !v.Dragging {
		return v
	}
	v.Pan = pointer.Sub(v.DragAnchor)
	return v
}

// EndDrag finishes the pan gesture.
func (v Viewport) EndDrag() Viewport {
	v.Dragging = false
	return v
}

// CanZoomIn reports whether the zoom-in control is enabled.
func (v Viewport) CanZoomIn() bool { return v.Zoom < MaxZoom }

// CanZoomOut reports whether the zoom-out control is enabled.
func (v Viewport) CanZoomOut() bool { return v.Zoom > MinZoom }

// Percent is the zoom level shown to the investigator.
func (v Viewport) Percent() int {
	return int(math.Round(v.Zoom * 100))
}

// PanHint reports whether the "drag to pan" hint is shown. Panning at zoom 1 is allowed
// but has no visible benefit.
func (v Viewport) PanHint() bool { return v.Zoom > 1 }

// Cursor returns the pointer cursor for the canvas.
func (v Viewport) Cursor() string {
	switch {
	case v.Dragging:
		return "grabbing"
	case v.Zoom > 1:
		return "grab"
	default:
		return "default"
	}
}

// Transition is the cosmetic transform duration; drags are applied immediately.
func (v Viewport) Transition() time.Duration {
	if v.Dragging {
		return 0
	}
	return transitionDuration
}

// Transform maps a graph position to screen space (translate then scale around the origin).
func (v Viewport) Transform(p Point) Point {
	return Point{
		X: v.Pan.X + v.Zoom*p.X,
		Y: v.Pan.Y + v.Zoom*p.Y,
	}
}

func clampZoom(z float64) float64 {
	// round away float drift so repeated steps land exactly on the bounds
	z = math.Round(z*1e6) / 1e6
	return math.Max(MinZoom, math.Min(z, MaxZoom))
}
