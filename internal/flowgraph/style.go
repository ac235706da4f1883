package flowgraph

import (
	"fmt"
	"math"

	"github.com/vanshika/fintrace/investigator/internal/domain"
)

// Palette used by the money flow view.
const (
	ColorWallet      = "#10b981"
	ColorSource      = "#ef4444"
	ColorDestination = "#3b82f6"

	ColorEdgeRisk    = "#ef4444"
	ColorEdgeClean   = "#10b981"
	ColorEdgeNeutral = "#3b82f6"

	ColorSelected    = "#facc15"
	ColorSearchMatch = "#22c55e"
	ColorStroke      = "#0f172a"
)

const (
	CanvasWidth  = 800
	CanvasHeight = 400

	walletRadius   = 25
	peerRadius     = 15
	maxEdgeWidth   = 5
	labelMaxLength = 12
)

// NodeFill returns the fill colour for a role.
func NodeFill(role domain.Role) string {
	switch role {
	case domain.RoleWallet:
		return ColorWallet
	case domain.RoleSource:
		return ColorSource
	default:
		return ColorDestination
	}
}

// NodeRadius returns the circle radius for a role.
func NodeRadius(role domain.Role) float64 {
	if role == domain.RoleWallet {
		return walletRadius
	}
	return peerRadius
}

// EdgeColor colours an edge by the roles of its endpoints: SOURCE-originating edges are
// risky, DESTINATION-terminating edges are clean, everything else is neutral.
func EdgeColor(from, to domain.Role) string {
	switch {
	case from == domain.RoleSource:
		return ColorEdgeRisk
	case to == domain.RoleDestination:
		return ColorEdgeClean
	default:
		return ColorEdgeNeutral
	}
}

// EdgeWidth scales the stroke by amount relative to the largest aggregate.
func EdgeWidth(amount, maxAggregate float64) float64 {
	if maxAggregate < 1 {
		maxAggregate = 1
	}
	return math.Max(1, amount/maxAggregate*maxEdgeWidth)
}

// Label truncates long addresses for display under a node.
func Label(id string) string {
	runes := []rune(id)
	if len(runes) > labelMaxLength {
		return string(runes[:labelMaxLength]) + "..."
	}
	return id
}

// AmountLabel renders an aggregate in thousands; empty when nothing flowed.
func AmountLabel(amount float64) string {
	if amount <= 0 {
		return ""
	}
	return fmt.Sprintf("$%.0fk", amount/1000)
}

// RoleLabel is the human readable role shown in the info panel.
func RoleLabel(role domain.Role) string {
	switch role {
	case domain.RoleWallet:
		return "Central Wallet"
	case domain.RoleSource:
		return "Source / Investor"
	default:
		return "Destination / Exit"
	}
}
