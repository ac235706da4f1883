package timeline

import "github.com/vanshika/fintrace/investigator/internal/domain"

// Bar colours for the burst chart.
const (
	ColorHigh   = "#ef4444"
	ColorMedium = "#f59e0b"
	ColorLow    = "#10b981"
)

const (
	highRatio   = 0.7
	mediumRatio = 0.4
)

// Bar is one rendered timeline column.
type Bar struct {
	Label     string  `json:"label"`
	Amount    float64 `json:"amount"`
	Ratio     float64 `json:"ratio"`
	Color     string  `json:"color"`
	Timestamp string  `json:"timestamp,omitempty"`
}

// Chart is the bar set plus the scale it was drawn against.
type Chart struct {
	Max  float64 `json:"max"`
	Bars []Bar   `json:"bars"`
}

// Bars scales points against the largest amount, floored at 1 so an all-zero series
// renders flat instead of dividing by zero.
func Bars(points []domain.TimelinePoint) Chart {
	max := 1.0
	for _, p := range points {
		if p.Amount > max {
			max = p.Amount
		}
	}

	bars := make([]Bar, 0, len(points))
	for _, p := range points {
		amount := p.Amount
		if amount < 0 {
			amount = 0
		}
		bars = append(bars, Bar{
			Label:     p.Time,
			Amount:    p.Amount,
			Ratio:     amount / max,
			Color:     barColor(amount, max),
			Timestamp: p.Timestamp,
		})
	}
	return Chart{Max: max, Bars: bars}
}

func barColor(amount, max float64) string {
	switch {
	case amount > max*highRatio:
		return ColorHigh
	case amount > max*mediumRatio:
		return ColorMedium
	default:
		return ColorLow
	}
}

// Peak returns the index of the largest bar, or -1 for an empty chart.
func (c Chart) Peak() int {
	peak := -1
	for i, b := range c.Bars {
		if peak < 0 || b.Amount > c.Bars[peak].Amount {
			peak = i
		}
	}
	return peak
}
