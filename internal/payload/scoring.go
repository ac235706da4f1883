package payload

import (
	"fmt"
	"math"
	"time"

	"github.com/vanshika/fintrace/investigator/internal/domain"
)

const (
	consolidationWindow = 30 * time.Minute
	layeringMinHops     = 3
	largeAmount         = 10000
)

// Pattern types reported in the flow summary.
const (
	PatternFraud           = "fraud"
	PatternMoneyLaundering = "money_laundering"
	PatternPonzi           = "ponzi"
	PatternRansomware      = "ransomware"
	PatternUnknown         = "Unknown"
)

// RiskLevel maps a score in [0, 1] onto its display band.
func RiskLevel(score float64) string {
	switch {
	case score >= 0.8:
		return "VERY HIGH"
	case score >= 0.6:
		return "HIGH"
	case score >= 0.4:
		return "MEDIUM"
	case score >= 0.2:
		return "LOW"
	default:
		return "VERY LOW"
	}
}

// RapidConsolidation reports three or more transfers landing inside a 30 minute window.
func RapidConsolidation(transfers []domain.Transfer) bool {
	if len(transfers) < 3 {
		return false
	}
	var first, last time.Time
	seen := 0
	for _, t := range transfers {
		ts, ok := domain.ParseTimestamp(t.Timestamp)
		if !ok {
			continue
		}
		if seen == 0 || ts.Before(first) {
			first = ts
		}
		if seen == 0 || ts.After(last) {
			last = ts
		}
		seen++
	}
	return seen >= 3 && last.Sub(first) < consolidationWindow
}

// Layering reports funds touching at least five distinct addresses.
func Layering(transfers []domain.Transfer) bool {
	addresses := make(map[string]struct{})
	for _, t := range transfers {
		addresses[t.From] = struct{}{}
		addresses[t.To] = struct{}{}
	}
	return len(addresses) >= layeringMinHops+2
}

// Circular reports an address involved in three or more transfers.
func Circular(transfers []domain.Transfer) bool {
	if len(transfers) < 3 {
		return false
	}
	counts := make(map[string]int)
	for _, t := range transfers {
		counts[t.From]++
		counts[t.To]++
	}
	for _, c := range counts {
		if c >= 3 {
			return true
		}
	}
	return false
}

// RiskScore weights the heuristics: consolidation 0.4, layering 0.3, circular 0.2 and a
// large-amount share above 30% 0.1.
func RiskScore(transfers []domain.Transfer) float64 {
	score := 0.0
	if RapidConsolidation(transfers) {
		score += 0.4
	}
	if Layering(transfers) {
		score += 0.3
	}
	if Circular(transfers) {
		score += 0.2
	}
	large := 0
	for _, t := range transfers {
		if t.Amount > largeAmount {
			large++
		}
	}
	if float64(large) > float64(len(transfers))*0.3 {
		score += 0.1
	}
	return math.Min(math.Round(score*100)/100, 1)
}

// DetectPatterns lists the human readable findings for a transfer set.
func DetectPatterns(transfers []domain.Transfer) []string {
	var patterns []string
	if RapidConsolidation(transfers) {
		patterns = append(patterns, "Rapid Consolidation")
	}
	if Layering(transfers) {
		patterns = append(patterns, "Money Laundering (Layering)", "Multiple Hop Transfers")
	}
	if Circular(transfers) {
		patterns = append(patterns, "Circular Movement")
	}
	structuring := 0
	for _, t := range transfers {
		if t.Amount > 9000 && t.Amount < 10000 {
			structuring++
		}
	}
	if structuring >= 3 {
		patterns = append(patterns, "Structuring Detected")
	}
	if len(transfers) > 15 {
		patterns = append(patterns, "High Transaction Frequency")
	}
	if len(patterns) == 0 {
		return []string{"No obvious patterns detected"}
	}
	return patterns
}

// PatternType picks the most likely scheme for the transfer set.
func PatternType(transfers []domain.Transfer) string {
	best, bestScore := PatternUnknown, 0.0
	consider := func(name string, score float64) {
		if score > bestScore {
			best, bestScore = name, score
		}
	}
	if RapidConsolidation(transfers) {
		consider(PatternFraud, 0.4)
		consider(PatternRansomware, 0.3)
	}
	if Layering(transfers) {
		consider(PatternMoneyLaundering, 0.5)
	}
	if len(transfers) > 10 {
		for _, t := range transfers {
			if t.Amount > 5000 {
				consider(PatternPonzi, 0.3)
				break
			}
		}
	}
	return best
}

var conclusions = map[string]string{
	PatternFraud:           "This wallet exhibits behavior consistent with fraudulent activity, involving rapid fund aggregation from multiple sources followed by immediate consolidation.",
	PatternMoneyLaundering: "This wallet exhibits behavior consistent with money laundering via layering, moving funds through intermediate wallets to obscure their origin.",
	PatternPonzi:           "This wallet exhibits behavior consistent with a Ponzi scheme, with early investors paid from later deposits.",
	PatternRansomware:      "This wallet exhibits behavior consistent with ransomware payment collection followed by periodic consolidation.",
}

// Conclusion renders the narrative summary for a score and pattern type.
func Conclusion(score float64, patternType string) string {
	base, ok := conclusions[patternType]
	if !ok {
		base = "This wallet shows unusual transaction patterns that warrant further investigation."
	}
	pct := int(math.Round(score * 100))
	switch {
	case score >= 0.8:
		return fmt.Sprintf("%s The risk score of %d%% indicates a very high likelihood of financial crime.", base, pct)
	case score >= 0.6:
		return fmt.Sprintf("%s The risk score of %d%% indicates a high likelihood of suspicious activity.", base, pct)
	default:
		return fmt.Sprintf("%s The risk score of %d%% indicates moderate risk requiring monitoring.", base, pct)
	}
}
