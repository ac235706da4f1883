package payload

import (
	"sort"

	"github.com/vanshika/fintrace/investigator/internal/domain"
)

// AggregateEdges sums transfer amounts per (from, to) pair, keeping first-seen order.
func AggregateEdges(transfers []domain.Transfer) []domain.FlowEdge {
	index := make(map[[2]string]int, len(transfers))
	edges := make([]domain.FlowEdge, 0, len(transfers))
	for _, t := range transfers {
		key := [2]string{t.From, t.To}
		if i, ok := index[key]; ok {
			edges[i].Amount += t.Amount
			continue
		}
		index[key] = len(edges)
		edges = append(edges, domain.FlowEdge{From: t.From, To: t.To, Amount: t.Amount})
	}
	return edges
}

// BuildTimeline orders transfers by timestamp and labels each point HH:MM.
func BuildTimeline(transfers []domain.Transfer) []domain.TimelinePoint {
	sorted := append([]domain.Transfer(nil), transfers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	points := make([]domain.TimelinePoint, 0, len(sorted))
	for _, t := range sorted {
		points = append(points, domain.TimelinePoint{
			Time:      timeLabel(t.Timestamp),
			Amount:    t.Amount,
			Timestamp: t.Timestamp,
		})
	}
	return points
}

func timeLabel(raw string) string {
	if ts, ok := domain.ParseTimestamp(raw); ok {
		return ts.Format("15:04")
	}
	if len(raw) > 5 {
		return raw[:5]
	}
	return raw
}

// Records converts transfers into ledger rows with direction relative to wallet.
// Transfers without an ID are numbered in input order after the largest explicit ID.
func Records(transfers []domain.Transfer, wallet string) []domain.TransactionRecord {
	var next int64
	for _, t := range transfers {
		if t.ID > next {
			next = t.ID
		}
	}
	records := make([]domain.TransactionRecord, 0, len(transfers))
	for _, t := range transfers {
		id := t.ID
		if id == 0 {
			next++
			id = next
		}
		records = append(records, domain.TransactionRecord{
			ID:          id,
			FromAddress: t.From,
			ToAddress:   t.To,
			Amount:      t.Amount,
			Direction:   DirectionFor(t.From, t.To, wallet),
			Timestamp:   t.Timestamp,
			Type:        t.Type,
			Suspicious:  t.Suspicious,
		})
	}
	return records
}

// DirectionFor classifies a movement relative to wallet.
func DirectionFor(from, to, wallet string) domain.Direction {
	switch {
	case to == wallet:
		return domain.DirectionIncoming
	case from == wallet:
		return domain.DirectionOutgoing
	default:
		return domain.DirectionRelated
	}
}

// Summarize derives the flow summary for wallet from its transfers.
func Summarize(transfers []domain.Transfer, wallet string) domain.FlowSummary {
	var summary domain.FlowSummary
	senders := make(map[string]struct{})
	receivers := make(map[string]struct{})
	for _, t := range transfers {
		if t.To == wallet {
			summary.TotalIn += t.Amount
		}
		if t.From == wallet {
			summary.TotalOut += t.Amount
		}
		if t.From != wallet {
			senders[t.From] = struct{}{}
		}
		if t.To != wallet {
			receivers[t.To] = struct{}{}
		}
	}
	summary.TxCount = len(transfers)
	summary.UniqueSenders = len(senders)
	summary.UniqueReceivers = len(receivers)
	return summary
}

// SummarizeRecords derives the flow summary from ledger rows.
func SummarizeRecords(records []domain.TransactionRecord, wallet string) domain.FlowSummary {
	transfers := make([]domain.Transfer, 0, len(records))
	for _, r := range records {
		transfers = append(transfers, domain.Transfer{From: r.FromAddress, To: r.ToAddress, Amount: r.Amount})
	}
	return Summarize(transfers, wallet)
}

// Assemble builds a full analysis payload for wallet from raw transfers.
func Assemble(wallet string, transfers []domain.Transfer) domain.Payload {
	score := RiskScore(transfers)
	patterns := DetectPatterns(transfers)
	summary := Summarize(transfers, wallet)
	summary.PatternType = PatternType(transfers)

	return domain.Payload{
		Wallet:           wallet,
		GraphData:        AggregateEdges(transfers),
		Transactions:     Records(transfers, wallet),
		Timeline:         BuildTimeline(transfers),
		RiskScore:        score,
		RiskLevel:        RiskLevel(score),
		DetectedPatterns: patterns,
		Summary:          &summary,
		SystemConclusion: Conclusion(score, summary.PatternType),
	}
}
