package payload

import (
	"strings"
	"testing"

	"github.com/vanshika/fintrace/investigator/internal/domain"
)

func fraudTransfers() []domain.Transfer {
	return []domain.Transfer{
		{From: "VICTIM_1", To: "W", Amount: 12000, Timestamp: "2024-03-01T10:00:00"},
		{From: "VICTIM_2", To: "W", Amount: 8000, Timestamp: "2024-03-01T10:03:00"},
		{From: "VICTIM_1", To: "W", Amount: 3000, Timestamp: "2024-03-01T10:06:00"},
		{From: "W", To: "MULE_1", Amount: 11000, Timestamp: "2024-03-01T10:15:00"},
		{From: "MULE_1", To: "EXIT_1", Amount: 10800, Timestamp: "2024-03-01T10:20:00"},
	}
}

func TestAggregateEdgesSumsPairsInFirstSeenOrder(t *testing.T) {
	edges := AggregateEdges(fraudTransfers())
	if len(edges) != 4 {
		t.Fatalf("expected 4 edges, got %d", len(edges))
	}
	if edges[0].From != "VICTIM_1" || edges[0].Amount != 15000 {
		t.Fatalf("expected merged first edge, got %+v", edges[0])
	}
	if edges[1].From != "VICTIM_2" || edges[3].To != "EXIT_1" {
		t.Fatalf("unexpected order: %+v", edges)
	}
}

func TestRecordsNumberMissingIDsPastExplicitOnes(t *testing.T) {
	transfers := []domain.Transfer{
		{From: "A", To: "W", Amount: 1},
		{ID: 2, From: "W", To: "B", Amount: 2},
		{From: "C", To: "W", Amount: 3},
	}
	records := Records(transfers, "W")
	got := []int64{records[0].ID, records[1].ID, records[2].ID}
	want := []int64{3, 2, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ids = %v, want %v", got, want)
		}
	}
}

func TestBuildTimelineSortsAndLabels(t *testing.T) {
	transfers := []domain.Transfer{
		{Amount: 2, Timestamp: "2024-03-01T11:30:00"},
		{Amount: 1, Timestamp: "2024-03-01T09:05:00"},
		{Amount: 3, Timestamp: "garbage-ts"},
	}
	points := BuildTimeline(transfers)
	if points[0].Time != "09:05" || points[1].Time != "11:30" {
		t.Fatalf("unexpected labels: %+v", points)
	}
	if points[2].Time != "garba" {
		t.Fatalf("expected raw prefix for unparseable timestamp, got %q", points[2].Time)
	}
}

func TestRecordsDirectionAndIDs(t *testing.T) {
	records := Records(fraudTransfers(), "W")
	if records[0].ID != 1 || records[4].ID != 5 {
		t.Fatalf("expected sequential ids, got %d..%d", records[0].ID, records[4].ID)
	}
	want := []domain.Direction{
		domain.DirectionIncoming, domain.DirectionIncoming, domain.DirectionIncoming,
		domain.DirectionOutgoing, domain.DirectionRelated,
	}
	for i, d := range want {
		if records[i].Direction != d {
			t.Fatalf("record %d: want %s got %s", i, d, records[i].Direction)
		}
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(fraudTransfers(), "W")
	if s.TotalIn != 23000 || s.TotalOut != 11000 {
		t.Fatalf("unexpected totals: %+v", s)
	}
	if s.NetFlow() != 12000 {
		t.Fatalf("unexpected net flow %v", s.NetFlow())
	}
	// senders: VICTIM_1, VICTIM_2, MULE_1; receivers: MULE_1, EXIT_1
	if s.UniqueSenders != 3 || s.UniqueReceivers != 2 || s.TxCount != 5 {
		t.Fatalf("unexpected counts: %+v", s)
	}
}

func TestRiskLevelBands(t *testing.T) {
	cases := map[float64]string{
		0.95: "VERY HIGH",
		0.8:  "VERY HIGH",
		0.6:  "HIGH",
		0.45: "MEDIUM",
		0.2:  "LOW",
		0.1:  "VERY LOW",
	}
	for score, want := range cases {
		if got := RiskLevel(score); got != want {
			t.Errorf("RiskLevel(%v) = %s, want %s", score, got, want)
		}
	}
}

func TestAssembleScoresFraudPattern(t *testing.T) {
	p := Assemble("W", fraudTransfers())

	// consolidation 0.4 + layering 0.3 (5 addresses) + circular 0.2 (W in 4 transfers) + large 0.1 (2/5 > 30%)
	if p.RiskScore != 1 {
		t.Fatalf("expected score 1, got %v", p.RiskScore)
	}
	if p.RiskLevel != "VERY HIGH" {
		t.Fatalf("unexpected level %s", p.RiskLevel)
	}
	if p.Summary == nil || p.Summary.PatternType != PatternMoneyLaundering {
		t.Fatalf("unexpected summary %+v", p.Summary)
	}
	if !strings.Contains(p.SystemConclusion, "100%") {
		t.Fatalf("unexpected conclusion %q", p.SystemConclusion)
	}
	if len(p.GraphData) != 4 || len(p.Transactions) != 5 || len(p.Timeline) != 5 {
		t.Fatalf("unexpected payload sizes: %d %d %d", len(p.GraphData), len(p.Transactions), len(p.Timeline))
	}
	if err := Validate(p); err != nil {
		t.Fatalf("assembled payload should validate: %v", err)
	}
}

func TestDetectPatternsFallback(t *testing.T) {
	got := DetectPatterns([]domain.Transfer{{From: "a", To: "b", Amount: 5}})
	if len(got) != 1 || got[0] != "No obvious patterns detected" {
		t.Fatalf("unexpected patterns %v", got)
	}
}
