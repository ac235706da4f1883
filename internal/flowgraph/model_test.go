package flowgraph

import (
	"math"
	"reflect"
	"testing"

	"github.com/vanshika/fintrace/investigator/internal/domain"
)

func TestBuildClassifiesFocalAndMarkers(t *testing.T) {
	m := Build([]domain.FlowEdge{{From: "W", To: "VICTIM_1", Amount: 100}}, "W")

	w, ok := m.Node("W")
	if !ok || w.Role != domain.RoleWallet {
		t.Fatalf("expected W to be wallet, got %+v (found=%v)", w, ok)
	}
	v, ok := m.Node("VICTIM_1")
	if !ok || v.Role != domain.RoleSource {
		t.Fatalf("expected VICTIM_1 to be source, got %+v (found=%v)", v, ok)
	}
}

func TestClassifyRules(t *testing.T) {
	cases := []struct {
		id       string
		fallback domain.Role
		want     domain.Role
	}{
		{"W", domain.RoleDestination, domain.RoleWallet},
		{"INVESTOR_42", domain.RoleDestination, domain.RoleSource},
		{"MULE_7", domain.RoleSource, domain.RoleDestination},
		{"MASTER_EXIT_1", domain.RoleSource, domain.RoleDestination},
		{"CLEAN_9", domain.RoleSource, domain.RoleDestination},
		{"VICTIM_EXIT", domain.RoleDestination, domain.RoleSource},
		{"victim_lower", domain.RoleDestination, domain.RoleDestination},
		{"USER_1", domain.RoleSource, domain.RoleSource},
		{"SHOP_1", domain.RoleDestination, domain.RoleDestination},
	}
	for _, tc := range cases {
		if got := Classify(tc.id, "W", tc.fallback); got != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.id, got, tc.want)
		}
	}
}

func TestBuildFirstOccurrenceWins(t *testing.T) {
	m := Build([]domain.FlowEdge{
		{From: "USER_1", To: "W", Amount: 10},
		{From: "W", To: "USER_1", Amount: 5},
		{From: "W", To: "SHOP_1", Amount: 3},
		{From: "SHOP_1", To: "W", Amount: 1},
	}, "W")

	if n, _ := m.Node("USER_1"); n.Role != domain.RoleSource {
		t.Errorf("USER_1 first seen as from, want source got %s", n.Role)
	}
	if n, _ := m.Node("SHOP_1"); n.Role != domain.RoleDestination {
		t.Errorf("SHOP_1 first seen as to, want destination got %s", n.Role)
	}
}

func TestBuildAggregates(t *testing.T) {
	m := Build([]domain.FlowEdge{
		{From: "A", To: "W", Amount: 50},
		{From: "A", To: "X", Amount: 30},
	}, "W")

	a, _ := m.Node("A")
	if a.AggregateAmount != 80 {
		t.Fatalf("expected A aggregate 80, got %v", a.AggregateAmount)
	}
	x, _ := m.Node("X")
	if x.AggregateAmount != 30 {
		t.Fatalf("expected X aggregate 30, got %v", x.AggregateAmount)
	}
	w, _ := m.Node("W")
	if w.AggregateAmount != 0 {
		t.Fatalf("focal wallet aggregate should stay 0, got %v", w.AggregateAmount)
	}
}

func TestBuildEmpty(t *testing.T) {
	m := Build(nil, "W")
	if !m.Empty() {
		t.Fatal("expected empty model")
	}
	if m.MaxAggregate() != 1 {
		t.Fatalf("expected floor of 1, got %v", m.MaxAggregate())
	}
}

func TestBuildWithoutFocalHasNoWallet(t *testing.T) {
	m := Build([]domain.FlowEdge{{From: "A", To: "B", Amount: 1}}, "W")
	for _, n := range m.Nodes() {
		if n.Role == domain.RoleWallet {
			t.Fatalf("unexpected wallet node %s", n.ID)
		}
	}
}

func TestBuildDropsMalformedEdges(t *testing.T) {
	m := Build([]domain.FlowEdge{
		{From: "", To: "B", Amount: 1},
		{From: "A", To: "", Amount: 1},
		{From: "A", To: "B", Amount: math.NaN()},
		{From: "A", To: "C", Amount: -5},
	}, "W")

	if m.Dropped() != 2 {
		t.Fatalf("expected 2 dropped edges, got %d", m.Dropped())
	}
	if len(m.Edges()) != 2 {
		t.Fatalf("expected 2 kept edges, got %d", len(m.Edges()))
	}
	a, _ := m.Node("A")
	if a.AggregateAmount != 0 {
		t.Fatalf("invalid amounts should count as zero, got %v", a.AggregateAmount)
	}
	for _, e := range m.Edges() {
		if !m.Has(e.From) || !m.Has(e.To) {
			t.Fatalf("edge %+v references unknown node", e)
		}
	}
}

func TestConnectedIsUndirected(t *testing.T) {
	m := Build([]domain.FlowEdge{{From: "A", To: "B", Amount: 1}, {From: "B", To: "C", Amount: 1}}, "W")
	if !m.Connected("B", "A") || !m.Connected("A", "B") {
		t.Fatal("expected A and B to be connected both ways")
	}
	if m.Connected("A", "C") {
		t.Fatal("A and C share no edge")
	}
}

func TestAssembleIsDeterministic(t *testing.T) {
	edges := []domain.FlowEdge{
		{From: "VICTIM_1", To: "W", Amount: 100},
		{From: "VICTIM_2", To: "W", Amount: 200},
		{From: "W", To: "MULE_1", Amount: 150},
		{From: "MULE_1", To: "EXIT_1", Amount: 140},
		{From: "W", To: "MULE_2", Amount: 150},
		{From: "MULE_2", To: "INTERMEDIATE_1", Amount: 145},
	}
	first := Assemble(edges, "W", nil)
	for i := 0; i < 5; i++ {
		again := Assemble(edges, "W", nil)
		if !reflect.DeepEqual(first.Nodes(), again.Nodes()) {
			t.Fatalf("run %d produced different nodes", i)
		}
	}
}
