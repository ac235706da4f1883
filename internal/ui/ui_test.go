package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestTableAlignsColumns(t *testing.T) {
	SetColor(false)
	var buf bytes.Buffer
	Table(&buf, []string{"ID", "AMOUNT"}, [][]string{{"1", "10"}, {"200", "5"}})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != "  ID   AMOUNT" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[3] != "  200  5" {
		t.Fatalf("unexpected row %q", lines[3])
	}
}

func TestTableEmpty(t *testing.T) {
	SetColor(false)
	var buf bytes.Buffer
	Table(&buf, []string{"ID"}, nil)
	if !strings.Contains(buf.String(), "no rows") {
		t.Fatalf("expected empty marker, got %q", buf.String())
	}
}

func TestBar(t *testing.T) {
	SetColor(false)
	if got := Bar(0.5, 10, Good); got != "█████·····" {
		t.Fatalf("unexpected bar %q", got)
	}
	if got := Bar(0.01, 4, Good); got != "█···" {
		t.Fatalf("expected minimum fill for non-zero ratio, got %q", got)
	}
	if got := Bar(2, 3, Good); got != "███" {
		t.Fatalf("expected clamped bar, got %q", got)
	}
}

func TestForHex(t *testing.T) {
	if ForHex("#EF4444") != Bad || ForHex("#3b82f6") != Info || ForHex("#123456") != Subtle {
		t.Fatalf("unexpected colour mapping")
	}
}
