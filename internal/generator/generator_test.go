package generator

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vanshika/fintrace/investigator/internal/domain"
	"github.com/vanshika/fintrace/investigator/internal/payload"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestFraudPatternShape(t *testing.T) {
	gen := New(Config{Wallet: "0xW", Mode: ModeFraud, Seed: 7}).WithClock(fixedNow)
	transfers := gen.Transfers("0xW", ModeFraud)

	victims, mules, exits := 0, 0, 0
	for _, tx := range transfers {
		switch {
		case strings.HasPrefix(tx.From, "VICTIM_"):
			if tx.To != "0xW" {
				t.Fatalf("victim must pay the wallet, got %+v", tx)
			}
			victims++
		case tx.From == "0xW" && strings.HasPrefix(tx.To, "MULE_"):
			mules++
		case strings.HasPrefix(tx.To, "EXIT_"):
			exits++
		}
		if !tx.Suspicious || tx.Type != "TRANSFER" {
			t.Fatalf("scam transfers should be flagged, got %+v", tx)
		}
		if _, ok := domain.ParseTimestamp(tx.Timestamp); !ok {
			t.Fatalf("unparseable timestamp %q", tx.Timestamp)
		}
	}
	if victims < 5 || victims > 10 {
		t.Fatalf("expected 5-10 victims, got %d", victims)
	}
	if mules < 3 || mules > 6 {
		t.Fatalf("expected 3-6 mules, got %d", mules)
	}
	if exits != mules {
		t.Fatalf("expected one exit per mule, got %d exits for %d mules", exits, mules)
	}
}

func TestTransfersAreNumberedAndMixedWithNormalActivity(t *testing.T) {
	gen := New(Config{Mode: ModeRansomware, NormalDays: 3, Seed: 11}).WithClock(fixedNow)
	transfers := gen.Transfers("0xW", ModeRansomware)

	sawNormal := false
	for i, tx := range transfers {
		if tx.ID != int64(i+1) {
			t.Fatalf("transfer %d has id %d", i, tx.ID)
		}
		if strings.HasPrefix(tx.From, "USER_") {
			sawNormal = true
			if tx.Suspicious {
				t.Fatalf("background activity should not be flagged")
			}
		}
	}
	if !sawNormal {
		t.Fatalf("expected USER background activity")
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := Config{Mode: ModeMoneyLaundering, Reports: 2, NormalDays: 1, Seed: 99}
	a, err := New(cfg).WithClock(fixedNow).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := New(cfg).WithClock(fixedNow).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical datasets for the same seed")
	}
	if len(a.Payloads) != 2 || a.Payloads[0].ReportID != "RPT-99-0001" {
		t.Fatalf("unexpected payloads %d %q", len(a.Payloads), a.Payloads[0].ReportID)
	}
	for _, p := range a.Payloads {
		if !strings.HasPrefix(p.Wallet, "0x") || len(p.Wallet) != 42 {
			t.Fatalf("unexpected wallet %q", p.Wallet)
		}
		if err := payload.Validate(p); err != nil {
			t.Fatalf("generated payload invalid: %v", err)
		}
		if len(p.GraphData) == 0 || len(p.Timeline) != len(p.Transactions) {
			t.Fatalf("incomplete payload: %d edges %d points %d records", len(p.GraphData), len(p.Timeline), len(p.Transactions))
		}
	}
}

func TestGenerateHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(Config{Reports: 3, Seed: 1}).Generate(ctx); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestEveryModeProducesTransfers(t *testing.T) {
	gen := New(Config{Seed: 5}).WithClock(fixedNow)
	for _, mode := range Modes() {
		if got := gen.Transfers("0xW", mode); len(got) == 0 {
			t.Errorf("mode %s produced no transfers", mode)
		}
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode(" Ponzi "); err != nil || m != ModePonzi {
		t.Fatalf("unexpected parse result %q %v", m, err)
	}
	if _, err := ParseMode("pump"); err == nil {
		t.Fatalf("expected unknown mode error")
	}
}

func TestWriteDataset(t *testing.T) {
	dataset, err := New(Config{Wallet: "0xW", Reports: 2, Seed: 3}).WithClock(fixedNow).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	dir := filepath.Join(t.TempDir(), "out")
	paths, err := WriteDataset(dataset, dir)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(paths) != 2 || filepath.Base(paths[1]) != "RPT-3-0002.json" {
		t.Fatalf("unexpected paths %v", paths)
	}
	p, err := payload.DecodeFile(paths[0])
	if err != nil {
		t.Fatalf("decode written payload: %v", err)
	}
	if p.Wallet != "0xW" {
		t.Fatalf("unexpected wallet %q", p.Wallet)
	}
	if _, err := os.Stat(paths[1]); err != nil {
		t.Fatalf("stat: %v", err)
	}
}
