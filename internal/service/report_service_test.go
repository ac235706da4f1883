package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vanshika/fintrace/investigator/internal/domain"
	"github.com/vanshika/fintrace/investigator/internal/repository"
	"github.com/vanshika/fintrace/investigator/internal/session"
)

type stubRepository struct {
	mu          sync.Mutex
	transfers   []domain.Transfer
	wallets     []string
	transferErr error
	payload     domain.Payload
	fetchErr    error
	fetchOpts   repository.FetchOptions
}

func (s *stubRepository) UpsertTransfer(ctx context.Context, wallet string, tx domain.Transfer) error {
	if s.transferErr != nil {
		return s.transferErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wallets = append(s.wallets, wallet)
	s.transfers = append(s.transfers, tx)
	return nil
}

func (s *stubRepository) FetchWalletPayload(ctx context.Context, wallet string, opts repository.FetchOptions) (domain.Payload, error) {
	if s.fetchErr != nil {
		return domain.Payload{}, s.fetchErr
	}
	s.fetchOpts = opts
	p := s.payload
	p.Wallet = wallet
	return p, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func samplePayload() domain.Payload {
	return domain.Payload{
		Wallet: "0xW",
		GraphData: []domain.FlowEdge{
			{From: "0xA", To: "0xW", Amount: 1000},
			{From: "", To: "0xW", Amount: 5},
			{From: "0xW", To: "0xB", Amount: 400},
		},
		Transactions: []domain.TransactionRecord{
			{ID: 1, FromAddress: "0xA", ToAddress: "0xW", Amount: 1000, Direction: domain.DirectionIncoming, Timestamp: "2024-03-01T10:00:00Z"},
			{ID: 2, FromAddress: "0xW", ToAddress: "0xB", Amount: 400, Direction: domain.DirectionOutgoing, Timestamp: "2024-03-01T11:00:00Z"},
			{ID: 3, FromAddress: "0xA", ToAddress: "0xW", Amount: 50, Direction: domain.DirectionIncoming},
		},
		Timeline: []domain.TimelinePoint{
			{Time: "10:00", Amount: 1000},
			{Time: "11:00", Amount: 400},
		},
		RiskScore: 0.65,
	}
}

func TestReportService_UpsertTransferNormalizes(t *testing.T) {
	repo := &stubRepository{}
	svc := NewReportService(repo, repo, quietLogger())

	err := svc.UpsertTransfer(context.Background(), TransferInput{
		Wallet:    " 0xW ",
		ID:        4,
		From:      " 0xA\t",
		To:        "0x B",
		Amount:    -5,
		Timestamp: "2024-03-01T10:00:00",
		Type:      "  cross   chain ",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(repo.transfers) != 1 {
		t.Fatalf("expected 1 transfer persisted, got %d", len(repo.transfers))
	}
	tx := repo.transfers[0]
	if repo.wallets[0] != "0xW" || tx.From != "0xA" || tx.To != "0xB" {
		t.Errorf("expected normalized addresses, got %q %q %q", repo.wallets[0], tx.From, tx.To)
	}
	if tx.Amount != 0 {
		t.Errorf("expected negative amount clamped to 0, got %v", tx.Amount)
	}
	if tx.Timestamp != "2024-03-01T10:00:00Z" || tx.Type != "cross chain" {
		t.Errorf("unexpected timestamp/type %q %q", tx.Timestamp, tx.Type)
	}
}

func TestReportService_UpsertTransferValidation(t *testing.T) {
	repo := &stubRepository{}
	svc := NewReportService(repo, repo, quietLogger())

	if err := svc.UpsertTransfer(context.Background(), TransferInput{From: "a", To: "b"}); !errors.Is(err, repository.ErrWalletRequired) {
		t.Fatalf("expected ErrWalletRequired, got %v", err)
	}
	if err := svc.UpsertTransfer(context.Background(), TransferInput{Wallet: "w", From: "a"}); err == nil {
		t.Fatalf("expected error for missing receiver")
	}

	noStore := NewReportService(nil, nil, quietLogger())
	if err := noStore.UpsertTransfer(context.Background(), TransferInput{Wallet: "w", From: "a", To: "b"}); !errors.Is(err, ErrNoSource) {
		t.Fatalf("expected ErrNoSource, got %v", err)
	}
}

func TestReportService_Fetch(t *testing.T) {
	repo := &stubRepository{payload: samplePayload()}
	svc := NewReportService(repo, repo, quietLogger())
	svc.WithFetchOptions(repository.FetchOptions{MaxHops: 2})

	p, err := svc.Fetch(context.Background(), "  0xW ")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if p.Wallet != "0xW" || repo.fetchOpts.MaxHops != 2 {
		t.Fatalf("unexpected fetch result %q opts %+v", p.Wallet, repo.fetchOpts)
	}

	repo.fetchErr = errors.New("bolt down")
	if _, err := svc.Fetch(context.Background(), "0xW"); !errors.Is(err, repo.fetchErr) {
		t.Fatalf("expected wrapped fetch error, got %v", err)
	}

	if _, err := NewReportService(nil, nil, quietLogger()).Fetch(context.Background(), "0xW"); !errors.Is(err, ErrNoSource) {
		t.Fatalf("expected ErrNoSource, got %v", err)
	}
}

func TestReportService_OverviewDerivesSummary(t *testing.T) {
	svc := NewReportService(nil, nil, quietLogger())
	o := svc.Overview(samplePayload())

	if o.Summary.TotalIn != 1050 || o.Summary.TotalOut != 400 || o.NetFlow != 650 {
		t.Fatalf("unexpected summary %+v net=%v", o.Summary, o.NetFlow)
	}
	if o.Summary.UniqueSenders != 1 || o.Summary.UniqueReceivers != 1 {
		t.Fatalf("unexpected counterparties %+v", o.Summary)
	}
	if o.RiskLevel != "HIGH" || o.Band != BandHigh {
		t.Fatalf("expected derived HIGH band, got %s %s", o.RiskLevel, o.Band)
	}
	if o.DroppedEdges != 1 {
		t.Fatalf("expected 1 dropped edge, got %d", o.DroppedEdges)
	}
	if o.Timeline.Max != 1000 || len(o.Timeline.Bars) != 2 {
		t.Fatalf("unexpected timeline %+v", o.Timeline)
	}

	given := samplePayload()
	given.Summary = &domain.FlowSummary{TotalIn: 1, TxCount: 9}
	if got := svc.Summary(given); got.TxCount != 9 {
		t.Fatalf("expected payload summary to win, got %+v", got)
	}
}

func TestBandFor(t *testing.T) {
	cases := map[string]RiskBand{
		"VERY HIGH":       BandCritical,
		"critical":        BandCritical,
		"critical risk":   BandCritical,
		"Very High Risk":  BandCritical,
		"High":            BandHigh,
		"HIGH RISK":       BandHigh,
		"MEDIUM":          BandMedium,
		"medium exposure": BandMedium,
		"LOW":             BandLow,
		"":                BandLow,
	}
	for level, want := range cases {
		if got := BandFor(level); got != want {
			t.Errorf("BandFor(%q) = %s, want %s", level, got, want)
		}
	}
}

func TestReportService_OpenSharesModels(t *testing.T) {
	svc := NewReportService(nil, nil, quietLogger())
	a := svc.Open(samplePayload())
	b := svc.Open(samplePayload())
	if a.Model() != b.Model() {
		t.Fatalf("expected memoized model across sessions")
	}
	if a.Model().Dropped() != 1 {
		t.Fatalf("expected malformed edge dropped")
	}
}

func TestReportService_ExportCSV(t *testing.T) {
	svc := NewReportService(nil, nil, quietLogger())
	now := time.UnixMilli(1710000000000)
	svc.WithClock(func() time.Time { return now })

	sess := svc.Open(samplePayload())
	if err := sess.Apply(session.Event{Type: session.EventFilter, Direction: "incoming"}); err != nil {
		t.Fatalf("filter: %v", err)
	}

	dir := filepath.Join(t.TempDir(), "exports")
	path, err := svc.ExportCSV(sess, dir)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if filepath.Base(path) != "transactions-1710000000000.csv" {
		t.Fatalf("unexpected export path %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 incoming rows, got %d", len(lines))
	}
}

func TestReportService_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	doc := `{"wallet":"0xW","graph_data":[{"from":"0xA","to":"0xW","amount":10}],"timeline":[]}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	svc := NewReportService(nil, nil, quietLogger())
	p, err := svc.LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Wallet != "0xW" || len(p.GraphData) != 1 {
		t.Fatalf("unexpected payload %+v", p)
	}
}
