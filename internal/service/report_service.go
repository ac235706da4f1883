package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vanshika/fintrace/investigator/internal/domain"
	"github.com/vanshika/fintrace/investigator/internal/ledger"
	"github.com/vanshika/fintrace/investigator/internal/payload"
	"github.com/vanshika/fintrace/investigator/internal/repository"
	"github.com/vanshika/fintrace/investigator/internal/session"
	"github.com/vanshika/fintrace/investigator/internal/timeline"
)

// ErrNoSource is returned when a fetch is requested without a graph-backed source.
var ErrNoSource = errors.New("no payload source configured")

// PayloadSource supplies analysis payloads for a wallet.
type PayloadSource interface {
	FetchWalletPayload(ctx context.Context, wallet string, opts repository.FetchOptions) (domain.Payload, error)
}

// TransferStore persists individual transfers.
type TransferStore interface {
	UpsertTransfer(ctx context.Context, wallet string, tx domain.Transfer) error
}

// ReportService loads payloads, opens investigation sessions and writes ledger exports.
type ReportService struct {
	source    PayloadSource
	store     TransferStore
	cache     *session.ModelCache
	logger    *slog.Logger
	nowFn     func() time.Time
	fetchOpts repository.FetchOptions
}

// NewReportService constructs a ReportService. source and store may be nil when the
// graph database is not configured.
func NewReportService(source PayloadSource, store TransferStore, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		source: source,
		store:  store,
		cache:  session.NewModelCache(nil),
		logger: logger,
		nowFn:  time.Now,
	}
}

// WithClock overrides the time provider (used primarily in tests).
func (s *ReportService) WithClock(nowFn func() time.Time) {
	if nowFn != nil {
		s.nowFn = nowFn
	}
}

// WithFetchOptions bounds graph reads made by Fetch.
func (s *ReportService) WithFetchOptions(opts repository.FetchOptions) {
	s.fetchOpts = opts
}

// LoadFile decodes the payload at path ("-" for stdin).
func (s *ReportService) LoadFile(path string) (domain.Payload, error) {
	p, err := payload.DecodeFile(path)
	if err != nil {
		return domain.Payload{}, err
	}
	s.logger.Debug("payload loaded",
		"path", path,
		"wallet", p.Wallet,
		"edges", len(p.GraphData),
		"transactions", len(p.Transactions),
	)
	return p, nil
}

// Fetch builds a payload for wallet from the graph database.
func (s *ReportService) Fetch(ctx context.Context, wallet string) (domain.Payload, error) {
	if s.source == nil {
		return domain.Payload{}, ErrNoSource
	}
	wallet = sanitizeString(wallet)
	started := s.nowFn()
	p, err := s.source.FetchWalletPayload(ctx, wallet, s.fetchOpts)
	if err != nil {
		return domain.Payload{}, fmt.Errorf("fetch payload: %w", err)
	}
	s.logger.Info("payload fetched",
		"wallet", wallet,
		"edges", len(p.GraphData),
		"transactions", len(p.Transactions),
		"duration", s.nowFn().Sub(started),
	)
	return p, nil
}

// Open starts an investigation session. Models are shared across sessions opened by
// the same service.
func (s *ReportService) Open(p domain.Payload) *session.Session {
	sess := session.New(p, s.cache)
	if dropped := sess.Model().Dropped(); dropped > 0 {
		s.logger.Warn("dropped malformed graph edges", "wallet", p.Wallet, "count", dropped)
	}
	return sess
}

// Summary returns the payload's flow summary, deriving it from the ledger records when
// the payload does not carry one.
func (s *ReportService) Summary(p domain.Payload) domain.FlowSummary {
	if p.Summary != nil {
		return *p.Summary
	}
	return payload.SummarizeRecords(p.Transactions, p.Wallet)
}

// Overview assembles the case header, flow summary and timeline chart for p.
func (s *ReportService) Overview(p domain.Payload) CaseOverview {
	summary := s.Summary(p)
	level := p.RiskLevel
	if level == "" {
		level = payload.RiskLevel(p.RiskScore)
	}
	return CaseOverview{
		Wallet:           p.Wallet,
		ReportID:         p.ReportID,
		RiskScore:        p.RiskScore,
		RiskLevel:        level,
		Band:             BandFor(level),
		DetectedPatterns: p.DetectedPatterns,
		Conclusion:       p.SystemConclusion,
		Summary:          summary,
		NetFlow:          summary.NetFlow(),
		Timeline:         timeline.Bars(p.Timeline),
		DroppedEdges:     s.cache.Get(p.GraphData, p.Wallet).Dropped(),
	}
}

// ExportCSV writes the session's filtered ledger to dir and returns the file path.
func (s *ReportService) ExportCSV(sess *session.Session, dir string) (string, error) {
	data, err := sess.Ledger().Export()
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, ledger.ExportFilename(s.nowFn()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	s.logger.Info("ledger exported", "path", path, "bytes", len(data))
	return path, nil
}

// UpsertTransfer normalizes a transfer and persists it.
func (s *ReportService) UpsertTransfer(ctx context.Context, input TransferInput) error {
	if s.store == nil {
		return ErrNoSource
	}
	wallet := normalizeAddress(input.Wallet)
	if wallet == "" {
		return repository.ErrWalletRequired
	}
	tx := normalizeTransfer(input)
	if tx.From == "" || tx.To == "" {
		return fmt.Errorf("transfer %d: sender and receiver addresses are required", input.ID)
	}
	if math.IsNaN(tx.Amount) || math.IsInf(tx.Amount, 0) {
		return fmt.Errorf("transfer %d: amount must be finite", input.ID)
	}
	return s.store.UpsertTransfer(ctx, wallet, tx)
}

// BandFor maps a risk level label onto its colour band. Labels match by substring,
// most severe first, so "VERY HIGH" never falls through to high.
func BandFor(level string) RiskBand {
	level = strings.ToUpper(sanitizeString(level))
	switch {
	case strings.Contains(level, "VERY HIGH"), strings.Contains(level, "CRITICAL"):
		return BandCritical
	case strings.Contains(level, "HIGH"):
		return BandHigh
	case strings.Contains(level, "MEDIUM"):
		return BandMedium
	default:
		return BandLow
	}
}
