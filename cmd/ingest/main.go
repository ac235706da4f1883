package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/vanshika/fintrace/investigator/internal/config"
	"github.com/vanshika/fintrace/investigator/internal/domain"
	"github.com/vanshika/fintrace/investigator/internal/graph"
	"github.com/vanshika/fintrace/investigator/internal/logging"
	"github.com/vanshika/fintrace/investigator/internal/payload"
	"github.com/vanshika/fintrace/investigator/internal/repository"
	"github.com/vanshika/fintrace/investigator/internal/service"
)

var errMissingDataset = errors.New("dataset not found")

func main() {
	var (
		datasetDir  = flag.String("dataset-dir", "./data", "directory containing payload JSON files")
		payloadPath = flag.String("payload", "", "single payload file (overrides dataset-dir)")
		workers     = flag.Int("workers", 0, "number of concurrent workers (defaults to INGEST_WORKERS)")
	)
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(config.FromEnviron())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *workers > 0 {
		cfg.Ingest.Workers = *workers
	}

	logger := logging.New(cfg.Logging, nil).With("component", "ingest")

	files, err := resolvePayloadPaths(*datasetDir, *payloadPath)
	if err != nil {
		logger.Error("dataset resolution failed", "error", err)
		os.Exit(1)
	}

	payloads := make([]domain.Payload, 0, len(files))
	for _, path := range files {
		p, err := payload.DecodeFile(path)
		if err != nil {
			logger.Error("failed to load payload", "error", err, "path", path)
			os.Exit(1)
		}
		payloads = append(payloads, p)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	graphClient, err := buildGraphClient(ctx, logger, cfg)
	if err != nil {
		logger.Error("failed to create graph client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := graphClient.Close(context.Background()); err != nil {
			logger.Warn("closing graph client failed", "error", err)
		}
	}()

	repo := repository.New(graphClient)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("schema setup failed", "error", err)
		os.Exit(1)
	}

	svc := service.NewReportService(repo, repo, logger)
	ingestor := service.NewBulkIngestor(svc, cfg.Ingest.Workers)

	start := time.Now()
	total := 0
	for i, p := range payloads {
		logger.Info("ingesting payload", "wallet", p.Wallet, "report", p.ReportID, "file", files[i], "workers", cfg.Ingest.Workers)
		n, err := ingestor.IngestPayload(ctx, p)
		if err != nil {
			logger.Error("payload ingestion failed", "error", err, "file", files[i])
			os.Exit(1)
		}
		stored, err := repo.CountTransfers(ctx, p.Wallet)
		if err != nil {
			logger.Warn("counting stored transfers failed", "error", err, "wallet", p.Wallet)
		} else {
			logger.Debug("wallet transfers stored", "wallet", p.Wallet, "count", stored)
		}
		total += n
	}

	logger.Info("ingestion complete", "duration", time.Since(start).String(), "payloads", len(payloads), "transfers", total)
}

func resolvePayloadPaths(baseDir, payloadPath string) ([]string, error) {
	if payloadPath != "" {
		if _, err := os.Stat(payloadPath); err != nil {
			return nil, fmt.Errorf("stat %s: %w", payloadPath, err)
		}
		return []string{payloadPath}, nil
	}
	matches, err := filepath.Glob(filepath.Join(baseDir, "*.json"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no *.json in %s", errMissingDataset, baseDir)
	}
	sort.Strings(matches)
	return matches, nil
}

func buildGraphClient(ctx context.Context, logger *slog.Logger, cfg config.Config) (graph.Client, error) {
	if cfg.Graph.URI == "" {
		return nil, fmt.Errorf("GRAPH_URI is required for ingestion")
	}
	opts := graph.Options{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
	}
	client, err := graph.NewNeo4jClient(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to graph", "uri", cfg.Graph.URI, "database", cfg.Graph.Database)
	return client, nil
}
