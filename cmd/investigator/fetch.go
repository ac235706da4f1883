package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vanshika/fintrace/investigator/internal/config"
	"github.com/vanshika/fintrace/investigator/internal/domain"
	"github.com/vanshika/fintrace/investigator/internal/graph"
	"github.com/vanshika/fintrace/investigator/internal/payload"
	"github.com/vanshika/fintrace/investigator/internal/repository"
	"github.com/vanshika/fintrace/investigator/internal/ui"
)

func fetchCmd(a *app) *cobra.Command {
	var (
		wallet string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Build a payload for a wallet from the graph database",
		Long:  "Read the wallet's transfer neighbourhood from Neo4j, score it and write the analysis payload as JSON.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if wallet == "" {
				return fmt.Errorf("--wallet is required")
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			client, err := buildGraphClient(ctx, a.logger, a.cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := client.Close(context.Background()); err != nil {
					a.logger.Warn("closing graph client failed", "error", err)
				}
			}()

			repo := repository.New(client)
			p, err := a.newService(repo, repo).Fetch(ctx, wallet)
			if err != nil {
				return err
			}
			return writePayload(cmd.OutOrStdout(), out, p)
		},
	}

	cmd.Flags().StringVarP(&wallet, "wallet", "w", "", "wallet address to investigate")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (defaults to stdout)")
	return cmd
}

func writePayload(stdout io.Writer, path string, p domain.Payload) error {
	if path == "" || path == "-" {
		return payload.Encode(stdout, p)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := payload.Encode(file, p); err != nil {
		_ = file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s Wrote payload for %s to %s\n", ui.StatusIcon(true), p.Wallet, path)
	return nil
}

func buildGraphClient(ctx context.Context, logger *slog.Logger, cfg config.Config) (graph.Client, error) {
	if cfg.Graph.URI == "" {
		return nil, fmt.Errorf("GRAPH_URI is required to fetch from the graph database")
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
