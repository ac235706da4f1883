package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vanshika/fintrace/investigator/internal/graph"
	"github.com/vanshika/fintrace/investigator/internal/ui"
)

const probeTimeout = 10 * time.Second

func doctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "doctor",
		Aliases: []string{"dr"},
		Short:   "Health check: payload, export directory and graph connectivity",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			ui.Banner(w, "health check")

			failures := 0
			if a.payloadPath != "" {
				if !a.checkPayload(w) {
					failures++
				}
			}
			if !checkExportDir(w, a.cfg.Ledger.ExportDir) {
				failures++
			}
			if !a.checkGraph(cmd.Context(), w) {
				failures++
			}

			fmt.Fprintln(w)
			if failures > 0 {
				return fmt.Errorf("%d check(s) failed", failures)
			}
			ui.Good.Fprintln(w, "  All checks passed")
			return nil
		},
	}
}

func (a *app) checkPayload(w io.Writer) bool {
	p, err := a.svc.LoadFile(a.payloadPath)
	if err != nil {
		fmt.Fprintf(w, "  %s payload    %v\n", ui.StatusIcon(false), err)
		return false
	}
	sess := a.svc.Open(p)
	fmt.Fprintf(w, "  %s payload    %s: %d edges, %d transactions\n",
		ui.StatusIcon(true), p.Wallet, len(p.GraphData), len(p.Transactions))
	if dropped := sess.Model().Dropped(); dropped > 0 {
		fmt.Fprintf(w, "  %s payload    %d malformed edges will be skipped\n", ui.WarnIcon(), dropped)
	}
	return true
}

func checkExportDir(w io.Writer, dir string) bool {
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		fmt.Fprintf(w, "  %s export     %s will be created on first export\n", ui.WarnIcon(), dir)
		return true
	case err != nil:
		fmt.Fprintf(w, "  %s export     %v\n", ui.StatusIcon(false), err)
		return false
	case !info.IsDir():
		fmt.Fprintf(w, "  %s export     %s is not a directory\n", ui.StatusIcon(false), dir)
		return false
	}
	fmt.Fprintf(w, "  %s export     %s\n", ui.StatusIcon(true), dir)
	return true
}

func (a *app) checkGraph(ctx context.Context, w io.Writer) bool {
	if a.cfg.Graph.URI == "" {
		fmt.Fprintf(w, "  %s graph      GRAPH_URI not set, fetch is unavailable\n", ui.WarnIcon())
		return true
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	client, err := buildGraphClient(ctx, a.logger, a.cfg)
	if err != nil {
		fmt.Fprintf(w, "  %s graph      %v\n", ui.StatusIcon(false), err)
		return false
	}
	defer func() { _ = client.Close(context.Background()) }()

	if err := graph.Probe(ctx, client); err != nil {
		fmt.Fprintf(w, "  %s graph      %v\n", ui.StatusIcon(false), err)
		return false
	}
	fmt.Fprintf(w, "  %s graph      %s\n", ui.StatusIcon(true), a.cfg.Graph.URI)
	return true
}
