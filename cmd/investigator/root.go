package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/vanshika/fintrace/investigator/internal/config"
	"github.com/vanshika/fintrace/investigator/internal/logging"
	"github.com/vanshika/fintrace/investigator/internal/repository"
	"github.com/vanshika/fintrace/investigator/internal/service"
	"github.com/vanshika/fintrace/investigator/internal/session"
	"github.com/vanshika/fintrace/investigator/internal/ui"
)

var version = "0.3.0"

var errPayloadRequired = errors.New("--payload is required")

// app carries state shared by every subcommand of one invocation.
type app struct {
	payloadPath string
	logLevel    string

	env    config.EnvSource
	now    func() time.Time
	cfg    config.Config
	logger *slog.Logger
	svc    *service.ReportService
}

func newApp(env config.EnvSource) *app {
	return &app{env: env, now: time.Now}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "investigator",
		Short: "investigator · wallet money flow and ledger explorer",
		Long: ui.Brand.Sprint("fintrace investigator") + " · explore a flagged wallet's money flow\n" +
			ui.Subtle.Sprint("Render the flow graph, filter the ledger and export evidence from an analysis payload"),
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.payloadPath, "payload", "p", "", "analysis payload JSON file (- for stdin)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(graphCmd(a))
	root.AddCommand(ledgerCmd(a))
	root.AddCommand(exportCmd(a))
	root.AddCommand(replayCmd(a))
	root.AddCommand(summaryCmd(a))
	root.AddCommand(fetchCmd(a))
	root.AddCommand(doctorCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	ui.SetColor(cfg.Render.Color)

	a.cfg = cfg
	a.logger = logging.New(cfg.Logging, cmd.ErrOrStderr()).With("component", "investigator", "command", cmd.Name())
	a.svc = a.newService(nil, nil)
	return nil
}

func (a *app) newService(source service.PayloadSource, store service.TransferStore) *service.ReportService {
	svc := service.NewReportService(source, store, a.logger)
	svc.WithClock(a.now)
	svc.WithFetchOptions(repository.FetchOptions{
		MaxHops: a.cfg.Graph.MaxHops,
		Limit:   a.cfg.Graph.FetchLimit,
	})
	return svc
}

func (a *app) openSession() (*session.Session, error) {
	if a.payloadPath == "" {
		return nil, errPayloadRequired
	}
	p, err := a.svc.LoadFile(a.payloadPath)
	if err != nil {
		return nil, err
	}
	return a.svc.Open(p), nil
}
