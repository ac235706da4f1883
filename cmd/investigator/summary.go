package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vanshika/fintrace/investigator/internal/service"
	"github.com/vanshika/fintrace/investigator/internal/timeline"
	"github.com/vanshika/fintrace/investigator/internal/ui"
)

const timelineBarWidth = 30

func summaryCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the case overview, flow summary and transaction timeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.payloadPath == "" {
				return errPayloadRequired
			}
			p, err := a.svc.LoadFile(a.payloadPath)
			if err != nil {
				return err
			}
			overview := a.svc.Overview(p)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), overview)
			}
			printOverview(cmd.OutOrStdout(), overview, a.now())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the overview as JSON")
	return cmd
}

func bandColor(band service.RiskBand) *color.Color {
	switch band {
	case service.BandCritical:
		return ui.Alert
	case service.BandHigh:
		return ui.Bad
	case service.BandMedium:
		return ui.Warn
	default:
		return ui.Good
	}
}

func printOverview(w io.Writer, o service.CaseOverview, now time.Time) {
	ui.Banner(w, "case summary")

	ui.KeyValue(w, "Wallet", o.Wallet)
	if o.ReportID != "" {
		ui.KeyValue(w, "Report", o.ReportID)
	}
	ui.KeyValue(w, "Risk", bandColor(o.Band).Sprintf("%.2f %s", o.RiskScore, strings.ToUpper(o.RiskLevel)))
	if len(o.DetectedPatterns) > 0 {
		ui.KeyValue(w, "Patterns", strings.Join(o.DetectedPatterns, ", "))
	}
	if o.Conclusion != "" {
		ui.KeyValue(w, "Conclusion", o.Conclusion)
	}
	if o.DroppedEdges > 0 {
		ui.KeyValue(w, "Graph data", fmt.Sprintf("%s %d malformed edges skipped", ui.WarnIcon(), o.DroppedEdges))
	}

	fmt.Fprintln(w)
	ui.Info.Fprintln(w, "  Flow")
	s := o.Summary
	ui.KeyValue(w, "Total in", fmt.Sprintf("%.2f", s.TotalIn))
	ui.KeyValue(w, "Total out", fmt.Sprintf("%.2f", s.TotalOut))
	net := ui.Good
	if o.NetFlow < 0 {
		net = ui.Bad
	}
	ui.KeyValue(w, "Net flow", net.Sprintf("%+.2f", o.NetFlow))
	ui.KeyValue(w, "Transactions", fmt.Sprintf("%d", s.TxCount))
	ui.KeyValue(w, "Unique senders", fmt.Sprintf("%d", s.UniqueSenders))
	ui.KeyValue(w, "Unique receivers", fmt.Sprintf("%d", s.UniqueReceivers))
	if s.PatternType != "" {
		ui.KeyValue(w, "Pattern", s.PatternType)
	}

	fmt.Fprintln(w)
	ui.Info.Fprintln(w, "  Timeline")
	if len(o.Timeline.Bars) == 0 {
		ui.Subtle.Fprintln(w, "  No timeline data")
		return
	}
	peak := o.Timeline.Peak()
	for i, b := range o.Timeline.Bars {
		marker := ""
		if i == peak {
			marker = ui.Subtle.Sprint(" peak")
		}
		fmt.Fprintf(w, "  %-6s %s %12.2f  %s%s\n",
			b.Label,
			ui.Bar(b.Ratio, timelineBarWidth, ui.ForHex(b.Color)),
			b.Amount,
			ui.Subtle.Sprint(timeline.Relative(b.Timestamp, now)),
			marker,
		)
	}
}
