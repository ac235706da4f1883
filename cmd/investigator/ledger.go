package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vanshika/fintrace/investigator/internal/flowgraph"
	"github.com/vanshika/fintrace/investigator/internal/ledger"
	"github.com/vanshika/fintrace/investigator/internal/session"
	"github.com/vanshika/fintrace/investigator/internal/timeline"
	"github.com/vanshika/fintrace/investigator/internal/ui"
)

// ledgerFlags are the filter and sort options shared by ledger and export.
type ledgerFlags struct {
	min       float64
	max       float64
	direction string
	txType    string
	from      string
	to        string
	sortKey   string
	order     string
}

func (f *ledgerFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.min, "min", 0, "minimum amount (inclusive)")
	cmd.Flags().Float64Var(&f.max, "max", 0, "maximum amount (inclusive)")
	cmd.Flags().StringVar(&f.direction, "direction", "all", "incoming, outgoing, related or all")
	cmd.Flags().StringVar(&f.txType, "type", "", "transaction type substring (case-insensitive)")
	cmd.Flags().StringVar(&f.from, "from", "", "earliest date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.to, "to", "", "latest date, YYYY-MM-DD (whole day included)")
	cmd.Flags().StringVar(&f.sortKey, "sort", "", "sort column: amount or timestamp")
	cmd.Flags().StringVar(&f.order, "order", "", "sort order: asc or desc")
}

// events translates the flags into session events, validating enumerations up front.
func (f *ledgerFlags) events(cmd *cobra.Command) ([]session.Event, error) {
	direction := strings.ToLower(strings.TrimSpace(f.direction))
	switch direction {
	case "", "all", "incoming", "outgoing", "related":
	default:
		return nil, fmt.Errorf("invalid --direction %q", f.direction)
	}

	filter := session.Event{
		Type:      session.EventFilter,
		Direction: direction,
		TxType:    f.txType,
		DateFrom:  f.from,
		DateTo:    f.to,
	}
	if cmd.Flags().Changed("min") {
		v := f.min
		filter.MinAmount = &v
	}
	if cmd.Flags().Changed("max") {
		v := f.max
		filter.MaxAmount = &v
	}
	events := []session.Event{filter}

	if f.sortKey == "" && f.order == "" {
		return events, nil
	}
	key := ledger.SortKey(strings.ToLower(f.sortKey))
	switch key {
	case "":
		key = ledger.SortByTimestamp
	case ledger.SortByAmount, ledger.SortByTimestamp:
	default:
		return nil, fmt.Errorf("invalid --sort %q", f.sortKey)
	}
	order := ledger.SortDirection(strings.ToLower(f.order))
	switch order {
	case "":
		order = ledger.Descending
	case ledger.Ascending, ledger.Descending:
	default:
		return nil, fmt.Errorf("invalid --order %q", f.order)
	}
	return append(events, session.Event{Type: session.EventSort, Key: string(key), Order: string(order)}), nil
}

func ledgerCmd(a *app) *cobra.Command {
	var (
		flags  ledgerFlags
		page   int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Filter, sort and page the transaction ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.openSession()
			if err != nil {
				return err
			}
			events, err := flags.events(cmd)
			if err != nil {
				return err
			}
			events = append(events, session.Event{Type: session.EventPage, Page: page})
			if err := sess.Replay(events); err != nil {
				return err
			}

			view := sess.Ledger().View()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), view)
			}
			printLedger(cmd.OutOrStdout(), view, a.now())
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().IntVar(&page, "page", 1, "page number (clamped to the available pages)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the ledger view as JSON")
	return cmd
}

func printLedger(w io.Writer, view ledger.View, now time.Time) {
	ui.Banner(w, "transaction ledger")

	rows := make([][]string, 0, len(view.Items))
	for _, r := range view.Items {
		flag := ""
		if r.Suspicious {
			flag = ui.WarnIcon() + " suspicious"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.ID),
			timeline.Relative(r.Timestamp, now),
			flowgraph.Label(r.FromAddress),
			flowgraph.Label(r.ToAddress),
			fmt.Sprintf("%.2f", r.Amount),
			string(r.Direction),
			r.Type,
			flag,
		})
	}
	ui.Table(w, []string{"ID", "WHEN", "FROM", "TO", "AMOUNT", "DIRECTION", "TYPE", ""}, rows)

	p := view.Pagination
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Page %d of %d %s\n", p.Page, p.TotalPages,
		ui.Subtle.Sprintf("(%d transactions, sorted by %s %s)", p.TotalItems, view.Query.SortKey, view.Query.SortDirection))
}
