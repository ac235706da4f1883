package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanshika/fintrace/investigator/internal/ui"
)

func exportCmd(a *app) *cobra.Command {
	var (
		flags ledgerFlags
		out   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered ledger as CSV",
		Long:  "Write every transaction passing the filters, in sort order and across all pages, to transactions-<ms>.csv.",
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
			if err := sess.Replay(events); err != nil {
				return err
			}

			dir := out
			if dir == "" {
				dir = a.cfg.Ledger.ExportDir
			}
			path, err := a.svc.ExportCSV(sess, dir)
			if err != nil {
				return err
			}
			total := sess.Ledger().View().Pagination.TotalItems
			fmt.Fprintf(cmd.OutOrStdout(), "%s Exported %d transactions to %s\n", ui.StatusIcon(true), total, path)
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (defaults to LEDGER_EXPORT_DIR)")
	return cmd
}
