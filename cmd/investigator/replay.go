package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vanshika/fintrace/investigator/internal/session"
)

func replayCmd(a *app) *cobra.Command {
	var (
		eventsPath string
		every      bool
	)

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Apply a JSON-lines interaction script and print snapshots",
		Long: "Replay zoom, drag, hover, click, search, filter, sort and page events against the payload.\n" +
			"Prints the final snapshot, or one compact snapshot per event with --every.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if eventsPath == "" {
				return fmt.Errorf("--events is required")
			}
			script, err := readScript(cmd.InOrStdin(), eventsPath)
			if err != nil {
				return err
			}
			events, err := session.ParseEvents(script)
			if err != nil {
				return fmt.Errorf("parse events: %w", err)
			}

			sess, err := a.openSession()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !every {
				if err := sess.Replay(events); err != nil {
					return err
				}
				return writeJSON(out, sess.Snapshot())
			}

			enc := json.NewEncoder(out)
			for i, ev := range events {
				if err := sess.Apply(ev); err != nil {
					return fmt.Errorf("event %d (%s): %w", i+1, ev.Type, err)
				}
				if err := enc.Encode(sess.Snapshot()); err != nil {
					return err
				}
			}
			a.logger.Debug("replay finished", "events", len(events))
			return nil
		},
	}

	cmd.Flags().StringVarP(&eventsPath, "events", "e", "", "JSON-lines event script (- for stdin)")
	cmd.Flags().BoolVar(&every, "every", false, "print a snapshot after every event")
	return cmd
}

func readScript(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read events: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read events: %w", err)
	}
	return string(data), nil
}
