package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vanshika/fintrace/investigator/internal/flowgraph"
	"github.com/vanshika/fintrace/investigator/internal/session"
	"github.com/vanshika/fintrace/investigator/internal/ui"
)

func graphCmd(a *app) *cobra.Command {
	var (
		selectID string
		hoverID  string
		search   string
		zoom     int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the money flow graph of the payload",
		Long:  "Classify, lay out and style every address in graph_data, optionally with a selected, hovered or searched node.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.openSession()
			if err != nil {
				return err
			}

			events := zoomEvents(zoom)
			if selectID != "" {
				events = append(events, session.Event{Type: session.EventClick, ID: selectID})
			}
			if hoverID != "" {
				events = append(events, session.Event{Type: session.EventHover, ID: hoverID})
			}
			if search != "" {
				events = append(events, session.Event{Type: session.EventSearch, Query: search})
			}
			if err := sess.Replay(events); err != nil {
				return err
			}

			scene := sess.Snapshot().Scene
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), scene)
			}
			printScene(cmd.OutOrStdout(), scene)
			return nil
		},
	}

	cmd.Flags().StringVar(&selectID, "select", "", "address to select (click)")
	cmd.Flags().StringVar(&hoverID, "hover", "", "address to hover")
	cmd.Flags().StringVar(&search, "search", "", "highlight addresses containing this text")
	cmd.Flags().IntVar(&zoom, "zoom", 0, "zoom steps (negative zooms out)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the scene as JSON")
	return cmd
}

func zoomEvents(steps int) []session.Event {
	var events []session.Event
	for ; steps > 0; steps-- {
		events = append(events, session.Event{Type: session.EventZoomIn})
	}
	for ; steps < 0; steps++ {
		events = append(events, session.Event{Type: session.EventZoomOut})
	}
	return events
}

func printScene(w io.Writer, scene flowgraph.Scene) {
	ui.Banner(w, "money flow graph")
	ui.KeyValue(w, "Wallet", scene.Wallet)
	if scene.Empty {
		ui.Subtle.Fprintln(w, "  No graph data available")
		return
	}
	ui.KeyValue(w, "Zoom", fmt.Sprintf("%d%%", scene.Viewport.Percent))
	if scene.Viewport.PanHint {
		ui.KeyValue(w, "Pan", fmt.Sprintf("offset %.0f,%.0f (drag to move)", scene.Viewport.Pan.X, scene.Viewport.Pan.Y))
	}
	fmt.Fprintln(w)

	rows := make([][]string, 0, len(scene.Nodes))
	for _, n := range scene.Nodes {
		flow := n.Style.AmountLabel
		if flow == "" {
			flow = "-"
		}
		rows = append(rows, []string{
			n.Style.Label,
			flowgraph.RoleLabel(n.Role),
			flow,
			fmt.Sprintf("%.0f,%.0f", n.X, n.Y),
			fmt.Sprintf("%.2f", n.Style.Opacity),
			nodeMark(n),
		})
	}
	ui.Table(w, []string{"NODE", "ROLE", "FLOW", "POS", "OPACITY", ""}, rows)
	fmt.Fprintln(w)

	edgeRows := make([][]string, 0, len(scene.Edges))
	for _, e := range scene.Edges {
		edgeRows = append(edgeRows, []string{
			flowgraph.Label(e.From),
			flowgraph.Label(e.To),
			fmt.Sprintf("%.2f", e.Amount),
			fmt.Sprintf("%.1f", e.Style.Width),
			fmt.Sprintf("%.2f", e.Style.Opacity),
		})
	}
	ui.Table(w, []string{"FROM", "TO", "AMOUNT", "WIDTH", "OPACITY"}, edgeRows)

	if scene.Panel != nil {
		fmt.Fprintln(w)
		printPanel(w, *scene.Panel)
	}
}

func nodeMark(n flowgraph.SceneNode) string {
	switch n.Style.Stroke {
	case flowgraph.ColorSelected:
		return ui.Info.Sprint("selected")
	case flowgraph.ColorSearchMatch:
		return ui.Warn.Sprint("match")
	default:
		return ""
	}
}

func printPanel(w io.Writer, d flowgraph.Detail) {
	ui.Info.Fprintln(w, "  Node details")
	ui.KeyValue(w, "Address", d.ID)
	ui.KeyValue(w, "Role", d.RoleLabel)
	ui.KeyValue(w, "Connected nodes", fmt.Sprintf("%d", d.ConnectedNodes))
	ui.KeyValue(w, "Transactions", fmt.Sprintf("%d", d.Transactions))
	ui.KeyValue(w, "Total flow", d.FlowLabel())
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
