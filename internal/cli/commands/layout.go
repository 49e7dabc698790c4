package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapboard/internal/cli/config"
	"github.com/leapstack-labs/leapboard/pkg/core"
	"github.com/leapstack-labs/leapboard/pkg/layout"
)

// LayoutOptions holds options for the layout command.
type LayoutOptions struct {
	Compact bool // Compact vertical gaps after layout
	Grid    bool // Draw the grid occupancy map
}

// NewLayoutCommand creates the layout command.
func NewLayoutCommand() *cobra.Command {
	opts := &LayoutOptions{}
	cmd := &cobra.Command{
		Use:   "layout <document>",
		Short: "Preview the computed tile layout",
		Long: `Run the auto-layout engine over a document and print the resulting
grid positions without compiling or submitting anything.`,
		Example: `  # Show computed positions
  leapboard layout dashboards/revenue.yaml

  # Show the grid occupancy map
  leapboard layout dashboards/revenue.yaml --grid`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Compact, "compact", false, "Compact vertical gaps after layout")
	cmd.Flags().BoolVar(&opts.Grid, "grid", false, "Draw the grid occupancy map")

	return cmd
}

func runLayout(cmd *cobra.Command, path string, opts *LayoutOptions) error {
	cfg := config.GetConfig(cmd.Context())

	d, err := loadDocument(path, cfg)
	if err != nil {
		return err
	}

	layout.AutoPositionDashboard(d)
	if opts.Compact {
		d.Tiles = layout.Compact(d.Tiles)
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Tile", "Chart", "X", "Y", "W", "H"})
	for i := range d.Tiles {
		tile := &d.Tiles[i]
		p := tile.Position
		t.AppendRow(table.Row{tile.Name, tile.ChartType, p.X, p.Y, p.W, p.H})
	}
	for i := range d.TextTiles {
		p := d.TextTiles[i].Position
		t.AppendRow(table.Row{fmt.Sprintf("(text %d)", i+1), core.ChartText, p.X, p.Y, p.W, p.H})
	}
	t.SetStyle(table.StyleLight)
	t.Render()

	if opts.Grid {
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprint(cmd.OutOrStdout(), renderGrid(d))
	}
	return nil
}

// renderGrid draws the occupancy map, one letter per tile.
func renderGrid(d *core.Dashboard) string {
	maxY := 0
	mark := func(p *core.Position) {
		if p != nil && p.Y+p.H > maxY {
			maxY = p.Y + p.H
		}
	}
	for i := range d.Tiles {
		mark(d.Tiles[i].Position)
	}
	for i := range d.TextTiles {
		mark(d.TextTiles[i].Position)
	}

	rows := make([][]byte, maxY)
	for y := range rows {
		rows[y] = []byte(strings.Repeat(".", core.GridColumns))
	}
	fill := func(p *core.Position, label byte) {
		if p == nil {
			return
		}
		for y := p.Y; y < p.Y+p.H && y < maxY; y++ {
			for x := p.X; x < p.X+p.W && x < core.GridColumns; x++ {
				rows[y][x] = label
			}
		}
	}
	// Labels wrap after Z; dashboards that big are unreadable here anyway.
	for i := range d.Tiles {
		fill(d.Tiles[i].Position, byte('A'+i%26))
	}
	for i := range d.TextTiles {
		fill(d.TextTiles[i].Position, byte('A'+(len(d.Tiles)+i)%26))
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.Write(row)
		sb.WriteByte('\n')
	}
	return sb.String()
}
