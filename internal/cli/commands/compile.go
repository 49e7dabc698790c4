package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapboard/internal/cli/config"
	"github.com/leapstack-labs/leapboard/pkg/layout"
	"github.com/leapstack-labs/leapboard/pkg/omni"
)

// CompileOptions holds options for the compile command.
type CompileOptions struct {
	Output   string // Output file (default stdout)
	NoLayout bool   // Skip auto-positioning
	Compact  bool   // Compact vertical gaps after layout
}

// NewCompileCommand creates the compile command.
func NewCompileCommand() *cobra.Command {
	opts := &CompileOptions{}
	cmd := &cobra.Command{
		Use:   "compile <document>",
		Short: "Compile a document into a platform creation payload",
		Long: `Decode a dashboard document, fill in missing tile positions and emit
the platform's creation payload as JSON. Nothing is submitted; use
push for that.`,
		Example: `  # Compile to stdout
  leapboard compile dashboards/revenue.yaml

  # Write the payload to a file
  leapboard compile dashboards/revenue.yaml -o payload.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&opts.NoLayout, "no-layout", false, "Skip auto-positioning of unplaced tiles")
	cmd.Flags().BoolVar(&opts.Compact, "compact", false, "Compact vertical gaps after layout")

	return cmd
}

func runCompile(cmd *cobra.Command, path string, opts *CompileOptions) error {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	d, err := loadDocument(path, cfg)
	if err != nil {
		return err
	}

	if !opts.NoLayout {
		layout.AutoPositionDashboard(d)
		if opts.Compact {
			d.Tiles = layout.Compact(d.Tiles)
		}
	}

	payload, err := omni.BuildCreatePayload(d)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("compiled document", "path", path, "tiles", len(payload.QueryPresentations))

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}
	out = append(out, '\n')
	return writeOutput(cmd, opts.Output, out)
}
