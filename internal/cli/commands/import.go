package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapboard/pkg/document"
	"github.com/leapstack-labs/leapboard/pkg/omni"
)

// ImportOptions holds options for the import command.
type ImportOptions struct {
	Output string // Output file (default stdout)
}

// NewImportCommand creates the import command.
func NewImportCommand() *cobra.Command {
	opts := &ImportOptions{}
	cmd := &cobra.Command{
		Use:   "import <export.json>",
		Short: "Convert a platform export into a dashboard document",
		Long: `Read a platform document export and reconstruct the declarative
dashboard document: chart-type synonyms collapse to the internal
vocabulary and the export's grid units are rescaled to the 12-column
grid.`,
		Example: `  # Convert an export to a document
  leapboard import export.json -o dashboards/imported.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file (default stdout)")

	return cmd
}

func runImport(cmd *cobra.Command, path string, opts *ImportOptions) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	export, err := omni.ParseExport(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	d, err := omni.FromExport(export)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	out, err := document.Encode(d)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return writeOutput(cmd, opts.Output, out)
}
