package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapboard/internal/cli/config"
	"github.com/leapstack-labs/leapboard/pkg/validate"
)

// ValidateOptions holds options for the validate command.
type ValidateOptions struct {
	Catalog string // Path to a table→columns catalog file
	Strict  bool   // Treat warnings as failures
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}
	cmd := &cobra.Command{
		Use:   "validate <document>",
		Short: "Validate a dashboard document",
		Long: `Check a dashboard document for internal consistency.

Errors make the document unserializable; warnings flag issues the
compiler auto-corrects or that only degrade the rendered output.
With a field catalog supplied, queried fields are checked against
the tables they reference.`,
		Example: `  # Validate a document
  leapboard validate dashboards/revenue.yaml

  # Validate against a field catalog
  leapboard validate dashboards/revenue.yaml --catalog catalog.yaml

  # Fail on warnings too
  leapboard validate dashboards/revenue.yaml --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "Path to a table→columns catalog file")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Treat warnings as failures")

	return cmd
}

func runValidate(cmd *cobra.Command, path string, opts *ValidateOptions) error {
	cfg := config.GetConfig(cmd.Context())

	d, err := loadDocument(path, cfg)
	if err != nil {
		return err
	}

	var vopts []validate.Option
	if opts.Catalog != "" {
		catalog, err := loadCatalog(opts.Catalog)
		if err != nil {
			return err
		}
		vopts = append(vopts, validate.WithCatalog(catalog))
	}
	if len(cfg.Formats) > 0 {
		codes := make(map[string]struct{}, len(cfg.Formats))
		for _, f := range cfg.Formats {
			codes[f] = struct{}{}
		}
		vopts = append(vopts, validate.WithFormatCodes(codes))
	}

	result := validate.Validate(d, vopts...)

	if len(result.Errors) == 0 && len(result.Warnings) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d tiles)\n", path, d.TileCount())
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Severity", "Code", "Tile", "Message"})
	for _, diag := range result.Errors {
		t.AppendRow(table.Row{diag.Severity, diag.Code, diag.Tile, diag.Message})
	}
	for _, diag := range result.Warnings {
		t.AppendRow(table.Row{diag.Severity, diag.Code, diag.Tile, diag.Message})
	}
	t.SetStyle(table.StyleLight)
	t.Render()

	if !result.Valid {
		return fmt.Errorf("%s: %d error(s), %d warning(s)", path, len(result.Errors), len(result.Warnings))
	}
	if opts.Strict && len(result.Warnings) > 0 {
		return fmt.Errorf("%s: %d warning(s) with --strict", path, len(result.Warnings))
	}
	return nil
}
