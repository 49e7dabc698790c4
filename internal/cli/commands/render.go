package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapboard/pkg/document"
	"github.com/leapstack-labs/leapboard/pkg/template"
)

// RenderOptions holds options for the render command.
type RenderOptions struct {
	Params []string // key=value template parameters
	Output string   // Output file (default stdout)
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}
	cmd := &cobra.Command{
		Use:   "render <template>",
		Short: "Render a parameterized dashboard template",
		Long: `Substitute parameters into a dashboard document template and emit the
resulting document. Missing parameters fail the render.`,
		Example: `  # Render a template with parameters
  leapboard render templates/funnel.yaml -p team=growth -p table=events`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Params, "param", "p", nil, "Template parameter as key=value (repeatable)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file (default stdout)")

	return cmd
}

func runRender(cmd *cobra.Command, path string, opts *RenderOptions) error {
	params := map[string]any{}
	for _, p := range opts.Params {
		key, value, found := strings.Cut(p, "=")
		if !found || key == "" {
			return fmt.Errorf("invalid parameter %q, expected key=value", p)
		}
		params[key] = value
	}

	d, err := template.RenderFile(path, params)
	if err != nil {
		return err
	}

	out, err := document.Encode(d)
	if err != nil {
		return fmt.Errorf("failed to encode rendered document: %w", err)
	}
	return writeOutput(cmd, opts.Output, out)
}
