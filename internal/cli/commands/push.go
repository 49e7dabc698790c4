package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapboard/internal/cli/config"
	"github.com/leapstack-labs/leapboard/internal/client"
	"github.com/leapstack-labs/leapboard/pkg/layout"
	"github.com/leapstack-labs/leapboard/pkg/omni"
	"github.com/leapstack-labs/leapboard/pkg/spi"
	"github.com/leapstack-labs/leapboard/pkg/validate"
)

// PushOptions holds options for the push command.
type PushOptions struct {
	DryRun       bool // Compile and validate without submitting
	SkipValidate bool // Submit even when validation reports errors
}

// NewPushCommand creates the push command.
func NewPushCommand() *cobra.Command {
	opts := &PushOptions{}
	cmd := &cobra.Command{
		Use:   "push <document>...",
		Short: "Compile documents and create them on the platform",
		Long: `Validate, lay out and compile each document, then submit the creation
payloads. Documents are submitted concurrently, bounded by the
configured concurrency and request rate.`,
		Example: `  # Push one dashboard
  leapboard push dashboards/revenue.yaml

  # Push a whole directory's documents
  leapboard push dashboards/*.yaml

  # Compile everything but submit nothing
  leapboard push dashboards/*.yaml --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPush(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Compile and validate without submitting")
	cmd.Flags().BoolVar(&opts.SkipValidate, "skip-validate", false, "Submit even when validation reports errors")

	return cmd
}

func runPush(cmd *cobra.Command, paths []string, opts *PushOptions) error {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	var submitter spi.Submitter
	if !opts.DryRun {
		if cfg.APIToken == "" {
			return fmt.Errorf("no API token configured; set LEAPBOARD_API_TOKEN or api_token in leapboard.yaml")
		}
		submitter = client.New(client.Config{
			BaseURL:     cfg.BaseURL,
			APIToken:    cfg.APIToken,
			RequestRate: cfg.RequestRate,
			Logger:      logger,
		})
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(cfg.Concurrency)

	for _, path := range paths {
		g.Go(func() error {
			d, err := loadDocument(path, cfg)
			if err != nil {
				return err
			}

			if !opts.SkipValidate {
				if result := validate.Validate(d); !result.Valid {
					return fmt.Errorf("%s: %d validation error(s); run validate for details", path, len(result.Errors))
				}
			}

			layout.AutoPositionDashboard(d)
			payload, err := omni.BuildCreatePayload(d)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			if opts.DryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d tiles, not submitted)\n", path, len(payload.QueryPresentations))
				return nil
			}

			id, err := submitter.SubmitCreate(ctx, payload)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			logger.Info("created document", "path", path, "id", id)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: created %s\n", path, id)
			return nil
		})
	}

	return g.Wait()
}
