package commands

import (
	"context"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ahm16/progcheck/pkg/config"
	"github.com/ahm16/progcheck/pkg/dataset"
	"github.com/ahm16/progcheck/pkg/stores"
	"github.com/ahm16/progcheck/pkg/watch"
)

func newWatchCommand(opts *rootOptions) *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-validate the datasets whenever they change",
		Long: `Validate the datasets once, then again every time people.yml,
sessions.yml or program.yml changes. Violations are printed on standard
output as they are found; runs are recorded in the history store.

With a metrics address set, check metrics are served for Prometheus.`,
		Example: `  # Watch the site in the current directory
  progcheck watch

  # Watch and expose metrics
  progcheck watch --metrics-addr :9090`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, opts, metricsAddr)
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve metrics on this address")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *rootOptions, metricsAddr string) error {
	a, err := newApp(cmd, opts, afero.NewOsFs(), func(cfg *config.Config) {
		if metricsAddr != "" {
			cfg.Metrics.Enabled = true
			cfg.Metrics.ListenAddress = metricsAddr
		}
	})
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.openHistory(cmd.Context()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	checkAndReport := func(ctx context.Context) {
		result, err := a.check(ctx, stores.TriggerWatch)
		if err != nil {
			a.logger.Error().Err(err).Msg("Check failed")
			return
		}
		if err := writeResult(out, result, opts.jsonOutput); err != nil {
			a.logger.Error().Err(err).Msg("Failed to write result")
			return
		}
		if result.OK() {
			a.logger.Info().Str("run_id", result.RunID).Msg("Datasets are valid")
		}
	}

	g, ctx := errgroup.WithContext(cmd.Context())

	g.Go(func() error {
		return a.tel.Metrics.Serve(ctx)
	})

	g.Go(func() error {
		checkAndReport(ctx)

		w := watch.New(a.cfg.DataPath(), dataset.FileNames(),
			watch.WithDebounce(a.cfg.Watch.Debounce),
			watch.WithLogger(a.tel.Logger),
		)
		return w.Run(ctx, func(ctx context.Context, changed []string) {
			a.logger.Debug().Strs("files", changed).Msg("Re-validating after change")
			checkAndReport(ctx)
		})
	})

	return g.Wait()
}
