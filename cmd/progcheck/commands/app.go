package commands

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ahm16/progcheck/pkg/config"
	"github.com/ahm16/progcheck/pkg/dataset"
	"github.com/ahm16/progcheck/pkg/integrity"
	"github.com/ahm16/progcheck/pkg/stores"
	"github.com/ahm16/progcheck/pkg/telemetry"
)

// app wires configuration, telemetry, the loader and the checker for one
// command invocation.
type app struct {
	cfg     *config.Config
	tel     *telemetry.Telemetry
	logger  zerolog.Logger
	loader  *dataset.Loader
	checker *integrity.Checker
	history stores.Store
}

// newApp loads the configuration and applies command-line overrides.
// Precedence is flag, environment, config file, default. Command specific
// overrides run last.
func newApp(cmd *cobra.Command, opts *rootOptions, fs afero.Fs, overrides ...func(*config.Config)) (*app, error) {
	cfg, err := config.NewLoader(fs).Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	if f := cmd.Flags().Lookup("sitedir"); f != nil && f.Changed {
		cfg.SiteDir = opts.siteDir
	}
	if opts.verbose {
		cfg.Logging.Level = "debug"
	}
	for _, override := range overrides {
		override(cfg)
	}

	schema, err := cfg.BuildSchema()
	if err != nil {
		return nil, err
	}

	tel, err := telemetry.NewTelemetry(cfg.Telemetry(opts.version))
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		tel:    tel,
		logger: telemetry.Component(tel.Logger, "cli"),
		loader: dataset.NewLoader(fs, tel.Logger),
		checker: integrity.NewChecker(
			integrity.WithSchema(schema),
			integrity.WithTelemetry(tel),
			integrity.WithSiteDir(cfg.SiteDir),
		),
	}, nil
}

// openHistory opens the run history store when history is enabled.
func (a *app) openHistory(ctx context.Context) error {
	if !a.cfg.History.Enabled {
		return nil
	}
	store, err := stores.Open(ctx, stores.Config{Path: a.cfg.HistoryPath()})
	if err != nil {
		return err
	}
	a.history = store
	return nil
}

// close flushes telemetry and closes the history store.
func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.tel.Shutdown(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to flush telemetry")
	}
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("Failed to close history store")
		}
	}
}

// check loads the datasets and validates them. A violation is reported in
// the result; the error is set only for operational failures.
func (a *app) check(ctx context.Context, trigger stores.Trigger) (integrity.Result, error) {
	started := time.Now()
	dataDir := a.cfg.DataPath()

	_, span := a.tel.Tracer.Start(ctx, "dataset.load", telemetry.AttrSiteDir.String(a.cfg.SiteDir))
	event, err := a.loader.Load(dataDir)
	if err != nil {
		var le *dataset.LoadError
		if errors.As(err, &le) {
			span.SetAttributes(telemetry.AttrDataset.String(le.Dataset))
			a.tel.Metrics.RecordLoadFailure(le.Dataset)
		}
		telemetry.RecordError(span, err)
		span.End()

		a.tel.Metrics.RecordCheck(telemetry.ResultError, time.Since(started))
		a.record(ctx, &stores.Run{
			ID:         newRunID(),
			SiteDir:    a.cfg.SiteDir,
			Trigger:    trigger,
			Status:     stores.RunStatusError,
			Message:    strPtr(err.Error()),
			DurationMs: time.Since(started).Milliseconds(),
			StartedAt:  started,
		})
		return integrity.Result{}, err
	}
	telemetry.RecordSuccess(span)
	span.End()

	result := a.checker.Check(ctx, event)

	run := &stores.Run{
		ID:         result.RunID,
		SiteDir:    a.cfg.SiteDir,
		Trigger:    trigger,
		Status:     stores.RunStatus(result.Status()),
		People:     result.Counts.People,
		Sessions:   result.Counts.Sessions,
		Talks:      result.Counts.Talks,
		Days:       result.Counts.Days,
		DurationMs: time.Since(started).Milliseconds(),
		StartedAt:  started,
	}
	if result.Violation != nil {
		run.ViolationKind = strPtr(string(result.Violation.Kind))
		run.Message = strPtr(result.Violation.Line())
	}
	a.record(ctx, run)

	return result, nil
}

// record stores a run in the history. Failures are logged and do not fail
// the check.
func (a *app) record(ctx context.Context, run *stores.Run) {
	if a.history == nil {
		return
	}
	if err := a.history.RecordRun(ctx, run); err != nil {
		a.logger.Warn().Err(err).Str("run_id", run.ID).Msg("Failed to record run")
		return
	}
	if keep := a.cfg.History.Keep; keep > 0 {
		if _, err := a.history.PruneRuns(ctx, keep); err != nil {
			a.logger.Warn().Err(err).Msg("Failed to prune run history")
		}
	}
}

func newRunID() string {
	return uuid.New().String()
}

func strPtr(s string) *string {
	return &s
}
