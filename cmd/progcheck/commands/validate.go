package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ahm16/progcheck/pkg/integrity"
	"github.com/ahm16/progcheck/pkg/stores"
)

func newValidateCommand(opts *rootOptions) *cobra.Command {
	var record bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the site datasets",
		Long: `Validate people.yml, sessions.yml and program.yml in <sitedir>/_data.

The first violation found is printed on standard output and the command
exits with status 0. Failures to read or parse the datasets are reported on
standard error with a non-zero exit status.`,
		Example: `  # Validate the site in the current directory
  progcheck validate

  # Validate another site and record the run in the history
  progcheck validate -d ../conference --record

  # Machine-readable report
  progcheck validate --json`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, opts, record)
		},
	}

	cmd.Flags().BoolVar(&record, "record", false, "record the run in the history store")

	return cmd
}

func runValidate(cmd *cobra.Command, opts *rootOptions, record bool) error {
	ctx := cmd.Context()

	a, err := newApp(cmd, opts, afero.NewOsFs())
	if err != nil {
		return err
	}
	defer a.close()

	if record {
		if err := a.openHistory(ctx); err != nil {
			return err
		}
	}

	a.logger.Debug().
		Str("site_dir", a.cfg.SiteDir).
		Str("data_dir", a.cfg.DataPath()).
		Msg("Validating datasets")

	result, err := a.check(ctx, stores.TriggerValidate)
	if err != nil {
		return err
	}

	return writeResult(cmd.OutOrStdout(), result, opts.jsonOutput)
}

// checkReport is the JSON form of a check result.
type checkReport struct {
	RunID      string                     `json:"run_id"`
	Valid      bool                       `json:"valid"`
	Violation  *integrity.ValidationError `json:"violation,omitempty"`
	Counts     integrity.Counts           `json:"counts"`
	DurationMs float64                    `json:"duration_ms"`
}

// writeResult prints a violation as a single line, or the full report in
// JSON mode. A valid result prints nothing in text mode.
func writeResult(w io.Writer, result integrity.Result, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(checkReport{
			RunID:      result.RunID,
			Valid:      result.OK(),
			Violation:  result.Violation,
			Counts:     result.Counts,
			DurationMs: float64(result.Duration.Microseconds()) / 1000,
		})
	}

	if result.Violation == nil {
		return nil
	}
	_, err := fmt.Fprintln(w, result.Violation.Line())
	return err
}
