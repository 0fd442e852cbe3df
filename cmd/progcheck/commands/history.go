package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ahm16/progcheck/pkg/stores"
)

func newHistoryCommand(opts *rootOptions) *cobra.Command {
	var (
		limit  int
		status string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded validation runs",
		Long: `List runs recorded by "progcheck watch" and "progcheck validate --record",
newest first.`,
		Example: `  # Show the last 20 runs
  progcheck history

  # Show only runs that found a violation
  progcheck history --status invalid --limit 5`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var filter *stores.RunStatus
			switch stores.RunStatus(status) {
			case "":
			case stores.RunStatusValid, stores.RunStatusInvalid, stores.RunStatusError:
				s := stores.RunStatus(status)
				filter = &s
			default:
				return &UsageError{Err: fmt.Errorf("invalid status %q (must be valid, invalid or error)", status)}
			}
			if limit < 0 {
				return &UsageError{Err: fmt.Errorf("invalid limit %d", limit)}
			}

			a, err := newApp(cmd, opts, afero.NewOsFs())
			if err != nil {
				return err
			}
			defer a.close()

			if !a.cfg.History.Enabled {
				return fmt.Errorf("run history is disabled in the configuration")
			}
			if err := a.openHistory(cmd.Context()); err != nil {
				return err
			}

			runs, err := a.history.ListRuns(cmd.Context(), stores.ListOptions{
				Limit:  limit,
				Status: filter,
			})
			if err != nil {
				return err
			}

			if opts.jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if runs == nil {
					runs = []*stores.Run{}
				}
				return enc.Encode(runs)
			}
			return writeRuns(cmd.OutOrStdout(), runs)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs to show (0 for all)")
	cmd.Flags().StringVar(&status, "status", "", "only show runs with this status (valid, invalid, error)")

	return cmd
}

func writeRuns(w io.Writer, runs []*stores.Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSTARTED\tTRIGGER\tSTATUS\tDURATION\tRECORDS\tMESSAGE")
	for _, run := range runs {
		message := ""
		if run.Message != nil {
			message = *run.Message
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(run.ID),
			humanize.Time(run.StartedAt),
			run.Trigger,
			run.Status,
			time.Duration(run.DurationMs)*time.Millisecond,
			humanize.Comma(int64(run.People+run.Sessions+run.Talks+run.Days)),
			message,
		)
	}
	return tw.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
