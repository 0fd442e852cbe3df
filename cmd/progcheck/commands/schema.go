package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ahm16/progcheck/pkg/integrity"
)

func newSchemaCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the effective field types",
		Long: `Print the declared type of every field after configuration overrides.

Types:
  text  any string
  str   a string of ASCII characters only
  int   an integer (booleans count as integers)
  bool  a boolean
  list  a sequence
  dict  a mapping`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, opts, afero.NewOsFs())
			if err != nil {
				return err
			}
			defer a.close()

			rows := schemaRows(a.checker.Schema())
			if opts.jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			return writeSchema(cmd.OutOrStdout(), rows)
		},
	}
}

type schemaRow struct {
	Record string `json:"record"`
	Field  string `json:"field"`
	Type   string `json:"type"`
}

var schemaRecords = []string{"person", "session", "talk", "day"}

func schemaRows(s *integrity.Schema) []schemaRow {
	var rows []schemaRow
	tables := s.Tables()
	for _, record := range schemaRecords {
		for _, rule := range tables[record] {
			rows = append(rows, schemaRow{Record: record, Field: rule.Name, Type: rule.Type.String()})
		}
	}
	rows = append(rows,
		schemaRow{Record: "day", Field: "slots.*", Type: s.Activity.String()},
		schemaRow{Record: "talk", Field: "slides[]", Type: s.Slide.String()},
		schemaRow{Record: "talk", Field: "panel[]", Type: s.PanelMember.String()},
	)
	return rows
}

func writeSchema(w io.Writer, rows []schemaRow) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RECORD\tFIELD\tTYPE")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", row.Record, row.Field, row.Type)
	}
	return tw.Flush()
}
