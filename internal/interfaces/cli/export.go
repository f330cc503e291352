package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/NFHS-Explorer/internal/application/explorer"
	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/export"
	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NFHS-Explorer/pkg/errors"
)

// Export formats accepted by --format.
const (
	exportCSV  = "csv"
	exportXLSX = "xlsx"
)

// NewExportCmd writes the filtered rows for one selection as CSV or XLSX.
func NewExportCmd() *cobra.Command {
	var (
		sel    explorer.Selection
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the rows matching a selection as CSV or XLSX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != exportCSV && format != exportXLSX {
				return errors.InvalidParam(fmt.Sprintf("unsupported export format %q; expected csv|xlsx", format))
			}
			if out == "" || out == "-" {
				if format == exportXLSX {
					return errors.NewMsg("xlsx export needs --out")
				}
				out = "-"
			}

			cliCtx, d, err := runDashboard(cmd, sel)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return errors.Wrap(err, errors.ErrCodeExportFailed, "failed to create export file")
				}
				defer f.Close()
				w = f
			}

			switch format {
			case exportXLSX:
				err = export.WriteXLSX(w, export.DefaultSheet, d.Table.Columns, d.Table.Rows)
			default:
				err = export.WriteCSV(w, d.Table.Columns, d.Table.Rows)
			}
			if err != nil {
				return err
			}

			if out != "-" {
				cliCtx.Logger.Info("Export written",
					logging.String("path", out),
					logging.String("format", format),
					logging.Int("rows", len(d.Table.Rows)))
				PrintSuccess(cmd, fmt.Sprintf("%d rows written to %s", len(d.Table.Rows), out))
			}
			return nil
		},
	}
	addSelectionFlags(cmd, &sel)
	cmd.Flags().StringVarP(&format, "format", "f", exportCSV, "export format (csv, xlsx)")
	cmd.Flags().StringVar(&out, "out", "", "output file; - or empty writes CSV to stdout")
	return cmd
}

//Personal.AI order the ending
