package main

import (
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dealcraft/dealcraft/internal/export"
	"github.com/dealcraft/dealcraft/internal/refdata"
)

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Print or export the partner x company match matrix",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		switch format {
		case export.FormatTable, export.FormatCSV:
		case export.FormatXLSX:
			if output == "" {
				return eris.New("matrix: --output is required for xlsx")
			}
		default:
			return eris.Errorf("matrix: unsupported format %q", format)
		}

		provider, closeFn, err := initProvider(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeFn()

		snap, err := refdata.Load(ctx, provider)
		if err != nil {
			return eris.Wrap(err, "matrix")
		}
		grid := export.NewGrid(snap.Partners, snap.Companies)

		if err := writeGrid(cmd, grid, format, output); err != nil {
			return err
		}
		if output != "" {
			zap.L().Info("matrix exported",
				zap.String("format", format),
				zap.String("path", output),
				zap.Int("companies", len(grid.Companies)),
				zap.Int("partners", len(grid.Partners)),
			)
		}
		return nil
	},
}

func init() {
	matrixCmd.Flags().String("format", export.FormatTable, "output format: table, csv or xlsx")
	matrixCmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")
	rootCmd.AddCommand(matrixCmd)
}

func writeGrid(cmd *cobra.Command, grid *export.Grid, format, output string) (err error) {
	if format == export.FormatXLSX {
		return export.WriteXLSX(output, grid)
	}

	out := cmd.OutOrStdout()
	if output != "" {
		f, createErr := os.Create(output)
		if createErr != nil {
			return eris.Wrapf(createErr, "matrix: create %s", output)
		}
		defer closeInto(&err, f, output)
		out = f
	}

	return writeText(out, grid, format)
}

// writeText writes the table or CSV rendering of grid to out.
func writeText(out io.Writer, grid *export.Grid, format string) error {
	if format == export.FormatCSV {
		return export.WriteCSV(out, grid)
	}
	return export.WriteTable(out, grid)
}

// closeInto closes c and reports its error through errp unless an earlier
// error is already set.
func closeInto(errp *error, c io.Closer, name string) {
	if err := c.Close(); err != nil && *errp == nil {
		*errp = eris.Wrapf(err, "matrix: close %s", name)
	}
}
