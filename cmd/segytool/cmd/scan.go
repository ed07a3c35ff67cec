package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/svs590/OpenSeaSeis-sub000/config"
	"github.com/svs590/OpenSeaSeis-sub000/segyio"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <file> <field>",
	Short: "Scan one header field across all traces",
	Long: `Scan one header field across all traces without decoding samples, then
print its range and the number of distinct consecutive runs.

Example:
  segytool scan line42.sgy ffid`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan(cmd.OutOrStdout(), cfg, args[0], args[1])
	},
}

func runScan(w io.Writer, c *config.Config, path, name string) error {
	r, err := openReader(c, path)
	if err != nil {
		return err
	}
	defer r.Close()

	values, err := segyio.ScanHeader(r, name)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		_, err := fmt.Fprintf(w, "%s: no traces\n", name)
		return err
	}

	xs := make([]float64, len(values))
	runs := 1
	for i, v := range values {
		xs[i] = v.Double()
		if i > 0 && !v.Equal(values[i-1]) {
			runs++
		}
	}

	_, err = fmt.Fprintf(w, "%s: %d traces, min %g, max %g, %d runs\n",
		name, len(values), floats.Min(xs), floats.Max(xs), runs)
	return err
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
