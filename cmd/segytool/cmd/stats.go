package cmd

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/svs590/OpenSeaSeis-sub000/config"
)

var statsPerTrace bool

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Compute sample statistics",
	Long: `Compute the minimum, maximum, mean, standard deviation and RMS amplitude of
the samples, for the whole file and optionally for every trace.

Example:
  segytool stats line42.sgy
  segytool stats --per-trace shots.su -d su`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStats(cmd.OutOrStdout(), cfg, args[0], statsPerTrace)
	},
}

// sampleStats summarizes a set of samples.
type sampleStats struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	RMS    float64
}

func summarize(xs []float64) sampleStats {
	if len(xs) == 0 {
		return sampleStats{}
	}

	s := sampleStats{
		Count: len(xs),
		Min:   floats.Min(xs),
		Max:   floats.Max(xs),
	}
	s.Mean, s.StdDev = stat.MeanStdDev(xs, nil)
	s.RMS = floats.Norm(xs, 2) / math.Sqrt(float64(len(xs)))

	return s
}

func runStats(w io.Writer, c *config.Config, path string, perTrace bool) error {
	r, err := openReader(c, path)
	if err != nil {
		return err
	}
	defer r.Close()

	ns := r.NumSamples()
	samples := make([]float32, ns)
	trace := make([]float64, ns)
	var all []float64
	if n := r.NumTraces(); n > 0 {
		all = make([]float64, 0, n*ns)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "trace\tmin\tmax\tmean\tstddev\trms\t")
	for {
		index := r.CurrentTraceIndex()
		ok, err := r.NextTrace(samples)
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		for i, v := range samples {
			trace[i] = float64(v)
		}
		all = append(all, trace...)
		if perTrace {
			writeStatsRow(tw, fmt.Sprint(index), summarize(trace))
		}
	}

	writeStatsRow(tw, "all", summarize(all))
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%d traces, %d samples per trace\n", len(all)/max(ns, 1), ns)
	return err
}

func writeStatsRow(w io.Writer, label string, s sampleStats) {
	fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%g\t\n", label, s.Min, s.Max, s.Mean, s.StdDev, s.RMS)
}

func init() {
	statsCmd.Flags().BoolVar(&statsPerTrace, "per-trace", false, "Print statistics for every trace")
	rootCmd.AddCommand(statsCmd)
}
