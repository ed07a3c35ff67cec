package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/svs590/OpenSeaSeis-sub000/config"
	"github.com/svs590/OpenSeaSeis-sub000/errs"
)

var (
	headersFirst int
	headersCount int
	headersRaw   bool
)

// headersCmd represents the headers command
var headersCmd = &cobra.Command{
	Use:   "headers <file> [field...]",
	Short: "Print trace header values",
	Long: `Print trace header values. With field names, one row per trace is printed
with the named values; without, every field of each trace is listed.

Example:
  segytool headers line42.sgy
  segytool headers --first 100 --count 10 line42.sgy ffid chan sx sy
  segytool headers --raw --count 1 line42.sgy`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHeaders(cmd.OutOrStdout(), cfg, args[0], args[1:], headersFirst, headersCount, headersRaw)
	},
}

func runHeaders(w io.Writer, c *config.Config, path string, names []string, first, count int, raw bool) error {
	r, err := openReader(c, path)
	if err != nil {
		return err
	}
	defer r.Close()

	idx := make([]int, len(names))
	for i, name := range names {
		idx[i] = r.HeaderMap().Index(name)
		if idx[i] < 0 {
			return fmt.Errorf("%w: %q", errs.ErrUnknownHeader, name)
		}
	}

	if first > 0 {
		if err := r.MoveToTrace(first, 0); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if len(names) > 0 {
		fmt.Fprintf(tw, "trace\t%s\n", strings.Join(names, "\t"))
	}

	for n := 0; count <= 0 || n < count; n++ {
		trace := r.CurrentTraceIndex()
		ok, err := r.NextTrace(nil)
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		switch {
		case len(names) > 0:
			fmt.Fprintf(tw, "%d", trace)
			for _, i := range idx {
				fmt.Fprintf(tw, "\t%s", r.Values().At(i))
			}
			fmt.Fprintln(tw)
		case raw:
			fmt.Fprintf(w, "trace %d\n", trace)
			err = r.DumpRawHeader(w)
		default:
			fmt.Fprintf(w, "trace %d\n", trace)
			err = r.DumpCurrentHeader(w)
		}
		if err != nil {
			return err
		}
	}

	return tw.Flush()
}

func init() {
	headersCmd.Flags().IntVar(&headersFirst, "first", 0, "Index of the first trace to print")
	headersCmd.Flags().IntVarP(&headersCount, "count", "n", 0, "Number of traces to print (0 prints all)")
	headersCmd.Flags().BoolVar(&headersRaw, "raw", false, "Print the raw header bytes instead of decoded fields")
	rootCmd.AddCommand(headersCmd)
}
