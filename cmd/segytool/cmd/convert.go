package cmd

import (
	"fmt"
	"io"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/svs590/OpenSeaSeis-sub000/config"
	"github.com/svs590/OpenSeaSeis-sub000/errs"
	"github.com/svs590/OpenSeaSeis-sub000/format"
	"github.com/svs590/OpenSeaSeis-sub000/hdrmap"
	"github.com/svs590/OpenSeaSeis-sub000/section"
	"github.com/svs590/OpenSeaSeis-sub000/segyio"
)

var (
	convertTo     string
	convertFormat string
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert a trace file to another dialect or sample format",
	Long: `Convert a trace file to another dialect or sample format. Header fields
present in both dialects are copied by name. The text header of the input is
kept and its last card is stamped with a dataset id.

Example:
  segytool convert --to su line42.sgy line42.su
  segytool convert --format ibm -d su shots.su shots.sgy`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runConvert(cmd.OutOrStdout(), cfg, args[0], args[1], convertTo, convertFormat)
		return err
	},
}

// fieldPair links a field index of the input map to the output map.
type fieldPair struct {
	src, dst int
}

func matchFields(src, dst *hdrmap.HeaderMap) []fieldPair {
	var pairs []fieldPair
	for i, f := range src.All() {
		if j := dst.Index(f.Name); j >= 0 {
			pairs = append(pairs, fieldPair{src: i, dst: j})
		}
	}

	return pairs
}

// stampTextLines returns the card images of src with the last card replaced
// by a dataset id line.
func stampTextLines(src *section.TextHeader, id ksuid.KSUID) []string {
	lines := make([]string, section.TextHeaderLines)
	if src != nil {
		copy(lines, src.Lines())
	}
	for i, line := range lines {
		if line == "" {
			lines[i] = fmt.Sprintf("C%2d", i+1)
		}
	}
	lines[len(lines)-1] = fmt.Sprintf("C%2d DATASET %s", len(lines), id)

	return lines
}

// runConvert copies path to out and returns the dataset id stamped into the
// output.
func runConvert(w io.Writer, c *config.Config, path, out, to, sampleFormat string) (ksuid.KSUID, error) {
	r, err := openReader(c, path)
	if err != nil {
		return ksuid.Nil, err
	}
	defer r.Close()

	target := r.HeaderMap().Dialect()
	if to != "" {
		d, ok := format.ParseDialect(to)
		if !ok {
			return ksuid.Nil, fmt.Errorf("%w: %q", errs.ErrUnknownDialect, to)
		}
		target = d
	}
	m, err := hdrmap.New(target)
	if err != nil {
		return ksuid.Nil, err
	}

	opts, err := c.WriterOptions()
	if err != nil {
		return ksuid.Nil, err
	}
	if sampleFormat != "" {
		f, ok := format.ParseSampleFormat(sampleFormat)
		if !ok {
			return ksuid.Nil, fmt.Errorf("%w: %q", errs.ErrUnsupportedSampleFormat, sampleFormat)
		}
		opts = append(opts, segyio.WithWriterSampleFormat(f))
	}

	if target.HasFileHeaders() {
		opts = append(opts, segyio.WithBinaryHeaderTemplate(r.BinaryHeader()))
	}

	id := ksuid.New()
	opts = append(opts,
		segyio.WithSampleCount(r.NumSamples()),
		segyio.WithSampleInterval(r.SampleIntervalUS()),
		segyio.WithTextHeaderLines(stampTextLines(r.TextHeader(), id)...),
	)

	wr, err := segyio.NewWriter(out, m, opts...)
	if err != nil {
		return ksuid.Nil, err
	}
	defer wr.Close()
	if err := wr.Initialize(); err != nil {
		return ksuid.Nil, err
	}

	pairs := matchFields(r.HeaderMap(), m)
	samples := make([]float32, r.NumSamples())
	for {
		ok, err := r.NextTrace(samples)
		if err != nil {
			return ksuid.Nil, err
		}
		if !ok {
			break
		}

		src, dst := r.Values(), wr.Values()
		for _, p := range pairs {
			if err := dst.Set(p.dst, src.At(p.src)); err != nil {
				return ksuid.Nil, err
			}
		}
		if err := wr.WriteNextTrace(samples); err != nil {
			return ksuid.Nil, err
		}
	}

	if err := wr.Close(); err != nil {
		return ksuid.Nil, err
	}
	plog.Infof("converted %s (%s) to %s (%s), dataset %s", path, r.HeaderMap().Dialect(), out, target, id)

	_, err = fmt.Fprintf(w, "wrote %d traces to %s as %s %s, dataset %s\n",
		wr.NumTracesWritten(), out, target, wr.SampleFormat(), id)
	return id, err
}

func init() {
	convertCmd.Flags().StringVar(&convertTo, "to", "", "Output dialect (default: the input dialect)")
	convertCmd.Flags().StringVar(&convertFormat, "format", "", "Output sample format (ibm, int32, int16, ieee)")
	rootCmd.AddCommand(convertCmd)
}
