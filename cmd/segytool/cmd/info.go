package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/svs590/OpenSeaSeis-sub000/config"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Print the file headers and geometry",
	Long: `Print the trace geometry, text header, extended text headers and binary
header of a trace file.

Example:
  segytool info line42.sgy
  segytool info --dialect su shots.su`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInfo(cmd.OutOrStdout(), cfg, args[0])
	},
}

func runInfo(w io.Writer, c *config.Config, path string) error {
	r, err := openReader(c, path)
	if err != nil {
		return err
	}
	defer r.Close()

	return r.Dump(w)
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
