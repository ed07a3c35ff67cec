package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/svs590/OpenSeaSeis-sub000/config"
)

var hdrmapDefinition string

// hdrmapCmd represents the hdrmap command
var hdrmapCmd = &cobra.Command{
	Use:   "hdrmap",
	Short: "Print a trace header map",
	Long: `Print the fields of a dialect's trace header map, optionally after applying
a header definition file.

Example:
  segytool hdrmap --dialect psegy
  segytool hdrmap --definition custom_headers.txt`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHdrmap(cmd.OutOrStdout(), cfg, hdrmapDefinition)
	},
}

func runHdrmap(w io.Writer, c *config.Config, definition string) error {
	m, err := c.HeaderMap()
	if err != nil {
		return err
	}

	if definition == "" {
		definition = c.HeaderDefinition
	}
	if definition != "" {
		if err := m.LoadExternal(definition); err != nil {
			return err
		}
	}

	return m.Dump(w)
}

func init() {
	hdrmapCmd.Flags().StringVar(&hdrmapDefinition, "definition", "", "Header definition file to apply")
	rootCmd.AddCommand(hdrmapCmd)
}
