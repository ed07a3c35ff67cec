package cmd

import (
	"os"

	"github.com/coreos/pkg/capnslog"
	"github.com/spf13/cobra"

	"github.com/svs590/OpenSeaSeis-sub000/config"
	"github.com/svs590/OpenSeaSeis-sub000/segyio"
)

var plog = capnslog.NewPackageLogger("github.com/svs590/OpenSeaSeis-sub000", "segytool")

var (
	cfgFile  string
	logLevel string
	dialect  string

	// cfg is the configuration resolved by the root command before any
	// subcommand runs.
	cfg = config.DefaultConfig()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "segytool",
	Short: "Inspect and convert SEG-Y and Seismic Unix files",
	Long: `segytool reads SEG-Y, Seismic Unix and PASSCAL trace files, prints their
file and trace headers, computes sample statistics and converts between
dialects and sample formats.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := resolveConfig(cfgFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("dialect") {
			c.Dialect = dialect
		}
		if logLevel != "" {
			c.Logging.Level = logLevel
		}

		level, err := c.LogLevel()
		if err != nil {
			return err
		}
		capnslog.SetFormatter(capnslog.NewStringFormatter(os.Stderr))
		capnslog.SetGlobalLogLevel(level)

		cfg = c
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default "+config.GetDefaultConfigPath()+")")
	rootCmd.PersistentFlags().StringVarP(&dialect, "dialect", "d", "standard", "Trace header dialect")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (critical, error, warning, notice, info, debug, trace)")
}

// resolveConfig loads the config file at path. An empty path falls back to
// the default location, and to built-in defaults when no file exists there.
func resolveConfig(path string) (*config.Config, error) {
	if path == "" {
		path = config.GetDefaultConfigPath()
		if !config.ConfigExists(path) {
			return config.DefaultConfig(), nil
		}
	}

	return config.LoadConfig(path)
}

// openReader opens and initializes a reader for path using c.
func openReader(c *config.Config, path string, extra ...segyio.ReaderOption) (*segyio.Reader, error) {
	m, err := c.HeaderMap()
	if err != nil {
		return nil, err
	}
	opts, err := c.ReaderOptions()
	if err != nil {
		return nil, err
	}

	r, err := segyio.NewReader(path, m, append(opts, extra...)...)
	if err != nil {
		return nil, err
	}
	if err := r.Initialize(); err != nil {
		r.Close()
		return nil, err
	}

	return r, nil
}
