// Package config loads and saves the YAML configuration of the segytool
// command and translates it into reader and writer options.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/coreos/pkg/capnslog"
	"gopkg.in/yaml.v3"

	"github.com/svs590/OpenSeaSeis-sub000/errs"
	"github.com/svs590/OpenSeaSeis-sub000/format"
	"github.com/svs590/OpenSeaSeis-sub000/hdrmap"
	"github.com/svs590/OpenSeaSeis-sub000/segyio"
)

// Config represents the segytool configuration
type Config struct {
	// Dialect names the trace header layout, see format.Dialect.
	Dialect string `yaml:"dialect"`
	// HeaderDefinition is an optional header definition file applied on top
	// of the dialect.
	HeaderDefinition string  `yaml:"header_definition,omitempty"`
	Reader           Reader  `yaml:"reader"`
	Writer           Writer  `yaml:"writer"`
	Logging          Logging `yaml:"logging"`
}

// Reader contains the reader configuration. Empty strings and zero counts
// keep the values found in the file.
type Reader struct {
	ByteOrder        string `yaml:"byte_order"`
	SampleFormat     string `yaml:"sample_format,omitempty"`
	NumSamples       int    `yaml:"num_samples,omitempty"`
	SampleIntervalUS int    `yaml:"sample_interval_us,omitempty"`
	RandomAccess     bool   `yaml:"random_access"`
	BufferTraces     int    `yaml:"buffer_traces"`
	AutoScale        bool   `yaml:"auto_scale"`
	TextEncoding     string `yaml:"text_encoding"`
	StrictSize       bool   `yaml:"strict_size"`
}

// Writer contains the writer configuration
type Writer struct {
	ByteOrder    string   `yaml:"byte_order"`
	SampleFormat string   `yaml:"sample_format,omitempty"`
	BufferTraces int      `yaml:"buffer_traces"`
	AutoScale    bool     `yaml:"auto_scale"`
	EBCDIC       bool     `yaml:"ebcdic"`
	TextLines    []string `yaml:"text_lines,omitempty"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Dialect: format.DialectStandard.String(),
		Reader: Reader{
			ByteOrder:    segyio.ByteOrderAuto.String(),
			RandomAccess: true,
			AutoScale:    true,
			TextEncoding: segyio.TextAuto.String(),
		},
		Writer: Writer{
			ByteOrder: segyio.ByteOrderAuto.String(),
			AutoScale: true,
			EBCDIC:    true,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from the specified path. Keys missing from
// the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read config file: %w", errs.ErrOpenFailure, err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config file: %w", errs.ErrFormat, err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path
func SaveConfig(config *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./segytool.yaml"
	}

	return filepath.Join(homeDir, ".config", "segytool", "config.yaml")
}

// HeaderMap builds the header map of the configured dialect. The header
// definition file, when set, is applied by the reader.
func (c *Config) HeaderMap() (*hdrmap.HeaderMap, error) {
	d, ok := format.ParseDialect(c.Dialect)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownDialect, c.Dialect)
	}

	return hdrmap.New(d)
}

// ReaderOptions translates the reader section into reader options.
func (c *Config) ReaderOptions() ([]segyio.ReaderOption, error) {
	order, ok := segyio.ParseByteOrder(c.Reader.ByteOrder)
	if !ok {
		return nil, fmt.Errorf("%w: reader byte order %q", errs.ErrUsage, c.Reader.ByteOrder)
	}
	enc, ok := segyio.ParseTextEncoding(c.Reader.TextEncoding)
	if !ok {
		return nil, fmt.Errorf("%w: text encoding %q", errs.ErrUsage, c.Reader.TextEncoding)
	}

	opts := []segyio.ReaderOption{
		segyio.WithByteOrder(order),
		segyio.WithRandomAccess(c.Reader.RandomAccess),
		segyio.WithBufferTraces(c.Reader.BufferTraces),
		segyio.WithAutoScale(c.Reader.AutoScale),
		segyio.WithTextEncoding(enc),
	}
	if c.Reader.SampleFormat != "" {
		f, ok := format.ParseSampleFormat(c.Reader.SampleFormat)
		if !ok {
			return nil, fmt.Errorf("%w: %q", errs.ErrUnsupportedSampleFormat, c.Reader.SampleFormat)
		}
		opts = append(opts, segyio.WithSampleFormat(f))
	}
	if c.Reader.NumSamples > 0 {
		opts = append(opts, segyio.WithNumSamples(c.Reader.NumSamples))
	}
	if c.Reader.SampleIntervalUS > 0 {
		opts = append(opts, segyio.WithSampleIntervalUS(c.Reader.SampleIntervalUS))
	}
	if c.Reader.StrictSize {
		opts = append(opts, segyio.WithStrictSize())
	}
	if c.HeaderDefinition != "" {
		opts = append(opts, segyio.WithHeaderDefinition(c.HeaderDefinition))
	}

	return opts, nil
}

// WriterOptions translates the writer section into writer options. The
// sample count and interval come from the data being written.
func (c *Config) WriterOptions() ([]segyio.WriterOption, error) {
	order, ok := segyio.ParseByteOrder(c.Writer.ByteOrder)
	if !ok {
		return nil, fmt.Errorf("%w: writer byte order %q", errs.ErrUsage, c.Writer.ByteOrder)
	}

	opts := []segyio.WriterOption{
		segyio.WithWriterByteOrder(order),
		segyio.WithWriterBufferTraces(c.Writer.BufferTraces),
		segyio.WithWriterAutoScale(c.Writer.AutoScale),
		segyio.WithTextEBCDIC(c.Writer.EBCDIC),
	}
	if c.Writer.SampleFormat != "" {
		f, ok := format.ParseSampleFormat(c.Writer.SampleFormat)
		if !ok {
			return nil, fmt.Errorf("%w: %q", errs.ErrUnsupportedSampleFormat, c.Writer.SampleFormat)
		}
		opts = append(opts, segyio.WithWriterSampleFormat(f))
	}
	if len(c.Writer.TextLines) > 0 {
		opts = append(opts, segyio.WithTextHeaderLines(c.Writer.TextLines...))
	}

	return opts, nil
}

// LogLevel parses the logging level.
func (c *Config) LogLevel() (capnslog.LogLevel, error) {
	level, err := capnslog.ParseLevel(strings.ToUpper(c.Logging.Level))
	if err != nil {
		return capnslog.INFO, fmt.Errorf("%w: log level %q", errs.ErrUsage, c.Logging.Level)
	}

	return level, nil
}
