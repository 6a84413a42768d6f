// Package config provides configuration types and defaults for quants.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/quants/internal/log"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all configuration options for quants.
type Config struct {
	// System names the unit system conversions run against. Only "si" exists.
	System  string        `mapstructure:"system" yaml:"system"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Tracing TracingConfig `mapstructure:"tracing" yaml:"tracing"`
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	Precision int    `mapstructure:"precision" yaml:"precision"` // significant digits, 0 = shortest exact
	Format    string `mapstructure:"format" yaml:"format"`       // "text" (default) or "yaml"
}

// LogConfig controls the debug log.
type LogConfig struct {
	Debug bool   `mapstructure:"debug" yaml:"debug"`
	File  string `mapstructure:"file" yaml:"file"` // default: quants-debug.log
}

// TracingConfig holds tracing configuration for CLI commands.
type TracingConfig struct {
	// Enabled controls whether spans are recorded.
	// Default: false
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter" yaml:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/quants/traces/traces.jsonl
	FilePath string `mapstructure:"file_path" yaml:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate" yaml:"sample_rate"`

	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
}

// Systems lists the unit system names that can be selected.
var Systems = []string{"si"}

// DefaultTracesFilePath returns ~/.config/quants/traces/traces.jsonl, or an
// empty string if the home directory is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "quants", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		System: "si",
		Output: OutputConfig{
			Precision: 6,
			Format:    "text",
		},
		Log: LogConfig{
			File: "quants-debug.log",
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     DefaultTracesFilePath(),
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
			ServiceName:  "quants",
		},
	}
}

// Validate checks cfg for errors. Empty values are accepted where a default
// applies at runtime.
func Validate(cfg Config) error {
	if cfg.System != "" && !knownSystem(cfg.System) {
		return fmt.Errorf("%w: system must be one of %v, got %q", ErrInvalid, Systems, cfg.System)
	}
	if err := ValidateOutput(cfg.Output); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateOutput checks output configuration for errors.
func ValidateOutput(out OutputConfig) error {
	if out.Precision < 0 || out.Precision > 17 {
		return fmt.Errorf("%w: output.precision must be between 0 and 17, got %d", ErrInvalid, out.Precision)
	}
	switch out.Format {
	case "", "text", "yaml":
	default:
		return fmt.Errorf("%w: output.format must be \"text\" or \"yaml\", got %q", ErrInvalid, out.Format)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("%w: tracing.sample_rate must be between 0.0 and 1.0, got %v", ErrInvalid, tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("%w: tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", ErrInvalid, tracing.Exporter)
		}
	}

	// Path requirements only matter when spans are exported.
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("%w: tracing.file_path is required when exporter is \"file\"", ErrInvalid)
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("%w: tracing.otlp_endpoint is required when exporter is \"otlp\"", ErrInvalid)
		}
	}
	return nil
}

func knownSystem(name string) bool {
	for _, s := range Systems {
		if s == name {
			return true
		}
	}
	return false
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Quants Configuration

# Unit system used for conversions (only "si" is built in)
system: si

# Output settings
output:
  precision: 6    # Significant digits when printing values (0 = shortest exact)
  format: text    # "text" (default) or "yaml"

# Debug log
log:
  debug: false              # Same as --debug or QUANTS_DEBUG=1
  file: quants-debug.log    # Written only when debug is on

# Tracing of CLI commands
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/quants/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
#   service_name: quants
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
