package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/quants/internal/config"
	"github.com/zjrosen/quants/internal/log"
	"github.com/zjrosen/quants/internal/tracing"
	"github.com/zjrosen/quants/pkg/catalog"
	"github.com/zjrosen/quants/pkg/catalog/matrix"
	"github.com/zjrosen/quants/pkg/quantity"
	"github.com/zjrosen/quants/pkg/system"
)

// localConfigPath is checked before the user config directory.
const localConfigPath = ".quants/config.yaml"

// annotationWritesConfig marks commands that may create the file named by
// --config, so a missing file is not an error for them.
const annotationWritesConfig = "quants/writes-config"

var version = "dev"

// app is the state shared by every command of one invocation.
type app struct {
	cfgFile string
	v       *viper.Viper
	cfg     config.Config

	system     *system.UnitSystem
	arithmetic *quantity.Arithmetic
	tracer     *tracing.Provider
	closeLog   func()
}

// newRootCmd builds the command tree. cleanup flushes spans and closes the
// debug log; it must run after Execute whether or not the command failed.
func newRootCmd() (root *cobra.Command, cleanup func() error) {
	a := &app{v: viper.New()}

	root = &cobra.Command{
		Use:   "quants",
		Short: "Convert and combine physical quantities",
		Long: `quants converts values between units of the same dimension and
multiplies, divides, adds or subtracts quantities while tracking their units.

Units are given by symbol, e.g. kg, km/h, m^2 or an alias such as m², L or Pa.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "",
		"config file (default: ./.quants/config.yaml, then ~/.config/quants/config.yaml)")
	flags.Bool("debug", false, "write a debug log (also QUANTS_DEBUG=1)")
	flags.StringP("format", "f", "", "output format: text or yaml")
	flags.IntP("precision", "p", 0, "significant digits in printed values")

	_ = a.v.BindPFlag("log.debug", flags.Lookup("debug"))
	_ = a.v.BindPFlag("output.format", flags.Lookup("format"))
	_ = a.v.BindPFlag("output.precision", flags.Lookup("precision"))
	_ = a.v.BindEnv("log.debug", "QUANTS_DEBUG")

	root.AddCommand(
		newConvertCmd(a),
		newUnitsCmd(a),
		newDimensionsCmd(a),
		newCalcCmd(a),
		newDemoCmd(a),
		newConfigCmd(a),
	)
	return root, a.teardown
}

// loadConfig resolves the config file and unmarshals it over the defaults.
// Lookup order: --config, ./.quants/config.yaml, ~/.config/quants/config.yaml.
// A missing file is not an error, except a missing --config file when
// allowMissing is false.
func (a *app) loadConfig(allowMissing bool) error {
	defaults := config.Defaults()
	a.v.SetDefault("system", defaults.System)
	a.v.SetDefault("output.precision", defaults.Output.Precision)
	a.v.SetDefault("output.format", defaults.Output.Format)
	a.v.SetDefault("log.debug", defaults.Log.Debug)
	a.v.SetDefault("log.file", defaults.Log.File)
	a.v.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	a.v.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	a.v.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	a.v.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	a.v.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	a.v.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	switch {
	case a.cfgFile != "" && allowMissing && !fileExists(a.cfgFile):
		log.Debug(log.CatConfig, "config file does not exist yet", "path", a.cfgFile)
		return a.decodeConfig()
	case a.cfgFile != "":
		a.v.SetConfigFile(a.cfgFile)
	case fileExists(localConfigPath):
		a.v.SetConfigFile(localConfigPath)
	default:
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(filepath.Join(home, ".config", "quants"))
		}
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return a.decodeConfig()
}

func (a *app) decodeConfig() error {
	if err := a.v.Unmarshal(&a.cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	if err := config.Validate(a.cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// configPath is the file config subcommands write to.
func (a *app) configPath() string {
	if used := a.v.ConfigFileUsed(); used != "" {
		return used
	}
	if a.cfgFile != "" {
		return a.cfgFile
	}
	return localConfigPath
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	_, writesConfig := cmd.Annotations[annotationWritesConfig]
	if err := a.loadConfig(writesConfig); err != nil {
		return err
	}

	if a.cfg.Log.Debug {
		closeLog, err := log.Init(a.cfg.Log.File)
		if err != nil {
			return err
		}
		a.closeLog = closeLog
		log.Info(log.CatCLI, "quants starting", "version", version, "command", cmd.CommandPath())
	}

	provider, err := tracing.NewProvider(tracing.Config{
		Enabled:      a.cfg.Tracing.Enabled,
		Exporter:     a.cfg.Tracing.Exporter,
		FilePath:     a.cfg.Tracing.FilePath,
		OTLPEndpoint: a.cfg.Tracing.OTLPEndpoint,
		SampleRate:   a.cfg.Tracing.SampleRate,
		ServiceName:  a.cfg.Tracing.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	a.tracer = provider

	return tracing.Run(cmd.Context(), a.tracer.Tracer(), tracing.SpanCreateSystem, func(context.Context) error {
		return a.build()
	}, attribute.String(tracing.AttrSystem, a.cfg.System))
}

// build creates the unit system and the arithmetic registry.
func (a *app) build() error {
	si, err := catalog.NewSI()
	if err != nil {
		return fmt.Errorf("creating %s unit system: %w", a.cfg.System, err)
	}
	arithmetic, err := catalog.NewStandardArithmetic()
	if err != nil {
		return fmt.Errorf("registering operations: %w", err)
	}
	if err := matrix.Register(arithmetic); err != nil {
		return fmt.Errorf("registering matrix operations: %w", err)
	}
	a.system = si
	a.arithmetic = arithmetic
	return nil
}

func (a *app) teardown() error {
	var err error
	if a.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = a.tracer.Shutdown(ctx)
		cancel()
		a.tracer = nil
	}
	if a.closeLog != nil {
		a.closeLog()
		a.closeLog = nil
	}
	return err
}

// run executes fn inside a span named after the command.
func (a *app) run(cmd *cobra.Command, args []string, fn func(ctx context.Context) error) error {
	var tracer trace.Tracer
	if a.tracer != nil {
		tracer = a.tracer.Tracer()
	}
	err := tracing.Run(cmd.Context(), tracer, tracing.SpanPrefixCommand+cmd.Name(), fn,
		attribute.String(tracing.AttrCommand, cmd.CommandPath()),
		attribute.StringSlice(tracing.AttrArgs, args),
	)
	if err != nil {
		log.ErrorErr(log.CatCLI, "command failed", err, "command", cmd.Name())
	}
	return err
}

func (a *app) printer(cmd *cobra.Command) *printer {
	return newPrinter(cmd.OutOrStdout(), a.cfg.Output.Format, a.cfg.Output.Precision)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Execute runs the root command.
func Execute() error {
	root, cleanup := newRootCmd()
	err := root.Execute()
	if cerr := cleanup(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
	}
	return err
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
}
