package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/quants/internal/config"
	"github.com/zjrosen/quants/internal/log"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create, edit and show the configuration file",
	}
	cmd.AddCommand(newConfigInitCmd(a), newConfigSetCmd(a), newConfigShowCmd(a))
	return cmd
}

func newConfigInitCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented default config file",
		Long: `Write the default configuration to ./.quants/config.yaml, or to the
file named by --config. An existing file is kept unless --force is given.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationWritesConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args, func(context.Context) error {
				path := localConfigPath
				if a.cfgFile != "" {
					path = a.cfgFile
				}
				if fileExists(path) && !force {
					return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
				}
				if err := config.WriteDefaultConfig(path); err != nil {
					return err
				}
				a.printer(cmd).linef("Created %s", path)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func newConfigSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one configuration value",
		Long: `Set a configuration value by its dotted key, keeping the comments and
other settings of the file. Invalid values are rejected and the file is left
unchanged.

Examples:
  quants config set output.precision 3
  quants config set tracing.enabled true`,
		Args:        cobra.ExactArgs(2),
		Annotations: map[string]string{annotationWritesConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args, func(context.Context) error {
				path := a.configPath()
				if err := setConfigValue(path, args[0], args[1]); err != nil {
					return err
				}
				a.printer(cmd).linef("Set %s = %s in %s", args[0], args[1], path)
				return nil
			})
		},
	}
}

// setConfigValue writes key and validates the resulting file, restoring the
// previous content when validation fails.
func setConfigValue(path, key, value string) error {
	previous, err := os.ReadFile(path)
	existed := err == nil
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reading config: %w", err)
	}

	if err := config.SetValue(path, key, value); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	var cfg config.Config
	err = v.ReadInConfig()
	if err == nil {
		err = v.Unmarshal(&cfg)
	}
	if err == nil {
		err = config.Validate(cfg)
	}
	if err == nil {
		log.Info(log.CatConfig, "Config value set", "path", path, "key", key)
		return nil
	}

	if existed {
		_ = os.WriteFile(path, previous, 0o600)
	} else {
		_ = os.Remove(path)
	}
	return fmt.Errorf("rejected %s=%s: %w", key, value, err)
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args, func(context.Context) error {
				p := a.printer(cmd)
				if used := a.v.ConfigFileUsed(); used != "" {
					p.linef("# %s", used)
				}
				return p.yaml(a.cfg)
			})
		},
	}
}
