package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dbnav/object-browser/internal/config"
)

const envPrefix = "NAVIGATOR"

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	cfg := config.NewConfigurationWithDefaults()
	var configFile string

	persistent := append(loggingFlags(cfg), browserFlags(cfg)...)
	serve := serveFlags(cfg)
	all := append(slices.Clone(persistent), serve...)

	cmd := &cobra.Command{
		Use:           "navigator",
		Short:         "Object browser over a database admin node api",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: cobrautil.CommandStack(
			cobrautil.SyncViperPreRunE(envPrefix),
			syncConfigFile(&configFile),
			func(*cobra.Command, []string) error {
				all.apply(cfg)
				if err := cfg.Validate(); err != nil {
					return err
				}
				return setupLogger(cfg)
			},
		),
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = zap.L().Sync()
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "yaml file with flag values, flags and env vars take precedence")
	persistent.register(cmd)

	cmd.AddCommand(
		NewServeCommand(cfg, serve),
		NewBrowseCommand(cfg),
	)
	return cmd
}

// syncConfigFile reads the optional yaml config file and applies its values
// to the flags that were not set on the command line or from the
// environment.
func syncConfigFile(path *string) cobrautil.CobraRunFunc {
	return func(cmd *cobra.Command, _ []string) error {
		if *path == "" {
			return nil
		}

		v := viper.New()
		v.SetConfigFile(*path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", *path, err)
		}

		var setErr error
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if setErr != nil || f.Changed || !v.IsSet(f.Name) {
				return
			}
			if err := cmd.Flags().Set(f.Name, v.GetString(f.Name)); err != nil {
				setErr = fmt.Errorf("invalid value for %s in %s: %w", f.Name, *path, err)
			}
		})
		return setErr
	}
}

func setupLogger(cfg *config.Configuration) error {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	zapCfg := zap.NewDevelopmentConfig()
	if cfg.LogFormat == "json" {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	return nil
}
