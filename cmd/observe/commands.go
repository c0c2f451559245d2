package main

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	ctlrZap "sigs.k8s.io/controller-runtime/pkg/log/zap"
	"sigs.k8s.io/controller-runtime/pkg/manager/signals"

	"github.com/nginx/state-observer/internal/mode/watch"
	"github.com/nginx/state-observer/internal/mode/watch/config"
)

// envPrefix is the prefix of the environment variables that set flags, for example OBSERVE_METRICS_PORT.
const envPrefix = "OBSERVE"

func createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "observe",
		Short:         "Observe the content of a directory",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	return rootCmd
}

func createWatchCommand() *cobra.Command {
	// flag names
	const (
		dirFlag            = "dir"
		periodFlag         = "period"
		outputFlag         = "output"
		paletteFlag        = "palette"
		showHiddenFlag     = "show-hidden"
		metricsDisableFlag = "metrics-disable"
		metricsPortFlag    = "metrics-port"
		logLevelFlag       = "log-level"
	)

	// flag values
	var (
		dir = stringValidatingValue{
			validator: validateDirectory,
		}
		period = durationValidatingValue{
			validator: validatePeriod,
			value:     time.Second,
		}
		output = stringValidatingValue{
			validator: validateOutput,
			value:     string(config.OutputYAML),
		}
		palette = stringValidatingValue{
			validator: validatePalette,
			value:     "dark",
		}
		showHidden        bool
		disableMetrics    bool
		metricsListenPort = intValidatingValue{
			validator: validatePort,
			value:     9113,
		}
		logLevel = stringValidatingValue{
			validator: validateLogLevel,
			value:     zap.InfoLevel.String(),
		}
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a directory and show every change of its content",
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return setFlagsFromEnv(cmd.Flags(), newEnvViper())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir.value == "" {
				return fmt.Errorf("--%s must be set", dirFlag)
			}

			atom, err := zap.ParseAtomicLevel(logLevel.value)
			if err != nil {
				return fmt.Errorf("error parsing log level: %w", err)
			}

			logger := ctlrZap.New(ctlrZap.Level(atom))

			commit, date, dirty := getBuildInfo()
			logger.Info(
				"Starting the directory observer",
				"version", version,
				"commit", commit,
				"date", date,
				"dirty", dirty,
			)

			flagKeys, flagValues := parseFlags(cmd.Flags())
			logger.V(1).Info("Flags", "keys", flagKeys, "values", flagValues)

			cfg := config.Config{
				Logger:  logger,
				Out:     cmd.OutOrStdout(),
				Version: version,
				Dir:     dir.value,
				Output:  config.Output(output.value),
				Palette: palette.value,
				MetricsConfig: config.MetricsConfig{
					Port:    metricsListenPort.value,
					Enabled: !disableMetrics,
				},
				Period:     period.value,
				ShowHidden: showHidden,
			}

			if err := watch.StartManager(signals.SetupSignalHandler(), cfg); err != nil {
				return fmt.Errorf("failed to watch directory: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().Var(
		&dir,
		dirFlag,
		"The directory to watch.",
	)

	cmd.Flags().Var(
		&period,
		periodFlag,
		"The time between two scans of the directory.",
	)

	cmd.Flags().VarP(
		&output,
		outputFlag,
		"o",
		`How to show the directory content: "yaml" and "json" print every change, "tui" opens a terminal browser.`,
	)

	cmd.Flags().Var(
		&palette,
		paletteFlag,
		"The palette the terminal browser starts with.",
	)

	cmd.Flags().BoolVar(
		&showHidden,
		showHiddenFlag,
		false,
		"Show entries whose name starts with a dot.",
	)

	cmd.Flags().BoolVar(
		&disableMetrics,
		metricsDisableFlag,
		false,
		"Disable exposing metrics in the Prometheus format.",
	)

	cmd.Flags().Var(
		&metricsListenPort,
		metricsPortFlag,
		"Set the port where the metrics are exposed. Format: [1024 - 65535]",
	)

	cmd.Flags().Var(
		&logLevel,
		logLevelFlag,
		`The log level: "debug", "info" or "error".`,
	)

	return cmd
}

func createVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			commit, date, dirty := getBuildInfo()

			_, err := fmt.Fprintf(
				cmd.OutOrStdout(),
				"version: %s\ncommit: %s\ndate: %s\ndirty: %s\n",
				version,
				commit,
				date,
				dirty,
			)

			return err
		},
	}
}

func newEnvViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// setFlagsFromEnv sets every flag that was not given on the command line from its environment variable, if set.
// The values go through flag parsing, so they are validated like command line values.
func setFlagsFromEnv(flags *pflag.FlagSet, v *viper.Viper) error {
	var errs []error

	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Changed || !v.IsSet(flag.Name) {
			return
		}

		if err := flags.Set(flag.Name, v.GetString(flag.Name)); err != nil {
			errs = append(errs, fmt.Errorf("invalid environment value for --%s: %w", flag.Name, err))
		}
	})

	return errors.Join(errs...)
}

func parseFlags(flags *pflag.FlagSet) ([]string, []string) {
	var flagKeys, flagValues []string

	flags.VisitAll(
		func(flag *pflag.Flag) {
			flagKeys = append(flagKeys, flag.Name)

			if flag.Value.Type() == "bool" {
				flagValues = append(flagValues, flag.Value.String())
			} else {
				val := "user-defined"
				if flag.Value.String() == flag.DefValue {
					val = "default"
				}

				flagValues = append(flagValues, val)
			}
		},
	)

	return flagKeys, flagValues
}

func getBuildInfo() (commitHash string, commitTime string, dirtyBuild string) {
	commitHash = "unknown"
	commitTime = "unknown"
	dirtyBuild = "unknown"

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, kv := range info.Settings {
		switch kv.Key {
		case "vcs.revision":
			commitHash = kv.Value
		case "vcs.time":
			commitTime = kv.Value
		case "vcs.modified":
			dirtyBuild = kv.Value
		}
	}

	return
}
