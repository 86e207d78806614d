// Package cmd implements the nodeconfig command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// envPrefix prefixes the environment variables every flag may be given by,
// e.g. NODECFG_DB_PATH for --db-path.
const envPrefix = "NODECFG"

type rootFlags struct {
	logLevel string
	json     bool
}

// Execute runs the command line interface and exits the process with a
// non-zero status on failure.
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// NewRootCmd returns the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}
	log := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()

	rootCmd := &cobra.Command{
		Use:           "nodeconfig",
		Short:         "Bootstrap the configuration of a node",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			err := bindEnv(cmd)
			if err != nil {
				return err
			}
			level, err := zerolog.ParseLevel(flags.logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", flags.logLevel, err)
			}
			log = log.Level(level)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "loglevel", "info", "level of the logs written to stderr")
	rootCmd.PersistentFlags().BoolVar(&flags.json, "json", false, "print the result as JSON")

	// subcommands resolve the logger lazily, after the log level is applied
	logger := func() zerolog.Logger { return log }

	rootCmd.AddCommand(
		newGenerateTemplateCmd(logger, flags),
		newGenerateConfigCmd(logger, flags),
		newFinalizeCmd(logger, flags),
		newRunCmd(logger, flags),
		newRunDevCmd(logger, flags),
		newMaintenanceCmd(logger, flags),
	)
	return rootCmd
}

// bindEnv fills every flag that was not given on the command line from its
// environment variable, if set.
func bindEnv(cmd *cobra.Command) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed || !v.IsSet(f.Name) {
			return
		}
		if setErr := cmd.Flags().Set(f.Name, v.GetString(f.Name)); setErr != nil {
			err = fmt.Errorf("invalid value of %s_%s: %w", envPrefix, strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_")), setErr)
		}
	})
	return err
}
