package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"formfiller/config"
	"formfiller/utils"
)

// app carries what PersistentPreRunE resolves for the subcommands.
type app struct {
	v       *viper.Viper
	envFile string
	cfg     *config.AppConfig
	logger  *zap.Logger
}

// NewRootCommand builds a fresh command tree; flags never leak between instances.
func NewRootCommand() *cobra.Command {
	a := &app{v: config.NewViper()}

	rootCmd := &cobra.Command{
		Use:           "formfiller",
		Short:         "Fills and submits web survey forms with synthetic responses.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Subcommand flags named like config keys (e.g. --port) override env.
			if err := a.v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.LoadFrom(a.v, a.envFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			a.cfg = cfg
			a.logger = utils.InitLogger(cfg.Logger)
			a.logger.Debug("Configuration loaded", zap.String("environment", cfg.Environment))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			utils.SyncLogger()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", "", "dotenv file to load (default is ./.env when present)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (console or json)")
	flags.Bool("headless", true, "run the browser headless")
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("log.format", flags.Lookup("log-format"))
	_ = a.v.BindPFlag("headless", flags.Lookup("headless"))

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	rootCmd.AddCommand(newServeCmd(a), newRunCmd(a), newTokenCmd(a))
	return rootCmd
}

// Execute runs the CLI with a signal-aware context.
func Execute(ctx context.Context) error {
	err := NewRootCommand().ExecuteContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		utils.LogError("Command execution failed", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}
