package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/augmentlab/ftkit/internal/config"
	"github.com/augmentlab/ftkit/internal/projectconfig"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ftkit",
		Short: "ftkit - fine-tuning data and job tooling",
		Long: `ftkit grows fine-tuning seed files with LLM-generated lines and keeps
track of the fine-tuning jobs trained on them.

Use "augment" to fill seed files up to a target line count and "list-runs"
to see recent fine-tune jobs, their estimated cost and whether they have been
synced to and evaluated in Weights & Biases.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().String("config", ".", "Directory to start searching for "+projectconfig.FileName+" from")
	cmd.PersistentFlags().String("env-file", ".env", "Dotenv file loaded before reading credentials")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newAugmentCommand())
	cmd.AddCommand(newListRunsCommand())
	cmd.AddCommand(newCacheCommand())

	return cmd
}

// settings is what every subcommand reads before doing work.
type settings struct {
	env     config.Env
	project *projectconfig.ProjectConfig
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return nil, err
	}
	startDir, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	env, err := config.LoadEnv(envFile)
	if err != nil {
		return nil, err
	}
	project, err := projectconfig.Load(startDir)
	if err != nil {
		return nil, err
	}
	if project.Dir != "" {
		slog.Debug("loaded project config", "dir", project.Dir)
	}
	return &settings{env: *env, project: project}, nil
}

func execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("ftkit: %w", err)
	}
	return nil
}
