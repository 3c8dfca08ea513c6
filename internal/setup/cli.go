package setup

import (
	"context"
	"log/slog"

	"github.com/lucax88x/mpvtick/cmd/cli/commands"
	"github.com/lucax88x/mpvtick/cmd/cli/console"
	"github.com/lucax88x/mpvtick/cmd/cli/runner"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewCliExecutor builds the cobra tree and runs it against the real
// filesystem.
func NewCliExecutor(viper *viper.Viper, console *console.Console, level *slog.LevelVar) ProgramExecutor {
	return func(ctx context.Context, logger *slog.Logger) error {
		root := NewRootCmd(ctx, logger, level, viper, afero.NewOsFs(), console)
		return root.ExecuteContext(ctx)
	}
}

func NewRootCmd(
	ctx context.Context,
	logger *slog.Logger,
	level *slog.LevelVar,
	viper *viper.Viper,
	fs afero.Fs,
	console *console.Console,
) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mpvtick",
		Short:         "periodic on screen status messages for mpv",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String(runner.ConfigFlag, "", "config file (default is $XDG_CONFIG_HOME/mpvtick/config.yaml)")
	if err := viper.BindPFlag(runner.ConfigFlag, rootCmd.PersistentFlags().Lookup(runner.ConfigFlag)); err != nil {
		logger.ErrorContext(ctx, "cli: could not bind config flag", slog.Any("error", err))
	}

	rootCmd.SetOut(console.Stdout)
	rootCmd.SetErr(console.Stderr)

	run := func(args []string, runE runner.RunE) error {
		return runner.RunCmdE(ctx, logger, level, viper, fs, console, args, runE)
	}

	rootCmd.AddCommand(
		commands.NewStartCmd(run, console),
		commands.NewTriggerCmd(run, console),
		commands.NewRestoreCmd(run, console),
		commands.NewPlanCmd(run, console),
		commands.NewConfigCmd(run, console),
	)

	return rootCmd
}
