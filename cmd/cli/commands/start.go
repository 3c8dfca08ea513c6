package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lucax88x/mpvtick/cmd/cli/console"
	"github.com/lucax88x/mpvtick/cmd/cli/runner"
	"github.com/lucax88x/mpvtick/internal/mpvtick"
	"github.com/spf13/cobra"
)

func NewStartCmd(run func(args []string, runE runner.RunE) error, console *console.Console) *cobra.Command {
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "connect to mpv and show status messages until it quits",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(args, runStartCmd())
		},
	}

	startCmd.SetOut(console.Stdout)
	startCmd.SetErr(console.Stderr)

	return startCmd
}

func runStartCmd() runner.RunE {
	return func(
		ctx context.Context,
		_ *console.Console,
		_ []string,
		di *mpvtick.Mpvtick,
	) error {
		if err := runner.CreatePidFile(di.Fs, di.Cfg.PidFile, nil); err != nil {
			var running runner.ErrAlreadyRunning
			if errors.As(err, &running) {
				return err
			}
			di.Logger.ErrorContext(ctx, "start: could not create pid file, continuing anyway", slog.Any("error", err))
		}

		defer func() {
			if err := runner.RemovePidFile(di.Fs, di.Cfg.PidFile); err != nil {
				di.Logger.ErrorContext(ctx, "start: could not remove pid file", slog.Any("error", err))
			}
		}()

		di.Logger.InfoContext(ctx, "start: connecting", slog.String("socket", di.Cfg.Socket))

		session, err := di.Connect(ctx)
		if err != nil {
			return err
		}

		if err := session.Run(ctx); err != nil {
			return err
		}

		di.Logger.InfoContext(ctx, "start: shutdown complete")

		return nil
	}
}
