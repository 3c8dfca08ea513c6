package commands

import (
	"context"
	"fmt"

	"github.com/lucax88x/mpvtick/cmd/cli/console"
	"github.com/lucax88x/mpvtick/cmd/cli/runner"
	"github.com/lucax88x/mpvtick/internal/mpvtick"
	"github.com/spf13/cobra"
)

func NewConfigCmd(run func(args []string, runE runner.RunE) error, console *console.Console) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(args, runConfigCmd())
		},
	}

	configCmd.SetOut(console.Stdout)
	configCmd.SetErr(console.Stderr)

	return configCmd
}

func runConfigCmd() runner.RunE {
	return func(
		_ context.Context,
		console *console.Console,
		_ []string,
		di *mpvtick.Mpvtick,
	) error {
		out, err := di.Cfg.Yaml()
		if err != nil {
			return err
		}

		fmt.Fprint(console.Stdout, out)
		return nil
	}
}
