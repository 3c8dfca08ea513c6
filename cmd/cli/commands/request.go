package commands

import (
	"context"
	"fmt"
	"slices"

	"github.com/lucax88x/mpvtick/cmd/cli/config/args"
	"github.com/lucax88x/mpvtick/cmd/cli/config/items"
	"github.com/lucax88x/mpvtick/cmd/cli/console"
	"github.com/lucax88x/mpvtick/cmd/cli/runner"
	"github.com/lucax88x/mpvtick/internal/fifo"
	"github.com/lucax88x/mpvtick/internal/mpvtick"
	"github.com/spf13/cobra"
)

func NewTriggerCmd(run func(args []string, runE runner.RunE) error, console *console.Console) *cobra.Command {
	return newRequestCmd(
		run,
		console,
		args.Trigger,
		"show a modality now in the running mpvtick",
	)
}

func NewRestoreCmd(run func(args []string, runE runner.RunE) error, console *console.Console) *cobra.Command {
	return newRequestCmd(
		run,
		console,
		args.Restore,
		"put back the style a modality overrode on its last message",
	)
}

func newRequestCmd(
	run func(args []string, runE runner.RunE) error,
	console *console.Console,
	event args.Event,
	short string,
) *cobra.Command {
	cmd := &cobra.Command{
		Use:       event + " <modality>",
		Short:     short,
		Args:      cobra.ExactArgs(1),
		ValidArgs: items.Names,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(args, runRequestCmd(event))
		},
	}

	cmd.SetOut(console.Stdout)
	cmd.SetErr(console.Stderr)

	return cmd
}

func runRequestCmd(event args.Event) runner.RunE {
	return func(
		_ context.Context,
		console *console.Console,
		cmdArgs []string,
		di *mpvtick.Mpvtick,
	) error {
		name := cmdArgs[0]

		if !slices.Contains(items.Names, name) {
			return fmt.Errorf("%s: unknown modality %q, expected one of %v", event, name, items.Names)
		}

		msg, err := args.BuildEvent(event, name)
		if err != nil {
			return err
		}

		if err := fifo.Send(di.Cfg.Fifo, msg); err != nil {
			return fmt.Errorf("%s: could not reach mpvtick at %s. %w", event, di.Cfg.Fifo, err)
		}

		fmt.Fprintf(console.Stdout, "%s %s\n", event, name)

		return nil
	}
}
