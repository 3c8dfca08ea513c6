package commands

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/lucax88x/mpvtick/cmd/cli/config/settings"
	"github.com/lucax88x/mpvtick/cmd/cli/console"
	"github.com/lucax88x/mpvtick/cmd/cli/runner"
	"github.com/lucax88x/mpvtick/internal/clock"
	"github.com/lucax88x/mpvtick/internal/modality"
	"github.com/lucax88x/mpvtick/internal/mpvtick"
	"github.com/lucax88x/mpvtick/internal/scheduler"
	"github.com/spf13/cobra"
)

func NewPlanCmd(run func(args []string, runE runner.RunE) error, console *console.Console) *cobra.Command {
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "print when every armed modality shows first",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(args, runPlanCmd())
		},
	}

	planCmd.SetOut(console.Stdout)
	planCmd.SetErr(console.Stderr)

	return planCmd
}

func runPlanCmd() runner.RunE {
	return func(
		_ context.Context,
		console *console.Console,
		_ []string,
		di *mpvtick.Mpvtick,
	) error {
		fmt.Fprint(console.Stdout, RenderPlan(di.Cfg.Modalities, di.Clock))
		return nil
	}
}

// RenderPlan lays out the first fire of every armed modality as a table.
func RenderPlan(modalities []modality.Config, clock clock.Clock) string {
	now := clock.Now()

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle("mpvtick plan at %s", now.Format(settings.TimeFormat))
	t.Style().Title.Align = text.AlignCenter
	t.AppendHeader(table.Row{"modality", "mode", "interval", "delay", "first", "key"})

	for _, cfg := range modalities {
		plan, ok := scheduler.Compute(cfg, now)
		if !ok {
			continue
		}

		key := "-"
		if cfg.HasTriggerKey() {
			key = cfg.TriggerKey
		}

		t.AppendRow(table.Row{
			plan.Name,
			plan.Mode,
			plan.Interval,
			plan.Delay,
			plan.FirstFire.Format(settings.TimeFormat),
			key,
		})
	}

	return t.Render() + "\n"
}
