package commands_test

import (
	"testing"
	"time"

	"github.com/lucax88x/mpvtick/cmd/cli/commands"
	"github.com/lucax88x/mpvtick/cmd/cli/config/items"
	"github.com/lucax88x/mpvtick/internal/clock"
	"github.com/lucax88x/mpvtick/internal/modality"
	"github.com/stretchr/testify/assert"
)

func TestRenderPlan(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 7, 30, 0, time.UTC)

	modalities := items.Defaults()
	for i := range modalities {
		if modalities[i].Name == items.MailName {
			modalities[i].Interval = "1h"
		}
	}
	modalities = append(modalities, modality.Config{Name: "broken", Interval: "soon"})

	out := commands.RenderPlan(modalities, clock.NewFixedClock(now))

	assert.Contains(t, out, "10:07:30")

	// clock aligns to the next quarter, mail waits for minute 58
	assert.Contains(t, out, "clock")
	assert.Contains(t, out, "10:15:00")
	assert.Contains(t, out, "7m30s")
	assert.Contains(t, out, "ctrl+T")
	assert.Contains(t, out, "mail")
	assert.Contains(t, out, "10:58:00")
	assert.Contains(t, out, "show_at")

	// inert modalities are left out
	assert.NotContains(t, out, "weather")
	assert.NotContains(t, out, "battery")
	assert.NotContains(t, out, "broken")
}
