package items

import (
	"log/slog"
	"strings"

	"github.com/lucax88x/mpvtick/internal/clock"
	"github.com/lucax88x/mpvtick/internal/command"
	"github.com/lucax88x/mpvtick/internal/modality"
)

const (
	ClockName   = "clock"
	MailName    = "mail"
	WeatherName = "weather"
	BatteryName = "battery"
)

// Names lists every known modality in registration order.
//
//nolint:gochecknoglobals // ok
var Names = []string{ClockName, MailName, WeatherName, BatteryName}

// Defaults returns a fresh copy of the built in configuration of every
// modality. Only the clock is enabled out of the box: mail and weather need
// an account or a location first.
func Defaults() []modality.Config {
	return []modality.Config{
		{
			Name:       ClockName,
			Interval:   "15m",
			Duration:   2.5,
			TriggerKey: "ctrl+T",
			Style: []modality.Override{
				{Property: "osd-font-size", Value: 80},
				{Property: "osd-bold", Value: true},
				{Property: "osd-align-x", Value: "right"},
				{Property: "osd-align-y", Value: "top"},
			},
			Params: map[string]string{
				"format": "%H:%M",
			},
		},
		{
			Name:       MailName,
			ShowAt:     "58m",
			Duration:   4,
			TriggerKey: "ctrl+M",
			Style: []modality.Override{
				{Property: "osd-align-x", Value: "right"},
				{Property: "osd-align-y", Value: "top"},
			},
			Params: map[string]string{
				"url":      "imaps://imap.example.com:993/INBOX",
				"user":     "",
				"request":  "STATUS INBOX (UNSEEN)",
				"pattern":  `UNSEEN (\d+)`,
				"cntofs":   "0",
				"positive": "✉ {count} new",
				"negative": "✉ {count} below expected",
				"zero":     "✉ no new mail",
				"error":    "✉ check failed: {response}",
			},
		},
		{
			Name:       WeatherName,
			Duration:   8,
			TriggerKey: "ctrl+W",
			Style: []modality.Override{
				{Property: "osd-font-size", Value: 36},
				{Property: "osd-align-x", Value: "left"},
				{Property: "osd-align-y", Value: "top"},
			},
			Params: map[string]string{
				"url":        "https://wttr.in/{location}",
				"location":   "",
				"lang":       "en",
				"days":       "3",
				"day_format": "%a %d",
			},
		},
		{
			Name:     BatteryName,
			Duration: 3,
			Style: []modality.Override{
				{Property: "osd-align-x", Value: "right"},
				{Property: "osd-align-y", Value: "bottom"},
			},
		},
	}
}

// Source is where per modality overrides come from. *viper.Viper satisfies
// it.
type Source interface {
	IsSet(key string) bool
	GetString(key string) string
	GetFloat64(key string) float64
	GetStringMap(key string) map[string]any
	GetStringMapString(key string) map[string]string
}

// Resolve merges the overrides found under modalities.<name> into defaults.
func Resolve(defaults []modality.Config, source Source) []modality.Config {
	resolved := make([]modality.Config, 0, len(defaults))

	for _, d := range defaults {
		cfg := d.Clone()
		key := func(field string) string {
			return "modalities." + cfg.Name + "." + field
		}

		if source.IsSet(key("interval")) {
			cfg.Interval = strings.TrimSpace(source.GetString(key("interval")))
		}
		if source.IsSet(key("show_at")) {
			cfg.ShowAt = strings.TrimSpace(source.GetString(key("show_at")))
		}
		if source.IsSet(key("duration")) {
			cfg.Duration = source.GetFloat64(key("duration"))
		}
		if source.IsSet(key("key")) {
			cfg.TriggerKey = source.GetString(key("key"))
		}
		for _, override := range modality.StyleFromMap(source.GetStringMap(key("style"))) {
			cfg.SetStyle(override.Property, override.Value)
		}
		for name, value := range source.GetStringMapString(key("params")) {
			cfg.Params[name] = value
		}

		resolved = append(resolved, cfg)
	}

	return resolved
}

// Producers resolves the producer of every modality once, up front.
func Producers(
	logger *slog.Logger,
	clock clock.Clock,
	runner command.Runner,
	batteries BatteryReader,
) map[string]modality.Producer {
	return map[string]modality.Producer{
		ClockName:   NewClockItem(logger, clock),
		MailName:    NewMailItem(logger, runner),
		WeatherName: NewWeatherItem(logger, runner),
		BatteryName: NewBatteryItem(logger, batteries),
	}
}
