// Package modality describes one independently configured periodic status
// message and the capability that produces its text.
package modality

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Override is one display style property set while a message is visible.
type Override struct {
	Property string `yaml:"property"`
	Value    any    `yaml:"value"`
}

type Config struct {
	Name string `yaml:"name"`
	// Interval is a duration spec. Empty disables the modality.
	Interval string `yaml:"interval,omitempty"`
	// ShowAt is an offset within the hour the first message is aligned to.
	ShowAt     string            `yaml:"show_at,omitempty"`
	Duration   float64           `yaml:"duration"`
	TriggerKey string            `yaml:"key,omitempty"`
	Style      []Override        `yaml:"style,omitempty"`
	Params     map[string]string `yaml:"params,omitempty"`
}

// Producer builds the text shown for a modality. Failures are reported in the
// returned text, never as an error.
type Producer interface {
	Produce(ctx context.Context, cfg Config) string
}

type ProducerFunc func(ctx context.Context, cfg Config) string

func (f ProducerFunc) Produce(ctx context.Context, cfg Config) string {
	return f(ctx, cfg)
}

func (c Config) Enabled() bool {
	return strings.TrimSpace(c.Interval) != ""
}

// HasTriggerKey reports whether a key should be bound. "false", "no" and
// empty mean no binding.
func (c Config) HasTriggerKey() bool {
	switch strings.ToLower(strings.TrimSpace(c.TriggerKey)) {
	case "", "false", "no", "off":
		return false
	default:
		return true
	}
}

func (c Config) DisplayDuration() time.Duration {
	return time.Duration(c.Duration * float64(time.Second))
}

func (c Config) Param(name string) string {
	return c.Params[name]
}

func (c Config) ParamOr(name, fallback string) string {
	if value, ok := c.Params[name]; ok && value != "" {
		return value
	}
	return fallback
}

func (c Config) IntParam(name string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(c.Params[name]))
	if err != nil {
		return fallback
	}
	return value
}

// Clone returns a deep enough copy that overrides can be merged into it
// without touching the registry defaults.
func (c Config) Clone() Config {
	clone := c
	clone.Style = append([]Override(nil), c.Style...)
	clone.Params = make(map[string]string, len(c.Params))
	for k, v := range c.Params {
		clone.Params[k] = v
	}
	return clone
}

// SetStyle replaces or appends an override, keeping the original order.
func (c *Config) SetStyle(property string, value any) {
	for i := range c.Style {
		if c.Style[i].Property == property {
			c.Style[i].Value = value
			return
		}
	}
	c.Style = append(c.Style, Override{Property: property, Value: value})
}

// StyleFromMap builds overrides sorted by property name.
func StyleFromMap(m map[string]any) []Override {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	style := make([]Override, 0, len(keys))
	for _, k := range keys {
		style = append(style, Override{Property: k, Value: m[k]})
	}
	return style
}
