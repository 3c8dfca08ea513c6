package modality_test

import (
	"context"
	"testing"
	"time"

	"github.com/lucax88x/mpvtick/internal/modality"
	"github.com/stretchr/testify/assert"
)

func TestEnabled(t *testing.T) {
	assert.False(t, modality.Config{}.Enabled())
	assert.False(t, modality.Config{Interval: "  "}.Enabled())
	assert.True(t, modality.Config{Interval: "15m"}.Enabled())
}

func TestHasTriggerKey(t *testing.T) {
	for _, key := range []string{"", "false", "FALSE", "no", "off"} {
		assert.False(t, modality.Config{TriggerKey: key}.HasTriggerKey(), key)
	}
	assert.True(t, modality.Config{TriggerKey: "ctrl+t"}.HasTriggerKey())
}

func TestDisplayDuration(t *testing.T) {
	assert.Equal(t, 2500*time.Millisecond, modality.Config{Duration: 2.5}.DisplayDuration())
}

func TestParams(t *testing.T) {
	cfg := modality.Config{Params: map[string]string{"cntofs": "2", "bad": "x", "empty": ""}}

	assert.Equal(t, 2, cfg.IntParam("cntofs", 0))
	assert.Equal(t, 7, cfg.IntParam("bad", 7))
	assert.Equal(t, 7, cfg.IntParam("missing", 7))
	assert.Equal(t, "fallback", cfg.ParamOr("empty", "fallback"))
	assert.Equal(t, "2", cfg.ParamOr("cntofs", "fallback"))
}

func TestCloneIsIndependent(t *testing.T) {
	original := modality.Config{
		Style:  []modality.Override{{Property: "osd-bold", Value: true}},
		Params: map[string]string{"format": "%H:%M"},
	}

	clone := original.Clone()
	clone.SetStyle("osd-bold", false)
	clone.Params["format"] = "%T"

	assert.Equal(t, true, original.Style[0].Value)
	assert.Equal(t, "%H:%M", original.Params["format"])
}

func TestSetStyleKeepsOrder(t *testing.T) {
	cfg := modality.Config{}
	cfg.SetStyle("osd-font-size", 60)
	cfg.SetStyle("osd-bold", true)
	cfg.SetStyle("osd-font-size", 80)

	assert.Equal(t, []modality.Override{
		{Property: "osd-font-size", Value: 80},
		{Property: "osd-bold", Value: true},
	}, cfg.Style)
}

func TestStyleFromMapSorted(t *testing.T) {
	style := modality.StyleFromMap(map[string]any{"osd-bold": true, "osd-align-x": "right"})

	assert.Equal(t, "osd-align-x", style[0].Property)
	assert.Equal(t, "osd-bold", style[1].Property)
}

func TestProducerFunc(t *testing.T) {
	var p modality.Producer = modality.ProducerFunc(func(_ context.Context, cfg modality.Config) string {
		return "hello " + cfg.Name
	})

	assert.Equal(t, "hello clock", p.Produce(context.Background(), modality.Config{Name: "clock"}))
}
