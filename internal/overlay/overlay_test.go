package overlay_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/lucax88x/mpvtick/internal/modality"
	"github.com/lucax88x/mpvtick/internal/overlay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	props   map[string]any
	failGet map[string]bool
	shown   []string
	lasting []time.Duration
	showErr error
	// style at the moment ShowText was called
	styleAtShow map[string]any
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		props: map[string]any{
			"osd-font-size": 55.0,
			"osd-bold":      false,
			"osd-align-x":   "left",
			"osd-color":     "#FFFFFF",
		},
		failGet: map[string]bool{},
	}
}

func (h *fakeHost) GetProperty(_ context.Context, name string) (any, error) {
	if h.failGet[name] {
		return nil, errors.New("property unavailable")
	}
	return h.props[name], nil
}

func (h *fakeHost) SetProperty(_ context.Context, name string, value any) error {
	h.props[name] = value
	return nil
}

func (h *fakeHost) ShowText(_ context.Context, text string, duration time.Duration) error {
	h.styleAtShow = map[string]any{}
	for k, v := range h.props {
		h.styleAtShow[k] = v
	}
	h.shown = append(h.shown, text)
	h.lasting = append(h.lasting, duration)
	return h.showErr
}

func clockConfig() modality.Config {
	return modality.Config{
		Name:     "clock",
		Duration: 2.5,
		Style: []modality.Override{
			{Property: "osd-font-size", Value: 80},
			{Property: "osd-bold", Value: true},
			{Property: "osd-align-x", Value: "right"},
		},
	}
}

func newOverlay(host *fakeHost) *overlay.Overlay {
	return overlay.New(slog.New(slog.NewTextHandler(io.Discard, nil)), host, host)
}

func TestRenderSnapshotsOnlyOverriddenKeys(t *testing.T) {
	host := newFakeHost()

	snapshot, err := newOverlay(host).Render(context.Background(), "22:10", clockConfig())

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"osd-font-size": 55.0,
		"osd-bold":      false,
		"osd-align-x":   "left",
	}, snapshot.Values())

	assert.Equal(t, 80, host.props["osd-font-size"])
	assert.Equal(t, true, host.props["osd-bold"])
	assert.Equal(t, "right", host.props["osd-align-x"])
	assert.Equal(t, "#FFFFFF", host.props["osd-color"])
}

func TestRenderShowsWithOverridesApplied(t *testing.T) {
	host := newFakeHost()

	_, err := newOverlay(host).Render(context.Background(), "22:10", clockConfig())

	require.NoError(t, err)
	assert.Equal(t, []string{"22:10"}, host.shown)
	assert.Equal(t, []time.Duration{2500 * time.Millisecond}, host.lasting)
	assert.Equal(t, 80, host.styleAtShow["osd-font-size"])
}

func TestRenderDoesNotRestore(t *testing.T) {
	host := newFakeHost()
	o := newOverlay(host)

	_, err := o.Render(context.Background(), "22:10", clockConfig())
	require.NoError(t, err)

	assert.Equal(t, true, host.props["osd-bold"])
}

func TestRenderSnapshotIsPerCall(t *testing.T) {
	host := newFakeHost()
	o := newOverlay(host)

	first, err := o.Render(context.Background(), "22:10", clockConfig())
	require.NoError(t, err)

	mail := modality.Config{Name: "mail", Style: []modality.Override{{Property: "osd-color", Value: "#FF0000"}}}
	second, err := o.Render(context.Background(), "3 new", mail)
	require.NoError(t, err)

	assert.Len(t, first, 3)
	assert.Equal(t, map[string]any{"osd-color": "#FFFFFF"}, second.Values())
}

func TestRestoreWritesSnapshotBack(t *testing.T) {
	host := newFakeHost()
	o := newOverlay(host)

	snapshot, err := o.Render(context.Background(), "22:10", clockConfig())
	require.NoError(t, err)

	require.NoError(t, o.Restore(context.Background(), snapshot))

	assert.Equal(t, 55.0, host.props["osd-font-size"])
	assert.Equal(t, false, host.props["osd-bold"])
	assert.Equal(t, "left", host.props["osd-align-x"])
}

func TestRenderSkipsUnreadableProperty(t *testing.T) {
	host := newFakeHost()
	host.failGet["osd-bold"] = true

	snapshot, err := newOverlay(host).Render(context.Background(), "22:10", clockConfig())

	require.NoError(t, err)
	assert.NotContains(t, snapshot.Values(), "osd-bold")
	assert.Equal(t, true, host.props["osd-bold"])
}

func TestRenderReportsDisplayFailure(t *testing.T) {
	host := newFakeHost()
	host.showErr = errors.New("connection closed")

	snapshot, err := newOverlay(host).Render(context.Background(), "22:10", clockConfig())

	require.Error(t, err)
	assert.Len(t, snapshot, 3)
}
