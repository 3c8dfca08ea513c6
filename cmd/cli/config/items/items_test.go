package items

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/distatus/battery"
	"github.com/lucax88x/mpvtick/internal/clock"
	"github.com/lucax88x/mpvtick/internal/modality"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedRunner struct {
	out   string
	err   error
	calls [][]string
}

func (r *scriptedRunner) Run(_ context.Context, name string, arg ...string) (string, error) {
	r.calls = append(r.calls, append([]string{name}, arg...))
	return r.out, r.err
}

func (r *scriptedRunner) Combined(ctx context.Context, name string, arg ...string) (string, error) {
	return r.Run(ctx, name, arg...)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func defaultsOf(t *testing.T, name string) modality.Config {
	t.Helper()

	for _, cfg := range Defaults() {
		if cfg.Name == name {
			return cfg
		}
	}

	t.Fatalf("no defaults for %s", name)
	return modality.Config{}
}

func TestClockFormatsNow(t *testing.T) {
	at := time.Date(2026, 10, 19, 22, 7, 5, 0, time.UTC)
	item := NewClockItem(discard(), clock.NewFixedClock(at))

	assert.Equal(t, "22:07", item.Produce(context.Background(), defaultsOf(t, ClockName)))

	cfg := defaultsOf(t, ClockName)
	cfg.Params["format"] = "%Y-%m-%d %H:%M:%S"
	assert.Equal(t, "2026-10-19 22:07:05", item.Produce(context.Background(), cfg))
}

func TestMailPositiveCount(t *testing.T) {
	runner := &scriptedRunner{out: "* STATUS INBOX (UNSEEN 5)"}
	cfg := defaultsOf(t, MailName)
	cfg.Params["user"] = "me:secret"

	message := NewMailItem(discard(), runner).Produce(context.Background(), cfg)

	assert.Equal(t, "✉ 5 new", message)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{
		"curl", "--silent", "--show-error", "--connect-timeout", "3",
		"--url", "imaps://imap.example.com:993/INBOX",
		"--user", "me:secret",
		"--request", "STATUS INBOX (UNSEEN)",
	}, runner.calls[0])
}

func TestMailOffsetSelectsTemplate(t *testing.T) {
	runner := &scriptedRunner{out: "* STATUS INBOX (UNSEEN 2)"}
	cfg := defaultsOf(t, MailName)
	item := NewMailItem(discard(), runner)

	cfg.Params["cntofs"] = "2"
	assert.Equal(t, "✉ no new mail", item.Produce(context.Background(), cfg))

	cfg.Params["cntofs"] = "3"
	assert.Equal(t, "✉ -1 below expected", item.Produce(context.Background(), cfg))
}

func TestMailUnparseableResponseUsesErrorTemplate(t *testing.T) {
	runner := &scriptedRunner{out: "curl: (67) Login denied", err: errors.New("exit status 67")}

	message := NewMailItem(discard(), runner).Produce(context.Background(), defaultsOf(t, MailName))

	assert.Equal(t, "✉ check failed: curl: (67) Login denied", message)
}

func TestMailPercentClassPattern(t *testing.T) {
	runner := &scriptedRunner{out: "* STATUS INBOX (UNSEEN 5)"}
	cfg := defaultsOf(t, MailName)
	cfg.Params["pattern"] = "UNSEEN (%d+)"
	cfg.Params["cntofs"] = "0"

	message := NewMailItem(discard(), runner).Produce(context.Background(), cfg)

	assert.Equal(t, "✉ 5 new", message)
}

func TestTranslatePattern(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{`UNSEEN (%d+)`, `UNSEEN ([[:digit:]]+)`},
		{`UNSEEN (\d+)`, `UNSEEN (\d+)`},
		{`%s*%a+%S`, `[[:space:]]*[[:alpha:]]+[^[:space:]]`},
		{`[%w_]+`, `[[:alnum:]_]+`},
		{`[^%D]`, `[^[:^digit:]]`},
		{`100%%`, `100%`},
		{`a%.b`, `a\.b`},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, translatePattern(tt.pattern))
		})
	}
}

func TestMailEmptyResponse(t *testing.T) {
	message := NewMailItem(discard(), &scriptedRunner{}).Produce(context.Background(), defaultsOf(t, MailName))

	assert.Equal(t, "✉ check failed: ", message)
}

func TestMailInvalidPattern(t *testing.T) {
	cfg := defaultsOf(t, MailName)
	cfg.Params["pattern"] = "UNSEEN ("

	message := NewMailItem(discard(), &scriptedRunner{out: "UNSEEN 4"}).Produce(context.Background(), cfg)

	assert.Equal(t, "✉ check failed: UNSEEN 4", message)
}

const wttrResponse = `{
  "current_condition": [{"temp_C": "12", "FeelsLikeC": "10", "weatherDesc": [{"value": "Partly cloudy"}]}],
  "nearest_area": [{"areaName": [{"value": "Zurich"}]}],
  "weather": [
    {"date": "2026-10-19", "maxtempC": "15", "mintempC": "7",
     "hourly": [{"time": "0", "weatherDesc": [{"value": "Clear"}]}, {"time": "1200", "weatherDesc": [{"value": "Sunny"}]}]},
    {"date": "2026-10-20", "maxtempC": "13", "mintempC": "6",
     "hourly": [{"time": "1200", "weatherDesc": [{"value": "Light rain"}]}]},
    {"date": "2026-10-21", "maxtempC": "11", "mintempC": "4", "hourly": []},
    {"date": "2026-10-22", "maxtempC": "10", "mintempC": "3", "hourly": []}
  ]
}`

func TestWeatherFormatsHeaderAndForecast(t *testing.T) {
	runner := &scriptedRunner{out: wttrResponse}
	cfg := defaultsOf(t, WeatherName)
	cfg.Params["location"] = "Zurich"

	message := NewWeatherItem(discard(), runner).Produce(context.Background(), cfg)

	assert.Equal(t, "Zurich: Partly cloudy, 12°C (feels 10°C)\n"+
		"Mon 19: 7–15°C Sunny\n"+
		"Tue 20: 6–13°C Light rain\n"+
		"Wed 21: 4–11°C", message)

	require.Len(t, runner.calls, 1)
	assert.Contains(t, runner.calls[0], "https://wttr.in/Zurich")
	assert.Contains(t, runner.calls[0], "format=j1")
}

func TestWeatherDecodeFailureIsItsOwnState(t *testing.T) {
	item := NewWeatherItem(discard(), &scriptedRunner{out: "<html>Service Unavailable</html>"})

	message := item.Produce(context.Background(), defaultsOf(t, WeatherName))

	assert.Contains(t, message, "Weather unreadable")
}

func TestWeatherMissingFields(t *testing.T) {
	_, err := decodeWeather(`{"weather": []}`)
	require.ErrorIs(t, err, errNoCurrentCondition)

	_, err = decodeWeather(`{"current_condition": [{"temp_C": "1"}]}`)
	require.ErrorIs(t, err, errNoForecast)
}

func TestWeatherFetchFailure(t *testing.T) {
	item := NewWeatherItem(discard(), &scriptedRunner{err: errors.New("could not run command 'curl'. exit status 28")})

	message := item.Produce(context.Background(), defaultsOf(t, WeatherName))

	assert.Contains(t, message, "Weather unavailable")
}

func TestBatteryPercentage(t *testing.T) {
	item := NewBatteryItem(discard(), func() ([]*battery.Battery, error) {
		return []*battery.Battery{{Current: 42, Full: 50}}, nil
	})

	assert.Contains(t, item.Produce(context.Background(), defaultsOf(t, BatteryName)), "Battery 84%")
}

func TestBatteryMissing(t *testing.T) {
	item := NewBatteryItem(discard(), func() ([]*battery.Battery, error) {
		return nil, errors.New("no such file or directory")
	})

	assert.Equal(t, "Battery unavailable: no such file or directory", item.Produce(context.Background(), modality.Config{}))

	none := NewBatteryItem(discard(), func() ([]*battery.Battery, error) { return nil, nil })
	assert.Equal(t, "Battery unavailable: has no battery", none.Produce(context.Background(), modality.Config{}))
}

func TestOnlyClockEnabledByDefault(t *testing.T) {
	for _, cfg := range Defaults() {
		assert.Equal(t, cfg.Name == ClockName, cfg.Enabled(), cfg.Name)
	}
}

type mapSource map[string]any

func (m mapSource) IsSet(key string) bool { _, ok := m[key]; return ok }

func (m mapSource) GetString(key string) string {
	s, _ := m[key].(string)
	return s
}

func (m mapSource) GetFloat64(key string) float64 {
	f, _ := m[key].(float64)
	return f
}

func (m mapSource) GetStringMap(key string) map[string]any {
	v, _ := m[key].(map[string]any)
	return v
}

func (m mapSource) GetStringMapString(key string) map[string]string {
	v, _ := m[key].(map[string]string)
	return v
}

func TestResolveMergesOverrides(t *testing.T) {
	source := mapSource{
		"modalities.mail.interval":   "1h",
		"modalities.mail.duration":   6.0,
		"modalities.mail.key":        "false",
		"modalities.mail.style":      map[string]any{"osd-color": "#FF0000", "osd-align-x": "center"},
		"modalities.mail.params":     map[string]string{"user": "me:secret"},
		"modalities.clock.interval":  "",
		"modalities.weather.show_at": "30m",
	}

	resolved := Resolve(Defaults(), source)
	byName := map[string]modality.Config{}
	for _, cfg := range resolved {
		byName[cfg.Name] = cfg
	}

	mail := byName[MailName]
	assert.Equal(t, "1h", mail.Interval)
	assert.Equal(t, "58m", mail.ShowAt)
	assert.Equal(t, 6.0, mail.Duration)
	assert.False(t, mail.HasTriggerKey())
	assert.Equal(t, "me:secret", mail.Params["user"])
	assert.Equal(t, `UNSEEN (\d+)`, mail.Params["pattern"])
	assert.Equal(t, []modality.Override{
		{Property: "osd-align-x", Value: "center"},
		{Property: "osd-align-y", Value: "top"},
		{Property: "osd-color", Value: "#FF0000"},
	}, mail.Style)

	assert.False(t, byName[ClockName].Enabled())
	assert.Equal(t, "30m", byName[WeatherName].ShowAt)

	assert.Empty(t, defaultsOf(t, MailName).Params["user"])
}

func TestProducersCoverEveryName(t *testing.T) {
	producers := Producers(discard(), clock.NewSystemClock(), &scriptedRunner{}, nil)

	for _, name := range Names {
		assert.Contains(t, producers, name)
	}
}
