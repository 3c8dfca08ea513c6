package items

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lucax88x/mpvtick/internal/command"
	"github.com/lucax88x/mpvtick/internal/modality"
	"github.com/ncruces/go-strftime"
)

var (
	errNoCurrentCondition = errors.New("weather: response has no current condition")
	errNoForecast         = errors.New("weather: response has no forecast")
)

// wttr.in format=j1 document, limited to the fields shown.
type weatherReport struct {
	CurrentCondition []weatherCondition `json:"current_condition"`
	NearestArea      []weatherArea      `json:"nearest_area"`
	Weather          *[]weatherDay      `json:"weather"`
}

type weatherValue struct {
	Value string `json:"value"`
}

type weatherCondition struct {
	TempC       string         `json:"temp_C"`
	FeelsLikeC  string         `json:"FeelsLikeC"`
	WeatherDesc []weatherValue `json:"weatherDesc"`
}

type weatherArea struct {
	AreaName []weatherValue `json:"areaName"`
}

type weatherDay struct {
	Date     string          `json:"date"`
	MaxTempC string          `json:"maxtempC"`
	MinTempC string          `json:"mintempC"`
	Hourly   []weatherHourly `json:"hourly"`
}

type weatherHourly struct {
	Time        string         `json:"time"`
	WeatherDesc []weatherValue `json:"weatherDesc"`
}

type WeatherItem struct {
	logger *slog.Logger
	runner command.Runner
}

func NewWeatherItem(logger *slog.Logger, runner command.Runner) WeatherItem {
	return WeatherItem{logger, runner}
}

func (i WeatherItem) Produce(ctx context.Context, cfg modality.Config) string {
	location := cfg.Param("location")

	request := curlRequest{
		url: strings.ReplaceAll(cfg.ParamOr("url", "https://wttr.in/{location}"), "{location}", location),
		get: true,
		data: []curlData{
			{key: "format", value: "j1"},
			{key: "lang", value: cfg.ParamOr("lang", "en")},
		},
	}

	response, err := request.output(ctx, i.runner)
	if err != nil {
		i.logger.WarnContext(ctx, "weather: request failed", slog.Any("error", err))
		return fmt.Sprintf("Weather unavailable: %v", err)
	}

	if strings.TrimSpace(response) == "" {
		return "Weather unavailable: empty response"
	}

	report, err := decodeWeather(response)
	if err != nil {
		i.logger.WarnContext(ctx, "weather: could not decode response", slog.Any("error", err))
		return fmt.Sprintf("Weather unreadable: %v", err)
	}

	return formatWeather(report, cfg, location)
}

func decodeWeather(response string) (*weatherReport, error) {
	var report weatherReport

	if err := json.Unmarshal([]byte(response), &report); err != nil {
		return nil, fmt.Errorf("weather: invalid json. %w", err)
	}

	if len(report.CurrentCondition) == 0 {
		return nil, errNoCurrentCondition
	}

	if report.Weather == nil {
		return nil, errNoForecast
	}

	return &report, nil
}

func formatWeather(report *weatherReport, cfg modality.Config, location string) string {
	current := report.CurrentCondition[0]

	area := location
	if len(report.NearestArea) > 0 && len(report.NearestArea[0].AreaName) > 0 {
		area = report.NearestArea[0].AreaName[0].Value
	}
	if area == "" {
		area = "Weather"
	}

	header := fmt.Sprintf("%s: %s, %s°C", area, firstValue(current.WeatherDesc), current.TempC)
	if current.FeelsLikeC != "" && current.FeelsLikeC != current.TempC {
		header += fmt.Sprintf(" (feels %s°C)", current.FeelsLikeC)
	}

	lines := []string{header}

	days := cfg.IntParam("days", 3)
	dayFormat := cfg.ParamOr("day_format", "%a %d")

	for n, day := range *report.Weather {
		if n >= days {
			break
		}

		label := day.Date
		if date, err := time.Parse(time.DateOnly, day.Date); err == nil {
			label = strftime.Format(dayFormat, date)
		}

		line := fmt.Sprintf("%s: %s–%s°C %s", label, day.MinTempC, day.MaxTempC, middayDescription(day))
		lines = append(lines, strings.TrimSpace(line))
	}

	return strings.Join(lines, "\n")
}

// middayDescription prefers the noon sample, which describes the day better
// than the first (midnight) one.
func middayDescription(day weatherDay) string {
	for _, hour := range day.Hourly {
		if hour.Time == "1200" {
			return firstValue(hour.WeatherDesc)
		}
	}

	if len(day.Hourly) > 0 {
		return firstValue(day.Hourly[len(day.Hourly)/2].WeatherDesc)
	}

	return ""
}

func firstValue(values []weatherValue) string {
	if len(values) == 0 {
		return "?"
	}
	return strings.TrimSpace(values[0].Value)
}

var _ modality.Producer = (*WeatherItem)(nil)
