// Package timing turns human friendly interval specs into second counts and
// computes how long to wait before a modality first shows up.
package timing

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SecondsPerHour is the period target offsets are relative to.
const SecondsPerHour = 3600

//nolint:gochecknoglobals // ok
var units = map[string]int{
	"h": 3600,
	"m": 60,
	"s": 1,
}

//nolint:gochecknoglobals // ok
var unitPatterns = map[string]*regexp.Regexp{
	"h": regexp.MustCompile(`(\d+)h`),
	"m": regexp.MustCompile(`(\d+)m`),
	"s": regexp.MustCompile(`(\d+)s`),
}

//nolint:gochecknoglobals // ok
var numeric = regexp.MustCompile(`^\d+$`)

// Parse reads "1h 33m 5s" style specs, or a plain number of seconds.
// Units that are missing contribute nothing, so unparseable text yields 0.
func Parse(spec string) int {
	spec = strings.TrimSpace(spec)

	if numeric.MatchString(spec) {
		seconds, err := strconv.Atoi(spec)
		if err != nil {
			return 0
		}
		return seconds
	}

	total := 0
	for unit, pattern := range unitPatterns {
		match := pattern.FindStringSubmatch(spec)
		if match == nil {
			continue
		}

		value, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}

		total += value * units[unit]
	}

	return total
}

// Seconds converts a second count into a time.Duration.
func Seconds(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

// AlignedDelay returns the seconds until now lands on the next multiple of
// interval. interval must be positive.
func AlignedDelay(interval int, now int64) int {
	step := int64(interval)
	next := step * ((now + step - 1) / step)

	return int(next - now)
}

// DelayUntil returns the seconds until the clock reaches target seconds past
// the hour, wrapping into the next hour when that moment already passed.
func DelayUntil(target int, now int64) int {
	current := int(now % SecondsPerHour)

	delay := target - current
	if delay < 0 {
		delay += SecondsPerHour
	}

	return delay
}
