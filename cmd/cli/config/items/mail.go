package items

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucax88x/mpvtick/internal/command"
	"github.com/lucax88x/mpvtick/internal/modality"
)

var errNoCount = errors.New("mail: no count in response")

type MailItem struct {
	logger *slog.Logger
	runner command.Runner
}

func NewMailItem(logger *slog.Logger, runner command.Runner) MailItem {
	return MailItem{logger, runner}
}

// Produce asks the mail server for a status line, pulls the count out with
// params.pattern and picks the positive, negative or zero template once
// params.cntofs has been subtracted.
func (i MailItem) Produce(ctx context.Context, cfg modality.Config) string {
	request := curlRequest{
		url:     cfg.Param("url"),
		user:    cfg.Param("user"),
		request: cfg.Param("request"),
	}

	response, err := request.combined(ctx, i.runner)
	if err != nil {
		i.logger.WarnContext(ctx, "mail: request failed", slog.Any("error", err))
	}

	count, err := extractCount(cfg.Param("pattern"), response)
	if err != nil {
		i.logger.WarnContext(ctx, "mail: could not extract count", slog.String("response", response), slog.Any("error", err))
		return fill(cfg.Param("error"), 0, response)
	}

	count -= cfg.IntParam("cntofs", 0)

	switch {
	case count > 0:
		return fill(cfg.Param("positive"), count, response)
	case count < 0:
		return fill(cfg.Param("negative"), count, response)
	default:
		return fill(cfg.Param("zero"), count, response)
	}
}

func extractCount(pattern string, response string) (int, error) {
	if strings.TrimSpace(response) == "" {
		return 0, errNoCount
	}

	re, err := regexp.Compile(translatePattern(pattern))
	if err != nil {
		return 0, err
	}

	match := re.FindStringSubmatch(response)
	if len(match) < 2 {
		return 0, errNoCount
	}

	return strconv.Atoi(match[1])
}

//nolint:gochecknoglobals // ok
var percentClasses = map[byte]string{
	'a': "alpha",
	'c': "cntrl",
	'd': "digit",
	'l': "lower",
	'p': "punct",
	's': "space",
	'u': "upper",
	'w': "alnum",
	'x': "xdigit",
}

// translatePattern rewrites percent classes (%d, %s, %a, ...) into their
// regexp equivalents, upper case negating them. Any other %c escapes c, so
// %% is a literal percent. Backslash escapes pass through untouched, which
// keeps plain regexps such as `UNSEEN (\d+)` working.
func translatePattern(pattern string) string {
	var out strings.Builder
	inSet := false

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]

		switch {
		case c == '\\' && i+1 < len(pattern):
			out.WriteByte(c)
			out.WriteByte(pattern[i+1])
			i++
		case c == '%' && i+1 < len(pattern):
			i++
			out.WriteString(percentClass(pattern[i], inSet))
		case c == '[' && !inSet:
			inSet = true
			out.WriteByte(c)
			// a leading ] or ^] belongs to the set
			if i+1 < len(pattern) && pattern[i+1] == '^' {
				out.WriteByte('^')
				i++
			}
			if i+1 < len(pattern) && pattern[i+1] == ']' {
				out.WriteByte(']')
				i++
			}
		case c == ']' && inSet:
			inSet = false
			out.WriteByte(c)
		default:
			out.WriteByte(c)
		}
	}

	return out.String()
}

func percentClass(c byte, inSet bool) string {
	name, ok := percentClasses[c|0x20]
	if !ok {
		return regexp.QuoteMeta(string([]byte{c}))
	}

	negated := c >= 'A' && c <= 'Z'

	switch {
	case inSet && negated:
		return "[:^" + name + ":]"
	case inSet:
		return "[:" + name + ":]"
	case negated:
		return "[^[:" + name + ":]]"
	default:
		return "[[:" + name + ":]]"
	}
}

func fill(template string, count int, response string) string {
	return strings.NewReplacer(
		"{count}", strconv.Itoa(count),
		"{response}", strings.TrimSpace(response),
	).Replace(template)
}

var _ modality.Producer = (*MailItem)(nil)
