package command

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/lucax88x/mpvtick/internal/encoding"
)

// Runner executes external programs. Handlers depend on this rather than on
// *Command so tests can script the output.
type Runner interface {
	Run(ctx context.Context, name string, arg ...string) (string, error)
	Combined(ctx context.Context, name string, arg ...string) (string, error)
}

type Command struct {
	logger *slog.Logger
}

func NewCommand(logger *slog.Logger) *Command {
	return &Command{
		logger,
	}
}

// Run returns the decoded standard output of the program.
func (c Command) Run(ctx context.Context, name string, arg ...string) (string, error) {
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		c.logger.DebugContext(ctx, "command: took", slog.String("name", name), slog.Duration("elapsed", elapsed))
	}()

	cmd := exec.CommandContext(ctx, name, arg...)

	out, err := cmd.Output()

	if err != nil {
		//nolint:errorlint // no wrap
		return "", fmt.Errorf("could not run command '%s'. %v", name, err)
	}

	return encoding.DecodeCommandOutput(out)
}

// Combined returns stdout and stderr interleaved, even when the program
// fails, so callers can show what went wrong.
func (c Command) Combined(ctx context.Context, name string, arg ...string) (string, error) {
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		c.logger.DebugContext(ctx, "command: took", slog.String("name", name), slog.Duration("elapsed", elapsed))
	}()

	cmd := exec.CommandContext(ctx, name, arg...)

	out, runErr := cmd.CombinedOutput()

	decoded, err := encoding.DecodeCommandOutput(out)
	if err != nil {
		return "", fmt.Errorf("could not decode output of '%s'. %w", name, err)
	}

	if runErr != nil {
		return decoded, fmt.Errorf("could not run command '%s'. %w", name, runErr)
	}

	return decoded, nil
}

var _ Runner = (*Command)(nil)
