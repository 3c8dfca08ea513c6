package setup

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/lucax88x/mpvtick/cmd/cli/console"
	"github.com/spf13/viper"
)

type ExecutionResult = int

const (
	Ok    ExecutionResult = 0
	NotOk ExecutionResult = -1
)

func initViper() (*viper.Viper, error) {
	viperInstance := viper.New()

	return viperInstance, nil
}

type ProgramExecutor func(ctx context.Context, logger *slog.Logger) error

// ExecutorBuilder builds the program. level starts at info and is raised or
// lowered once the configuration is known.
type ExecutorBuilder func(
	viper *viper.Viper,
	console *console.Console,
	level *slog.LevelVar,
) ProgramExecutor

func Run(buildExecutor ExecutorBuilder) ExecutionResult {
	start := time.Now()

	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)

	logger := slog.New(tint.NewHandler(
		os.Stderr,
		&tint.Options{Level: level, TimeFormat: time.TimeOnly},
	))

	defer func() {
		elapsed := time.Since(start)
		logger.Debug("cli: took", slog.Duration("elapsed", elapsed))
	}()

	viper, err := initViper()

	if err != nil {
		logger.Error("main: could not setup configuration", slog.Any("error", err))
		return NotOk
	}

	console := &console.Console{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = buildExecutor(viper, console, level)(ctx, logger)

	if err != nil {
		logger.Error("main: failed to execute program", slog.Any("error", err))
		return NotOk
	}

	logger.Debug("main: completed", slog.Int("status_code", Ok))

	return Ok
}
