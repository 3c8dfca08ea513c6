package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lucax88x/mpvtick/cmd/cli/config"
	"github.com/lucax88x/mpvtick/cmd/cli/console"
	"github.com/lucax88x/mpvtick/internal/mpvtick"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// ConfigFlag is the persistent flag, bound into viper, naming the config file.
const ConfigFlag = "config"

type RunE func(
	ctx context.Context,
	console *console.Console,
	args []string,
	di *mpvtick.Mpvtick,
) error

// RunCmdE loads the configuration, applies its log level and hands a ready
// container to run.
func RunCmdE(
	ctx context.Context,
	logger *slog.Logger,
	level *slog.LevelVar,
	viper *viper.Viper,
	fs afero.Fs,
	console *console.Console,
	args []string,
	run RunE,
) error {
	cfg, err := config.Load(viper, fs, viper.GetString(ConfigFlag))
	if err != nil {
		return fmt.Errorf("runner: could not load configuration. %w", err)
	}

	level.Set(cfg.Level())

	logger.DebugContext(ctx, "runner: configuration loaded", slog.String("file", viper.ConfigFileUsed()))

	return run(ctx, console, args, mpvtick.NewMpvtick(logger, cfg, fs))
}
