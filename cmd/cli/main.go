package main

import (
	"log/slog"
	"os"

	"github.com/lucax88x/mpvtick/cmd/cli/console"
	"github.com/lucax88x/mpvtick/internal/setup"
	"github.com/spf13/viper"
)

func cli(viper *viper.Viper, console *console.Console, level *slog.LevelVar) setup.ProgramExecutor {
	return setup.NewCliExecutor(viper, console, level)
}

func main() {
	result := setup.Run(cli)

	if result == setup.NotOk {
		os.Exit(1)
	}
}
