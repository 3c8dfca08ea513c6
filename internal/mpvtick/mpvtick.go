package mpvtick

import (
	"log/slog"

	"github.com/lucax88x/mpvtick/cmd/cli/config"
	"github.com/lucax88x/mpvtick/cmd/cli/config/items"
	"github.com/lucax88x/mpvtick/internal/clock"
	"github.com/lucax88x/mpvtick/internal/command"
	"github.com/lucax88x/mpvtick/internal/fifo"
	"github.com/lucax88x/mpvtick/internal/modality"
	"github.com/spf13/afero"
)

// Mpvtick holds the process wide dependencies every command shares.
type Mpvtick struct {
	Logger    *slog.Logger
	Cfg       *config.Cfg
	Fs        afero.Fs
	Clock     clock.Clock
	Command   *command.Command
	Fifo      *fifo.Reader
	Producers map[string]modality.Producer
}

func NewMpvtick(
	logger *slog.Logger,
	cfg *config.Cfg,
	fs afero.Fs,
) *Mpvtick {
	clock := clock.NewSystemClock()
	command := command.NewCommand(logger)

	return &Mpvtick{
		Logger:    logger,
		Cfg:       cfg,
		Fs:        fs,
		Clock:     clock,
		Command:   command,
		Fifo:      fifo.NewFifoReader(logger),
		Producers: items.Producers(logger, clock, command, nil),
	}
}
