package settings

import (
	"os"
	"path/filepath"
	"runtime"
)

const ConfigFileName = "config.yaml"

const EnvPrefix = "mpvtick"

//nolint:gochecknoglobals // ok
var (
	FifoPath    = filepath.Join(os.TempDir(), "mpvtick.fifo")
	PidFilePath = filepath.Join(os.TempDir(), "mpvtick.pid")
	SocketPath  = defaultSocketPath()
	LogLevel    = "info"
)

// defaultSocketPath is where mpv listens when started with
// --input-ipc-server=/tmp/mpvsocket (or \\.\pipe\mpvsocket on windows).
func defaultSocketPath() string {
	if runtime.GOOS == "windows" {
		return `\\.\pipe\mpvsocket`
	}
	return "/tmp/mpvsocket"
}

// TimeFormat is how instants are printed to the console.
const TimeFormat = "15:04:05"
