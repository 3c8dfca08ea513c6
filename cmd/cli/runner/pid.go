package runner

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/afero"
)

// ErrAlreadyRunning means the pid file belongs to a live process.
type ErrAlreadyRunning struct {
	Pid int
}

func (e ErrAlreadyRunning) Error() string {
	return fmt.Sprintf("pidfile: process with pid %d already exists", e.Pid)
}

// CreatePidFile writes the current pid to path unless the pid already there
// is still alive. alive is nil in production, where the process is probed
// with signal 0.
func CreatePidFile(fs afero.Fs, path string, alive func(pid int) bool) error {
	if alive == nil {
		alive = processAlive
	}

	if pidBytes, err := afero.ReadFile(fs, path); err == nil {
		pid, err := strconv.Atoi(strings.TrimSpace(string(pidBytes)))
		if err != nil {
			return fmt.Errorf("pidfile: could not parse pid: %w", err)
		}

		if pid != os.Getpid() && alive(pid) {
			return ErrAlreadyRunning{Pid: pid}
		}
	}

	pid := os.Getpid()
	if err := afero.WriteFile(fs, path, []byte(strconv.Itoa(pid)), 0o644); err != nil {
		return fmt.Errorf("pidfile: could not write pid file: %w", err)
	}

	return nil
}

func RemovePidFile(fs afero.Fs, path string) error {
	if err := fs.Remove(path); err != nil {
		return fmt.Errorf("pidfile: could not remove pid file: %w", err)
	}
	return nil
}

func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		// FindProcess only fails off unix
		return false
	}

	// signal 0 checks existence without delivering anything
	return process.Signal(syscall.Signal(0)) == nil
}
