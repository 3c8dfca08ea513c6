package homedir

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "mpvtick"

// Get returns the directory mpvtick reads its configuration from.
func Get() (string, error) {
	if dir := os.Getenv("MPVTICK_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("homedir: could not resolve config dir. %w", err)
	}

	return filepath.Join(dir, appName), nil
}
