package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/lucax88x/mpvtick/cmd/cli/config/items"
	"github.com/lucax88x/mpvtick/cmd/cli/config/settings"
	"github.com/lucax88x/mpvtick/internal/homedir"
	"github.com/lucax88x/mpvtick/internal/modality"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

type Cfg struct {
	Socket     string            `yaml:"socket"`
	Fifo       string            `yaml:"fifo"`
	PidFile    string            `yaml:"pid_file"`
	LogLevel   string            `yaml:"log_level"`
	Modalities []modality.Config `yaml:"modalities"`
}

// Load reads path (or config.yaml in the config dir when path is empty)
// through fs, applies MPVTICK_ environment overrides and resolves every
// modality against its defaults. A missing default file is not an error.
func Load(v *viper.Viper, fsys afero.Fs, path string) (*Cfg, error) {
	explicit := path != ""

	if !explicit {
		dir, err := homedir.Get()
		if err != nil {
			//nolint:errorlint // no wrap
			return nil, fmt.Errorf("config: error getting home dir. %v", err)
		}
		path = filepath.Join(dir, settings.ConfigFileName)
	}

	v.SetFs(fsys)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(settings.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("socket", settings.SocketPath)
	v.SetDefault("fifo", settings.FifoPath)
	v.SetDefault("pid_file", settings.PidFilePath)
	v.SetDefault("log_level", settings.LogLevel)

	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			//nolint:errorlint // no wrap
			return nil, fmt.Errorf("config: could not read %s. %v", path, err)
		}
	}

	return &Cfg{
		Socket:     v.GetString("socket"),
		Fifo:       v.GetString("fifo"),
		PidFile:    v.GetString("pid_file"),
		LogLevel:   v.GetString("log_level"),
		Modalities: items.Resolve(items.Defaults(), v),
	}, nil
}

func (c *Cfg) Modality(name string) (modality.Config, bool) {
	for _, m := range c.Modalities {
		if m.Name == name {
			return m, true
		}
	}
	return modality.Config{}, false
}

// Level maps log_level onto slog, defaulting to info.
func (c *Cfg) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Yaml renders the resolved configuration.
func (c *Cfg) Yaml() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("config: could not marshal cfg. %w", err)
	}
	return string(out), nil
}
