package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"editon/diagram"
)

type Config struct {
	SaveDirectory string `toml:"save_directory"`
	Confirmations bool   `toml:"confirmations"`

	diagram.Options

	PNGCellWidth  int     `toml:"png_cell_width"`
	PNGCellHeight int     `toml:"png_cell_height"`
	PNGFontSize   float64 `toml:"png_font_size"`

	LogFile string `toml:"log_file"`
}

func defaultConfig() *Config {
	return &Config{
		Confirmations: true,
		Options:       diagram.DefaultOptions(),
		PNGCellWidth:  8,
		PNGCellHeight: 16,
		PNGFontSize:   12,
	}
}

// defaultConfigPath returns ~/.config/editon/config.toml, honouring
// XDG_CONFIG_HOME.
func defaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "editon", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "editon", "config.toml")
}

// loadConfig reads the TOML file at path over the defaults. An empty path
// means the default location; a missing file there is not an error.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return config, nil
		}
	}

	md, err := toml.DecodeFile(path, config)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}

	if config.HSpacing < 0 || config.VSpacing < 0 {
		return nil, fmt.Errorf("config %s: spacing must not be negative", path)
	}
	if config.PNGCellWidth <= 0 || config.PNGCellHeight <= 0 || config.PNGFontSize <= 0 {
		return nil, fmt.Errorf("config %s: png sizes must be positive", path)
	}
	if config.SaveDirectory != "" {
		dir := expandHome(config.SaveDirectory)
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		config.SaveDirectory = dir
	}
	return config, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// GetSavePath places a bare filename in the save directory. Paths with a
// directory part are used as given.
func (c *Config) GetSavePath(filename string) (string, error) {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) || filepath.Dir(filename) != "." {
		return filename, nil
	}
	if err := os.MkdirAll(c.SaveDirectory, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(c.SaveDirectory, filename), nil
}
