package config

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	dnerrors "github.com/nicobailon/dropnav/internal/errors"
)

const (
	defaultItemSize         = 1
	defaultContainerSize    = 10
	defaultVirtualThreshold = 500
	defaultKeymap           = "default"
	defaultLogLevel         = "info"
)

var keymaps = map[string]bool{"default": true, "vim": true, "emacs": true}

type Config struct {
	AllowItemsFocus  bool          `mapstructure:"allow_items_focus"`
	FocusOnOpen      bool          `mapstructure:"focus_on_open"`
	ItemSize         int           `mapstructure:"item_size"`
	ContainerSize    int           `mapstructure:"container_size"`
	VirtualThreshold int           `mapstructure:"virtual_threshold"`
	ChunkDelay       time.Duration `mapstructure:"chunk_delay"`
	Keymap           string        `mapstructure:"keymap"`
	LogLevel         string        `mapstructure:"log_level"`
	LogFile          string        `mapstructure:"log_file"`
	LogJSON          bool          `mapstructure:"log_json"`
}

func defaultConfig() *Config {
	return &Config{
		FocusOnOpen:      true,
		ItemSize:         defaultItemSize,
		ContainerSize:    defaultContainerSize,
		VirtualThreshold: defaultVirtualThreshold,
		Keymap:           defaultKeymap,
		LogLevel:         defaultLogLevel,
	}
}

// Dir is the directory holding config.yaml and the history file.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dropnav")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "dropnav")
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "dropnav"))
	v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "dropnav"))
	v.SetConfigType("yaml")
	v.SetEnvPrefix("DROPNAV")
	v.AutomaticEnv()

	v.SetDefault("allow_items_focus", false)
	v.SetDefault("focus_on_open", true)
	v.SetDefault("item_size", defaultItemSize)
	v.SetDefault("container_size", defaultContainerSize)
	v.SetDefault("virtual_threshold", defaultVirtualThreshold)
	v.SetDefault("chunk_delay", "0s")
	v.SetDefault("keymap", defaultKeymap)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("log_file", "")
	v.SetDefault("log_json", false)

	if err := v.ReadInConfig(); err != nil {
		// fallback to TOML if yaml missing
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			// legacy shell config
			if legacyCfg, err := loadLegacy(); err == nil && legacyCfg != nil {
				if err := legacyCfg.Validate(); err != nil {
					return nil, err
				}
				return legacyCfg, nil
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, dnerrors.Wrap(err, dnerrors.ErrCodeConfigInvalid, "failed to decode configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the drop-down cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.ItemSize < 1:
		return dnerrors.ConfigInvalid("item_size must be at least 1")
	case c.ContainerSize < c.ItemSize:
		return dnerrors.ConfigInvalid("container_size must not be smaller than item_size")
	case c.VirtualThreshold < 0:
		return dnerrors.ConfigInvalid("virtual_threshold must not be negative")
	case c.ChunkDelay < 0:
		return dnerrors.ConfigInvalid("chunk_delay must not be negative")
	case !keymaps[c.Keymap]:
		return dnerrors.ConfigInvalid("unknown keymap").WithDetail("keymap", c.Keymap)
	}
	return nil
}

// loadLegacy reads ~/.config/dropnav/config, a shell file of
// DROPNAV_* assignments.
func loadLegacy() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(home, ".config", "dropnav", "config")
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := defaultConfig()
	found := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "export ") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := parts[0]
		val := strings.Trim(parts[1], "\"'")
		switch key {
		case "DROPNAV_KEYMAP":
			cfg.Keymap = val
		case "DROPNAV_CONTAINER_SIZE":
			cfg.ContainerSize = cast.ToInt(val)
		case "DROPNAV_FOCUS_ON_OPEN":
			cfg.FocusOnOpen = cast.ToBool(val)
		default:
			continue
		}
		found = true
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New("no legacy keys")
	}
	return cfg, nil
}
