package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// File locations relative to the XDG config directory
const (
	AppDirName          = "ytdlp-gui"
	ConfigFileName      = "config.toml"
	PreferencesFileName = "preferences.toml"
)

// EnvPrefix is the prefix of environment overrides, e.g. YTDLP_GUI_WEB_ADDR
const EnvPrefix = "YTDLP_GUI_"

// Defaults
const (
	DefaultOutputTemplate   = "%(title)s.%(ext)s"
	DefaultMaxOutputLines   = 3
	DefaultFetchDebounce    = 500 * time.Millisecond
	DefaultClearOutputAfter = 2 * time.Second
	DefaultWebAddr          = "127.0.0.1:8080"
	DefaultReleasesURL      = "https://api.github.com/repos/yt-dlp/yt-dlp/releases/latest"
	DefaultUpdaterTimeout   = 60 * time.Second
)

// Config is the process configuration
type Config struct {
	Ytdlp   YtdlpConfig   `koanf:"ytdlp"`
	UI      UIConfig      `koanf:"ui"`
	Web     WebConfig     `koanf:"web"`
	Updater UpdaterConfig `koanf:"updater"`
}

// YtdlpConfig controls how the yt-dlp executable is located and invoked
type YtdlpConfig struct {
	Path           string `koanf:"path"`
	ResourcesDir   string `koanf:"resources_dir"`
	OutputTemplate string `koanf:"output_template"`
}

// UIConfig holds presentation settings shared by the shells
type UIConfig struct {
	MaxOutputLines   int           `koanf:"max_output_lines"`
	FetchDebounce    time.Duration `koanf:"fetch_debounce"`
	ClearOutputAfter time.Duration `koanf:"clear_output_after"`
}

// WebConfig holds settings of the HTTP shell
type WebConfig struct {
	Addr string `koanf:"addr"`
}

// UpdaterConfig holds settings of the yt-dlp updater
type UpdaterConfig struct {
	ReleasesURL string        `koanf:"releases_url"`
	Timeout     time.Duration `koanf:"timeout"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"ytdlp.path":            "",
		"ytdlp.resources_dir":   "",
		"ytdlp.output_template": DefaultOutputTemplate,
		"ui.max_output_lines":   DefaultMaxOutputLines,
		"ui.fetch_debounce":     DefaultFetchDebounce.String(),
		"ui.clear_output_after": DefaultClearOutputAfter.String(),
		"web.addr":              DefaultWebAddr,
		"updater.releases_url":  DefaultReleasesURL,
		"updater.timeout":       DefaultUpdaterTimeout.String(),
	}
}

// DefaultPath returns the config file path under the XDG config directory
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppDirName, ConfigFileName)
}

// Load builds the configuration from defaults, the TOML file and the environment.
// An empty path means DefaultPath, which may be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.UI.MaxOutputLines < 1 {
		return fmt.Errorf("ui.max_output_lines must be positive, got %d", c.UI.MaxOutputLines)
	}
	if c.UI.FetchDebounce < 0 || c.UI.ClearOutputAfter < 0 {
		return fmt.Errorf("ui durations must not be negative")
	}
	if c.Ytdlp.OutputTemplate == "" {
		return fmt.Errorf("ytdlp.output_template must not be empty")
	}
	if c.Web.Addr == "" {
		return fmt.Errorf("web.addr must not be empty")
	}
	return nil
}

// envKey maps YTDLP_GUI_UI_MAX_OUTPUT_LINES to ui.max_output_lines
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
}
