package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version string       `yaml:"version" json:"version"`
	Source  SourceConfig `yaml:"source" json:"source" envPrefix:"SOURCE_"`
	UI      UIConfig     `yaml:"ui" json:"ui" envPrefix:"UI_"`
	Server  ServerConfig `yaml:"server" json:"server" envPrefix:"SERVER_"`
	Log     LogConfig    `yaml:"log" json:"log" envPrefix:"LOG_"`
}

// SourceConfig configures where the analytics payload comes from
type SourceConfig struct {
	Endpoint string        `yaml:"endpoint" json:"endpoint" env:"ENDPOINT"` // producer URL
	File     string        `yaml:"file" json:"file" env:"FILE"`             // local JSON export, wins over endpoint
	Timeout  time.Duration `yaml:"timeout" json:"timeout" env:"TIMEOUT"`    // per-request timeout
	Watch    bool          `yaml:"watch" json:"watch" env:"WATCH"`          // reload when the export changes
}

// UIConfig configures the story viewer
type UIConfig struct {
	Theme       string        `yaml:"theme" json:"theme" env:"THEME"`                      // default|high-contrast|minimal
	SkipLanding bool          `yaml:"skip_landing" json:"skip_landing" env:"SKIP_LANDING"` // open the story directly
	ColorMode   string        `yaml:"color_mode" json:"color_mode" env:"COLOR_MODE"`       // auto|always|never
	Emoji       bool          `yaml:"emoji" json:"emoji" env:"EMOJI"`
	FrameWindow time.Duration `yaml:"frame_window" json:"frame_window" env:"FRAME_WINDOW"` // double-trigger guard, 0 selects 16ms
}

// ServerConfig configures the demo producer started by `instastory serve`
type ServerConfig struct {
	Addr         string        `yaml:"addr" json:"addr" env:"ADDR"`
	PayloadFile  string        `yaml:"payload_file" json:"payload_file" env:"PAYLOAD_FILE"`
	ReadTimeout  time.Duration `yaml:"read_timeout" json:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" json:"write_timeout" env:"WRITE_TIMEOUT"`
}

// LogConfig configures diagnostics output
type LogConfig struct {
	File    string `yaml:"file" json:"file" env:"FILE"` // the viewer discards logs when empty
	Verbose bool   `yaml:"verbose" json:"verbose" env:"VERBOSE"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Source: SourceConfig{
			Endpoint: "http://localhost:8000/api/stats",
			Timeout:  30 * time.Second,
		},
		UI: UIConfig{
			Theme:       "default",
			ColorMode:   "auto",
			Emoji:       true,
			FrameWindow: 16 * time.Millisecond,
		},
		Server: ServerConfig{
			Addr:         "localhost:8000",
			PayloadFile:  "stats.json",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateSourceConfig(); err != nil {
		return err
	}
	if err := c.validateUIConfig(); err != nil {
		return err
	}
	if err := c.validateServerConfig(); err != nil {
		return err
	}
	return nil
}

// validateSourceConfig validates payload source configuration
func (c *Config) validateSourceConfig() error {
	if c.Source.Endpoint != "" {
		u, err := url.Parse(c.Source.Endpoint)
		if err != nil {
			return fmt.Errorf("invalid source endpoint: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("invalid source endpoint: %s (scheme must be http or https)", c.Source.Endpoint)
		}
	}
	if c.Source.Timeout <= 0 {
		return fmt.Errorf("source timeout must be greater than 0")
	}
	if c.Source.Watch && c.Source.File == "" {
		return fmt.Errorf("source watch requires a payload file")
	}
	return nil
}

// validateUIConfig validates viewer configuration
func (c *Config) validateUIConfig() error {
	if c.UI.Theme != "" {
		validThemes := map[string]bool{
			"default":       true,
			"high-contrast": true,
			"minimal":       true,
		}
		if !validThemes[c.UI.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.UI.Theme)
		}
	}
	if c.UI.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.UI.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.UI.ColorMode)
		}
	}
	if c.UI.FrameWindow < 0 || c.UI.FrameWindow > time.Second {
		return fmt.Errorf("frame_window must be between 0 and 1s, got %v", c.UI.FrameWindow)
	}
	return nil
}

// validateServerConfig validates demo server configuration
func (c *Config) validateServerConfig() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server addr must not be empty")
	}
	if c.Server.ReadTimeout < 0 {
		return fmt.Errorf("server read_timeout must be non-negative")
	}
	if c.Server.WriteTimeout < 0 {
		return fmt.Errorf("server write_timeout must be non-negative")
	}
	return nil
}
