// Package config loads markerboard settings from defaults, an optional YAML
// file and MARKERBOARD_* environment variables, in that order of priority.
package config

import (
	"time"
)

// Config is the complete editor configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Sync    SyncConfig    `koanf:"sync"`
	Canvas  CanvasConfig  `koanf:"canvas"`
	Logging LoggingConfig `koanf:"logging"`
	Metrics MetricsConfig `koanf:"metrics"`
	Script  ScriptConfig  `koanf:"script"`
}

// ServerConfig locates the shared document.
type ServerConfig struct {
	// BaseURL is the scheme and host serving /listen and /update.
	BaseURL string `koanf:"base_url" validate:"required,url"`

	// PageKey names the document; it must match the server's key pattern.
	PageKey string `koanf:"page_key" validate:"pagekey"`

	// PushTimeout bounds each fire-and-forget update request.
	PushTimeout time.Duration `koanf:"push_timeout" validate:"gt=0"`
}

// SyncConfig tunes the long-poll loop and interpolation.
type SyncConfig struct {
	RetryDelay          time.Duration `koanf:"retry_delay" validate:"gt=0"`
	InterpolationWindow time.Duration `koanf:"interpolation_window" validate:"gt=0"`
}

// CanvasConfig sizes the window until a background image dictates otherwise.
type CanvasConfig struct {
	Width         int    `koanf:"width" validate:"gt=0,lte=8192"`
	Height        int    `koanf:"height" validate:"gt=0,lte=8192"`
	Title         string `koanf:"title"`
	FallbackColor string `koanf:"fallback_color" validate:"rgbhex"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `koanf:"addr" validate:"omitempty,hostname_port"`
}

// ScriptConfig points at an optional input script run at startup.
type ScriptConfig struct {
	Path          string `koanf:"path"`
	ScreenshotDir string `koanf:"screenshot_dir"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:     "http://localhost:4567",
			PageKey:     "",
			PushTimeout: 10 * time.Second,
		},
		Sync: SyncConfig{
			RetryDelay:          3 * time.Second,
			InterpolationWindow: 500 * time.Millisecond,
		},
		Canvas: CanvasConfig{
			Width:         800,
			Height:        600,
			Title:         "markerboard",
			FallbackColor: "#168820",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Script: ScriptConfig{
			ScreenshotDir: "screenshots",
		},
	}
}
