package config

import (
	"log/slog"
	"time"
)

// Defaults.
const (
	DefaultDigits   = 20
	DefaultRadix    = 10
	DefaultTimeout  = 30 * time.Second
	DefaultLogLevel = "warn"
)

// Config holds all creal settings.
type Config struct {
	// Digits is the number of digits printed after the radix point.
	Digits int `koanf:"digits" json:"digits"`

	// Radix is the output base, 2 to 16.
	Radix int `koanf:"radix" json:"radix"`

	// Timeout bounds a single evaluation. Zero disables it.
	Timeout time.Duration `koanf:"timeout" json:"timeout"`

	LogLevel string `koanf:"log_level" json:"log_level"`

	History HistoryConfig `koanf:"history" json:"history"`
}

// HistoryConfig controls the evaluation history database.
type HistoryConfig struct {
	Enabled bool   `koanf:"enabled" json:"enabled"`
	Path    string `koanf:"path" json:"path"`
}

// SlogLevel maps LogLevel to a slog level. Unknown names map to warn.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
