package main

import (
	"log/slog"
	"strings"
)

// Config is read from the environment (with .env support) following the
// usual 12-factor shape. The defaults describe a 4KB device image with
// 32-byte pages, the geometry of the EEPROM the firmware targets.
type Config struct {
	ImagePath string `env:"QUADKEY_IMAGE" envDefault:"quadkey.img"`
	PageSize  int    `env:"QUADKEY_PAGE_SIZE" envDefault:"32"`
	PageCount int    `env:"QUADKEY_PAGE_COUNT" envDefault:"128"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
}

func (c Config) slogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
