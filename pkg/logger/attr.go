// Package logger provides slog attribute helpers shared by the session
// controller and the management tools.
//
// Helpers return an empty Attr for zero inputs, so call sites never need nil
// checks: log.Info("msg", logger.Error(err)) is safe with err == nil.
//
// Nothing in this package ever formats secret bytes or derived codes; slots
// are identified by index and label only.
package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// Returns an empty Attr for nil errors.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Slot identifies an account slot (1..4) under the key "slot".
func Slot(slot int) slog.Attr {
	return slog.Int("slot", slot)
}

// Key identifies a physical key index under the key "key".
func Key(key int) slog.Attr {
	return slog.Int("key", key)
}

// Component names the emitting component under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// State names a session controller state under the key "state".
func State(name string) slog.Attr {
	return slog.String("state", name)
}

// Duration creates an attribute for an elapsed time under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
