// Package config provides configuration data structures for gpltools.
// A configuration may come from a simple "key value" rc file or from a Lua
// file that assigns the gpl2html.config table; command-line flags override
// whatever the file sets.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Config represents the complete gpl2html configuration.
type Config struct {
	// Output contains document output settings.
	Output OutputConfig
	// Parse contains palette parsing settings.
	Parse ParseConfig
	// Swatch contains raster swatch export settings.
	Swatch SwatchConfig
	// Watch contains file watching settings.
	Watch WatchConfig
	// Log contains logging settings.
	Log LogConfig
}

// OutputConfig holds HTML document output settings.
type OutputConfig struct {
	// Path is the destination file. Empty or "-" means standard output.
	Path string
	// Title is the HTML document title.
	Title string
}

// ToStdout reports whether the document goes to standard output.
func (o OutputConfig) ToStdout() bool {
	return o.Path == "" || o.Path == "-"
}

// ParseConfig holds palette parser settings.
type ParseConfig struct {
	// StrictHeader requires Name: and Columns: on lines 2 and 3.
	StrictHeader bool
}

// SwatchConfig holds raster swatch settings.
type SwatchConfig struct {
	// Dir is the directory swatches are written to. Empty disables swatches.
	Dir string
	// Format is "png" or "bmp".
	Format string
	// Cell is the side length of one colour cell in pixels.
	Cell int
}

// Enabled reports whether swatches should be written.
func (s SwatchConfig) Enabled() bool {
	return s.Dir != ""
}

// WatchConfig holds watch mode settings.
type WatchConfig struct {
	// Enabled regenerates output whenever an input palette changes.
	Enabled bool
	// Debounce is how long to wait for further changes before regenerating.
	Debounce time.Duration
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string
	// Format is "text" or "json".
	Format string
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", s)
	}
}
