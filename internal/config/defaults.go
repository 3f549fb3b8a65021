package config

import "time"

// Default values for configuration options.
const (
	// DefaultTitle is the default HTML document title.
	DefaultTitle = "GIMP palettes"
	// DefaultSwatchFormat is the default swatch encoding.
	DefaultSwatchFormat = "png"
	// DefaultSwatchCell is the default swatch cell size in pixels.
	DefaultSwatchCell = 8
	// DefaultWatchDebounce is the default delay before regenerating output.
	DefaultWatchDebounce = 500 * time.Millisecond
	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"
	// DefaultLogFormat is the default log format.
	DefaultLogFormat = "text"
)

// DefaultConfig returns a Config with default values: HTML to standard
// output, lenient parsing, no swatches, no watching.
func DefaultConfig() Config {
	return Config{
		Output: OutputConfig{
			Path:  "",
			Title: DefaultTitle,
		},
		Parse: ParseConfig{
			StrictHeader: false,
		},
		Swatch: SwatchConfig{
			Dir:    "",
			Format: DefaultSwatchFormat,
			Cell:   DefaultSwatchCell,
		},
		Watch: WatchConfig{
			Enabled:  false,
			Debounce: DefaultWatchDebounce,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
