package gpltools

import (
	"github.com/opd-ai/gpltools/internal/render"
)

// Options configures a Converter.
type Options struct {
	// Title is the HTML document title.
	Title string

	// StrictHeader requires Name: and Columns: on lines 2 and 3 of every
	// palette.
	StrictHeader bool

	// SwatchDir enables raster swatches, one file per palette, in this
	// directory. Empty disables swatches.
	SwatchDir string

	// SwatchFormat is "png" or "bmp". Empty means png.
	SwatchFormat string

	// SwatchCell is the swatch cell size in pixels. Zero means the default.
	SwatchCell int

	// Logger receives progress messages. If nil, NopLogger() is used.
	Logger Logger

	// Metrics collects conversion counters. If nil, a private instance is
	// used; read it with Converter.Metrics.
	Metrics *Metrics
}

// DefaultOptions returns Options with default values.
func DefaultOptions() Options {
	return Options{
		Title:        render.DefaultTitle,
		SwatchFormat: render.SwatchPNG.String(),
		SwatchCell:   render.DefaultSwatchCell,
	}
}
