package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/opd-ai/gpltools/internal/gpl"
)

// DefaultSwatchCell is the side length, in pixels, of one swatch cell.
const DefaultSwatchCell = 8

// SwatchFormat selects the raster encoding for swatches.
type SwatchFormat int

const (
	// SwatchPNG encodes swatches as PNG.
	SwatchPNG SwatchFormat = iota
	// SwatchBMP encodes swatches as BMP.
	SwatchBMP
)

// String returns the format's file extension without the dot.
func (f SwatchFormat) String() string {
	switch f {
	case SwatchPNG:
		return "png"
	case SwatchBMP:
		return "bmp"
	default:
		return "unknown"
	}
}

// ParseSwatchFormat parses "png" or "bmp", case-insensitively.
func ParseSwatchFormat(s string) (SwatchFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png", "":
		return SwatchPNG, nil
	case "bmp":
		return SwatchBMP, nil
	default:
		return SwatchPNG, fmt.Errorf("unknown swatch format: %s", s)
	}
}

// SwatchRenderer draws a palette as a grid of solid cells, laid out with
// the same column count as the HTML table. Unused cells in the last row
// are transparent.
type SwatchRenderer struct {
	cell int
}

// NewSwatchRenderer creates a SwatchRenderer. A non-positive cell size
// selects DefaultSwatchCell.
func NewSwatchRenderer(cell int) *SwatchRenderer {
	if cell <= 0 {
		cell = DefaultSwatchCell
	}
	return &SwatchRenderer{cell: cell}
}

// Cell returns the cell size in pixels.
func (s *SwatchRenderer) Cell() int {
	return s.cell
}

// Render returns the swatch image. An empty palette yields an empty image.
func (s *SwatchRenderer) Render(p *gpl.Palette) *image.RGBA {
	grid := p.Grid()
	if len(grid) == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}

	cols := len(grid[0])
	small := image.NewRGBA(image.Rect(0, 0, cols, len(grid)))
	for y, row := range grid {
		for x, nc := range row {
			small.Set(x, y, nc.Color)
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, cols*s.cell, len(grid)*s.cell))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), small, small.Bounds(), draw.Src, nil)
	return dst
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format SwatchFormat) error {
	var err error
	switch format {
	case SwatchPNG:
		err = png.Encode(w, img)
	case SwatchBMP:
		err = bmp.Encode(w, img)
	default:
		return fmt.Errorf("unknown swatch format: %d", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s swatch: %w", format, err)
	}
	return nil
}
