package gpl

import "fmt"

// DefaultColumns is the grid width used when a palette does not set Columns.
const DefaultColumns = 16

// UntitledName is the name given to entries that have no name field.
const UntitledName = "Untitled"

// Palette is a parsed GIMP palette.
type Palette struct {
	// Name is the display name; defaults to the base filename.
	Name string
	// Filename is the source path, empty if not file-backed.
	Filename string
	// Columns is the preferred grid width. Zero means unset.
	Columns int
	// Comments holds comment lines without the leading '#'.
	Comments []string
	// Colors holds the entries in file order. Duplicates are allowed.
	Colors []NamedColor
}

// UniqueCount returns the number of distinct colour values, ignoring names.
func (p *Palette) UniqueCount() int {
	seen := make(map[Color]struct{}, len(p.Colors))
	for _, nc := range p.Colors {
		seen[nc.Color] = struct{}{}
	}
	return len(seen)
}

// LayoutColumns returns Columns, or DefaultColumns when Columns is unset.
func (p *Palette) LayoutColumns() int {
	if p.Columns <= 0 {
		return DefaultColumns
	}
	return p.Columns
}

// Rows returns the number of grid rows needed for all colours.
func (p *Palette) Rows() int {
	cols := p.LayoutColumns()
	n := len(p.Colors)
	rows := n / cols
	if n%cols != 0 {
		rows++
	}
	return rows
}

// Grid splits the colours into rows of LayoutColumns entries.
// The last row may be shorter.
func (p *Palette) Grid() [][]NamedColor {
	cols := p.LayoutColumns()
	rows := make([][]NamedColor, 0, p.Rows())
	for rest := p.Colors; len(rest) > 0; {
		n := min(cols, len(rest))
		rows = append(rows, rest[:n])
		rest = rest[n:]
	}
	return rows
}

// String returns a short description.
func (p *Palette) String() string {
	return fmt.Sprintf("GimpPalette %s", p.Name)
}

// GoString summarizes the palette for debugging.
func (p *Palette) GoString() string {
	return fmt.Sprintf("<GimpPalette %q, %d colors over %d columns, %d comments, loaded from %q>",
		p.Name, len(p.Colors), p.Columns, len(p.Comments), p.Filename)
}
