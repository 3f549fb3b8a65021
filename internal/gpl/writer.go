package gpl

import (
	"bufio"
	"fmt"
	"io"
)

// WriteGPL serializes the palette in .gpl format. Parsing the output
// yields a palette with the same name, columns, comments and entries.
func (p *Palette) WriteGPL(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, Header)
	fmt.Fprintf(bw, "Name: %s\n", p.Name)
	fmt.Fprintf(bw, "Columns: %d\n", p.Columns)
	for _, comment := range p.Comments {
		fmt.Fprintf(bw, "# %s\n", comment)
	}
	for _, nc := range p.Colors {
		fmt.Fprintf(bw, "%s\t%s\n", nc.GPL(), nc.Name)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write palette: %w", err)
	}
	return nil
}
