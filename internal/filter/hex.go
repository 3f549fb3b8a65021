// Package filter implements the stdin-to-stdout text filters: rewriting
// hex colour literals as decimal triples and sorting palette entries by hue.
package filter

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/opd-ai/gpltools/internal/gpl"
)

// hexLiteralPattern matches '#' followed by 6 or 3 hex digits. The 6-digit
// alternative is tried first, so "#abcdef" is never read as "#abc".
var hexLiteralPattern = regexp.MustCompile(`#([0-9a-fA-F]{6}|[0-9a-fA-F]{3})`)

// RewriteHexLine replaces every hex colour literal in line with its
// space-separated decimal components. Other text is left untouched.
func RewriteHexLine(line string) string {
	return hexLiteralPattern.ReplaceAllStringFunc(line, func(match string) string {
		c := gpl.MustParseColor(match)
		return strconv.Itoa(c.R()) + " " + strconv.Itoa(c.G()) + " " + strconv.Itoa(c.B())
	})
}

// RewriteHex copies r to w, applying RewriteHexLine to each line.
// Line terminators are preserved as read.
func RewriteHex(r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)

	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			if _, werr := bw.WriteString(RewriteHexLine(line)); werr != nil {
				return fmt.Errorf("failed to write output: %w", werr)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
