package filter

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"

	"github.com/opd-ai/gpltools/internal/gpl"
)

// entryPattern matches a leading "R G B" triple of up to three digits each.
var entryPattern = regexp.MustCompile(`^\s*([0-9]{1,3})\s+([0-9]{1,3})\s+([0-9]{1,3})`)

// hueRecord is a colour line with its sort key.
type hueRecord struct {
	chromatic bool
	h, l, s   float64
	line      string
}

func compareHueRecords(a, b hueRecord) int {
	if a.chromatic != b.chromatic {
		if a.chromatic {
			return 1
		}
		return -1
	}
	return cmp.Or(
		cmp.Compare(a.h, b.h),
		cmp.Compare(a.l, b.l),
		cmp.Compare(a.s, b.s),
		strings.Compare(a.line, b.line),
	)
}

// parseHueRecord returns the record for line, or false if line is not a
// colour entry. Components above 255 are clamped.
func parseHueRecord(line string) (hueRecord, bool) {
	m := entryPattern.FindStringSubmatch(line)
	if m == nil {
		return hueRecord{}, false
	}
	c, err := gpl.ParseComponents(m[1], m[2], m[3])
	if err != nil {
		return hueRecord{}, false
	}
	h, l, s := c.HLS()
	return hueRecord{chromatic: s != 0, h: h, l: l, s: s, line: line}, true
}

// HueSort copies r to w. Lines that are not colour entries are written
// immediately in input order. Colour entries are held back and written
// after the input ends: grayscale first, then by hue, lightness,
// saturation, and finally the raw line text. Every entry written ends
// with a newline.
func HueSort(r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)

	var records []hueRecord
	unterminated := false
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			if rec, ok := parseHueRecord(line); ok {
				records = append(records, rec)
			} else {
				if _, werr := bw.WriteString(line); werr != nil {
					return fmt.Errorf("failed to write output: %w", werr)
				}
				unterminated = !strings.HasSuffix(line, "\n")
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
	}

	slices.SortFunc(records, compareHueRecords)
	// A final non-entry line without a newline must not run into the
	// first held-back entry.
	if unterminated && len(records) > 0 {
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	for _, rec := range records {
		line := rec.line
		if !strings.HasSuffix(line, "\n") {
			line += "\n"
		}
		if _, err := bw.WriteString(line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
