package gpl

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Header is the mandatory first line of a .gpl file.
const Header = "GIMP Palette"

// Parser reads GIMP palette text.
//
// By default parsing is lenient: Name:, Columns: and Channels: lines may
// appear anywhere after the header, in any quantity. With strict header
// mode enabled, line 2 must be Name: and line 3 must be Columns:.
type Parser struct {
	filename string
	strict   bool
	logger   *slog.Logger
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithFilename sets the source name used in errors and as the default
// palette name.
func WithFilename(name string) ParserOption {
	return func(p *Parser) {
		p.filename = name
	}
}

// WithStrictHeader requires Name: and Columns: on lines 2 and 3.
func WithStrictHeader(strict bool) ParserOption {
	return func(p *Parser) {
		p.strict = strict
	}
}

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(l *slog.Logger) ParserOption {
	return func(p *Parser) {
		p.logger = l
	}
}

// NewParser creates a Parser with the given options.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return p
}

// Parse reads a complete palette from r.
func (p *Parser) Parse(r io.Reader) (*Palette, error) {
	pal := &Palette{Filename: p.filename}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("error reading palette: %w", err)
		}
		return nil, p.errorf(1, "Incorrect header at the first line")
	}
	if strings.TrimSpace(scanner.Text()) != Header {
		return nil, p.errorf(1, "Incorrect header at the first line")
	}

	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		if p.strict {
			if err := p.checkStrictHeader(line, lineNum); err != nil {
				return nil, err
			}
		}

		if err := p.parseLine(pal, line, lineNum); err != nil {
			return nil, err
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading palette: %w", err)
	}

	if p.strict && lineNum < 3 {
		return nil, p.errorf(lineNum+1, "missing Name: and Columns: header lines")
	}

	if pal.Name == "" && p.filename != "" {
		pal.Name = filepath.Base(p.filename)
	}

	return pal, nil
}

// ParseBytes parses a palette held in memory.
func (p *Parser) ParseBytes(content []byte) (*Palette, error) {
	return p.Parse(bytes.NewReader(content))
}

// ParseFile opens and parses the palette at path. The path becomes the
// palette's filename unless WithFilename was given.
func (p *Parser) ParseFile(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open palette %s: %w", path, err)
	}
	defer f.Close()

	return p.withDefaultFilename(path).Parse(f)
}

// ParseFS parses the palette at path within fsys.
func (p *Parser) ParseFS(fsys fs.FS, path string) (*Palette, error) {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read palette from FS %s: %w", path, err)
	}

	return p.withDefaultFilename(path).ParseBytes(content)
}

func (p *Parser) withDefaultFilename(path string) *Parser {
	if p.filename != "" {
		return p
	}
	cp := *p
	cp.filename = path
	return &cp
}

func (p *Parser) checkStrictHeader(line string, lineNum int) error {
	switch lineNum {
	case 2:
		if !strings.HasPrefix(line, "Name:") {
			return p.errorf(lineNum, "expected Name: header")
		}
	case 3:
		if !strings.HasPrefix(line, "Columns:") {
			return p.errorf(lineNum, "expected Columns: header")
		}
	}
	return nil
}

// parseLine handles a single line after the header.
func (p *Parser) parseLine(pal *Palette, line string, lineNum int) error {
	switch {
	case strings.HasPrefix(line, "Name:"):
		pal.Name = strings.TrimSpace(strings.TrimPrefix(line, "Name:"))
		return nil

	case strings.HasPrefix(line, "Columns:"):
		value := strings.TrimSpace(strings.TrimPrefix(line, "Columns:"))
		n, err := strconv.Atoi(value)
		if err != nil {
			return &FormatError{
				Source: p.filename,
				Line:   lineNum,
				Msg:    fmt.Sprintf("invalid Columns value %q", value),
				Err:    err,
			}
		}
		pal.Columns = n
		return nil

	case strings.HasPrefix(line, "Channels:"):
		// Written by Aseprite; carries nothing we render.
		p.logger.Debug("ignoring Channels line", "source", p.filename, "line", lineNum)
		return nil
	}

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}

	if comment, ok := strings.CutPrefix(trimmed, "#"); ok {
		pal.Comments = append(pal.Comments, strings.TrimSpace(comment))
		return nil
	}

	nc, err := p.parseEntry(trimmed, lineNum)
	if err != nil {
		return err
	}
	pal.Colors = append(pal.Colors, nc)
	return nil
}

// parseEntry parses "R G B [name]". The name may contain whitespace.
func (p *Parser) parseEntry(line string, lineNum int) (NamedColor, error) {
	fields := splitFields(line, 4)
	switch len(fields) {
	case 3:
		fields = append(fields, UntitledName)
	case 4:
	default:
		return NamedColor{}, p.errorf(lineNum, "Invalid line")
	}

	c, err := ParseComponents(fields[0], fields[1], fields[2])
	if err != nil {
		return NamedColor{}, &FormatError{
			Source: p.filename,
			Line:   lineNum,
			Msg:    "Invalid color components",
			Err:    err,
		}
	}

	return NewNamedColor(strings.TrimSpace(fields[3]), c), nil
}

func (p *Parser) errorf(lineNum int, format string, args ...any) *FormatError {
	return &FormatError{
		Source: p.filename,
		Line:   lineNum,
		Msg:    fmt.Sprintf(format, args...),
	}
}

// splitFields splits s around runs of whitespace into at most n fields.
// The last field keeps the remainder of s, including inner whitespace.
func splitFields(s string, n int) []string {
	var fields []string
	rest := strings.TrimLeft(s, " \t\r\n\v\f")
	for rest != "" {
		if len(fields) == n-1 {
			fields = append(fields, rest)
			break
		}
		i := strings.IndexAny(rest, " \t\r\n\v\f")
		if i < 0 {
			fields = append(fields, rest)
			break
		}
		fields = append(fields, rest[:i])
		rest = strings.TrimLeft(rest[i:], " \t\r\n\v\f")
	}
	return fields
}

// ParseFile parses the palette at path with default (lenient) options.
func ParseFile(path string) (*Palette, error) {
	return NewParser().ParseFile(path)
}

// Parse parses a palette from r with default (lenient) options.
// filename may be empty.
func Parse(r io.Reader, filename string) (*Palette, error) {
	return NewParser(WithFilename(filename)).Parse(r)
}
