package gpltools

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/opd-ai/gpltools/internal/gpl"
	"github.com/opd-ai/gpltools/internal/render"
)

// Converter loads palettes and writes them as an HTML document and,
// optionally, swatch images.
type Converter struct {
	opts    Options
	logger  Logger
	metrics *Metrics
	parser  *gpl.Parser
	html    *render.HTMLRenderer
	swatch  *render.SwatchRenderer
	format  render.SwatchFormat
}

// New creates a Converter. It fails only when the options name an unknown
// swatch format.
func New(opts Options) (*Converter, error) {
	format, err := render.ParseSwatchFormat(opts.SwatchFormat)
	if err != nil {
		return nil, NewCategorizedError(err, ErrorCategoryConfig, "")
	}

	logger := opts.Logger
	if logger == nil {
		logger = NopLogger()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NewMetrics()
	}

	var htmlOpts []render.HTMLOption
	if opts.Title != "" {
		htmlOpts = append(htmlOpts, render.WithTitle(opts.Title))
	}

	return &Converter{
		opts:    opts,
		logger:  logger,
		metrics: metrics,
		parser: gpl.NewParser(
			gpl.WithStrictHeader(opts.StrictHeader),
			gpl.WithLogger(slogFor(logger)),
		),
		html:   render.NewHTMLRenderer(htmlOpts...),
		swatch: render.NewSwatchRenderer(opts.SwatchCell),
		format: format,
	}, nil
}

// Metrics returns the converter's metrics.
func (c *Converter) Metrics() *Metrics {
	return c.metrics
}

// Load parses every path. All failures are reported together; any failure
// means no palettes are returned.
func (c *Converter) Load(paths []string) ([]*gpl.Palette, error) {
	palettes := make([]*gpl.Palette, 0, len(paths))
	var errs []error
	for _, path := range paths {
		pal, err := c.parser.ParseFile(path)
		if err != nil {
			errs = append(errs, categorizeLoad(err, path))
			continue
		}
		c.logger.Debug("parsed palette", "path", path, "name", pal.Name, "colors", len(pal.Colors))
		palettes = append(palettes, pal)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	c.metrics.palettesParsed.Add(int64(len(palettes)))
	return palettes, nil
}

func categorizeLoad(err error, path string) error {
	var fe *gpl.FormatError
	if errors.As(err, &fe) {
		return NewCategorizedError(err, ErrorCategoryParse, path)
	}
	return NewCategorizedError(err, ErrorCategoryIO, path)
}

// RenderHTML renders palettes as a complete HTML document.
func (c *Converter) RenderHTML(palettes []*gpl.Palette) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.html.RenderDocument(&buf, palettes); err != nil {
		return nil, NewCategorizedError(err, ErrorCategoryRender, "")
	}
	for _, p := range palettes {
		c.metrics.colorsRendered.Add(int64(len(p.Colors)))
	}
	return buf.Bytes(), nil
}

// Convert renders the palettes at paths and writes the document to w.
// Nothing is written if any palette fails to load.
func (c *Converter) Convert(paths []string, w io.Writer) error {
	start := time.Now()
	err := c.convert(paths, func(doc []byte) error {
		if _, err := w.Write(doc); err != nil {
			return NewCategorizedError(fmt.Errorf("failed to write document: %w", err), ErrorCategoryIO, "")
		}
		return nil
	})
	c.metrics.recordConversion(time.Since(start), err)
	return err
}

// ConvertFile renders the palettes at paths and replaces output with the
// document. output is left untouched if any step fails.
func (c *Converter) ConvertFile(paths []string, output string) error {
	start := time.Now()
	err := c.convert(paths, func(doc []byte) error {
		if err := writeFileAtomic(output, doc); err != nil {
			return NewCategorizedError(err, ErrorCategoryIO, output)
		}
		c.logger.Info("wrote document", "path", output, "bytes", len(doc))
		return nil
	})
	c.metrics.recordConversion(time.Since(start), err)
	return err
}

func (c *Converter) convert(paths []string, emit func([]byte) error) error {
	if len(paths) == 0 {
		c.logger.Warn("no palette files given")
	}

	palettes, err := c.Load(paths)
	if err != nil {
		return err
	}

	doc, err := c.RenderHTML(palettes)
	if err != nil {
		return err
	}

	var swatches map[string][]byte
	if c.opts.SwatchDir != "" {
		if swatches, err = c.renderSwatches(palettes); err != nil {
			return err
		}
	}

	if err := emit(doc); err != nil {
		return err
	}
	return c.writeSwatches(swatches)
}

// renderSwatches encodes one swatch per palette, keyed by file name.
func (c *Converter) renderSwatches(palettes []*gpl.Palette) (map[string][]byte, error) {
	out := make(map[string][]byte, len(palettes))
	for _, p := range palettes {
		name := uniqueName(out, swatchBase(p), c.format.String())

		var buf bytes.Buffer
		if err := render.Encode(&buf, c.swatch.Render(p), c.format); err != nil {
			return nil, NewCategorizedError(err, ErrorCategoryRender, p.Filename)
		}
		out[name] = buf.Bytes()
	}
	return out, nil
}

func (c *Converter) writeSwatches(swatches map[string][]byte) error {
	if len(swatches) == 0 {
		return nil
	}
	if err := os.MkdirAll(c.opts.SwatchDir, 0o755); err != nil {
		return NewCategorizedError(fmt.Errorf("failed to create swatch directory: %w", err), ErrorCategoryIO, c.opts.SwatchDir)
	}
	for name, data := range swatches {
		path := filepath.Join(c.opts.SwatchDir, name)
		if err := writeFileAtomic(path, data); err != nil {
			return NewCategorizedError(err, ErrorCategoryIO, path)
		}
		c.metrics.swatchesWrote.Add(1)
		c.logger.Debug("wrote swatch", "path", path)
	}
	return nil
}

// swatchBase picks the swatch file name stem: the palette file's base name
// without extension, else the palette name.
func swatchBase(p *gpl.Palette) string {
	base := ""
	if p.Filename != "" {
		base = filepath.Base(p.Filename)
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if base == "" {
		base = p.Name
	}
	base = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == 0 {
			return '_'
		}
		return r
	}, base)
	if base == "" || base == "." || base == ".." {
		base = "palette"
	}
	return base
}

// uniqueName returns base.ext, or base-N.ext if that is already taken.
func uniqueName(taken map[string][]byte, base, ext string) string {
	name := base + "." + ext
	for i := 2; ; i++ {
		if _, ok := taken[name]; !ok {
			return name
		}
		name = fmt.Sprintf("%s-%d.%s", base, i, ext)
	}
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it over path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
