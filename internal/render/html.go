// Package render turns parsed palettes into presentable output: a single
// browsable HTML document, or raster swatches.
package render

import (
	"bufio"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"path/filepath"
	"slices"
	"strings"

	"github.com/opd-ai/gpltools/internal/gpl"
)

// DefaultTitle is the document title used when none is configured.
const DefaultTitle = "GIMP palettes"

//go:embed templates
var templateFS embed.FS

var (
	prefixTemplate  = template.Must(template.ParseFS(templateFS, "templates/prefix.html.tmpl"))
	paletteTemplate = template.Must(template.ParseFS(templateFS, "templates/palette.html.tmpl"))
	documentSuffix  = mustReadTemplate("templates/suffix.html")
)

func mustReadTemplate(name string) string {
	b, err := templateFS.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return string(b)
}

// HTMLRenderer renders palettes as HTML. All palette-derived text is
// escaped by html/template.
type HTMLRenderer struct {
	title string
}

// HTMLOption configures an HTMLRenderer.
type HTMLOption func(*HTMLRenderer)

// WithTitle sets the document <title>.
func WithTitle(title string) HTMLOption {
	return func(r *HTMLRenderer) {
		r.title = title
	}
}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer(opts ...HTMLOption) *HTMLRenderer {
	r := &HTMLRenderer{title: DefaultTitle}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// paletteView is the template data for one palette fragment.
type paletteView struct {
	Name     string
	Href     template.URL
	Columns  int
	Rows     int
	Count    int
	Unique   int
	Comments []string
	Grid     [][]cellView
}

// cellView is the template data for one colour cell.
type cellView struct {
	Style template.CSS
	Title string
}

func newPaletteView(p *gpl.Palette) paletteView {
	v := paletteView{
		Name:     p.Name,
		Href:     fileHref(p.Filename),
		Columns:  p.Columns,
		Rows:     p.Rows(),
		Count:    len(p.Colors),
		Unique:   p.UniqueCount(),
		Comments: p.Comments,
	}
	for _, row := range p.Grid() {
		cells := make([]cellView, 0, len(row))
		for _, nc := range row {
			cells = append(cells, newCellView(nc))
		}
		v.Grid = append(v.Grid, cells)
	}
	return v
}

// fileHref turns a file path into a relative link. Each path segment is
// percent-encoded, and a leading segment containing ':' gets a "./" prefix
// so it cannot be read as a URL scheme.
func fileHref(path string) template.URL {
	if path == "" {
		return ""
	}
	segments := strings.Split(filepath.ToSlash(path), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	href := strings.Join(segments, "/")
	if segments[0] != "" && strings.Contains(segments[0], ":") {
		href = "./" + href
	}
	return template.URL(href)
}

func newCellView(nc gpl.NamedColor) cellView {
	return cellView{
		// The style value is built only from formatted integers.
		Style: template.CSS("background-color:" + nc.HexPrefixed()),
		Title: fmt.Sprintf("%s\n%s\n%d, %d, %d", nc.Name, nc.HexUpperPrefixed(), nc.R(), nc.G(), nc.B()),
	}
}

// RenderPalette writes the HTML fragment for a single palette.
func (r *HTMLRenderer) RenderPalette(w io.Writer, p *gpl.Palette) error {
	if err := paletteTemplate.ExecuteTemplate(w, "palette.html.tmpl", newPaletteView(p)); err != nil {
		return fmt.Errorf("failed to render palette %q: %w", p.Name, err)
	}
	return nil
}

// RenderDocument writes a complete HTML document containing every palette,
// ordered by case-insensitive name. The input slice is not modified.
func (r *HTMLRenderer) RenderDocument(w io.Writer, palettes []*gpl.Palette) error {
	bw := bufio.NewWriter(w)

	data := struct{ Title string }{Title: r.title}
	if err := prefixTemplate.ExecuteTemplate(bw, "prefix.html.tmpl", data); err != nil {
		return fmt.Errorf("failed to render document prefix: %w", err)
	}

	for _, p := range SortByName(palettes) {
		if err := r.RenderPalette(bw, p); err != nil {
			return err
		}
	}

	if _, err := bw.WriteString(documentSuffix); err != nil {
		return fmt.Errorf("failed to write document suffix: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// SortByName returns a copy of palettes stably sorted by lower-cased name.
func SortByName(palettes []*gpl.Palette) []*gpl.Palette {
	sorted := slices.Clone(palettes)
	slices.SortStableFunc(sorted, func(a, b *gpl.Palette) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return sorted
}
