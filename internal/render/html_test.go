package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/opd-ai/gpltools/internal/gpl"
)

func mustParse(t *testing.T, content, filename string) *gpl.Palette {
	t.Helper()
	pal, err := gpl.Parse(strings.NewReader(content), filename)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return pal
}

func TestRenderPaletteBasic(t *testing.T) {
	pal := mustParse(t, "GIMP Palette\nName: Test\nColumns: 2\n# hello\n255 0 0 Red\n0 255 0 Green\n255 0 0\n", "pals/test.gpl")

	var buf bytes.Buffer
	if err := NewHTMLRenderer().RenderPalette(&buf, pal); err != nil {
		t.Fatalf("RenderPalette failed: %v", err)
	}
	out := buf.String()

	wants := []string{
		`<article class="palette">`,
		`<h1 class="name"><a href="pals/test.gpl">Test</a></h1>`,
		`<p class="properties">2x2 (3 colors, 2 unique)</p>`,
		`<p class="comment">hello</p>`,
		`style="background-color:#ff0000"`,
		"title=\"Red\n#FF0000\n255, 0, 0\"",
		"title=\"Untitled\n#FF0000\n255, 0, 0\"",
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}

	if got := strings.Count(out, "<tr>"); got != 2 {
		t.Errorf("expected 2 rows, got %d", got)
	}
	if got := strings.Count(out, `<td class="color"`); got != 3 {
		t.Errorf("expected 3 cells, got %d", got)
	}
}

func TestRenderPaletteDefaultColumns(t *testing.T) {
	var b strings.Builder
	b.WriteString("GIMP Palette\nName: Many\n")
	for i := 0; i < 20; i++ {
		b.WriteString("10 20 30 c\n")
	}
	pal := mustParse(t, b.String(), "")

	var buf bytes.Buffer
	if err := NewHTMLRenderer().RenderPalette(&buf, pal); err != nil {
		t.Fatalf("RenderPalette failed: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, `<p class="properties">0x2 (20 colors, 1 unique)</p>`) {
		t.Errorf("unexpected properties line\n%s", out)
	}
	rows := strings.Split(out, "<tr>")[1:]
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if got := strings.Count(rows[0], "<td"); got != 16 {
		t.Errorf("expected 16 cells in first row, got %d", got)
	}
	if got := strings.Count(rows[1], "<td"); got != 4 {
		t.Errorf("expected 4 cells in second row, got %d", got)
	}
	if strings.Contains(out, "<a href") {
		t.Error("palette without filename should not link")
	}
}

func TestRenderPaletteEscapes(t *testing.T) {
	content := "GIMP Palette\nName: <b>Bold</b> & \"co\"\n# <!-- comment -->\n1 2 3 <script>\n"
	pal := mustParse(t, content, "x\"><script>.gpl")

	var buf bytes.Buffer
	if err := NewHTMLRenderer().RenderPalette(&buf, pal); err != nil {
		t.Fatalf("RenderPalette failed: %v", err)
	}
	out := buf.String()

	if strings.Contains(out, "<script>") {
		t.Errorf("raw <script> leaked into output\n%s", out)
	}
	if strings.Contains(out, "<b>") {
		t.Errorf("raw <b> leaked into output\n%s", out)
	}
	for _, want := range []string{"&lt;script&gt;", "&lt;b&gt;Bold&lt;/b&gt; &amp; &#34;co&#34;", "&lt;!-- comment --&gt;"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing escaped text %q\n%s", want, out)
		}
	}
}

func TestRenderPaletteFileLinks(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"pals/test.gpl", `href="pals/test.gpl"`},
		{"v1:2.gpl", `href="./v1:2.gpl"`},
		{"my palette.gpl", `href="my%20palette.gpl"`},
		{"100%.gpl", `href="100%25.gpl"`},
		{"/abs/a:b.gpl", `href="/abs/a:b.gpl"`},
		{"x\"><script>.gpl", `href="x%22%3E%3Cscript%3E.gpl"`},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			pal := mustParse(t, "GIMP Palette\nName: Linked\n", tt.filename)
			var buf bytes.Buffer
			if err := NewHTMLRenderer().RenderPalette(&buf, pal); err != nil {
				t.Fatalf("RenderPalette failed: %v", err)
			}
			out := buf.String()
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %s\n%s", tt.want, out)
			}
			if strings.Contains(out, "ZgotmplZ") {
				t.Errorf("link was rejected by the template escaper\n%s", out)
			}
		})
	}
}

func TestRenderDocumentSortsByName(t *testing.T) {
	palettes := []*gpl.Palette{
		mustParse(t, "GIMP Palette\nName: charlie\n", ""),
		mustParse(t, "GIMP Palette\nName: Alpha\n", ""),
		mustParse(t, "GIMP Palette\nName: bravo\n", ""),
	}

	var buf bytes.Buffer
	if err := NewHTMLRenderer(WithTitle("My <Palettes>")).RenderDocument(&buf, palettes); err != nil {
		t.Fatalf("RenderDocument failed: %v", err)
	}
	out := buf.String()

	a := strings.Index(out, ">Alpha<")
	b := strings.Index(out, ">bravo<")
	c := strings.Index(out, ">charlie<")
	if a < 0 || b < 0 || c < 0 || !(a < b && b < c) {
		t.Errorf("palettes not sorted case-insensitively: Alpha=%d bravo=%d charlie=%d", a, b, c)
	}

	if palettes[0].Name != "charlie" {
		t.Error("RenderDocument must not reorder its input")
	}

	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Error("document should start with doctype")
	}
	if !strings.Contains(out, "<title>My &lt;Palettes&gt;</title>") {
		t.Error("document title not escaped or missing")
	}
	if !strings.Contains(out, `id="search_field"`) || !strings.Contains(out, `id="toggle_border_checkbox"`) {
		t.Error("interactive panel missing")
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "</html>") {
		t.Error("document should end with </html>")
	}
}

func TestRenderDocumentEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewHTMLRenderer().RenderDocument(&buf, nil); err != nil {
		t.Fatalf("RenderDocument failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<title>"+DefaultTitle+"</title>") {
		t.Error("default title missing")
	}
	if strings.Contains(out, `<article class="palette">`) {
		t.Error("empty document should contain no palettes")
	}
}

func TestSortByNameStable(t *testing.T) {
	first := &gpl.Palette{Name: "Same", Filename: "1"}
	second := &gpl.Palette{Name: "same", Filename: "2"}
	sorted := SortByName([]*gpl.Palette{first, second})
	if sorted[0] != first || sorted[1] != second {
		t.Error("equal names should keep input order")
	}
}
