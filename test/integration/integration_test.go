//go:build integration

// Package integration provides end-to-end tests for gpltools. They drive
// configuration loading, palette conversion, swatch export, watch mode and
// the filters together against the fixtures in test/palettes.
package integration

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/opd-ai/gpltools/internal/config"
	"github.com/opd-ai/gpltools/internal/filter"
	"github.com/opd-ai/gpltools/internal/gpl"
	"github.com/opd-ai/gpltools/pkg/gpltools"
)

// palettesDir returns the path to the test palettes directory.
func palettesDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed to get current file path")
	}
	return filepath.Join(filepath.Dir(file), "..", "palettes")
}

func fixture(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(palettesDir(t), name)
}

// copyFixture copies a fixture into dir so tests can modify it.
func copyFixture(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(fixture(t, name))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func loadConfig(t *testing.T) config.Config {
	t.Helper()
	parser, err := config.NewParser()
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}
	defer parser.Close()

	cfg, err := parser.ParseFile(fixture(t, "gpl2html.lua"))
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if result := config.Validate(cfg); !result.IsValid() {
		t.Fatalf("fixture config invalid: %v", result.Error())
	}
	return *cfg
}

// TestConfigToDocument loads the Lua fixture config and converts both
// fixture palettes into an HTML file plus swatches.
func TestConfigToDocument(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GPL_OUT", filepath.Join(dir, "index.html"))

	cfg := loadConfig(t)
	if cfg.Output.Path != filepath.Join(dir, "index.html") {
		t.Fatalf("output path not expanded: %q", cfg.Output.Path)
	}
	cfg.Swatch.Dir = filepath.Join(dir, "swatches")

	opts := gpltools.Options{
		Title:        cfg.Output.Title,
		StrictHeader: cfg.Parse.StrictHeader,
		SwatchDir:    cfg.Swatch.Dir,
		SwatchFormat: cfg.Swatch.Format,
		SwatchCell:   cfg.Swatch.Cell,
	}
	conv, err := gpltools.New(opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	paths := []string{fixture(t, "web.gpl"), fixture(t, "pastel.gpl")}
	if err := conv.ConvertFile(paths, cfg.Output.Path); err != nil {
		t.Fatalf("ConvertFile failed: %v", err)
	}

	doc, err := os.ReadFile(cfg.Output.Path)
	if err != nil {
		t.Fatal(err)
	}
	html := string(doc)
	for _, want := range []string{
		"<title>Integration palettes</title>",
		`<p class="properties">4x4 (16 colors, 16 unique)</p>`,
		`<p class="properties">0x1 (5 colors, 5 unique)</p>`,
		"The sixteen HTML 4 colour keywords",
		"title=\"Untitled\n#CFCFC4\n207, 207, 196\"",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("document missing %q", want)
		}
	}
	if strings.Index(html, ">pastel<") > strings.Index(html, ">Web Basics<") {
		t.Error("palettes not sorted by name")
	}

	for _, name := range []string{"web.png", "pastel.png"} {
		if _, err := os.Stat(filepath.Join(cfg.Swatch.Dir, name)); err != nil {
			t.Errorf("swatch %s missing: %v", name, err)
		}
	}
}

// TestWatchRegenerates edits a palette while watch mode runs and checks
// that the document follows.
func TestWatchRegenerates(t *testing.T) {
	dir := t.TempDir()
	pal := copyFixture(t, dir, "pastel.gpl")
	out := filepath.Join(dir, "index.html")

	conv, err := gpltools.New(gpltools.DefaultOptions())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := conv.ConvertFile([]string{pal}, out); err != nil {
		t.Fatalf("initial ConvertFile failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var failures atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- gpltools.Watch(ctx, []string{pal}, 50*time.Millisecond, func() error {
			return conv.ConvertFile([]string{pal}, out)
		}, func(error) {
			failures.Add(1)
		})
	}()
	time.Sleep(100 * time.Millisecond)

	// A broken edit must not clobber the last good document.
	if err := os.WriteFile(pal, []byte("GIMP Palette\nName: pastel\n1 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool { return failures.Load() > 0 })
	if html := readFile(t, out); !strings.Contains(html, "Pastel Pink") {
		t.Error("failed regeneration replaced the previous document")
	}

	if err := os.WriteFile(pal, []byte("GIMP Palette\nName: renamed\n1 2 3 Fresh\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !waitFor(t, func() bool { return strings.Contains(readFile(t, out), ">renamed<") }) {
		t.Error("document was not regenerated after the fix")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not stop")
	}
}

// TestFiltersPipeline runs hue sorting over a palette and hex rewriting
// over a stylesheet, then parses the sorted palette again.
func TestFiltersPipeline(t *testing.T) {
	in, err := os.ReadFile(fixture(t, "web.gpl"))
	if err != nil {
		t.Fatal(err)
	}

	var sorted bytes.Buffer
	if err := filter.HueSort(bytes.NewReader(in), &sorted); err != nil {
		t.Fatalf("HueSort failed: %v", err)
	}

	pal, err := gpl.Parse(&sorted, "sorted.gpl")
	if err != nil {
		t.Fatalf("sorted palette no longer parses: %v", err)
	}
	if len(pal.Colors) != 16 {
		t.Fatalf("expected 16 colors, got %d", len(pal.Colors))
	}
	wantFirst := []string{"black", "gray", "silver", "white"}
	for i, name := range wantFirst {
		if pal.Colors[i].Name != name {
			t.Errorf("color %d = %q, want %q", i, pal.Colors[i].Name, name)
		}
	}

	css, err := os.ReadFile(fixture(t, "theme.css"))
	if err != nil {
		t.Fatal(err)
	}
	var rewritten bytes.Buffer
	if err := filter.RewriteHex(bytes.NewReader(css), &rewritten); err != nil {
		t.Fatalf("RewriteHex failed: %v", err)
	}
	want := "body { background: 253 253 150; color: 51 51 51; }\na:hover { color: 174 198 207; }\n"
	if rewritten.String() != want {
		t.Errorf("RewriteHex = %q, want %q", rewritten.String(), want)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func waitFor(t *testing.T, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}
