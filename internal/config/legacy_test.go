package config

import (
	"testing"
	"time"
)

func TestRCParserParseBasic(t *testing.T) {
	content := `# gpl2html settings
output   public/index.html
title    Pixel art palettes
strict_header yes

swatch_dir    public/swatches
swatch_format BMP
swatch_cell   12
watch
watch_debounce 0.25
log_level DEBUG
log_format json
unknown_key whatever
`
	cfg, err := NewRCParser().Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Output.Path != "public/index.html" {
		t.Errorf("expected output 'public/index.html', got %q", cfg.Output.Path)
	}
	if cfg.Output.Title != "Pixel art palettes" {
		t.Errorf("expected title 'Pixel art palettes', got %q", cfg.Output.Title)
	}
	if !cfg.Parse.StrictHeader {
		t.Error("expected strict_header=true")
	}
	if cfg.Swatch.Dir != "public/swatches" || cfg.Swatch.Format != "bmp" || cfg.Swatch.Cell != 12 {
		t.Errorf("unexpected swatch config %+v", cfg.Swatch)
	}
	if !cfg.Watch.Enabled {
		t.Error("bare watch key should enable watching")
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("expected debounce 250ms, got %v", cfg.Watch.Debounce)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log config %+v", cfg.Log)
	}
}

func TestRCParserDefaults(t *testing.T) {
	cfg, err := NewRCParser().Parse(nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if *cfg != DefaultConfig() {
		t.Errorf("empty rc file should yield defaults, got %+v", cfg)
	}
}

func TestRCParserErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad swatch_cell", "swatch_cell big"},
		{"bad debounce", "watch_debounce soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRCParser().Parse([]byte(tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"yes", true},
		{"TRUE", true},
		{"1", true},
		{"", true},
		{"no", false},
		{"false", false},
		{"0", false},
		{"maybe", false},
	}
	for _, tt := range tests {
		if got := parseBool(tt.input); got != tt.want {
			t.Errorf("parseBool(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
