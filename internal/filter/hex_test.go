package filter

import (
	"bytes"
	"strings"
	"testing"
)

func TestRewriteHexLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"short form", "border: #FFF;", "border: 255 255 255;"},
		{"long form", "color: #7fff00", "color: 127 255 0"},
		{"no literal", "nothing to see here", "nothing to see here"},
		{"two literals", "#000 and #ABCDEF", "0 0 0 and 171 205 239"},
		{"four digits", "#abcd", "170 187 204d"},
		{"seven digits", "#1234567", "18 52 86 7"},
		{"bare hash", "# comment #", "# comment #"},
		{"non-hex", "#ggg", "#ggg"},
		{"whitespace kept", "  #fff  \t", "  255 255 255  \t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RewriteHexLine(tt.input); got != tt.want {
				t.Errorf("RewriteHexLine(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRewriteHex(t *testing.T) {
	input := "GIMP Palette\n#ff0000 Red\r\n\n#0f0 Green"
	want := "GIMP Palette\n255 0 0 Red\r\n\n0 255 0 Green"

	var out bytes.Buffer
	if err := RewriteHex(strings.NewReader(input), &out); err != nil {
		t.Fatalf("RewriteHex failed: %v", err)
	}
	if out.String() != want {
		t.Errorf("RewriteHex output = %q, want %q", out.String(), want)
	}
}

func TestRewriteHexEmpty(t *testing.T) {
	var out bytes.Buffer
	if err := RewriteHex(strings.NewReader(""), &out); err != nil {
		t.Fatalf("RewriteHex failed: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected empty output, got %q", out.String())
	}
}
