// Package selftest is the built-in check suite run by "gpl2html -t". It
// exercises the colour model, parser, HTML renderer and filters against
// known inputs so an installed binary can verify itself.
package selftest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/opd-ai/gpltools/internal/filter"
	"github.com/opd-ai/gpltools/internal/gpl"
	"github.com/opd-ai/gpltools/internal/render"
)

// Check is a single named self-test.
type Check struct {
	Name string
	Run  func() error
}

// Result is the outcome of one Check.
type Result struct {
	Name string
	Err  error
}

// Checks returns the full suite in execution order.
func Checks() []Check {
	return []Check{
		{"clamp", checkClamp},
		{"color-equality", checkColorEquality},
		{"color-truthiness", checkIsBlack},
		{"color-set", checkColorSet},
		{"color-representations", checkRepresentations},
		{"color-round-trip", checkRoundTrip},
		{"color-access", checkAccess},
		{"parse-basic", checkParseBasic},
		{"parse-bad-header", checkParseBadHeader},
		{"parse-two-fields", checkParseTwoFields},
		{"html-escaping", checkHTMLEscaping},
		{"hex-rewrite", checkHexRewrite},
		{"hue-sort", checkHueSort},
	}
}

// Run executes checks, writing one line per check to w, and returns the
// failed results.
func Run(w io.Writer, checks []Check) []Result {
	var failed []Result
	for _, c := range checks {
		err := runCheck(c)
		if err != nil {
			fmt.Fprintf(w, "FAIL %s: %v\n", c.Name, err)
			failed = append(failed, Result{Name: c.Name, Err: err})
			continue
		}
		fmt.Fprintf(w, "ok   %s\n", c.Name)
	}
	fmt.Fprintf(w, "%d checks, %d failed\n", len(checks), len(failed))
	return failed
}

func runCheck(c Check) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return c.Run()
}

func expect[T comparable](what string, got, want T) error {
	if got != want {
		return fmt.Errorf("%s = %v, want %v", what, got, want)
	}
	return nil
}

func checkClamp() error {
	for x := -1000; x <= 1000; x++ {
		if err := expect(fmt.Sprintf("clamp(%d)", x), gpl.ClampToByte(x), max(0, min(255, x))); err != nil {
			return err
		}
	}
	return nil
}

func checkColorEquality() error {
	pairs := []struct {
		a, b string
		want bool
	}{
		{"#abc", "#aabbcc", true},
		{"#AABBCC", "#ABC", true},
		{"ABCDEF", "#ABCDEF", true},
		{"#FFFFFF", "#fff", true},
		{"#000001", "#000000", false},
	}
	for _, p := range pairs {
		a, err := gpl.ParseColor(p.a)
		if err != nil {
			return err
		}
		b, err := gpl.ParseColor(p.b)
		if err != nil {
			return err
		}
		if err := expect(fmt.Sprintf("%s == %s", p.a, p.b), a == b, p.want); err != nil {
			return err
		}
	}
	return expect("Color(0,0,0) == #000000", gpl.NewColor(0, 0, 0) == gpl.MustParseColor("#000000"), true)
}

func checkIsBlack() error {
	if err := expect("Color(0,0,0).IsBlack()", gpl.NewColor(0, 0, 0).IsBlack(), true); err != nil {
		return err
	}
	return expect("Color(1,0,0).IsBlack()", gpl.NewColor(1, 0, 0).IsBlack(), false)
}

func checkColorSet() error {
	a, b := gpl.NewColor(0, 0, 0), gpl.MustParseColor("#000")
	if err := expect("hash equality", a.Hash(), b.Hash()); err != nil {
		return err
	}
	set := map[gpl.Color]struct{}{a: {}, b: {}}
	return expect("set size", len(set), 1)
}

func checkRepresentations() error {
	x := gpl.NewColor(127, 500, -500)
	checks := []struct{ what, got, want string }{
		{"components", fmt.Sprint(x.Components()), "[127 255 0]"},
		{"hex", x.HexR() + x.HexG() + x.HexB(), "7fff00"},
		{"HEX", x.HexUpperR() + x.HexUpperG() + x.HexUpperB(), "7FFF00"},
		{"Hex()", x.Hex(), "7fff00"},
		{"HexUpper()", x.HexUpper(), "7FFF00"},
		{"HexPrefixed()", x.HexPrefixed(), "#7fff00"},
		{"HexUpperPrefixed()", x.HexUpperPrefixed(), "#7FFF00"},
		{"GPL()", x.GPL(), "127 255   0"},
		{"CSSDefault()", x.CSSDefault(), "rgb(127, 255, 0)"},
		{"CSS(\"\")", x.CSS(""), "rgb(127,255,0)"},
		{"String()", x.String(), "#7fff00"},
		{"GoString()", x.GoString(), "Color(127, 255, 0)"},
	}
	for _, c := range checks {
		if err := expect(c.what, c.got, c.want); err != nil {
			return err
		}
	}
	return nil
}

func checkRoundTrip() error {
	for _, c := range []gpl.Color{
		gpl.NewColor(0, 0, 0),
		gpl.NewColor(255, 255, 255),
		gpl.NewColor(1, 128, 254),
		gpl.NewColor(171, 205, 239),
	} {
		got, err := gpl.ParseColor(c.HexUpperPrefixed())
		if err != nil {
			return err
		}
		if err := expect("round trip of "+c.String(), got, c); err != nil {
			return err
		}
	}
	return nil
}

func checkAccess() error {
	x := gpl.NewColor(127, 255, 0)
	for i, want := range []int{127, 255, 0} {
		got, err := x.Index(i)
		if err != nil {
			return err
		}
		if err := expect(fmt.Sprintf("Index(%d)", i), got, want); err != nil {
			return err
		}
	}
	for key, want := range map[string]int{"r": 127, "G": 255, "b": 0} {
		got, err := x.Component(key)
		if err != nil {
			return err
		}
		if err := expect("Component("+key+")", got, want); err != nil {
			return err
		}
	}

	var ie *gpl.IndexError
	if _, err := x.Index(3); !errors.As(err, &ie) {
		return fmt.Errorf("Index(3) error = %v, want *IndexError", err)
	}
	var ke *gpl.KeyError
	if _, err := x.Component("a"); !errors.As(err, &ke) {
		return fmt.Errorf("Component(a) error = %v, want *KeyError", err)
	}
	return nil
}

func checkParseBasic() error {
	pal, err := gpl.Parse(strings.NewReader("GIMP Palette\nName: Test\nColumns: 2\n255 0 0 Red\n0 255 0 Green\n0 0 255\n"), "")
	if err != nil {
		return err
	}
	if err := expect("name", pal.Name, "Test"); err != nil {
		return err
	}
	if err := expect("columns", pal.Columns, 2); err != nil {
		return err
	}
	if err := expect("colors", len(pal.Colors), 3); err != nil {
		return err
	}
	return expect("third name", pal.Colors[2].Name, gpl.UntitledName)
}

func checkParseBadHeader() error {
	_, err := gpl.Parse(strings.NewReader("Not a palette\n0 0 0\n"), "")
	var fe *gpl.FormatError
	if !errors.As(err, &fe) {
		return fmt.Errorf("error = %v, want *FormatError", err)
	}
	return nil
}

func checkParseTwoFields() error {
	_, err := gpl.Parse(strings.NewReader("GIMP Palette\n0 0 0 ok\n12 34\n"), "")
	var fe *gpl.FormatError
	if !errors.As(err, &fe) {
		return fmt.Errorf("error = %v, want *FormatError", err)
	}
	if err := expect("error line", fe.Line, 3); err != nil {
		return err
	}
	if !strings.Contains(err.Error(), "3") {
		return fmt.Errorf("error %q does not cite the line number", err)
	}
	return nil
}

func checkHTMLEscaping() error {
	pal, err := gpl.Parse(strings.NewReader("GIMP Palette\nName: <script>\n1 2 3 <script>\n"), "")
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := render.NewHTMLRenderer().RenderPalette(&buf, pal); err != nil {
		return err
	}
	if strings.Contains(buf.String(), "<script>") {
		return errors.New("raw <script> in output")
	}
	if !strings.Contains(buf.String(), "&lt;script&gt;") {
		return errors.New("escaped name missing from output")
	}
	return nil
}

func checkHexRewrite() error {
	if err := expect("rewrite", filter.RewriteHexLine("border: #FFF;"), "border: 255 255 255;"); err != nil {
		return err
	}
	if err := expect("rewrite", filter.RewriteHexLine("color: #7fff00"), "color: 127 255 0"); err != nil {
		return err
	}
	return expect("rewrite without hex", filter.RewriteHexLine("no colors here"), "no colors here")
}

func checkHueSort() error {
	var out strings.Builder
	in := "255 0 0 Red\n255 255 255 White\n0 0 0 Black\n"
	if err := filter.HueSort(strings.NewReader(in), &out); err != nil {
		return err
	}
	return expect("sorted", out.String(), "0 0 0 Black\n255 255 255 White\n255 0 0 Red\n")
}
