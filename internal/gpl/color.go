// Package gpl implements the GIMP palette (.gpl) data model: 24-bit colours,
// named palette entries, and a parser/serializer pair for the text format.
package gpl

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a 24-bit RGB colour with 8 bits per component.
// The zero value is black. Colors are comparable and may be used as map keys.
type Color struct {
	r, g, b uint8
}

// ClampToByte constrains v to the 0..255 range.
func ClampToByte(v int) int {
	return min(255, max(0, v))
}

// NewColor returns a Color with each component clamped to 0..255.
func NewColor(r, g, b int) Color {
	return Color{
		r: uint8(ClampToByte(r)),
		g: uint8(ClampToByte(g)),
		b: uint8(ClampToByte(b)),
	}
}

// ParseComponents builds a Color from three decimal strings.
// Out-of-range values are clamped; non-integer text is a *FormatError.
func ParseComponents(r, g, b string) (Color, error) {
	var c Color
	if err := c.SetDecimalR(r); err != nil {
		return Color{}, err
	}
	if err := c.SetDecimalG(g); err != nil {
		return Color{}, err
	}
	if err := c.SetDecimalB(b); err != nil {
		return Color{}, err
	}
	return c, nil
}

// ParseColor parses "#rgb", "#rrggbb", "rgb" or "rrggbb" (any case).
func ParseColor(s string) (Color, error) {
	var c Color
	var err error
	if strings.HasPrefix(s, "#") {
		err = c.SetHexPrefixed(s)
	} else {
		err = c.SetHex(s)
	}
	if err != nil {
		return Color{}, err
	}
	return c, nil
}

// MustParseColor is like ParseColor but panics on error.
// Use this only for known-good literals.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// FromColor converts any image/color value, dropping alpha.
func FromColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{r: uint8(r >> 8), g: uint8(g >> 8), b: uint8(b >> 8)}
}

// R returns the red component.
func (c Color) R() int { return int(c.r) }

// G returns the green component.
func (c Color) G() int { return int(c.g) }

// B returns the blue component.
func (c Color) B() int { return int(c.b) }

// SetR sets the red component, clamping to 0..255.
func (c *Color) SetR(v int) { c.r = uint8(ClampToByte(v)) }

// SetG sets the green component, clamping to 0..255.
func (c *Color) SetG(v int) { c.g = uint8(ClampToByte(v)) }

// SetB sets the blue component, clamping to 0..255.
func (c *Color) SetB(v int) { c.b = uint8(ClampToByte(v)) }

// SetDecimalR parses a decimal integer and stores it clamped as red.
func (c *Color) SetDecimalR(s string) error { return setDecimal(&c.r, s) }

// SetDecimalG parses a decimal integer and stores it clamped as green.
func (c *Color) SetDecimalG(s string) error { return setDecimal(&c.g, s) }

// SetDecimalB parses a decimal integer and stores it clamped as blue.
func (c *Color) SetDecimalB(s string) error { return setDecimal(&c.b, s) }

// HexR returns red as two lowercase hex digits.
func (c Color) HexR() string { return fmt.Sprintf("%02x", c.r) }

// HexG returns green as two lowercase hex digits.
func (c Color) HexG() string { return fmt.Sprintf("%02x", c.g) }

// HexB returns blue as two lowercase hex digits.
func (c Color) HexB() string { return fmt.Sprintf("%02x", c.b) }

// HexUpperR returns red as two uppercase hex digits.
func (c Color) HexUpperR() string { return fmt.Sprintf("%02X", c.r) }

// HexUpperG returns green as two uppercase hex digits.
func (c Color) HexUpperG() string { return fmt.Sprintf("%02X", c.g) }

// HexUpperB returns blue as two uppercase hex digits.
func (c Color) HexUpperB() string { return fmt.Sprintf("%02X", c.b) }

// SetHexR parses a base-16 integer and stores it clamped as red.
func (c *Color) SetHexR(s string) error { return setHexComponent(&c.r, s) }

// SetHexG parses a base-16 integer and stores it clamped as green.
func (c *Color) SetHexG(s string) error { return setHexComponent(&c.g, s) }

// SetHexB parses a base-16 integer and stores it clamped as blue.
func (c *Color) SetHexB(s string) error { return setHexComponent(&c.b, s) }

// Hex returns the colour as "rrggbb".
func (c Color) Hex() string { return fmt.Sprintf("%02x%02x%02x", c.r, c.g, c.b) }

// HexUpper returns the colour as "RRGGBB".
func (c Color) HexUpper() string { return fmt.Sprintf("%02X%02X%02X", c.r, c.g, c.b) }

// HexPrefixed returns the colour as "#rrggbb".
func (c Color) HexPrefixed() string { return "#" + c.Hex() }

// HexUpperPrefixed returns the colour as "#RRGGBB".
func (c Color) HexUpperPrefixed() string { return "#" + c.HexUpper() }

// SetHex replaces all three components from "rgb" or "rrggbb".
// On error the colour is left unchanged.
func (c *Color) SetHex(s string) error {
	v := expandShortHex(s)
	if len(v) != 6 {
		return formatErrorf("expected RRGGBB or RGB hex string but found %q", s)
	}
	var next Color
	for i, dst := range []*uint8{&next.r, &next.g, &next.b} {
		n, err := strconv.ParseUint(v[2*i:2*i+2], 16, 8)
		if err != nil {
			return &FormatError{
				Msg: fmt.Sprintf("invalid hex digits in %q", s),
				Err: err,
			}
		}
		*dst = uint8(n)
	}
	*c = next
	return nil
}

// SetHexPrefixed replaces all three components from "#rgb" or "#rrggbb".
func (c *Color) SetHexPrefixed(s string) error {
	rest, ok := strings.CutPrefix(s, "#")
	if !ok {
		return formatErrorf("expected #RRGGBB string but found %q", s)
	}
	if err := c.SetHex(rest); err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.Msg = fmt.Sprintf("expected #RRGGBB or #RGB hex string but found %q", s)
		}
		return err
	}
	return nil
}

// GPL returns the decimal triple as laid out in .gpl files: "127 255   0".
func (c Color) GPL() string {
	return fmt.Sprintf("%3d %3d %3d", c.r, c.g, c.b)
}

// CSS returns the colour as a CSS rgb() function with sep after each comma.
func (c Color) CSS(sep string) string {
	return fmt.Sprintf("rgb(%d,%s%d,%s%d)", c.r, sep, c.g, sep, c.b)
}

// CSSDefault is CSS with a single space separator.
func (c Color) CSSDefault() string { return c.CSS(" ") }

// Index returns the component at position i (0 red, 1 green, 2 blue).
func (c Color) Index(i int) (int, error) {
	switch i {
	case 0:
		return int(c.r), nil
	case 1:
		return int(c.g), nil
	case 2:
		return int(c.b), nil
	default:
		return 0, &IndexError{Index: i}
	}
}

// Component returns the component named by key: r, g or b in either case.
func (c Color) Component(key string) (int, error) {
	switch key {
	case "r", "R":
		return int(c.r), nil
	case "g", "G":
		return int(c.g), nil
	case "b", "B":
		return int(c.b), nil
	default:
		return 0, &KeyError{Key: key}
	}
}

// Len is always 3.
func (c Color) Len() int { return 3 }

// Components returns red, green and blue in that order.
func (c Color) Components() [3]int {
	return [3]int{int(c.r), int(c.g), int(c.b)}
}

// IsBlack reports whether every component is zero.
func (c Color) IsBlack() bool {
	return c.r == 0 && c.g == 0 && c.b == 0
}

// Hash packs the components into a single integer.
func (c Color) Hash() uint32 {
	return uint32(c.r)<<16 | uint32(c.g)<<8 | uint32(c.b)
}

// HLS returns hue, lightness and saturation, each in [0,1].
// Saturation is exactly 0 for grayscale colours.
func (c Color) HLS() (h, l, s float64) {
	hue, sat, light := colorful.Color{
		R: float64(c.r) / 255,
		G: float64(c.g) / 255,
		B: float64(c.b) / 255,
	}.Hsl()
	return hue / 360, light, sat
}

// RGBA implements image/color.Color. Alpha is always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.r, G: c.g, B: c.b, A: 255}.RGBA()
}

// String returns "#rrggbb".
func (c Color) String() string { return c.HexPrefixed() }

// GoString returns "Color(r, g, b)".
func (c Color) GoString() string {
	return fmt.Sprintf("Color(%d, %d, %d)", c.r, c.g, c.b)
}

func setDecimal(dst *uint8, s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		var ne *strconv.NumError
		if !errors.As(err, &ne) || !errors.Is(ne.Err, strconv.ErrRange) {
			return &FormatError{Msg: fmt.Sprintf("invalid decimal component %q", s), Err: err}
		}
		// Atoi saturates on overflow; clamping the saturated value is correct.
	}
	*dst = uint8(ClampToByte(n))
	return nil
}

func setHexComponent(dst *uint8, s string) error {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 16, 64)
	if err != nil {
		var ne *strconv.NumError
		if !errors.As(err, &ne) || !errors.Is(ne.Err, strconv.ErrRange) {
			return &FormatError{Msg: fmt.Sprintf("invalid hex component %q", s), Err: err}
		}
	}
	if n > 255 {
		n = 255
	}
	*dst = uint8(ClampToByte(int(n)))
	return nil
}

func expandShortHex(s string) string {
	if len(s) != 3 {
		return s
	}
	return string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
}

// NamedColor is a palette entry: a Color with a display name.
type NamedColor struct {
	Color
	Name string
}

// NewNamedColor returns a NamedColor.
func NewNamedColor(name string, c Color) NamedColor {
	return NamedColor{Color: c, Name: name}
}

// GoString returns "NamedColor(r, g, b, name=...)".
func (nc NamedColor) GoString() string {
	return fmt.Sprintf("NamedColor(%d, %d, %d, name=%q)", nc.r, nc.g, nc.b, nc.Name)
}
