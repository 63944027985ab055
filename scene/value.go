package scene

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a [Value].
type Kind int

const (
	KindNumber Kind = iota
	KindBool
	KindString
	KindVector
	KindColor
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindString:
		return "string"
	case KindVector:
		return "vector"
	case KindColor:
		return "color"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a typed attribute value.
type Value interface {
	Kind() Kind
	// Clone returns a copy that shares no mutable state with the receiver.
	Clone() Value
	// Native returns the value as encoded in a [Document].
	Native() any
}

type (
	// Number is a numeric attribute value.
	Number float64
	// Bool is a boolean attribute value.
	Bool bool
	// String is a textual attribute value.
	String string
)

func (Number) Kind() Kind { return KindNumber }
func (n Number) Clone() Value { return n }
func (n Number) Native() any { return float64(n) }
func (Bool) Kind() Kind { return KindBool }
func (b Bool) Clone() Value { return b }
func (b Bool) Native() any { return bool(b) }
func (String) Kind() Kind { return KindString }
func (s String) Clone() Value { return s }
func (s String) Native() any { return string(s) }

// Vector3 is a point or direction in world space.
type Vector3 struct {
	X, Y, Z float64
}

// Vec returns a new vector.
func Vec(x, y, z float64) *Vector3 { return &Vector3{X: x, Y: y, Z: z} }

func (*Vector3) Kind() Kind { return KindVector }

// Clone returns a copy of the vector.
func (v *Vector3) Clone() Value { return v.Copy() }

// Native returns the vector as a 3-element array.
func (v *Vector3) Native() any { return v.Array() }

// Copy returns a copy of the vector.
func (v *Vector3) Copy() *Vector3 {
	c := *v

	return &c
}

// Translate moves the vector in place by d.
func (v *Vector3) Translate(d Vector3) *Vector3 {
	v.X += d.X
	v.Y += d.Y
	v.Z += d.Z

	return v
}

// Array returns the components as a 3-element slice.
func (v *Vector3) Array() []float64 { return []float64{v.X, v.Y, v.Z} }

// String returns the vector formatted as [x, y, z].
func (v *Vector3) String() string {
	return fmt.Sprintf("[%g, %g, %g]", v.X, v.Y, v.Z)
}

// Color is an 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

func (Color) Kind() Kind { return KindColor }
func (c Color) Clone() Value { return c }
func (c Color) Native() any { return c.Hex() }

// Hex returns the color formatted as #rrggbb.
func (c Color) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// ParseColor parses a #rrggbb color.
func ParseColor(s string) (Color, error) {
	hex, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok || len(hex) != 6 {
		return Color{}, ErrInvalidValue.Wrapf("color %q: want #rrggbb", s)
	}

	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, ErrInvalidValue.Wrapf("color %q: %w", s, err)
	}

	return Color{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}, nil
}

// capitalize upper-cases the first letter of s and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
