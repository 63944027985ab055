package scene

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func sampleWorld(t *testing.T) *Document {
	t.Helper()

	s := NewSession()
	placed(t, s, "base", map[string]Value{"type": String("cube"), "mass": Number(2)})
	placed(t, s, "knob", map[string]Value{"type": String("sphere"), "attachto": String("base")})

	l := s.NewLight(1)
	if err := l.Set("location", Vec(0, 0, 5)); err != nil {
		t.Fatal(err)
	}

	if err := l.Set("color", Color{R: 255, G: 255, B: 255}); err != nil {
		t.Fatal(err)
	}

	s.Shadows().Set(t.Context(), "enabled", Bool(true))

	if err := s.ResolveAttachments(t.Context()); err != nil {
		t.Fatal(err)
	}

	world, err := s.Assemble(t.Context())
	if err != nil {
		t.Fatal(err)
	}

	return world
}

// assertOrder fails unless every needle occurs in out, in order.
func assertOrder(t *testing.T, out string, needles ...string) {
	t.Helper()

	pos := 0

	for _, n := range needles {
		i := strings.Index(out[pos:], n)
		if i < 0 {
			t.Fatalf("%q missing or out of order in:\n%s", n, out)
		}

		pos += i + len(n)
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		format Format
		order  []string
		absent []string
	}{
		{
			format: FormatYAML,
			order: []string{
				"Background:", "Shadows:", "Enabled: true", "Physics:", "Lights:",
				"light1:", "Location:", "Color:", "#ffffff", "Objects:", "base:",
				"Model: Cube", "Mass:", "Components:", "Model: Sphere",
			},
			absent: []string{"knob:"},
		},
		{
			format: FormatJSON,
			order: []string{
				"{", "Background", "Shadows", "Physics", "Lights", "light1",
				"Objects", "base", "Components", "Sphere", "}",
			},
			absent: []string{"knob"},
		},
		{
			format: FormatPlist,
			order: []string{
				"<plist version=\"1.0\">", "<key>Background</key>", "<key>Lights</key>",
				"<key>Location</key>", "<real>5</real>", "<key>Objects</key>",
				"<key>Mass</key>", "<real>2</real>", "<key>Components</key>",
				"<string>Sphere</string>", "</plist>",
			},
			absent: []string{"<key>knob</key>"},
		},
	}

	world := sampleWorld(t)

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			var buf bytes.Buffer

			if err := Encode(t.Context(), &buf, world, tt.format, 2); err != nil {
				t.Fatalf("Encode() error: %v", err)
			}

			out := buf.String()
			assertOrder(t, out, tt.order...)

			for _, a := range tt.absent {
				if strings.Contains(out, a) {
					t.Errorf("output contains %q:\n%s", a, out)
				}
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range Formats() {
		f, err := ParseFormat(strings.ToUpper(name))
		if err != nil {
			t.Errorf("ParseFormat(%q) error: %v", name, err)
		}

		if f.String() != name {
			t.Errorf("ParseFormat(%q) = %v", name, f)
		}
	}

	if _, err := ParseFormat("toml"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("ParseFormat(toml) error = %v, want %v", err, ErrInvalidFormat)
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#FF8000")
	if err != nil {
		t.Fatal(err)
	}

	if c != (Color{R: 255, G: 128}) || c.Hex() != "#ff8000" {
		t.Errorf("ParseColor() = %v (%s)", c, c.Hex())
	}

	for _, bad := range []string{"ff8000", "#ff80", "#gg0000"} {
		if _, err := ParseColor(bad); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("ParseColor(%q) error = %v, want %v", bad, err, ErrInvalidValue)
		}
	}
}
