package script

import (
	"errors"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/ardnew/worldc/scene"
)

func TestParse_Statements(t *testing.T) {
	src := `# a world
var w = 2 * 5
define post { type: cylinder; scale: [1, 1, w] }
shape gate : post {
	location: [w/2, 0, 0]   // centered
	color_name: "dark, grey"
}
light { location: [0,0,10], color: #FFee00 }
physics { gravity: -9.8 }
/* turtle */
pendown; forward (w)
moveto [1, 2, 3]
`

	cmds, err := Parse(t.Context(), src)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	var keywords []string
	for _, c := range cmds {
		keywords = append(keywords, c.Keyword)
	}

	want := []string{"var", "define", "shape", "light", "physics", "pendown", "forward", "moveto"}
	if !slices.Equal(keywords, want) {
		t.Fatalf("keywords = %v, want %v", keywords, want)
	}

	if c := cmds[0]; c.Name != "w" || c.Arg.Text != "2 * 5" || c.Pos.Line != 2 {
		t.Errorf("var = %+v", c)
	}

	if c := cmds[2]; c.Name != "gate" || c.Parent != "post" || len(c.Params) != 2 {
		t.Fatalf("shape = %+v", c)
	}

	loc := cmds[2].Params[0]
	if loc.Key != "location" || loc.Value.Kind != RawVector ||
		!slices.Equal(loc.Value.Elems, []string{"w/2", "0", "0"}) || loc.Pos.Line != 5 {
		t.Errorf("location = %+v", loc)
	}

	if str := cmds[2].Params[1].Value; str.Kind != RawString || str.Text != "dark, grey" {
		t.Errorf("string = %+v", str)
	}

	light := cmds[3].Params
	if len(light) != 2 || light[1].Value.Kind != RawColor || light[1].Value.Text != "#FFee00" {
		t.Errorf("light = %+v", light)
	}

	if arg := cmds[6].Arg; arg.Text != "(w)" {
		t.Errorf("forward arg = %+v", arg)
	}

	if arg := cmds[7].Arg; arg.Kind != RawVector || arg.String() != "[1, 2, 3]" {
		t.Errorf("moveto arg = %+v", arg)
	}
}

func TestParse_KeysAreCaseInsensitive(t *testing.T) {
	cmds, err := Parse(t.Context(), "shape { Location: [0,0,0] }")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if key := cmds[0].Params[0].Key; key != "location" {
		t.Fatalf("key = %q", key)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		line     int
		expected string
	}{
		{"unknown keyword", "\njump 3", 2, `"jump"`},
		{"define without name", "define { }", 1, "template name"},
		{"missing brace", "shape box\n", 2, `"{"`},
		{"unterminated block", "shape { type: cube", 1, `"}"`},
		{"missing colon", "shape { type cube }", 1, `":"`},
		{"short vector", "shape { scale: [1, 2] }", 1, "three vector components"},
		{"bad color", "light { color: #12345 }", 1, "color"},
		{"unterminated string", `shape { kinematics: "arm }`, 1, "terminated string"},
		{"missing value", "forward\n", 1, "value"},
		{"var without equals", "var x 3", 1, `"="`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(t.Context(), tt.src)
			if !errors.Is(err, ErrSyntax) {
				t.Fatalf("Parse() error = %v, want ErrSyntax", err)
			}

			if !errors.Is(err, scene.ErrUserScript) {
				t.Errorf("syntax error is not a script error: %v", err)
			}

			msg := err.Error()
			if !strings.Contains(msg, tt.expected) {
				t.Errorf("error %q does not mention %q", msg, tt.expected)
			}

			if !strings.Contains(msg, "line "+strconv.Itoa(tt.line)) {
				t.Errorf("error %q does not name line %d", msg, tt.line)
			}
		})
	}
}

func TestParse_ErrorSnippet(t *testing.T) {
	_, err := Parse(t.Context(), "penup\nshape { type cube }")
	if err == nil {
		t.Fatal("Parse() succeeded")
	}

	want := "  2 | shape { type cube }\n" +
		strings.Repeat(" ", 19) + "^"
	if !strings.HasSuffix(err.Error(), want) {
		t.Fatalf("error = %q, want suffix %q", err.Error(), want)
	}
}
