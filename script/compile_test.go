package script

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/worldc/expr"
	"github.com/ardnew/worldc/log"
	"github.com/ardnew/worldc/scene"
)

func quiet() Option { return WithLogger(log.Make(nil)) }

func compile(t *testing.T, src string, opts ...Option) *scene.Document {
	t.Helper()

	doc, err := Compile(t.Context(), src, append([]Option{quiet()}, opts...)...)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	return doc
}

func lookup(t *testing.T, doc *scene.Document, path ...string) any {
	t.Helper()

	var v any = doc

	for _, key := range path {
		d, ok := v.(*scene.Document)
		if !ok {
			t.Fatalf("%v: %T is not a document", path, v)
		}

		if v, ok = d.Get(key); !ok {
			t.Fatalf("%v: missing %q in %v", path, key, d.Keys())
		}
	}

	return v
}

func TestCompile_World(t *testing.T) {
	doc := compile(t, `
var w = 10
define post { type: cylinder; scale: [1, 1, w]; location: [0, 0, 0] }
shape gate : post { location: [w/2, 0, 0] }
shape knob { type: sphere; location: [0, 0, w]; attachto: gate }
light sun { location: [0, 0, 500]; color: #ffffe0 }
background { color: #000020; tiling: 4 }
`)

	if keys := doc.Keys(); !slices.Equal(keys, []string{"Background", "Shadows", "Physics", "Lights", "Objects"}) {
		t.Fatalf("keys = %v", keys)
	}

	objects := lookup(t, doc, "Objects").(*scene.Document)
	if keys := objects.Keys(); !slices.Equal(keys, []string{"gate"}) {
		t.Fatalf("objects = %v", keys)
	}

	if loc := lookup(t, doc, "Objects", "gate", "Location"); !slices.Equal(loc.([]float64), []float64{5, 0, 0}) {
		t.Errorf("gate location = %v", loc)
	}

	if model := lookup(t, doc, "Objects", "gate", "Model"); model != "Cylinder" {
		t.Errorf("gate model = %v", model)
	}

	if scale := lookup(t, doc, "Objects", "gate", "CollisionModelScale"); !slices.Equal(scale.([]float64), []float64{1, 1, 10}) {
		t.Errorf("gate collision scale = %v", scale)
	}

	components := lookup(t, doc, "Objects", "gate", "Components").(*scene.Components)
	if components.Len() != 1 {
		t.Fatalf("gate components = %d, want 1", components.Len())
	}

	if model, _ := components.Items()[0].Get("Model"); model != "Sphere" {
		t.Errorf("component model = %v", model)
	}

	if color := lookup(t, doc, "Lights", "sun", "Color"); color != "#ffffe0" {
		t.Errorf("light color = %v", color)
	}

	if tiling := lookup(t, doc, "Background", "Tiling"); tiling != 4 {
		t.Errorf("tiling = %#v", tiling)
	}
}

func TestCompile_Turtle(t *testing.T) {
	doc := compile(t, `
penwidth 10
penheight 0.01
pencolor Red
pendown
forward 10
forward 10
penup
forward 5
turn 90
pendown
forward 2
`)

	objects := lookup(t, doc, "Objects").(*scene.Document)
	if keys := objects.Keys(); !slices.Equal(keys, []string{"shape1", "shape2", "shape3"}) {
		t.Fatalf("objects = %v", keys)
	}

	if loc := lookup(t, doc, "Objects", "shape2", "Location"); !slices.Equal(loc.([]float64), []float64{15, 0, 0}) {
		t.Errorf("shape2 location = %v", loc)
	}

	if mat := lookup(t, doc, "Objects", "shape1", "Material"); mat != "Red" {
		t.Errorf("material = %v", mat)
	}

	loc := lookup(t, doc, "Objects", "shape3", "Location").([]float64)
	if loc[0] != 25 || loc[1] < 0.999 || loc[1] > 1.001 {
		t.Errorf("shape3 location = %v", loc)
	}
}

func TestCompile_Variables(t *testing.T) {
	doc := compile(t, "shape { location: [x, x*2, pi - pi] }", WithVariable("x", 3))

	loc := lookup(t, doc, "Objects", "shape1", "Location")
	if !slices.Equal(loc.([]float64), []float64{3, 6, 0}) {
		t.Fatalf("location = %v", loc)
	}
}

func TestCompile_Group(t *testing.T) {
	src := `
shape a { location: [0,0,0]; group: walls }
shape b { location: [0,0,0] }
`

	objects := lookup(t, compile(t, src, WithGroup("walls")), "Objects").(*scene.Document)
	if keys := objects.Keys(); !slices.Equal(keys, []string{"a"}) {
		t.Fatalf("objects = %v", keys)
	}
}

func TestCompile_LenientContainers(t *testing.T) {
	var buf bytes.Buffer

	logger := log.Make(&buf, log.WithPretty(false), log.WithTimeLayout("none"))

	doc, err := Compile(t.Context(),
		"shadows { enabled: true; fog: 3; color: 12 }",
		WithLogger(logger))
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	shadows := lookup(t, doc, "Shadows").(*scene.Document)
	if keys := shadows.Keys(); !slices.Equal(keys, []string{"Enabled"}) {
		t.Fatalf("shadows = %v", keys)
	}

	out := buf.String()
	if !strings.Contains(out, "key=fog") || !strings.Contains(out, "key=color") {
		t.Fatalf("warnings = %q", out)
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []error
	}{
		{
			"unknown attribute",
			"shape { location: [0,0,0]; weight: 4 }",
			[]error{scene.ErrUnknownAttribute, scene.ErrUserScript},
		},
		{
			"wrong kind",
			"shape { location: 4 }",
			[]error{scene.ErrInvalidValue},
		},
		{
			"undefined variable",
			"shape { location: [0,0,0]; mass: heavy }",
			[]error{ErrExpression, expr.ErrUndefinedVariable, expr.ErrEval},
		},
		{
			"bad expression in container",
			"physics { gravity: 1 + }",
			[]error{ErrExpression, expr.ErrNotEnoughOperands},
		},
		{
			"duplicate attach",
			"shape a { location: [0,0,0] }\nshape { location: [0,0,0]; attachto: a; attachto: a }",
			[]error{scene.ErrDuplicateAttach},
		},
		{
			"undefined attach target",
			"shape { location: [0,0,0]; attachto: nowhere }",
			[]error{scene.ErrUndefinedTarget},
		},
		{
			"undefined template",
			"shape : nothing { location: [0,0,0] }",
			[]error{scene.ErrUndefinedTemplate},
		},
		{
			"missing location",
			"shape { type: cube }",
			[]error{scene.ErrMissingLocation},
		},
		{
			"duplicate name",
			"shape a { location: [0,0,0] }\nshape a { location: [0,0,0] }",
			[]error{scene.ErrDuplicateName},
		},
		{
			"syntax",
			"shape {",
			[]error{ErrSyntax},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Compile(t.Context(), tt.src, quiet())
			if doc != nil {
				t.Error("Compile() returned a document with an error")
			}

			for _, want := range tt.want {
				if !errors.Is(err, want) {
					t.Errorf("Compile() error = %v, want %v", err, want)
				}
			}
		})
	}
}

func TestCompile_Encode(t *testing.T) {
	doc := compile(t, "shape box { type: cube; location: [1, 2, 3]; mass: 2.5 }")

	var buf bytes.Buffer
	if err := scene.Encode(t.Context(), &buf, doc, scene.FormatYAML, 2); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Objects:", "box:", "Model: Cube", "Mass: 2.5"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCompileReader(t *testing.T) {
	doc, err := CompileReader(t.Context(), strings.NewReader("light { location: [0,0,1] }"), quiet())
	if err != nil {
		t.Fatalf("CompileReader() error: %v", err)
	}

	if lights := lookup(t, doc, "Lights").(*scene.Document); lights.Len() != 1 {
		t.Fatalf("lights = %v", lights.Keys())
	}
}

func TestCompiler_LoadAssemble(t *testing.T) {
	c := New(quiet())

	if err := c.Load(t.Context(), "var h = 4\nshape base { location: [0,0,h] }"); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if err := c.Load(t.Context(), "shape lamp { location: [0,0,h*2]; attachto: base }"); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	doc, err := c.Assemble(t.Context())
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}

	loc := lookup(t, doc, "Objects", "base", "Location")
	if !slices.Equal(loc.([]float64), []float64{0, 0, 4}) {
		t.Fatalf("base location = %v", loc)
	}

	if v, ok := c.Context().Get("h"); !ok || v != 4 {
		t.Fatalf("h = %v, %v", v, ok)
	}
}

func TestCompiler_LoadAfterAssemble(t *testing.T) {
	c := New(quiet())

	if err := c.Load(t.Context(), "shape base { location: [0,0,0] }"); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	first, err := c.Assemble(t.Context())
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}

	err = c.Load(t.Context(), "shape lamp { location: [0,0,1]; attachto: base }")
	if !errors.Is(err, scene.ErrResolved) {
		t.Fatalf("Load() after Assemble error = %v, want %v", err, scene.ErrResolved)
	}

	again, err := c.Assemble(t.Context())
	if err != nil {
		t.Fatalf("second Assemble() error: %v", err)
	}

	if got, want := lookup(t, again, "Objects").(*scene.Document).Keys(),
		lookup(t, first, "Objects").(*scene.Document).Keys(); !slices.Equal(got, want) {
		t.Errorf("objects = %v, want %v", got, want)
	}
}
