package script

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"

	"github.com/ardnew/worldc/expr"
	"github.com/ardnew/worldc/scene"
	"github.com/ardnew/worldc/turtle"
)

// Compiler applies script commands to one compilation session.
//
// A Compiler is not safe for concurrent use and compiles a single script.
type Compiler struct {
	cfg     config
	session *scene.Session
	vars    *expr.Context
	turtle  *turtle.Turtle
}

// New returns a Compiler with an empty session.
func New(opts ...Option) *Compiler {
	cfg := makeConfig(opts...)

	c := &Compiler{
		cfg:     cfg,
		session: scene.NewSession(scene.WithLogger(cfg.logger)),
		vars:    expr.NewContext(),
	}

	c.turtle = turtle.New(c.session, turtle.WithLogger(cfg.logger))

	for _, v := range cfg.vars {
		c.vars.Set(v.name, v.value)
	}

	return c
}

// Compile parses, applies, and assembles a script.
func Compile(ctx context.Context, src string, opts ...Option) (*scene.Document, error) {
	return New(opts...).Compile(ctx, src)
}

// CompileReader compiles a script read from r.
func CompileReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*scene.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return Compile(ctx, string(data), opts...)
}

// Session returns the compilation session.
func (c *Compiler) Session() *scene.Session { return c.session }

// Context returns the variables of the compilation.
func (c *Compiler) Context() *expr.Context { return c.vars }

// Turtle returns the turtle of the compilation.
func (c *Compiler) Turtle() *turtle.Turtle { return c.turtle }

// Compile parses src, applies every command, resolves attachments, and
// assembles the world document.
func (c *Compiler) Compile(ctx context.Context, src string) (*scene.Document, error) {
	if err := c.Load(ctx, src); err != nil {
		return nil, err
	}

	return c.Assemble(ctx)
}

// Load parses src and applies every command to the session. Load may be called
// once per source, but not after Assemble.
func (c *Compiler) Load(ctx context.Context, src string) error {
	if c.session.Resolved() {
		return scene.ErrResolved
	}

	cmds, err := Parse(ctx, src, WithLogger(c.cfg.logger))
	if err != nil {
		return err
	}

	for _, cmd := range cmds {
		if err := c.Apply(ctx, cmd); err != nil {
			return err
		}
	}

	c.cfg.logger.TraceContext(ctx, "applied commands",
		slog.Int("commands", len(cmds)),
		slog.Int("shapes", len(c.session.Shapes())),
		slog.Int("lights", len(c.session.Lights())),
	)

	return nil
}

// Assemble resolves attachments and assembles the world document from every
// command loaded so far.
func (c *Compiler) Assemble(ctx context.Context) (*scene.Document, error) {
	if !c.session.Resolved() {
		if err := c.session.ResolveAttachments(ctx); err != nil {
			return nil, err
		}
	}

	return c.session.Assemble(ctx, scene.WithGroup(c.cfg.group))
}

// Apply applies one command to the session.
func (c *Compiler) Apply(ctx context.Context, cmd Command) error {
	line := cmd.Pos.Line

	switch cmd.Keyword {
	case KeywordVar:
		v, err := c.number(*cmd.Arg)
		if err != nil {
			return err
		}

		c.vars.Set(cmd.Name, v)

		c.cfg.logger.TraceContext(ctx, "set variable",
			slog.String("name", cmd.Name),
			slog.Float64("value", v),
		)

	case KeywordShape, KeywordDefine:
		return c.applyShape(cmd)

	case KeywordLight:
		return c.applyLight(cmd)

	case KeywordBackground:
		return c.applyContainer(ctx, c.session.Background(), cmd.Params)

	case KeywordShadows:
		return c.applyContainer(ctx, c.session.Shadows(), cmd.Params)

	case KeywordPhysics:
		return c.applyContainer(ctx, c.session.Physics(), cmd.Params)

	case KeywordPenUp:
		c.turtle.PenUp()

	case KeywordPenDown:
		c.turtle.PenDown()

	case KeywordPenShape:
		c.turtle.SetShape(cmd.Arg.Text)

	case KeywordPenColor:
		c.turtle.SetMaterial(cmd.Arg.Text)

	case KeywordMoveTo:
		v, err := c.coerce(*cmd.Arg, scene.KindVector)
		if err != nil {
			return err
		}

		c.turtle.MoveTo(*v.(*scene.Vector3))

	case KeywordPenWidth, KeywordPenHeight, KeywordForward, KeywordUp,
		KeywordTurn, KeywordHeading:
		n, err := c.number(*cmd.Arg)
		if err != nil {
			return err
		}

		return c.applyTurtle(ctx, cmd.Keyword, n, line)

	default:
		return ErrSyntax.
			With(cmd.Pos.attrs()...).
			Wrapf("line %d: unknown statement %q", line, cmd.Keyword)
	}

	return nil
}

func (c *Compiler) applyTurtle(ctx context.Context, keyword string, n float64, line int) error {
	switch keyword {
	case KeywordPenWidth:
		c.turtle.SetWidth(n)
	case KeywordPenHeight:
		c.turtle.SetHeight(n)
	case KeywordForward:
		return c.turtle.Forward(ctx, n, line)
	case KeywordUp:
		return c.turtle.Up(ctx, n, line)
	case KeywordTurn:
		c.turtle.Turn(n)
	case KeywordHeading:
		c.turtle.SetHeading(n)
	}

	return nil
}

func (c *Compiler) applyShape(cmd Command) error {
	var (
		sh  *scene.Shape
		err error
	)

	if cmd.Parent != "" {
		sh, err = c.session.Clone(cmd.Parent, cmd.Pos.Line)
		if err != nil {
			return err
		}
	} else {
		sh = c.session.NewShape(cmd.Pos.Line)
	}

	if cmd.Name != "" {
		err = c.session.Define(sh, cmd.Name, cmd.Keyword == KeywordDefine)
		if err != nil {
			return err
		}
	}

	for _, p := range cmd.Params {
		v, err := c.value(scene.ShapeSchema, p)
		if err != nil {
			return err
		}

		if err := sh.Set(p.Key, v); err != nil {
			return err
		}
	}

	return nil
}

func (c *Compiler) applyLight(cmd Command) error {
	l := c.session.NewLight(cmd.Pos.Line)

	if cmd.Name != "" {
		if err := c.session.NameLight(l, cmd.Name); err != nil {
			return err
		}
	}

	for _, p := range cmd.Params {
		v, err := c.value(scene.LightSchema, p)
		if err != nil {
			return err
		}

		if err := l.Set(p.Key, v); err != nil {
			return err
		}
	}

	return nil
}

// applyContainer stores settings leniently: values of the wrong kind are
// dropped with a warning, but invalid expressions still fail.
func (c *Compiler) applyContainer(
	ctx context.Context,
	ctr *scene.Container,
	params []Param,
) error {
	for _, p := range params {
		v, err := c.value(ctr.Schema(), p)
		if err != nil && !errors.Is(err, scene.ErrInvalidValue) {
			return err
		}

		ctr.Set(ctx, p.Key, v)
	}

	return nil
}

// value coerces a block entry to the kind its key expects. Values of unknown
// keys are passed through as text for the entity to reject.
func (c *Compiler) value(schema scene.Schema, p Param) (scene.Value, error) {
	f, ok := schema.Lookup(p.Key)
	if !ok {
		return scene.String(p.Value.String()), nil
	}

	v, err := c.coerce(p.Value, f.Kind)
	if err != nil {
		return nil, err
	}

	return v, nil
}

// coerce converts a raw value to kind.
func (c *Compiler) coerce(raw Raw, kind scene.Kind) (scene.Value, error) {
	switch {
	case kind == scene.KindNumber && raw.Kind == RawText:
		n, err := c.number(raw)
		if err != nil {
			return nil, err
		}

		return scene.Number(n), nil

	case kind == scene.KindBool && raw.Kind == RawText:
		switch raw.Text {
		case "true":
			return scene.Bool(true), nil
		case "false":
			return scene.Bool(false), nil
		}

		n, err := c.number(raw)
		if err != nil {
			return nil, err
		}

		return scene.Bool(n != 0), nil

	case kind == scene.KindString && (raw.Kind == RawText || raw.Kind == RawString):
		return scene.String(raw.Text), nil

	case kind == scene.KindVector && raw.Kind == RawVector:
		var xyz [3]float64

		for i, e := range raw.Elems {
			n, err := c.number(Raw{Kind: RawText, Text: e, Pos: raw.Pos})
			if err != nil {
				return nil, err
			}

			xyz[i] = n
		}

		return scene.Vec(xyz[0], xyz[1], xyz[2]), nil

	case kind == scene.KindColor && raw.Kind == RawColor:
		return scene.ParseColor(raw.Text)

	case kind == scene.KindColor && raw.Kind == RawVector:
		v, err := c.coerce(raw, scene.KindVector)
		if err != nil {
			return nil, err
		}

		rgb := v.(*scene.Vector3)

		return scene.Color{R: channel(rgb.X), G: channel(rgb.Y), B: channel(rgb.Z)}, nil
	}

	return nil, scene.ErrInvalidValue.
		With(raw.Pos.attrs()...).
		With(slog.String("value", raw.String())).
		Wrapf("line %d: %s is not a %s", raw.Pos.Line, raw, kind)
}

// number evaluates an expression against the compilation's variables.
func (c *Compiler) number(raw Raw) (float64, error) {
	if raw.Kind != RawText {
		return 0, scene.ErrInvalidValue.
			With(raw.Pos.attrs()...).
			Wrapf("line %d: %s is not a number", raw.Pos.Line, raw)
	}

	n, err := c.vars.Eval(raw.Text)
	if err != nil {
		return 0, ErrExpression.
			With(raw.Pos.attrs()...).
			With(slog.String("expression", raw.Text)).
			Wrapf("line %d: %q: %w", raw.Pos.Line, raw.Text, err)
	}

	return n, nil
}

// channel clamps a color component into [0, 255].
func channel(f float64) uint8 {
	return uint8(math.Round(max(0, min(255, f))))
}
