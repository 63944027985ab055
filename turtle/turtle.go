package turtle

import (
	"context"
	"log/slog"
	"math"

	"github.com/ardnew/worldc/log"
	"github.com/ardnew/worldc/scene"
)

// Pen describes the shapes emitted by a moving turtle.
type Pen struct {
	Down     bool
	Shape    string
	Material string // omitted when empty
	Width    float64
	Height   float64
}

// DefaultPen is the pen of a new turtle.
var DefaultPen = Pen{Shape: "cube", Width: 1, Height: 1}

// Turtle is a cursor with a heading in the XY plane.
type Turtle struct {
	session *scene.Session
	logger  log.Logger
	pos     scene.Vector3
	heading float64 // radians
	pen     Pen
}

// Option configures a [Turtle].
type Option func(*Turtle)

// WithLogger sets the logger used to trace emitted shapes.
func WithLogger(logger log.Logger) Option {
	return func(t *Turtle) { t.logger = logger }
}

// WithPen sets the initial pen.
func WithPen(pen Pen) Option {
	return func(t *Turtle) { t.pen = pen }
}

// New returns a turtle at the origin that emits shapes into session.
func New(session *scene.Session, opts ...Option) *Turtle {
	t := &Turtle{session: session, logger: log.Default(), pen: DefaultPen}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Position returns a copy of the current position.
func (t *Turtle) Position() scene.Vector3 { return t.pos }

// Heading returns the current heading in radians.
func (t *Turtle) Heading() float64 { return t.heading }

// Pen returns the current pen.
func (t *Turtle) Pen() Pen { return t.pen }

func (t *Turtle) PenUp()                   { t.pen.Down = false }
func (t *Turtle) PenDown()                 { t.pen.Down = true }
func (t *Turtle) SetShape(shape string)    { t.pen.Shape = shape }
func (t *Turtle) SetMaterial(mat string)   { t.pen.Material = mat }
func (t *Turtle) SetWidth(width float64)   { t.pen.Width = width }
func (t *Turtle) SetHeight(height float64) { t.pen.Height = height }

// Turn rotates the heading by deg degrees.
func (t *Turtle) Turn(deg float64) { t.heading += deg * math.Pi / 180 }

// SetHeading sets the heading to deg degrees.
func (t *Turtle) SetHeading(deg float64) { t.heading = deg * math.Pi / 180 }

// MoveTo moves the turtle without drawing.
func (t *Turtle) MoveTo(pos scene.Vector3) { t.pos = pos }

// Forward moves d units along the heading. With the pen down it emits a
// shape scaled (d, width, height) centered on the path.
func (t *Turtle) Forward(ctx context.Context, d float64, line int) error {
	from := t.pos
	t.pos.X += d * math.Cos(t.heading)
	t.pos.Y += d * math.Sin(t.heading)

	if !t.pen.Down {
		return nil
	}

	return t.emit(ctx, from, scene.Vec(d, t.pen.Width, t.pen.Height), line)
}

// Up moves d units along the Z axis. With the pen down it emits a shape
// scaled (width, height, d) centered on the path.
func (t *Turtle) Up(ctx context.Context, d float64, line int) error {
	from := t.pos
	t.pos.Z += d

	if !t.pen.Down {
		return nil
	}

	return t.emit(ctx, from, scene.Vec(t.pen.Width, t.pen.Height, d), line)
}

// Orientation returns the single-axis rotation of shapes emitted at the
// current heading.
func (t *Turtle) Orientation() *scene.Vector3 {
	n := math.Mod(t.heading, 2*math.Pi)
	if n < 0 {
		n += 2 * math.Pi
	}

	s := math.Sin(n / 2)
	if n > math.Pi {
		s = -s
	}

	return scene.Vec(0, 0, s)
}

type attr struct {
	key string
	val scene.Value
}

func (t *Turtle) emit(
	ctx context.Context,
	from scene.Vector3,
	scale *scene.Vector3,
	line int,
) error {
	mid := scene.Vec(
		(from.X+t.pos.X)/2,
		(from.Y+t.pos.Y)/2,
		(from.Z+t.pos.Z)/2,
	)

	sh := t.session.NewShape(line)

	attrs := []attr{
		{"type", scene.String(t.pen.Shape)},
		{"location", mid},
		{"scale", scale},
		{"orientation", t.Orientation()},
	}

	if t.pen.Material != "" {
		attrs = append(attrs, attr{"material", scene.String(t.pen.Material)})
	}

	for _, a := range attrs {
		if err := sh.Set(a.key, a.val); err != nil {
			return err
		}
	}

	t.logger.TraceContext(ctx, "turtle emitted shape",
		slog.String("shape", sh.Name()),
		slog.String("location", mid.String()),
		slog.String("scale", scale.String()),
		slog.Int("line", line),
	)

	return nil
}
