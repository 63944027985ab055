package scene

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/ardnew/worldc/log"
)

// Session holds every entity of one compilation.
//
// A Session is not safe for concurrent use.
type Session struct {
	logger     log.Logger
	defines    map[string]*Shape
	lightNames map[string]*Light
	background *Container
	shadows    *Container
	physics    *Container
	shapes     []*Shape
	lights     []*Light
	shapeSeq   int
	lightSeq   int
	resolved   bool
}

// Option configures a [Session].
type Option func(*Session)

// WithLogger sets the logger used for warnings and tracing.
// The default is [log.Default].
func WithLogger(logger log.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// NewSession returns an empty session.
func NewSession(opts ...Option) *Session {
	s := &Session{
		logger:     log.Default(),
		defines:    map[string]*Shape{},
		lightNames: map[string]*Light{},
	}

	for _, opt := range opts {
		opt(s)
	}

	s.background = newContainer("Background", BackgroundSchema, s.logger)
	s.shadows = newContainer("Shadows", ShadowsSchema, s.logger)
	s.physics = newContainer("Physics", PhysicsSchema, s.logger)

	return s
}

// Background returns the background settings.
func (s *Session) Background() *Container { return s.background }

// Shadows returns the shadow settings.
func (s *Session) Shadows() *Container { return s.shadows }

// Physics returns the physics settings.
func (s *Session) Physics() *Container { return s.physics }

// Shapes returns every shape in creation order.
func (s *Session) Shapes() []*Shape { return append([]*Shape(nil), s.shapes...) }

// Lights returns every light in creation order.
func (s *Session) Lights() []*Light { return append([]*Light(nil), s.lights...) }

// NewShape creates a shape with the next sequential name.
func (s *Session) NewShape(line int) *Shape {
	s.shapeSeq++

	sh := newShape("shape"+strconv.Itoa(s.shapeSeq), line)
	s.shapes = append(s.shapes, sh)

	return sh
}

// NewLight creates a light with the next sequential name.
func (s *Session) NewLight(line int) *Light {
	s.lightSeq++

	l := &Light{
		attrs: map[string]Value{},
		name:  "light" + strconv.Itoa(s.lightSeq),
		line:  line,
	}
	s.lights = append(s.lights, l)
	s.lightNames[l.name] = l

	return l
}

// Define names a shape and registers it as a template and attach target.
// A template is never emitted at the top level.
func (s *Session) Define(sh *Shape, name string, template bool) error {
	if other, ok := s.defines[name]; ok && other != sh {
		return ErrDuplicateName.
			With(slog.String("name", name), slog.Int("line", sh.line)).
			Wrapf("%q (line %d) first defined on line %d", name, sh.line, other.line)
	}

	sh.name = name
	sh.template = template
	s.defines[name] = sh

	return nil
}

// NameLight renames a light.
func (s *Session) NameLight(l *Light, name string) error {
	if other, ok := s.lightNames[name]; ok && other != l {
		return ErrDuplicateName.
			With(slog.String("name", name), slog.Int("line", l.line)).
			Wrapf("light %q (line %d) first defined on line %d", name, l.line, other.line)
	}

	delete(s.lightNames, l.name)
	l.name = name
	s.lightNames[name] = l

	return nil
}

// Lookup returns the defined shape with the given name.
func (s *Session) Lookup(name string) (*Shape, bool) {
	sh, ok := s.defines[name]

	return sh, ok
}

// Clone creates a shape from a defined template.
//
// The clone's parent is the template. The template's attach target and
// attachment list are copied, its groups and attributes are applied with
// [Shape.Set], and its location is deep-copied.
func (s *Session) Clone(template string, line int) (*Shape, error) {
	t, ok := s.defines[template]
	if !ok {
		return nil, ErrUndefinedTemplate.
			With(slog.String("template", template), slog.Int("line", line)).
			Wrapf("%q (line %d)", template, line)
	}

	c := s.NewShape(line)
	c.parent = t.name
	c.attachTo = t.attachTo
	c.attached = append([]*Shape(nil), t.attached...)

	for _, g := range t.groups {
		if err := c.Set(attrGroup, String(g)); err != nil {
			return nil, err
		}
	}

	for _, f := range ShapeSchema {
		v, ok := t.attrs[f.Key]
		if !ok {
			continue
		}

		if err := c.Set(f.Key, v); err != nil {
			return nil, err
		}
	}

	if t.location != nil {
		c.location = t.location.Copy()
	}

	return c, nil
}

// ResolveAttachments appends every shape with an attach target to that
// target's attachment list. It must run once, after every command has been
// applied and before any shape is serialized. A second call fails with
// [ErrResolved].
func (s *Session) ResolveAttachments(ctx context.Context) error {
	if s.resolved {
		return ErrResolved
	}

	for _, sh := range s.shapes {
		if sh.attachTo == "" {
			continue
		}

		target, ok := s.defines[sh.attachTo]
		if !ok {
			return ErrUndefinedTarget.
				With(sh.logAttrs()...).
				With(slog.String("target", sh.attachTo)).
				Wrapf("shape %q (line %d): %q", sh.name, sh.line, sh.attachTo)
		}

		target.attached = append(target.attached, sh)

		s.logger.TraceContext(ctx, "attached shape",
			slog.String("shape", sh.name),
			slog.String("target", target.name),
		)
	}

	s.resolved = true

	return nil
}

// Resolved reports whether attachments have been resolved.
func (s *Session) Resolved() bool { return s.resolved }
