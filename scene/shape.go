package scene

import (
	"log/slog"
	"slices"
)

// Default groups of every new shape.
const (
	GroupAll  = "all"
	GroupReal = "real"
)

// Shape is a physical object of the world.
type Shape struct {
	attrs    map[string]Value
	location *Vector3
	doc      *Document // cached serialization
	name     string
	parent   string // template name
	attachTo string
	attached []*Shape
	groups   []string
	line     int
	template bool
}

func newShape(name string, line int) *Shape {
	return &Shape{
		attrs:  map[string]Value{},
		name:   name,
		line:   line,
		groups: []string{GroupAll, GroupReal},
	}
}

// Name returns the shape's name.
func (s *Shape) Name() string { return s.name }

// Line returns the source line the shape was declared on.
func (s *Shape) Line() int { return s.line }

// Parent returns the name of the template the shape was cloned from.
func (s *Shape) Parent() string { return s.parent }

// AttachTo returns the name of the shape this one is nested in.
func (s *Shape) AttachTo() string { return s.attachTo }

// Attached returns the shapes nested in this one.
func (s *Shape) Attached() []*Shape { return slices.Clone(s.attached) }

// Groups returns the shape's groups.
func (s *Shape) Groups() []string { return slices.Clone(s.groups) }

// InGroup reports whether the shape belongs to group.
func (s *Shape) InGroup(group string) bool { return slices.Contains(s.groups, group) }

// Template reports whether the shape is a define that is never emitted at
// the top level.
func (s *Shape) Template() bool { return s.template }

// Location returns the shape's location, or nil if unset.
func (s *Shape) Location() *Vector3 { return s.location }

// Get returns the value of an attribute.
func (s *Shape) Get(key string) (Value, bool) {
	if key == attrLocation {
		return s.location, s.location != nil
	}

	v, ok := s.attrs[key]

	return v, ok
}

// Serialized reports whether the shape's document has been cached.
func (s *Shape) Serialized() bool { return s.doc != nil }

// Collision reports whether the shape emits a collision model.
func (s *Shape) Collision() bool {
	if v, ok := s.attrs[attrCollision].(Bool); ok {
		return bool(v)
	}

	return true
}

// Set validates and stores an attribute.
//
// A group is appended to the shape's groups. The attach target may only be
// set once. Location and mass are stored as given; every other value is
// copied.
func (s *Shape) Set(key string, v Value) error {
	f, ok := ShapeSchema.Lookup(key)
	if !ok {
		return ErrUnknownAttribute.
			With(s.logAttrs()...).
			With(slog.String("key", key)).
			Wrapf("shape %q (line %d): %q", s.name, s.line, key)
	}

	if v == nil || v.Kind() != f.Kind {
		return ErrInvalidValue.
			With(s.logAttrs()...).
			With(slog.String("key", key)).
			Wrapf("shape %q (line %d): %s requires a %s", s.name, s.line, key, f.Kind)
	}

	switch key {
	case attrAttachTo:
		if s.attachTo != "" {
			return ErrDuplicateAttach.
				With(s.logAttrs()...).
				Wrapf("shape %q (line %d): already attached to %q", s.name, s.line, s.attachTo)
		}

		s.attachTo = string(v.(String))

	case attrGroup:
		if g := string(v.(String)); !slices.Contains(s.groups, g) {
			s.groups = append(s.groups, g)
		}

	case attrLocation:
		s.location = v.(*Vector3)

	case attrMass:
		s.attrs[key] = v

	default:
		s.attrs[key] = v.Clone()
	}

	return nil
}

// logAttrs returns the logging attributes identifying the shape.
func (s *Shape) logAttrs() []slog.Attr {
	return []slog.Attr{slog.String("shape", s.name), slog.Int("line", s.line)}
}
