package scene

import "log/slog"

// Light is a light source of the world.
type Light struct {
	attrs    map[string]Value
	location *Vector3
	name     string
	line     int
}

// Name returns the light's name.
func (l *Light) Name() string { return l.name }

// Line returns the source line the light was declared on.
func (l *Light) Line() int { return l.line }

// Get returns the value of an attribute.
func (l *Light) Get(key string) (Value, bool) {
	if key == attrLocation {
		return l.location, l.location != nil
	}

	v, ok := l.attrs[key]

	return v, ok
}

// Set validates and stores an attribute. Location is stored as given; every
// other value is copied.
func (l *Light) Set(key string, v Value) error {
	f, ok := LightSchema.Lookup(key)
	if !ok {
		return ErrUnknownAttribute.
			With(slog.String("light", l.name), slog.Int("line", l.line), slog.String("key", key)).
			Wrapf("light %q (line %d): %q", l.name, l.line, key)
	}

	if v == nil || v.Kind() != f.Kind {
		return ErrInvalidValue.
			With(slog.String("light", l.name), slog.Int("line", l.line), slog.String("key", key)).
			Wrapf("light %q (line %d): %s requires a %s", l.name, l.line, key, f.Kind)
	}

	if key == attrLocation {
		l.location = v.(*Vector3)

		return nil
	}

	l.attrs[key] = v.Clone()

	return nil
}

// Document returns the serialized light.
func (l *Light) Document() (*Document, error) {
	if l.location == nil {
		return nil, ErrMissingLocation.
			With(slog.String("light", l.name), slog.Int("line", l.line)).
			Wrapf("light %q (line %d)", l.name, l.line)
	}

	doc := NewDocument()

	for _, f := range LightSchema {
		if v, ok := l.Get(f.Key); ok {
			doc.Set(f.Out, f.encode(v))
		}
	}

	return doc, nil
}
