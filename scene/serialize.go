package scene

import "log/slog"

// Serialize returns the document of a shape, computing it on first use.
//
// The first result is cached and returned unchanged by every later call.
// An empty placeholder is cached before the shape's template and attached
// shapes are serialized, so a reference cycle yields the placeholder instead
// of recursing forever.
func (s *Session) Serialize(sh *Shape) (*Document, error) {
	if sh.doc != nil {
		return sh.doc, nil
	}

	sh.doc = NewDocument()

	if sh.location == nil {
		return nil, ErrMissingLocation.
			With(sh.logAttrs()...).
			Wrapf("shape %q (line %d)", sh.name, sh.line)
	}

	doc := NewDocument()
	doc.Set(keyLocation, sh.location.Array())

	for _, key := range []string{"orientation", "pointat", "kinematics", "centerofmass"} {
		copyAttr(doc, sh, key)
	}

	if sh.Collision() {
		model, ok := sh.attrs["cmodel"]
		if !ok {
			model, ok = sh.attrs["model"]
		}

		if !ok {
			model, ok = sh.modelType()
		}

		if ok {
			doc.Set("CollisionModel", model.Native())
		}

		for _, pair := range [][2]string{
			{"cmoffset", "moffset"},
			{"cmrotation", "mrotation"},
			{"cmscale", "scale"},
		} {
			f, _ := ShapeSchema.Lookup(pair[0])

			v, ok := sh.attrs[pair[0]]
			if !ok {
				v, ok = sh.attrs[pair[1]]
			}

			if ok {
				doc.Set(f.Out, v.Native())
			}
		}
	}

	model, ok := sh.attrs["model"]
	if !ok {
		model, ok = sh.modelType()
	}

	if ok {
		doc.Set("Model", model.Native())
	}

	for _, key := range []string{"moffset", "mrotation", "scale", attrMass, "material", "visible", "frictionforce"} {
		copyAttr(doc, sh, key)
	}

	components := new(Components)

	if sh.parent != "" {
		parent, ok := s.defines[sh.parent]
		if !ok {
			return nil, ErrUndefinedTemplate.
				With(sh.logAttrs()...).
				Wrapf("shape %q (line %d): %q", sh.name, sh.line, sh.parent)
		}

		pdoc, err := s.Serialize(parent)
		if err != nil {
			return nil, err
		}

		if c := pdoc.Components(); c != nil {
			components = c
		}
	}

	for _, child := range sh.attached {
		cdoc, err := s.Serialize(child)
		if err != nil {
			return nil, err
		}

		if cdoc.contains(components, map[*Document]bool{}) {
			return nil, ErrCyclicComponents.
				With(sh.logAttrs()...).
				With(slog.String("component", child.name)).
				Wrapf("shape %q (line %d): %q", sh.name, sh.line, child.name)
		}

		components.Append(cdoc)
	}

	doc.Set(keyComponents, components)

	sh.doc = doc

	return doc, nil
}

// copyAttr stores a shape attribute in doc under its output key, if set.
func copyAttr(doc *Document, sh *Shape, key string) {
	v, ok := sh.attrs[key]
	if !ok {
		return
	}

	f, _ := ShapeSchema.Lookup(key)
	doc.Set(f.Out, f.encode(v))
}

// modelType returns the capitalized shape type used when no model is set.
func (s *Shape) modelType() (Value, bool) {
	t, ok := s.attrs[attrType].(String)
	if !ok {
		return nil, false
	}

	return String(capitalize(string(t))), true
}
