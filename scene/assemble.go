package scene

import (
	"context"
	"log/slog"
)

// Top-level document keys in output order.
const (
	KeyBackground = "Background"
	KeyShadows    = "Shadows"
	KeyPhysics    = "Physics"
	KeyLights     = "Lights"
	KeyObjects    = "Objects"
)

type assembleConfig struct {
	group string
}

// AssembleOption configures [Session.Assemble].
type AssembleOption func(assembleConfig) assembleConfig

// WithGroup restricts the top-level objects to shapes in group.
func WithGroup(group string) AssembleOption {
	return func(c assembleConfig) assembleConfig {
		if group != "" {
			c.group = group
		}

		return c
	}
}

// Assemble serializes the session into the world document.
//
// Objects holds only shapes that are neither attached to another shape nor
// templates; attached shapes appear in their target's Components instead.
func (s *Session) Assemble(
	ctx context.Context,
	opts ...AssembleOption,
) (*Document, error) {
	if !s.resolved {
		return nil, ErrUnresolved
	}

	cfg := assembleConfig{group: GroupAll}
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	world := NewDocument()
	world.Set(KeyBackground, s.background.Document())
	world.Set(KeyShadows, s.shadows.Document())
	world.Set(KeyPhysics, s.physics.Document())

	lights := NewDocument()

	for _, l := range s.lights {
		doc, err := l.Document()
		if err != nil {
			return nil, err
		}

		lights.Set(l.name, doc)
	}

	world.Set(KeyLights, lights)

	objects := NewDocument()

	for _, sh := range s.shapes {
		if sh.attachTo != "" || sh.template || !sh.InGroup(cfg.group) {
			continue
		}

		doc, err := s.Serialize(sh)
		if err != nil {
			return nil, err
		}

		objects.Set(sh.name, doc)
	}

	world.Set(KeyObjects, objects)

	s.logger.DebugContext(ctx, "assembled world",
		slog.Int("lights", lights.Len()),
		slog.Int("objects", objects.Len()),
		slog.String("group", cfg.group),
	)

	return world, nil
}
