package scene

import (
	"context"
	"log/slog"

	"github.com/ardnew/worldc/log"
)

// Container is a flat group of environment settings.
//
// Unlike shapes and lights, a container does not fail on unknown keys or
// mismatched values; it logs a warning and ignores them.
type Container struct {
	logger log.Logger
	vals   map[string]Value
	name   string
	schema Schema
}

func newContainer(name string, schema Schema, logger log.Logger) *Container {
	return &Container{
		logger: logger,
		vals:   map[string]Value{},
		name:   name,
		schema: schema,
	}
}

// Name returns the container's document key.
func (c *Container) Name() string { return c.name }

// Schema returns the settings the container accepts.
func (c *Container) Schema() Schema { return c.schema }

// Set stores a setting. It reports whether the value was accepted.
func (c *Container) Set(ctx context.Context, key string, v Value) bool {
	f, ok := c.schema.Lookup(key)
	if !ok {
		c.logger.WarnContext(ctx, "ignoring unknown setting",
			slog.String("container", c.name),
			slog.String("key", key),
		)

		return false
	}

	if v == nil || v.Kind() != f.Kind {
		c.logger.WarnContext(ctx, "ignoring invalid setting",
			slog.String("container", c.name),
			slog.String("key", key),
			slog.String("want", f.Kind.String()),
		)

		return false
	}

	c.vals[key] = v.Clone()

	return true
}

// Get returns a setting.
func (c *Container) Get(key string) (Value, bool) {
	v, ok := c.vals[key]

	return v, ok
}

// Document returns the settings in schema order.
func (c *Container) Document() *Document {
	doc := NewDocument()

	for _, f := range c.schema {
		if v, ok := c.vals[f.Key]; ok {
			doc.Set(f.Out, f.encode(v))
		}
	}

	return doc
}
