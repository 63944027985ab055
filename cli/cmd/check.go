package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/worldc/log"
)

// Check compiles world scripts and reports errors without writing a document.
type Check struct {
	ScriptFlags
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	doc, err := c.compile(ctx)
	if err != nil {
		return err
	}

	objects := 0
	if d := doc.Document("Objects"); d != nil {
		objects = d.Len()
	}

	log.InfoContext(ctx, "check passed",
		slog.Int("objects", objects),
		slog.Int("sections", doc.Len()),
	)

	return nil
}
