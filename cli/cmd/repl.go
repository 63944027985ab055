package cmd

import (
	"context"

	"github.com/ardnew/worldc/cli/cmd/repl"
	"github.com/ardnew/worldc/expr"
	"github.com/ardnew/worldc/log"
)

// Repl starts an interactive expression evaluator.
type Repl struct {
	Define    map[string]float64 `help:"Predefine a variable (name=value)." placeholder:"NAME=VALUE" short:"D"`
	NoHistory bool               `help:"Do not read or write the history file."`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	vars := expr.NewContext()
	for name, v := range r.Define {
		vars.Set(name, v)
	}

	var cacheDir string

	if ktx := kongContextFrom(ctx); ktx != nil && !r.NoHistory {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, vars, cacheDir, log.Default())
}
