package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/worldc/expr"
	"github.com/ardnew/worldc/log"
)

// Eval evaluates one arithmetic expression.
type Eval struct {
	Expr   []string           `arg:"" help:"Expression to evaluate; words are joined with spaces." name:"expr"`
	Define map[string]float64 `       help:"Predefine a variable (name=value)."                    placeholder:"NAME=VALUE" short:"D"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src := strings.Join(e.Expr, " ")

	vars := expr.NewContext()
	for name, v := range e.Define {
		vars.Set(name, v)
	}

	v, err := vars.Eval(src)
	if err != nil {
		return ErrEvaluate.With(slog.String("expr", src)).Wrap(err)
	}

	log.TraceContext(ctx, "evaluated",
		slog.String("expr", src),
		slog.Float64("value", v),
	)

	_, err = fmt.Fprintln(stdoutFrom(ctx), formatNumber(v))

	return err
}

func formatNumber(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
