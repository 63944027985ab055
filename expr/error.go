package expr

import "github.com/ardnew/worldc/pkg"

// Predefined errors (sentinel values).
var (
	// ErrEval is the class of every expression evaluation failure.
	ErrEval = pkg.NewError("expression evaluation failed")

	ErrEmpty             = ErrEval.Derive("empty expression")
	ErrMismatchedParens  = ErrEval.Derive("mismatched parentheses")
	ErrMissingOperand    = ErrEval.Derive("unmatched unary operator")
	ErrNotEnoughOperands = ErrEval.Derive("not enough operands")
	ErrTooManyValues     = ErrEval.Derive("too many values")
	ErrUnknownSymbol     = ErrEval.Derive("unknown symbol")
	ErrUndefinedVariable = ErrEval.Derive("undefined variable")

	// ErrInternal signals an unreachable evaluator state.
	ErrInternal = pkg.NewError("internal expression error")
)
