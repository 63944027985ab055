package repl

import "github.com/ardnew/worldc/pkg"

// Sentinel errors.
var (
	ErrOutOfBounds = pkg.NewError("index out of range")
	ErrHistory     = pkg.NewError("history file")
	ErrAssign      = pkg.NewError("invalid assignment")
)
