package scene

import "github.com/ardnew/worldc/pkg"

// Predefined errors (sentinel values).
var (
	// ErrUserScript is the class of every error caused by script content.
	ErrUserScript = pkg.NewError("script error")

	ErrUnknownAttribute  = ErrUserScript.Derive("unknown attribute")
	ErrInvalidValue      = ErrUserScript.Derive("invalid attribute value")
	ErrDuplicateAttach   = ErrUserScript.Derive("attachto already set")
	ErrDuplicateName     = ErrUserScript.Derive("name already defined")
	ErrMissingLocation   = ErrUserScript.Derive("missing location")
	ErrUndefinedTarget   = ErrUserScript.Derive("undefined attach target")
	ErrUndefinedTemplate = ErrUserScript.Derive("undefined template")
	ErrCyclicComponents  = ErrUserScript.Derive("components contain themselves")

	ErrInvalidFormat = pkg.NewError("invalid format")
	ErrEncode        = pkg.NewError("encode document")

	// ErrInternal signals a defect, never a script problem.
	ErrInternal   = pkg.NewError("internal scene error")
	ErrUnresolved = ErrInternal.Derive("attachments not resolved")
	ErrResolved   = ErrInternal.Derive("attachments already resolved")
)
