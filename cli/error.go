package cli

import "github.com/ardnew/worldc/pkg"

var (
	// ErrDirectory indicates a required runtime directory could not be created.
	ErrDirectory = pkg.NewError("create directory")
	// ErrConfig indicates a malformed configuration file.
	ErrConfig = pkg.NewError("read configuration")
)
