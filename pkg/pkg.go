//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the module version printed by --version.
var Version = strings.TrimSpace(version)

const (
	// Name identifies the command in help text and in the configuration and
	// cache directory names.
	Name = "worldc"
	// Description is the one-line summary shown in help output.
	Description = "Mirage world compiler"
)
