// Package cmd implements the worldc subcommands.
//
// Each command is a kong command struct with a Run(context.Context) method.
// The kong.Context of the invocation is carried on the context.Context with
// [WithContext]; commands read kong variables and standard output from it.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)
