// Package cli contains the command line interface for worldc.
//
// # Usage
//
//	worldc [flags] [build] [SOURCE ...]   # compile to stdout (default command)
//	worldc check SOURCE ...               # compile, report errors only
//	worldc eval EXPR ...                  # evaluate an arithmetic expression
//	worldc repl                           # interactive expression evaluator
//	worldc init [--force]                 # write the configuration file
//
// A SOURCE of "-", or no SOURCE at all, reads standard input.
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration directory
// ($XDG_CONFIG_HOME/worldc on Linux). Keys name flags; nested mappings join
// with hyphens, so these are equivalent:
//
//	log-level: debug
//
//	log:
//	  level: debug
//
// Command-line flags override configuration values. worldc init writes the
// current global flags to the file.
//
// # Logging Options
//
//   - --log-level: minimum level (trace, debug, info, warn, error)
//   - --log-format: output format (text, json)
//   - --log-time-layout: timestamp layout (Go layout, constant name, or none)
//   - --[no-]log-caller: include the source location
//   - --[no-]log-pretty: colorize output
//
// Logs are written to standard error; standard output carries documents.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: profiling mode (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: profile output directory (default: the pprof directory
//     under the user cache directory)
package cli
