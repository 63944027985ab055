// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Loggers are values. Configuration is applied at creation time with
// functional options and never mutated afterward; [Logger.Wrap] derives a
// reconfigured copy.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("kitchen"),
//		log.WithFormat(log.FormatJSON))
//
//	logger.Info("compiled", slog.Int("shapes", n))
//
// Attributes are typed [slog.Attr] values rather than alternating key/value
// arguments.
//
// # Levels
//
// In addition to the four [log/slog] levels, [LevelTrace] sits below
// [LevelDebug] and is used for per-statement diagnostics.
//
// # Output
//
// [FormatText] and [FormatJSON] select the slog handler. With [WithPretty]
// enabled (the default) both formats are rendered by a colorizing handler
// that degrades to plain text when the output is not a terminal.
//
// Package-level functions such as [Info] and [Config] operate on a default
// logger writing to [DefaultOutput].
package log
