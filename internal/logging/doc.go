// Package logging provides structured logging for nikit.
//
// Records are JSON objects produced by log/slog. A [Logger] carries
// persistent attributes that are attached to every record it writes, so a
// command can tag everything it logs with its name and the path it is
// working on:
//
//	logger := logging.NewWriterLogger(os.Stderr, "WARN")
//	cmdLogger := logger.WithCommand("write").WithPath("/out/package.json")
//	cmdLogger.Warn("safe write failed", "error", err.Error())
//
// Output:
//
//	{"time":"...","level":"WARN","msg":"safe write failed","command":"write","path":"/out/package.json","error":"..."}
//
// When the logging.dir config key is set, [NewLogger] appends to
// {dir}/nikit.log instead of stderr. Call Close when done.
//
// # Log Levels
//
//   - [LevelDebug]: every temp file acquisition and rename
//   - [LevelInfo]: command-level progress
//   - [LevelWarn]: recoverable failures (default for the CLI)
//   - [LevelError]: failures that end a command
//
// Use [ValidLevels] to get the list of valid level strings, and [ParseLevel]
// to normalize user-provided level strings.
//
// # Testing
//
// Use [NopLogger] to discard all output.
package logging
