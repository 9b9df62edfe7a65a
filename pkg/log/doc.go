// Package log provides the logging abstraction used by syslogship components.
//
// The core never requires a logging sink: skipped lines, failed sends and
// failed state writes are reported through outcome reports, and the Logger
// only gives operators visibility into them. The library defaults to
// [NoopLogger]; the CLI wires a zerolog console logger.
//
// # Usage
//
//	logger := log.NewZerologAdapterWithLogger(log.NewConsoleLogger(os.Stderr, zerolog.InfoLevel))
//	logger.Info("batch done", log.Int("files", 3))
//
// Implement [Logger] to route messages into an existing logging setup.
package log
