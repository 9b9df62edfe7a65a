package syslogship

import (
	"io"

	"github.com/bft-labs/syslogship/pkg/log"
	"github.com/bft-labs/syslogship/pkg/syslog"
)

// Logger is the interface for structured logging.
type Logger = log.Logger

// LogField represents a structured log field.
type LogField = log.Field

// FieldProvider supplies the per-message timestamp, hostname and process ID.
type FieldProvider = syslog.FieldProvider

// Option configures optional behavior of a Shipper.
type Option func(*options)

// options holds the optional configuration for a Shipper instance.
type options struct {
	logger  Logger
	fields  FieldProvider
	stdin   io.Reader
	onBatch func(BatchReport, error)
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
		fields: syslog.SystemFields{},
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithFieldProvider overrides the source of timestamps, hostname and PID.
func WithFieldProvider(fields FieldProvider) Option {
	return func(o *options) {
		if fields != nil {
			o.fields = fields
		}
	}
}

// WithStdin sets the reader used for the "-" source. Defaults to os.Stdin.
func WithStdin(r io.Reader) Option {
	return func(o *options) {
		o.stdin = r
	}
}

// WithBatchHandler registers a callback that receives the report of every
// batch Watch runs. It is called from the watcher goroutine.
func WithBatchHandler(fn func(BatchReport, error)) Option {
	return func(o *options) {
		o.onBatch = fn
	}
}
