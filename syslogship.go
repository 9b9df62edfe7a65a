// Package syslogship forwards JSON Lines records to a syslog collector as
// RFC 5424 messages over UDP, TCP or TLS.
//
// Example usage:
//
//	cfg := syslogship.DefaultConfig()
//	cfg.Host = "collector.internal"
//	cfg.Protocol = "tls"
//	cfg.CAFile = "/etc/ssl/collector-ca.pem"
//	s, err := syslogship.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := s.RunDirectory(ctx, syslogship.DirConfig{Dir: "/var/log/app"})
//
// This package re-exports github.com/bft-labs/syslogship/pkg/syslogship.
package syslogship

import (
	"github.com/bft-labs/syslogship/pkg/syslogship"
)

// Config describes the collector and the header of every message.
type Config = syslogship.Config

// DirConfig selects the files of a directory run.
type DirConfig = syslogship.DirConfig

// Shipper forwards JSONL sources to one collector.
type Shipper = syslogship.Shipper

// Session is one open connection for sending individual messages.
type Session = syslogship.Session

// Option configures optional behavior of a Shipper.
type Option = syslogship.Option

// FileReport and BatchReport summarize what a run sent and skipped.
type (
	FileReport  = syslogship.FileReport
	BatchReport = syslogship.BatchReport
)

// Errors returned by New and the send operations.
var (
	ErrConfiguration = syslogship.ErrConfiguration
	ErrNotFound      = syslogship.ErrNotFound
	ErrConnection    = syslogship.ErrConnection
)

// New validates cfg and loads its TLS material. No socket is opened.
func New(cfg Config, opts ...Option) (*Shipper, error) {
	return syslogship.New(cfg, opts...)
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return syslogship.DefaultConfig()
}

// WithLogger sets a custom logger for structured logging.
func WithLogger(logger syslogship.Logger) Option {
	return syslogship.WithLogger(logger)
}
