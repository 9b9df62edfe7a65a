package domain

import "errors"

// Domain errors represent error conditions in the syslogship domain.
// These errors are wrapped with context and can be checked with errors.Is.
var (
	// ErrConfiguration is returned for invalid sender configuration, such as a
	// client certificate supplied without its key. No socket is opened.
	ErrConfiguration = errors.New("syslogship: invalid configuration")

	// ErrNotFound is returned when a CA, client certificate or key file does
	// not exist. It is detected before any socket is opened.
	ErrNotFound = errors.New("syslogship: file not found")

	// ErrConnection is returned when connecting to the collector or
	// completing the TLS handshake fails.
	ErrConnection = errors.New("syslogship: connection failed")

	// ErrCorruptState is returned when the watermark state file cannot be
	// read or parsed. Callers treat it as "no watermark".
	ErrCorruptState = errors.New("syslogship: unreadable state")
)

// IsFatal reports whether err must stop a whole run rather than a single file.
func IsFatal(err error) bool {
	return errors.Is(err, ErrConfiguration) || errors.Is(err, ErrNotFound)
}
