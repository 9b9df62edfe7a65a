package syslog

import (
	"os"
	"strconv"
	"time"
)

// NilValue is the RFC 5424 NILVALUE used for absent header fields.
const NilValue = "-"

// FieldProvider supplies the host-dependent header fields of a frame.
type FieldProvider interface {
	// Now returns the current instant.
	Now() time.Time

	// Hostname returns the local host name.
	Hostname() string

	// ProcID returns the process identifier as decimal text.
	ProcID() string
}

// SystemFields reads the header fields from the running process.
// The host name is resolved on every call.
type SystemFields struct{}

func (SystemFields) Now() time.Time { return time.Now() }

func (SystemFields) Hostname() string {
	h, err := os.Hostname()
	if err != nil || h == "" {
		return NilValue
	}
	return h
}

func (SystemFields) ProcID() string { return strconv.Itoa(os.Getpid()) }

// StaticFields returns fixed header fields.
type StaticFields struct {
	Time time.Time
	Host string
	PID  string
}

func (s StaticFields) Now() time.Time   { return s.Time }
func (s StaticFields) Hostname() string { return s.Host }
func (s StaticFields) ProcID() string   { return s.PID }
