package syslog

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is the RFC 5424 protocol version written in every frame.
const Version = "1"

// TimestampFormat renders the UTC timestamp with millisecond precision.
const TimestampFormat = "2006-01-02T15:04:05.000Z"

const (
	MaxFacility = 23
	MaxSeverity = 7
)

// Header holds the static per-sender header fields.
type Header struct {
	Facility int
	Severity int
	AppName  string
	MsgID    string
}

// Validate checks facility and severity ranges.
func (h Header) Validate() error {
	if h.Facility < 0 || h.Facility > MaxFacility {
		return fmt.Errorf("facility %d out of range 0-%d", h.Facility, MaxFacility)
	}
	if h.Severity < 0 || h.Severity > MaxSeverity {
		return fmt.Errorf("severity %d out of range 0-%d", h.Severity, MaxSeverity)
	}
	return nil
}

// Priority combines facility and severity into the PRI value.
func Priority(facility, severity int) int {
	return facility*8 + severity
}

// Encoder builds RFC 5424 frames.
type Encoder struct {
	header Header
	fields FieldProvider
}

// NewEncoder returns an encoder for header. A nil provider uses SystemFields.
// Empty AppName and MsgID are written as NILVALUE.
func NewEncoder(header Header, fields FieldProvider) *Encoder {
	if fields == nil {
		fields = SystemFields{}
	}
	if header.AppName == "" {
		header.AppName = NilValue
	}
	if header.MsgID == "" {
		header.MsgID = NilValue
	}
	return &Encoder{header: header, fields: fields}
}

// Encode returns the frame for msg. sd is the structured-data content
// without brackets; empty means NILVALUE.
func (e *Encoder) Encode(msg, sd string) []byte {
	sdField := NilValue
	if sd != "" {
		sdField = "[" + sd + "]"
	}

	var b strings.Builder
	b.Grow(64 + len(msg))
	b.WriteByte('<')
	b.WriteString(strconv.Itoa(Priority(e.header.Facility, e.header.Severity)))
	b.WriteByte('>')
	b.WriteString(Version)
	for _, f := range []string{
		e.fields.Now().UTC().Format(TimestampFormat),
		e.fields.Hostname(),
		e.header.AppName,
		e.fields.ProcID(),
		e.header.MsgID,
		sdField,
		msg,
	} {
		b.WriteByte(' ')
		b.WriteString(f)
	}
	return []byte(b.String())
}
