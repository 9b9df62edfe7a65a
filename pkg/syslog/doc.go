// Package syslog encodes RFC 5424 syslog messages.
//
// A frame has the layout
//
//	<PRI>1 TIMESTAMP HOSTNAME APP-NAME PROCID MSGID SD MSG
//
// where PRI is facility*8+severity and TIMESTAMP is UTC with millisecond
// precision. The message body is placed verbatim: it is neither escaped nor
// truncated, and the frame carries no trailing terminator. Transport-specific
// framing is applied by package transport.
//
// Hostname, process id and clock are read through a [FieldProvider] on every
// call so tests can substitute fixed values.
package syslog
