package syslogship

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/bft-labs/syslogship/pkg/jsonline"
	"github.com/bft-labs/syslogship/pkg/syslog"
	"github.com/bft-labs/syslogship/pkg/transport"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Session is one open connection for sending individual messages.
// It is not safe for concurrent use.
type Session struct {
	conn    transport.Conn
	encoder *syslog.Encoder
}

// Open dials the collector. Errors wrap ErrConnection.
func (s *Shipper) Open(ctx context.Context) (*Session, error) {
	conn, err := s.dialer.Dial(ctx)
	if err != nil {
		return nil, err
	}
	return &Session{conn: conn, encoder: s.encoder}, nil
}

// Send sends msg verbatim. sd, when not empty, is written as the
// structured-data element without its surrounding brackets.
func (s *Session) Send(msg, sd string) error {
	return s.conn.Send(s.encoder.Encode(msg, sd))
}

// SendJSON sends v encoded as canonical single-line JSON. A non-empty
// message is sent instead of the encoded value.
func (s *Session) SendJSON(v any, message string) error {
	if message != "" {
		return s.Send(message, "")
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	body, err := jsonline.Canonicalize(raw)
	if err != nil {
		return err
	}
	return s.Send(body, "")
}

// Close closes the connection. It is safe to call more than once.
func (s *Session) Close() error {
	return s.conn.Close()
}
