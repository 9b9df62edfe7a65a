package ports

import (
	"context"

	"github.com/bft-labs/syslogship/pkg/transport"
)

// Conn sends frames over one open connection.
// Send applies the transport's framing. Close is idempotent.
type Conn = transport.Conn

// Dialer opens connections to the collector.
// *transport.Dialer satisfies this interface.
type Dialer interface {
	// Dial opens a fresh connection. Failures wrap domain.ErrConnection.
	Dial(ctx context.Context) (Conn, error)
}
