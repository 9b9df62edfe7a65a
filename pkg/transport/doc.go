// Package transport opens the outbound connection to a syslog collector.
//
// Three kinds are supported: UDP (one datagram per frame, unterminated),
// TCP and TLS (a single "\n" appended to every frame). A [Dialer] is built
// once from a [Config]; building it validates the configuration and loads all
// TLS material, so a missing certificate or a half-configured client key pair
// fails before any socket is opened. [Dialer.Dial] then opens one [Conn].
//
// # Usage
//
//	d, err := transport.NewDialer(cfg)
//	if err != nil {
//	    return err // ErrConfiguration or ErrNotFound
//	}
//	conn, err := d.Dial(ctx)
//	if err != nil {
//	    return err // ErrConnection
//	}
//	defer conn.Close()
//	_ = conn.Send(frame)
//
// There are no timeouts unless DialTimeout or WriteTimeout is set: a
// collector that stops reading blocks the sender.
package transport
