package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
)

// Dialer opens connections for one validated Config.
// It is safe to Dial repeatedly; every call opens a fresh connection.
type Dialer struct {
	cfg    Config
	tlsCfg *tls.Config
	net    net.Dialer
}

// NewDialer validates cfg and loads TLS material. It never touches the network.
func NewDialer(cfg Config) (*Dialer, error) {
	kind, err := ParseKind(string(cfg.Kind))
	if err == nil {
		cfg.Kind = kind
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d := &Dialer{
		cfg: cfg,
		net: net.Dialer{Timeout: cfg.DialTimeout},
	}
	if cfg.Kind == KindTLS {
		tlsCfg, err := buildTLSConfig(cfg.Host, cfg.TLS)
		if err != nil {
			return nil, err
		}
		d.tlsCfg = tlsCfg
	}
	return d, nil
}

// Dial opens one connection. Any failure is wrapped in ErrConnection and
// leaves no open socket behind.
func (d *Dialer) Dial(ctx context.Context) (Conn, error) {
	var (
		c   Conn
		err error
	)
	switch {
	case !d.cfg.Kind.Stream():
		c, err = d.dialUDP(ctx)
	case d.cfg.Kind == KindTLS:
		c, err = d.dialTLS(ctx)
	default:
		c, err = d.dialTCP(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("%w (%s %s): %v", ErrConnection, d.cfg.Kind, d.cfg.Address(), err)
	}
	return c, nil
}

func (d *Dialer) dialUDP(ctx context.Context) (Conn, error) {
	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, d.cfg.Host)
	if err != nil {
		return nil, err
	}
	ip, ok := preferIPv4(addrs)
	if !ok {
		return nil, fmt.Errorf("no address for %s", d.cfg.Host)
	}
	raddr := &net.UDPAddr{IP: ip.IP, Port: d.cfg.Port, Zone: ip.Zone}
	network := "udp6"
	if raddr.IP.To4() != nil {
		network = "udp4"
	}
	pc, err := net.ListenUDP(network, nil)
	if err != nil {
		return nil, err
	}
	return newDatagramConn(pc, raddr, d.cfg.WriteTimeout), nil
}

// preferIPv4 picks the first IPv4 address, falling back to the first one.
func preferIPv4(addrs []net.IPAddr) (net.IPAddr, bool) {
	for _, a := range addrs {
		if a.IP.To4() != nil {
			return a, true
		}
	}
	if len(addrs) == 0 {
		return net.IPAddr{}, false
	}
	return addrs[0], true
}

func (d *Dialer) dialTCP(ctx context.Context) (Conn, error) {
	nc, err := d.net.DialContext(ctx, "tcp", d.cfg.Address())
	if err != nil {
		return nil, err
	}
	return newStreamConn(nc, d.cfg.WriteTimeout), nil
}

func (d *Dialer) dialTLS(ctx context.Context) (Conn, error) {
	hsCtx := ctx
	if d.cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		hsCtx, cancel = context.WithTimeout(ctx, d.cfg.DialTimeout)
		defer cancel()
	}

	raw, err := d.net.DialContext(hsCtx, "tcp", d.cfg.Address())
	if err != nil {
		return nil, err
	}
	tc := tls.Client(raw, d.tlsCfg.Clone())
	if err := tc.HandshakeContext(hsCtx); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}
	return newStreamConn(tc, d.cfg.WriteTimeout), nil
}
