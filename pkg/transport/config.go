package transport

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// Kind selects the transport protocol.
type Kind string

const (
	KindUDP Kind = "udp"
	KindTCP Kind = "tcp"
	KindTLS Kind = "tls"
)

// ParseKind parses a protocol name case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindUDP, KindTCP, KindTLS:
		return k, nil
	default:
		return "", fmt.Errorf("unknown protocol %q (want udp, tcp or tls)", s)
	}
}

// Stream reports whether frames are newline-terminated on this kind.
func (k Kind) Stream() bool {
	return k == KindTCP || k == KindTLS
}

// TLSConfig holds the TLS material. Paths are read when the Dialer is built.
type TLSConfig struct {
	// CAFile, when set, is the only trust anchor. Hostname verification stays on.
	CAFile string

	// CertFile and KeyFile enable mutual TLS. Both or neither must be set.
	CertFile string
	KeyFile  string

	// InsecureSkipVerify accepts any server certificate. Ignored when CAFile is set.
	InsecureSkipVerify bool
}

// Config describes the collector endpoint.
type Config struct {
	Host string
	Port int
	Kind Kind
	TLS  TLSConfig

	// DialTimeout bounds connection setup including the TLS handshake. Zero
	// means no timeout.
	DialTimeout time.Duration

	// WriteTimeout bounds each Send. Zero means no timeout.
	WriteTimeout time.Duration
}

// Address returns host:port.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate checks the endpoint and the client key pair invariant.
func (c Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("%w: host is required", ErrConfiguration)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range 1-65535", ErrConfiguration, c.Port)
	}
	if _, err := ParseKind(string(c.Kind)); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		return fmt.Errorf("%w: client certificate and key must be set together", ErrConfiguration)
	}
	if c.DialTimeout < 0 || c.WriteTimeout < 0 {
		return fmt.Errorf("%w: timeouts must not be negative", ErrConfiguration)
	}
	return nil
}
