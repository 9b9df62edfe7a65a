package syslogship

import (
	"fmt"
	"time"

	"github.com/bft-labs/syslogship/pkg/scan"
	"github.com/bft-labs/syslogship/pkg/state"
	"github.com/bft-labs/syslogship/pkg/syslog"
	"github.com/bft-labs/syslogship/pkg/transport"
)

// Defaults.
const (
	DefaultHost     = "localhost"
	DefaultPort     = 5140
	DefaultProtocol = "tcp"
	DefaultFacility = 16 // local0
	DefaultSeverity = 6  // informational
	DefaultAppName  = "jsonl-over-syslog"
)

// Config describes the collector and the header of every message.
// Use DefaultConfig() to get a Config with the standard defaults.
type Config struct {
	Host     string
	Port     int
	Protocol string // udp, tcp or tls

	Facility int
	Severity int
	AppName  string
	MsgID    string

	// Delay is slept after every attempted send.
	Delay time.Duration

	// TLS material. CertFile and KeyFile must be set together.
	CAFile   string
	CertFile string
	KeyFile  string
	// InsecureSkipVerify accepts any server certificate when CAFile is empty.
	// The zero value verifies against the system roots.
	InsecureSkipVerify bool

	// Zero means no timeout.
	DialTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Host:     DefaultHost,
		Port:     DefaultPort,
		Protocol: DefaultProtocol,
		Facility: DefaultFacility,
		Severity: DefaultSeverity,
		AppName:  DefaultAppName,
	}
}

// Validate checks the configuration for errors.
// Every error wraps ErrConfiguration.
func (c Config) Validate() error {
	if err := c.header().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if c.Delay < 0 {
		return fmt.Errorf("%w: delay must not be negative", ErrConfiguration)
	}
	tc, err := c.transportConfig()
	if err != nil {
		return err
	}
	return tc.Validate()
}

func (c Config) header() syslog.Header {
	return syslog.Header{
		Facility: c.Facility,
		Severity: c.Severity,
		AppName:  c.AppName,
		MsgID:    c.MsgID,
	}
}

func (c Config) transportConfig() (transport.Config, error) {
	kind, err := transport.ParseKind(c.Protocol)
	if err != nil {
		return transport.Config{}, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return transport.Config{
		Host: c.Host,
		Port: c.Port,
		Kind: kind,
		TLS: transport.TLSConfig{
			CAFile:             c.CAFile,
			CertFile:           c.CertFile,
			KeyFile:            c.KeyFile,
			InsecureSkipVerify: c.InsecureSkipVerify,
		},
		DialTimeout:  c.DialTimeout,
		WriteTimeout: c.WriteTimeout,
	}, nil
}

// DirConfig selects the files of a directory run.
type DirConfig struct {
	Dir string

	// Pattern is matched against file names. Defaults to "*.jsonl".
	Pattern string

	// StateFile holds the watermark. Defaults to ".last_run".
	StateFile string

	// Debounce is the quiet period Watch waits for after file events.
	Debounce time.Duration
}

// SetDefaults fills in empty optional fields.
func (c *DirConfig) SetDefaults() {
	if c.Pattern == "" {
		c.Pattern = scan.DefaultPattern
	}
	if c.StateFile == "" {
		c.StateFile = state.DefaultFileName
	}
}

// Validate checks the directory configuration for errors.
func (c DirConfig) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("%w: directory is required", ErrConfiguration)
	}
	if _, err := scan.Compile(c.Pattern); err != nil {
		return fmt.Errorf("%w: pattern %q: %v", ErrConfiguration, c.Pattern, err)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("%w: debounce must not be negative", ErrConfiguration)
	}
	return nil
}
