package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bft-labs/syslogship/pkg/scan"
	"github.com/bft-labs/syslogship/pkg/state"
	"github.com/bft-labs/syslogship/pkg/syslogship"
)

// DefaultEnvFile is the dotenv file read from the working directory.
const DefaultEnvFile = ".env"

// Config holds CLI configuration for syslogship.
type Config struct {
	// Source is the positional file argument, "-" for standard input.
	Source string

	Host     string
	Port     int
	Protocol string
	Facility int
	Severity int
	AppName  string
	MsgID    string
	Delay    time.Duration

	CACert     string
	ClientCert string
	ClientKey  string
	NoVerify   bool

	// Timeout bounds connecting and each write. Zero means none.
	Timeout time.Duration

	Dir       string
	Pattern   string
	StateFile string
	Watch     bool

	LogLevel string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Host:      syslogship.DefaultHost,
		Port:      syslogship.DefaultPort,
		Protocol:  syslogship.DefaultProtocol,
		Facility:  syslogship.DefaultFacility,
		Severity:  syslogship.DefaultSeverity,
		AppName:   syslogship.DefaultAppName,
		Pattern:   scan.DefaultPattern,
		StateFile: state.DefaultFileName,
		LogLevel:  "info",
	}
}

// DirectoryMode reports whether a directory run was requested.
// A directory takes precedence over a positional file.
func (c *Config) DirectoryMode() bool {
	return c.Dir != ""
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Dir == "" && c.Source == "" {
		return fmt.Errorf("a file path, \"-\" or --dir is required")
	}
	if c.Watch && c.Dir == "" {
		return fmt.Errorf("--watch requires --dir")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return c.Shipper().Validate()
}

// Shipper converts the CLI configuration into the library configuration.
func (c *Config) Shipper() syslogship.Config {
	return syslogship.Config{
		Host:               c.Host,
		Port:               c.Port,
		Protocol:           c.Protocol,
		Facility:           c.Facility,
		Severity:           c.Severity,
		AppName:            c.AppName,
		MsgID:              c.MsgID,
		Delay:              c.Delay,
		CAFile:             c.CACert,
		CertFile:           c.ClientCert,
		KeyFile:            c.ClientKey,
		InsecureSkipVerify: c.NoVerify,
		DialTimeout:        c.Timeout,
		WriteTimeout:       c.Timeout,
	}
}

// DirConfig returns the directory run configuration.
func (c *Config) DirConfig() syslogship.DirConfig {
	return syslogship.DirConfig{
		Dir:       c.Dir,
		Pattern:   c.Pattern,
		StateFile: c.StateFile,
	}
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setIntPtr sets an int value from a pointer if not nil and flag not changed.
// Used where zero is a meaningful value, such as facility kern.
func (s *configSetter) setIntPtr(flag string, value *int, dst *int) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setSecondsFromString parses fractional seconds ("0.5") and sets a duration.
func (s *configSetter) setSecondsFromString(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = time.Duration(f * float64(time.Second))
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Zero is accepted. Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" and "yes" as true (case-insensitive), anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = parseBool(value)
}
