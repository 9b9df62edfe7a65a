package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Host       string `toml:"host"`
	Port       int    `toml:"port"`
	Protocol   string `toml:"protocol"`
	Facility   *int   `toml:"facility"`
	Severity   *int   `toml:"severity"`
	AppName    string `toml:"app_name"`
	MsgID      string `toml:"msgid"`
	Delay      string `toml:"delay"`
	CACert     string `toml:"ca_cert"`
	ClientCert string `toml:"client_cert"`
	ClientKey  string `toml:"client_key"`
	NoVerify   *bool  `toml:"no_verify"`
	Timeout    string `toml:"timeout"`
	Dir        string `toml:"dir"`
	Pattern    string `toml:"pattern"`
	StateFile  string `toml:"state_file"`
	Watch      *bool  `toml:"watch"`
	LogLevel   string `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.syslogship/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".syslogship", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("host", fc.Host, &cfg.Host)
	s.setInt("port", fc.Port, &cfg.Port)
	s.setString("protocol", fc.Protocol, &cfg.Protocol)
	s.setIntPtr("facility", fc.Facility, &cfg.Facility)
	s.setIntPtr("severity", fc.Severity, &cfg.Severity)
	s.setString("app-name", fc.AppName, &cfg.AppName)
	s.setString("msgid", fc.MsgID, &cfg.MsgID)
	s.setString("ca-cert", fc.CACert, &cfg.CACert)
	s.setString("client-cert", fc.ClientCert, &cfg.ClientCert)
	s.setString("client-key", fc.ClientKey, &cfg.ClientKey)
	s.setString("dir", fc.Dir, &cfg.Dir)
	s.setString("pattern", fc.Pattern, &cfg.Pattern)
	s.setString("state-file", fc.StateFile, &cfg.StateFile)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("delay", fc.Delay, &cfg.Delay); err != nil {
		return err
	}
	if err := s.setDuration("timeout", fc.Timeout, &cfg.Timeout); err != nil {
		return err
	}

	s.setBool("no-verify", fc.NoVerify, &cfg.NoVerify)
	s.setBool("watch", fc.Watch, &cfg.Watch)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
