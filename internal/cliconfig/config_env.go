package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables.
// The SYSLOG_* names are read first and the SYSLOGSHIP_* names override them.
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	if err := applySyslogEnv(cfg, changed); err != nil {
		return err
	}
	return applySyslogshipEnv(cfg, changed)
}

// applySyslogEnv reads the variable names used by earlier jsonl-over-syslog
// deployments. SYSLOG_DELAY is in (fractional) seconds.
func applySyslogEnv(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("host", os.Getenv("SYSLOG_HOST"), &cfg.Host)
	s.setString("protocol", os.Getenv("SYSLOG_PROTOCOL"), &cfg.Protocol)
	s.setString("app-name", os.Getenv("SYSLOG_APP_NAME"), &cfg.AppName)
	s.setString("ca-cert", os.Getenv("SYSLOG_CA_CERT"), &cfg.CACert)
	s.setString("client-cert", os.Getenv("SYSLOG_CLIENT_CERT"), &cfg.ClientCert)
	s.setString("client-key", os.Getenv("SYSLOG_CLIENT_KEY"), &cfg.ClientKey)
	s.setString("dir", os.Getenv("SYSLOG_DIR"), &cfg.Dir)
	s.setString("pattern", os.Getenv("SYSLOG_PATTERN"), &cfg.Pattern)
	s.setString("state-file", os.Getenv("SYSLOG_STATE_FILE"), &cfg.StateFile)

	if err := s.setIntFromString("port", os.Getenv("SYSLOG_PORT"), &cfg.Port); err != nil {
		return err
	}
	if err := s.setIntFromString("facility", os.Getenv("SYSLOG_FACILITY"), &cfg.Facility); err != nil {
		return err
	}
	if err := s.setIntFromString("severity", os.Getenv("SYSLOG_SEVERITY"), &cfg.Severity); err != nil {
		return err
	}
	if err := s.setSecondsFromString("delay", os.Getenv("SYSLOG_DELAY"), &cfg.Delay); err != nil {
		return err
	}

	s.setBoolFromString("no-verify", os.Getenv("SYSLOG_NO_VERIFY"), &cfg.NoVerify)

	return nil
}

func applySyslogshipEnv(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("host", os.Getenv("SYSLOGSHIP_HOST"), &cfg.Host)
	s.setString("protocol", os.Getenv("SYSLOGSHIP_PROTOCOL"), &cfg.Protocol)
	s.setString("app-name", os.Getenv("SYSLOGSHIP_APP_NAME"), &cfg.AppName)
	s.setString("msgid", os.Getenv("SYSLOGSHIP_MSGID"), &cfg.MsgID)
	s.setString("ca-cert", os.Getenv("SYSLOGSHIP_CA_CERT"), &cfg.CACert)
	s.setString("client-cert", os.Getenv("SYSLOGSHIP_CLIENT_CERT"), &cfg.ClientCert)
	s.setString("client-key", os.Getenv("SYSLOGSHIP_CLIENT_KEY"), &cfg.ClientKey)
	s.setString("dir", os.Getenv("SYSLOGSHIP_DIR"), &cfg.Dir)
	s.setString("pattern", os.Getenv("SYSLOGSHIP_PATTERN"), &cfg.Pattern)
	s.setString("state-file", os.Getenv("SYSLOGSHIP_STATE_FILE"), &cfg.StateFile)
	s.setString("log-level", os.Getenv("SYSLOGSHIP_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setIntFromString("port", os.Getenv("SYSLOGSHIP_PORT"), &cfg.Port); err != nil {
		return err
	}
	if err := s.setIntFromString("facility", os.Getenv("SYSLOGSHIP_FACILITY"), &cfg.Facility); err != nil {
		return err
	}
	if err := s.setIntFromString("severity", os.Getenv("SYSLOGSHIP_SEVERITY"), &cfg.Severity); err != nil {
		return err
	}
	if err := s.setDuration("delay", os.Getenv("SYSLOGSHIP_DELAY"), &cfg.Delay); err != nil {
		return err
	}
	if err := s.setDuration("timeout", os.Getenv("SYSLOGSHIP_TIMEOUT"), &cfg.Timeout); err != nil {
		return err
	}

	s.setBoolFromString("no-verify", os.Getenv("SYSLOGSHIP_NO_VERIFY"), &cfg.NoVerify)
	s.setBoolFromString("watch", os.Getenv("SYSLOGSHIP_WATCH"), &cfg.Watch)

	return nil
}
