package transport

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// buildTLSConfig applies the trust policy in order: explicit CA, explicit
// opt-out, then system roots.
func buildTLSConfig(host string, c TLSConfig) (*tls.Config, error) {
	cfg := &tls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
	}

	switch {
	case c.CAFile != "":
		pem, err := readMaterial("CA certificate", c.CAFile)
		if err != nil {
			return nil, err
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("%w: no certificates in CA file %s", ErrConfiguration, c.CAFile)
		}
		cfg.RootCAs = pool
	case c.InsecureSkipVerify:
		cfg.InsecureSkipVerify = true
	}

	switch {
	case c.CertFile != "" && c.KeyFile != "":
		if err := checkExists("client certificate", c.CertFile); err != nil {
			return nil, err
		}
		if err := checkExists("client key", c.KeyFile); err != nil {
			return nil, err
		}
		pair, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("%w: load client key pair: %v", ErrConfiguration, err)
		}
		cfg.Certificates = []tls.Certificate{pair}
	case c.CertFile != "" || c.KeyFile != "":
		return nil, fmt.Errorf("%w: client certificate and key must be set together", ErrConfiguration)
	}

	return cfg, nil
}

func checkExists(what, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s %s", ErrNotFound, what, path)
		}
		return fmt.Errorf("%w: %s %s: %v", ErrConfiguration, what, path, err)
	}
	return nil
}

func readMaterial(what, path string) ([]byte, error) {
	if err := checkExists(what, path); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s %s: %v", ErrConfiguration, what, path, err)
	}
	return b, nil
}
