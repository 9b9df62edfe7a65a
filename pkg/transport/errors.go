package transport

import "github.com/bft-labs/syslogship/internal/domain"

// Errors returned by NewDialer and Dialer.Dial. They are the domain
// sentinels, so errors.Is works across packages.
var (
	ErrConfiguration = domain.ErrConfiguration
	ErrNotFound      = domain.ErrNotFound
	ErrConnection    = domain.ErrConnection
)
