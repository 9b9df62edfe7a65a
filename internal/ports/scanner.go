package ports

import (
	"time"

	"github.com/bft-labs/syslogship/pkg/scan"
)

// Scanner lists files due for sending, oldest first.
// *scan.Scanner satisfies this interface.
type Scanner interface {
	Scan(since time.Time) ([]scan.Candidate, error)
}
