package ports

import (
	"context"

	"github.com/bft-labs/syslogship/pkg/state"
)

// WatermarkRepository persists the newest processed modification time.
// *state.FileRepository satisfies this interface.
type WatermarkRepository interface {
	// Load returns the stored watermark. An error means the state was
	// unreadable; the returned watermark is then empty.
	Load(ctx context.Context) (state.Watermark, error)

	// Save overwrites the stored watermark.
	Save(ctx context.Context, wm state.Watermark) error
}
