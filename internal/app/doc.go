// Package app contains the application layer: forwarding one source line by
// line, running a directory batch against the watermark, and re-running
// batches when the directory changes.
//
// Everything here depends only on the interfaces in internal/ports.
package app
