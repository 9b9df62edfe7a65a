// Package domain contains the core domain entities and value objects for syslogship.
//
// This package has no dependencies on infrastructure concerns (sockets,
// file system, logging) and contains only the error taxonomy and the
// outcome types the application layer aggregates.
//
// # Entities
//
//   - [Outcome]: what happened to a single input line
//   - [FileReport]: outcomes aggregated over one input source
//   - [BatchReport]: files attempted by one directory run and the watermark it left behind
//
// Non-fatal conditions (malformed lines, failed sends, failed state writes)
// are recorded here instead of being returned as errors. Whether to report
// them is left to the caller.
package domain
