package domain

import "time"

// Outcome is the result of handling one input line.
type Outcome int

const (
	// OutcomeSent means the line was encoded and handed to the transport.
	OutcomeSent Outcome = iota
	// OutcomeMalformed means the line was not valid JSON and was skipped.
	OutcomeMalformed
	// OutcomeSendFailed means the transport rejected the frame. The line is
	// not retried.
	OutcomeSendFailed
)

// String returns a human-readable representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSent:
		return "sent"
	case OutcomeMalformed:
		return "malformed"
	case OutcomeSendFailed:
		return "send_failed"
	default:
		return "unknown"
	}
}

// FileReport aggregates line outcomes for one input source.
type FileReport struct {
	// Source is the file path, or "-" for standard input.
	Source string

	// Lines counts non-blank lines read.
	Lines int

	Sent       int
	Malformed  int
	SendFailed int
}

// Record adds one line outcome to the report.
func (r *FileReport) Record(o Outcome) {
	r.Lines++
	switch o {
	case OutcomeSent:
		r.Sent++
	case OutcomeMalformed:
		r.Malformed++
	case OutcomeSendFailed:
		r.SendFailed++
	}
}

// Skipped returns the number of lines that were not delivered.
func (r FileReport) Skipped() int {
	return r.Malformed + r.SendFailed
}

// FileError records a per-file failure that aborted one file of a batch.
type FileError struct {
	Path string
	Err  error
}

// BatchReport summarizes one directory run.
type BatchReport struct {
	// Candidates is the number of files the scan returned.
	Candidates int

	// Files holds a report for every file whose processing started,
	// including those that later failed.
	Files []FileReport

	// Failed lists files aborted by a hard error (open, connect, read).
	Failed []FileError

	// Attempted counts files whose modification time fed the watermark.
	Attempted int

	// Watermark is the value written to the state file. Zero when nothing
	// was attempted.
	Watermark time.Time

	// SaveErr is the swallowed state write error, if any.
	SaveErr error
}

// Totals sums line outcomes across all files in the batch.
func (b BatchReport) Totals() FileReport {
	var t FileReport
	for _, f := range b.Files {
		t.Lines += f.Lines
		t.Sent += f.Sent
		t.Malformed += f.Malformed
		t.SendFailed += f.SendFailed
	}
	return t
}
