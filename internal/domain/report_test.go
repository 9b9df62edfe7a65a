package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestFileReport_Record(t *testing.T) {
	var r FileReport
	r.Record(OutcomeSent)
	r.Record(OutcomeSent)
	r.Record(OutcomeMalformed)
	r.Record(OutcomeSendFailed)

	if r.Lines != 4 {
		t.Errorf("Lines = %d, want 4", r.Lines)
	}
	if r.Sent != 2 {
		t.Errorf("Sent = %d, want 2", r.Sent)
	}
	if r.Skipped() != 2 {
		t.Errorf("Skipped = %d, want 2", r.Skipped())
	}
}

func TestBatchReport_Totals(t *testing.T) {
	b := BatchReport{Files: []FileReport{
		{Lines: 3, Sent: 3},
		{Lines: 2, Malformed: 2},
		{Lines: 1, SendFailed: 1},
	}}
	got := b.Totals()
	if got.Lines != 6 || got.Sent != 3 || got.Malformed != 2 || got.SendFailed != 1 {
		t.Errorf("Totals = %+v", got)
	}
}

func TestOutcome_String(t *testing.T) {
	tests := []struct {
		o    Outcome
		want string
	}{
		{OutcomeSent, "sent"},
		{OutcomeMalformed, "malformed"},
		{OutcomeSendFailed, "send_failed"},
		{Outcome(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.o.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", tt.o, got, tt.want)
		}
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"configuration", fmt.Errorf("client cert: %w", ErrConfiguration), true},
		{"not found", fmt.Errorf("ca: %w", ErrNotFound), true},
		{"connection", fmt.Errorf("dial: %w", ErrConnection), false},
		{"other", errors.New("eof"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFatal(tt.err); got != tt.want {
				t.Errorf("IsFatal() = %v, want %v", got, tt.want)
			}
		})
	}
}
