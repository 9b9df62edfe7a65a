package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bft-labs/syslogship/internal/ports"
	"github.com/bft-labs/syslogship/pkg/state"
	"github.com/bft-labs/syslogship/pkg/syslog"
)

// mockLogger implements ports.Logger for testing.
type mockLogger struct {
	mu    sync.Mutex
	warns []string
}

func (*mockLogger) Debug(msg string, fields ...ports.Field) {}
func (*mockLogger) Info(msg string, fields ...ports.Field)  {}
func (m *mockLogger) Warn(msg string, fields ...ports.Field) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warns = append(m.warns, msg)
}
func (*mockLogger) Error(msg string, fields ...ports.Field) {}

func (m *mockLogger) Warns() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.warns...)
}

var testTime = time.Date(2024, 3, 4, 22, 8, 9, 123000000, time.UTC)

func testEncoder() *syslog.Encoder {
	return syslog.NewEncoder(
		syslog.Header{Facility: 16, Severity: 6, AppName: "jsonl-over-syslog"},
		syslog.StaticFields{Time: testTime, Host: "host-1", PID: "4242"},
	)
}

// frame renders the expected wire message for body under testEncoder.
func frame(body string) string {
	return "<134>1 2024-03-04T22:08:09.123Z host-1 jsonl-over-syslog 4242 - - " + body
}

// fakeConn records sent frames.
type fakeConn struct {
	mu     sync.Mutex
	frames []string
	failOn map[int]bool
	sends  int
	closes int
}

func (c *fakeConn) Send(frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sends++
	if c.failOn[c.sends] {
		return errors.New("broken pipe")
	}
	c.frames = append(c.frames, string(frame))
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closes++
	return nil
}

func (c *fakeConn) Frames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.frames...)
}

// fakeDialer hands out one shared fakeConn, or fails.
type fakeDialer struct {
	conn  *fakeConn
	err   error
	dials int
}

func (d *fakeDialer) Dial(ctx context.Context) (ports.Conn, error) {
	d.dials++
	if d.err != nil {
		return nil, d.err
	}
	return d.conn, nil
}

// memRepo is an in-memory ports.WatermarkRepository.
type memRepo struct {
	wm      state.Watermark
	loadErr error
	saveErr error
	saves   int
}

func (r *memRepo) Load(ctx context.Context) (state.Watermark, error) {
	if r.loadErr != nil {
		return state.Watermark{}, r.loadErr
	}
	return r.wm, nil
}

func (r *memRepo) Save(ctx context.Context, wm state.Watermark) error {
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.wm = wm
	return nil
}
