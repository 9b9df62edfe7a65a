package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/syslogship/internal/domain"
	"github.com/bft-labs/syslogship/pkg/scan"
	"github.com/bft-labs/syslogship/pkg/state"
)

var baseTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

// writeAged writes a file and sets its modification time.
func writeAged(t *testing.T, dir, name, content string, mtime time.Time) string {
	t.Helper()
	path := writeFile(t, dir, name, content)
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func newRunner(t *testing.T, dir string, dialer *fakeDialer, repo *memRepo, logger *mockLogger) *BatchRunner {
	t.Helper()
	scanner, err := scan.New(dir, scan.DefaultPattern)
	require.NoError(t, err)
	sender := NewLineSender(SenderConfig{}, dialer, testEncoder(), logger)
	return NewBatchRunner(scanner, sender, repo, logger)
}

func TestBatchRunner_AdvancesPastEmptyMalformedAndValid(t *testing.T) {
	dir := t.TempDir()
	t1, t2, t3 := baseTime, baseTime.Add(time.Minute), baseTime.Add(2*time.Minute)
	writeAged(t, dir, "a.jsonl", "", t1)
	writeAged(t, dir, "b.jsonl", "not json\n", t2)
	writeAged(t, dir, "c.jsonl", `{"ok": true}`+"\n", t3)

	conn := &fakeConn{}
	repo := &memRepo{}
	r := newRunner(t, dir, &fakeDialer{conn: conn}, repo, &mockLogger{})

	report, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Candidates)
	assert.Equal(t, 3, report.Attempted)
	assert.Empty(t, report.Failed)
	assert.True(t, report.Watermark.Equal(t3), "watermark = %v, want %v", report.Watermark, t3)
	assert.True(t, repo.wm.Time.Equal(t3))
	assert.Equal(t, []string{frame(`{"ok": true}`)}, conn.Frames())

	totals := report.Totals()
	assert.Equal(t, 2, totals.Lines)
	assert.Equal(t, 1, totals.Sent)
	assert.Equal(t, 1, totals.Malformed)
}

func TestBatchRunner_OrderAndStoredWatermark(t *testing.T) {
	dir := t.TempDir()
	t1, t2 := baseTime, baseTime.Add(time.Hour)
	// Names sort opposite to modification times.
	writeAged(t, dir, "z-old.jsonl", `{"file": 1}`+"\n", t1)
	writeAged(t, dir, "a-new.jsonl", `{"file": 2}`+"\n", t2)

	statePath := filepath.Join(t.TempDir(), "state", ".last_run")
	repo := state.NewFileRepository(statePath)
	conn := &fakeConn{}
	scanner, err := scan.New(dir, "")
	require.NoError(t, err)
	logger := &mockLogger{}
	r := NewBatchRunner(scanner, NewLineSender(SenderConfig{}, &fakeDialer{conn: conn}, testEncoder(), logger), repo, logger)

	report, err := r.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Files, 2)
	assert.Equal(t, filepath.Join(dir, "z-old.jsonl"), report.Files[0].Source)
	assert.Equal(t, filepath.Join(dir, "a-new.jsonl"), report.Files[1].Source)
	assert.Equal(t, []string{frame(`{"file": 1}`), frame(`{"file": 2}`)}, conn.Frames())

	data, err := os.ReadFile(statePath)
	require.NoError(t, err)
	stored, err := state.ParseWatermark(strings.TrimSpace(string(data)))
	require.NoError(t, err)
	assert.True(t, stored.Time.Equal(t2), "stored = %v, want %v", stored.Time, t2)
}

func TestBatchRunner_NoCandidatesLeavesWatermark(t *testing.T) {
	dir := t.TempDir()
	writeAged(t, dir, "old.jsonl", "1\n", baseTime)

	prev := state.Watermark{Time: baseTime.Add(time.Hour)}
	repo := &memRepo{wm: prev}
	dialer := &fakeDialer{conn: &fakeConn{}}
	r := newRunner(t, dir, dialer, repo, &mockLogger{})

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Candidates)
	assert.Equal(t, 0, repo.saves)
	assert.Equal(t, 0, dialer.dials)
	assert.True(t, repo.wm.Time.Equal(prev.Time))
}

func TestBatchRunner_MissingDirectory(t *testing.T) {
	repo := &memRepo{}
	r := newRunner(t, filepath.Join(t.TempDir(), "nope"), &fakeDialer{conn: &fakeConn{}}, repo, &mockLogger{})

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Candidates)
	assert.Equal(t, 0, repo.saves)
}

func TestBatchRunner_ResendsOnlyNewestOnRerun(t *testing.T) {
	dir := t.TempDir()
	writeAged(t, dir, "1.jsonl", "1\n", baseTime)
	writeAged(t, dir, "2.jsonl", "2\n", baseTime.Add(time.Minute))

	conn := &fakeConn{}
	repo := &memRepo{}
	r := newRunner(t, dir, &fakeDialer{conn: conn}, repo, &mockLogger{})

	_, err := r.Run(context.Background())
	require.NoError(t, err)
	report, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Candidates)
	assert.Equal(t, []string{frame("1"), frame("2"), frame("2")}, conn.Frames())
}

func TestBatchRunner_UnreadableStateSendsAll(t *testing.T) {
	dir := t.TempDir()
	writeAged(t, dir, "a.jsonl", "1\n", baseTime)

	logger := &mockLogger{}
	repo := &memRepo{loadErr: domain.ErrCorruptState}
	r := newRunner(t, dir, &fakeDialer{conn: &fakeConn{}}, repo, logger)

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Attempted)
	assert.Contains(t, logger.Warns(), "failed to load watermark, sending all files")
}

func TestBatchRunner_ConnectionFailureAbortsOnlyThatFile(t *testing.T) {
	dir := t.TempDir()
	t2 := baseTime.Add(time.Minute)
	writeAged(t, dir, "a.jsonl", "1\n", baseTime)
	writeAged(t, dir, "b.jsonl", "2\n", t2)

	dialErr := errors.Join(domain.ErrConnection, errors.New("refused"))
	repo := &memRepo{}
	r := newRunner(t, dir, &fakeDialer{err: dialErr}, repo, &mockLogger{})

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Failed, 2)
	assert.ErrorIs(t, report.Failed[0].Err, domain.ErrConnection)
	assert.Equal(t, 2, report.Attempted)
	assert.True(t, repo.wm.Time.Equal(t2))
}

func TestBatchRunner_SaveErrorSwallowed(t *testing.T) {
	dir := t.TempDir()
	writeAged(t, dir, "a.jsonl", "1\n", baseTime)

	saveErr := errors.New("read-only")
	logger := &mockLogger{}
	r := newRunner(t, dir, &fakeDialer{conn: &fakeConn{}}, &memRepo{saveErr: saveErr}, logger)

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.ErrorIs(t, report.SaveErr, saveErr)
	assert.Contains(t, logger.Warns(), "failed to save watermark")
}

func TestBatchRunner_CanceledSavesAttempted(t *testing.T) {
	dir := t.TempDir()
	writeAged(t, dir, "a.jsonl", "1\n", baseTime)
	writeAged(t, dir, "b.jsonl", "2\n", baseTime.Add(time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	repo := &memRepo{}
	logger := &mockLogger{}
	scanner, err := scan.New(dir, "")
	require.NoError(t, err)
	sender := sourceSenderFunc(func(ctx context.Context, source string) (domain.FileReport, error) {
		cancel()
		return domain.FileReport{Source: source}, ctx.Err()
	})
	r := NewBatchRunner(scanner, sender, repo, logger)

	report, err := r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, report.Attempted)
	assert.Empty(t, report.Failed)
	assert.True(t, repo.wm.Time.Equal(baseTime))
}

type sourceSenderFunc func(ctx context.Context, source string) (domain.FileReport, error)

func (f sourceSenderFunc) SendSource(ctx context.Context, source string) (domain.FileReport, error) {
	return f(ctx, source)
}
