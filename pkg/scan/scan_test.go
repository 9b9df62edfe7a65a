package scan

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func writeFile(t *testing.T, dir, name string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(`{"a":1}`+"\n"), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func paths(cs []Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Path
	}
	return out
}

func TestScan_SortedByModTime(t *testing.T) {
	dir := t.TempDir()
	c := writeFile(t, dir, "c.jsonl", base.Add(3*time.Hour))
	a := writeFile(t, dir, "a.jsonl", base.Add(1*time.Hour))
	b := writeFile(t, dir, "b.jsonl", base.Add(2*time.Hour))

	s, err := New(dir, "*.jsonl")
	require.NoError(t, err)
	got, err := s.Scan(time.Time{})

	require.NoError(t, err)
	assert.Equal(t, []string{a, b, c}, paths(got))
	assert.True(t, got[0].ModTime.Equal(base.Add(time.Hour)))
}

func TestScan_SinceIsInclusive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "old.jsonl", base.Add(-time.Second))
	eq := writeFile(t, dir, "equal.jsonl", base)
	newer := writeFile(t, dir, "new.jsonl", base.Add(time.Second))

	s, err := New(dir, "*.jsonl")
	require.NoError(t, err)
	got, err := s.Scan(base)

	require.NoError(t, err)
	assert.Equal(t, []string{eq, newer}, paths(got))
}

func TestScan_TwoFilesNoWatermark(t *testing.T) {
	dir := t.TempDir()
	t2 := writeFile(t, dir, "second.jsonl", base.Add(time.Minute))
	t1 := writeFile(t, dir, "first.jsonl", base)

	s, err := New(dir, "")
	require.NoError(t, err)
	got, err := s.Scan(time.Time{})

	require.NoError(t, err)
	assert.Equal(t, []string{t1, t2}, paths(got))
}

func TestScan_PatternAndRegularFilesOnly(t *testing.T) {
	dir := t.TempDir()
	keep := writeFile(t, dir, "events.jsonl", base)
	writeFile(t, dir, "events.json", base)
	writeFile(t, dir, "notes.txt", base)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.jsonl"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	writeFile(t, filepath.Join(dir, "sub"), "nested.jsonl", base)

	s, err := New(dir, "*.jsonl")
	require.NoError(t, err)
	got, err := s.Scan(time.Time{})

	require.NoError(t, err)
	assert.Equal(t, []string{keep}, paths(got))
}

func TestScan_BracePattern(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.jsonl", base)
	b := writeFile(t, dir, "b.ndjson", base.Add(time.Second))
	writeFile(t, dir, "c.log", base)

	s, err := New(dir, "*.{jsonl,ndjson}")
	require.NoError(t, err)
	got, err := s.Scan(time.Time{})

	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, paths(got))
}

func TestScan_MissingDirectory(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "nope"), "*.jsonl")
	require.NoError(t, err)

	got, err := s.Scan(time.Time{})

	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestScan_PathIsAFile(t *testing.T) {
	file := writeFile(t, t.TempDir(), "x.jsonl", base)
	s, err := New(file, "*.jsonl")
	require.NoError(t, err)

	got, err := s.Scan(time.Time{})

	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestScan_EqualModTimesOrderedByName(t *testing.T) {
	dir := t.TempDir()
	b := writeFile(t, dir, "b.jsonl", base)
	a := writeFile(t, dir, "a.jsonl", base)

	s, err := New(dir, "*.jsonl")
	require.NoError(t, err)
	got, err := s.Scan(time.Time{})

	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, paths(got))
}

func TestCompile(t *testing.T) {
	m, err := Compile("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPattern, m.Pattern())
	assert.True(t, m.Match("x.jsonl"))
	assert.False(t, m.Match("x.jsonl.gz"))
	assert.False(t, m.Match("sub/x.jsonl"))
}
