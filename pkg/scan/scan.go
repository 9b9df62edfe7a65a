// Package scan lists the files of a directory that are due for sending.
//
// A scan is non-recursive. Entry names are matched against a glob pattern
// supporting *, ?, [...] and {a,b} alternatives; only regular files are
// kept, and when a watermark is given only files modified at or after it.
// Results are ordered by modification time, oldest first.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	globlib "github.com/pachyderm/ohmyglob"
)

// DefaultPattern matches JSON Lines files.
const DefaultPattern = "*.jsonl"

// Candidate is a file selected by a scan.
type Candidate struct {
	Path    string
	ModTime time.Time
}

// Matcher reports whether a file name matches a pattern.
type Matcher struct {
	pattern string
	g       *globlib.Glob
}

// Compile parses a glob pattern. Path separators never match wildcards.
func Compile(pattern string) (*Matcher, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	g, err := globlib.Compile(pattern, '/', filepath.Separator)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	return &Matcher{pattern: pattern, g: g}, nil
}

// Match tests a base file name.
func (m *Matcher) Match(name string) bool {
	return m.g.Match(name)
}

// Pattern returns the source pattern.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// Scanner selects candidate files in one directory.
type Scanner struct {
	dir     string
	matcher *Matcher
}

// New creates a Scanner for dir and pattern.
func New(dir, pattern string) (*Scanner, error) {
	m, err := Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Scanner{dir: dir, matcher: m}, nil
}

// Dir returns the scanned directory.
func (s *Scanner) Dir() string { return s.dir }

// Matcher returns the compiled pattern.
func (s *Scanner) Matcher() *Matcher { return s.matcher }

// Scan returns matching regular files modified at or after since, oldest
// first. A zero since disables the filter. A missing directory, or a path
// that is not a directory, yields no candidates and no error. Entries whose
// metadata cannot be read are skipped.
func (s *Scanner) Scan(since time.Time) ([]Candidate, error) {
	ents, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || isNotDir(s.dir) {
			return nil, nil
		}
		return nil, fmt.Errorf("read dir %s: %w", s.dir, err)
	}

	var out []Candidate
	for _, e := range ents {
		if !s.matcher.Match(e.Name()) {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		// Stat follows symlinks so a link to a regular file counts.
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		mt := info.ModTime()
		if !since.IsZero() && mt.Before(since) {
			continue
		}
		out = append(out, Candidate{Path: path, ModTime: mt})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ModTime.Equal(out[j].ModTime) {
			return out[i].Path < out[j].Path
		}
		return out[i].ModTime.Before(out[j].ModTime)
	})
	return out, nil
}

func isNotDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
