package logging

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level tags a journal entry.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Journal is the append-only run log under .trellis/logs/. Entries carry the
// run ID so interleaved runs stay attributable. A nil Journal swallows every
// call, letting callers log unconditionally.
type Journal struct {
	path string
	run  string
	mu   sync.Mutex
}

// JournalOption customizes Journal construction.
type JournalOption func(*Journal)

// WithRun stamps every entry with a run identifier.
func WithRun(run string) JournalOption {
	return func(j *Journal) { j.run = run }
}

// NewJournal creates the journal file's directory and returns a journal
// appending to path.
func NewJournal(path string, opts ...JournalOption) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: journal dir: %w", err)
	}
	j := &Journal{path: path}
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

// Path returns the file backing this journal.
func (j *Journal) Path() string {
	if j == nil {
		return ""
	}
	return j.path
}

// Append writes a single entry.
func (j *Journal) Append(level Level, message string) {
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	tag := ""
	if j.run != "" {
		tag = " [" + j.run + "]"
	}
	line := fmt.Sprintf("%s %-5s%s %s\n",
		time.Now().UTC().Format(time.RFC3339),
		string(level),
		tag,
		strings.TrimSpace(message),
	)
	file, err := os.OpenFile(j.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer file.Close()
	_, _ = file.WriteString(line)
}

// Tail returns up to maxLines of the most recent entries.
func (j *Journal) Tail(maxLines int) []string {
	if j == nil || maxLines <= 0 {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	file, err := os.Open(j.path)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return lines
}

// Info appends an informational entry.
func (j *Journal) Info(format string, args ...any) {
	j.Append(LevelInfo, fmt.Sprintf(format, args...))
}

// Warn appends a warning entry.
func (j *Journal) Warn(format string, args ...any) {
	j.Append(LevelWarn, fmt.Sprintf(format, args...))
}

// Error appends an error entry.
func (j *Journal) Error(format string, args ...any) {
	j.Append(LevelError, fmt.Sprintf(format, args...))
}
