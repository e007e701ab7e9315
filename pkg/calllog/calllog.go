// Package calllog writes the dated request/response log: one plain-text
// file per calendar day, append-only, never rotated or read back.
package calllog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Logger appends timestamped lines to llm_calls_YYYYMMDD.log under a
// configured directory. The day is derived from each write's wall clock,
// so a long-lived process rolls over at midnight.
type Logger struct {
	dir string
	now func() time.Time
}

// New creates a Logger writing under dir, creating it if needed.
func New(dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	return &Logger{dir: dir, now: time.Now}, nil
}

// Dir exposes the log directory.
func (l *Logger) Dir() string {
	return l.dir
}

// Prompt records an outgoing prompt.
func (l *Logger) Prompt(requestID, text string) error {
	return l.write("INFO", fmt.Sprintf("PROMPT[%s]: %s", requestID, text))
}

// Response records a completion, whether remote or served from cache.
func (l *Logger) Response(requestID, text string) error {
	return l.write("INFO", fmt.Sprintf("RESPONSE[%s]: %s", requestID, text))
}

// Warn records a recoverable problem, such as a corrupt cache file.
func (l *Logger) Warn(msg string) error {
	return l.write("WARNING", msg)
}

// Error records a failure, such as a provider error or cache write failure.
func (l *Logger) Error(msg string) error {
	return l.write("ERROR", msg)
}

func (l *Logger) write(level, msg string) error {
	now := l.now()
	path := filepath.Join(l.dir, fmt.Sprintf("llm_calls_%s.log", now.Format("20060102")))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("%s - %s - %s\n", now.Format("2006-01-02 15:04:05"), level, msg)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("append log line: %w", err)
	}
	return nil
}
