// Package logging writes the collector's append-only run log. Each event is
// one line, `[YYYY-MM-DD HH:MM:SS] message`, the format the downstream
// tooling greps.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Logger appends timestamped lines to a single log file. The file and its
// parent directory are created on first use.
type Logger struct {
	path string
}

// New returns a logger appending to path.
func New(path string) *Logger {
	return &Logger{path: path}
}

// Printf formats and appends one log line. Logging failures are swallowed:
// the log is an observability surface, never a reason to fail a run.
func (l *Logger) Printf(format string, args ...interface{}) {
	line := fmt.Sprintf("[%s] %s\n", time.Now().Format("2006-01-02 15:04:05"), fmt.Sprintf(format, args...))

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()
	f.WriteString(line)
}
