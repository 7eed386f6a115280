package testutil

import (
	"fmt"
	"strings"
	"sync"
)

// Entry is a single captured log line.
type Entry struct {
	Level string
	Msg   string
	Args  []any
}

// String renders the entry as "LEVEL msg k=v ...".
func (e Entry) String() string {
	var b strings.Builder
	b.WriteString(e.Level)
	b.WriteString(" ")
	b.WriteString(e.Msg)
	for i := 0; i+1 < len(e.Args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", e.Args[i], e.Args[i+1])
	}
	return b.String()
}

// RecordingLogger captures every log call. It satisfies logging.Logger.
type RecordingLogger struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecordingLogger returns an empty RecordingLogger.
func NewRecordingLogger() *RecordingLogger { return &RecordingLogger{} }

func (l *RecordingLogger) add(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{Level: level, Msg: msg, Args: args})
}

// Debug records a debug entry.
func (l *RecordingLogger) Debug(msg string, args ...any) { l.add("DEBUG", msg, args) }

// Info records an info entry.
func (l *RecordingLogger) Info(msg string, args ...any) { l.add("INFO", msg, args) }

// Warn records a warn entry.
func (l *RecordingLogger) Warn(msg string, args ...any) { l.add("WARN", msg, args) }

// Error records an error entry.
func (l *RecordingLogger) Error(msg string, args ...any) { l.add("ERROR", msg, args) }

// Entries returns a copy of all captured entries.
func (l *RecordingLogger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Level returns the captured entries of one level.
func (l *RecordingLogger) Level(level string) []Entry {
	var out []Entry
	for _, e := range l.Entries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// Contains reports whether any entry's rendered form contains s.
func (l *RecordingLogger) Contains(s string) bool {
	for _, e := range l.Entries() {
		if strings.Contains(e.String(), s) {
			return true
		}
	}
	return false
}
