package sink

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Sink receives one line per reclaim action. Implementations must be
// append-only; the engine never rewrites or truncates past lines.
type Sink interface {
	Event(desc string)
}

// Nop discards all events. Used when no log sink path is configured.
type Nop struct{}

func (Nop) Event(string) {}

// FileSink appends timestamped action lines to a file and mirrors them
// to an optional console observer.
type FileSink struct {
	mu      sync.Mutex
	file    *os.File
	console io.Writer
	now     func() time.Time
}

// NewFile opens (or creates) the sink file in append mode. console may
// be nil when no observer is attached.
func NewFile(path string, console io.Writer) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log sink %s: %w", path, err)
	}
	return &FileSink{file: f, console: console, now: time.Now}, nil
}

func (s *FileSink) Event(desc string) {
	line := fmt.Sprintf("[%s] %s\n", s.now().UTC().Format(time.RFC3339), desc)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.file.WriteString(line)
	s.file.Sync()
	if s.console != nil {
		io.WriteString(s.console, line)
	}
}

func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

// Buffer collects events in memory. Test helper.
type Buffer struct {
	Lines []string
}

func (b *Buffer) Event(desc string) {
	b.Lines = append(b.Lines, desc)
}
