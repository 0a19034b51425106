package trace

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Source is the raw log text: random-access reads plus a known size. The
// loader reads it once sequentially; afterwards the LogFile uses it only
// for on-demand range reads of a step's original text. Concurrent reads
// are as safe as the underlying source makes them.
type Source interface {
	io.ReaderAt
	Size() int64
}

// NewBytesSource wraps an in-memory log as a Source.
func NewBytesSource(data []byte) Source {
	return bytes.NewReader(data)
}

// fileSource adapts an open file to Source with a size captured at open.
type fileSource struct {
	f    *os.File
	size int64
}

func (s *fileSource) ReadAt(p []byte, off int64) (int, error) { return s.f.ReadAt(p, off) }
func (s *fileSource) Size() int64                             { return s.size }
func (s *fileSource) Close() error                            { return s.f.Close() }

// LogFile is a fully reconstructed search log: the runs the resolver
// performed plus a handle to the original text for on-demand retrieval of
// any step's source range. Immutable after Load; safe to share read-only.
type LogFile struct {
	src  Source
	name string
	runs []Run
}

// Name returns the source name given to Load.
func (l *LogFile) Name() string { return l.name }

// Runs returns the runs in discovery order.
func (l *LogFile) Runs() []Run { return l.runs }

// Steps returns the total number of steps across all runs.
func (l *LogFile) Steps() int {
	n := 0
	for _, r := range l.runs {
		n += len(r)
	}
	return n
}

// Size returns the byte size of the underlying log text.
func (l *LogFile) Size() int64 { return l.src.Size() }

// StepText reads the exact source text of a step from the underlying log.
func (l *LogFile) StepText(s *ProcessingStep) (string, error) {
	if s.TextLen <= 0 {
		return "", nil
	}
	buf := make([]byte, s.TextLen)
	if _, err := l.src.ReadAt(buf, s.TextStart); err != nil {
		return "", fmt.Errorf("read %s at %d: %w", l.name, s.TextStart, err)
	}
	return string(buf), nil
}

// Close releases the underlying source if it holds a file handle.
func (l *LogFile) Close() error {
	if c, ok := l.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
