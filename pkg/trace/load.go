// Package trace reconstructs resolver search logs.
//
// The input is the textual trace an external dependency resolver emits
// while searching for a solution. Load makes a single forward pass over
// the lines, classifying each against an ordered pattern table and feeding
// the resulting events to a step builder; a two-phase post-pass then
// resolves successor references (which may point forward, or at states the
// log never processes) into an immutable cross-referenced graph, computes
// subtree depth and branch size per step, and splits the step sequence
// into independent runs.
//
// Construction is strictly sequential and owns all of its state; the
// resulting LogFile and its ProcessingStep graph are immutable and safe
// for concurrent readers.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"resolvis/pkg/model"
	"resolvis/pkg/observability"
)

// ProgressFunc observes load progress. It is called once per line, before
// that line is consumed, with the byte offset reached so far and the total
// log size. Returning a non-nil error aborts the whole load; this is the
// only cancellation mechanism during construction.
type ProgressFunc func(bytesConsumed, totalBytes int64) error

// Load reads a resolver search log from src and reconstructs it. The name
// identifies the source in diagnostics. progress may be nil.
//
// Load fails with a *ParseError when a captured field is malformed or a
// state names itself as successor, and with an ErrLinkCycle error when the
// finished graph cannot be given well-founded metrics.
func Load(src Source, name string, progress ProgressFunc) (*LogFile, error) {
	observability.Loader().OnLoadStart(name)
	start := time.Now()
	lf, err := load(src, name, progress)
	if lf != nil {
		observability.Loader().OnLoadComplete(name, lf.Steps(), len(lf.Runs()), time.Since(start), err)
	} else {
		observability.Loader().OnLoadComplete(name, 0, 0, time.Since(start), err)
	}
	return lf, err
}

func load(src Source, name string, progress ProgressFunc) (*LogFile, error) {
	total := src.Size()
	r := bufio.NewReader(io.NewSectionReader(src, 0, total))
	b := newBuilder()

	var offset int64
	line := 0
	for {
		text, err := r.ReadString('\n')
		if len(text) > 0 {
			line++
			b.lineStart = offset
			if progress != nil {
				if perr := progress(offset, total); perr != nil {
					return nil, perr
				}
			}
			if h, rest, prefixLen, ok := classify(strings.TrimRight(text, "\r\n")); ok {
				if herr := h(b, rest); herr != nil {
					return nil, positionErr(name, line, prefixLen, herr)
				}
			}
			offset += int64(len(text))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
	}
	b.finish(total)

	steps, err := resolve(name, b.steps)
	if err != nil {
		return nil, err
	}

	return &LogFile{src: src, name: name, runs: splitRuns(steps)}, nil
}

// LoadFile opens and reconstructs the log at path. The returned LogFile
// keeps the file handle open for on-demand text reads; callers own Close.
func LoadFile(path string, progress ProgressFunc) (*LogFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	lf, err := Load(&fileSource{f: f, size: info.Size()}, path, progress)
	if err != nil {
		f.Close()
		return nil, err
	}
	return lf, nil
}

// positionErr attaches source name, line, and column to a handler error.
// Syntax errors from the model parsers carry a column relative to the text
// after the matched prefix; structural errors carry no column.
func positionErr(name string, line, prefixLen int, err error) error {
	if pe, ok := err.(*ParseError); ok {
		return pe
	}
	if se, ok := err.(*model.SyntaxError); ok {
		return &ParseError{Source: name, Line: line, Col: prefixLen + se.Col, Err: err}
	}
	return &ParseError{Source: name, Line: line, Err: err}
}
