package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"resolvis/pkg/trace"
)

// progress tracks the start time of an operation and logs completion with
// elapsed duration. Safe for sequential use by a single goroutine.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Reconstructed 42 steps (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// loadProgress builds the per-line progress callback handed to the
// loader. It honors context cancellation — an aborting callback is the
// loader's only cancellation mechanism — and reports coarse progress at
// debug level so large logs show signs of life without flooding output.
func loadProgress(ctx context.Context, logger *log.Logger, name string) trace.ProgressFunc {
	lastDecile := -1
	return func(consumed, total int64) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if total == 0 {
			return nil
		}
		decile := int(consumed * 10 / total)
		if decile != lastDecile {
			lastDecile = decile
			logger.Debugf("Reading %s: %d%%", name, decile*10)
		}
		return nil
	}
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, falling back to
// log.Default so commands always have a valid logger.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
