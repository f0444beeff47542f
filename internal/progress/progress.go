// Package progress renders a live terminal indicator for long corpus runs:
// a spinner frame plus running document counts, redrawn in place.
package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// Reporter animates a progress line with live counts.
type Reporter struct {
	frames []string
	delay  time.Duration
	writer io.Writer
	active bool
	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	label string
	shard string
	read  int64
	kept  int64
}

// New creates a reporter writing to writer under the given label.
// ctx allows cancellation of the drawing goroutine.
func New(ctx context.Context, writer io.Writer, label string) *Reporter {
	reporterCtx, cancel := context.WithCancel(ctx)
	return &Reporter{
		frames: []string{"◜", "◠", "◝", "◞", "◡", "◟"},
		delay:  100 * time.Millisecond,
		writer: writer,
		label:  label,
		ctx:    reporterCtx,
		cancel: cancel,
	}
}

// Interactive reports whether w is a terminal worth animating on.
func Interactive(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

// Start begins the animation.
func (r *Reporter) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active {
		return // already running
	}

	r.active = true

	r.wg.Add(1)
	go r.run()
}

// Stop halts the animation and clears the line.
func (r *Reporter) Stop() {
	r.mu.Lock()
	if !r.active {
		r.mu.Unlock()
		return // not running
	}

	r.active = false
	r.cancel()
	r.mu.Unlock()

	// wait for the drawing goroutine to finish
	r.wg.Wait()

	// clear the line with terminal control sequences when on a terminal,
	// plain carriage return otherwise
	if f, ok := r.writer.(*os.File); ok && isTerminal(f) {
		fmt.Fprint(r.writer, "\r\033[2K")
	} else {
		fmt.Fprint(r.writer, "\r")
	}
}

// IsActive returns whether the reporter is currently running.
func (r *Reporter) IsActive() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// StartShard records the shard currently being processed.
func (r *Reporter) StartShard(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shard = name
}

// Add advances the document counters.
func (r *Reporter) Add(read, kept int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.read += int64(read)
	r.kept += int64(kept)
}

// Counts returns the totals accumulated so far.
func (r *Reporter) Counts() (read, kept int64) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.read, r.kept
}

// run is the main drawing loop.
func (r *Reporter) run() {
	defer r.wg.Done()

	frameIndex := 0
	ticker := time.NewTicker(r.delay)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.mu.RLock()
			frame := r.frames[frameIndex%len(r.frames)]
			line := r.line(frame)
			r.mu.RUnlock()

			fmt.Fprintf(r.writer, "\r%s", line)
			frameIndex++
		}
	}
}

// line formats the current status; callers hold at least a read lock.
func (r *Reporter) line(frame string) string {
	if r.shard == "" {
		return fmt.Sprintf("%s %s · %d read · %d kept", frame, r.label, r.read, r.kept)
	}
	return fmt.Sprintf("%s %s · %s · %d read · %d kept", frame, r.label, r.shard, r.read, r.kept)
}

// isTerminal helper function checks if f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
