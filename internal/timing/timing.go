// Package timing records how long generator runs take and summarises the
// resulting logs.
package timing

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	billy "gopkg.in/src-d/go-billy.v4"

	"heightgen/internal/profiling"
)

// Sample is one timed generator run.
type Sample struct {
	Algorithm string
	Size      int
	Seed      int64
	Elapsed   time.Duration
	At        time.Time
}

// Seconds returns the elapsed time in seconds.
func (s Sample) Seconds() float64 { return s.Elapsed.Seconds() }

// Recorder persists samples.
type Recorder interface {
	Record(ctx context.Context, s Sample) error
}

// Discard drops every sample.
var Discard Recorder = discard{}

type discard struct{}

func (discard) Record(context.Context, Sample) error { return nil }

// Multi records to every recorder in order, stopping at the first error.
type Multi []Recorder

func (m Multi) Record(ctx context.Context, s Sample) error {
	for _, r := range m {
		if err := r.Record(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// Measure runs fn, fills in s.Elapsed and s.At, adds the time to the
// "terrain.<algorithm>" profiling bucket and records the sample. Failed
// runs are not recorded.
func Measure(ctx context.Context, rec Recorder, s Sample, fn func(ctx context.Context) error) (Sample, error) {
	start := time.Now()
	if err := fn(ctx); err != nil {
		return s, err
	}
	s.Elapsed = time.Since(start)
	s.At = start
	profiling.Record("terrain."+s.Algorithm, s.Elapsed)
	if rec == nil {
		return s, nil
	}
	if err := rec.Record(ctx, s); err != nil {
		return s, fmt.Errorf("record timing: %w", err)
	}
	return s, nil
}

// FileLog appends one line per sample, the elapsed seconds as "%f", to a
// file that timing-stats can read back.
type FileLog struct {
	mu   sync.Mutex
	fs   billy.Filesystem
	path string
}

// NewFileLog returns a log appending to path on fs.
func NewFileLog(fs billy.Filesystem, path string) *FileLog {
	return &FileLog{fs: fs, path: path}
}

// Record appends s.
func (l *FileLog) Record(_ context.Context, s Sample) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := l.fs.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open timing log %s: %w", l.path, err)
	}
	if _, err := fmt.Fprintf(f, "%f\n", s.Seconds()); err != nil {
		f.Close()
		return fmt.Errorf("append timing log %s: %w", l.path, err)
	}
	return f.Close()
}
