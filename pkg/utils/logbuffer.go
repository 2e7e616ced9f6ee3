package utils

import (
	"strings"
	"sync"
)

// LogBuffer is an append-only, line-oriented log sink. The pipeline
// worker writes to it through the logger tee; interactive callers read
// new lines by offset.
type LogBuffer struct {
	mu      sync.Mutex
	lines   []string
	partial string
}

// Write appends p, splitting on newlines. Implements io.Writer.
func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.partial += string(p)
	for {
		idx := strings.IndexByte(b.partial, '\n')
		if idx < 0 {
			break
		}
		b.lines = append(b.lines, b.partial[:idx])
		b.partial = b.partial[idx+1:]
	}
	return len(p), nil
}

// Sync implements zapcore.WriteSyncer.
func (b *LogBuffer) Sync() error { return nil }

// Len returns the number of complete lines buffered so far.
func (b *LogBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines)
}

// Lines returns a copy of the buffered lines starting at offset.
// Offsets beyond the end yield an empty slice.
func (b *LogBuffer) Lines(offset int) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if offset < 0 {
		offset = 0
	}
	if offset >= len(b.lines) {
		return nil
	}
	out := make([]string, len(b.lines)-offset)
	copy(out, b.lines[offset:])
	return out
}
