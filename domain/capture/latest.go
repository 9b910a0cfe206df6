package capture

import (
	"sync"
	"time"
)

// LatestFrameBuffer is a single-slot, latest-wins frame cache. One producer
// publishes, any number of readers poll. Critical sections only swap the
// frame reference and its metadata, so lock hold time does not grow with
// frame size, and readers never observe a frame paired with another
// frame's timestamp or sequence.
//
// The zero value is ready to use and reads as "nothing published yet".
type LatestFrameBuffer struct {
	mu         sync.RWMutex
	frame      *Frame
	capturedAt time.Time
	sequence   uint64
}

// Publish replaces the buffered frame. The sequence advances by exactly one
// per call. Older frames are simply unreferenced; readers still holding
// them keep valid, immutable data.
func (b *LatestFrameBuffer) Publish(f *Frame, capturedAt time.Time) {
	b.mu.Lock()
	b.frame = f
	b.capturedAt = capturedAt
	b.sequence++
	b.mu.Unlock()
}

// Read returns the most recent frame and its capture time, or (nil, zero
// time) before the first publish. It never waits for a new frame.
func (b *LatestFrameBuffer) Read() (*Frame, time.Time) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.frame, b.capturedAt
}

// Snapshot returns frame, capture time and sequence as one consistent view.
func (b *LatestFrameBuffer) Snapshot() FrameSnapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return FrameSnapshot{Frame: b.frame, CapturedAt: b.capturedAt, Sequence: b.sequence}
}

// Sequence returns how many frames have been published so far.
func (b *LatestFrameBuffer) Sequence() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.sequence
}
