package capture

import "time"

// FrameSnapshot is one consistent view of the latest-frame buffer: the
// frame, when it was captured, and how many publishes have happened. The
// zero value means nothing has been published yet.
type FrameSnapshot struct {
	Frame      *Frame
	CapturedAt time.Time
	Sequence   uint64
}

// CaptureStats summarises acquisition loop behaviour for instrumentation.
// Counters cover the current worker run; Sequence spans runs.
type CaptureStats struct {
	Frames           uint64
	AvgAcquire       time.Duration
	AvgAcquireMicros float64
	Rate             float64
	LastCapture      time.Time
	LatestFrameAge   time.Duration
	Sequence         uint64
}
