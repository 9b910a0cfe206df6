package capture

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const (
	statsLogInterval = 5 * time.Second
	stopTimeout      = 2 * time.Second
	previewTitle     = "screenfeed"
)

// Options configures a Service. The zero value captures the full virtual
// desktop in BGRA with the platform grabber.
type Options struct {
	// Monitor indexes the grabber's region list: 0 is the full virtual
	// desktop, 1..N a physical display. Validated inside the worker,
	// where the display count is first known. Ignored when ROI is set.
	Monitor int
	// ROI captures an explicit rectangle instead of a monitor.
	ROI *Region
	// Format selects the published pixel layout.
	Format PixelFormat
	// TargetFPS caps the acquisition rate. Values below 1 are raised to 1.
	TargetFPS int
	// Preview shows each frame in the Previewer while capturing.
	Preview   bool
	Previewer Previewer
	// NewGrabber overrides the platform grabber factory, mainly for tests.
	NewGrabber GrabberFactory
	// OnPublish, when set, runs on the worker goroutine after every
	// publish. Keep it short; it delays the next acquisition.
	OnPublish func(FrameSnapshot)
}

// Service captures frames on a background worker and retains only the most
// recent one. Start spawns the worker, Stop joins it with a bounded wait,
// and Latest hands out the freshest frame without ever blocking the
// producer. Construct with NewService.
type Service struct {
	opts   Options
	logger *slog.Logger

	buf     LatestFrameBuffer
	running atomic.Bool
	state   atomic.Int32

	mu  sync.Mutex
	cur *worker // live or most recently exited run; nil before first Start
	err error   // error that ended the last run, nil while healthy

	frames       atomic.Uint64
	acquireNanos atomic.Uint64
	runStart     atomic.Int64
}

// worker is the per-run control block. Every Start allocates a fresh one,
// so a run abandoned by a timed-out Stop keeps its own stop flag and can
// never be revived by a later Start.
type worker struct {
	stop atomic.Bool
	done chan struct{}
}

func (w *worker) exited() bool {
	select {
	case <-w.done:
		return true
	default:
		return false
	}
}

var (
	_ FrameSource     = (*Service)(nil)
	_ ServiceContract = (*Service)(nil)
)

// NewService validates opts and returns a stopped service. A nil logger
// disables logging.
func NewService(logger *slog.Logger, opts Options) (*Service, error) {
	if opts.Format.Channels() == 0 {
		return nil, fmt.Errorf("%w: unknown pixel format %d", ErrConfig, int(opts.Format))
	}
	if opts.ROI != nil {
		if err := opts.ROI.ValidateROI(); err != nil {
			return nil, err
		}
		roi := *opts.ROI // detach from the caller's pointer
		opts.ROI = &roi
	}
	if opts.TargetFPS < 1 {
		opts.TargetFPS = 1
	}
	if opts.Preview && opts.Previewer == nil {
		return nil, fmt.Errorf("%w: preview enabled without a previewer", ErrConfig)
	}
	if opts.NewGrabber == nil {
		opts.NewGrabber = NewGrabber
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{opts: opts, logger: logger}, nil
}

// Start spawns the capture worker and returns immediately. No-op while a
// worker from a previous Start is still alive.
func (s *Service) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur != nil && !s.cur.exited() {
		return
	}
	w := &worker{done: make(chan struct{})}
	s.cur = w
	s.err = nil
	s.frames.Store(0)
	s.acquireNanos.Store(0)
	s.runStart.Store(0)
	s.running.Store(true)
	s.state.Store(int32(StateResolving))
	go s.run(w)
}

// Stop asks the worker to exit after its current iteration and waits up to
// stopTimeout for it. On timeout it returns anyway and forgets the run, so
// a later Start spawns a fresh worker. Idempotent when already stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	w := s.cur
	s.mu.Unlock()
	if w == nil {
		return
	}
	w.stop.Store(true)
	select {
	case <-w.done:
	case <-time.After(stopTimeout):
		s.logger.Warn("capture.stop timed out", "timeout", stopTimeout)
		s.mu.Lock()
		if s.cur == w {
			s.cur = nil
			s.running.Store(false)
			s.state.Store(int32(StateStopped))
		}
		s.mu.Unlock()
	}
}

// Latest returns the most recent frame and its capture time, or (nil, zero
// time) before the first publish. Safe from any goroutine at any point in
// the lifecycle.
func (s *Service) Latest() (*Frame, time.Time) { return s.buf.Read() }

// Snapshot returns frame, capture time and sequence as one consistent view.
func (s *Service) Snapshot() FrameSnapshot { return s.buf.Snapshot() }

func (s *Service) Running() bool { return s.running.Load() }

// State reports the worker's lifecycle phase.
func (s *Service) State() WorkerState { return WorkerState(s.state.Load()) }

// Err returns the error that ended the last worker run, or nil after a
// clean stop. Cleared by the next Start.
func (s *Service) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Done returns a channel that is closed once the current worker run has
// exited. Before the first Start, and after a timed-out Stop, it returns an
// already closed channel so callers can always select on it.
func (s *Service) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return closedChan
	}
	return s.cur.done
}

var closedChan = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// Stats summarises the current run for instrumentation.
func (s *Service) Stats() CaptureStats {
	frames := s.frames.Load()
	total := s.acquireNanos.Load()
	var avg time.Duration
	avgMicros := 0.0
	if frames > 0 && total > 0 {
		avg = time.Duration(total / frames)
		avgMicros = float64(avg) / float64(time.Microsecond)
	}
	rate := 0.0
	if start := s.runStart.Load(); start > 0 {
		if secs := time.Since(time.Unix(0, start)).Seconds(); secs > 0 {
			rate = float64(frames) / secs
		}
	}
	snap := s.buf.Snapshot()
	age := time.Duration(0)
	if !snap.CapturedAt.IsZero() {
		age = time.Since(snap.CapturedAt)
	}
	return CaptureStats{
		Frames:           frames,
		AvgAcquire:       avg,
		AvgAcquireMicros: avgMicros,
		Rate:             rate,
		LastCapture:      snap.CapturedAt,
		LatestFrameAge:   age,
		Sequence:         snap.Sequence,
	}
}

// run executes one worker lifetime: construct the grabber, resolve the
// region, then capture until stopped. The grabber lives and dies on this
// goroutine.
func (s *Service) run(w *worker) {
	defer s.finish(w)
	log := s.logger.With("run", uuid.NewString()[:8])

	grabber, err := s.opts.NewGrabber()
	if err != nil {
		s.fail(w, log, fmt.Errorf("%w: open grabber: %v", ErrGrab, err))
		return
	}
	region, err := resolveRegion(grabber, s.opts.Monitor, s.opts.ROI)
	if err != nil {
		s.fail(w, log, err)
		return
	}

	if s.opts.Preview {
		if err := s.opts.Previewer.Open(previewTitle); err != nil {
			s.fail(w, log, fmt.Errorf("%w: open preview: %v", ErrGrab, err))
			return
		}
		defer s.opts.Previewer.Close()
	}

	interval := time.Second / time.Duration(s.opts.TargetFPS)
	log.Info("capture.start",
		"region", region.String(),
		"format", s.opts.Format.String(),
		"fps", s.opts.TargetFPS,
	)
	s.runStart.Store(time.Now().UnixNano())
	s.setState(w, StateCapturing)

	logTicker := time.NewTicker(statsLogInterval)
	defer logTicker.Stop()

	for !w.stop.Load() {
		t0 := time.Now()

		raw, err := grabber.Grab(region)
		if err != nil {
			s.fail(w, log, fmt.Errorf("%w: %v", ErrGrab, err))
			return
		}
		frame, err := convertBGRA(raw, region.Width, region.Height, s.opts.Format)
		if err != nil {
			s.fail(w, log, err)
			return
		}
		if frame.Format != FormatBGRA {
			recycleStaging(raw)
		}

		s.acquireNanos.Add(uint64(time.Since(t0).Nanoseconds()))
		s.frames.Add(1)
		s.buf.Publish(frame, t0)
		if s.opts.OnPublish != nil {
			s.opts.OnPublish(s.buf.Snapshot())
		}

		if s.opts.Preview {
			s.opts.Previewer.Show(frame)
			if key, ok := s.opts.Previewer.PollKey(); ok && key == KeyEscape {
				log.Info("capture.preview_quit")
				w.stop.Store(true)
				break
			}
		}

		select {
		case <-logTicker.C:
			s.logStats(log)
		default:
		}

		if rest := interval - time.Since(t0); rest > 0 {
			time.Sleep(rest)
		}
	}
	log.Info("capture.stop", "frames", s.frames.Load())
}

// setState advances the run's lifecycle phase, but only while this
// worker is still the current one.
func (s *Service) setState(w *worker, state WorkerState) {
	s.mu.Lock()
	if s.cur == w {
		s.state.Store(int32(state))
	}
	s.mu.Unlock()
}

// fail records err as the run's terminal error. A run abandoned by a
// timed-out Stop no longer owns the error slot.
func (s *Service) fail(w *worker, log *slog.Logger, err error) {
	s.mu.Lock()
	if s.cur == w {
		s.err = err
	}
	s.mu.Unlock()
	log.Error("capture.error", "error", err)
}

// finish clears run bookkeeping, but only when this worker is still the
// current one; an abandoned run must not disturb its successor.
func (s *Service) finish(w *worker) {
	s.mu.Lock()
	if s.cur == w {
		s.running.Store(false)
		s.state.Store(int32(StateStopped))
	}
	s.mu.Unlock()
	close(w.done)
}

func (s *Service) logStats(log *slog.Logger) {
	stats := s.Stats()
	log.Debug("capture.stats",
		"frames", stats.Frames,
		"rate", stats.Rate,
		"avg_acquire", stats.AvgAcquire,
		"age", stats.LatestFrameAge,
	)
}
