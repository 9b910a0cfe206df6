package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/soocke/screenfeed-go/config"
	"github.com/soocke/screenfeed-go/debug"
	"github.com/soocke/screenfeed-go/domain/capture"
	"github.com/soocke/screenfeed-go/ui/preview"
)

const (
	pollInterval  = 5 * time.Millisecond
	debugInterval = 30 * time.Second
)

// App wires the capture service to its consumer: a headless frame drain,
// or a Tk preview window when configured.
type App struct {
	logger  *slog.Logger
	cfg     *config.Config
	service *capture.Service
	preview *preview.Window
}

func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	opts, err := cfg.CaptureOptions()
	if err != nil {
		return nil, err
	}
	var win *preview.Window
	if cfg.Preview {
		win = preview.NewWindow()
		opts.Previewer = win
	}
	svc, err := capture.NewService(logger, opts)
	if err != nil {
		return nil, err
	}
	if win != nil {
		win.SetStatsSource(svc.Stats)
	}
	return &App{logger: logger, cfg: cfg, service: svc, preview: win}, nil
}

// Run starts capturing and blocks until ctx is cancelled, the capture
// worker dies, or the preview window is closed. A cancelled context is a
// clean shutdown and returns nil.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.Debug {
		debug.StartGoroutineLogger(debugInterval, a.logger)
		debug.StartMemLogger(debugInterval, a.logger)
	}

	a.service.Start()
	defer a.service.Stop()

	if a.preview != nil {
		return a.runPreview(ctx)
	}
	return a.runHeadless(ctx)
}

// runHeadless polls the latest-frame buffer and logs a digest of every
// new frame at debug level.
func (a *App) runHeadless(ctx context.Context) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	var lastSeq uint64
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-a.service.Done():
			return a.service.Err()
		case <-ticker.C:
			snap := a.service.Snapshot()
			if snap.Sequence == lastSeq || snap.Frame == nil {
				continue
			}
			lastSeq = snap.Sequence
			a.logger.Debug("frame",
				slog.Uint64("seq", snap.Sequence),
				slog.Time("captured_at", snap.CapturedAt),
				slog.Int("bytes", len(snap.Frame.Pix)),
				slog.Uint64("checksum", uint64(sampleChecksum(snap.Frame))),
			)
		}
	}
}

// runPreview pumps the Tk window on the calling goroutine, which must be
// the main one. A watcher closes the window when ctx is cancelled or the
// worker dies, unblocking the pump.
func (a *App) runPreview(ctx context.Context) error {
	go func() {
		select {
		case <-ctx.Done():
		case <-a.service.Done():
		}
		a.preview.Close()
	}()

	a.preview.Run()

	if ctx.Err() != nil {
		return nil
	}
	return a.service.Err()
}

// sampleChecksum digests a frame by summing every 4096th byte. Cheap
// enough to run per frame; collisions are acceptable for a debug digest.
func sampleChecksum(f *capture.Frame) uint32 {
	if f == nil || len(f.Pix) == 0 {
		return 0
	}
	var sum uint32
	for i := 0; i < len(f.Pix); i += 4096 {
		sum += uint32(f.Pix[i])
	}
	return sum
}
