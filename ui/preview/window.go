package preview

import (
	"fmt"
	"image"
	"sync/atomic"
	"time"

	// Named import: this package declares Window, which would collide
	// with tk9.0's own Window under a dot import.
	tk "modernc.org/tk9.0"

	"github.com/soocke/screenfeed-go/domain/capture"
	"github.com/soocke/screenfeed-go/ui/images"
	"github.com/soocke/screenfeed-go/ui/theme"
)

const (
	// Pump tick. Frames arriving faster than this are coalesced; the
	// label always shows the newest one.
	pumpInterval = 33 * time.Millisecond

	// Max preview dimensions; larger frames are scaled down proportionally.
	maxPreviewW = 960
	maxPreviewH = 540

	keyNone = -1
)

// Window renders captured frames in a Tk window. Tk is only safe on the
// goroutine that runs the event loop, so the capture-facing methods
// (Open, Show, PollKey, Close) never touch widgets. They publish into
// atomics that the pump, scheduled on the Tk loop by Run, consumes.
//
// Pressing Escape or closing the window registers key 27, which the
// capture worker reads through PollKey and treats as a quit request.
type Window struct {
	title   atomic.Pointer[string]
	pending atomic.Pointer[capture.Frame]
	key     atomic.Int32
	opened  atomic.Bool
	closing atomic.Bool

	stats func() capture.CaptureStats

	// Tk event loop state, touched only by the pump.
	built       bool
	afterID     string
	frameLabel  *tk.LabelWidget
	statusLabel *tk.LabelWidget
	photo       *tk.Img
}

var _ capture.Previewer = (*Window)(nil)

func NewWindow() *Window {
	w := &Window{}
	w.key.Store(keyNone)
	return w
}

// SetStatsSource installs a stats callback rendered into the status line.
// Must be called before Run.
func (w *Window) SetStatsSource(fn func() capture.CaptureStats) {
	w.stats = fn
}

// Open requests the window. Widgets are constructed by the pump on its
// next tick; Open itself cannot fail.
func (w *Window) Open(title string) error {
	w.title.Store(&title)
	w.opened.Store(true)
	return nil
}

// Show hands a frame to the pump. Newest frame wins; Show never blocks.
func (w *Window) Show(f *capture.Frame) {
	if f == nil {
		return
	}
	w.pending.Store(f)
}

// PollKey drains the last key press, if any.
func (w *Window) PollKey() (int, bool) {
	k := w.key.Swap(keyNone)
	if k == keyNone {
		return 0, false
	}
	return int(k), true
}

// Close asks the pump to destroy the window, unblocking Run. Safe to
// call from any goroutine and more than once.
func (w *Window) Close() {
	w.closing.Store(true)
}

// Run drives the Tk event loop until Close is called or the user quits.
// It must run on the main goroutine.
func (w *Window) Run() {
	w.schedule()
	tk.App.Wait()
}

func (w *Window) schedule() {
	w.afterID = tk.TclAfter(pumpInterval, func() { w.tick() })
}

func (w *Window) tick() {
	if w.closing.Load() {
		if w.afterID != "" {
			tk.TclAfterCancel(w.afterID)
			w.afterID = ""
		}
		tk.Destroy(tk.App)
		return
	}
	if w.opened.Load() && !w.built {
		w.build()
	}
	if w.built {
		w.render()
	}
	w.schedule()
}

func (w *Window) build() {
	theme.InitStyles()
	title := "screenfeed"
	if t := w.title.Load(); t != nil && *t != "" {
		title = *t
	}
	tk.App.WmTitle(title)
	tk.WmProtocol(tk.App, "WM_DELETE_WINDOW", func() { w.key.Store(capture.KeyEscape) })
	tk.Bind(tk.App, "<Escape>", tk.Command(func() { w.key.Store(capture.KeyEscape) }))

	placeholder := image.NewRGBA(image.Rect(0, 0, 320, 180))
	w.photo = tk.NewPhoto(tk.Data(images.EncodePNG(placeholder)))
	w.frameLabel = tk.Label(tk.Image(w.photo), tk.Borderwidth(1), tk.Relief("sunken"), tk.Background(theme.ColorSurface))
	tk.Pack(w.frameLabel, tk.Padx("1m"), tk.Pady("1m"))
	w.statusLabel = tk.Label(tk.Txt("waiting for frames"), tk.Borderwidth(1), tk.Relief("ridge"), tk.Background(theme.ColorAccent), tk.Foreground("white"))
	tk.Pack(w.statusLabel, tk.Padx("1m"), tk.Pady("1m"))
	w.built = true
}

func (w *Window) render() {
	f := w.pending.Swap(nil)
	if f == nil {
		return
	}
	img := f.Image()
	if img == nil {
		return
	}
	scaled := images.ScaleToFit(img, maxPreviewW, maxPreviewH)
	pngBytes := images.EncodePNG(scaled)
	// Dispose the previous Tk photo before replacing it so off-screen
	// pixel data does not accumulate.
	if w.photo != nil {
		w.photo.Delete()
	}
	w.photo = tk.NewPhoto(tk.Data(pngBytes))
	w.frameLabel.Configure(tk.Image(w.photo))
	w.statusLabel.Configure(tk.Txt(w.statusLine(f)))
}

func (w *Window) statusLine(f *capture.Frame) string {
	if w.stats == nil {
		return fmt.Sprintf("%dx%d %s", f.Width, f.Height, f.Format)
	}
	s := w.stats()
	return fmt.Sprintf("%dx%d %s  frame %d  %.1f fps", f.Width, f.Height, f.Format, s.Sequence, s.Rate)
}
