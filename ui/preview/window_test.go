package preview

import (
	"testing"

	"github.com/soocke/screenfeed-go/domain/capture"
)

func testFrame(fill byte) *capture.Frame {
	pix := make([]byte, 4*2*4)
	for i := range pix {
		pix[i] = fill
	}
	return &capture.Frame{Pix: pix, Width: 4, Height: 2, Stride: 16, Format: capture.FormatBGRA}
}

func TestWindow_PollKeyEmptyByDefault(t *testing.T) {
	w := NewWindow()

	if k, ok := w.PollKey(); ok {
		t.Fatalf("expected no key, got %d", k)
	}
}

func TestWindow_PollKeyDrainsOnce(t *testing.T) {
	w := NewWindow()
	w.key.Store(capture.KeyEscape) // what the Escape binding does

	k, ok := w.PollKey()
	if !ok || k != capture.KeyEscape {
		t.Fatalf("expected escape, got key=%d ok=%v", k, ok)
	}
	if k, ok := w.PollKey(); ok {
		t.Fatalf("key should drain after one poll, got %d", k)
	}
}

func TestWindow_ShowKeepsNewestFrame(t *testing.T) {
	w := NewWindow()
	first := testFrame(1)
	second := testFrame(2)

	w.Show(first)
	w.Show(second)
	w.Show(nil)

	if got := w.pending.Load(); got != second {
		t.Fatalf("expected newest frame pending, got %v", got)
	}
}

func TestWindow_OpenMarksRequested(t *testing.T) {
	w := NewWindow()

	if err := w.Open("feed"); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if !w.opened.Load() {
		t.Fatalf("open should mark the window requested")
	}
	if got := w.title.Load(); got == nil || *got != "feed" {
		t.Fatalf("title not stored: %v", got)
	}
}

func TestWindow_CloseIdempotent(t *testing.T) {
	w := NewWindow()

	w.Close()
	w.Close()

	if !w.closing.Load() {
		t.Fatalf("close should latch")
	}
}
