package capture

import "time"

// KeyEscape is the key code previewers report when the user asks to quit.
const KeyEscape = 27

// FrameSource provides read-only access to captured frames. Latest returns
// the freshest frame and its capture time while Running reports worker
// activity.
type FrameSource interface {
	Latest() (*Frame, time.Time)
	Snapshot() FrameSnapshot
	Running() bool
}

// ServiceContract exposes lifecycle control for capture services.
type ServiceContract interface {
	Start()
	Stop()
	Running() bool
}

// Grabber acquires raw pixels from the OS. Implementations are not
// goroutine safe: a grabber is constructed and used on the capture worker
// goroutine only, because some backends bind their handles to the thread
// that created them.
type Grabber interface {
	// Regions lists capturable rectangles: index 0 is the virtual desktop
	// spanning all displays, 1..N the physical displays in enumeration
	// order.
	Regions() ([]Region, error)
	// Grab returns Width*Height*4 tightly packed BGRA bytes for r, with
	// alpha forced opaque.
	Grab(r Region) ([]byte, error)
}

// GrabberFactory defers grabber construction to the worker goroutine.
type GrabberFactory func() (Grabber, error)

// Previewer renders frames in a window and reports key presses. The worker
// calls Open once per run, Show and PollKey each iteration, and Close on
// exit; implementations must accept those calls from the worker goroutine.
type Previewer interface {
	Open(title string) error
	Show(f *Frame)
	// PollKey drains the most recent key press. ok is false when nothing
	// was pressed since the previous call.
	PollKey() (key int, ok bool)
	Close()
}
