package capture

// WorkerState enumerates where the capture worker is in its lifecycle.
type WorkerState int32

const (
	StateIdle WorkerState = iota
	StateResolving
	StateCapturing
	StateStopped
)

func (s WorkerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	case StateCapturing:
		return "capturing"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
