package capture

import "errors"

// Error classes for the capture package. Failure sites wrap these with
// fmt.Errorf("%w: ...") so callers can classify with errors.Is.
var (
	// ErrConfig reports an invalid construction parameter (unknown pixel
	// format, malformed region, preview enabled without a previewer).
	// Returned synchronously, never from the worker.
	ErrConfig = errors.New("capture: invalid configuration")

	// ErrRegionResolve reports that the worker could not resolve its
	// capture region against the available displays. Fatal to the run;
	// nothing is published.
	ErrRegionResolve = errors.New("capture: region resolution failed")

	// ErrGrab reports failed capture I/O: opening the grabber, acquiring
	// pixels, or opening the preview surface. Fatal to the run; the
	// recovery path is a fresh Start.
	ErrGrab = errors.New("capture: grab failed")
)
