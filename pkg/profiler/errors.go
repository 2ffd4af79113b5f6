package profiler

import "errors"

var (
	// ErrInvalidHz indicates a tier rate fell outside [1,2000].
	ErrInvalidHz = errors.New("profiler: tier rate must be in [1,2000]")

	// ErrNotRunning indicates Sync was called on a Profiler that was never
	// opened or has already closed.
	ErrNotRunning = errors.New("profiler: not running")

	// ErrWriterFailed wraps a fatal writer-side I/O error surfaced from Close.
	ErrWriterFailed = errors.New("profiler: writer failed")
)
