package reader

import "errors"

var (
	// ErrNoCPULine indicates /proc/stat had no aggregate "cpu" line.
	ErrNoCPULine = errors.New("reader: no aggregate cpu line in /proc/stat")

	// ErrShortCPULine indicates a /proc/stat cpu line had fewer fields than expected.
	ErrShortCPULine = errors.New("reader: short cpu line in /proc/stat")

	// ErrNoMemInfo indicates /proc/meminfo was missing MemTotal or MemAvailable.
	ErrNoMemInfo = errors.New("reader: missing MemTotal/MemAvailable in /proc/meminfo")

	errNotANumber = errors.New("reader: not an ascii integer")
)
