package trace

import "errors"

var (
	// ErrTooSmall indicates a buffer shorter than HeaderSize was handed to DecodeHeader.
	ErrTooSmall = errors.New("trace: buffer smaller than header size")

	// ErrBadMagic indicates the header's magic number did not match Magic.
	ErrBadMagic = errors.New("trace: bad magic")

	// ErrUnsupportedVersion indicates the header's version field isn't one this package reads.
	ErrUnsupportedVersion = errors.New("trace: unsupported version")
)
