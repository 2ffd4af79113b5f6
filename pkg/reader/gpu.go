//go:build linux

package reader

import "sync/atomic"

// GPU reads the GPU load file, which reports milliunits (0..1000) as ASCII.
// A read failure yields 0 and bumps SoftErrors rather than failing the
// sample.
type GPU struct {
	f          *pfile
	SoftErrors atomic.Uint64
}

// NewGPU opens path once for the life of the session. A nil *GPU (returned
// alongside a non-nil error) means the caller should treat GPU reporting as
// disabled; callers holding a non-nil *GPU always get a reader that degrades
// to zero on failure instead of erroring.
func NewGPU(path string) (*GPU, error) {
	f, err := openPfile(path)
	if err != nil {
		return nil, err
	}
	return &GPU{f: f}, nil
}

// Sample returns the current GPU load in milliunits, clamped to [0,1000].
func (g *GPU) Sample() uint16 {
	v, err := g.f.readInt64At0()
	if err != nil {
		g.SoftErrors.Add(1)
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1000 {
		return 1000
	}
	return uint16(v)
}

// Close releases the held file descriptor.
func (g *GPU) Close() error {
	return g.f.close()
}
