//go:build linux

package reader

import (
	"bytes"
	"os"

	"golang.org/x/sys/unix"
)

// pfile is a kernel pseudo-file held open for the life of the session and
// always read from offset 0 via Pread. lseek+read is deliberately never
// used here: debugfs sources such as mc_all return a pipe-style error on
// seek, and falling back to a plain read then silently returns stale data
// instead of failing.
type pfile struct {
	f    *os.File
	path string
	buf  [256]byte
}

func openPfile(path string) (*pfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &pfile{f: f, path: path}, nil
}

func (p *pfile) close() error {
	if p == nil || p.f == nil {
		return nil
	}
	return p.f.Close()
}

// readAt0 reads the current contents of the file via a positional read at
// offset 0 and returns the bytes with trailing whitespace trimmed.
func (p *pfile) readAt0() ([]byte, error) {
	n, err := unix.Pread(int(p.f.Fd()), p.buf[:], 0)
	if err != nil {
		return nil, err
	}
	return bytes.TrimSpace(p.buf[:n]), nil
}

// readInt64At0 reads an ASCII decimal integer from offset 0.
func (p *pfile) readInt64At0() (int64, error) {
	raw, err := p.readAt0()
	if err != nil {
		return 0, err
	}
	return parseInt64(raw)
}

func parseInt64(b []byte) (int64, error) {
	var neg bool
	i := 0
	if len(b) > 0 && (b[i] == '-' || b[i] == '+') {
		neg = b[i] == '-'
		i++
	}
	var v int64
	if i == len(b) {
		return 0, errNotANumber
	}
	for ; i < len(b); i++ {
		c := b[i]
		if c < '0' || c > '9' {
			return 0, errNotANumber
		}
		v = v*10 + int64(c-'0')
	}
	if neg {
		v = -v
	}
	return v, nil
}
