package profiler

import (
	"bufio"
	"bytes"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tracekit/nvtrace/pkg/ring"
	"github.com/tracekit/nvtrace/pkg/trace"
)

// writer is the dedicated drain thread: it owns the output file exclusively
// once opened and is the only goroutine that writes to it. The on-disk
// layout is sectioned (header, then every fast record, then every medium
// record, then slow, then sync), so only the fast stream (the bulky one) is
// streamed straight to the file behind a buffered writer. The three low-rate
// streams accumulate in memory and are appended as whole sections when the
// session finalizes; at their nominal rates that costs ~11 KB per second of
// session. Within a tier, records stay in push order.
type writer struct {
	f  *os.File
	bw *bufio.Writer
	lg zerolog.Logger

	fastRing   *ring.Ring[trace.FastSample]
	mediumRing *ring.Ring[trace.MediumSample]
	slowRing   *ring.Ring[trace.SlowSample]
	syncRing   *ring.Ring[trace.SyncPoint]

	mediumBuf bytes.Buffer
	slowBuf   bytes.Buffer
	syncBuf   bytes.Buffer

	nFast   atomic.Uint64
	nMedium atomic.Uint64
	nSlow   atomic.Uint64
	nSync   atomic.Uint64

	fatalErr atomic.Pointer[error]

	// onFatal raises the session stop flag so samplers shut down when the
	// writer dies mid-session.
	onFatal func()
}

// run drains the rings every drainInterval until stop is closed and every
// ring is empty, then returns. A fatal I/O error stops the drain loop
// immediately and is recorded for close() to surface.
func (w *writer) run(stop <-chan struct{}, drainInterval time.Duration) {
	for {
		w.drainOnce()
		if w.fatalErr.Load() != nil {
			return
		}

		select {
		case <-stop:
			w.drainOnce() // final drain: catch anything pushed right before stop
			return
		case <-time.After(drainInterval):
		}
	}
}

func (w *writer) drainOnce() {
	for {
		s, ok := w.fastRing.Pop()
		if !ok {
			break
		}
		buf := s.Encode()
		if _, err := w.bw.Write(buf[:]); err != nil {
			w.lg.Error().Err(err).Msg("fatal write error")
			e := err
			w.fatalErr.Store(&e)
			w.onFatal()
			return
		}
		w.nFast.Add(1)
	}
	for {
		s, ok := w.mediumRing.Pop()
		if !ok {
			break
		}
		buf := s.Encode()
		w.mediumBuf.Write(buf[:])
		w.nMedium.Add(1)
	}
	for {
		s, ok := w.slowRing.Pop()
		if !ok {
			break
		}
		buf := s.Encode()
		w.slowBuf.Write(buf[:])
		w.nSlow.Add(1)
	}
	for {
		p, ok := w.syncRing.Pop()
		if !ok {
			break
		}
		buf := p.Encode()
		w.syncBuf.Write(buf[:])
		w.nSync.Add(1)
	}
}

// finish flushes the fast stream and appends the buffered medium, slow, and
// sync sections behind it, completing the record regions of the file. It
// must only run after the drain loop has returned.
func (w *writer) finish() error {
	if err := w.bw.Flush(); err != nil {
		return err
	}
	for _, section := range []*bytes.Buffer{&w.mediumBuf, &w.slowBuf, &w.syncBuf} {
		if _, err := w.f.Write(section.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
