package profiler

import "github.com/tracekit/nvtrace/pkg/board"

// WithSession opens a profiler against cfg, runs fn with it, and guarantees
// Close runs on every exit path from fn, including a panic. The panic is
// re-raised after Close completes so the file is still finalized with
// correct counters.
func WithSession(path string, cfg board.Config, fastHz, mediumHz, slowHz uint32, logCfg LogConfig, fn func(*Profiler) error) (err error) {
	p, err := Open(path, cfg, fastHz, mediumHz, slowHz, logCfg)
	if err != nil {
		return err
	}

	defer func() {
		closeErr := p.Close()
		if r := recover(); r != nil {
			panic(r)
		}
		if err == nil {
			err = closeErr
		}
	}()

	err = fn(p)
	return err
}
