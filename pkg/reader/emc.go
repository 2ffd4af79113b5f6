//go:build linux

package reader

import (
	"sync/atomic"
	"time"
)

// EMC computes external memory controller utilization from the mc_all
// activity accumulator exposed under debugfs. mc_all is a raw counter, not a
// percentage: utilization for a sample is
//
//	(mc_all_now - mc_all_prev) / (clk_rate_hz * dt_seconds) * 100
//
// clamped to [0,100]. Both mc_all and the clock-rate file are read with
// Pread at offset 0 on every sample; debugfs returns a pipe-style error on
// seek, so lseek+read would silently read stale data here rather than fail.
type EMC struct {
	actmon   *pfile
	clkRate  *pfile
	periodNS int64

	primed     bool
	prevCount  int64
	prevT      time.Time
	SoftErrors atomic.Uint64
}

// NewEMC opens actmonPath and clkRatePath and primes sample_period_ns from
// periodPath. If either of the two required paths fails to open, it returns
// (nil, err); the caller keeps the nil reader (which samples as disabled)
// and marks the header's emc_available as false.
func NewEMC(actmonPath, clkRatePath, periodPath string) (*EMC, error) {
	actmon, err := openPfile(actmonPath)
	if err != nil {
		return nil, err
	}
	clk, err := openPfile(clkRatePath)
	if err != nil {
		actmon.close()
		return nil, err
	}

	e := &EMC{actmon: actmon, clkRate: clk}
	if periodPath != "" {
		if pf, perr := openPfile(periodPath); perr == nil {
			if v, rerr := pf.readInt64At0(); rerr == nil {
				e.periodNS = v
			}
			pf.close()
		}
	}
	return e, nil
}

// Available reports whether this reader is live (non-nil receiver).
func (e *EMC) Available() bool { return e != nil }

// Sample returns utilization in percent, or -1.0 if e is nil (EMC disabled
// for this session) or either file fails to read. The very first successful
// call only primes state and returns 0.
func (e *EMC) Sample(now time.Time) float32 {
	if e == nil {
		return -1.0
	}

	count, cerr := e.actmon.readInt64At0()
	rate, rerr := e.clkRate.readInt64At0()
	if cerr != nil || rerr != nil {
		e.SoftErrors.Add(1)
		return -1.0
	}

	if !e.primed {
		e.prevCount, e.prevT, e.primed = count, now, true
		return 0
	}

	dCount := deltaU64(uint64(count), uint64(e.prevCount))
	dt := now.Sub(e.prevT).Seconds()
	e.prevCount, e.prevT = count, now

	if rate <= 0 || dt <= 0 {
		return 0
	}
	util := safeDiv(float64(dCount), float64(rate)*dt) * 100
	return float32(clampPercent(util))
}

// Close releases the held actmon and clock-rate file descriptors. It is safe
// to call on a nil *EMC.
func (e *EMC) Close() error {
	if e == nil {
		return nil
	}
	var first error
	if err := e.actmon.close(); err != nil {
		first = err
	}
	if err := e.clkRate.close(); err != nil && first == nil {
		first = err
	}
	return first
}
