//go:build linux

package reader

import (
	"sync/atomic"

	"github.com/tracekit/nvtrace/pkg/trace"
)

// Power reads a fixed, ordered set of power rails, each exposing a
// voltage-in-millivolts path and a current-in-milliamps path as ASCII
// integers. Rail order matches the board configuration and the header's
// power_rail_names, so index i here is always rail i everywhere else.
type Power struct {
	rails      []powerRail
	SoftErrors atomic.Uint64
}

type powerRail struct {
	voltage *pfile
	current *pfile
}

// PowerRailPaths is the subset of board.PowerRail this package depends on,
// expressed without importing pkg/board to avoid a dependency cycle.
type PowerRailPaths struct {
	VoltagePath string
	CurrentPath string
}

// NewPower opens every rail's voltage and current paths once. If any single
// rail's paths fail to open, that rail is recorded as unavailable and its
// readings stay at zero for the session; other rails are unaffected.
func NewPower(rails []PowerRailPaths) *Power {
	p := &Power{rails: make([]powerRail, len(rails))}
	for i, r := range rails {
		v, verr := openPfile(r.VoltagePath)
		c, cerr := openPfile(r.CurrentPath)
		if verr != nil || cerr != nil {
			p.SoftErrors.Add(1)
			continue
		}
		p.rails[i] = powerRail{voltage: v, current: c}
	}
	return p
}

// Sample fills voltageMV, currentMA, and powerMW for every configured rail.
// A rail whose files are unavailable or fail to read reports 0 in all three
// fields for that sample.
func (p *Power) Sample() (voltageMV, currentMA [trace.MaxPowerRails]uint32, powerMW [trace.MaxPowerRails]float32) {
	for i := 0; i < len(p.rails) && i < trace.MaxPowerRails; i++ {
		r := p.rails[i]
		if r.voltage == nil || r.current == nil {
			continue
		}
		v, verr := r.voltage.readInt64At0()
		c, cerr := r.current.readInt64At0()
		if verr != nil || cerr != nil {
			p.SoftErrors.Add(1)
			continue
		}
		if v < 0 {
			v = 0
		}
		if c < 0 {
			c = 0
		}
		voltageMV[i] = uint32(v)
		currentMA[i] = uint32(c)
		powerMW[i] = float32(v) * float32(c) / 1000
	}
	return voltageMV, currentMA, powerMW
}

// Close releases every rail's held file descriptors.
func (p *Power) Close() error {
	var first error
	for _, r := range p.rails {
		if err := r.voltage.close(); err != nil && first == nil {
			first = err
		}
		if err := r.current.close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
