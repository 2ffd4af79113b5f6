//go:build linux

package reader

import (
	"sync/atomic"

	"github.com/tracekit/nvtrace/pkg/trace"
)

// Thermal reads a fixed, ordered set of thermal zones, each exposing
// millidegree-Celsius ASCII integers. Zone order matches the board
// configuration and the header's thermal_zone_names.
type Thermal struct {
	zones      []*pfile
	SoftErrors atomic.Uint64
}

// NewThermal opens every zone's temp_path once. A zone whose path fails to
// open is recorded as unavailable and reads 0 for the session.
func NewThermal(paths []string) *Thermal {
	t := &Thermal{zones: make([]*pfile, len(paths))}
	for i, path := range paths {
		f, err := openPfile(path)
		if err != nil {
			t.SoftErrors.Add(1)
			continue
		}
		t.zones[i] = f
	}
	return t
}

// Sample fills tempC for every configured zone, in degrees Celsius.
func (t *Thermal) Sample() (tempC [trace.MaxThermalZones]float32) {
	for i := 0; i < len(t.zones) && i < trace.MaxThermalZones; i++ {
		f := t.zones[i]
		if f == nil {
			continue
		}
		milli, err := f.readInt64At0()
		if err != nil {
			t.SoftErrors.Add(1)
			continue
		}
		tempC[i] = float32(milli) / 1000
	}
	return tempC
}

// Close releases every zone's held file descriptor.
func (t *Thermal) Close() error {
	var first error
	for _, f := range t.zones {
		if err := f.close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
