//go:build linux

package reader

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
)

// RAM reads MemTotal and MemAvailable from /proc/meminfo. Like CPU, it
// reopens the file every sample: /proc/meminfo is a virtual file with no
// seek hazard, so there is no descriptor worth holding open.
type RAM struct {
	SoftErrors atomic.Uint64
}

// NewRAM returns a RAM reader; there is no per-session state to initialize.
func NewRAM() *RAM { return &RAM{} }

// Sample returns (usedKB, availableKB). On read failure it returns
// (0, 0) and increments SoftErrors.
func (r *RAM) Sample() (usedKB, availableKB uint64) {
	total, avail, err := readMemInfo()
	if err != nil {
		r.SoftErrors.Add(1)
		return 0, 0
	}
	if total < avail {
		return 0, avail
	}
	return total - avail, avail
}

func readMemInfo() (total, available uint64, err error) {
	f, err := os.Open("/proc/meminfo")
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	var haveTotal, haveAvail bool
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "MemTotal:"):
			total, err = parseMemInfoKB(line)
			haveTotal = err == nil
		case strings.HasPrefix(line, "MemAvailable:"):
			available, err = parseMemInfoKB(line)
			haveAvail = err == nil
		}
	}
	if serr := sc.Err(); serr != nil {
		return 0, 0, serr
	}
	if !haveTotal || !haveAvail {
		return 0, 0, ErrNoMemInfo
	}
	return total, available, nil
}

// parseMemInfoKB parses a "Label:   12345 kB" line into its kB value.
func parseMemInfoKB(line string) (uint64, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, ErrNoMemInfo
	}
	return strconv.ParseUint(fields[1], 10, 64)
}
