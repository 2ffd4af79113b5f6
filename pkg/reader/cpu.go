//go:build linux

package reader

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/tracekit/nvtrace/pkg/trace"
)

// jiffies is one core's (idle, total) jiffy snapshot from /proc/stat.
type jiffies struct {
	idle  uint64
	total uint64
}

// CPU reads per-core and aggregate CPU utilization from /proc/stat. It keeps
// the previous snapshot per core (and the aggregate line) so that
// utilization can be computed as a delta between successive samples; the
// first call after construction primes state and reports all zeros.
type CPU struct {
	numCores   int
	prev       map[string]jiffies
	primed     bool
	SoftErrors atomic.Uint64
}

// NewCPU returns a CPU reader for the given core count. /proc/stat is opened
// fresh on every sample (it is a virtual, always-current kernel file with no
// seek hazards), so there is no persistent file descriptor to hold.
func NewCPU(numCores int) *CPU {
	return &CPU{numCores: numCores, prev: make(map[string]jiffies)}
}

// Sample returns per-core utilization (percent, clamped [0,100]) in
// util[0:numCores] and the aggregate utilization in aggregate.
func (c *CPU) Sample() (util [trace.MaxCPUCores]float32, aggregate float32, err error) {
	lines, err := readProcStatLines()
	if err != nil {
		c.SoftErrors.Add(1)
		return util, 0, err
	}

	for key, fields := range lines {
		j, perr := parseJiffies(fields)
		if perr != nil {
			continue
		}
		prev, ok := c.prev[key]
		c.prev[key] = j
		if !ok || !c.primed {
			continue
		}
		dIdle := deltaU64(j.idle, prev.idle)
		dTotal := deltaU64(j.total, prev.total)
		u := clampPercent(100 * (1 - safeDiv(float64(dIdle), float64(dTotal))))

		if key == "cpu" {
			aggregate = float32(u)
			continue
		}
		idx, ok := coreIndex(key)
		if ok && idx < trace.MaxCPUCores && idx < c.numCores {
			util[idx] = float32(u)
		}
	}

	if !c.primed {
		c.primed = true
	}
	return util, aggregate, nil
}

func readProcStatLines() (map[string][]string, error) {
	f, err := os.Open("/proc/stat")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out := make(map[string][]string)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || !strings.HasPrefix(fields[0], "cpu") {
			continue
		}
		out[fields[0]] = fields[1:]
	}
	if _, ok := out["cpu"]; !ok {
		return nil, ErrNoCPULine
	}
	return out, sc.Err()
}

// parseJiffies parses the eight whitespace-separated counters following a
// "cpu"/"cpuN" key: user, nice, system, idle, iowait, irq, softirq, steal.
func parseJiffies(fields []string) (jiffies, error) {
	if len(fields) < 8 {
		return jiffies{}, ErrShortCPULine
	}
	vals := make([]uint64, 8)
	for i := 0; i < 8; i++ {
		v, err := strconv.ParseUint(fields[i], 10, 64)
		if err != nil {
			return jiffies{}, err
		}
		vals[i] = v
	}
	idle := vals[3] + vals[4]
	var total uint64
	for _, v := range vals {
		total += v
	}
	return jiffies{idle: idle, total: total}, nil
}

func coreIndex(key string) (int, bool) {
	if !strings.HasPrefix(key, "cpu") || key == "cpu" {
		return 0, false
	}
	n, err := strconv.Atoi(key[3:])
	if err != nil {
		return 0, false
	}
	return n, true
}
