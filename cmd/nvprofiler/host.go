//go:build linux

package main

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/tracekit/nvtrace/pkg/board"
	"github.com/tracekit/nvtrace/pkg/types"
)

const _console = `nvprofiler - High-frequency Jetson Orin profiler

* GitHub: https://github.com/tracekit/nvtrace

       Host: %s
       Kernel: %s
       CPUs: %d
       Mem: %s
       Board: %s (%d cores, %d rails, %d zones)

Profiling as of %s:

`

// printHostBanner prints a one-time summary of the machine next to the board
// description the session will sample with. Purely diagnostic: the sampling
// core only ever reads the board's own raw kernel paths, never a generic
// host library.
func printHostBanner(cfg board.Config) {
	hostname, kernel := "unknown", "unknown"
	if info, err := host.Info(); err == nil {
		hostname, kernel = info.Hostname, info.KernelVersion
	}

	cpus, _ := cpu.Counts(true)

	totalMem := "unknown"
	if vm, err := mem.VirtualMemory(); err == nil {
		totalMem = types.Bytes(vm.Total).Humanized()
	}

	fmt.Printf(_console, hostname, kernel, cpus, totalMem,
		cfg.BoardName, cfg.NumCPUCores, len(cfg.PowerRails), len(cfg.ThermalZones),
		time.Now().Format("2006-01-02 15:04:05"))
}
