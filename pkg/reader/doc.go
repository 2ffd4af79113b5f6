// Package reader implements the typed source readers that turn kernel
// pseudo-files into sample fields: GPU load, per-core and aggregate CPU
// utilization, EMC utilization, RAM usage, power-rail voltage/current/power,
// and thermal-zone temperature.
//
// The GPU, EMC, power, and thermal readers open their kernel paths once at
// construction and hold them for the life of the profiling session. The CPU
// and RAM readers instead reopen /proc/stat and /proc/meminfo on every
// sample and read them sequentially. Readers that need a delta between
// successive snapshots (CPU, EMC) keep that state internally and report zero
// on their first call.
//
// The held sysfs and debugfs paths are read with Pread at offset 0 rather
// than lseek+read: debugfs files such as mc_all return a pipe-style error on
// seek, and naive seek-then-read code silently returns stale or truncated
// data instead of failing loudly.
package reader
