package profiler

// Status is a point-in-time snapshot of the profiler's internal counters,
// useful for dashboards and diagnostics without touching the hot path.
type Status struct {
	Running bool

	FastSamples   uint64
	MediumSamples uint64
	SlowSamples   uint64
	SyncPoints    uint64

	FastOverflow   uint64
	MediumOverflow uint64
	SlowOverflow   uint64
	SyncOverflow   uint64

	GPUSoftErrors     uint64
	CPUSoftErrors     uint64
	EMCSoftErrors     uint64
	RAMSoftErrors     uint64
	PowerSoftErrors   uint64
	ThermalSoftErrors uint64

	LastSyncID uint64
}
