// Package trace defines the on-disk layout of an nvtrace binary trace file:
// a fixed 728-byte header followed by four packed, little-endian record
// streams (fast, medium, slow, sync). The layout is shared by the writer in
// pkg/profiler and by anything that later reads a trace back.
//
// File layout
//
//	header (728 B) ‖ fast records ‖ medium records ‖ slow records ‖ sync records
//
// Every record is fixed size and packed with no inter-record padding; arrays
// inside a record are zero-padded to their maxima (MaxCPUCores,
// MaxPowerRails, MaxThermalZones) regardless of how many are active for a
// given board; a reader trims using the header's counts.
package trace
