package trace

// Magic identifies an nvtrace binary trace file.
const Magic uint32 = 0x4E564D54

// Version is the only header version this package writes or accepts.
const Version uint32 = 1

const (
	// HeaderSize is the fixed size, in bytes, of the trace header.
	HeaderSize = 728

	// MaxCPUCores bounds the per-core CPU utilization array in a fast sample.
	MaxCPUCores = 16
	// MaxPowerRails bounds the voltage/current/power arrays in a medium sample.
	MaxPowerRails = 8
	// MaxThermalZones bounds the temperature array in a slow sample.
	MaxThermalZones = 16

	// NameSize is the null-padded width of each rail/zone name in the header.
	NameSize = 24
	// BoardNameSize is the null-padded width of the board name in the header.
	BoardNameSize = 32

	// FastSampleSize is the packed, little-endian size of one fast-tier record.
	FastSampleSize = 98
	// MediumSampleSize is the packed, little-endian size of one medium-tier record.
	MediumSampleSize = 104
	// SlowSampleSize is the packed, little-endian size of one slow-tier record.
	SlowSampleSize = 72
	// SyncPointSize is the packed, little-endian size of one sync-point record.
	SyncPointSize = 16
)

const (
	offMagic            = 0
	offVersion          = 4
	offBoardName        = 8
	offNumCPUCores      = 40
	offNumPowerRails    = 41
	offNumThermalZones  = 42
	offEMCAvailable     = 43
	offFastHz           = 44
	offMediumHz         = 48
	offSlowHz           = 52
	offNFast            = 56
	offNMedium          = 64
	offNSlow            = 72
	offNSync            = 80
	offPowerRailNames   = 88
	offThermalZoneNames = 280
	offReserved         = 664
	reservedSize        = 64
)
