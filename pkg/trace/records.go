package trace

import (
	"encoding/binary"
	"math"
)

// FastSample is one fast-tier (≈1 kHz nominal) record: 98 packed bytes.
type FastSample struct {
	TimeS          float64
	GPULoad        uint16               // milliunits, 0..1000
	CPUUtil        [MaxCPUCores]float32 // percent, 0..100
	CPUAggregate   float32              // percent, 0..100
	RAMUsedKB      uint64
	RAMAvailableKB uint64
	EMCUtil        float32 // percent, or -1.0 when unavailable
}

// Encode packs s into a FastSampleSize-byte little-endian buffer.
func (s FastSample) Encode() [FastSampleSize]byte {
	var buf [FastSampleSize]byte
	off := 0
	putFloat64(buf[off:], s.TimeS)
	off += 8
	binary.LittleEndian.PutUint16(buf[off:], s.GPULoad)
	off += 2
	for i := 0; i < MaxCPUCores; i++ {
		putFloat32(buf[off:], s.CPUUtil[i])
		off += 4
	}
	putFloat32(buf[off:], s.CPUAggregate)
	off += 4
	binary.LittleEndian.PutUint64(buf[off:], s.RAMUsedKB)
	off += 8
	binary.LittleEndian.PutUint64(buf[off:], s.RAMAvailableKB)
	off += 8
	putFloat32(buf[off:], s.EMCUtil)
	return buf
}

// DecodeFastSample unpacks a FastSampleSize-byte buffer written by Encode.
func DecodeFastSample(buf []byte) FastSample {
	var s FastSample
	off := 0
	s.TimeS = getFloat64(buf[off:])
	off += 8
	s.GPULoad = binary.LittleEndian.Uint16(buf[off:])
	off += 2
	for i := 0; i < MaxCPUCores; i++ {
		s.CPUUtil[i] = getFloat32(buf[off:])
		off += 4
	}
	s.CPUAggregate = getFloat32(buf[off:])
	off += 4
	s.RAMUsedKB = binary.LittleEndian.Uint64(buf[off:])
	off += 8
	s.RAMAvailableKB = binary.LittleEndian.Uint64(buf[off:])
	off += 8
	s.EMCUtil = getFloat32(buf[off:])
	return s
}

// MediumSample is one medium-tier (≈100 Hz nominal) record: 104 packed bytes.
type MediumSample struct {
	TimeS     float64
	VoltageMV [MaxPowerRails]uint32
	CurrentMA [MaxPowerRails]uint32
	PowerMW   [MaxPowerRails]float32
}

// Encode packs s into a MediumSampleSize-byte little-endian buffer.
func (s MediumSample) Encode() [MediumSampleSize]byte {
	var buf [MediumSampleSize]byte
	off := 0
	putFloat64(buf[off:], s.TimeS)
	off += 8
	for i := 0; i < MaxPowerRails; i++ {
		binary.LittleEndian.PutUint32(buf[off:], s.VoltageMV[i])
		off += 4
	}
	for i := 0; i < MaxPowerRails; i++ {
		binary.LittleEndian.PutUint32(buf[off:], s.CurrentMA[i])
		off += 4
	}
	for i := 0; i < MaxPowerRails; i++ {
		putFloat32(buf[off:], s.PowerMW[i])
		off += 4
	}
	return buf
}

// DecodeMediumSample unpacks a MediumSampleSize-byte buffer written by Encode.
func DecodeMediumSample(buf []byte) MediumSample {
	var s MediumSample
	off := 0
	s.TimeS = getFloat64(buf[off:])
	off += 8
	for i := 0; i < MaxPowerRails; i++ {
		s.VoltageMV[i] = binary.LittleEndian.Uint32(buf[off:])
		off += 4
	}
	for i := 0; i < MaxPowerRails; i++ {
		s.CurrentMA[i] = binary.LittleEndian.Uint32(buf[off:])
		off += 4
	}
	for i := 0; i < MaxPowerRails; i++ {
		s.PowerMW[i] = getFloat32(buf[off:])
		off += 4
	}
	return s
}

// SlowSample is one slow-tier (≈10 Hz nominal) record: 72 packed bytes.
type SlowSample struct {
	TimeS float64
	TempC [MaxThermalZones]float32
}

// Encode packs s into a SlowSampleSize-byte little-endian buffer.
func (s SlowSample) Encode() [SlowSampleSize]byte {
	var buf [SlowSampleSize]byte
	off := 0
	putFloat64(buf[off:], s.TimeS)
	off += 8
	for i := 0; i < MaxThermalZones; i++ {
		putFloat32(buf[off:], s.TempC[i])
		off += 4
	}
	return buf
}

// DecodeSlowSample unpacks a SlowSampleSize-byte buffer written by Encode.
func DecodeSlowSample(buf []byte) SlowSample {
	var s SlowSample
	off := 0
	s.TimeS = getFloat64(buf[off:])
	off += 8
	for i := 0; i < MaxThermalZones; i++ {
		s.TempC[i] = getFloat32(buf[off:])
		off += 4
	}
	return s
}

// SyncPoint correlates a user-issued sync ID with the fast-tier sample index
// observed at the moment sync() was called: 16 packed bytes.
type SyncPoint struct {
	SyncID        uint64
	FastSampleIdx uint64
}

// Encode packs p into a SyncPointSize-byte little-endian buffer.
func (p SyncPoint) Encode() [SyncPointSize]byte {
	var buf [SyncPointSize]byte
	binary.LittleEndian.PutUint64(buf[0:], p.SyncID)
	binary.LittleEndian.PutUint64(buf[8:], p.FastSampleIdx)
	return buf
}

// DecodeSyncPoint unpacks a SyncPointSize-byte buffer written by Encode.
func DecodeSyncPoint(buf []byte) SyncPoint {
	return SyncPoint{
		SyncID:        binary.LittleEndian.Uint64(buf[0:]),
		FastSampleIdx: binary.LittleEndian.Uint64(buf[8:]),
	}
}

func putFloat32(dst []byte, f float32) {
	binary.LittleEndian.PutUint32(dst, math.Float32bits(f))
}

func getFloat32(src []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(src))
}

func putFloat64(dst []byte, f float64) {
	binary.LittleEndian.PutUint64(dst, math.Float64bits(f))
}

func getFloat64(src []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(src))
}
