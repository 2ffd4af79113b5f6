package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeader_RoundTrip(t *testing.T) {
	h := NewHeader("agx-orin-64gb", 8, 3, 5, true, 1000, 100, 10,
		[]string{"VDD_GPU_SOC", "VDD_CPU_CV", "VIN_SYS_5V0"},
		[]string{"CPU-therm", "GPU-therm", "SOC0-therm", "SOC1-therm", "SOC2-therm"})
	h.NFast, h.NMedium, h.NSlow, h.NSync = 1234, 123, 12, 3

	buf := h.Encode()
	require.Len(t, buf, HeaderSize)

	got, err := DecodeHeader(buf[:])
	require.NoError(t, err)
	assert.Equal(t, h.BoardName, got.BoardName)
	assert.Equal(t, h.NumCPUCores, got.NumCPUCores)
	assert.Equal(t, h.NumPowerRails, got.NumPowerRails)
	assert.Equal(t, h.NumThermalZones, got.NumThermalZones)
	assert.Equal(t, h.EMCAvailable, got.EMCAvailable)
	assert.Equal(t, h.FastHz, got.FastHz)
	assert.Equal(t, h.MediumHz, got.MediumHz)
	assert.Equal(t, h.SlowHz, got.SlowHz)
	assert.Equal(t, h.NFast, got.NFast)
	assert.Equal(t, h.NMedium, got.NMedium)
	assert.Equal(t, h.NSlow, got.NSlow)
	assert.Equal(t, h.NSync, got.NSync)
	assert.Equal(t, h.PowerRailNames, got.PowerRailNames)
	assert.Equal(t, h.ThermalZoneNames, got.ThermalZoneNames)
}

func TestDecodeHeader_Errors(t *testing.T) {
	_, err := DecodeHeader(make([]byte, 10))
	assert.ErrorIs(t, err, ErrTooSmall)

	zeroes := make([]byte, HeaderSize)
	_, err = DecodeHeader(zeroes)
	assert.ErrorIs(t, err, ErrBadMagic)

	h := NewHeader("x", 1, 0, 0, false, 1000, 100, 10, nil, nil)
	buf := h.Encode()
	// Corrupt the version field (offset 4..8) to something unsupported.
	buf[offVersion] = 99
	_, err = DecodeHeader(buf[:])
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestFastSample_RoundTrip(t *testing.T) {
	var s FastSample
	s.TimeS = 1.5
	s.GPULoad = 750
	s.CPUAggregate = 42.5
	s.RAMUsedKB = 1 << 20
	s.RAMAvailableKB = 1 << 22
	s.EMCUtil = -1.0
	for i := range s.CPUUtil {
		s.CPUUtil[i] = float32(i) * 1.5
	}

	buf := s.Encode()
	require.Len(t, buf, FastSampleSize)
	got := DecodeFastSample(buf[:])
	assert.Equal(t, s, got)
}

func TestMediumSample_RoundTrip(t *testing.T) {
	var s MediumSample
	s.TimeS = 2.25
	for i := 0; i < MaxPowerRails; i++ {
		s.VoltageMV[i] = uint32(1000 + i)
		s.CurrentMA[i] = uint32(200 + i)
		s.PowerMW[i] = float32(i) * 100
	}
	buf := s.Encode()
	require.Len(t, buf, MediumSampleSize)
	assert.Equal(t, s, DecodeMediumSample(buf[:]))
}

func TestSlowSample_RoundTrip(t *testing.T) {
	var s SlowSample
	s.TimeS = 3.0
	for i := range s.TempC {
		s.TempC[i] = 40 + float32(i)
	}
	buf := s.Encode()
	require.Len(t, buf, SlowSampleSize)
	assert.Equal(t, s, DecodeSlowSample(buf[:]))
}

func TestSyncPoint_RoundTrip(t *testing.T) {
	p := SyncPoint{SyncID: 7, FastSampleIdx: 12345}
	buf := p.Encode()
	require.Len(t, buf, SyncPointSize)
	assert.Equal(t, p, DecodeSyncPoint(buf[:]))
}

func TestRecordSizesMatchSpec(t *testing.T) {
	assert.Equal(t, 98, FastSampleSize)
	assert.Equal(t, 104, MediumSampleSize)
	assert.Equal(t, 72, SlowSampleSize)
	assert.Equal(t, 16, SyncPointSize)
	assert.Equal(t, 728, HeaderSize)
}
