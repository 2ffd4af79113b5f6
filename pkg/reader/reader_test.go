//go:build linux

package reader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCPU_FirstSamplePrimesAndReportsZero(t *testing.T) {
	c := NewCPU(4)
	util, agg, err := c.Sample()
	require.NoError(t, err)
	assert.Equal(t, float32(0), agg)
	for _, u := range util {
		assert.Equal(t, float32(0), u)
	}
}

func TestCPU_SecondSampleWithinRange(t *testing.T) {
	c := NewCPU(4)
	_, _, err := c.Sample()
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	util, agg, err := c.Sample()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, agg, float32(0))
	assert.LessOrEqual(t, agg, float32(100))
	for _, u := range util {
		assert.GreaterOrEqual(t, u, float32(0))
		assert.LessOrEqual(t, u, float32(100))
	}
}

func TestGPU_ReadsMilliunits(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "gpu_load", "420\n")

	g, err := NewGPU(path)
	require.NoError(t, err)
	defer g.Close()

	assert.Equal(t, uint16(420), g.Sample())
}

func TestGPU_ClampsToRange(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "gpu_load", "5000\n")

	g, err := NewGPU(path)
	require.NoError(t, err)
	defer g.Close()

	assert.Equal(t, uint16(1000), g.Sample())
}

func TestGPU_MissingPath(t *testing.T) {
	_, err := NewGPU(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestRAM_ReadsRealMemInfo(t *testing.T) {
	r := NewRAM()
	used, avail := r.Sample()
	assert.Greater(t, used, uint64(0))
	assert.Greater(t, avail, uint64(0))
}

func TestPower_ComputesPowerFromVoltageAndCurrent(t *testing.T) {
	dir := t.TempDir()
	vPath := writeFile(t, dir, "in_voltage", "5000\n")
	cPath := writeFile(t, dir, "in_current", "800\n")

	p := NewPower([]PowerRailPaths{{VoltagePath: vPath, CurrentPath: cPath}})
	defer p.Close()

	v, c, w := p.Sample()
	assert.Equal(t, uint32(5000), v[0])
	assert.Equal(t, uint32(800), c[0])
	assert.InDelta(t, 4000, w[0], 0.01)
}

func TestPower_UnavailableRailReadsZero(t *testing.T) {
	p := NewPower([]PowerRailPaths{{VoltagePath: "/nonexistent/v", CurrentPath: "/nonexistent/c"}})
	defer p.Close()

	v, c, w := p.Sample()
	assert.Equal(t, uint32(0), v[0])
	assert.Equal(t, uint32(0), c[0])
	assert.Equal(t, float32(0), w[0])
	assert.Equal(t, uint64(1), p.SoftErrors.Load())
}

func TestThermal_ReadsMillidegrees(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "temp", "42500\n")

	th := NewThermal([]string{path})
	defer th.Close()

	c := th.Sample()
	assert.InDelta(t, 42.5, c[0], 0.001)
}

func TestThermal_UnavailableZoneReadsZero(t *testing.T) {
	th := NewThermal([]string{"/nonexistent/zone"})
	defer th.Close()

	c := th.Sample()
	assert.Equal(t, float32(0), c[0])
	assert.Equal(t, uint64(1), th.SoftErrors.Load())
}

func TestEMC_NilReaderReportsUnavailable(t *testing.T) {
	var e *EMC
	assert.False(t, e.Available())
	assert.Equal(t, float32(-1.0), e.Sample(time.Now()))
	assert.NoError(t, e.Close())
}

func TestEMC_FirstSamplePrimesAndReportsZero(t *testing.T) {
	dir := t.TempDir()
	actmon := writeFile(t, dir, "mc_all", "1000000\n")
	clk := writeFile(t, dir, "clk_rate", "1600000000\n")

	e, err := NewEMC(actmon, clk, "")
	require.NoError(t, err)
	defer e.Close()

	assert.True(t, e.Available())
	assert.Equal(t, float32(0), e.Sample(time.Now()))
}

func TestEMC_SecondSampleComputesUtilizationFromDelta(t *testing.T) {
	dir := t.TempDir()
	actmonPath := filepath.Join(dir, "mc_all")
	require.NoError(t, os.WriteFile(actmonPath, []byte("0\n"), 0o644))
	clkPath := writeFile(t, dir, "clk_rate", "1000000\n") // 1 MHz

	e, err := NewEMC(actmonPath, clkPath, "")
	require.NoError(t, err)
	defer e.Close()

	t0 := time.Now()
	assert.Equal(t, float32(0), e.Sample(t0))

	// Half the clock's per-second activity accumulated over 1 second of
	// wall-clock time should read back as ~50% utilization.
	require.NoError(t, os.WriteFile(actmonPath, []byte("500000\n"), 0o644))
	t1 := t0.Add(time.Second)
	util := e.Sample(t1)
	assert.InDelta(t, 50.0, util, 1.0)
}

func TestEMC_MissingPathReturnsError(t *testing.T) {
	dir := t.TempDir()
	clk := writeFile(t, dir, "clk_rate", "1000000\n")

	_, err := NewEMC(filepath.Join(dir, "missing"), clk, "")
	assert.Error(t, err)
}
