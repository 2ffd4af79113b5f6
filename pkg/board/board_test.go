package board

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		BoardName:   "agx-orin-64gb",
		NumCPUCores: 12,
		PowerRails: []PowerRail{
			{Label: "VDD_GPU_SOC", VoltagePath: "/sys/a/volt", CurrentPath: "/sys/a/curr"},
		},
		ThermalZones: []ThermalZone{
			{Name: "CPU-therm", TempPath: "/sys/class/thermal/thermal_zone0/temp"},
		},
		GPULoadPath:    "/sys/devices/gpu.0/load",
		EMCActmonPath:  "/sys/kernel/debug/bpmp/debug/actmon_avg_activity/mc_all",
		EMCClkRatePath: "/sys/kernel/debug/bpmp/debug/clk/emc/rate",
	}
}

func TestConfig_Validate_OK(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestConfig_Validate_NameTooLong(t *testing.T) {
	c := validConfig()
	long := ""
	for i := 0; i < 40; i++ {
		long += "x"
	}
	c.BoardName = long
	assert.ErrorIs(t, c.Validate(), ErrNameTooLong)
}

func TestConfig_Validate_BadCoreCount(t *testing.T) {
	c := validConfig()
	c.NumCPUCores = 0
	assert.ErrorIs(t, c.Validate(), ErrBadCoreCount)

	c.NumCPUCores = 17
	assert.ErrorIs(t, c.Validate(), ErrBadCoreCount)
}

func TestConfig_Validate_EmptyRailPath(t *testing.T) {
	c := validConfig()
	c.PowerRails[0].CurrentPath = ""
	assert.ErrorIs(t, c.Validate(), ErrEmptyRailPath)
}

func TestConfig_Validate_EmptyZonePath(t *testing.T) {
	c := validConfig()
	c.ThermalZones[0].TempPath = ""
	assert.ErrorIs(t, c.Validate(), ErrEmptyZonePath)
}

func TestConfig_EMCConfigured(t *testing.T) {
	c := validConfig()
	assert.True(t, c.EMCConfigured())
	c.EMCClkRatePath = ""
	assert.False(t, c.EMCConfigured())
}

func TestConfig_GPUConfigured(t *testing.T) {
	c := validConfig()
	assert.True(t, c.GPUConfigured())
	c.GPULoadPath = ""
	assert.False(t, c.GPUConfigured())
}

func TestConfig_RailAndZoneNames(t *testing.T) {
	c := validConfig()
	assert.Equal(t, []string{"VDD_GPU_SOC"}, c.RailNames())
	assert.Equal(t, []string{"CPU-therm"}, c.ZoneNames())
}

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.yaml")
	const doc = `
board_name: agx-orin-64gb
num_cpu_cores: 12
power_rails:
  - label: VDD_GPU_SOC
    voltage_path: /sys/a/volt
    current_path: /sys/a/curr
thermal_zones:
  - name: CPU-therm
    temp_path: /sys/class/thermal/thermal_zone0/temp
gpu_load_path: /sys/devices/gpu.0/load
emc_actmon_path: /sys/kernel/debug/bpmp/debug/actmon_avg_activity/mc_all
emc_clk_rate_path: /sys/kernel/debug/bpmp/debug/clk/emc/rate
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "agx-orin-64gb", cfg.BoardName)
	assert.Equal(t, 12, cfg.NumCPUCores)
	assert.Len(t, cfg.PowerRails, 1)
	assert.Len(t, cfg.ThermalZones, 1)
}

func TestLoad_InvalidYAML_FailsValidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.yaml")
	const doc = `
board_name: bad
num_cpu_cores: 0
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrBadCoreCount)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
