// Package board describes the immutable hardware configuration a profiling
// session runs against: board name, CPU core count, power rails, thermal
// zones, and the optional GPU/EMC paths. Board auto-detection (matching
// /proc/device-tree/model to a pre-baked path table) and path-existence
// checks are external collaborators; this package only validates shape and
// name-length limits, never hardware identity.
package board

import (
	"fmt"

	"github.com/tracekit/nvtrace/pkg/trace"
)

// PowerRail is one labeled voltage/current sensor pair.
type PowerRail struct {
	Label       string `yaml:"label"`
	VoltagePath string `yaml:"voltage_path"`
	CurrentPath string `yaml:"current_path"`
}

// ThermalZone is one labeled temperature sensor.
type ThermalZone struct {
	Name     string `yaml:"name"`
	TempPath string `yaml:"temp_path"`
}

// Config is the frozen description of the target board. Construct with Load
// or build one directly, never mutate after a profiling session has started
// against it.
type Config struct {
	BoardName    string        `yaml:"board_name"`
	NumCPUCores  int           `yaml:"num_cpu_cores"`
	PowerRails   []PowerRail   `yaml:"power_rails"`
	ThermalZones []ThermalZone `yaml:"thermal_zones"`

	GPULoadPath    string `yaml:"gpu_load_path"`
	EMCActmonPath  string `yaml:"emc_actmon_path"`
	EMCClkRatePath string `yaml:"emc_clk_rate_path"`
}

// Validate checks the shape of the configuration against the trace header's
// fixed-width fields: board name ≤ 31 bytes, rail labels and zone names ≤ 23
// bytes, at most trace.MaxPowerRails rails and trace.MaxThermalZones zones,
// and core count in [1,16]. It does not check that any path exists or is
// readable; that is an external collaborator's job.
func (c Config) Validate() error {
	if len(c.BoardName) > trace.BoardNameSize-1 {
		return fmt.Errorf("%w: board_name %q (%d bytes, max %d)", ErrNameTooLong, c.BoardName, len(c.BoardName), trace.BoardNameSize-1)
	}
	if c.NumCPUCores < 1 || c.NumCPUCores > trace.MaxCPUCores {
		return fmt.Errorf("%w: got %d", ErrBadCoreCount, c.NumCPUCores)
	}
	if len(c.PowerRails) > trace.MaxPowerRails {
		return fmt.Errorf("%w: got %d, max %d", ErrTooManyRails, len(c.PowerRails), trace.MaxPowerRails)
	}
	for i, r := range c.PowerRails {
		if len(r.Label) > trace.NameSize-1 {
			return fmt.Errorf("%w: rail[%d] label %q (%d bytes, max %d)", ErrNameTooLong, i, r.Label, len(r.Label), trace.NameSize-1)
		}
		if r.VoltagePath == "" || r.CurrentPath == "" {
			return fmt.Errorf("%w: rail[%d] %q", ErrEmptyRailPath, i, r.Label)
		}
	}
	if len(c.ThermalZones) > trace.MaxThermalZones {
		return fmt.Errorf("%w: got %d, max %d", ErrTooManyZones, len(c.ThermalZones), trace.MaxThermalZones)
	}
	for i, z := range c.ThermalZones {
		if len(z.Name) > trace.NameSize-1 {
			return fmt.Errorf("%w: zone[%d] name %q (%d bytes, max %d)", ErrNameTooLong, i, z.Name, len(z.Name), trace.NameSize-1)
		}
		if z.TempPath == "" {
			return fmt.Errorf("%w: zone[%d] %q", ErrEmptyZonePath, i, z.Name)
		}
	}
	return nil
}

// EMCConfigured reports whether both EMC paths were supplied. It does not
// check readability; a board that passes this but fails to open its paths at
// profiler start still runs, with EMC reported as unavailable.
func (c Config) EMCConfigured() bool {
	return c.EMCActmonPath != "" && c.EMCClkRatePath != ""
}

// GPUConfigured reports whether a GPU load path was supplied.
func (c Config) GPUConfigured() bool {
	return c.GPULoadPath != ""
}

// RailNames returns the configured rail labels in order, for header encoding.
func (c Config) RailNames() []string {
	names := make([]string, len(c.PowerRails))
	for i, r := range c.PowerRails {
		names[i] = r.Label
	}
	return names
}

// ZoneNames returns the configured zone names in order, for header encoding.
func (c Config) ZoneNames() []string {
	names := make([]string, len(c.ThermalZones))
	for i, z := range c.ThermalZones {
		names[i] = z.Name
	}
	return names
}
