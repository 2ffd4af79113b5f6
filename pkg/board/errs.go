package board

import "errors"

var (
	// ErrNameTooLong indicates a board, rail, or zone name exceeded its field width.
	ErrNameTooLong = errors.New("board: name exceeds byte limit")

	// ErrBadCoreCount indicates num_cpu_cores fell outside [1,16].
	ErrBadCoreCount = errors.New("board: num_cpu_cores must be in [1,16]")

	// ErrTooManyRails indicates more than MaxPowerRails power rails were configured.
	ErrTooManyRails = errors.New("board: too many power rails")

	// ErrTooManyZones indicates more than MaxThermalZones thermal zones were configured.
	ErrTooManyZones = errors.New("board: too many thermal zones")

	// ErrEmptyRailPath indicates a configured rail is missing one of its two paths.
	ErrEmptyRailPath = errors.New("board: power rail missing voltage or current path")

	// ErrEmptyZonePath indicates a configured thermal zone is missing its path.
	ErrEmptyZonePath = errors.New("board: thermal zone missing temp path")
)
