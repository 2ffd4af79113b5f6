// Package types holds small shared value types used by the CLI surface.
package types

import "fmt"

// Bytes is a size in bytes.
type Bytes uint64

// FromKB converts a kilobyte count (as carried in fast samples) to Bytes.
func FromKB(kb uint64) Bytes { return Bytes(kb * 1024) }

// Humanized renders the size with an automatic binary unit (B, KB, MB, GB, TB).
func (b Bytes) Humanized() string {
	v := float64(b)
	switch {
	case b >= 1<<40:
		return fmt.Sprintf("%.2f TB", v/(1<<40))
	case b >= 1<<30:
		return fmt.Sprintf("%.2f GB", v/(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.2f MB", v/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.2f KB", v/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// GiB returns the size in gibibytes.
func (b Bytes) GiB() float64 { return float64(b) / (1 << 30) }
