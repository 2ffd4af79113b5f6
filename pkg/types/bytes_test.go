package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytes_Humanized(t *testing.T) {
	tests := []struct {
		name string
		in   Bytes
		exp  string
	}{
		{"zero", 0, "0 B"},
		{"bytes", 512, "512 B"},
		{"kilobytes", 2048, "2.00 KB"},
		{"megabytes", 5 << 20, "5.00 MB"},
		{"gigabytes", 3 << 30, "3.00 GB"},
		{"terabytes", 2 << 40, "2.00 TB"},
		{"fractional", 1536, "1.50 KB"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.exp, tt.in.Humanized())
		})
	}
}

func TestFromKB(t *testing.T) {
	assert.Equal(t, Bytes(1<<20), FromKB(1024))
	assert.Equal(t, "1.00 MB", FromKB(1024).Humanized())
}

func TestBytes_GiB(t *testing.T) {
	assert.InDelta(t, 1.5, Bytes(3<<29).GiB(), 1e-9)
}
