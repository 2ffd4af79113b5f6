package trace

import (
	"encoding/binary"
	"fmt"
)

// Header is the fixed 728-byte trace file header. It is written as a
// zero-filled placeholder when a session opens (so that the record regions
// that follow it land at stable offsets) and rewritten in place with final
// counts when the session closes.
type Header struct {
	NumCPUCores      uint8
	NumPowerRails    uint8
	NumThermalZones  uint8
	EMCAvailable     bool
	FastHz           uint32
	MediumHz         uint32
	SlowHz           uint32
	NFast            uint64
	NMedium          uint64
	NSlow            uint64
	NSync            uint64
	BoardName        string
	PowerRailNames   []string
	ThermalZoneNames []string
}

// NewHeader builds a Header for a freshly opened session; record counts
// start at zero and are filled in when the session finalizes the file.
func NewHeader(boardName string, numCPUCores, numPowerRails, numThermalZones uint8, emcAvailable bool, fastHz, mediumHz, slowHz uint32, railNames, zoneNames []string) Header {
	return Header{
		NumCPUCores:      numCPUCores,
		NumPowerRails:    numPowerRails,
		NumThermalZones:  numThermalZones,
		EMCAvailable:     emcAvailable,
		FastHz:           fastHz,
		MediumHz:         mediumHz,
		SlowHz:           slowHz,
		BoardName:        boardName,
		PowerRailNames:   railNames,
		ThermalZoneNames: zoneNames,
	}
}

// Encode packs the header into a HeaderSize-byte little-endian buffer.
func (h Header) Encode() [HeaderSize]byte {
	var buf [HeaderSize]byte

	binary.LittleEndian.PutUint32(buf[offMagic:], Magic)
	binary.LittleEndian.PutUint32(buf[offVersion:], Version)
	putFixedString(buf[offBoardName:offBoardName+BoardNameSize], h.BoardName)

	buf[offNumCPUCores] = h.NumCPUCores
	buf[offNumPowerRails] = h.NumPowerRails
	buf[offNumThermalZones] = h.NumThermalZones
	if h.EMCAvailable {
		buf[offEMCAvailable] = 1
	}

	binary.LittleEndian.PutUint32(buf[offFastHz:], h.FastHz)
	binary.LittleEndian.PutUint32(buf[offMediumHz:], h.MediumHz)
	binary.LittleEndian.PutUint32(buf[offSlowHz:], h.SlowHz)

	binary.LittleEndian.PutUint64(buf[offNFast:], h.NFast)
	binary.LittleEndian.PutUint64(buf[offNMedium:], h.NMedium)
	binary.LittleEndian.PutUint64(buf[offNSlow:], h.NSlow)
	binary.LittleEndian.PutUint64(buf[offNSync:], h.NSync)

	for i := 0; i < MaxPowerRails; i++ {
		off := offPowerRailNames + i*NameSize
		if i < len(h.PowerRailNames) {
			putFixedString(buf[off:off+NameSize], h.PowerRailNames[i])
		}
	}
	for i := 0; i < MaxThermalZones; i++ {
		off := offThermalZoneNames + i*NameSize
		if i < len(h.ThermalZoneNames) {
			putFixedString(buf[off:off+NameSize], h.ThermalZoneNames[i])
		}
	}
	// offReserved..HeaderSize is left zero.

	return buf
}

// DecodeHeader parses and validates a header from the front of buf. It
// returns ErrTooSmall, ErrBadMagic, or ErrUnsupportedVersion before touching
// any field that depends on a valid layout.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, fmt.Errorf("%w: got %d bytes", ErrTooSmall, len(buf))
	}

	magic := binary.LittleEndian.Uint32(buf[offMagic:])
	if magic != Magic {
		return Header{}, fmt.Errorf("%w: 0x%08X", ErrBadMagic, magic)
	}
	version := binary.LittleEndian.Uint32(buf[offVersion:])
	if version != Version {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	h := Header{
		BoardName:       getFixedString(buf[offBoardName : offBoardName+BoardNameSize]),
		NumCPUCores:     buf[offNumCPUCores],
		NumPowerRails:   buf[offNumPowerRails],
		NumThermalZones: buf[offNumThermalZones],
		EMCAvailable:    buf[offEMCAvailable] != 0,
		FastHz:          binary.LittleEndian.Uint32(buf[offFastHz:]),
		MediumHz:        binary.LittleEndian.Uint32(buf[offMediumHz:]),
		SlowHz:          binary.LittleEndian.Uint32(buf[offSlowHz:]),
		NFast:           binary.LittleEndian.Uint64(buf[offNFast:]),
		NMedium:         binary.LittleEndian.Uint64(buf[offNMedium:]),
		NSlow:           binary.LittleEndian.Uint64(buf[offNSlow:]),
		NSync:           binary.LittleEndian.Uint64(buf[offNSync:]),
	}

	for i := 0; i < int(h.NumPowerRails) && i < MaxPowerRails; i++ {
		off := offPowerRailNames + i*NameSize
		h.PowerRailNames = append(h.PowerRailNames, getFixedString(buf[off:off+NameSize]))
	}
	for i := 0; i < int(h.NumThermalZones) && i < MaxThermalZones; i++ {
		off := offThermalZoneNames + i*NameSize
		h.ThermalZoneNames = append(h.ThermalZoneNames, getFixedString(buf[off:off+NameSize]))
	}

	return h, nil
}

func putFixedString(dst []byte, s string) {
	for i := range dst {
		dst[i] = 0
	}
	copy(dst, s)
}

func getFixedString(src []byte) string {
	i := 0
	for i < len(src) && src[i] != 0 {
		i++
	}
	return string(src[:i])
}
