// Package mapper implements the cartridge mapper contract: PRG/CHR bank
// routing, nametable mirroring selection, and mapper-asserted IRQ.
package mapper

import "fmt"

// MirrorMode is the nametable mirroring mode a mapper exposes to the PPU
// memory map. Some mappers (MMC1, MMC3) change this at runtime in response
// to register writes; others fix it at load time from the iNES header.
type MirrorMode int

const (
	MirrorHorizontal MirrorMode = iota
	MirrorVertical
	MirrorSingleScreenLo
	MirrorSingleScreenHi
	MirrorFourScreen
)

// Mapper is the cartridge contract the bus and PPU memory map program
// against. WriteCHR reports whether it mutated CHR RAM (a write to CHR ROM
// space, or to a cartridge with no CHR RAM, is a no-op and returns false)
// so callers that care about RAM-presence semantics can observe it.
// NotifyA12 is called by the PPU once per filtered, debounced rising edge
// of VRAM address bit 12 — the filtering itself lives in the PPU's memory
// map (spec'd as an 8-dot low-hold requirement), not in the mapper.
type Mapper interface {
	ReadPRG(addr uint16) uint8
	WritePRG(addr uint16, value uint8)
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, value uint8) bool
	MirrorMode() MirrorMode
	IRQLine() bool
	NotifyA12()
}

// CartridgeData is the backing storage a mapper banks over.
type CartridgeData struct {
	PRGROM []uint8
	CHRROM []uint8
	PRGRAM []uint8
	CHRRAM []uint8

	// HeaderMirroring is the iNES-header-derived mirroring, used by mappers
	// (0, 2, 3) that never change mirroring at runtime.
	HeaderMirroring MirrorMode
}

// New creates a mapper instance for the given iNES mapper number.
func New(mapperNumber uint8, data *CartridgeData) (Mapper, error) {
	switch mapperNumber {
	case 0:
		return NewMapper0(data), nil
	case 1:
		return NewMapper1(data), nil
	case 2:
		return NewMapper2(data), nil
	case 3:
		return NewMapper3(data), nil
	case 4:
		return NewMapper4(data), nil
	default:
		return nil, fmt.Errorf("unsupported mapper: %d", mapperNumber)
	}
}
