package cartridge

import (
	"fmt"
	"io"

	"github.com/lonedot/nescore/pkg/cartridge/mapper"
)

// Cartridge represents a NES cartridge: its ROM/RAM backing storage, header,
// and the mapper that routes the CPU's PRG address space and the PPU's CHR
// address space over that storage.
type Cartridge struct {
	PRGROM []uint8
	CHRROM []uint8
	PRGRAM []uint8
	CHRRAM []uint8

	Header iNESHeader
	Mapper mapper.Mapper

	Mirroring MirroringMode

	hasBattery bool
}

// iNESHeader represents the iNES file header.
type iNESHeader struct {
	Magic      [4]uint8
	PRGROMSize uint8
	CHRROMSize uint8
	Flags6     uint8
	Flags7     uint8
	Flags8     uint8
	Flags9     uint8
	Flags10    uint8
	Padding    [5]uint8
}

// MirroringMode is the iNES-header mirroring, kept distinct from
// mapper.MirrorMode since the header encodes only horizontal/vertical/
// four-screen — single-screen selection is purely a runtime mapper choice.
type MirroringMode int

const (
	MirroringHorizontal MirroringMode = iota
	MirroringVertical
	MirroringFourScreen
)

func (mm MirroringMode) toMapperMirror() mapper.MirrorMode {
	switch mm {
	case MirroringVertical:
		return mapper.MirrorVertical
	case MirroringFourScreen:
		return mapper.MirrorFourScreen
	default:
		return mapper.MirrorHorizontal
	}
}

// LoadFromReader loads a cartridge from an iNES file.
func LoadFromReader(reader io.Reader) (*Cartridge, error) {
	cart := &Cartridge{}

	if err := cart.readHeader(reader); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if string(cart.Header.Magic[:]) != "NES\x1A" {
		return nil, fmt.Errorf("invalid iNES magic number")
	}

	if cart.Header.Flags6&0x04 != 0 {
		trainer := make([]uint8, 512)
		if _, err := io.ReadFull(reader, trainer); err != nil {
			return nil, fmt.Errorf("failed to read trainer: %w", err)
		}
	}

	prgSize := int(cart.Header.PRGROMSize) * 16384
	cart.PRGROM = make([]uint8, prgSize)
	if _, err := io.ReadFull(reader, cart.PRGROM); err != nil {
		return nil, fmt.Errorf("failed to read PRG ROM: %w", err)
	}

	chrSize := int(cart.Header.CHRROMSize) * 8192
	if chrSize > 0 {
		cart.CHRROM = make([]uint8, chrSize)
		if _, err := io.ReadFull(reader, cart.CHRROM); err != nil {
			return nil, fmt.Errorf("failed to read CHR ROM: %w", err)
		}
	} else {
		mapperNumber := (cart.Header.Flags6 >> 4) | (cart.Header.Flags7 & 0xF0)
		chrRAMSize := 8192
		if mapperNumber == 4 {
			chrRAMSize = 32768
		}
		cart.CHRRAM = make([]uint8, chrRAMSize)
	}

	cart.hasBattery = cart.Header.Flags6&0x02 != 0
	if cart.hasBattery {
		cart.PRGRAM = make([]uint8, 8192)
	}

	switch {
	case cart.Header.Flags6&0x08 != 0:
		cart.Mirroring = MirroringFourScreen
	case cart.Header.Flags6&0x01 != 0:
		cart.Mirroring = MirroringVertical
	default:
		cart.Mirroring = MirroringHorizontal
	}

	mapperNumber := (cart.Header.Flags6 >> 4) | (cart.Header.Flags7 & 0xF0)
	mapperData := &mapper.CartridgeData{
		PRGROM:          cart.PRGROM,
		CHRROM:          cart.CHRROM,
		PRGRAM:          cart.PRGRAM,
		CHRRAM:          cart.CHRRAM,
		HeaderMirroring: cart.Mirroring.toMapperMirror(),
	}

	var err error
	cart.Mapper, err = mapper.New(mapperNumber, mapperData)
	if err != nil {
		return nil, fmt.Errorf("failed to create mapper: %w", err)
	}

	return cart, nil
}

func (c *Cartridge) readHeader(reader io.Reader) error {
	headerBytes := make([]uint8, 16)
	if _, err := io.ReadFull(reader, headerBytes); err != nil {
		return err
	}

	copy(c.Header.Magic[:], headerBytes[0:4])
	c.Header.PRGROMSize = headerBytes[4]
	c.Header.CHRROMSize = headerBytes[5]
	c.Header.Flags6 = headerBytes[6]
	c.Header.Flags7 = headerBytes[7]
	c.Header.Flags8 = headerBytes[8]
	c.Header.Flags9 = headerBytes[9]
	c.Header.Flags10 = headerBytes[10]
	copy(c.Header.Padding[:], headerBytes[11:16])
	return nil
}

func (c *Cartridge) ReadPRG(addr uint16) uint8 {
	if c.Mapper != nil {
		return c.Mapper.ReadPRG(addr)
	}
	return 0
}

func (c *Cartridge) WritePRG(addr uint16, value uint8) {
	if c.Mapper != nil {
		c.Mapper.WritePRG(addr, value)
	}
}

func (c *Cartridge) ReadCHR(addr uint16) uint8 {
	if c.Mapper != nil {
		return c.Mapper.ReadCHR(addr)
	}
	return 0
}

func (c *Cartridge) WriteCHR(addr uint16, value uint8) bool {
	if c.Mapper != nil {
		return c.Mapper.WriteCHR(addr, value)
	}
	return false
}

// NotifyA12 forwards an already-filtered A12 rising edge to the mapper's
// IRQ counter.
func (c *Cartridge) NotifyA12() {
	if c.Mapper != nil {
		c.Mapper.NotifyA12()
	}
}

func (c *Cartridge) IRQLine() bool {
	if c.Mapper != nil {
		return c.Mapper.IRQLine()
	}
	return false
}

// MirrorMode reports the nametable mirroring currently selected, deferring
// to the mapper since MMC1/MMC3 can change it at runtime.
func (c *Cartridge) MirrorMode() mapper.MirrorMode {
	if c.Mapper != nil {
		return c.Mapper.MirrorMode()
	}
	return c.Mirroring.toMapperMirror()
}

// BatteryRAM returns the cartridge's PRG RAM and whether it is battery
// backed (and therefore worth persisting to a save file between sessions).
func (c *Cartridge) BatteryRAM() ([]byte, bool) {
	if !c.hasBattery {
		return nil, false
	}
	return c.PRGRAM, true
}

// LoadBatteryRAM restores a previously saved battery RAM image. The slice is
// copied in place; a length mismatch is reported rather than resizing the
// cartridge's RAM out from under the mapper.
func (c *Cartridge) LoadBatteryRAM(data []byte) error {
	if !c.hasBattery {
		return fmt.Errorf("cartridge has no battery-backed RAM")
	}
	if len(data) != len(c.PRGRAM) {
		return fmt.Errorf("battery RAM size mismatch: got %d, want %d", len(data), len(c.PRGRAM))
	}
	copy(c.PRGRAM, data)
	return nil
}
