// Package bus implements the CPU-visible address space: 2KiB internal RAM
// mirrored through $1FFF, the PPU register window mirrored every 8 bytes
// through $3FFF, the APU/input region at $4000-$4017, and the cartridge
// mapper beyond that. It is the glue the system package wires the CPU,
// PPU, APU, controllers, and cartridge through, matching the teacher's
// memory.Memory role under the name the spec's bus contract (C1) uses.
package bus

import (
	"github.com/lonedot/nescore/pkg/apu"
	"github.com/lonedot/nescore/pkg/input"
)

// PPUPort is the CPU-visible register surface the PPU exposes.
type PPUPort interface {
	ReadRegister(reg uint16) uint8
	WriteRegister(reg uint16, value uint8)
}

// Cartridge is the PRG-side surface the bus drives.
type Cartridge interface {
	ReadPRG(addr uint16) uint8
	WritePRG(addr uint16, value uint8)
}

// Bus is the shared address space wired between the CPU and every other
// component. Controller1/Controller2 back $4016/$4017. $4014 (OAM DMA) is
// not handled here: the CPU intercepts that write itself to drive its own
// stall state machine, and still passes the write through to this Bus so
// the latch/logging path stays uniform.
type Bus struct {
	RAM [2048]uint8

	PPU         PPUPort
	APU         *apu.APU
	Cartridge   Cartridge
	Controller1 *input.Controller
	Controller2 *input.Controller

	// openBusLatch holds the last byte driven onto the bus by any
	// CPU-visible access, returned for reads that land on unmapped
	// regions (real hardware floats the data bus to its last value).
	openBusLatch uint8
}

// New creates a bus with its two controller ports ready; the system
// package wires in the PPU, APU, and cartridge after construction.
func New() *Bus {
	return &Bus{
		Controller1: input.New(),
		Controller2: input.New(),
	}
}

// Read performs a CPU-visible read and updates the open-bus latch.
func (b *Bus) Read(addr uint16) uint8 {
	value := b.read(addr)
	b.openBusLatch = value
	return value
}

func (b *Bus) read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.RAM[addr&0x07FF]
	case addr < 0x4000:
		if b.PPU != nil {
			switch addr & 7 {
			case 2, 4, 7: // PPUSTATUS, OAMDATA, PPUDATA; the rest are write-only
				return b.PPU.ReadRegister(addr)
			}
		}
		return b.openBusLatch
	case addr == 0x4015:
		if b.APU != nil {
			return b.APU.ReadRegister(addr)
		}
		return b.openBusLatch
	case addr == 0x4016:
		return b.controllerRead(b.Controller1)
	case addr == 0x4017:
		return b.controllerRead(b.Controller2)
	case addr < 0x4018:
		return b.openBusLatch
	default:
		if b.Cartridge != nil {
			return b.Cartridge.ReadPRG(addr)
		}
		return b.openBusLatch
	}
}

// controllerRead merges the controller's serial bit onto the open-bus
// latch's upper bits, matching real hardware where only bit 0 (and bit 1
// for $4017's expansion-port line, unused here) is driven by the port.
func (b *Bus) controllerRead(c *input.Controller) uint8 {
	if c == nil {
		return b.openBusLatch & 0xFE
	}
	return (b.openBusLatch & 0xFE) | (c.Read() & 0x01)
}

// Write performs a CPU-visible write and updates the open-bus latch.
func (b *Bus) Write(addr uint16, value uint8) {
	b.openBusLatch = value
	switch {
	case addr < 0x2000:
		b.RAM[addr&0x07FF] = value
	case addr < 0x4000:
		if b.PPU != nil {
			b.PPU.WriteRegister(addr, value)
		}
	case addr == 0x4014:
		// OAM DMA trigger: the CPU drives its own stall/transfer state
		// machine for this write; nothing on the bus side consumes it.
	case addr == 0x4016:
		b.Controller1.Write(value)
		b.Controller2.Write(value)
	case addr < 0x4018:
		if b.APU != nil {
			b.APU.WriteRegister(addr, value)
		}
	case addr < 0x4020:
		// APU/IO test registers and unused space: no device on this bus.
	default:
		if b.Cartridge != nil {
			b.Cartridge.WritePRG(addr, value)
		}
	}
}
