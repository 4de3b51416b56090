// Package cpu implements the 2A03's 6502-derived execution core as a
// per-cycle micro-stepper: Tick advances exactly one CPU cycle, performing
// either a single bus access or an internal step, matching the addressing
// mode and instruction class decoded at opcode fetch.
package cpu

import (
	"github.com/lonedot/nescore/pkg/interrupt"
	"github.com/lonedot/nescore/pkg/logger"
)

// Bus is the address space the CPU reads and writes on its sub-tick. The
// system wires this to the shared bus, which in turn owns RAM, PPU register
// mirrors, controller ports and the cartridge.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

const (
	FlagCarry     = 1 << 0
	FlagZero      = 1 << 1
	FlagInterrupt = 1 << 2
	FlagDecimal   = 1 << 3
	FlagBreak     = 1 << 4
	FlagUnused    = 1 << 5
	FlagOverflow  = 1 << 6
	FlagNegative  = 1 << 7
)

type dmaPhase int

const (
	dmaIdle dmaPhase = iota
	dmaWait
	dmaRead
	dmaWrite
)

type dmaState struct {
	phase      dmaPhase
	page       uint8
	index      int
	waitCycles int
	latch      uint8
}

// opState holds the compact per-instruction intermediate values the step
// engine needs between cycles, replacing what a naive port would keep in a
// string-keyed scratch map.
type opState struct {
	opcode uint8
	info   opcodeInfo
	step   int

	lo, hi      uint8
	eff         uint16
	pageCrossed bool
	rmwVal      uint8
	branchTaken bool

	kind intKind // set when servicing BRK/IRQ/NMI instead of a fetched opcode
}

// CPU is the 2A03 execution core.
type CPU struct {
	A, X, Y, SP uint8
	PC          uint16
	P           uint8

	Bus   Bus
	Lines *interrupt.Lines

	TotalCycles uint64

	st  opState
	dma dmaState

	// iFlagSample is the interrupt-disable flag value used for the IRQ poll
	// at the current instruction boundary; it is updated to the live flag
	// only after that poll, giving SEI/CLI (and PLP/RTI) their documented
	// one-instruction latency.
	iFlagSample bool

	warmedUp bool // true once past the post-power-on state, for logging only
}

// New creates a CPU wired to the given bus and shared interrupt lines.
func New(bus Bus, lines *interrupt.Lines) *CPU {
	return &CPU{
		Bus:   bus,
		Lines: lines,
		SP:    0xFD,
		P:     FlagUnused | FlagInterrupt,
	}
}

// PowerOn initializes registers to the documented post-power-on state and
// loads PC from the reset vector. Unlike Reset, it does not gate PPU
// register writes with the warmup window (see ppu package).
func (c *CPU) PowerOn() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.P = FlagUnused | FlagInterrupt
	c.PC = c.read16(0xFFFC)
	c.TotalCycles = 0
	c.st = opState{}
	c.dma = dmaState{}
	c.iFlagSample = true
}

// Reset mirrors the reset line: registers keep their values except SP -= 3,
// the I flag is set and the reset vector reloads PC; real hardware also leaves the PPU in a
// ~29658-cycle warmup window, tracked by the PPU itself.
func (c *CPU) Reset() {
	c.SP -= 3
	c.setFlag(FlagInterrupt, true)
	c.PC = c.read16(0xFFFC)
	c.st = opState{}
	c.dma = dmaState{}
	c.iFlagSample = true
}

// Tick advances the CPU by exactly one cycle.
func (c *CPU) Tick() {
	c.TotalCycles++
	if c.dma.phase != dmaIdle {
		c.tickDMA()
		return
	}
	c.tickInstruction()
}

// InDMA reports whether an OAM DMA transfer is in progress,
// for callers that want to fast-forward rather than tick one at a time.
func (c *CPU) InDMA() bool {
	return c.dma.phase != dmaIdle
}

func (c *CPU) tickDMA() {
	switch c.dma.phase {
	case dmaWait:
		c.dma.waitCycles--
		if c.dma.waitCycles <= 0 {
			c.dma.phase = dmaRead
		}
	case dmaRead:
		addr := uint16(c.dma.page)<<8 | uint16(c.dma.index)
		c.dma.latch = c.Bus.Read(addr)
		c.dma.phase = dmaWrite
	case dmaWrite:
		c.Bus.Write(0x2004, c.dma.latch)
		c.dma.index++
		if c.dma.index >= 256 {
			c.dma.phase = dmaIdle
		} else {
			c.dma.phase = dmaRead
		}
	}
}

// beginOAMDMA starts the 513/514-cycle OAM DMA transfer triggered by a CPU
// write to $4014. A DMA started on an odd CPU cycle needs one extra
// alignment cycle before the first read.
func (c *CPU) beginOAMDMA(page uint8) {
	c.dma.phase = dmaWait
	c.dma.page = page
	c.dma.index = 0
	c.dma.waitCycles = 1
	if c.TotalCycles%2 == 1 {
		c.dma.waitCycles = 2
	}
}

// tickInstruction advances the in-progress instruction, or — at a fresh
// instruction boundary — polls interrupts and either starts a service
// sequence or fetches the next opcode.
func (c *CPU) tickInstruction() {
	if c.st.step == 0 && c.st.kind == intNone {
		if c.Lines.PeekNMI() {
			c.Lines.TakeNMI()
			c.st = opState{kind: intNMI, step: 1}
			logger.LogCPU("NMI service begins at PC=$%04X", c.PC)
			c.stepService()
			return
		}
		if c.Lines.IRQLine() && !c.iFlagSample {
			c.st = opState{kind: intIRQ, step: 1}
			logger.LogCPU("IRQ service begins at PC=$%04X", c.PC)
			c.stepService()
			return
		}
		c.iFlagSample = c.getFlag(FlagInterrupt)

		opcode := c.read(c.PC)
		c.PC++
		c.st = opState{opcode: opcode, info: opcodeTable[opcode], step: 1}
		if c.st.info.Class == ClassBRK {
			c.st.kind = intBRK
		}
		return
	}

	if c.st.kind != intNone {
		c.stepService()
		return
	}

	c.stepAddr()
}
