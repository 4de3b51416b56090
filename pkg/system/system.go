// Package system implements the master clock: the single loop that keeps
// the CPU, PPU, APU, and cartridge mapper phase-locked at the NES's
// hardwired 3 PPU-dots-per-CPU-cycle ratio.
package system

import (
	"github.com/lonedot/nescore/pkg/apu"
	"github.com/lonedot/nescore/pkg/bus"
	"github.com/lonedot/nescore/pkg/cartridge"
	"github.com/lonedot/nescore/pkg/cpu"
	"github.com/lonedot/nescore/pkg/interrupt"
	"github.com/lonedot/nescore/pkg/ppu"
)

// System owns every component and the shared interrupt lines wiring them
// together.
type System struct {
	CPU       *cpu.CPU
	PPU       *ppu.PPU
	APU       *apu.APU
	Bus       *bus.Bus
	Cartridge *cartridge.Cartridge
	Lines     *interrupt.Lines

	masterTick uint64
}

// New wires a fresh console: bus, interrupt lines, and every component,
// with no cartridge inserted yet.
func New() *System {
	lines := &interrupt.Lines{}
	b := bus.New()
	a := apu.New(lines)
	p := ppu.New(lines)
	c := cpu.New(b, lines)

	b.PPU = p
	b.APU = a

	return &System{
		CPU:   c,
		PPU:   p,
		APU:   a,
		Bus:   b,
		Lines: lines,
	}
}

// InsertCartridge wires a loaded cartridge's PRG path into the bus and its
// CHR path into the PPU.
func (s *System) InsertCartridge(cart *cartridge.Cartridge) {
	s.Cartridge = cart
	s.Bus.Cartridge = cart
	s.PPU.SetCartridge(cart)
}

// PowerOn brings every component to its documented post-power-on state.
func (s *System) PowerOn() {
	s.PPU.PowerOn()
	s.CPU.PowerOn()
	s.APU.Reset()
	s.masterTick = 0
}

// Reset mirrors the console's reset line across every component; unlike
// PowerOn, the PPU enters its ~29658-cycle register-write ignore window.
func (s *System) Reset() {
	s.PPU.Reset()
	s.CPU.Reset()
	s.APU.Reset()
	s.masterTick = 0
}

// SetButton updates one button on controller port 0 or 1.
func (s *System) SetButton(controller int, button int, pressed bool) {
	if controller == 0 {
		s.Bus.Controller1.SetButton(button, pressed)
	} else {
		s.Bus.Controller2.SetButton(button, pressed)
	}
}

// GetFrameBuffer returns the PPU's current frame as packed ARGB pixels.
func (s *System) GetFrameBuffer() []uint32 {
	return s.PPU.GetFrameBuffer()
}

// Tick advances the master clock by one PPU dot. The CPU and APU advance by
// one cycle every third dot, the documented 3:1 ratio; the cartridge
// mapper's level IRQ output is resampled onto the shared interrupt lines
// after every dot since it can change from either a CPU register write or
// a PPU-driven NotifyA12 edge.
func (s *System) Tick() {
	s.PPU.Tick()
	s.masterTick++
	if s.masterTick%3 == 0 {
		s.CPU.Tick()
		s.APU.Step()
	}
	s.syncMapperIRQ()
}

func (s *System) syncMapperIRQ() {
	if s.Cartridge == nil {
		return
	}
	if s.Cartridge.IRQLine() {
		s.Lines.AssertIRQ(interrupt.SourceMapper)
	} else {
		s.Lines.ReleaseIRQ(interrupt.SourceMapper)
	}
}

// TickUntilVSync runs the system until the PPU finishes the frame in
// progress, the headless host's unit of work. It consumes FrameComplete,
// leaving it false on return.
func (s *System) TickUntilVSync() {
	s.PPU.FrameComplete = false
	for !s.PPU.FrameComplete {
		s.Tick()
	}
	s.PPU.FrameComplete = false
}
