package system

import (
	"bytes"
	"testing"

	"github.com/lonedot/nescore/pkg/cartridge"
)

// buildNROM assembles a minimal iNES image: one 16KiB PRG bank filled with
// NOPs, reset vector pointing at $8000, no CHR ROM (so CHR RAM is used).
func buildNROM() []byte {
	header := []byte{'N', 'E', 'S', 0x1A, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	prg := make([]byte, 16384)
	for i := range prg {
		prg[i] = 0xEA // NOP
	}
	prg[0x3FFC] = 0x00 // reset vector low -> $8000
	prg[0x3FFD] = 0x80
	return append(header, prg...)
}

func newTestSystem(t *testing.T) *System {
	cart, err := cartridge.LoadFromReader(bytes.NewReader(buildNROM()))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	s := New()
	s.InsertCartridge(cart)
	s.PowerOn()
	return s
}

func TestPowerOnLoadsResetVector(t *testing.T) {
	s := newTestSystem(t)
	if s.CPU.PC != 0x8000 {
		t.Fatalf("PC after power-on = $%04X, want $8000", s.CPU.PC)
	}
}

func TestTickUntilVSyncCompletesAFrame(t *testing.T) {
	s := newTestSystem(t)
	startFrame := s.PPU.Frame
	s.TickUntilVSync()
	if s.PPU.Frame != startFrame+1 {
		t.Fatalf("frame counter = %d, want %d", s.PPU.Frame, startFrame+1)
	}
	if s.PPU.FrameComplete {
		t.Fatalf("FrameComplete should be consumed by TickUntilVSync")
	}
}

func TestThreeToOneDotCycleRatio(t *testing.T) {
	s := newTestSystem(t)
	startCycles := s.CPU.TotalCycles
	startDot, startScanline := s.PPU.Cycle, s.PPU.Scanline
	for i := 0; i < 9; i++ {
		s.Tick()
	}
	if s.CPU.TotalCycles != startCycles+3 {
		t.Fatalf("CPU advanced %d cycles over 9 master ticks, want 3", s.CPU.TotalCycles-startCycles)
	}
	_ = startDot
	_ = startScanline
}

func TestControllerPortsRouteThroughBus(t *testing.T) {
	s := newTestSystem(t)
	s.SetButton(0, 0, true)
	s.Bus.Write(0x4016, 1)
	s.Bus.Write(0x4016, 0)
	if got := s.Bus.Read(0x4016) & 1; got != 1 {
		t.Fatalf("controller 0 button A not visible through bus, got %d", got)
	}
}
