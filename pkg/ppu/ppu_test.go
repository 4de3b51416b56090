package ppu

import (
	"testing"

	"github.com/lonedot/nescore/pkg/cartridge/mapper"
	"github.com/lonedot/nescore/pkg/interrupt"
)

type stubCart struct {
	chr         [0x2000]uint8
	a12Notifies int
}

func (s *stubCart) ReadCHR(addr uint16) uint8          { return s.chr[addr&0x1FFF] }
func (s *stubCart) WriteCHR(addr uint16, v uint8) bool { s.chr[addr&0x1FFF] = v; return true }
func (s *stubCart) MirrorMode() mapper.MirrorMode      { return mapper.MirrorVertical }
func (s *stubCart) IRQLine() bool                      { return false }
func (s *stubCart) NotifyA12()                         { s.a12Notifies++ }

func newTestPPU() *PPU {
	lines := &interrupt.Lines{}
	p := New(lines)
	return p
}

func TestVBLSetAndNMI(t *testing.T) {
	p := newTestPPU()
	p.WriteRegister(0x2000, CtrlNMIEnable)
	p.Scanline, p.Cycle = 241, 0
	p.Tick() // rolls Cycle 0->1, sets VBL and fires NMI
	if p.PPUSTATUS&StatusVBlank == 0 {
		t.Fatalf("VBL not set at (241,1)")
	}
	if !p.Lines.PeekNMI() {
		t.Fatalf("NMI not signaled")
	}
}

func TestStatusRaceReadSuppressesVBL(t *testing.T) {
	p := newTestPPU()
	p.WriteRegister(0x2000, CtrlNMIEnable)
	p.Scanline, p.Cycle = 241, 0
	_ = p.ReadRegister(0x2002) // read exactly at (241,0): suppresses set+NMI
	p.Tick()
	if p.PPUSTATUS&StatusVBlank != 0 {
		t.Fatalf("VBL should be suppressed after race read at (241,0)")
	}
	if p.Lines.PeekNMI() {
		t.Fatalf("NMI should be suppressed after race read at (241,0)")
	}
}

func TestOddFrameSkip(t *testing.T) {
	p := newTestPPU()
	p.PPUMASK = MaskShowBG
	p.oddFrame = true
	p.Scanline, p.Cycle = 261, 339
	p.Tick()
	if p.Scanline != 0 || p.Cycle != 0 {
		t.Fatalf("odd-frame skip landed at (%d,%d), want (0,0)", p.Scanline, p.Cycle)
	}
}

func TestBufferedPPUDATARead(t *testing.T) {
	p := newTestPPU()
	p.nameTable[0] = 0xAB
	p.v = 0x2000
	first := p.ReadRegister(0x2007)
	if first != 0 {
		t.Fatalf("first buffered read = $%02X, want $00 (power-on buffer)", first)
	}
	second := p.ReadRegister(0x2007)
	if second != 0xAB {
		t.Fatalf("second read = $%02X, want $AB", second)
	}
}

func TestPaletteReadIsImmediate(t *testing.T) {
	p := newTestPPU()
	p.paletteRAM[0x05] = 0x2A
	p.v = 0x3F05
	v := p.ReadRegister(0x2007)
	if v != 0x2A {
		t.Fatalf("immediate palette read = $%02X, want $2A", v)
	}
}

// TestSprite0HitColumnBounds checks the hit window against its two edges:
// it must fire at the leftmost visible column and be suppressed at the
// rightmost visible column (255), one past the last column the window covers.
func TestSprite0HitColumnBounds(t *testing.T) {
	setup := func(p *PPU) {
		p.PPUMASK = MaskShowBG | MaskShowSprites | MaskShowBGLeft | MaskShowSprLeft
		p.bg.shiftLo = 0x8000
		p.x = 0
		p.spr.count = 1
		p.spr.x[0] = 0
		p.spr.patternLo[0] = 0x80
		p.spr.isZero[0] = true
	}

	p := newTestPPU()
	setup(p)
	p.Scanline, p.Cycle = 0, 1 // dot 1, col 0: leftmost visible column
	p.composePixel()
	if p.PPUSTATUS&StatusSprite0 == 0 {
		t.Fatalf("sprite-0 hit not set at column 0")
	}

	p = newTestPPU()
	setup(p)
	p.Scanline, p.Cycle = 0, 256 // dot 256, col 255: rightmost visible column, outside the hit window
	p.composePixel()
	if p.PPUSTATUS&StatusSprite0 != 0 {
		t.Fatalf("sprite-0 hit wrongly set at column 255")
	}
}

func TestA12EdgeFilterRequiresLowHold(t *testing.T) {
	p := newTestPPU()
	cart := &stubCart{}
	p.Cartridge = cart

	p.vramRead(0x1000) // start high, so a later low->high edge is the one under test
	for i := 0; i < 3; i++ {
		p.vramRead(0x0000) // held low for only 3 accesses
	}
	p.vramRead(0x1000)
	if cart.a12Notifies != 0 {
		t.Fatalf("edge fired after only 3 low accesses, want filtered")
	}

	for i := 0; i < 10; i++ {
		p.vramRead(0x0000) // held low for 10 accesses
	}
	p.vramRead(0x1000)
	if cart.a12Notifies != 1 {
		t.Fatalf("a12Notifies = %d, want 1 after a held-low rising edge", cart.a12Notifies)
	}
}
