// Package ppu implements the 2C02's memory map and render pipeline as a
// per-dot state machine: Tick advances exactly one PPU dot, mirroring the
// CPU's per-cycle core so the two can be interleaved at the 3:1 ratio the
// system clock maintains.
package ppu

import (
	"github.com/lonedot/nescore/pkg/cartridge/mapper"
	"github.com/lonedot/nescore/pkg/interrupt"
	"github.com/lonedot/nescore/pkg/logger"
)

// Cartridge is the CHR-side surface the PPU drives; cartridge.Cartridge
// satisfies it directly.
type Cartridge interface {
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, value uint8) bool
	MirrorMode() mapper.MirrorMode
	IRQLine() bool
	NotifyA12()
}

const (
	CtrlNameTable   = 0x03
	CtrlIncrement32 = 0x04
	CtrlSpriteTable = 0x08
	CtrlBGTable     = 0x10
	CtrlSpriteSize  = 0x20
	CtrlNMIEnable   = 0x80

	MaskGrayscale    = 0x01
	MaskShowBGLeft   = 0x02
	MaskShowSprLeft  = 0x04
	MaskShowBG       = 0x08
	MaskShowSprites  = 0x10
	MaskEmphasisMask = 0xE0

	StatusOverflow  = 0x20
	StatusSprite0   = 0x40
	StatusVBlank    = 0x80
)

// bgState holds the background fetch latches and shift registers spec §3
// names ("BG latches/shift registers").
type bgState struct {
	nextNT, nextAttr         uint8
	nextPatternLo, nextPatternHi uint8
	shiftLo, shiftHi         uint16
	attrShiftLo, attrShiftHi uint8
	attrLatchLo, attrLatchHi uint8
}

// sprState holds secondary OAM and the per-sprite shift/counter/attribute
// arrays spec §3 names ("Sprite latches/counters").
type sprState struct {
	secondary    [32]uint8 // 8 sprites x 4 bytes
	count        int       // sprites found this scanline, 0..8
	patternLo    [8]uint8
	patternHi    [8]uint8
	attr         [8]uint8
	x            [8]uint8
	isZero       [8]bool
	evalIndex    int // primary OAM index during evaluation (dots 65-256)
	evalSubIndex int
	evalOverflow bool
}

// PPU is the 2C02 render core.
type PPU struct {
	PPUCTRL   uint8
	PPUMASK   uint8
	PPUSTATUS uint8
	OAMADDR   uint8

	v, t uint16
	x    uint8 // fine X scroll
	w    uint8 // write toggle

	OAM        [256]uint8
	nameTable  [2048]uint8
	paletteRAM [32]uint8
	readBuffer uint8

	Cycle         int
	Scanline      int
	Frame         uint64
	FrameComplete bool
	oddFrame      bool

	bg  bgState
	spr sprState

	// a12Low/a12LowDots track how many consecutive VRAM accesses have had
	// A12 low, for the edge filter in notifyA12 that the mapper's scanline
	// IRQ counter relies on.
	a12Low     bool
	a12LowDots int

	// warmupCyclesRemaining gates CTRL/MASK/SCROLL/ADDR writes for ~29658
	// CPU cycles after Reset only, never after PowerOn.
	warmupCyclesRemaining int

	// suppressVBLSet/suppressNMI implement the $2002 race-read windows at
	// (241,0..2) documented in spec §4.4.
	suppressVBLSet  bool
	suppressNMIEdge bool

	FrameBuffer [256 * 240]uint32

	Cartridge Cartridge
	Lines     *interrupt.Lines
}

// New creates a PPU wired to the shared interrupt lines.
func New(lines *interrupt.Lines) *PPU {
	return &PPU{Lines: lines}
}

// SetCartridge installs the CHR-side cartridge surface.
func (p *PPU) SetCartridge(cart Cartridge) {
	p.Cartridge = cart
}

// PowerOn sets the documented post-power-on state. Register writes are not
// gated by the warmup window after a power-on, only after Reset.
func (p *PPU) PowerOn() {
	*p = PPU{Cartridge: p.Cartridge, Lines: p.Lines}
	p.Scanline = 0
	p.Cycle = 0
}

// Reset restores timing state and begins the ~29658-cycle register-write
// ignore window (spec §4.4, Open Question resolved: reset-only).
func (p *PPU) Reset() {
	p.PPUCTRL = 0
	p.PPUMASK = 0
	p.w = 0
	p.Cycle = 0
	p.Scanline = 0
	p.FrameComplete = false
	p.warmupCyclesRemaining = 29658
}

// GetFrameBuffer returns the current frame as packed ARGB pixels.
func (p *PPU) GetFrameBuffer() []uint32 {
	return p.FrameBuffer[:]
}

func (p *PPU) renderingEnabled() bool {
	return p.PPUMASK&(MaskShowBG|MaskShowSprites) != 0
}

func (p *PPU) writeIgnored() bool {
	return p.warmupCyclesRemaining > 0
}

// tickWarmup decrements the reset warmup counter by one CPU cycle's worth;
// called once per PPU dot (1/3 CPU cycle), so every third dot.
func (p *PPU) tickWarmup() {
	if p.warmupCyclesRemaining > 0 && p.Cycle%3 == 0 {
		p.warmupCyclesRemaining--
	}
}

// ReadRegister implements the CPU-visible $2000-$2007 read semantics.
func (p *PPU) ReadRegister(reg uint16) uint8 {
	switch reg & 7 {
	case 2: // PPUSTATUS
		value := p.PPUSTATUS
		if p.Scanline == 241 && p.Cycle == 0 {
			// Race read before VBL is set this frame: report clear and
			// suppress both the set and the NMI for this frame.
			value &^= StatusVBlank
			p.suppressVBLSet = true
			p.suppressNMIEdge = true
		} else if p.Scanline == 241 && (p.Cycle == 1 || p.Cycle == 2) {
			p.suppressNMIEdge = true
		}
		p.PPUSTATUS &^= StatusVBlank
		p.w = 0
		logger.LogPPU("Read PPUSTATUS: $%02X (scanline=%d cycle=%d)", value, p.Scanline, p.Cycle)
		return value
	case 4: // OAMDATA
		return p.OAM[p.OAMADDR]
	case 7: // PPUDATA
		var value uint8
		addr := p.v & 0x3FFF
		if addr >= 0x3F00 {
			value = p.readPalette(addr)
			p.readBuffer = p.vramRead(addr - 0x1000)
		} else {
			value = p.readBuffer
			p.readBuffer = p.vramRead(addr)
		}
		p.advanceV()
		return value
	}
	return 0 // open bus for write-only registers; the bus layer supplies the latch value
}

// WriteRegister implements the CPU-visible $2000-$2007 write semantics.
func (p *PPU) WriteRegister(reg uint16, value uint8) {
	switch reg & 7 {
	case 0: // PPUCTRL
		if p.writeIgnored() {
			return
		}
		oldNMI := p.PPUCTRL&CtrlNMIEnable != 0
		p.PPUCTRL = value
		p.t = (p.t & 0xF3FF) | (uint16(value)&0x03)<<10
		newNMI := value&CtrlNMIEnable != 0
		if !oldNMI && newNMI && p.PPUSTATUS&StatusVBlank != 0 {
			p.signalNMI()
		}
	case 1: // PPUMASK
		if p.writeIgnored() {
			return
		}
		p.PPUMASK = value
	case 3: // OAMADDR
		p.OAMADDR = value
	case 4: // OAMDATA
		p.OAM[p.OAMADDR] = value
		p.OAMADDR++
	case 5: // PPUSCROLL
		if p.writeIgnored() {
			return
		}
		if p.w == 0 {
			p.t = (p.t & 0xFFE0) | uint16(value>>3)
			p.x = value & 0x07
			p.w = 1
		} else {
			p.t = (p.t & 0x8FFF) | (uint16(value)&0x07)<<12
			p.t = (p.t & 0xFC1F) | (uint16(value)&0xF8)<<2
			p.w = 0
		}
	case 6: // PPUADDR
		if p.writeIgnored() {
			return
		}
		if p.w == 0 {
			p.t = (p.t & 0x80FF) | (uint16(value)&0x3F)<<8
			p.w = 1
		} else {
			p.t = (p.t & 0xFF00) | uint16(value)
			p.v = p.t
			p.w = 0
		}
	case 7: // PPUDATA
		p.vramWrite(p.v&0x3FFF, value)
		p.advanceV()
	}
}

// advanceV increments v by the CTRL-selected step, or performs the
// rendering-time coarse-X/fine-Y glitch increment while rendering is active
// on a visible or pre-render scanline.
func (p *PPU) advanceV() {
	if p.renderingEnabled() && (p.Scanline < 240 || p.Scanline == 261) {
		p.incrementCoarseX()
		p.incrementY()
		return
	}
	if p.PPUCTRL&CtrlIncrement32 != 0 {
		p.v += 32
	} else {
		p.v++
	}
}

// readPalette reads palette RAM with the four-backdrop aliasing and the
// grayscale AND-mask applied.
func (p *PPU) readPalette(addr uint16) uint8 {
	idx := paletteIndex(addr)
	v := p.paletteRAM[idx]
	if p.PPUMASK&MaskGrayscale != 0 {
		v &= 0x30
	}
	return v
}

func (p *PPU) writePalette(addr uint16, value uint8) {
	p.paletteRAM[paletteIndex(addr)] = value & 0x3F
}

func paletteIndex(addr uint16) uint8 {
	idx := uint8(addr & 0x1F)
	if idx&0x03 == 0 {
		idx &^= 0x10 // $3F10/$14/$18/$1C mirror their backdrop entry
	}
	return idx
}

// vramRead/vramWrite implement ppu_read/ppu_write over the full $0000-$3FFF
// map: pattern tables via the cartridge, nametables with mirroring, and
// palette RAM.
func (p *PPU) vramRead(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.notifyA12(addr)
		if p.Cartridge != nil {
			return p.Cartridge.ReadCHR(addr)
		}
		return 0
	case addr < 0x3F00:
		return p.nameTable[p.mirrorNameTable(addr)]
	default:
		return p.readPalette(addr)
	}
}

func (p *PPU) vramWrite(addr uint16, value uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.notifyA12(addr)
		if p.Cartridge != nil {
			p.Cartridge.WriteCHR(addr, value)
		}
	case addr < 0x3F00:
		p.nameTable[p.mirrorNameTable(addr)] = value
	default:
		p.writePalette(addr, value)
	}
}

func (p *PPU) mirrorNameTable(addr uint16) uint16 {
	offset := (addr - 0x2000) & 0x0FFF
	mode := mapper.MirrorVertical
	if p.Cartridge != nil {
		mode = p.Cartridge.MirrorMode()
	}
	table := offset / 0x400
	cell := offset % 0x400
	switch mode {
	case mapper.MirrorHorizontal:
		return (table/2)*0x400 + cell
	case mapper.MirrorSingleScreenLo:
		return cell
	case mapper.MirrorSingleScreenHi:
		return 0x400 + cell
	case mapper.MirrorFourScreen:
		return offset % 2048
	default: // vertical
		return (table%2)*0x400 + cell
	}
}

// notifyA12 implements the A12 low-hold edge filter. It counts consecutive
// VRAM accesses made with address bit 12 low, not elapsed dots: a rising
// edge only reaches the mapper after at least nine such accesses in a row.
func (p *PPU) notifyA12(addr uint16) {
	high := addr&0x1000 != 0
	if !high {
		if !p.a12Low {
			p.a12Low = true
			p.a12LowDots = 0
		} else {
			p.a12LowDots++
		}
		return
	}
	if p.a12Low && p.a12LowDots >= 8 && p.Cartridge != nil {
		p.Cartridge.NotifyA12()
	}
	p.a12Low = false
}

// IRQLine reports the cartridge mapper's IRQ output.
func (p *PPU) IRQLine() bool {
	if p.Cartridge != nil {
		return p.Cartridge.IRQLine()
	}
	return false
}

func (p *PPU) signalNMI() {
	if p.Lines != nil {
		p.Lines.SignalNMI()
	}
}
