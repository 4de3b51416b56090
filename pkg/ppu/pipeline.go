package ppu

// Tick advances the PPU by one dot: the background fetch/shift machine,
// sprite evaluation/fetch, pixel composition, and the VBL/NMI and
// frame-completion edges all happen here, gated the way spec §4.4 lists
// them (dot ranges are 1-based within a 0..340 scanline).
func (p *PPU) Tick() {
	p.tickWarmup()

	if p.Scanline < 240 || p.Scanline == 261 {
		p.tickBackgroundFetch()
		p.tickSpriteEvaluation()
		p.tickSpriteFetch()
	}
	if p.Scanline == 261 {
		p.tickPreRenderOnly()
	}
	if p.Scanline < 240 && p.Cycle >= 1 && p.Cycle <= 256 {
		p.composePixel()
	}
	p.tickSpriteCounters()

	p.advanceDot()
}

func (p *PPU) advanceDot() {
	// Odd-frame skip: (261, 339) jumps straight to (0, 0) when rendering.
	if p.Scanline == 261 && p.Cycle == 339 && p.oddFrame && p.renderingEnabled() {
		p.Cycle = 340
	}

	p.Cycle++
	if p.Cycle == 341 {
		p.Cycle = 0
		p.Scanline++
		if p.Scanline == 262 {
			p.Scanline = 0
			p.Frame++
			p.oddFrame = !p.oddFrame
			p.FrameComplete = true
		}
	}

	if p.Scanline == 241 && p.Cycle == 1 {
		if !p.suppressVBLSet {
			p.PPUSTATUS |= StatusVBlank
		}
		if !p.suppressNMIEdge && p.PPUCTRL&CtrlNMIEnable != 0 {
			p.signalNMI()
		}
		p.suppressVBLSet = false
		p.suppressNMIEdge = false
	}
	if p.Scanline == 261 && p.Cycle == 1 {
		p.PPUSTATUS &^= StatusVBlank | StatusSprite0 | StatusOverflow
	}
}

func (p *PPU) inFetchWindow() bool {
	return (p.Cycle >= 1 && p.Cycle <= 256) || (p.Cycle >= 321 && p.Cycle <= 336)
}

// tickBackgroundFetch runs the 8-dot NT/AT/pattern-lo/pattern-hi fetch
// cycle and the shift registers across the visible and pre-render lines.
func (p *PPU) tickBackgroundFetch() {
	if !p.renderingEnabled() {
		return
	}

	if (p.Cycle >= 2 && p.Cycle <= 257) || (p.Cycle >= 322 && p.Cycle <= 337) {
		p.shiftBackground()
	}

	if p.inFetchWindow() || (p.Cycle >= 337 && p.Cycle <= 340) {
		switch p.Cycle % 8 {
		case 1:
			p.reloadShifters()
			p.bg.nextNT = p.vramRead(0x2000 | (p.v & 0x0FFF))
		case 3:
			attrAddr := 0x23C0 | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
			attr := p.vramRead(attrAddr)
			shift := ((p.v >> 4) & 4) | (p.v & 2)
			p.bg.nextAttr = (attr >> shift) & 0x03
		case 5:
			table := uint16(0)
			if p.PPUCTRL&CtrlBGTable != 0 {
				table = 0x1000
			}
			fineY := (p.v >> 12) & 0x07
			addr := table + uint16(p.bg.nextNT)*16 + fineY
			p.bg.nextPatternLo = p.vramRead(addr)
		case 7:
			table := uint16(0)
			if p.PPUCTRL&CtrlBGTable != 0 {
				table = 0x1000
			}
			fineY := (p.v >> 12) & 0x07
			addr := table + uint16(p.bg.nextNT)*16 + fineY + 8
			p.bg.nextPatternHi = p.vramRead(addr)
		case 0:
			if p.Cycle <= 256 || p.Cycle >= 328 {
				p.incrementCoarseX()
			}
		}
	}

	if p.Cycle == 256 {
		p.incrementY()
	}
	if p.Cycle == 257 {
		p.reloadShifters()
		p.transferHorizontalBits()
	}
}

func (p *PPU) reloadShifters() {
	p.bg.shiftLo = (p.bg.shiftLo &^ 0xFF) | uint16(p.bg.nextPatternLo)
	p.bg.shiftHi = (p.bg.shiftHi &^ 0xFF) | uint16(p.bg.nextPatternHi)
	p.bg.attrLatchLo = p.bg.nextAttr & 0x01
	p.bg.attrLatchHi = (p.bg.nextAttr >> 1) & 0x01
}

func (p *PPU) shiftBackground() {
	p.bg.shiftLo <<= 1
	p.bg.shiftHi <<= 1
	p.bg.attrShiftLo = p.bg.attrShiftLo<<1 | p.bg.attrLatchLo
	p.bg.attrShiftHi = p.bg.attrShiftHi<<1 | p.bg.attrLatchHi
}

func (p *PPU) incrementCoarseX() {
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

func (p *PPU) incrementY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	coarseY := (p.v & 0x03E0) >> 5
	if coarseY == 29 {
		coarseY = 0
		p.v ^= 0x0800
	} else if coarseY == 31 {
		coarseY = 0
	} else {
		coarseY++
	}
	p.v = (p.v &^ 0x03E0) | (coarseY << 5)
}

func (p *PPU) transferHorizontalBits() {
	if !p.renderingEnabled() {
		return
	}
	p.v = (p.v &^ 0x041F) | (p.t & 0x041F)
}

func (p *PPU) transferVerticalBits() {
	if !p.renderingEnabled() {
		return
	}
	p.v = (p.v &^ 0x7BE0) | (p.t & 0x7BE0)
}

// tickPreRenderOnly handles the pre-render-line-only vertical scroll copy.
func (p *PPU) tickPreRenderOnly() {
	if p.Cycle >= 280 && p.Cycle <= 304 {
		p.transferVerticalBits()
	}
}

// tickSpriteEvaluation clears secondary OAM during dots 1-64 and scans
// primary OAM for the scanline's sprites during dots 65-256.
func (p *PPU) tickSpriteEvaluation() {
	switch {
	case p.Cycle == 1:
		for i := range p.spr.secondary {
			p.spr.secondary[i] = 0xFF
		}
		p.spr.count = 0
		p.spr.evalIndex = 0
		p.spr.evalOverflow = false
	case p.Cycle >= 65 && p.Cycle <= 256 && p.Cycle%2 == 1:
		p.evaluateSpriteStep()
	}
}

func (p *PPU) spriteHeight() int {
	if p.PPUCTRL&CtrlSpriteSize != 0 {
		return 16
	}
	return 8
}

func (p *PPU) evaluateSpriteStep() {
	if p.spr.evalIndex >= 64 {
		return
	}
	n := p.spr.evalIndex
	y := p.OAM[n*4]
	row := p.Scanline - int(y)
	if row >= 0 && row < p.spriteHeight() {
		if p.spr.count < 8 {
			base := p.spr.count * 4
			copy(p.spr.secondary[base:base+4], p.OAM[n*4:n*4+4])
			p.spr.isZero[p.spr.count] = n == 0
			p.spr.count++
		} else if !p.spr.evalOverflow {
			p.PPUSTATUS |= StatusOverflow
			p.spr.evalOverflow = true
		}
	}
	p.spr.evalIndex++
}

// tickSpriteFetch fetches pattern bytes for the scanline's chosen sprites
// during dots 257-320, ready for the next scanline.
func (p *PPU) tickSpriteFetch() {
	if p.Cycle < 257 || p.Cycle > 320 {
		return
	}
	slot := (p.Cycle - 257) / 8
	if slot >= 8 {
		return
	}
	switch (p.Cycle - 257) % 8 {
	case 7:
		p.fetchSpritePattern(slot)
	}
}

func (p *PPU) fetchSpritePattern(slot int) {
	if slot >= p.spr.count {
		p.spr.patternLo[slot] = 0
		p.spr.patternHi[slot] = 0
		p.spr.attr[slot] = 0
		p.spr.x[slot] = 0xFF // parked far off-screen, never activates
		return
	}
	base := slot * 4
	y := p.spr.secondary[base]
	tile := p.spr.secondary[base+1]
	attr := p.spr.secondary[base+2]
	x := p.spr.secondary[base+3]

	height := p.spriteHeight()
	row := p.Scanline - int(y)
	if attr&0x80 != 0 { // vertical flip
		row = height - 1 - row
	}

	var table uint16
	var index uint16
	if height == 16 {
		table = uint16(tile&0x01) * 0x1000
		index = uint16(tile &^ 0x01)
		if row >= 8 {
			index++
			row -= 8
		}
	} else {
		if p.PPUCTRL&CtrlSpriteTable != 0 {
			table = 0x1000
		}
		index = uint16(tile)
	}

	addr := table + index*16 + uint16(row)
	lo := p.vramRead(addr)
	hi := p.vramRead(addr + 8)
	if attr&0x40 != 0 { // horizontal flip
		lo = reverseBits(lo)
		hi = reverseBits(hi)
	}

	p.spr.patternLo[slot] = lo
	p.spr.patternHi[slot] = hi
	p.spr.attr[slot] = attr
	p.spr.x[slot] = x
}

func reverseBits(b uint8) uint8 {
	var r uint8
	for i := 0; i < 8; i++ {
		r <<= 1
		r |= b & 1
		b >>= 1
	}
	return r
}

// tickSpriteCounters decrements each sprite's x counter on dots 2-257 and
// shifts its pattern once the counter has reached zero.
func (p *PPU) tickSpriteCounters() {
	if p.Scanline >= 240 && p.Scanline != 261 {
		return
	}
	if p.Cycle < 2 || p.Cycle > 257 {
		return
	}
	for i := 0; i < p.spr.count; i++ {
		if p.spr.x[i] > 0 {
			p.spr.x[i]--
		} else {
			p.spr.patternLo[i] <<= 1
			p.spr.patternHi[i] <<= 1
		}
	}
}

// composePixel implements the BG/sprite priority combination and
// sprite-0-hit rule.
func (p *PPU) composePixel() {
	dot := p.Cycle // 1..256
	col := dot - 1

	bgPixel, bgPalette := p.bgPixelAt()
	if p.PPUMASK&MaskShowBG == 0 || (dot <= 8 && p.PPUMASK&MaskShowBGLeft == 0) {
		bgPixel = 0
	}

	spPixel, spPalette, spFront, spZero := p.spritePixelAt()
	if p.PPUMASK&MaskShowSprites == 0 || (dot <= 8 && p.PPUMASK&MaskShowSprLeft == 0) {
		spPixel = 0
	}

	var paletteAddr uint16
	switch {
	case bgPixel == 0 && spPixel == 0:
		paletteAddr = 0x3F00
	case bgPixel == 0 && spPixel != 0:
		paletteAddr = 0x3F10 + uint16(spPalette)*4 + uint16(spPixel)
	case bgPixel != 0 && spPixel == 0:
		paletteAddr = 0x3F00 + uint16(bgPalette)*4 + uint16(bgPixel)
	default:
		if spFront {
			paletteAddr = 0x3F10 + uint16(spPalette)*4 + uint16(spPixel)
		} else {
			paletteAddr = 0x3F00 + uint16(bgPalette)*4 + uint16(bgPixel)
		}
		if spZero && p.PPUMASK&(MaskShowBG|MaskShowSprites) == MaskShowBG|MaskShowSprites &&
			col >= 0 && col <= 254 {
			p.PPUSTATUS |= StatusSprite0
		}
	}

	idx := p.readPalette(paletteAddr)
	p.FrameBuffer[p.Scanline*256+col] = argbFromPaletteIndex(idx, p.PPUMASK&MaskEmphasisMask)
}

func (p *PPU) bgPixelAt() (pixel, palette uint8) {
	shift := uint(15 - p.x)
	lo := uint8((p.bg.shiftLo >> shift) & 1)
	hi := uint8((p.bg.shiftHi >> shift) & 1)
	pixel = hi<<1 | lo
	attrShift := uint(7 - p.x)
	alo := (p.bg.attrShiftLo >> attrShift) & 1
	ahi := (p.bg.attrShiftHi >> attrShift) & 1
	palette = ahi<<1 | alo
	return
}

func (p *PPU) spritePixelAt() (pixel, palette uint8, front bool, isZero bool) {
	for i := 0; i < p.spr.count; i++ {
		if p.spr.x[i] != 0 {
			continue
		}
		lo := (p.spr.patternLo[i] >> 7) & 1
		hi := (p.spr.patternHi[i] >> 7) & 1
		px := hi<<1 | lo
		if px == 0 {
			continue
		}
		attr := p.spr.attr[i]
		return px, attr & 0x03, attr&0x20 == 0, p.spr.isZero[i]
	}
	return 0, 0, false, false
}
