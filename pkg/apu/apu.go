// Package apu implements the 2A03's APU register interface without audio
// synthesis: every register accepts and stores the value a game writes, and
// the frame-counter sequencer and DMC flag keep producing the IRQ timing
// games depend on, but no channel renders a waveform.
package apu

import "github.com/lonedot/nescore/pkg/interrupt"

// pulseRegs/triangleRegs/noiseRegs hold the raw register bytes a channel
// was last written, for games that read them back indirectly via save
// states or that this core has no reason to interpret further.
type pulseRegs struct {
	duty, sweep, timerLo, timerHi uint8
}

type triangleRegs struct {
	linear, timerLo, timerHi uint8
}

type noiseRegs struct {
	envelope, period, length uint8
}

type dmcRegs struct {
	irqEnabled    bool
	loop          bool
	rate          uint8
	loadCounter   uint8
	sampleAddress uint16
	sampleLength  uint16
	enabled       bool
	irqFlag       bool
}

// APU is the audio register/IRQ-timing stub. Lines is the shared interrupt
// state the frame-counter and DMC IRQ outputs assert onto.
type APU struct {
	Pulse1   pulseRegs
	Pulse2   pulseRegs
	Triangle triangleRegs
	Noise    noiseRegs
	DMC      dmcRegs

	channelEnabled uint8 // $4015 write: one bit per channel, bit4 = DMC

	frameMode       uint8 // 0 = 4-step, 1 = 5-step ($4017 bit 7)
	frameIRQInhibit bool
	frameIRQ        bool
	frameCycle      uint64

	Lines *interrupt.Lines
}

// frameSequence4/5 are the classic NTSC quarter-frame boundaries (in CPU
// cycles since the last $4017 write or sequencer wrap), taken from the
// documented 2A03 frame-counter timing table.
var frameSequence4 = [4]uint64{7457, 14913, 22371, 29829}
var frameSequence5 = [5]uint64{7457, 14913, 22371, 29829, 37281}

// New creates an APU wired to the shared interrupt lines.
func New(lines *interrupt.Lines) *APU {
	return &APU{Lines: lines}
}

// Reset clears all register state and releases any asserted IRQ sources.
func (a *APU) Reset() {
	lines := a.Lines
	*a = APU{Lines: lines}
	if lines != nil {
		lines.ReleaseIRQ(interrupt.SourceAPUFrame)
		lines.ReleaseIRQ(interrupt.SourceAPUDMC)
	}
}

// Step advances the APU by one CPU cycle, driving only the frame-counter
// IRQ sequencer — the part of the APU every game's timing depends on even
// with audio muted.
func (a *APU) Step() {
	a.frameCycle++
	boundaries := frameSequence4[:]
	if a.frameMode == 1 {
		boundaries = frameSequence5[:]
	}
	for i, at := range boundaries {
		if a.frameCycle != at {
			continue
		}
		last := i == len(boundaries)-1
		if a.frameMode == 0 && last && !a.frameIRQInhibit {
			a.frameIRQ = true
			if a.Lines != nil {
				a.Lines.AssertIRQ(interrupt.SourceAPUFrame)
			}
		}
		if last {
			a.frameCycle = 0
		}
		break
	}
}

// ReadRegister reads the $4015 status register; every other APU register
// is write-only on real hardware.
func (a *APU) ReadRegister(addr uint16) uint8 {
	if addr != 0x4015 {
		return 0
	}
	var status uint8
	status |= a.channelEnabled & 0x1F
	if a.frameIRQ {
		status |= 0x40
	}
	if a.DMC.irqFlag {
		status |= 0x80
	}
	a.frameIRQ = false
	if a.Lines != nil {
		a.Lines.ReleaseIRQ(interrupt.SourceAPUFrame)
	}
	return status
}

// WriteRegister routes a $4000-$4013/$4015/$4017 write to the stored
// register state, applying only the side effects (IRQ enable/disable,
// sequencer reset) this stub tracks.
func (a *APU) WriteRegister(addr uint16, value uint8) {
	switch {
	case addr >= 0x4000 && addr <= 0x4003:
		writePulse(&a.Pulse1, addr-0x4000, value)
	case addr >= 0x4004 && addr <= 0x4007:
		writePulse(&a.Pulse2, addr-0x4004, value)
	case addr >= 0x4008 && addr <= 0x400B:
		writeTriangle(&a.Triangle, addr-0x4008, value)
	case addr >= 0x400C && addr <= 0x400F:
		writeNoise(&a.Noise, addr-0x400C, value)
	case addr >= 0x4010 && addr <= 0x4013:
		a.writeDMC(addr-0x4010, value)
	case addr == 0x4015:
		a.writeStatus(value)
	case addr == 0x4017:
		a.writeFrameCounter(value)
	}
}

func writePulse(p *pulseRegs, reg uint16, value uint8) {
	switch reg {
	case 0:
		p.duty = value
	case 1:
		p.sweep = value
	case 2:
		p.timerLo = value
	case 3:
		p.timerHi = value
	}
}

func writeTriangle(t *triangleRegs, reg uint16, value uint8) {
	switch reg {
	case 0:
		t.linear = value
	case 2:
		t.timerLo = value
	case 3:
		t.timerHi = value
	}
}

func writeNoise(n *noiseRegs, reg uint16, value uint8) {
	switch reg {
	case 0:
		n.envelope = value
	case 2:
		n.period = value
	case 3:
		n.length = value
	}
}

func (a *APU) writeDMC(reg uint16, value uint8) {
	switch reg {
	case 0: // $4010 - IRQ enable, loop, rate
		a.DMC.irqEnabled = value&0x80 != 0
		a.DMC.loop = value&0x40 != 0
		a.DMC.rate = value & 0x0F
		if !a.DMC.irqEnabled {
			a.DMC.irqFlag = false
			if a.Lines != nil {
				a.Lines.ReleaseIRQ(interrupt.SourceAPUDMC)
			}
		}
	case 1: // $4011 - direct load
		a.DMC.loadCounter = value & 0x7F
	case 2: // $4012 - sample address
		a.DMC.sampleAddress = 0xC000 + uint16(value)*64
	case 3: // $4013 - sample length
		a.DMC.sampleLength = uint16(value)*16 + 1
	}
}

// writeStatus handles $4015: channel enable bits and the DMC IRQ-flag
// clear every write to this register performs on real hardware.
func (a *APU) writeStatus(value uint8) {
	a.channelEnabled = value & 0x1F
	a.DMC.enabled = value&0x10 != 0
	a.DMC.irqFlag = false
	if a.Lines != nil {
		a.Lines.ReleaseIRQ(interrupt.SourceAPUDMC)
	}
}

// writeFrameCounter handles $4017: sequencer mode/reset and the IRQ
// inhibit flag, including the immediate quarter/half clock a 5-step write
// performs (a no-op here with no channels left to clock, kept for the
// sequencer-reset timing it also causes).
func (a *APU) writeFrameCounter(value uint8) {
	a.frameMode = (value >> 7) & 1
	a.frameIRQInhibit = value&0x40 != 0
	a.frameCycle = 0
	if a.frameIRQInhibit {
		a.frameIRQ = false
		if a.Lines != nil {
			a.Lines.ReleaseIRQ(interrupt.SourceAPUFrame)
		}
	}
}
