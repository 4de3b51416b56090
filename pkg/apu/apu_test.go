package apu

import (
	"testing"

	"github.com/lonedot/nescore/pkg/interrupt"
)

func TestFrameIRQFiresInFourStepMode(t *testing.T) {
	lines := &interrupt.Lines{}
	a := New(lines)

	for i := uint64(0); i < frameSequence4[3]; i++ {
		a.Step()
	}
	if !lines.IRQLine() {
		t.Fatalf("frame IRQ not asserted at 4-step boundary")
	}
	status := a.ReadRegister(0x4015)
	if status&0x40 == 0 {
		t.Fatalf("status bit 6 not set after frame IRQ, got $%02X", status)
	}
	if lines.IRQLine() {
		t.Fatalf("reading $4015 should clear the frame IRQ source")
	}
}

func TestFrameIRQInhibitSuppressesAssert(t *testing.T) {
	lines := &interrupt.Lines{}
	a := New(lines)
	a.WriteRegister(0x4017, 0x40) // inhibit bit, 4-step mode

	for i := uint64(0); i < frameSequence4[3]; i++ {
		a.Step()
	}
	if lines.IRQLine() {
		t.Fatalf("frame IRQ asserted despite inhibit bit")
	}
}

func TestFiveStepModeNeverAssertsFrameIRQ(t *testing.T) {
	lines := &interrupt.Lines{}
	a := New(lines)
	a.WriteRegister(0x4017, 0x80) // 5-step mode, no inhibit

	for i := uint64(0); i < frameSequence5[4]*2; i++ {
		a.Step()
	}
	if lines.IRQLine() {
		t.Fatalf("5-step mode should never assert the frame IRQ")
	}
}

func TestDMCIRQEnableDisablePlumbing(t *testing.T) {
	lines := &interrupt.Lines{}
	a := New(lines)

	a.WriteRegister(0x4010, 0x80) // IRQ enabled, rate 0
	a.DMC.irqFlag = true
	lines.AssertIRQ(interrupt.SourceAPUDMC)

	a.WriteRegister(0x4010, 0x00) // disabling clears the flag and line
	if a.DMC.irqFlag {
		t.Fatalf("DMC IRQ flag should clear when IRQ enable bit is written low")
	}
	if lines.IRQLine() {
		t.Fatalf("DMC IRQ source should be released when IRQ enable bit is written low")
	}
}

func TestStatusWriteStoresChannelEnableBits(t *testing.T) {
	a := New(&interrupt.Lines{})
	a.WriteRegister(0x4015, 0x1F)
	status := a.ReadRegister(0x4015)
	if status&0x1F != 0x1F {
		t.Fatalf("channel enable bits = $%02X, want $1F", status&0x1F)
	}
}

func TestRegisterWritesAreStored(t *testing.T) {
	a := New(&interrupt.Lines{})
	a.WriteRegister(0x4000, 0xAA)
	a.WriteRegister(0x4008, 0xBB)
	a.WriteRegister(0x400C, 0xCC)
	a.WriteRegister(0x4012, 0x10)
	a.WriteRegister(0x4013, 0x01)

	if a.Pulse1.duty != 0xAA {
		t.Fatalf("pulse1 duty register not stored")
	}
	if a.Triangle.linear != 0xBB {
		t.Fatalf("triangle linear register not stored")
	}
	if a.Noise.envelope != 0xCC {
		t.Fatalf("noise envelope register not stored")
	}
	if a.DMC.sampleAddress != 0xC000+0x10*64 {
		t.Fatalf("DMC sample address = $%04X, want $%04X", a.DMC.sampleAddress, 0xC000+0x10*64)
	}
	if a.DMC.sampleLength != 17 {
		t.Fatalf("DMC sample length = %d, want 17", a.DMC.sampleLength)
	}
}
