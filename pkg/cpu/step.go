package cpu

// stepAddr advances the current instruction by one cycle. It is only
// called while c.st.kind == intNone, i.e. for a normally fetched opcode.
func (c *CPU) stepAddr() {
	switch c.st.info.Class {
	case ClassJSR:
		c.stepJSR()
	case ClassRTS:
		c.stepRTS()
	case ClassRTI:
		c.stepRTI()
	case ClassPush:
		c.stepPush()
	case ClassPull:
		c.stepPull()
	case ClassBranch:
		c.stepBranch()
	case ClassJump:
		c.stepJump()
	default:
		c.stepOperand()
	}
}

func (c *CPU) finish() {
	c.st = opState{}
}

// stepOperand handles every Read/Write/RMW/Implied/Accumulator opcode —
// the addressing-mode sequences from the spec's operand table, generic
// over which operation consumes or produces the value.
func (c *CPU) stepOperand() {
	switch c.st.info.Mode {
	case AddrImplied:
		c.stepImplied()
	case AddrAccumulator:
		c.stepAccumulator()
	case AddrImmediate:
		c.stepImmediate()
	case AddrZeroPage:
		c.stepZeroPage()
	case AddrZeroPageX:
		c.stepZeroPageIndexed(c.X)
	case AddrZeroPageY:
		c.stepZeroPageIndexed(c.Y)
	case AddrAbsolute:
		c.stepAbsolute()
	case AddrAbsoluteX:
		c.stepAbsoluteIndexed(c.X)
	case AddrAbsoluteY:
		c.stepAbsoluteIndexed(c.Y)
	case AddrIndexedIndirect:
		c.stepIndexedIndirect()
	case AddrIndirectIndexed:
		c.stepIndirectIndexed()
	}
}

func (c *CPU) stepImplied() {
	// step 1: dummy read of the following byte without consuming it.
	c.read(c.PC)
	c.doImplied(c.st.info.Op)
	c.finish()
}

func (c *CPU) stepAccumulator() {
	c.read(c.PC)
	c.A = c.modifyValue(c.st.info.Op, c.A)
	c.finish()
}

func (c *CPU) stepImmediate() {
	v := c.read(c.PC)
	c.PC++
	c.readOp(c.st.info.Op, v)
	c.finish()
}

func (c *CPU) stepZeroPage() {
	if c.st.step == 1 {
		c.st.eff = uint16(c.read(c.PC))
		c.PC++
		c.st.step = 2
		return
	}
	c.finishOperand()
}

func (c *CPU) stepZeroPageIndexed(idx uint8) {
	switch c.st.step {
	case 1:
		c.st.lo = c.read(c.PC)
		c.PC++
		c.st.step = 2
	case 2:
		c.read(uint16(c.st.lo))
		c.st.eff = uint16(c.st.lo + idx)
		c.st.step = 3
	default:
		c.finishOperand()
	}
}

func (c *CPU) stepAbsolute() {
	switch c.st.step {
	case 1:
		c.st.lo = c.read(c.PC)
		c.PC++
		c.st.step = 2
	case 2:
		c.st.hi = c.read(c.PC)
		c.PC++
		c.st.eff = uint16(c.st.hi)<<8 | uint16(c.st.lo)
		c.st.step = 3
	default:
		c.finishOperand()
	}
}

func (c *CPU) stepAbsoluteIndexed(idx uint8) {
	switch c.st.step {
	case 1:
		c.st.lo = c.read(c.PC)
		c.PC++
		c.st.step = 2
	case 2:
		c.st.hi = c.read(c.PC)
		c.PC++
		base := uint16(c.st.hi)<<8 | uint16(c.st.lo)
		c.st.eff = base + uint16(idx)
		c.st.pageCrossed = (base & 0xFF00) != (c.st.eff & 0xFF00)
		c.st.step = 3
	case 3:
		base := uint16(c.st.hi)<<8 | uint16(c.st.lo)
		uncorrected := (base & 0xFF00) | (c.st.eff & 0xFF)
		v := c.read(uncorrected)
		switch c.st.info.Class {
		case ClassRead:
			if !c.st.pageCrossed {
				c.readOp(c.st.info.Op, v)
				c.finish()
				return
			}
			c.st.step = 4
		default:
			// Write and RMW always take the extra cycle.
			c.st.step = 4
		}
	case 4:
		switch c.st.info.Class {
		case ClassRead:
			v := c.read(c.st.eff)
			c.readOp(c.st.info.Op, v)
			c.finish()
		case ClassWrite:
			v := c.writeValue(c.st.info.Op)
			c.write(c.st.eff, v)
			c.finish()
		case ClassRMW:
			c.st.rmwVal = c.read(c.st.eff)
			c.st.step = 5
		}
	case 5:
		c.write(c.st.eff, c.st.rmwVal)
		c.st.step = 6
	case 6:
		newVal := c.modifyValue(c.st.info.Op, c.st.rmwVal)
		c.write(c.st.eff, newVal)
		c.finish()
	}
}

func (c *CPU) stepIndexedIndirect() {
	switch c.st.step {
	case 1:
		c.st.lo = c.read(c.PC) // zero-page base
		c.PC++
		c.st.step = 2
	case 2:
		c.read(uint16(c.st.lo))
		c.st.step = 3
	case 3:
		ptr := uint16(c.st.lo+c.X) & 0xFF
		c.st.hi = c.read(ptr) // stash the pointer's low byte in hi temporarily
		c.st.step = 4
	case 4:
		ptr := uint16(c.st.lo+c.X+1) & 0xFF
		hiByte := c.read(ptr)
		c.st.eff = uint16(hiByte)<<8 | uint16(c.st.hi)
		c.st.step = 5
	case 5:
		switch c.st.info.Class {
		case ClassRead:
			v := c.read(c.st.eff)
			c.readOp(c.st.info.Op, v)
			c.finish()
		case ClassWrite:
			v := c.writeValue(c.st.info.Op)
			c.write(c.st.eff, v)
			c.finish()
		case ClassRMW:
			c.st.rmwVal = c.read(c.st.eff)
			c.st.step = 6
		}
	case 6:
		c.write(c.st.eff, c.st.rmwVal)
		c.st.step = 7
	case 7:
		newVal := c.modifyValue(c.st.info.Op, c.st.rmwVal)
		c.write(c.st.eff, newVal)
		c.finish()
	}
}

func (c *CPU) stepIndirectIndexed() {
	switch c.st.step {
	case 1:
		c.st.lo = c.read(c.PC) // zero-page base
		c.PC++
		c.st.step = 2
	case 2:
		c.st.hi = c.read(uint16(c.st.lo)) // pointer low byte, stashed in hi
		c.st.step = 3
	case 3:
		hiByte := c.read(uint16(c.st.lo+1) & 0xFF)
		base := uint16(hiByte)<<8 | uint16(c.st.hi)
		c.st.eff = base + uint16(c.Y)
		c.st.pageCrossed = (base & 0xFF00) != (c.st.eff & 0xFF00)
		c.st.lo = uint8(base >> 8) // stash base hi byte for the uncorrected address
		c.st.hi = uint8(base)
		c.st.step = 4
	case 4:
		uncorrected := (uint16(c.st.lo) << 8) | (c.st.eff & 0xFF)
		v := c.read(uncorrected)
		switch c.st.info.Class {
		case ClassRead:
			if !c.st.pageCrossed {
				c.readOp(c.st.info.Op, v)
				c.finish()
				return
			}
			c.st.step = 5
		default:
			c.st.step = 5
		}
	case 5:
		switch c.st.info.Class {
		case ClassRead:
			v := c.read(c.st.eff)
			c.readOp(c.st.info.Op, v)
			c.finish()
		case ClassWrite:
			v := c.writeValue(c.st.info.Op)
			c.write(c.st.eff, v)
			c.finish()
		case ClassRMW:
			c.st.rmwVal = c.read(c.st.eff)
			c.st.step = 6
		}
	case 6:
		c.write(c.st.eff, c.st.rmwVal)
		c.st.step = 7
	case 7:
		newVal := c.modifyValue(c.st.info.Op, c.st.rmwVal)
		c.write(c.st.eff, newVal)
		c.finish()
	}
}

// finishOperand performs the final Read/Write/RMW cycle(s) once c.st.eff is
// resolved, for the addressing modes whose operand sequence does not
// otherwise branch on page crossing (zero page variants and absolute).
func (c *CPU) finishOperand() {
	switch c.st.info.Class {
	case ClassRead:
		v := c.read(c.st.eff)
		c.readOp(c.st.info.Op, v)
		c.finish()
	case ClassWrite:
		v := c.writeValue(c.st.info.Op)
		c.write(c.st.eff, v)
		c.finish()
	case ClassRMW:
		if c.st.step == c.rmwReadStep() {
			c.st.rmwVal = c.read(c.st.eff)
			c.st.step++
		} else if c.st.step == c.rmwReadStep()+1 {
			c.write(c.st.eff, c.st.rmwVal)
			c.st.step++
		} else {
			newVal := c.modifyValue(c.st.info.Op, c.st.rmwVal)
			c.write(c.st.eff, newVal)
			c.finish()
		}
	}
}

// rmwReadStep reports the step index at which the operand is ready to be
// read, one past the mode's address-resolution steps.
func (c *CPU) rmwReadStep() int {
	switch c.st.info.Mode {
	case AddrZeroPage:
		return 2
	case AddrZeroPageX, AddrZeroPageY:
		return 3
	case AddrAbsolute:
		return 3
	default:
		return c.st.step
	}
}

func (c *CPU) stepBranch() {
	switch c.st.step {
	case 1:
		offset := int8(c.read(c.PC))
		c.PC++
		c.st.branchTaken = c.branchCond(c.st.info.Op)
		if !c.st.branchTaken {
			c.finish()
			return
		}
		target := uint16(int32(c.PC) + int32(offset))
		c.st.eff = target
		c.st.pageCrossed = (c.PC & 0xFF00) != (target & 0xFF00)
		// Partial update: low byte corrected, high byte not yet.
		c.PC = (c.PC & 0xFF00) | (target & 0xFF)
		c.read(c.PC)
		c.st.step = 2
	case 2:
		if !c.st.pageCrossed {
			c.finish()
			return
		}
		c.PC = c.st.eff
		c.read(c.PC)
		c.st.step = 3
	case 3:
		c.finish()
	}
}

func (c *CPU) stepJump() {
	switch c.st.info.Mode {
	case AddrAbsolute:
		switch c.st.step {
		case 1:
			c.st.lo = c.read(c.PC)
			c.PC++
			c.st.step = 2
		case 2:
			c.st.hi = c.read(c.PC)
			c.PC++
			c.PC = uint16(c.st.hi)<<8 | uint16(c.st.lo)
			c.finish()
		}
	case AddrIndirect:
		switch c.st.step {
		case 1:
			c.st.lo = c.read(c.PC)
			c.PC++
			c.st.step = 2
		case 2:
			c.st.hi = c.read(c.PC)
			c.PC++
			c.st.eff = uint16(c.st.hi)<<8 | uint16(c.st.lo)
			c.st.step = 3
		case 3:
			c.st.lo = c.read(c.st.eff)
			c.st.step = 4
		case 4:
			hiAddr := (c.st.eff & 0xFF00) | ((c.st.eff + 1) & 0xFF)
			c.st.hi = c.read(hiAddr)
			c.PC = uint16(c.st.hi)<<8 | uint16(c.st.lo)
			c.finish()
		}
	}
}

func (c *CPU) stepJSR() {
	switch c.st.step {
	case 1:
		c.st.lo = c.read(c.PC)
		c.PC++
		c.st.step = 2
	case 2:
		// Internal cycle (real hardware peeks the stack here).
		c.st.step = 3
	case 3:
		c.push(uint8(c.PC >> 8))
		c.st.step = 4
	case 4:
		c.push(uint8(c.PC))
		c.st.step = 5
	case 5:
		c.st.hi = c.read(c.PC)
		c.PC = uint16(c.st.hi)<<8 | uint16(c.st.lo)
		c.finish()
	}
}

func (c *CPU) stepRTS() {
	switch c.st.step {
	case 1:
		c.read(c.PC)
		c.st.step = 2
	case 2:
		c.st.step = 3
	case 3:
		c.st.lo = c.pop()
		c.st.step = 4
	case 4:
		c.st.hi = c.pop()
		c.PC = uint16(c.st.hi)<<8 | uint16(c.st.lo)
		c.st.step = 5
	case 5:
		c.read(c.PC)
		c.PC++
		c.finish()
	}
}

func (c *CPU) stepRTI() {
	switch c.st.step {
	case 1:
		c.read(c.PC)
		c.st.step = 2
	case 2:
		c.st.step = 3
	case 3:
		c.P = c.pop() | FlagUnused
		c.st.step = 4
	case 4:
		c.st.lo = c.pop()
		c.st.step = 5
	case 5:
		c.st.hi = c.pop()
		c.PC = uint16(c.st.hi)<<8 | uint16(c.st.lo)
		c.finish()
	}
}

func (c *CPU) stepPush() {
	switch c.st.step {
	case 1:
		c.read(c.PC)
		c.st.step = 2
	case 2:
		if c.st.info.Op == OpPHP {
			c.push(c.P | FlagBreak | FlagUnused)
		} else {
			c.push(c.A)
		}
		c.finish()
	}
}

func (c *CPU) stepPull() {
	switch c.st.step {
	case 1:
		c.read(c.PC)
		c.st.step = 2
	case 2:
		c.st.step = 3
	case 3:
		v := c.pop()
		if c.st.info.Op == OpPLP {
			c.P = v | FlagUnused
		} else {
			c.A = v
			setZN(&c.P, c.A)
		}
		c.finish()
	}
}

// stepService advances a BRK/IRQ/NMI 7-cycle service sequence. BRK has
// already consumed its opcode-fetch cycle before this runs, so its steps
// span 1..6; a hardware IRQ/NMI has no preceding fetch and spans 1..7.
func (c *CPU) stepService() {
	switch c.st.kind {
	case intBRK:
		c.stepServiceBRK()
	default:
		c.stepServiceHardware()
	}
}

func (c *CPU) stepServiceBRK() {
	switch c.st.step {
	case 1:
		c.read(c.PC) // signature byte
		c.PC++
		c.st.step = 2
	case 2:
		c.push(uint8(c.PC >> 8))
		c.st.step = 3
	case 3:
		c.push(uint8(c.PC))
		c.st.step = 4
	case 4:
		c.push(c.P | FlagBreak | FlagUnused)
		c.st.step = 5
	case 5:
		c.setFlag(FlagInterrupt, true)
		vector := c.serviceVector()
		c.st.eff = vector
		c.st.lo = c.read(vector)
		c.st.step = 6
	case 6:
		c.st.hi = c.read(c.st.eff + 1)
		c.PC = uint16(c.st.hi)<<8 | uint16(c.st.lo)
		c.finish()
	}
}

func (c *CPU) stepServiceHardware() {
	switch c.st.step {
	case 1:
		c.read(c.PC)
		c.st.step = 2
	case 2:
		c.read(c.PC)
		c.st.step = 3
	case 3:
		c.push(uint8(c.PC >> 8))
		c.st.step = 4
	case 4:
		c.push(uint8(c.PC))
		c.st.step = 5
	case 5:
		c.push(c.P | FlagUnused) // B left clear for hardware interrupts
		c.setFlag(FlagInterrupt, true)
		vector := c.serviceVector()
		c.st.eff = vector
		c.st.lo = c.read(vector)
		c.st.step = 6
	case 6:
		c.st.hi = c.read(c.st.eff + 1)
		c.st.step = 7
	case 7:
		c.PC = uint16(c.st.hi)<<8 | uint16(c.st.lo)
		c.finish()
	}
}

// serviceVector resolves which vector a service sequence fetches from,
// checking for an NMI edge that arrived during the push phase of a BRK/IRQ
// sequence and redirecting to the NMI vector if so (NMI hijack).
func (c *CPU) serviceVector() uint16 {
	if c.st.kind == intNMI {
		return 0xFFFA
	}
	if c.Lines.PeekNMI() {
		c.Lines.TakeNMI()
		return 0xFFFA
	}
	return 0xFFFE
}
