package cpu

// opcodeTable is the full 256-entry decode table. Only the documented
// opcodes carry a real Operation (the documented NOP, $EA, is OpNOP itself);
// every other encoding is tagged OpNOP but
// keeps the addressing mode and bus-access class a real 2A03 uses for that
// byte, so it consumes the correct instruction length and cycle count
// without performing the undocumented side effect.
var opcodeTable = [256]opcodeInfo{
	0x00: {AddrImplied, ClassBRK, OpBRK},
	0x01: {AddrIndexedIndirect, ClassRead, OpORA},
	0x02: {AddrImplied, ClassImplied, OpNOP},
	0x03: {AddrIndexedIndirect, ClassRMW, OpNOP},
	0x04: {AddrZeroPage, ClassRead, OpNOP},
	0x05: {AddrZeroPage, ClassRead, OpORA},
	0x06: {AddrZeroPage, ClassRMW, OpASL},
	0x07: {AddrZeroPage, ClassRMW, OpNOP},
	0x08: {AddrImplied, ClassPush, OpPHP},
	0x09: {AddrImmediate, ClassRead, OpORA},
	0x0A: {AddrAccumulator, ClassAccum, OpASL},
	0x0B: {AddrImmediate, ClassRead, OpNOP},
	0x0C: {AddrAbsolute, ClassRead, OpNOP},
	0x0D: {AddrAbsolute, ClassRead, OpORA},
	0x0E: {AddrAbsolute, ClassRMW, OpASL},
	0x0F: {AddrAbsolute, ClassRMW, OpNOP},

	0x10: {AddrRelative, ClassBranch, OpBPL},
	0x11: {AddrIndirectIndexed, ClassRead, OpORA},
	0x12: {AddrImplied, ClassImplied, OpNOP},
	0x13: {AddrIndirectIndexed, ClassRMW, OpNOP},
	0x14: {AddrZeroPageX, ClassRead, OpNOP},
	0x15: {AddrZeroPageX, ClassRead, OpORA},
	0x16: {AddrZeroPageX, ClassRMW, OpASL},
	0x17: {AddrZeroPageX, ClassRMW, OpNOP},
	0x18: {AddrImplied, ClassImplied, OpCLC},
	0x19: {AddrAbsoluteY, ClassRead, OpORA},
	0x1A: {AddrImplied, ClassImplied, OpNOP},
	0x1B: {AddrAbsoluteY, ClassRMW, OpNOP},
	0x1C: {AddrAbsoluteX, ClassRead, OpNOP},
	0x1D: {AddrAbsoluteX, ClassRead, OpORA},
	0x1E: {AddrAbsoluteX, ClassRMW, OpASL},
	0x1F: {AddrAbsoluteX, ClassRMW, OpNOP},

	0x20: {AddrAbsolute, ClassJSR, OpJSR},
	0x21: {AddrIndexedIndirect, ClassRead, OpAND},
	0x22: {AddrImplied, ClassImplied, OpNOP},
	0x23: {AddrIndexedIndirect, ClassRMW, OpNOP},
	0x24: {AddrZeroPage, ClassRead, OpBIT},
	0x25: {AddrZeroPage, ClassRead, OpAND},
	0x26: {AddrZeroPage, ClassRMW, OpROL},
	0x27: {AddrZeroPage, ClassRMW, OpNOP},
	0x28: {AddrImplied, ClassPull, OpPLP},
	0x29: {AddrImmediate, ClassRead, OpAND},
	0x2A: {AddrAccumulator, ClassAccum, OpROL},
	0x2B: {AddrImmediate, ClassRead, OpNOP},
	0x2C: {AddrAbsolute, ClassRead, OpBIT},
	0x2D: {AddrAbsolute, ClassRead, OpAND},
	0x2E: {AddrAbsolute, ClassRMW, OpROL},
	0x2F: {AddrAbsolute, ClassRMW, OpNOP},

	0x30: {AddrRelative, ClassBranch, OpBMI},
	0x31: {AddrIndirectIndexed, ClassRead, OpAND},
	0x32: {AddrImplied, ClassImplied, OpNOP},
	0x33: {AddrIndirectIndexed, ClassRMW, OpNOP},
	0x34: {AddrZeroPageX, ClassRead, OpNOP},
	0x35: {AddrZeroPageX, ClassRead, OpAND},
	0x36: {AddrZeroPageX, ClassRMW, OpROL},
	0x37: {AddrZeroPageX, ClassRMW, OpNOP},
	0x38: {AddrImplied, ClassImplied, OpSEC},
	0x39: {AddrAbsoluteY, ClassRead, OpAND},
	0x3A: {AddrImplied, ClassImplied, OpNOP},
	0x3B: {AddrAbsoluteY, ClassRMW, OpNOP},
	0x3C: {AddrAbsoluteX, ClassRead, OpNOP},
	0x3D: {AddrAbsoluteX, ClassRead, OpAND},
	0x3E: {AddrAbsoluteX, ClassRMW, OpROL},
	0x3F: {AddrAbsoluteX, ClassRMW, OpNOP},

	0x40: {AddrImplied, ClassRTI, OpRTI},
	0x41: {AddrIndexedIndirect, ClassRead, OpEOR},
	0x42: {AddrImplied, ClassImplied, OpNOP},
	0x43: {AddrIndexedIndirect, ClassRMW, OpNOP},
	0x44: {AddrZeroPage, ClassRead, OpNOP},
	0x45: {AddrZeroPage, ClassRead, OpEOR},
	0x46: {AddrZeroPage, ClassRMW, OpLSR},
	0x47: {AddrZeroPage, ClassRMW, OpNOP},
	0x48: {AddrImplied, ClassPush, OpPHA},
	0x49: {AddrImmediate, ClassRead, OpEOR},
	0x4A: {AddrAccumulator, ClassAccum, OpLSR},
	0x4B: {AddrImmediate, ClassRead, OpNOP},
	0x4C: {AddrAbsolute, ClassJump, OpJMP},
	0x4D: {AddrAbsolute, ClassRead, OpEOR},
	0x4E: {AddrAbsolute, ClassRMW, OpLSR},
	0x4F: {AddrAbsolute, ClassRMW, OpNOP},

	0x50: {AddrRelative, ClassBranch, OpBVC},
	0x51: {AddrIndirectIndexed, ClassRead, OpEOR},
	0x52: {AddrImplied, ClassImplied, OpNOP},
	0x53: {AddrIndirectIndexed, ClassRMW, OpNOP},
	0x54: {AddrZeroPageX, ClassRead, OpNOP},
	0x55: {AddrZeroPageX, ClassRead, OpEOR},
	0x56: {AddrZeroPageX, ClassRMW, OpLSR},
	0x57: {AddrZeroPageX, ClassRMW, OpNOP},
	0x58: {AddrImplied, ClassImplied, OpCLI},
	0x59: {AddrAbsoluteY, ClassRead, OpEOR},
	0x5A: {AddrImplied, ClassImplied, OpNOP},
	0x5B: {AddrAbsoluteY, ClassRMW, OpNOP},
	0x5C: {AddrAbsoluteX, ClassRead, OpNOP},
	0x5D: {AddrAbsoluteX, ClassRead, OpEOR},
	0x5E: {AddrAbsoluteX, ClassRMW, OpLSR},
	0x5F: {AddrAbsoluteX, ClassRMW, OpNOP},

	0x60: {AddrImplied, ClassRTS, OpRTS},
	0x61: {AddrIndexedIndirect, ClassRead, OpADC},
	0x62: {AddrImplied, ClassImplied, OpNOP},
	0x63: {AddrIndexedIndirect, ClassRMW, OpNOP},
	0x64: {AddrZeroPage, ClassRead, OpNOP},
	0x65: {AddrZeroPage, ClassRead, OpADC},
	0x66: {AddrZeroPage, ClassRMW, OpROR},
	0x67: {AddrZeroPage, ClassRMW, OpNOP},
	0x68: {AddrImplied, ClassPull, OpPLA},
	0x69: {AddrImmediate, ClassRead, OpADC},
	0x6A: {AddrAccumulator, ClassAccum, OpROR},
	0x6B: {AddrImmediate, ClassRead, OpNOP},
	0x6C: {AddrIndirect, ClassJump, OpJMP},
	0x6D: {AddrAbsolute, ClassRead, OpADC},
	0x6E: {AddrAbsolute, ClassRMW, OpROR},
	0x6F: {AddrAbsolute, ClassRMW, OpNOP},

	0x70: {AddrRelative, ClassBranch, OpBVS},
	0x71: {AddrIndirectIndexed, ClassRead, OpADC},
	0x72: {AddrImplied, ClassImplied, OpNOP},
	0x73: {AddrIndirectIndexed, ClassRMW, OpNOP},
	0x74: {AddrZeroPageX, ClassRead, OpNOP},
	0x75: {AddrZeroPageX, ClassRead, OpADC},
	0x76: {AddrZeroPageX, ClassRMW, OpROR},
	0x77: {AddrZeroPageX, ClassRMW, OpNOP},
	0x78: {AddrImplied, ClassImplied, OpSEI},
	0x79: {AddrAbsoluteY, ClassRead, OpADC},
	0x7A: {AddrImplied, ClassImplied, OpNOP},
	0x7B: {AddrAbsoluteY, ClassRMW, OpNOP},
	0x7C: {AddrAbsoluteX, ClassRead, OpNOP},
	0x7D: {AddrAbsoluteX, ClassRead, OpADC},
	0x7E: {AddrAbsoluteX, ClassRMW, OpROR},
	0x7F: {AddrAbsoluteX, ClassRMW, OpNOP},

	0x80: {AddrImmediate, ClassRead, OpNOP},
	0x81: {AddrIndexedIndirect, ClassWrite, OpSTA},
	0x82: {AddrImmediate, ClassRead, OpNOP},
	0x83: {AddrIndexedIndirect, ClassWrite, OpNOP},
	0x84: {AddrZeroPage, ClassWrite, OpSTY},
	0x85: {AddrZeroPage, ClassWrite, OpSTA},
	0x86: {AddrZeroPage, ClassWrite, OpSTX},
	0x87: {AddrZeroPage, ClassWrite, OpNOP},
	0x88: {AddrImplied, ClassImplied, OpDEY},
	0x89: {AddrImmediate, ClassRead, OpNOP},
	0x8A: {AddrImplied, ClassImplied, OpTXA},
	0x8B: {AddrImmediate, ClassRead, OpNOP},
	0x8C: {AddrAbsolute, ClassWrite, OpSTY},
	0x8D: {AddrAbsolute, ClassWrite, OpSTA},
	0x8E: {AddrAbsolute, ClassWrite, OpSTX},
	0x8F: {AddrAbsolute, ClassWrite, OpNOP},

	0x90: {AddrRelative, ClassBranch, OpBCC},
	0x91: {AddrIndirectIndexed, ClassWrite, OpSTA},
	0x92: {AddrImplied, ClassImplied, OpNOP},
	0x93: {AddrIndirectIndexed, ClassWrite, OpNOP},
	0x94: {AddrZeroPageX, ClassWrite, OpSTY},
	0x95: {AddrZeroPageX, ClassWrite, OpSTA},
	0x96: {AddrZeroPageY, ClassWrite, OpSTX},
	0x97: {AddrZeroPageY, ClassWrite, OpNOP},
	0x98: {AddrImplied, ClassImplied, OpTYA},
	0x99: {AddrAbsoluteY, ClassWrite, OpSTA},
	0x9A: {AddrImplied, ClassImplied, OpTXS},
	0x9B: {AddrAbsoluteY, ClassWrite, OpNOP},
	0x9C: {AddrAbsoluteX, ClassWrite, OpNOP},
	0x9D: {AddrAbsoluteX, ClassWrite, OpSTA},
	0x9E: {AddrAbsoluteY, ClassWrite, OpNOP},
	0x9F: {AddrAbsoluteY, ClassWrite, OpNOP},

	0xA0: {AddrImmediate, ClassRead, OpLDY},
	0xA1: {AddrIndexedIndirect, ClassRead, OpLDA},
	0xA2: {AddrImmediate, ClassRead, OpLDX},
	0xA3: {AddrIndexedIndirect, ClassRead, OpNOP},
	0xA4: {AddrZeroPage, ClassRead, OpLDY},
	0xA5: {AddrZeroPage, ClassRead, OpLDA},
	0xA6: {AddrZeroPage, ClassRead, OpLDX},
	0xA7: {AddrZeroPage, ClassRead, OpNOP},
	0xA8: {AddrImplied, ClassImplied, OpTAY},
	0xA9: {AddrImmediate, ClassRead, OpLDA},
	0xAA: {AddrImplied, ClassImplied, OpTAX},
	0xAB: {AddrImmediate, ClassRead, OpNOP},
	0xAC: {AddrAbsolute, ClassRead, OpLDY},
	0xAD: {AddrAbsolute, ClassRead, OpLDA},
	0xAE: {AddrAbsolute, ClassRead, OpLDX},
	0xAF: {AddrAbsolute, ClassRead, OpNOP},

	0xB0: {AddrRelative, ClassBranch, OpBCS},
	0xB1: {AddrIndirectIndexed, ClassRead, OpLDA},
	0xB2: {AddrImplied, ClassImplied, OpNOP},
	0xB3: {AddrIndirectIndexed, ClassRead, OpNOP},
	0xB4: {AddrZeroPageX, ClassRead, OpLDY},
	0xB5: {AddrZeroPageX, ClassRead, OpLDA},
	0xB6: {AddrZeroPageY, ClassRead, OpLDX},
	0xB7: {AddrZeroPageY, ClassRead, OpNOP},
	0xB8: {AddrImplied, ClassImplied, OpCLV},
	0xB9: {AddrAbsoluteY, ClassRead, OpLDA},
	0xBA: {AddrImplied, ClassImplied, OpTSX},
	0xBB: {AddrAbsoluteY, ClassRead, OpNOP},
	0xBC: {AddrAbsoluteX, ClassRead, OpLDY},
	0xBD: {AddrAbsoluteX, ClassRead, OpLDA},
	0xBE: {AddrAbsoluteY, ClassRead, OpLDX},
	0xBF: {AddrAbsoluteY, ClassRead, OpNOP},

	0xC0: {AddrImmediate, ClassRead, OpCPY},
	0xC1: {AddrIndexedIndirect, ClassRead, OpCMP},
	0xC2: {AddrImmediate, ClassRead, OpNOP},
	0xC3: {AddrIndexedIndirect, ClassRMW, OpNOP},
	0xC4: {AddrZeroPage, ClassRead, OpCPY},
	0xC5: {AddrZeroPage, ClassRead, OpCMP},
	0xC6: {AddrZeroPage, ClassRMW, OpDEC},
	0xC7: {AddrZeroPage, ClassRMW, OpNOP},
	0xC8: {AddrImplied, ClassImplied, OpINY},
	0xC9: {AddrImmediate, ClassRead, OpCMP},
	0xCA: {AddrImplied, ClassImplied, OpDEX},
	0xCB: {AddrImmediate, ClassRead, OpNOP},
	0xCC: {AddrAbsolute, ClassRead, OpCPY},
	0xCD: {AddrAbsolute, ClassRead, OpCMP},
	0xCE: {AddrAbsolute, ClassRMW, OpDEC},
	0xCF: {AddrAbsolute, ClassRMW, OpNOP},

	0xD0: {AddrRelative, ClassBranch, OpBNE},
	0xD1: {AddrIndirectIndexed, ClassRead, OpCMP},
	0xD2: {AddrImplied, ClassImplied, OpNOP},
	0xD3: {AddrIndirectIndexed, ClassRMW, OpNOP},
	0xD4: {AddrZeroPageX, ClassRead, OpNOP},
	0xD5: {AddrZeroPageX, ClassRead, OpCMP},
	0xD6: {AddrZeroPageX, ClassRMW, OpDEC},
	0xD7: {AddrZeroPageX, ClassRMW, OpNOP},
	0xD8: {AddrImplied, ClassImplied, OpCLD},
	0xD9: {AddrAbsoluteY, ClassRead, OpCMP},
	0xDA: {AddrImplied, ClassImplied, OpNOP},
	0xDB: {AddrAbsoluteY, ClassRMW, OpNOP},
	0xDC: {AddrAbsoluteX, ClassRead, OpNOP},
	0xDD: {AddrAbsoluteX, ClassRead, OpCMP},
	0xDE: {AddrAbsoluteX, ClassRMW, OpDEC},
	0xDF: {AddrAbsoluteX, ClassRMW, OpNOP},

	0xE0: {AddrImmediate, ClassRead, OpCPX},
	0xE1: {AddrIndexedIndirect, ClassRead, OpSBC},
	0xE2: {AddrImmediate, ClassRead, OpNOP},
	0xE3: {AddrIndexedIndirect, ClassRMW, OpNOP},
	0xE4: {AddrZeroPage, ClassRead, OpCPX},
	0xE5: {AddrZeroPage, ClassRead, OpSBC},
	0xE6: {AddrZeroPage, ClassRMW, OpINC},
	0xE7: {AddrZeroPage, ClassRMW, OpNOP},
	0xE8: {AddrImplied, ClassImplied, OpINX},
	0xE9: {AddrImmediate, ClassRead, OpSBC},
	0xEA: {AddrImplied, ClassImplied, OpNOP},
	0xEB: {AddrImmediate, ClassRead, OpNOP},
	0xEC: {AddrAbsolute, ClassRead, OpCPX},
	0xED: {AddrAbsolute, ClassRead, OpSBC},
	0xEE: {AddrAbsolute, ClassRMW, OpINC},
	0xEF: {AddrAbsolute, ClassRMW, OpNOP},

	0xF0: {AddrRelative, ClassBranch, OpBEQ},
	0xF1: {AddrIndirectIndexed, ClassRead, OpSBC},
	0xF2: {AddrImplied, ClassImplied, OpNOP},
	0xF3: {AddrIndirectIndexed, ClassRMW, OpNOP},
	0xF4: {AddrZeroPageX, ClassRead, OpNOP},
	0xF5: {AddrZeroPageX, ClassRead, OpSBC},
	0xF6: {AddrZeroPageX, ClassRMW, OpINC},
	0xF7: {AddrZeroPageX, ClassRMW, OpNOP},
	0xF8: {AddrImplied, ClassImplied, OpSED},
	0xF9: {AddrAbsoluteY, ClassRead, OpSBC},
	0xFA: {AddrImplied, ClassImplied, OpNOP},
	0xFB: {AddrAbsoluteY, ClassRMW, OpNOP},
	0xFC: {AddrAbsoluteX, ClassRead, OpNOP},
	0xFD: {AddrAbsoluteX, ClassRead, OpSBC},
	0xFE: {AddrAbsoluteX, ClassRMW, OpINC},
	0xFF: {AddrAbsoluteX, ClassRMW, OpNOP},
}
