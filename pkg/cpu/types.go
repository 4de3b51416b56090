package cpu

// AddrMode identifies how an opcode's operand is fetched.
type AddrMode int

const (
	AddrImplied AddrMode = iota
	AddrAccumulator
	AddrImmediate
	AddrZeroPage
	AddrZeroPageX
	AddrZeroPageY
	AddrAbsolute
	AddrAbsoluteX
	AddrAbsoluteY
	AddrIndirect
	AddrIndexedIndirect
	AddrIndirectIndexed
	AddrRelative
)

// InstrClass is the bus-access shape of an opcode's execution phase, used
// by the step engine to pick a cycle sequence independent of the specific
// operation performed on the final cycle.
type InstrClass int

const (
	ClassRead     InstrClass = iota // operand read, operation consumes the value
	ClassWrite                      // operation produces a value, final cycle writes it
	ClassRMW                        // read, dummy write-back, modify, write new value
	ClassImplied                    // no operand; 2-cycle register-only operation
	ClassAccum                      // operand is the accumulator; 2-cycle
	ClassBranch                     // relative-addressed conditional branch
	ClassJump                       // JMP absolute/indirect
	ClassJSR
	ClassRTS
	ClassRTI
	ClassBRK
	ClassPush // PHA/PHP
	ClassPull // PLA/PLP
)

// Operation is the behavioral tag executed once the addressing-mode phase
// has produced an address/value. Undocumented opcodes are all tagged
// OpNOP: the stable opcode set is specified, and unofficial opcodes are
// implemented as no-ops of the correct size and cycle count only.
type Operation int

const (
	OpNOP Operation = iota
	OpLDA
	OpLDX
	OpLDY
	OpSTA
	OpSTX
	OpSTY
	OpADC
	OpSBC
	OpAND
	OpORA
	OpEOR
	OpASL
	OpLSR
	OpROL
	OpROR
	OpCMP
	OpCPX
	OpCPY
	OpBIT
	OpINC
	OpDEC
	OpINX
	OpINY
	OpDEX
	OpDEY
	OpTAX
	OpTAY
	OpTXA
	OpTYA
	OpTSX
	OpTXS
	OpCLC
	OpSEC
	OpCLI
	OpSEI
	OpCLV
	OpCLD
	OpSED
	OpPHA
	OpPHP
	OpPLA
	OpPLP
	OpJMP
	OpJSR
	OpRTS
	OpRTI
	OpBRK
	OpBCC
	OpBCS
	OpBEQ
	OpBMI
	OpBNE
	OpBPL
	OpBVC
	OpBVS
)

// opcodeInfo is the decoded (addressing-mode, operation, instruction-class)
// tuple the step engine looks up once per opcode fetch.
type opcodeInfo struct {
	Mode  AddrMode
	Class InstrClass
	Op    Operation
}

// intKind distinguishes the three 7-cycle service sequences: they share a
// step sequence but differ in vector, B-flag handling, and whether the
// first two cycles are a real operand fetch (BRK) or dummy PC reads.
type intKind int

const (
	intNone intKind = iota
	intBRK
	intIRQ
	intNMI
)
