// Package insts defines the instruction vocabulary of the control engine.
//
// The engine operates on a MIPS-I-style subset encoded with a 6-bit opcode
// and, for the register-register class, a 6-bit function code. Instructions
// are represented as per-cycle descriptors carrying only the fields the
// control path consumes: opcode, function code, and the two source register
// ids. Field extraction from raw machine words is handled by Decoder.
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x8CA60000) // LW r6, 0(r5)
//	fmt.Printf("Op: %#x, Rs: %d, Rt: %d\n", inst.Opcode, inst.Rs, inst.Rt)
package insts

// Opcode is a 6-bit primary opcode.
type Opcode uint8

// Primary opcodes.
const (
	// OpcodeRType selects the register-register class; Funct picks the
	// operation within it.
	OpcodeRType Opcode = 0x00
	OpcodeJ     Opcode = 0x02
	OpcodeJAL   Opcode = 0x03
	OpcodeBEQ   Opcode = 0x04
	OpcodeBNE   Opcode = 0x05
	OpcodeADDI  Opcode = 0x08
	OpcodeSLTI  Opcode = 0x0A
	OpcodeANDI  Opcode = 0x0C
	OpcodeORI   Opcode = 0x0D
	OpcodeLW    Opcode = 0x23
	OpcodeSW    Opcode = 0x2B
)

// Funct is a 6-bit function code, meaningful only under OpcodeRType.
type Funct uint8

// Function codes for the register-register class.
//
// FunctJR (0x08) shares its bit pattern with OpcodeADDI (0x08). The two live
// in disjoint encoding spaces: a value is a function code only when the
// primary opcode is OpcodeRType. Classification must never compare an opcode
// against a function code or vice versa.
const (
	FunctJR  Funct = 0x08
	FunctADD Funct = 0x20
	FunctSUB Funct = 0x22
	FunctAND Funct = 0x24
	FunctOR  Funct = 0x25
	FunctXOR Funct = 0x26
	FunctSLT Funct = 0x2A
)

// Register-file conventions.
const (
	// ZeroReg is hard-wired to zero. Writes to it are dropped, so it never
	// participates in forwarding or hazard detection.
	ZeroReg uint8 = 0

	// LinkReg receives the return address (PC+1) for JAL.
	LinkReg uint8 = 31
)

// Instruction is the per-cycle instruction descriptor handed to the control
// engine by the fetch/decode front end. It is a plain value: constructed
// once per cycle, consumed once, never mutated.
type Instruction struct {
	// Opcode is the 6-bit primary opcode.
	Opcode Opcode

	// Funct is the 6-bit function code. Only meaningful when Opcode is
	// OpcodeRType; zero otherwise.
	Funct Funct

	// Rs is the first source register id.
	Rs uint8

	// Rt is the second source register id. For the register-register class
	// it is the second ALU operand; for stores it is the data register; it
	// also doubles as the destination field the RegDst selector may pick.
	Rt uint8
}

// IsRegisterClass reports whether the opcode denotes the register-register
// encoding class (which includes JR).
func (i Instruction) IsRegisterClass() bool {
	return i.Opcode == OpcodeRType
}
