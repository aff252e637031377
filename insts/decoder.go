package insts

// Decoder extracts control-relevant instruction fields from raw 32-bit
// machine words. It is the front-end collaborator of the control engine;
// the engine itself never touches machine words.
type Decoder struct{}

// NewDecoder creates a new field-extraction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode extracts the opcode, function code, and source register fields
// from a machine word.
//
// Word layout (MIPS-I):
//
//	[31:26] opcode | [25:21] rs | [20:16] rt | ... | [5:0] funct
//
// The function-code field is extracted only for the register-register
// class; for every other opcode the low bits are immediate payload and
// Funct is left zero.
func (d *Decoder) Decode(word uint32) Instruction {
	inst := Instruction{
		Opcode: Opcode((word >> 26) & 0x3F),
		Rs:     uint8((word >> 21) & 0x1F),
		Rt:     uint8((word >> 16) & 0x1F),
	}

	if inst.Opcode == OpcodeRType {
		inst.Funct = Funct(word & 0x3F)
	}

	return inst
}
