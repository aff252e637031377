package control

import "github.com/sarchlab/pipectl/insts"

// Class holds the instruction-category and register-usage flags derived
// from the opcode and function code. It is the first level of the control
// dependency graph; everything downstream consumes it.
type Class struct {
	// Category flags. At most one is set for a recognized instruction;
	// all are false for an unrecognized opcode, which classifies as a
	// no-op.
	IsRegisterOp bool // register-register ALU operation
	IsImmediate  bool // immediate-arithmetic operation
	IsLoad       bool
	IsStore      bool
	IsBranch     bool
	IsJump       bool // unconditional jump without register operand (J)
	IsJumpLink   bool // link-creating jump (JAL)
	IsJumpReg    bool // jump through register (JR)

	// Register-usage flags.
	UsesRs         bool
	UsesRt         bool
	WritesRegister bool
}

// AnyJump reports whether the instruction belongs to any jump category.
func (c Class) AnyJump() bool {
	return c.IsJump || c.IsJumpLink || c.IsJumpReg
}

// Recognized reports whether the opcode/funct pair mapped to a known
// instruction category.
func (c Class) Recognized() bool {
	return c.IsRegisterOp || c.IsImmediate || c.IsLoad || c.IsStore ||
		c.IsBranch || c.AnyJump()
}

// Classify derives the category and usage flags for one instruction.
//
// The function code participates only under the register-register opcode:
// there it distinguishes the ALU operations from JR. A funct value that
// happens to equal some opcode (JR's 0x08 equals ADDI's opcode) is
// irrelevant outside that class.
func Classify(inst insts.Instruction) Class {
	var c Class

	switch inst.Opcode {
	case insts.OpcodeRType:
		switch inst.Funct {
		case insts.FunctADD, insts.FunctSUB, insts.FunctAND,
			insts.FunctOR, insts.FunctXOR, insts.FunctSLT:
			c.IsRegisterOp = true
		case insts.FunctJR:
			c.IsJumpReg = true
		}
	case insts.OpcodeADDI, insts.OpcodeSLTI, insts.OpcodeANDI, insts.OpcodeORI:
		c.IsImmediate = true
	case insts.OpcodeLW:
		c.IsLoad = true
	case insts.OpcodeSW:
		c.IsStore = true
	case insts.OpcodeBEQ, insts.OpcodeBNE:
		c.IsBranch = true
	case insts.OpcodeJ:
		c.IsJump = true
	case insts.OpcodeJAL:
		c.IsJumpLink = true
	}

	if !c.Recognized() {
		return c
	}

	// Every instruction reads rs except the jumps that carry no register
	// operand (J and JAL). JR reads rs for its target.
	c.UsesRs = !c.IsJump && !c.IsJumpLink

	// rs-only consumers: immediate arithmetic, loads, JR. rt is read by
	// register-register operations, stores, and branches.
	c.UsesRt = c.IsRegisterOp || c.IsStore || c.IsBranch

	c.WritesRegister = c.IsRegisterOp || c.IsImmediate || c.IsLoad || c.IsJumpLink

	return c
}
