package control

import "github.com/sarchlab/pipectl/insts"

// MainControl maps an instruction's class to the primary control fields:
// register write, destination selection, immediate shape, ALU operation,
// operand source, memory read/write, branch/jump enables, and writeback
// source. The mapping is total: every opcode resolves to exactly one
// tuple, with unmapped opcodes falling back to the all-disabled default.
//
// Forwarding, hazard, and flush fields are left at their defaults; later
// levels of the engine fill them in.
func MainControl(inst insts.Instruction, class Class) Vector {
	vec := DefaultVector()

	switch {
	case class.IsRegisterOp:
		vec.RegWrite = true
		vec.RegDst = RegDstRt
		vec.ALUOp = ALUOpFunct
		vec.WBSrc = WBSrcALU

	case class.IsImmediate:
		vec.RegWrite = true
		vec.RegDst = RegDstRt
		vec.ALUOp = ALUOpImm
		vec.ALUSrc = true
		vec.ImmSrc = ImmSrcI
		vec.WBSrc = WBSrcALU

	case class.IsLoad:
		vec.RegWrite = true
		vec.RegDst = RegDstRt
		vec.ALUOp = ALUOpAdd
		vec.ALUSrc = true
		vec.ImmSrc = ImmSrcI
		vec.MemRead = true
		vec.WBSrc = WBSrcMem

	case class.IsStore:
		vec.ALUOp = ALUOpAdd
		vec.ALUSrc = true
		vec.ImmSrc = ImmSrcS
		vec.MemWrite = true

	case class.IsBranch:
		vec.Branch = true
		vec.ALUOp = ALUOpSub
		vec.ImmSrc = ImmSrcB

	case class.IsJump:
		vec.Jump = true
		vec.ImmSrc = ImmSrcJ

	case class.IsJumpLink:
		vec.Jump = true
		vec.RegWrite = true
		vec.RegDst = RegDstLink
		vec.ImmSrc = ImmSrcJ
		vec.WBSrc = WBSrcNextPC

	case class.IsJumpReg:
		vec.Jump = true
	}

	return vec
}

// DestReg resolves the destination-register id a vector's RegDst selector
// points at, given the instruction it was generated from. Returns the zero
// register for RegDstNone, which downstream hazard logic already ignores.
func DestReg(inst insts.Instruction, vec Vector) uint8 {
	switch vec.RegDst {
	case RegDstRt:
		return inst.Rt
	case RegDstLink:
		return insts.LinkReg
	default:
		return insts.ZeroReg
	}
}
