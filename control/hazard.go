package control

import "github.com/sarchlab/pipectl/insts"

// LoadUseHazard detects the one stall condition this design has: the
// execute stage holds a load whose destination the current instruction
// needs this cycle. The load's value only materializes in the memory
// stage, so the consumer must wait a cycle; the forwarding resolver then
// satisfies it from there.
func LoadUseHazard(inst insts.Instruction, class Class, execute StageSnapshot) bool {
	if !execute.MemRead {
		return false
	}
	if execute.Rd == insts.ZeroReg {
		return false
	}

	if class.UsesRs && execute.Rd == inst.Rs {
		return true
	}
	if class.UsesRt && execute.Rd == inst.Rt {
		return true
	}

	return false
}
