package control

import "github.com/sarchlab/pipectl/insts"

// BranchDecision holds the resolved branch/jump outcome for one cycle.
type BranchDecision struct {
	// BranchZero is the comparator outcome folded to the branch's sense:
	// the zero flag for equal-sense branches, its negation for
	// not-equal-sense branches. One comparator serves both senses through
	// this single field. Always false for non-branches.
	BranchZero bool

	// BranchTaken is true when control leaves the sequential stream this
	// cycle: a satisfied branch or any jump.
	BranchTaken bool

	// TargetReady tells the external target-computation unit that a
	// branch or jump target is available this cycle, whether or not it is
	// taken.
	TargetReady bool
}

// ResolveBranch combines the instruction category with the external
// zero-comparison flag into the taken/not-taken decision.
func ResolveBranch(inst insts.Instruction, class Class, zeroFlag bool) BranchDecision {
	var dec BranchDecision

	if class.IsBranch {
		dec.BranchZero = branchSense(inst.Opcode, zeroFlag)
	}

	dec.BranchTaken = (class.IsBranch && dec.BranchZero) || class.AnyJump()
	dec.TargetReady = class.IsBranch || class.AnyJump()

	return dec
}

// branchSense folds the comparator zero flag to the branch's sense.
func branchSense(op insts.Opcode, zeroFlag bool) bool {
	if op == insts.OpcodeBNE {
		return !zeroFlag
	}
	return zeroFlag
}
