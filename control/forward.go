package control

import "github.com/sarchlab/pipectl/insts"

// StageSnapshot is the hazard-relevant view of one in-flight instruction,
// supplied by the host's pipeline-state tracking each cycle. A stage holding
// a bubble is represented by the zero value: no destination, no write, no
// memory read.
type StageSnapshot struct {
	// Rd is the destination register id of the in-flight instruction.
	Rd uint8
	// RegWrite is true if the instruction will write Rd back.
	RegWrite bool
	// MemRead is true for loads, whose value is not available until the
	// memory stage.
	MemRead bool
}

// Forwarding holds the resolved forwarding selectors for one cycle: the two
// ALU operand paths and the branch comparator path.
type Forwarding struct {
	ForwardA ForwardSource
	ForwardB ForwardSource
	ForwardC ForwardSource
}

// ResolveForwarding computes the forwarding selector for each operand path
// by comparing in-flight destinations against the current instruction's
// sources. Paths are resolved independently; within a path the execute
// stage takes priority over the memory stage because it carries the more
// recent value.
//
// The comparator path (ForwardC) applies the same rule to the branch
// comparator's rt input and is gated on the instruction being a branch.
func ResolveForwarding(
	inst insts.Instruction,
	class Class,
	execute, memory StageSnapshot,
) Forwarding {
	fwd := Forwarding{
		ForwardA: ForwardNone,
		ForwardB: ForwardNone,
		ForwardC: ForwardNone,
	}

	if class.UsesRs {
		fwd.ForwardA = forwardForReg(inst.Rs, execute, memory)
	}
	if class.UsesRt {
		fwd.ForwardB = forwardForReg(inst.Rt, execute, memory)
	}
	if class.IsBranch {
		fwd.ForwardC = forwardForReg(inst.Rt, execute, memory)
	}

	return fwd
}

// forwardForReg resolves one operand path.
//
// The execute-stage load exclusion is the tie-break that makes the
// hazard unit necessary: a load's value does not exist until the memory
// stage, so its consumer can never be satisfied by execute-stage
// forwarding and must stall one cycle instead, after which the match is
// picked up here as ForwardFromMemory.
func forwardForReg(reg uint8, execute, memory StageSnapshot) ForwardSource {
	// The zero register reads as a constant; nothing to forward.
	if reg == insts.ZeroReg {
		return ForwardNone
	}

	if execute.RegWrite && !execute.MemRead &&
		execute.Rd != insts.ZeroReg && execute.Rd == reg {
		return ForwardFromExecute
	}

	if memory.RegWrite && memory.Rd != insts.ZeroReg && memory.Rd == reg {
		return ForwardFromMemory
	}

	return ForwardNone
}
