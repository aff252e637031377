package verif

import (
	"fmt"

	"github.com/sarchlab/pipectl/control"
	"github.com/sarchlab/pipectl/insts"
)

// DefaultProperties returns the engine's single-cycle invariants. The
// two-cycle load-use property lives in Checker.CheckLoadUseResolution.
func DefaultProperties() []Property {
	return []Property{
		{
			Name:  "forwarding-source-exclusive",
			Check: checkForwardingExclusive,
		},
		{
			Name:  "zero-register-never-forwarded",
			Check: checkZeroRegister,
		},
		{
			Name:  "stall-equals-bubble-equals-hazard",
			Check: checkStallBubble,
		},
		{
			Name:  "pc-write-is-not-stall",
			Check: checkPCWriteIndependence,
		},
		{
			Name:  "branch-taken-guarded",
			Check: checkBranchTakenGuard,
		},
		{
			Name:  "target-ready-roundtrip",
			Check: checkTargetReadyRoundTrip,
		},
		{
			Name:  "flush-follows-decisions",
			Check: checkFlushDerivation,
		},
		{
			Name:  "unknown-opcode-is-noop",
			Check: checkUnknownOpcodeDefault,
		},
	}
}

// checkForwardingExclusive: each operand path selects exactly the unique
// qualifying source. Execute outranks memory when both match, FROM_MEMORY
// is only legal when execute did not qualify, and a path left at NONE while
// a stage qualifies is a missed forward - both directions of the if/else
// chain are checked.
func checkForwardingExclusive(in Input, vec control.Vector) string {
	class := control.Classify(in.Inst)

	paths := []struct {
		name string
		used bool
		reg  uint8
		sel  control.ForwardSource
	}{
		{"A", class.UsesRs, in.Inst.Rs, vec.ForwardA},
		{"B", class.UsesRt, in.Inst.Rt, vec.ForwardB},
		{"C", class.IsBranch, in.Inst.Rt, vec.ForwardC},
	}

	for _, p := range paths {
		live := p.used && p.reg != insts.ZeroReg

		exQualifies := live &&
			in.Execute.RegWrite && !in.Execute.MemRead &&
			in.Execute.Rd != insts.ZeroReg && in.Execute.Rd == p.reg
		memQualifies := live &&
			in.Memory.RegWrite && in.Memory.Rd != insts.ZeroReg &&
			in.Memory.Rd == p.reg

		want := control.ForwardNone
		switch {
		case exQualifies:
			want = control.ForwardFromExecute
		case memQualifies:
			want = control.ForwardFromMemory
		}

		if p.sel != want {
			return fmt.Sprintf("path %s selects source %d, qualifying source is %d",
				p.name, p.sel, want)
		}
	}

	return ""
}

// checkZeroRegister: the hard-wired zero register neither sources a
// forward nor raises a stall, regardless of snapshot write-enables.
func checkZeroRegister(in Input, vec control.Vector) string {
	if in.Execute.Rd == insts.ZeroReg && in.Memory.Rd == insts.ZeroReg {
		if vec.ForwardA != control.ForwardNone ||
			vec.ForwardB != control.ForwardNone ||
			vec.ForwardC != control.ForwardNone {
			return "forwarding from a zero-register destination"
		}
		if vec.Stall {
			return "stall raised by a zero-register load"
		}
	}
	return ""
}

// checkStallBubble: stall, bubble, and the load-use condition are one
// signal by construction.
func checkStallBubble(in Input, vec control.Vector) string {
	class := control.Classify(in.Inst)
	hazard := control.LoadUseHazard(in.Inst, class, in.Execute)

	if vec.Stall != hazard {
		return fmt.Sprintf("stall=%t but load_use_hazard=%t", vec.Stall, hazard)
	}
	if vec.Bubble != vec.Stall {
		return fmt.Sprintf("bubble=%t diverges from stall=%t", vec.Bubble, vec.Stall)
	}
	return ""
}

// checkPCWriteIndependence: the PC and IF/ID write enables depend on the
// stall alone; a concurrent flush never contradicts them.
func checkPCWriteIndependence(in Input, vec control.Vector) string {
	if vec.PCWrite != !vec.Stall {
		return fmt.Sprintf("PCWrite=%t with stall=%t", vec.PCWrite, vec.Stall)
	}
	if vec.IFIDWrite != !vec.Stall {
		return fmt.Sprintf("IFIDWrite=%t with stall=%t", vec.IFIDWrite, vec.Stall)
	}
	return ""
}

// checkBranchTakenGuard: taken requires a satisfied branch or a jump.
func checkBranchTakenGuard(in Input, vec control.Vector) string {
	if vec.BranchTaken && !(vec.Branch && vec.BranchZero) && !vec.Jump {
		return "branch taken without a satisfied branch or a jump"
	}
	return ""
}

// checkTargetReadyRoundTrip: target readiness reconstructs the category
// exactly, independent of the taken decision.
func checkTargetReadyRoundTrip(in Input, vec control.Vector) string {
	want := vec.Branch || vec.Jump
	if vec.TargetReady != want {
		return fmt.Sprintf("TargetReady=%t but branch=%t jump=%t",
			vec.TargetReady, vec.Branch, vec.Jump)
	}
	return ""
}

// checkFlushDerivation: flushes are exactly the stall and taken decisions,
// and the PC source is consistent with them (jump over branch).
func checkFlushDerivation(in Input, vec control.Vector) string {
	if vec.FlushIFID != vec.BranchTaken {
		return fmt.Sprintf("FlushIFID=%t with BranchTaken=%t", vec.FlushIFID, vec.BranchTaken)
	}
	if vec.FlushIDEX != (vec.Stall || vec.BranchTaken) {
		return fmt.Sprintf("FlushIDEX=%t with stall=%t taken=%t",
			vec.FlushIDEX, vec.Stall, vec.BranchTaken)
	}

	switch {
	case vec.Jump:
		if vec.PCSrc != control.PCSrcJump {
			return "jump asserted but PC source is not the jump target"
		}
	case vec.Branch && vec.BranchZero:
		if vec.PCSrc != control.PCSrcBranch {
			return "satisfied branch but PC source is not the branch target"
		}
	default:
		if vec.PCSrc != control.PCSrcNext {
			return "no redirect but PC source is not sequential"
		}
	}
	return ""
}

// checkUnknownOpcodeDefault: an unrecognized opcode resolves to the
// all-disabled vector plus whatever forwarding/stall the snapshots would
// imply for an instruction that uses no registers - which is none.
func checkUnknownOpcodeDefault(in Input, vec control.Vector) string {
	if control.Classify(in.Inst).Recognized() {
		return ""
	}
	if vec != control.DefaultVector() {
		return "unrecognized opcode produced a non-default vector"
	}
	return ""
}
