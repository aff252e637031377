// Package verif checks the control engine against its claimed invariants.
// It enumerates the engine's input space exhaustively (with register ids
// quotiented to a small representative set), evaluates every invariant on
// every point, and reports violations as counterexample traces. There is no
// probabilistic sampling: the space is finite and small enough to sweep.
package verif

import "github.com/sarchlab/pipectl/control"

// State classifies one cycle's control vector. The engine carries no state
// of its own, so these are labels over the combinational output, not stored
// modes: each one is reachable only from Normal and returns to Normal the
// cycle after its trigger clears.
type State uint8

const (
	// StateNormal: sequential flow, no forwarding, no stall, no flush.
	StateNormal State = iota
	// StateForwardExecute: at least one operand path forwards from the
	// execute stage.
	StateForwardExecute
	// StateForwardMemory: at least one operand path forwards from the
	// memory stage.
	StateForwardMemory
	// StateStallLoad: a load-use hazard froze fetch this cycle.
	StateStallLoad
	// StateFlushBranch: a taken branch is flushing the fetch latch.
	StateFlushBranch
	// StateFlushJump: a jump is flushing the fetch latch.
	StateFlushJump
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateNormal:
		return "Normal"
	case StateForwardExecute:
		return "ForwardExecute"
	case StateForwardMemory:
		return "ForwardMemory"
	case StateStallLoad:
		return "StallLoad"
	case StateFlushBranch:
		return "FlushBranch"
	case StateFlushJump:
		return "FlushJump"
	default:
		return "Unknown"
	}
}

// ClassifyState labels a control vector. When several conditions hold in
// one cycle the most disruptive wins: stall over flush, flush over
// forwarding, execute forwarding over memory forwarding.
func ClassifyState(vec control.Vector) State {
	switch {
	case vec.Stall:
		return StateStallLoad
	case vec.Jump && vec.BranchTaken:
		return StateFlushJump
	case vec.Branch && vec.BranchTaken:
		return StateFlushBranch
	case anyForward(vec, control.ForwardFromExecute):
		return StateForwardExecute
	case anyForward(vec, control.ForwardFromMemory):
		return StateForwardMemory
	default:
		return StateNormal
	}
}

func anyForward(vec control.Vector, src control.ForwardSource) bool {
	return vec.ForwardA == src || vec.ForwardB == src || vec.ForwardC == src
}
