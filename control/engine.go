package control

import "github.com/sarchlab/pipectl/insts"

// Engine is the combinational control-decision engine. It holds no state:
// every call to Evaluate is a pure function of that cycle's inputs, and
// identical inputs produce identical vectors in any call order.
type Engine struct{}

// NewEngine creates a new control engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate computes the full control vector for one cycle.
//
// The body is ordered by the control dependency graph's levels:
// classification first, then main control and the load-use hazard, then
// forwarding and branch resolution, and finally flush/PC-source control.
// No field reads another field computed later in the same evaluation;
// package cdg models this ordering and the tests hold the two in sync.
//
// The writeback snapshot is part of the per-cycle interface but carries no
// control decision: writeback-stage hazards are closed by the host register
// file's write-before-read semantics, so forwarding only ever compares the
// execute and memory stages.
func (e *Engine) Evaluate(
	inst insts.Instruction,
	execute, memory, writeback StageSnapshot,
	zeroFlag bool,
) Vector {
	_ = writeback

	// Level 0: classification.
	class := Classify(inst)

	// Level 1: main control.
	vec := MainControl(inst, class)

	// Level 2: forwarding and load-use detection.
	fwd := ResolveForwarding(inst, class, execute, memory)
	vec.ForwardA = fwd.ForwardA
	vec.ForwardB = fwd.ForwardB
	vec.ForwardC = fwd.ForwardC

	hazard := LoadUseHazard(inst, class, execute)
	vec.Stall = hazard
	vec.Bubble = hazard

	// Level 3: branch/jump resolution.
	dec := ResolveBranch(inst, class, zeroFlag)
	vec.BranchZero = dec.BranchZero
	vec.BranchTaken = dec.BranchTaken
	vec.TargetReady = dec.TargetReady

	// Level 4: flush and PC-source control.
	fc := ResolveFlush(vec.Stall, dec, class)
	vec.FlushIFID = fc.FlushIFID
	vec.FlushIDEX = fc.FlushIDEX
	vec.PCWrite = fc.PCWrite
	vec.IFIDWrite = fc.IFIDWrite
	vec.PCSrc = fc.PCSrc

	return vec
}
