// Package timing provides the reference sequential driver for the control
// engine: pipeline-state tracking for the three stage snapshots and an
// event-driven replay driver that advances the engine one cycle per tick.
// The engine itself stays combinational; all cycle-to-cycle state lives
// here, on the host side of the contract.
package timing

import (
	"github.com/sarchlab/pipectl/control"
	"github.com/sarchlab/pipectl/insts"
)

// Tracker owns the hazard-relevant in-flight state: one snapshot per
// execute, memory, and writeback stage. Each cycle the host evaluates the
// engine against the current snapshots and then calls Advance with the
// emitted vector to latch the next cycle's state.
type Tracker struct {
	execute   control.StageSnapshot
	memory    control.StageSnapshot
	writeback control.StageSnapshot
}

// NewTracker creates a tracker with all stages empty.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Snapshots returns the current execute, memory, and writeback snapshots.
func (t *Tracker) Snapshots() (execute, memory, writeback control.StageSnapshot) {
	return t.execute, t.memory, t.writeback
}

// Advance latches the next cycle's snapshots from this cycle's decision.
// Instructions move one stage down; the decode-stage instruction enters
// execute unless the ID/EX flush killed it, in which case a bubble enters
// instead. A bubble is the zero snapshot: it writes nothing, loads
// nothing, and can never match a hazard comparison.
func (t *Tracker) Advance(inst insts.Instruction, vec control.Vector) {
	t.writeback = t.memory
	t.memory = t.execute

	if vec.FlushIDEX {
		t.execute = control.StageSnapshot{}
		return
	}

	t.execute = control.StageSnapshot{
		Rd:       control.DestReg(inst, vec),
		RegWrite: vec.RegWrite,
		MemRead:  vec.MemRead,
	}
}

// Reset empties all stages.
func (t *Tracker) Reset() {
	*t = Tracker{}
}
