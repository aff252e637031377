package timing

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/pipectl/control"
	"github.com/sarchlab/pipectl/insts"
)

// TraceEntry is one instruction of the fetch stream together with the
// comparator outcome the external condition unit would report for it.
type TraceEntry struct {
	Inst insts.Instruction

	// ZeroFlag is the zero-comparison result for this instruction's
	// operands. Only meaningful for branches; ignored otherwise.
	ZeroFlag bool
}

// Statistics accumulates per-run control-event counts.
type Statistics struct {
	// Cycles is the total number of cycles driven.
	Cycles uint64
	// Instructions is the number of instructions issued into execute.
	Instructions uint64
	// Stalls is the number of load-use stall cycles.
	Stalls uint64
	// Flushes is the number of cycles that flushed the fetch latch.
	Flushes uint64
	// Forwards counts operand paths resolved from an in-flight stage.
	Forwards uint64
}

// CPI returns the cycles per issued instruction.
func (s Statistics) CPI() float64 {
	if s.Instructions == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(s.Instructions)
}

// Driver replays a decoded instruction trace through the control engine,
// one cycle per tick. It implements the external sequential driver
// contract: it owns the snapshots (via a Tracker), feeds the engine one
// well-formed input tuple per cycle, and consumes the emitted vector to
// advance its own state. It runs as an Akita ticking component so traces
// replay inside a standard event-driven simulation.
type Driver struct {
	*sim.TickingComponent

	engine  *control.Engine
	tracker *Tracker

	trace   []TraceEntry
	pos     int
	decode  *TraceEntry
	stats   Statistics
}

// NewDriver creates a driver for the given trace, registered with the
// given Akita event engine.
func NewDriver(name string, akitaEngine sim.Engine, trace []TraceEntry) *Driver {
	d := &Driver{
		engine:  control.NewEngine(),
		tracker: NewTracker(),
		trace:   trace,
	}
	d.TickingComponent = sim.NewTickingComponent(name, akitaEngine, 1*sim.GHz, d)
	return d
}

// Tick runs one cycle: fetch the next trace entry into decode if the slot
// is free, evaluate the engine, account the events, and advance the
// snapshots. Returns false once the trace is exhausted and decode is empty,
// which lets the event engine drain.
func (d *Driver) Tick() bool {
	if d.decode == nil {
		if d.pos >= len(d.trace) {
			return false
		}
		entry := d.trace[d.pos]
		d.pos++
		d.decode = &entry
	}

	entry := *d.decode
	execute, memory, writeback := d.tracker.Snapshots()
	vec := d.engine.Evaluate(entry.Inst, execute, memory, writeback, entry.ZeroFlag)

	d.account(vec)
	d.tracker.Advance(entry.Inst, vec)

	if vec.IFIDWrite {
		d.decode = nil
	}
	if vec.FlushIFID && !vec.Stall && d.pos < len(d.trace) {
		// The next fetched instruction sat on the wrong path; squash it.
		// A stalled branch re-resolves next cycle with a forwarded operand,
		// so its flush only counts once the stall clears.
		d.pos++
	}

	return true
}

func (d *Driver) account(vec control.Vector) {
	d.stats.Cycles++
	if vec.Stall {
		d.stats.Stalls++
	} else {
		d.stats.Instructions++
	}
	if vec.Stall {
		// The instruction re-issues next cycle; its forwards and any
		// premature flush are accounted then.
		return
	}
	if vec.FlushIFID {
		d.stats.Flushes++
	}
	for _, f := range []control.ForwardSource{vec.ForwardA, vec.ForwardB, vec.ForwardC} {
		if f != control.ForwardNone {
			d.stats.Forwards++
		}
	}
}

// Stats returns the accumulated statistics.
func (d *Driver) Stats() Statistics {
	return d.stats
}

// Replay runs a trace to completion on a serial event engine and returns
// the accumulated statistics.
func Replay(trace []TraceEntry) (Statistics, error) {
	akitaEngine := sim.NewSerialEngine()
	driver := NewDriver("Driver", akitaEngine, trace)

	driver.TickLater()
	if err := akitaEngine.Run(); err != nil {
		return Statistics{}, err
	}

	return driver.Stats(), nil
}
