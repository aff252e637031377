package verif

import (
	"fmt"

	"github.com/sarchlab/pipectl/control"
	"github.com/sarchlab/pipectl/insts"
)

// Input is one point of the engine's input space: the decode-stage
// instruction, the three stage snapshots, and the comparator flag.
type Input struct {
	Inst      insts.Instruction
	Execute   control.StageSnapshot
	Memory    control.StageSnapshot
	Writeback control.StageSnapshot
	ZeroFlag  bool
}

func (in Input) String() string {
	return fmt.Sprintf(
		"op=%#02x funct=%#02x rs=%d rt=%d ex={rd=%d w=%t ld=%t} mem={rd=%d w=%t ld=%t} wb={rd=%d w=%t ld=%t} zero=%t",
		in.Inst.Opcode, in.Inst.Funct, in.Inst.Rs, in.Inst.Rt,
		in.Execute.Rd, in.Execute.RegWrite, in.Execute.MemRead,
		in.Memory.Rd, in.Memory.RegWrite, in.Memory.MemRead,
		in.Writeback.Rd, in.Writeback.RegWrite, in.Writeback.MemRead,
		in.ZeroFlag,
	)
}

// Counterexample is a reported invariant violation: the property name, the
// input that reached it, the vector the engine produced, and what went
// wrong. A non-empty counterexample list is fatal to acceptance; there is
// no runtime recovery from a control defect.
type Counterexample struct {
	Property string
	Input    Input
	Vector   control.Vector
	Detail   string
}

func (c Counterexample) String() string {
	return fmt.Sprintf("%s: %s (%s)", c.Property, c.Detail, c.Input)
}

// Property is one invariant over a single cycle's evaluation. Check returns
// an empty string when the invariant holds, or a description of the
// violation.
type Property struct {
	Name  string
	Check func(in Input, vec control.Vector) string
}

// Checker sweeps the engine's input space and evaluates properties on
// every point. Register ids are quotiented to a small representative set;
// the control logic only ever compares ids for equality and against the
// zero register, so three non-zero ids plus zero cover every distinct
// comparison outcome.
type Checker struct {
	engine *control.Engine

	// MaxCounterexamples bounds the report; 0 means stop at the first.
	MaxCounterexamples int
}

// NewChecker creates a checker over a fresh engine.
func NewChecker() *Checker {
	return &Checker{
		engine:             control.NewEngine(),
		MaxCounterexamples: 1,
	}
}

var regIDs = []uint8{0, 1, 2, 3}

var instKinds = []insts.Instruction{
	{Opcode: insts.OpcodeRType, Funct: insts.FunctADD},
	{Opcode: insts.OpcodeRType, Funct: insts.FunctSUB},
	{Opcode: insts.OpcodeRType, Funct: insts.FunctSLT},
	{Opcode: insts.OpcodeRType, Funct: insts.FunctJR},
	{Opcode: insts.OpcodeRType, Funct: 0x3F}, // unknown funct
	{Opcode: insts.OpcodeADDI},
	{Opcode: insts.OpcodeORI},
	{Opcode: insts.OpcodeLW},
	{Opcode: insts.OpcodeSW},
	{Opcode: insts.OpcodeBEQ},
	{Opcode: insts.OpcodeBNE},
	{Opcode: insts.OpcodeJ},
	{Opcode: insts.OpcodeJAL},
	{Opcode: 0x3F}, // unknown opcode
}

// Run evaluates every default property on every input point and returns
// the counterexamples found, up to MaxCounterexamples.
func (c *Checker) Run() []Counterexample {
	return c.RunProperties(DefaultProperties())
}

// RunProperties evaluates the given properties over the full input space.
func (c *Checker) RunProperties(props []Property) []Counterexample {
	var found []Counterexample

	c.forEachInput(func(in Input) bool {
		vec := c.engine.Evaluate(in.Inst, in.Execute, in.Memory, in.Writeback, in.ZeroFlag)

		for _, p := range props {
			if detail := p.Check(in, vec); detail != "" {
				found = append(found, Counterexample{
					Property: p.Name,
					Input:    in,
					Vector:   vec,
					Detail:   detail,
				})
				if c.done(found) {
					return false
				}
			}
		}
		return true
	})

	return found
}

// CheckLoadUseResolution verifies the two-cycle property: every cycle that
// stalls on a load-use hazard is followed, once the load advances one
// stage, by memory-stage forwarding on the hazarded path rather than a
// repeated stall.
func (c *Checker) CheckLoadUseResolution() []Counterexample {
	const name = "load-use-resolves-to-memory-forwarding"

	var found []Counterexample

	c.forEachInput(func(in Input) bool {
		vec := c.engine.Evaluate(in.Inst, in.Execute, in.Memory, in.Writeback, in.ZeroFlag)
		if !vec.Stall {
			return true
		}

		// Next cycle: the load advances to the memory stage, the stall
		// injects a bubble behind it, and the fetch freeze holds the same
		// instruction in decode.
		next := Input{
			Inst:      in.Inst,
			Execute:   control.StageSnapshot{},
			Memory:    in.Execute,
			Writeback: in.Memory,
			ZeroFlag:  in.ZeroFlag,
		}
		nextVec := c.engine.Evaluate(next.Inst, next.Execute, next.Memory, next.Writeback, next.ZeroFlag)

		if nextVec.Stall {
			found = append(found, Counterexample{
				Property: name,
				Input:    next,
				Vector:   nextVec,
				Detail:   "stall repeated after the load advanced",
			})
			return !c.done(found)
		}

		class := control.Classify(in.Inst)
		if class.UsesRs && in.Execute.Rd == in.Inst.Rs &&
			nextVec.ForwardA != control.ForwardFromMemory {
			found = append(found, Counterexample{
				Property: name,
				Input:    next,
				Vector:   nextVec,
				Detail:   "rs path not forwarded from memory after stall",
			})
			return !c.done(found)
		}
		if class.UsesRt && in.Execute.Rd == in.Inst.Rt &&
			nextVec.ForwardB != control.ForwardFromMemory {
			found = append(found, Counterexample{
				Property: name,
				Input:    next,
				Vector:   nextVec,
				Detail:   "rt path not forwarded from memory after stall",
			})
			return !c.done(found)
		}
		return true
	})

	return found
}

func (c *Checker) done(found []Counterexample) bool {
	limit := c.MaxCounterexamples
	if limit <= 0 {
		limit = 1
	}
	return len(found) >= limit
}

// forEachInput sweeps the reduced input space. The writeback snapshot is
// swept over just an empty and a live value: the engine accepts it for
// interface completeness but no decision reads it, and the property set
// confirms that indirectly by holding across both values.
func (c *Checker) forEachInput(visit func(Input) bool) {
	wbs := []control.StageSnapshot{
		{},
		{Rd: 1, RegWrite: true},
	}

	for _, kind := range instKinds {
		for _, rs := range regIDs {
			for _, rt := range regIDs {
				inst := kind
				inst.Rs = rs
				inst.Rt = rt

				for _, ex := range snapshots() {
					for _, mem := range snapshots() {
						for _, wb := range wbs {
							for _, zero := range []bool{false, true} {
								in := Input{
									Inst:      inst,
									Execute:   ex,
									Memory:    mem,
									Writeback: wb,
									ZeroFlag:  zero,
								}
								if !visit(in) {
									return
								}
							}
						}
					}
				}
			}
		}
	}
}

// snapshots enumerates the host-reachable stage snapshots. A load always
// writes its destination back, so MemRead without RegWrite cannot leave the
// host's tracker and is excluded from the sweep.
func snapshots() []control.StageSnapshot {
	var out []control.StageSnapshot
	for _, rd := range regIDs {
		for _, w := range []bool{false, true} {
			for _, ld := range []bool{false, true} {
				if ld && !w {
					continue
				}
				out = append(out, control.StageSnapshot{Rd: rd, RegWrite: w, MemRead: ld})
			}
		}
	}
	return out
}
