// Package control implements the per-cycle control-decision engine for a
// classic 5-stage pipeline. Every signal the pipeline needs in a cycle —
// main control, forwarding selectors, stall/bubble, branch resolution, and
// flush/PC-source control — is computed by a single pure evaluation over
// the cycle's inputs. The evaluation order inside the engine follows the
// control dependency graph modeled in package cdg.
package control

// RegDst selects the destination-register source.
type RegDst uint8

const (
	// RegDstNone means the instruction writes no register.
	RegDstNone RegDst = iota
	// RegDstRt takes the destination from the second source field.
	RegDstRt
	// RegDstLink targets the fixed link register (JAL).
	RegDstLink
)

// ImmSrc selects the immediate-extension shape. The four shapes are
// mutually exclusive; the external immediate unit uses the selector to pick
// field position and extension width.
type ImmSrc uint8

const (
	// ImmSrcI is the arithmetic/load shape.
	ImmSrcI ImmSrc = iota
	// ImmSrcS is the store shape.
	ImmSrcS
	// ImmSrcB is the branch-offset shape.
	ImmSrcB
	// ImmSrcJ is the jump-target shape.
	ImmSrcJ
)

// ALUOp tells the external ALU control which operation class to perform.
type ALUOp uint8

const (
	// ALUOpAdd adds, used for address calculation and ADDI.
	ALUOpAdd ALUOp = iota
	// ALUOpSub subtracts, used for branch comparison.
	ALUOpSub
	// ALUOpFunct defers to the function code (register-register class).
	ALUOpFunct
	// ALUOpImm defers to the opcode (immediate-arithmetic class).
	ALUOpImm
)

// WBSrc selects the value written back to the register file.
type WBSrc uint8

const (
	// WBSrcALU writes the ALU result.
	WBSrcALU WBSrc = iota
	// WBSrcMem writes the loaded memory data.
	WBSrcMem
	// WBSrcNextPC writes PC+1 (link value for JAL).
	WBSrcNextPC
)

// PCSrc selects the next program counter.
type PCSrc uint8

const (
	// PCSrcNext selects the sequential next PC.
	PCSrcNext PCSrc = iota
	// PCSrcBranch selects the branch target.
	PCSrcBranch
	// PCSrcJump selects the jump target.
	PCSrcJump
)

// ForwardSource indicates where a forwarded operand value should come from.
type ForwardSource uint8

const (
	// ForwardNone means no forwarding needed - use the register file value.
	ForwardNone ForwardSource = iota
	// ForwardFromExecute means forward the execute-stage result.
	ForwardFromExecute
	// ForwardFromMemory means forward the memory-stage result.
	ForwardFromMemory
)

// Vector is the complete set of control signals the engine emits each
// cycle. It is recomputed in full every evaluation; no field survives from
// a previous cycle. Every field is a pure function of the same cycle's
// inputs.
type Vector struct {
	// Main control.
	RegWrite bool
	RegDst   RegDst
	ImmSrc   ImmSrc
	ALUOp    ALUOp
	ALUSrc   bool // true selects the immediate operand
	Branch   bool
	Jump     bool
	MemRead  bool
	MemWrite bool
	WBSrc    WBSrc

	// Forwarding selectors: the two ALU operand paths plus the branch
	// comparator path.
	ForwardA ForwardSource
	ForwardB ForwardSource
	ForwardC ForwardSource

	// Hazard control. Stall and Bubble are the same load-use event seen by
	// two consumers: fetch freeze and decode-stage nullification.
	Stall  bool
	Bubble bool

	// Branch resolution.
	BranchZero  bool
	BranchTaken bool
	TargetReady bool

	// Flush and PC control.
	PCWrite   bool
	IFIDWrite bool
	FlushIFID bool
	FlushIDEX bool
	PCSrc     PCSrc
}

// DefaultVector returns the all-disabled control vector: no register or
// memory writes, no forwarding, no stall, no flush, PC and IF/ID latch free
// to advance. Unrecognized opcodes resolve to exactly this vector, so a
// decode-stage bug upstream degrades to a pipeline no-op instead of a
// corrupted control word.
func DefaultVector() Vector {
	return Vector{
		PCWrite:   true,
		IFIDWrite: true,
	}
}
