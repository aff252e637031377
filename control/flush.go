package control

// FlushControl is the terminal level of the engine: latch flushes, PC and
// fetch-latch write enables, and the next-PC selector. Nothing depends on
// its outputs within the same cycle.
type FlushControl struct {
	FlushIFID bool
	FlushIDEX bool
	PCWrite   bool
	IFIDWrite bool
	PCSrc     PCSrc
}

// ResolveFlush derives the flush and PC controls from the stall and
// branch/jump decisions of the earlier levels.
//
// PCWrite and IFIDWrite depend on the stall alone: a taken branch never
// freezes the PC, it redirects it. Jump takes priority over branch in the
// PC-source selection; the ISA never decodes both in one cycle, but the
// selector must still resolve deterministically if a malformed instruction
// asserts both.
func ResolveFlush(stall bool, dec BranchDecision, class Class) FlushControl {
	fc := FlushControl{
		FlushIFID: dec.BranchTaken,
		FlushIDEX: stall || dec.BranchTaken,
		PCWrite:   !stall,
		IFIDWrite: !stall,
		PCSrc:     PCSrcNext,
	}

	switch {
	case class.AnyJump():
		fc.PCSrc = PCSrcJump
	case class.IsBranch && dec.BranchZero:
		fc.PCSrc = PCSrcBranch
	}

	return fc
}
