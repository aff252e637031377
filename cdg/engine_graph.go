package cdg

// EngineGraph builds the dependency graph of the control engine as
// implemented: decode feeds the main-control signals, those feed the
// forwarding and hazard comparisons, branch resolution folds the decode
// category with the comparator outcome, and the flush/PC controls hang off
// the stall and taken decisions. The memory-stage load signal also feeds
// the stall path, which is the load-use hazard.
func EngineGraph() *Graph {
	g := NewGraph()

	// Level 0 -> 1: decode determines every main-control signal.
	for _, s := range []Signal{
		RegWrite, RegDst, ImmSrc, ALUOp, ALUSrc,
		Branch, Jump, MemRead, MemWrite, WBSrc,
	} {
		g.AddEdge(InstructionDecode, s)
	}

	// Forwarding compares in-flight write-enables against current sources.
	g.AddEdge(RegWrite, ForwardA)
	g.AddEdge(RegWrite, ForwardB)
	g.AddEdge(RegWrite, ForwardC)
	g.AddEdge(WBSrc, ForwardA)
	g.AddEdge(WBSrc, ForwardB)

	// A load in flight is what defers forwarding and raises the stall.
	g.AddEdge(MemRead, ForwardA)
	g.AddEdge(MemRead, ForwardB)
	g.AddEdge(MemRead, ForwardC)
	g.AddEdge(MemRead, Stall)

	// Stall and bubble are one event; both freeze fetch.
	g.AddEdge(Stall, Bubble)
	g.AddEdge(Stall, PCWrite)
	g.AddEdge(Stall, IFIDWrite)
	g.AddEdge(Bubble, FlushIDEX)

	// Branch resolution: sense folding, then the taken decision.
	g.AddEdge(Branch, BranchZero)
	g.AddEdge(ALUOp, BranchZero)
	g.AddEdge(BranchZero, BranchTaken)
	g.AddEdge(Branch, BranchTaken)
	g.AddEdge(Jump, BranchTaken)
	g.AddEdge(Branch, TargetReady)
	g.AddEdge(Jump, TargetReady)

	// Taken branches and jumps redirect the PC and kill the latches.
	g.AddEdge(BranchTaken, PCSrc)
	g.AddEdge(BranchTaken, FlushIFID)
	g.AddEdge(BranchTaken, FlushIDEX)
	g.AddEdge(Jump, PCSrc)
	g.AddEdge(Jump, FlushIFID)
	g.AddEdge(TargetReady, PCSrc)

	return g
}
