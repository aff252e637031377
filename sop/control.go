package sop

import (
	"github.com/sarchlab/pipectl/control"
	"github.com/sarchlab/pipectl/insts"
)

// NumControlInputs is the width of the main-control truth table's input:
// the 6-bit primary opcode concatenated with the 6-bit function code. The
// function code participates because the register-register opcode splits
// into writers and JR only on it.
const NumControlInputs = 12

// ControlInputNames returns the truth-table variable names, most
// significant first.
func ControlInputNames() []string {
	return []string{
		"op5", "op4", "op3", "op2", "op1", "op0",
		"fn5", "fn4", "fn3", "fn2", "fn1", "fn0",
	}
}

// ControlPoint packs an opcode/function-code pair into one truth-table
// input point.
func ControlPoint(op insts.Opcode, fn insts.Funct) uint32 {
	return uint32(op&0x3F)<<6 | uint32(fn&0x3F)
}

// ControlExpressions minimizes the main-control truth table: each control
// enable as a sum of products over the raw opcode and function-code bits,
// built by sweeping every encoding through the classifier and main control.
// Selector fields appear through their non-default indicators (RegDstLink,
// MemToReg). Encodings the classifier does not recognize fall in every
// off-set, so the expressions reproduce the generator exactly, no-op
// default included.
func ControlExpressions() []Expression {
	signals := []struct {
		name string
		get  func(control.Vector) bool
	}{
		{"RegWrite", func(v control.Vector) bool { return v.RegWrite }},
		{"RegDstLink", func(v control.Vector) bool { return v.RegDst == control.RegDstLink }},
		{"ALUSrc", func(v control.Vector) bool { return v.ALUSrc }},
		{"MemRead", func(v control.Vector) bool { return v.MemRead }},
		{"MemWrite", func(v control.Vector) bool { return v.MemWrite }},
		{"MemToReg", func(v control.Vector) bool { return v.WBSrc == control.WBSrcMem }},
		{"Branch", func(v control.Vector) bool { return v.Branch }},
		{"Jump", func(v control.Vector) bool { return v.Jump }},
	}

	onSets := make([][]uint32, len(signals))
	for op := 0; op < 64; op++ {
		for fn := 0; fn < 64; fn++ {
			inst := insts.Instruction{Opcode: insts.Opcode(op), Funct: insts.Funct(fn)}
			vec := control.MainControl(inst, control.Classify(inst))
			point := ControlPoint(inst.Opcode, inst.Funct)

			for i, s := range signals {
				if s.get(vec) {
					onSets[i] = append(onSets[i], point)
				}
			}
		}
	}

	exprs := make([]Expression, len(signals))
	for i, s := range signals {
		exprs[i] = Expression{
			Signal: s.name,
			Terms:  Minimize(NumControlInputs, onSets[i]),
		}
	}
	return exprs
}
