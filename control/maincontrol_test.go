package control_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pipectl/control"
	"github.com/sarchlab/pipectl/insts"
)

// generate runs the first two engine levels for one instruction.
func generate(inst insts.Instruction) control.Vector {
	return control.MainControl(inst, control.Classify(inst))
}

var _ = Describe("MainControl", func() {
	Context("register-register operations", func() {
		It("should defer the ALU operation to the function code", func() {
			vec := generate(insts.Instruction{
				Opcode: insts.OpcodeRType,
				Funct:  insts.FunctSUB,
			})

			Expect(vec.RegWrite).To(BeTrue())
			Expect(vec.RegDst).To(Equal(control.RegDstRt))
			Expect(vec.ALUOp).To(Equal(control.ALUOpFunct))
			Expect(vec.ALUSrc).To(BeFalse())
			Expect(vec.WBSrc).To(Equal(control.WBSrcALU))
			Expect(vec.MemRead).To(BeFalse())
			Expect(vec.MemWrite).To(BeFalse())
		})
	})

	Context("immediate arithmetic", func() {
		It("should select the immediate operand and the I shape", func() {
			vec := generate(insts.Instruction{Opcode: insts.OpcodeORI})

			Expect(vec.RegWrite).To(BeTrue())
			Expect(vec.ALUSrc).To(BeTrue())
			Expect(vec.ALUOp).To(Equal(control.ALUOpImm))
			Expect(vec.ImmSrc).To(Equal(control.ImmSrcI))
		})
	})

	Context("loads", func() {
		It("should read memory and write back the loaded value", func() {
			vec := generate(insts.Instruction{Opcode: insts.OpcodeLW})

			Expect(vec.MemRead).To(BeTrue())
			Expect(vec.MemWrite).To(BeFalse())
			Expect(vec.RegWrite).To(BeTrue())
			Expect(vec.WBSrc).To(Equal(control.WBSrcMem))
			Expect(vec.ALUOp).To(Equal(control.ALUOpAdd))
			Expect(vec.ALUSrc).To(BeTrue())
			Expect(vec.ImmSrc).To(Equal(control.ImmSrcI))
		})
	})

	Context("stores", func() {
		It("should write memory and no register, with the S shape", func() {
			vec := generate(insts.Instruction{Opcode: insts.OpcodeSW})

			Expect(vec.MemWrite).To(BeTrue())
			Expect(vec.MemRead).To(BeFalse())
			Expect(vec.RegWrite).To(BeFalse())
			Expect(vec.RegDst).To(Equal(control.RegDstNone))
			Expect(vec.ImmSrc).To(Equal(control.ImmSrcS))
		})
	})

	Context("branches", func() {
		It("should compare via subtraction with the B shape", func() {
			vec := generate(insts.Instruction{Opcode: insts.OpcodeBEQ})

			Expect(vec.Branch).To(BeTrue())
			Expect(vec.Jump).To(BeFalse())
			Expect(vec.ALUOp).To(Equal(control.ALUOpSub))
			Expect(vec.ImmSrc).To(Equal(control.ImmSrcB))
			Expect(vec.RegWrite).To(BeFalse())
		})
	})

	Context("jumps", func() {
		It("should map J to a pure jump", func() {
			vec := generate(insts.Instruction{Opcode: insts.OpcodeJ})

			Expect(vec.Jump).To(BeTrue())
			Expect(vec.RegWrite).To(BeFalse())
			Expect(vec.ImmSrc).To(Equal(control.ImmSrcJ))
		})

		It("should make JAL write the link register from the next PC", func() {
			vec := generate(insts.Instruction{Opcode: insts.OpcodeJAL})

			Expect(vec.Jump).To(BeTrue())
			Expect(vec.RegWrite).To(BeTrue())
			Expect(vec.RegDst).To(Equal(control.RegDstLink))
			Expect(vec.WBSrc).To(Equal(control.WBSrcNextPC))
		})

		It("should make JR a jump with no register write", func() {
			vec := generate(insts.Instruction{
				Opcode: insts.OpcodeRType,
				Funct:  insts.FunctJR,
			})

			Expect(vec.Jump).To(BeTrue())
			Expect(vec.RegWrite).To(BeFalse())
		})
	})

	Context("total mapping", func() {
		It("should map an unknown opcode to the all-disabled default", func() {
			vec := generate(insts.Instruction{Opcode: 0x3F})

			Expect(vec).To(Equal(control.DefaultVector()))
		})

		It("should keep the pipeline moving in the default vector", func() {
			vec := control.DefaultVector()

			Expect(vec.PCWrite).To(BeTrue())
			Expect(vec.IFIDWrite).To(BeTrue())
			Expect(vec.RegWrite).To(BeFalse())
			Expect(vec.MemWrite).To(BeFalse())
		})
	})
})

var _ = Describe("DestReg", func() {
	It("should resolve RegDstRt to the rt field", func() {
		inst := insts.Instruction{Opcode: insts.OpcodeLW, Rs: 5, Rt: 6}
		vec := generate(inst)

		Expect(control.DestReg(inst, vec)).To(Equal(uint8(6)))
	})

	It("should resolve RegDstLink to the link register", func() {
		inst := insts.Instruction{Opcode: insts.OpcodeJAL}
		vec := generate(inst)

		Expect(control.DestReg(inst, vec)).To(Equal(insts.LinkReg))
	})

	It("should resolve RegDstNone to the zero register", func() {
		inst := insts.Instruction{Opcode: insts.OpcodeSW, Rs: 1, Rt: 2}
		vec := generate(inst)

		Expect(control.DestReg(inst, vec)).To(Equal(insts.ZeroReg))
	})
})
