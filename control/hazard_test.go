package control_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pipectl/control"
	"github.com/sarchlab/pipectl/insts"
)

var _ = Describe("LoadUseHazard", func() {
	detect := func(inst insts.Instruction, execute control.StageSnapshot) bool {
		return control.LoadUseHazard(inst, control.Classify(inst), execute)
	}

	Context("when there is no hazard", func() {
		It("should return false when the execute stage is not a load", func() {
			inst := insts.Instruction{Opcode: insts.OpcodeRType, Funct: insts.FunctADD, Rs: 6, Rt: 7}
			execute := control.StageSnapshot{Rd: 6, RegWrite: true}

			Expect(detect(inst, execute)).To(BeFalse())
		})

		It("should return false when no source matches the load destination", func() {
			inst := insts.Instruction{Opcode: insts.OpcodeRType, Funct: insts.FunctADD, Rs: 1, Rt: 2}
			execute := control.StageSnapshot{Rd: 5, RegWrite: true, MemRead: true}

			Expect(detect(inst, execute)).To(BeFalse())
		})

		It("should return false when the load targets the zero register", func() {
			inst := insts.Instruction{Opcode: insts.OpcodeRType, Funct: insts.FunctADD, Rs: 0, Rt: 0}
			execute := control.StageSnapshot{Rd: 0, RegWrite: true, MemRead: true}

			Expect(detect(inst, execute)).To(BeFalse())
		})

		It("should return false when the matching source is not actually used", func() {
			// LW reads only rs; a match on its rt field is no hazard.
			inst := insts.Instruction{Opcode: insts.OpcodeLW, Rs: 1, Rt: 6}
			execute := control.StageSnapshot{Rd: 6, RegWrite: true, MemRead: true}

			Expect(detect(inst, execute)).To(BeFalse())
		})
	})

	Context("when there is a load-use hazard", func() {
		It("should detect a match on rs", func() {
			inst := insts.Instruction{Opcode: insts.OpcodeRType, Funct: insts.FunctADD, Rs: 6, Rt: 2}
			execute := control.StageSnapshot{Rd: 6, RegWrite: true, MemRead: true}

			Expect(detect(inst, execute)).To(BeTrue())
		})

		It("should detect a match on rt", func() {
			inst := insts.Instruction{Opcode: insts.OpcodeRType, Funct: insts.FunctADD, Rs: 1, Rt: 6}
			execute := control.StageSnapshot{Rd: 6, RegWrite: true, MemRead: true}

			Expect(detect(inst, execute)).To(BeTrue())
		})

		It("should detect a store consuming a loaded value", func() {
			inst := insts.Instruction{Opcode: insts.OpcodeSW, Rs: 1, Rt: 6}
			execute := control.StageSnapshot{Rd: 6, RegWrite: true, MemRead: true}

			Expect(detect(inst, execute)).To(BeTrue())
		})

		It("should detect a branch comparing a loaded value", func() {
			inst := insts.Instruction{Opcode: insts.OpcodeBEQ, Rs: 6, Rt: 2}
			execute := control.StageSnapshot{Rd: 6, RegWrite: true, MemRead: true}

			Expect(detect(inst, execute)).To(BeTrue())
		})
	})
})
