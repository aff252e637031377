package control_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pipectl/control"
	"github.com/sarchlab/pipectl/insts"
)

var _ = Describe("ResolveForwarding", func() {
	var (
		inst    insts.Instruction
		execute control.StageSnapshot
		memory  control.StageSnapshot
	)

	resolve := func() control.Forwarding {
		return control.ResolveForwarding(inst, control.Classify(inst), execute, memory)
	}

	BeforeEach(func() {
		inst = insts.Instruction{
			Opcode: insts.OpcodeRType,
			Funct:  insts.FunctADD,
			Rs:     1,
			Rt:     2,
		}
		execute = control.StageSnapshot{}
		memory = control.StageSnapshot{}
	})

	Context("when no forwarding is needed", func() {
		It("should return ForwardNone for all paths", func() {
			fwd := resolve()

			Expect(fwd.ForwardA).To(Equal(control.ForwardNone))
			Expect(fwd.ForwardB).To(Equal(control.ForwardNone))
			Expect(fwd.ForwardC).To(Equal(control.ForwardNone))
		})
	})

	Context("when the execute stage holds the needed value", func() {
		It("should forward the rs path from execute", func() {
			execute = control.StageSnapshot{Rd: 1, RegWrite: true}

			fwd := resolve()

			Expect(fwd.ForwardA).To(Equal(control.ForwardFromExecute))
			Expect(fwd.ForwardB).To(Equal(control.ForwardNone))
		})

		It("should forward the rt path from execute", func() {
			execute = control.StageSnapshot{Rd: 2, RegWrite: true}

			fwd := resolve()

			Expect(fwd.ForwardA).To(Equal(control.ForwardNone))
			Expect(fwd.ForwardB).To(Equal(control.ForwardFromExecute))
		})

		It("should forward both paths when both sources match", func() {
			inst.Rs = 3
			inst.Rt = 3
			execute = control.StageSnapshot{Rd: 3, RegWrite: true}

			fwd := resolve()

			Expect(fwd.ForwardA).To(Equal(control.ForwardFromExecute))
			Expect(fwd.ForwardB).To(Equal(control.ForwardFromExecute))
		})
	})

	Context("when the memory stage holds the needed value", func() {
		It("should forward the rs path from memory", func() {
			memory = control.StageSnapshot{Rd: 1, RegWrite: true}

			fwd := resolve()

			Expect(fwd.ForwardA).To(Equal(control.ForwardFromMemory))
		})
	})

	Context("priority: execute over memory", func() {
		It("should prefer the execute stage when both match", func() {
			execute = control.StageSnapshot{Rd: 1, RegWrite: true}
			memory = control.StageSnapshot{Rd: 1, RegWrite: true}

			fwd := resolve()

			Expect(fwd.ForwardA).To(Equal(control.ForwardFromExecute))
		})
	})

	Context("loads in the execute stage", func() {
		It("should not forward from execute while the value is in flight", func() {
			// The load's result does not exist until the memory stage;
			// the hazard unit stalls the consumer instead.
			execute = control.StageSnapshot{Rd: 1, RegWrite: true, MemRead: true}

			fwd := resolve()

			Expect(fwd.ForwardA).To(Equal(control.ForwardNone))
		})

		It("should forward the load result once it reaches the memory stage", func() {
			memory = control.StageSnapshot{Rd: 1, RegWrite: true, MemRead: true}

			fwd := resolve()

			Expect(fwd.ForwardA).To(Equal(control.ForwardFromMemory))
		})
	})

	Context("zero register handling", func() {
		It("should not forward when the source is the zero register", func() {
			inst.Rs = insts.ZeroReg
			execute = control.StageSnapshot{Rd: insts.ZeroReg, RegWrite: true}

			fwd := resolve()

			Expect(fwd.ForwardA).To(Equal(control.ForwardNone))
		})

		It("should not forward when the in-flight destination is the zero register", func() {
			inst.Rs = 5
			execute = control.StageSnapshot{Rd: insts.ZeroReg, RegWrite: true}
			// A nominal write to r0 is dropped by the register file.
			execute.Rd = insts.ZeroReg

			fwd := resolve()

			Expect(fwd.ForwardA).To(Equal(control.ForwardNone))
		})
	})

	Context("paths the instruction does not use", func() {
		It("should not forward rt for a load", func() {
			inst = insts.Instruction{Opcode: insts.OpcodeLW, Rs: 5, Rt: 2}
			execute = control.StageSnapshot{Rd: 2, RegWrite: true}

			fwd := resolve()

			Expect(fwd.ForwardB).To(Equal(control.ForwardNone))
		})

		It("should not forward anything for an unconditional jump", func() {
			inst = insts.Instruction{Opcode: insts.OpcodeJ, Rs: 1, Rt: 2}
			execute = control.StageSnapshot{Rd: 1, RegWrite: true}
			memory = control.StageSnapshot{Rd: 2, RegWrite: true}

			fwd := resolve()

			Expect(fwd.ForwardA).To(Equal(control.ForwardNone))
			Expect(fwd.ForwardB).To(Equal(control.ForwardNone))
		})
	})

	Context("the comparator path", func() {
		It("should mirror the rt rule for branches", func() {
			inst = insts.Instruction{Opcode: insts.OpcodeBEQ, Rs: 1, Rt: 2}
			memory = control.StageSnapshot{Rd: 2, RegWrite: true}

			fwd := resolve()

			Expect(fwd.ForwardC).To(Equal(control.ForwardFromMemory))
			Expect(fwd.ForwardB).To(Equal(control.ForwardFromMemory))
		})

		It("should stay off for non-branches", func() {
			inst = insts.Instruction{Opcode: insts.OpcodeRType, Funct: insts.FunctADD, Rs: 1, Rt: 2}
			execute = control.StageSnapshot{Rd: 2, RegWrite: true}

			fwd := resolve()

			Expect(fwd.ForwardC).To(Equal(control.ForwardNone))
		})
	})

	Context("in-flight stages without a register write", func() {
		It("should not forward from a stage with write-enable off", func() {
			execute = control.StageSnapshot{Rd: 1, RegWrite: false}

			fwd := resolve()

			Expect(fwd.ForwardA).To(Equal(control.ForwardNone))
		})
	})
})
