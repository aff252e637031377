package cdg_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pipectl/cdg"
)

var _ = Describe("Graph", func() {
	Context("topological ordering", func() {
		It("should order a chain by dependency", func() {
			g := cdg.NewGraph()
			g.AddEdge("a", "b")
			g.AddEdge("b", "c")

			order, err := g.TopologicalOrder()
			Expect(err).NotTo(HaveOccurred())
			Expect(order).To(Equal([]cdg.Signal{"a", "b", "c"}))
		})

		It("should reject a cycle and name its signals", func() {
			g := cdg.NewGraph()
			g.AddEdge("a", "b")
			g.AddEdge("b", "c")
			g.AddEdge("c", "a")

			_, err := g.TopologicalOrder()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("cycle"))
		})
	})

	Context("level assignment", func() {
		It("should place each signal one past its deepest dependency", func() {
			g := cdg.NewGraph()
			g.AddEdge("a", "b")
			g.AddEdge("a", "c")
			g.AddEdge("b", "d")
			g.AddEdge("c", "d")
			g.AddEdge("a", "d")

			levels, err := g.Levels()
			Expect(err).NotTo(HaveOccurred())
			Expect(levels["a"]).To(Equal(0))
			Expect(levels["b"]).To(Equal(1))
			Expect(levels["c"]).To(Equal(1))
			Expect(levels["d"]).To(Equal(2))
		})
	})
})

var _ = Describe("EngineGraph", func() {
	var (
		graph  *cdg.Graph
		levels map[cdg.Signal]int
	)

	BeforeEach(func() {
		graph = cdg.EngineGraph()

		var err error
		levels, err = graph.Levels()
		Expect(err).NotTo(HaveOccurred())
	})

	It("should be acyclic", func() {
		Expect(graph.Validate()).To(Succeed())
	})

	It("should resolve decode before everything else", func() {
		Expect(levels[cdg.InstructionDecode]).To(Equal(0))
		for _, s := range graph.Signals() {
			if s == cdg.InstructionDecode {
				continue
			}
			Expect(levels[s]).To(BeNumerically(">", 0), string(s))
		}
	})

	It("should resolve the hazard before the fetch enables", func() {
		Expect(levels[cdg.Stall]).To(BeNumerically("<", levels[cdg.PCWrite]))
		Expect(levels[cdg.Stall]).To(BeNumerically("<", levels[cdg.IFIDWrite]))
		Expect(levels[cdg.Stall]).To(BeNumerically("<", levels[cdg.Bubble]))
	})

	It("should resolve the branch sense before the taken decision", func() {
		Expect(levels[cdg.BranchZero]).To(BeNumerically("<", levels[cdg.BranchTaken]))
	})

	It("should resolve the taken decision before flush and PC selection", func() {
		Expect(levels[cdg.BranchTaken]).To(BeNumerically("<", levels[cdg.PCSrc]))
		Expect(levels[cdg.BranchTaken]).To(BeNumerically("<", levels[cdg.FlushIFID]))
		Expect(levels[cdg.BranchTaken]).To(BeNumerically("<", levels[cdg.FlushIDEX]))
	})

	It("should resolve forwarding from the main-control write enables", func() {
		Expect(levels[cdg.RegWrite]).To(BeNumerically("<", levels[cdg.ForwardA]))
		Expect(levels[cdg.RegWrite]).To(BeNumerically("<", levels[cdg.ForwardB]))
		Expect(levels[cdg.RegWrite]).To(BeNumerically("<", levels[cdg.ForwardC]))
	})

	It("should match the engine's five propagation steps", func() {
		steps, err := graph.CriticalPathLength()
		Expect(err).NotTo(HaveOccurred())
		Expect(steps).To(Equal(5))
	})
})
