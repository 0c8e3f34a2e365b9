package walk_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/dtqw/internal/walk"
)

var _ = Describe("Coin operator", func() {
	DescribeTable("is unitary for any angles",
		func(theta, xi, zeta float64) {
			c := walk.NewCoin(theta, xi, zeta)
			Expect(c.Matrix().UnitarityError()).To(BeNumerically("<", 1e-12))
		},
		Entry("hadamard", math.Pi/4, walk.DefaultXi, walk.DefaultZeta),
		Entry("zero", 0.0, 0.0, 0.0),
		Entry("skewed", 1.2, -0.4, 2.9),
		Entry("wrapped", 7*math.Pi, 3.0, -11.0),
	)
})

var _ = Describe("Walk operator", func() {
	DescribeTable("is unitary for unitary boundaries",
		func(n int, b walk.Boundary) {
			shift, err := walk.NewShift(2*n+1, b)
			Expect(err).NotTo(HaveOccurred())
			op, err := walk.NewOperator(walk.CoinFromTheta(0.8), shift)
			Expect(err).NotTo(HaveOccurred())
			Expect(op.UnitarityError()).To(BeNumerically("<", 1e-9))
		},
		Entry("cyclic N=0", 0, walk.Cyclic),
		Entry("cyclic N=7", 7, walk.Cyclic),
		Entry("cyclic N=30", 30, walk.Cyclic),
		Entry("reflecting N=7", 7, walk.Reflecting),
	)
})

var _ = Describe("Evolution", func() {
	var (
		op *walk.Operator
		x0 walk.State
	)

	BeforeEach(func() {
		shift, err := walk.NewShift(21, walk.Cyclic)
		Expect(err).NotTo(HaveOccurred())
		op, err = walk.NewOperator(walk.HadamardCoin(), shift)
		Expect(err).NotTo(HaveOccurred())
		x0 = walk.LocalizedState(op.Lattice(), math.Pi/4)
	})

	It("preserves total probability without renormalizing", func() {
		for steps := 0; steps <= 25; steps++ {
			x, err := walk.Evolve(x0, op, steps, walk.Iterative)
			Expect(err).NotTo(HaveOccurred())
			d, err := walk.Measure(x)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Total()).To(BeNumerically("~", 1.0, 1e-9))
		}
	})

	It("agrees between iterative and matrix-power strategies", func() {
		for _, steps := range []int{3, 8, 10} {
			a, err := walk.Evolve(x0, op, steps, walk.Iterative)
			Expect(err).NotTo(HaveOccurred())
			b, err := walk.Evolve(x0, op, steps, walk.MatrixPower)
			Expect(err).NotTo(HaveOccurred())

			da, _ := walk.Measure(a)
			db, _ := walk.Measure(b)
			Expect(0.5 * floats.Distance(da.Probs, db.Probs, 1)).To(BeNumerically("<", 1e-9))
		}
	})

	It("returns the initial state unchanged for zero steps", func() {
		x, err := walk.Evolve(x0, op, 0, walk.MatrixPower)
		Expect(err).NotTo(HaveOccurred())
		Expect(x).To(Equal(x0))
	})

	It("rejects negative step counts", func() {
		_, err := walk.Evolve(x0, op, -3, walk.Iterative)
		Expect(err).To(MatchError(walk.ErrInvalidSteps))
	})

	It("spreads symmetrically for a balanced coin and coin state", func() {
		x, err := walk.Evolve(x0, op, 8, walk.MatrixPower)
		Expect(err).NotTo(HaveOccurred())
		d, _ := walk.Measure(x)
		for p := 1; p <= 10; p++ {
			Expect(d.At(p)).To(BeNumerically("~", d.At(-p), 1e-9))
		}
	})
})

var _ = Describe("Absorbing boundary", func() {
	It("leaks probability and reports drift", func() {
		p := walk.DefaultParams(2, 12, math.Pi/4, math.Pi/4)
		p.Boundary = walk.Absorbing
		out, err := walk.Simulate(p)
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Distribution.Total()).To(BeNumerically("<", 1.0))
		Expect(out.Distribution.CheckNormalization(walk.DefaultTolerance)).To(MatchError(walk.ErrNumericalDrift))
	})
})
