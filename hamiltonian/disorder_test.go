package hamiltonian

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"github.com/sarchlab/kpmham/lattice"
	"github.com/sarchlab/kpmham/rng"
	"github.com/sarchlab/kpmham/store/memstore"
)

func average(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x
	}

	return sum / float64(len(v))
}

var _ = Describe("DisorderModel", func() {
	DescribeTable("should map stored tags",
		func(tag int, model DisorderModel, name string) {
			Expect(ModelFromTag(tag)).To(Equal(model))
			Expect(model.String()).To(Equal(name))
		},
		Entry("gaussian", 1, Gaussian, "gaussian"),
		Entry("uniform", 2, Uniform, "uniform"),
		Entry("deterministic", 3, Deterministic, "deterministic"),
		Entry("zero", 0, Fallback, "fallback"),
		Entry("negative", -4, Fallback, "fallback"),
		Entry("unknown", 42, Fallback, "fallback"),
	)

	It("should round trip known tags", func() {
		for _, m := range []DisorderModel{Gaussian, Uniform, Deterministic} {
			Expect(ModelFromTag(m.Tag())).To(Equal(m))
		}

		Expect(Fallback.Tag()).To(Equal(0))
	})

	It("should only draw for gaussian and uniform models", func() {
		Expect(Gaussian.IsRandom()).To(BeTrue())
		Expect(Uniform.IsRandom()).To(BeTrue())
		Expect(Deterministic.IsRandom()).To(BeFalse())
		Expect(Fallback.IsRandom()).To(BeFalse())
	})
})

var _ = Describe("DisorderGenerator", func() {
	var (
		mockCtrl *gomock.Controller
		source   *MockSource
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		source = NewMockSource(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should set deterministic sites to the mean", func() {
		u := make([]float64, 12)
		g := NewDisorderGenerator[float64](
			[]DisorderEntry{entry(1, 3, 0.75, 9)}, 3, 4, nil, nil)

		Expect(g.Distribute(u)).To(Succeed())
		Expect(u[:4]).To(HaveEach(0.0))
		Expect(u[4:8]).To(HaveEach(0.75))
		Expect(u[8:]).To(HaveEach(0.0))
	})

	It("should treat unknown tags as deterministic", func() {
		u := make([]complex128, 4)
		g := NewDisorderGenerator[complex128](
			[]DisorderEntry{entry(0, 7, -1.5, 2)}, 1, 4, nil, nil)

		Expect(g.Distribute(u)).To(Succeed())
		Expect(u).To(HaveEach(complex(-1.5, 0)))
	})

	It("should pass model parameters to the source unchanged", func() {
		gomock.InOrder(
			source.EXPECT().Gaussian(0.5, 0.25).Return(1.0),
			source.EXPECT().Gaussian(0.5, 0.25).Return(2.0),
			source.EXPECT().Uniform(3.0, 4.0).Return(10.0),
			source.EXPECT().Uniform(3.0, 4.0).Return(20.0),
		)

		u := make([]float32, 4)
		g := NewDisorderGenerator[float32]([]DisorderEntry{
			entry(0, 1, 0.5, 0.25),
			entry(1, 2, 3, 4),
		}, 2, 2, source, nil)

		Expect(g.Distribute(u)).To(Succeed())
		Expect(u).To(Equal([]float32{1, 2, 10, 20}))
	})

	It("should let the last entry win on a shared orbital", func() {
		source.EXPECT().Gaussian(0.0, 1.0).Return(0.3).Times(2)

		u := make([]float64, 6)
		g := NewDisorderGenerator[float64]([]DisorderEntry{
			entry(2, 1, 0, 1),
			entry(2, 3, 5, 0),
		}, 3, 2, source, nil)

		Expect(g.Distribute(u)).To(Succeed())
		Expect(u).To(Equal([]float64{0, 0, 0, 0, 5, 5}))
	})

	It("should reject entries on missing orbitals without writing", func() {
		u := []float64{1, 2, 3, 4}
		g := NewDisorderGenerator[float64]([]DisorderEntry{
			entry(0, 3, 9, 0),
			entry(2, 3, 9, 0),
		}, 2, 2, nil, nil)

		Expect(g.Distribute(u)).To(MatchError(ErrIndex))
		Expect(u).To(Equal([]float64{1, 2, 3, 4}))
	})

	It("should reject a negative orbital", func() {
		g := NewDisorderGenerator[float64](
			[]DisorderEntry{entry(-1, 3, 0, 0)}, 2, 2, nil, nil)

		Expect(g.Validate()).To(MatchError(ErrIndex))
	})

	It("should require a source for random models", func() {
		u := make([]float64, 2)
		g := NewDisorderGenerator[float64](
			[]DisorderEntry{entry(0, 2, 0, 1)}, 1, 2, nil, nil)

		Expect(g.Distribute(u)).To(MatchError(ErrConfig))
	})

	It("should reject a short potential", func() {
		g := NewDisorderGenerator[float64](
			[]DisorderEntry{entry(0, 3, 0, 0)}, 2, 3, nil, nil)

		Expect(g.Distribute(make([]float64, 5))).To(MatchError(ErrIndex))
	})

	It("should follow the gaussian distribution", func() {
		u := make([]float64, 20000)
		g := NewDisorderGenerator[float64](
			[]DisorderEntry{entry(0, 1, 1.5, 1)}, 1, len(u), rng.NewStream(7), nil)

		Expect(g.Distribute(u)).To(Succeed())
		Expect(average(u)).To(BeNumerically("~", 1.5, 0.05))
	})

	It("should follow the uniform distribution", func() {
		u := make([]float64, 20000)
		g := NewDisorderGenerator[float64](
			[]DisorderEntry{entry(0, 2, 2, 4)}, 1, len(u), rng.NewStream(7), nil)

		Expect(g.Distribute(u)).To(Succeed())
		Expect(average(u)).To(BeNumerically("~", 2, 0.05))

		for _, x := range u {
			Expect(x).To(BeNumerically(">=", 0))
			Expect(x).To(BeNumerically("<", 4))
		}
	})

	It("should repeat under the same seed", func() {
		entries := []DisorderEntry{entry(0, 1, 0, 1), entry(1, 2, 0, 2)}

		draw := func(seed uint64) []float64 {
			u := make([]float64, 50)
			g := NewDisorderGenerator[float64](
				entries, 2, 25, rng.NewStream(seed), nil)
			Expect(g.Distribute(u)).To(Succeed())

			return u
		}

		Expect(draw(11)).To(Equal(draw(11)))
		Expect(draw(11)).NotTo(Equal(draw(12)))
	})
})

var _ = Describe("Hamiltonian disorder", func() {
	var h *Hamiltonian[float64]

	BeforeEach(func() {
		s := memstore.New()
		l := mustLattice(lattice.MakeBuilder().
			WithExtents(3, 3).
			WithOrbitalPositions([]float64{0, 0}, []float64{0.5, 0.5}))

		writeFixture(s, l, []fixtureHop{
			{from: 0, offset: []int{0, 0}, to: 1, t: 1},
			{from: 1, offset: []int{0, 0}, to: 0, t: 1},
		}, []DisorderEntry{
			entry(0, 1, 0, 1),
			entry(1, 3, 0.5, 0),
		})

		var err error
		h, err = MakeBuilder[float64]().
			WithGeometry(l).
			WithStore(s).
			WithRandomSource(rng.NewStream(3)).
			Build(context.Background())
		Expect(err).NotTo(HaveOccurred())
	})

	It("should expose the loaded entries", func() {
		Expect(h.Disorder()).To(Equal([]DisorderEntry{
			entry(0, 1, 0, 1),
			entry(1, 3, 0.5, 0),
		}))

		h.Disorder()[0].Mean = 100
		Expect(h.Disorder()[0].Mean).To(Equal(0.0))
	})

	It("should redraw on every realization", func() {
		Expect(h.DistributeDisorder()).To(Succeed())
		first := append([]float64(nil), h.Potential()...)

		Expect(h.DistributeDisorder()).To(Succeed())
		second := h.Potential()

		Expect(first[:9]).NotTo(Equal(second[:9]))
		Expect(first[9:]).To(HaveEach(0.5))
		Expect(second[9:]).To(HaveEach(0.5))
	})

	It("should reset the potential", func() {
		Expect(h.DistributeDisorder()).To(Succeed())
		h.ResetPotential()

		Expect(h.Potential()).To(HaveLen(18))
		Expect(h.Potential()).To(HaveEach(0.0))
	})
})
