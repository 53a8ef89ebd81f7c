package hamiltonian

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sarchlab/kpmham/lattice"
	"github.com/sarchlab/kpmham/store"
	"github.com/sarchlab/kpmham/store/memstore"
)

var _ = Describe("LoadTables", func() {
	var (
		l *lattice.Lattice
		s *memstore.Store
	)

	BeforeEach(func() {
		l = mustLattice(lattice.MakeBuilder().
			WithExtents(4, 4).
			WithOrbitalPositions([]float64{0, 0}, []float64{0.5, 0.5}))
		s = memstore.New()

		writeFixture(s, l, []fixtureHop{
			{from: 0, offset: []int{1, 0}, to: 0, t: 1},
			{from: 0, offset: []int{0, 0}, to: 1, t: 2},
			{from: 1, offset: []int{-1, 0}, to: 0, t: 3},
		}, []DisorderEntry{entry(1, 1, 0.5, 0.1)})
	})

	It("should read counts, tables and disorder", func() {
		tables, err := LoadTables[float64](s, 2, nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(tables.NHoppings).To(Equal([]int{2, 1}))
		Expect(tables.MaxHoppings()).To(Equal(2))
		Expect(tables.Hoppings.Cols()).To(Equal(2))
		Expect(tables.Hoppings.At(0, 0)).To(Equal(1.0))
		Expect(tables.Hoppings.At(1, 0)).To(Equal(2.0))
		Expect(tables.Hoppings.At(0, 1)).To(Equal(3.0))
		Expect(tables.Distances.Rows()).To(Equal(2))
		Expect(tables.Disorder).To(Equal([]DisorderEntry{entry(1, 1, 0.5, 0.1)}))
	})

	It("should widen real hoppings into complex tables", func() {
		tables, err := LoadTables[complex128](s, 2, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(tables.Hoppings.At(0, 1)).To(Equal(complex(3, 0)))
	})

	It("should refuse complex hoppings in real tables", func() {
		writeFixture(s, l, []fixtureHop{
			{from: 0, offset: []int{1, 0}, to: 0, t: 1i},
		}, nil)

		_, err := LoadTables[float64](s, 2, nil)
		Expect(err).To(MatchError(ErrLoad))
		Expect(err).To(MatchError(store.ErrKind))

		tables, err := LoadTables[complex64](s, 2, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(tables.Hoppings.At(0, 0)).To(Equal(complex64(1i)))
	})

	DescribeTable("should fail on missing datasets",
		func(path string) {
			s.Delete(path)

			tables, err := LoadTables[float64](s, 2, nil)
			Expect(tables).To(BeNil())
			Expect(err).To(MatchError(ErrLoad))
			Expect(err).To(MatchError(store.ErrNotFound))

			var loadErr *LoadError
			Expect(err).To(BeAssignableToTypeOf(loadErr))
			Expect(err.(*LoadError).Path).To(Equal(path))
		},
		Entry("counts", store.PathNHoppings),
		Entry("hoppings", store.PathHoppings),
		Entry("distances", store.PathDistances),
		Entry("disorder orbitals", store.PathDisorderOrb),
		Entry("disorder models", store.PathDisorderModel),
		Entry("disorder means", store.PathDisorderMean),
		Entry("disorder spreads", store.PathDisorderStdv),
	)

	It("should fail when counts do not match the orbitals", func() {
		_, err := LoadTables[float64](s, 3, nil)
		Expect(err).To(MatchError(ErrLoad))
		Expect(err).To(MatchError(store.ErrShape))
	})

	It("should fail on negative counts", func() {
		Expect(s.WriteInts(store.PathNHoppings, []int{2}, []int{-1, 1})).
			To(Succeed())

		_, err := LoadTables[float64](s, 2, nil)
		Expect(err).To(MatchError(ErrLoad))
	})

	It("should fail when the table shape does not match the counts", func() {
		Expect(s.WriteFloats(store.PathHoppings, []int{1, 2}, []float64{1, 2})).
			To(Succeed())

		_, err := LoadTables[float64](s, 2, nil)
		Expect(err).To(MatchError(store.ErrShape))
	})

	It("should fail when disorder arrays differ in length", func() {
		Expect(s.WriteFloats(store.PathDisorderStdv, []int{2}, []float64{1, 2})).
			To(Succeed())

		_, err := LoadTables[float64](s, 2, nil)
		Expect(err).To(MatchError(ErrLoad))
		Expect(err).To(MatchError(store.ErrShape))
	})

	It("should accept an empty disorder configuration", func() {
		writeDisorder(s, nil)

		tables, err := LoadTables[float64](s, 2, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(tables.Disorder).To(BeEmpty())
	})

	It("should warn about unrecognized disorder models", func() {
		writeDisorder(s, []DisorderEntry{entry(0, 7, 2, 0), entry(1, 3, 1, 0)})

		core, logs := observer.New(zap.WarnLevel)

		tables, err := LoadTables[float64](s, 2, zap.New(core))
		Expect(err).NotTo(HaveOccurred())

		Expect(tables.Disorder[0].Model).To(Equal(Fallback))
		Expect(tables.Disorder[0].Tag).To(Equal(7))
		Expect(tables.Disorder[1].Model).To(Equal(Deterministic))
		Expect(logs.Len()).To(Equal(1))
		Expect(logs.All()[0].ContextMap()).To(HaveKeyWithValue("tag", int64(7)))
	})

	It("should release a non-reentrant store after a failed load", func() {
		s.Delete(store.PathDistances)
		shared := nonReentrantStore{s}

		_, err := LoadTables[float64](shared, 2, nil)
		Expect(err).To(HaveOccurred())

		done := make(chan struct{})
		go func() {
			defer close(done)

			a := store.Acquire(shared)
			a.Release()
		}()

		Eventually(done, time.Second).Should(BeClosed())
	})
})
