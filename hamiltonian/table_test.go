package hamiltonian

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Table", func() {
	It("should store elements row-major", func() {
		t := NewTable[int](2, 3)
		t.Set(1, 2, 7)
		t.Set(0, 1, 4)

		Expect(t.Rows()).To(Equal(2))
		Expect(t.Cols()).To(Equal(3))
		Expect(t.At(1, 2)).To(Equal(7))
		Expect(t.Data()).To(Equal([]int{0, 4, 0, 0, 0, 7}))
	})

	It("should wrap existing data", func() {
		t, err := tableFromData(2, 2, []float64{1, 2, 3, 4})
		Expect(err).NotTo(HaveOccurred())
		Expect(t.At(1, 0)).To(Equal(3.0))

		_, err = tableFromData(2, 2, []float64{1, 2, 3})
		Expect(err).To(HaveOccurred())
	})

	It("should panic outside its bounds", func() {
		t := NewTable[int](1, 1)

		Expect(func() { t.At(1, 0) }).To(Panic())
		Expect(func() { t.Set(0, -1, 1) }).To(Panic())
	})
})

var _ = Describe("Scalar", func() {
	It("should scale real values", func() {
		Expect(scale[float64](1.5, -2)).To(Equal(-3.0))
		Expect(scale[float32](0.5, 4)).To(Equal(float32(2)))
	})

	It("should scale complex values componentwise", func() {
		Expect(scale[complex128](1-2i, 3)).To(Equal(complex(3, -6)))
		Expect(scale[complex64](2i, 0.5)).To(Equal(complex64(1i)))
	})

	It("should convert real numbers", func() {
		Expect(fromReal[float32](0.25)).To(Equal(float32(0.25)))
		Expect(fromReal[complex128](-1)).To(Equal(complex(-1, 0)))
	})

	It("should refuse complex values for real tables", func() {
		Expect(func() { fromComplex[float64](1i) }).To(Panic())
		Expect(fromComplex[complex64](1 + 1i)).To(Equal(complex64(1 + 1i)))
	})
})
