package rng

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Stream", func() {
	It("should reproduce draws for the same seed", func() {
		a := NewStream(42)
		b := NewStream(42)

		for i := 0; i < 100; i++ {
			Expect(a.Gaussian(0, 1)).To(Equal(b.Gaussian(0, 1)))
			Expect(a.Uniform(0, 1)).To(Equal(b.Uniform(0, 1)))
		}

		Expect(a.Seed()).To(Equal(uint64(42)))
	})

	It("should differ across seeds", func() {
		a := NewStream(1)
		b := NewStream(2)

		Expect(a.Gaussian(0, 1)).NotTo(Equal(b.Gaussian(0, 1)))
	})

	It("should center gaussian draws on the mean", func() {
		s := NewStream(7)

		n := 20000
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += s.Gaussian(3, 0.5)
		}

		Expect(sum / float64(n)).To(BeNumerically("~", 3, 0.02))
	})

	It("should keep uniform draws inside the window", func() {
		s := NewStream(7)

		n := 20000
		sum := 0.0
		for i := 0; i < n; i++ {
			v := s.Uniform(-1, 2)
			Expect(v).To(BeNumerically(">=", -2))
			Expect(v).To(BeNumerically("<", 0))
			sum += v
		}

		Expect(sum / float64(n)).To(BeNumerically("~", -1, 0.03))
	})

	It("should return the center for zero width", func() {
		s := NewStream(3)
		Expect(s.Uniform(5, 0)).To(Equal(5.0))
		Expect(s.Gaussian(5, 0)).To(Equal(5.0))
	})
})

var _ = Describe("Locked", func() {
	It("should be usable from several goroutines", func() {
		l := NewLocked(NewStream(9))

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)

			go func() {
				defer wg.Done()

				for j := 0; j < 1000; j++ {
					l.Gaussian(0, 1)
					l.Uniform(0, 1)
				}
			}()
		}

		wg.Wait()
	})

	It("should draw the same sequence as the wrapped stream", func() {
		l := NewLocked(NewStream(11))
		s := NewStream(11)

		Expect(l.Gaussian(1, 2)).To(Equal(s.Gaussian(1, 2)))
		Expect(l.Uniform(1, 2)).To(Equal(s.Uniform(1, 2)))
	})
})
