package store

import (
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

var _ = Describe("Access", func() {
	var (
		mockCtrl *gomock.Controller
		s        *MockStore
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		s = NewMockStore(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should not lock reentrant stores", func() {
		s.EXPECT().Reentrant().Return(true).Times(2)

		a1 := Acquire(s)
		a2 := Acquire(s)

		Expect(a1.Store()).To(BeIdenticalTo(s))

		a1.Release()
		a2.Release()
	})

	It("should tolerate double release", func() {
		s.EXPECT().Reentrant().Return(false).Times(2)

		a := Acquire(s)
		a.Release()
		a.Release()

		b := Acquire(s)
		b.Release()
	})

	It("should serialize non-reentrant stores", func() {
		s.EXPECT().Reentrant().Return(false).AnyTimes()

		var active, maxActive int32
		var wg sync.WaitGroup

		for i := 0; i < 8; i++ {
			wg.Add(1)

			go func() {
				defer GinkgoRecover()
				defer wg.Done()

				a := Acquire(s)
				defer a.Release()

				n := atomic.AddInt32(&active, 1)
				for {
					m := atomic.LoadInt32(&maxActive)
					if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
						break
					}
				}

				time.Sleep(time.Millisecond)
				atomic.AddInt32(&active, -1)
			}()
		}

		wg.Wait()

		Expect(maxActive).To(Equal(int32(1)))
	})
})

var _ = Describe("Shapes", func() {
	It("should compute shape length", func() {
		Expect(ShapeLen([]int{3, 4})).To(Equal(12))
		Expect(ShapeLen(nil)).To(Equal(1))
		Expect(Info{Shape: []int{2, 0}}.Len()).To(Equal(0))
	})

	It("should check shapes", func() {
		Expect(CheckShape("/a", []int{2, 3}, 6)).To(Succeed())
		Expect(CheckShape("/a", []int{2, 3}, 5)).To(MatchError(ErrShape))
		Expect(CheckShape("/a", []int{-1, -3}, 3)).To(MatchError(ErrShape))
	})

	It("should name kinds", func() {
		Expect(KindComplex.String()).To(Equal("complex"))
		Expect(Kind(9).String()).To(Equal("Kind(9)"))
	})
})
