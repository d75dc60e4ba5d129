package epid_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/epid/pkg/epid"
)

var _ = Describe("LowPass", func() {
	var f *epid.LowPass

	BeforeEach(func() {
		f = epid.NewLowPass(true)
	})

	It("seeds with the scaled first sample", func() {
		Expect(f.Init(0.5, 10)).To(Succeed())
		Expect(f.Y).To(Equal(5.0))
	})

	It("follows the EMA recurrence", func() {
		Expect(f.Init(0.5, 10)).To(Succeed())
		Expect(f.Update(20)).To(Equal(12.5))
		Expect(f.Y).To(Equal(12.5))
	})

	It("converges to a constant input", func() {
		Expect(f.Init(0.2, 0)).To(Succeed())
		for i := 0; i < 200; i++ {
			f.Update(7)
		}
		Expect(f.Y).To(BeNumerically("~", 7, 1e-9))
	})

	DescribeTable("rejects smoothing factors outside (0, 1)",
		func(alpha float64) {
			Expect(f.Init(alpha, 1)).To(MatchError(epid.ErrInit))
			Expect(*f).To(Equal(epid.LowPass{FiniteChecks: true}))
		},
		Entry("zero", 0.0),
		Entry("one", 1.0),
		Entry("negative", -0.5),
		Entry("above one", 1.5),
	)

	It("rejects a non-finite seed when checks are on", func() {
		Expect(f.Init(0.5, math.Inf(1))).To(MatchError(epid.ErrFloat))
		Expect(f.Init(math.NaN(), 1)).To(MatchError(epid.ErrFloat))
	})

	It("reports a nil context", func() {
		var nilFilter *epid.LowPass
		Expect(nilFilter.Init(0.5, 1)).To(MatchError(epid.ErrInit))
	})

	It("derives the smoothing factor from a cutoff", func() {
		a := epid.SmoothingFactor(20, 0.001)
		w := 2 * math.Pi * 0.001 * 20
		Expect(a).To(BeNumerically("~", w/(w+1), 1e-15))
		Expect(a).To(BeNumerically(">", 0))
		Expect(a).To(BeNumerically("<", 1))
	})
})
