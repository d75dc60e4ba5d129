package epid_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/epid/pkg/epid"
)

var _ = Describe("Controller", func() {
	var c *epid.Controller

	BeforeEach(func() {
		c = epid.New(true)
	})

	Describe("Init", func() {
		It("copies every input into the context", func() {
			Expect(c.Init(20, 19, 3, 10, 2, 0.5)).To(Succeed())
			Expect(c.Xk1).To(Equal(20.0))
			Expect(c.Xk2).To(Equal(19.0))
			Expect(c.YOut).To(Equal(3.0))
			Expect(c.Kp).To(Equal(10.0))
			Expect(c.Ki).To(Equal(2.0))
			Expect(c.Kd).To(Equal(0.5))
		})

		It("accepts zero gains", func() {
			Expect(c.Init(0, 0, 0, 0, 0, 0)).To(Succeed())
		})

		DescribeTable("rejects negative gains and leaves the context untouched",
			func(kp, ki, kd float64, param string) {
				Expect(c.Init(1, 2, 3, 4, 5, 6)).To(Succeed())
				before := *c

				err := c.Init(7, 8, 9, kp, ki, kd)
				Expect(err).To(MatchError(epid.ErrInit))
				var pe *epid.ParamError
				Expect(errors.As(err, &pe)).To(BeTrue())
				Expect(pe.Param).To(Equal(param))
				Expect(*c).To(Equal(before))
			},
			Entry("kp", -1.0, 1.0, 1.0, "kp"),
			Entry("ki", 1.0, -0.001, 1.0, "ki"),
			Entry("kd", 1.0, 1.0, -5.0, "kd"),
		)

		DescribeTable("rejects non-finite inputs when checks are on",
			func(xk1, xk2, y, kp, ki, kd float64) {
				err := c.Init(xk1, xk2, y, kp, ki, kd)
				Expect(err).To(MatchError(epid.ErrFloat))
				Expect(*c).To(Equal(epid.Controller{FiniteChecks: true}))
			},
			Entry("xk_1 NaN", math.NaN(), 0.0, 0.0, 1.0, 1.0, 1.0),
			Entry("xk_2 +Inf", 0.0, math.Inf(1), 0.0, 1.0, 1.0, 1.0),
			Entry("y_previous -Inf", 0.0, 0.0, math.Inf(-1), 1.0, 1.0, 1.0),
			Entry("kp NaN", 0.0, 0.0, 0.0, math.NaN(), 1.0, 1.0),
			Entry("ki +Inf", 0.0, 0.0, 0.0, 1.0, math.Inf(1), 1.0),
			Entry("kd NaN", 0.0, 0.0, 0.0, 1.0, 1.0, math.NaN()),
		)

		It("accepts non-finite inputs when checks are off", func() {
			c = epid.New(false)
			Expect(c.Init(math.NaN(), 0, 0, 1, math.Inf(1), 1)).To(Succeed())
			Expect(math.IsNaN(c.Xk1)).To(BeTrue())
		})

		It("reports a nil context", func() {
			var nilCtx *epid.Controller
			Expect(nilCtx.Init(0, 0, 0, 1, 1, 1)).To(MatchError(epid.ErrInit))
		})
	})

	Describe("InitT", func() {
		It("derives ki and kd from the time constants", func() {
			Expect(c.InitT(20, 20, 0, 500, 50, 20, 0.1)).To(Succeed())

			ki, kd := epid.TimeConstantGains(500, 50, 20, 0.1)
			Expect(ki).To(BeNumerically("~", 1.0, 1e-12))
			Expect(kd).To(BeNumerically("~", 100000.0, 1e-6))
			Expect(c.Kp).To(Equal(500.0))
			Expect(c.Ki).To(Equal(ki))
			Expect(c.Kd).To(Equal(kd))
		})

		It("allows a zero derivative time", func() {
			Expect(c.InitT(0, 0, 0, 2, 1, 0, 0.5)).To(Succeed())
			Expect(c.Kd).To(BeZero())
		})

		DescribeTable("rejects bad time constants",
			func(ti, td, ts float64) {
				Expect(c.InitT(0, 0, 0, 1, ti, td, ts)).To(MatchError(epid.ErrInit))
				Expect(*c).To(Equal(epid.Controller{FiniteChecks: true}))
			},
			Entry("zero ti", 0.0, 1.0, 0.1),
			Entry("negative ti", -2.0, 1.0, 0.1),
			Entry("negative td", 1.0, -1.0, 0.1),
			Entry("zero sample period", 1.0, 1.0, 0.0),
			Entry("negative sample period", 1.0, 1.0, -0.1),
		)

		It("passes a negative kp on to the gain check", func() {
			Expect(c.InitT(0, 0, 0, -1, 1, 1, 1)).To(MatchError(epid.ErrInit))
		})
	})

	Describe("term calculation", func() {
		BeforeEach(func() {
			Expect(c.Init(20, 20, 0, 10, 10, 10)).To(Succeed())
		})

		It("computes the reference round trip", func() {
			c.PIDCalc(50, 20)
			Expect(c.PTerm).To(BeZero())
			Expect(c.ITerm).To(Equal(300.0))
			Expect(c.DTerm).To(BeZero())

			Expect(c.PIDSum(0, 255)).To(Equal(255.0))
			Expect(c.YOut).To(Equal(255.0))
		})

		It("uses the pre-shift history for D and shifts afterwards", func() {
			Expect(c.Init(4, 1, 0, 1, 1, 1)).To(Succeed())
			c.PIDCalc(0, 6)
			Expect(c.PTerm).To(Equal(1 * (4.0 - 6.0)))
			Expect(c.ITerm).To(Equal(1 * (0.0 - 6.0)))
			Expect(c.DTerm).To(Equal(1 * (2*4.0 - 1.0 - 6.0)))
			Expect(c.Xk1).To(Equal(6.0))
			Expect(c.Xk2).To(Equal(4.0))
		})

		It("keeps P and D independent of the setpoint", func() {
			other := *c
			c.PIDCalc(50, 25)
			other.PIDCalc(-300, 25)

			Expect(other.PTerm).To(Equal(c.PTerm))
			Expect(other.DTerm).To(Equal(c.DTerm))
			Expect(other.ITerm).NotTo(Equal(c.ITerm))
		})

		It("leaves D and x[k-2] alone in PI mode", func() {
			c.DTerm = 42
			c.PICalc(30, 25)
			Expect(c.PTerm).To(Equal(10 * (20.0 - 25.0)))
			Expect(c.ITerm).To(Equal(10 * (30.0 - 25.0)))
			Expect(c.DTerm).To(Equal(42.0))
			Expect(c.Xk1).To(Equal(25.0))
			Expect(c.Xk2).To(Equal(20.0))
		})

		It("does not touch the output", func() {
			c.YOut = 12
			c.PIDCalc(100, 0)
			Expect(c.YOut).To(Equal(12.0))
		})
	})

	Describe("summation", func() {
		BeforeEach(func() {
			Expect(c.Init(0, 0, 100, 1, 1, 1)).To(Succeed())
		})

		It("saturates at the ceiling and the floor", func() {
			c.PTerm, c.ITerm, c.DTerm = 300, 200, 0
			Expect(c.PIDSum(0, 500)).To(Equal(500.0))

			c.PTerm, c.ITerm, c.DTerm = -2000, 0, 0
			Expect(c.PIDSum(0, 500)).To(Equal(0.0))
		})

		It("ignores D in PI mode", func() {
			c.PTerm, c.ITerm, c.DTerm = 1, 2, 1000
			Expect(c.PISum(-1e9, 1e9)).To(Equal(103.0))
		})

		It("re-adds stale terms when called twice", func() {
			c.PTerm, c.ITerm, c.DTerm = 10, 20, 5
			Expect(c.PIDSum(0, 200)).To(Equal(135.0))
			Expect(c.PIDSum(0, 200)).To(Equal(170.0))
			Expect(c.PIDSum(0, 200)).To(Equal(200.0))
			Expect(c.PIDSum(0, 200)).To(Equal(200.0))
		})

		It("rolls back a NaN term", func() {
			c.PTerm, c.ITerm, c.DTerm = 1, math.NaN(), 1
			Expect(c.PIDSum(0, 500)).To(Equal(100.0))
			Expect(c.YOut).To(Equal(100.0))
		})

		It("rolls back an Inf-Inf cancellation", func() {
			c.PTerm, c.ITerm = math.Inf(1), math.Inf(-1)
			Expect(c.PISum(0, 500)).To(Equal(100.0))
		})

		It("clamps an infinite sum instead of rolling it back", func() {
			c.PTerm = math.Inf(1)
			Expect(c.PISum(0, 500)).To(Equal(500.0))
		})

		It("propagates NaN when checks are off", func() {
			c.FiniteChecks = false
			c.PTerm, c.ITerm = math.NaN(), 0
			Expect(math.IsNaN(c.PISum(0, 500))).To(BeTrue())
		})

		It("lands on a bound when the bounds are inverted", func() {
			c.PTerm, c.ITerm = 0, 0
			Expect(c.PISum(50, 10)).To(Equal(10.0))

			c.YOut = 30
			Expect(c.PISum(50, 10)).To(Equal(10.0))

			c.YOut = 5
			Expect(c.PISum(50, 10)).To(Equal(50.0))
		})
	})

	Describe("ILimit", func() {
		It("clamps the integral term", func() {
			c.ITerm = 1000
			c.ILimit(-100, 100)
			Expect(c.ITerm).To(Equal(100.0))

			c.ITerm = -1000
			c.ILimit(-100, 100)
			Expect(c.ITerm).To(Equal(-100.0))
		})

		It("leaves in-range values unchanged", func() {
			c.ITerm = 42
			c.ILimit(-100, 100)
			Expect(c.ITerm).To(Equal(42.0))
		})
	})

	Describe("Mode", func() {
		It("dispatches calc, sum and delta", func() {
			Expect(c.Init(10, 10, 0, 1, 1, 1)).To(Succeed())
			d := *c

			c.Calc(epid.PID, 12, 11)
			d.PIDCalc(12, 11)
			Expect(*c).To(Equal(d))
			Expect(c.Delta(epid.PID)).To(Equal(c.PTerm + c.ITerm + c.DTerm))
			Expect(c.Delta(epid.PI)).To(Equal(c.PTerm + c.ITerm))
			Expect(c.Sum(epid.PI, -10, 10)).To(Equal(d.PISum(-10, 10)))
		})

		It("parses names", func() {
			m, err := epid.ParseMode(" PID ")
			Expect(err).NotTo(HaveOccurred())
			Expect(m).To(Equal(epid.PID))
			Expect(m.String()).To(Equal("pid"))

			_, err = epid.ParseMode("pd")
			Expect(err).To(HaveOccurred())
		})
	})
})
