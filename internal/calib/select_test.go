package calib_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/hrneuron/internal/calib"
)

var _ = Describe("Select", func() {
	var table *calib.Table

	BeforeEach(func() {
		table = calib.Default()
	})

	DescribeTable("tolerance search",
		func(ptsLive float64, index int, dt float64, within bool) {
			sel := table.Select(ptsLive, 1, calib.Tolerance)

			Expect(sel.Matched).To(BeTrue())
			Expect(sel.Index).To(Equal(index))
			Expect(sel.Dt).To(Equal(dt))
			Expect(sel.PointsBurst).To(Equal(table.At(index).Points))
			Expect(sel.WithinTolerance).To(Equal(within))
		},
		Entry("one thousand ticks per burst", 1000.0, 141, 0.0933, true),
		Entry("below the smallest density", 100.0, 143, 0.1, true),
		Entry("after scaling to a multiple", 500.0, 141, 0.0933, true),
		Entry("two thousand ticks", 2000.0, 131, 0.0699, true),
		Entry("single multiple near the top", 3000.0, 141, 0.0933, true),
		Entry("single multiple mid table", 5000.0, 121, 0.0556, true),
		Entry("single multiple small step", 100000.0, 16, 0.0028, true),
		Entry("doubled into the dense region", 102000.0, 8, 0.0013, true),
		Entry("doubled near 0.0012", 113764.6, 7, 0.0012, true),
		Entry("doubled near 0.001", 143020.7, 5, 0.001, true),
		Entry("doubled near 0.0009", 157983.8, 4, 0.0009, true),
		Entry("fallback to the densest entry", 500000.0, 0, 0.0005, false),
	)

	It("should compute the live density from burst and period", func() {
		sel := table.Select(1.0, 0.001, calib.Tolerance)

		Expect(sel.PointsLive).To(BeNumerically("~", 1000, 1e-9))
		Expect(sel.Dt).To(Equal(0.0933))
		Expect(math.Round(sel.Ratio())).To(Equal(3.0))
	})

	It("should always select a literal table step", func() {
		for _, pl := range []float64{0.3, 7, 42, 999, 1234, 4321, 25000, 333333} {
			sel := table.Select(pl, 1, calib.Tolerance)
			Expect(sel.Matched).To(BeTrue())
			Expect(table.Contains(sel.Dt)).To(BeTrue())
			Expect(sel.PointsBurst).To(BeNumerically(">", sel.PointsLive))
		}
	})

	It("should report no match beyond the densest entry", func() {
		for _, pl := range []float64{577638, 600000, math.Inf(1)} {
			sel := table.Select(pl, 1, calib.Tolerance)
			Expect(sel.Matched).To(BeFalse())
			Expect(sel.Index).To(Equal(-1))
			Expect(sel.Ratio()).To(BeZero())
		}
	})

	It("should report no match for degenerate densities", func() {
		Expect(table.Select(0, 1, calib.Tolerance).Matched).To(BeFalse())
		Expect(table.Select(-1, 1, calib.Tolerance).Matched).To(BeFalse())
		Expect(table.Select(math.NaN(), 1, calib.Tolerance).Matched).To(BeFalse())
	})

	It("should terminate for vanishing densities", func() {
		sel := table.Select(1e-310, 1, calib.Tolerance)
		Expect(sel.Matched).To(BeTrue())
		Expect(sel.Index).To(Equal(143))
	})

	It("should prefer a clean multiple over the first denser entry", func() {
		sel := table.Select(102000, 1, calib.Tolerance)
		Expect(sel.WithinTolerance).To(BeTrue())
		Expect(math.Round(sel.Ratio())).To(Equal(2.0))
		Expect(sel.Dt).ToNot(Equal(0.0025))
	})

	Context("nearest strategy", func() {
		It("should pick the closest density", func() {
			sel := table.Select(1000, 1, calib.Nearest)
			Expect(sel.Index).To(Equal(143))

			sel = table.Select(100000, 1, calib.Nearest)
			Expect(sel.Index).To(Equal(16))
			Expect(sel.Dt).To(Equal(0.0028))
		})

		It("should match beyond the densest entry", func() {
			sel := table.Select(600000, 1, calib.Nearest)
			Expect(sel.Matched).To(BeTrue())
			Expect(sel.Index).To(Equal(0))
		})
	})

	It("should parse strategy names", func() {
		s, err := calib.ParseStrategy("nearest")
		Expect(err).ToNot(HaveOccurred())
		Expect(s).To(Equal(calib.Nearest))
		Expect(s.String()).To(Equal("nearest"))

		s, err = calib.ParseStrategy("")
		Expect(err).ToNot(HaveOccurred())
		Expect(s).To(Equal(calib.Tolerance))

		_, err = calib.ParseStrategy("bogus")
		Expect(err).To(MatchError(calib.ErrUnknownStrategy))
	})
})
