package calib_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/hrneuron/internal/calib"
)

var _ = Describe("Measure", func() {
	var opts calib.MeasureOptions

	BeforeEach(func() {
		opts = calib.DefaultMeasureOptions()
	})

	It("should count steps per burst in a plausible range", func() {
		pts, err := calib.Measure(context.Background(), 0.01, opts)

		Expect(err).ToNot(HaveOccurred())
		Expect(pts).To(BeNumerically(">", 5000))
		Expect(pts).To(BeNumerically("<", 20000))
	})

	It("should need more steps for smaller dt", func() {
		fine, err := calib.Measure(context.Background(), 0.005, opts)
		Expect(err).ToNot(HaveOccurred())

		coarse, err := calib.Measure(context.Background(), 0.02, opts)
		Expect(err).ToNot(HaveOccurred())

		Expect(fine).To(BeNumerically(">", coarse))
	})

	It("should reject invalid steps", func() {
		_, err := calib.Measure(context.Background(), 0, opts)
		Expect(err).To(MatchError(calib.ErrInvalidStep))

		_, err = calib.Measure(context.Background(), -0.1, opts)
		Expect(err).To(MatchError(calib.ErrInvalidStep))
	})

	It("should fail when the window is too short", func() {
		opts.Duration = 50
		_, err := calib.Measure(context.Background(), 0.01, opts)
		Expect(err).To(MatchError(calib.ErrNoBursts))
	})

	It("should stop when the context is canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := calib.Measure(ctx, 0.01, opts)
		Expect(err).To(MatchError(context.Canceled))
	})

	It("should build a monotonic table from a sweep", func() {
		t, err := calib.Sweep(context.Background(), []float64{0.02, 0.005, 0.01}, opts, 2)

		Expect(err).ToNot(HaveOccurred())
		Expect(t.Len()).To(Equal(3))
		Expect(t.At(0).Dt).To(Equal(0.005))
		Expect(t.At(2).Dt).To(Equal(0.02))
	})

	It("should space step sizes logarithmically", func() {
		dts := calib.LogSpace(0.001, 0.1, 3)

		Expect(dts).To(HaveLen(3))
		Expect(dts[0]).To(BeNumerically("~", 0.001, 1e-12))
		Expect(dts[1]).To(BeNumerically("~", 0.01, 1e-12))
		Expect(dts[2]).To(BeNumerically("~", 0.1, 1e-12))
	})
})
