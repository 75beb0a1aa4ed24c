package calib_test

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/hrneuron/internal/calib"
)

var _ = Describe("Table", func() {
	It("should hold the built-in entries", func() {
		t := calib.Default()

		Expect(t.Len()).To(Equal(calib.DefaultSize))
		Expect(t.At(0)).To(Equal(calib.Entry{Dt: 0.0005, Points: 577638}))
		Expect(t.At(t.Len() - 1)).To(Equal(calib.Entry{Dt: 0.1, Points: 2829.684659}))
	})

	It("should be strictly monotonic over the full table", func() {
		entries := calib.Default().Entries()
		for i := 1; i < len(entries); i++ {
			Expect(entries[i].Dt).To(BeNumerically(">", entries[i-1].Dt))
			Expect(entries[i].Points).To(BeNumerically("<", entries[i-1].Points))
		}
	})

	It("should not expose its backing storage", func() {
		t := calib.Default()
		entries := t.Entries()
		entries[0].Dt = 42

		Expect(t.At(0).Dt).To(Equal(0.0005))
	})

	It("should report literal step sizes", func() {
		t := calib.Default()

		Expect(t.Contains(0.0933)).To(BeTrue())
		Expect(t.Contains(0.0934)).To(BeFalse())
		Expect(t.MinPoints()).To(Equal(2829.684659))
		Expect(t.MaxPoints()).To(Equal(577638.0))
	})

	Context("when validating", func() {
		It("should reject short tables", func() {
			_, err := calib.NewTable([]calib.Entry{{Dt: 0.1, Points: 10}})
			Expect(err).To(MatchError(calib.ErrTableSize))
		})

		It("should reject increasing points", func() {
			_, err := calib.NewTable([]calib.Entry{
				{Dt: 0.1, Points: 10},
				{Dt: 0.2, Points: 20},
			})
			Expect(err).To(MatchError(calib.ErrNotMonotonic))
		})

		It("should reject repeated dt", func() {
			_, err := calib.NewTable([]calib.Entry{
				{Dt: 0.1, Points: 20},
				{Dt: 0.1, Points: 10},
			})
			Expect(err).To(MatchError(calib.ErrNotMonotonic))
		})

		It("should reject non-positive values", func() {
			_, err := calib.NewTable([]calib.Entry{
				{Dt: 0, Points: 20},
				{Dt: 0.1, Points: 10},
			})
			Expect(err).To(MatchError(calib.ErrInvalidEntry))
		})

		It("should panic in MustNewTable", func() {
			Expect(func() { calib.MustNewTable(nil) }).To(Panic())
		})
	})

	Context("csv", func() {
		It("should round trip the built-in table", func() {
			var buf bytes.Buffer
			Expect(calib.WriteCSV(&buf, calib.Default())).To(Succeed())
			Expect(buf.String()).To(HavePrefix("dt,points\n0.0005,577638\n"))

			t, err := calib.ReadCSV(&buf)
			Expect(err).ToNot(HaveOccurred())
			Expect(t.Entries()).To(Equal(calib.Default().Entries()))
		})

		It("should accept files without a header", func() {
			t, err := calib.ReadCSV(strings.NewReader("0.01, 200\n0.02, 100\n"))
			Expect(err).ToNot(HaveOccurred())
			Expect(t.Len()).To(Equal(2))
			Expect(t.At(1).Points).To(Equal(100.0))
		})

		It("should reject malformed numbers", func() {
			_, err := calib.ReadCSV(strings.NewReader("dt,points\n0.01,abc\n0.02,1\n"))
			Expect(err).To(HaveOccurred())
		})
	})
})
