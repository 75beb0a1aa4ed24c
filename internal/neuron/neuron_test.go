package neuron_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/hrneuron/internal/calib"
	"github.com/san-kum/hrneuron/internal/hr"
	"github.com/san-kum/hrneuron/internal/neuron"
)

var _ = Describe("Neuron", func() {
	var n *neuron.Neuron

	BeforeEach(func() {
		n = neuron.New(neuron.DefaultOptions())
	})

	It("should start from the documented defaults", func() {
		Expect(n.State()).To(Equal(neuron.Unconfigured))
		Expect(n.Vars()).To(Equal(hr.DefaultVars()))
		Expect(n.Params()).To(Equal(hr.DefaultParams()))
		Expect(n.Timing()).To(Equal(neuron.DefaultTiming()))
		Expect(n.Input()).To(BeZero())
		Expect(n.Stepper()).To(Equal("cashkarp"))
	})

	Context("scenario A: burst with a millisecond tick", func() {
		It("should pick a literal table step", func() {
			n.SetConfig(neuron.KeyPeriodSeconds, 0.001)
			n.SetConfig(neuron.KeyBurstDuration, 1.0)

			t := n.Timing()
			Expect(n.State()).To(Equal(neuron.Configured))
			Expect(t.Mode).To(Equal(neuron.ModeBurst))
			Expect(t.Matched).To(BeTrue())
			Expect(calib.Default().Contains(t.Dt)).To(BeTrue())
			Expect(t.Dt).To(Equal(0.0933))
			Expect(t.PointsBurst).To(Equal(3032.899696))
			Expect(t.Substeps).To(Equal(3))
			Expect(n.Process()).To(Equal(3))
		})

		It("should pin one sub-step under the strict policy", func() {
			opts := neuron.DefaultOptions()
			opts.Policy = neuron.Strict
			n = neuron.New(opts)

			n.SetConfig(neuron.KeyPeriodSeconds, 0.001)
			n.SetConfig(neuron.KeyBurstDuration, 1.0)

			Expect(n.Timing().Dt).To(Equal(0.0933))
			Expect(n.Timing().Substeps).To(Equal(1))
		})

		It("should use the closest entry with the nearest strategy", func() {
			opts := neuron.DefaultOptions()
			opts.Strategy = calib.Nearest
			n = neuron.New(opts)

			n.SetConfig(neuron.KeyPeriodSeconds, 0.001)

			Expect(n.Timing().Dt).To(Equal(0.1))
			Expect(n.Timing().Substeps).To(Equal(3))
		})
	})

	Context("scenario B: no tick period", func() {
		It("should run one sub-step for any burst duration", func() {
			for _, burst := range []float64{1, 0, -1, 1000, 1e-6} {
				n.SetConfig(neuron.KeyBurstDuration, burst)
				n.SetConfig(neuron.KeyPeriodSeconds, 0.0)

				Expect(n.Timing().Substeps).To(Equal(1))
				Expect(n.Timing().Mode).To(Equal(neuron.ModeIdle))
			}
		})

		It("should treat a negative period the same way", func() {
			n.SetConfig(neuron.KeyPeriodSeconds, -0.01)
			Expect(n.Timing().Substeps).To(Equal(1))
			Expect(n.Process()).To(Equal(1))
		})
	})

	Context("scenario C: synaptic input", func() {
		It("should lower x relative to an undriven neuron", func() {
			base := neuron.New(neuron.DefaultOptions())
			n.SetInput(neuron.InputSyn, 2.0)

			base.Process()
			n.Process()

			Expect(n.Vars()[hr.X]).To(BeNumerically("<", base.Vars()[hr.X]))
			Expect(n.Input()).To(Equal(2.0))
		})

		It("should ignore unknown inputs", func() {
			Expect(n.SetInputName("i_ext", 3)).To(BeFalse())
			Expect(n.Input()).To(BeZero())

			Expect(n.SetInputName("i_syn", 0.25)).To(BeTrue())
			Expect(n.Input()).To(Equal(0.25))
		})

		It("should ignore non-finite inputs", func() {
			n.SetInput(neuron.InputSyn, 1)
			n.SetInput(neuron.InputSyn, math.NaN())
			Expect(n.Input()).To(Equal(1.0))
		})
	})

	Context("scenario D: negative time increment", func() {
		It("should clamp dt to zero", func() {
			n.SetConfig(neuron.KeyPeriodSeconds, 0)
			n.SetConfig(neuron.KeyTimeIncrement, -5.0)

			Expect(n.Timing().Dt).To(Equal(0.0))
		})

		It("should freeze the state while dt is zero", func() {
			n.SetConfig(neuron.KeyPeriodSeconds, 0)
			n.SetConfig(neuron.KeyTimeIncrement, -5.0)
			before := n.Vars()

			n.Process()

			Expect(n.Vars()).To(Equal(before))
		})

		It("should recover a usable step in continuous mode", func() {
			n.SetConfig(neuron.KeyBurstDuration, 0)
			n.SetConfig(neuron.KeyTimeIncrement, -5.0)

			t := n.Timing()
			Expect(t.Dt).To(BeNumerically("~", 0.001/neuron.DefaultMaxSubsteps, 1e-18))
			Expect(t.Substeps).To(Equal(neuron.DefaultMaxSubsteps))
		})
	})

	Context("continuous mode", func() {
		BeforeEach(func() {
			n.SetConfig(neuron.KeyBurstDuration, 0)
		})

		It("should derive sub-steps from the period", func() {
			Expect(n.Timing().Mode).To(Equal(neuron.ModeContinuous))
			Expect(n.Timing().Dt).To(Equal(0.0015))
			Expect(n.Timing().Substeps).To(Equal(1))

			n.SetConfig(neuron.KeyTimeIncrement, 0.0001)
			Expect(n.Timing().Dt).To(Equal(0.0001))
			Expect(n.Timing().Substeps).To(Equal(10))
		})

		It("should shrink dt instead of exceeding the ceiling", func() {
			n.SetConfig(neuron.KeyTimeIncrement, 1e-8)

			Expect(n.Timing().Substeps).To(Equal(neuron.DefaultMaxSubsteps))
			Expect(n.Timing().Dt).To(BeNumerically("~", 1e-7, 1e-18))
		})

		It("should honour a lower ceiling", func() {
			opts := neuron.DefaultOptions()
			opts.MaxSubsteps = 100
			n = neuron.New(opts)
			n.SetConfig(neuron.KeyBurstDuration, 0)
			n.SetConfig(neuron.KeyTimeIncrement, 1e-8)

			Expect(n.Timing().Substeps).To(Equal(100))
			Expect(n.Timing().Dt).To(BeNumerically("~", 1e-5, 1e-15))
			Expect(n.Process()).To(Equal(100))
		})
	})

	Context("table edge cases", func() {
		It("should keep dt and run one sub-step when nothing matches", func() {
			n.SetConfig(neuron.KeyBurstDuration, 600)

			t := n.Timing()
			Expect(t.Mode).To(Equal(neuron.ModeBurst))
			Expect(t.Matched).To(BeFalse())
			Expect(t.Dt).To(Equal(0.0015))
			Expect(t.Substeps).To(Equal(1))
		})

		It("should cap very dense bursts at the ceiling", func() {
			n.SetConfig(neuron.KeyBurstDuration, 0.0001)

			Expect(n.Timing().Substeps).To(Equal(neuron.DefaultMaxSubsteps))
			Expect(n.Process()).To(Equal(neuron.DefaultMaxSubsteps))
		})

		It("should cap at a configured ceiling", func() {
			opts := neuron.DefaultOptions()
			opts.MaxSubsteps = 50
			n = neuron.New(opts)
			n.SetConfig(neuron.KeyBurstDuration, 0.0001)

			Expect(n.Process()).To(Equal(50))
		})
	})

	Context("configuration keys", func() {
		It("should set both live and configured variables", func() {
			n.SetConfig(neuron.KeyX, 0.5)
			n.SetConfig(neuron.KeyY, -1)
			n.SetConfig(neuron.KeyZ, 2)

			Expect(n.Vars()).To(Equal(hr.Vars{0.5, -1, 2}))
			Expect(n.Initial()).To(Equal(hr.Vars{0.5, -1, 2}))

			n.Process()
			Expect(n.Vars()).ToNot(Equal(n.Initial()))

			n.Reset()
			Expect(n.Vars()).To(Equal(hr.Vars{0.5, -1, 2}))
		})

		It("should set model parameters", func() {
			n.SetConfig(neuron.KeyE, 3.0)
			n.SetConfig(neuron.KeyMu, 0.01)
			n.SetConfig(neuron.KeyS, 3.5)
			n.SetConfig(neuron.KeyVh, 1.2)

			Expect(n.Params()).To(Equal(hr.Params{E: 3.0, Mu: 0.01, S: 3.5, Vh: 1.2}))
		})

		It("should replan on unknown keys without changing fields", func() {
			Expect(n.SetConfigName("bogus", 1)).To(BeFalse())

			Expect(n.State()).To(Equal(neuron.Configured))
			Expect(n.Params()).To(Equal(hr.DefaultParams()))
			Expect(n.Timing().Dt).To(Equal(0.0933))
		})

		It("should accept keys by name", func() {
			Expect(n.SetConfigName("mu", 0.002)).To(BeTrue())
			Expect(n.Params().Mu).To(Equal(0.002))
		})

		It("should ignore non-finite values", func() {
			n.SetConfig(neuron.KeyE, math.NaN())
			n.SetConfig(neuron.KeyX, math.Inf(1))
			n.SetConfig(neuron.KeyTimeIncrement, math.Inf(-1))

			Expect(n.Params().E).To(Equal(hr.DefaultE))
			Expect(n.Vars()[hr.X]).To(Equal(hr.DefaultX))
			Expect(n.Timing().Dt).To(BeNumerically(">=", 0))
		})

		It("should return to the unconfigured state on init", func() {
			n.SetConfig(neuron.KeyE, 2)
			n.Init()

			Expect(n.State()).To(Equal(neuron.Unconfigured))
			Expect(n.Params()).To(Equal(hr.DefaultParams()))
		})
	})

	It("should keep dt and sub-step invariants for any call sequence", func() {
		rng := rand.New(rand.NewSource(7))
		keys := neuron.Keys()
		values := []float64{-5, -1, 0, 1e-9, 1e-4, 0.001, 0.01, 0.5, 1, 3, 100, math.NaN(), math.Inf(1)}

		for i := 0; i < 2000; i++ {
			k := keys[rng.Intn(len(keys))]
			v := values[rng.Intn(len(values))]
			n.SetConfig(k, v)

			t := n.Timing()
			Expect(t.Dt).To(BeNumerically(">=", 0), "after %s=%g", k, v)
			Expect(t.Substeps).To(BeNumerically(">=", 1))
			Expect(t.Substeps).To(BeNumerically("<=", n.MaxSubsteps()))
		}
	})

	It("should be idempotent for repeated calls", func() {
		for _, k := range neuron.Keys() {
			for _, v := range []float64{-1, 0, 0.0005, 0.7, 2} {
				once := neuron.New(neuron.DefaultOptions())
				twice := neuron.New(neuron.DefaultOptions())

				once.SetConfig(k, v)
				twice.SetConfig(k, v)
				twice.SetConfig(k, v)

				Expect(twice.Vars()).To(Equal(once.Vars()))
				Expect(twice.Params()).To(Equal(once.Params()))
				Expect(twice.Timing()).To(Equal(once.Timing()), "key %s value %g", k, v)
			}
		}
	})

	It("should produce bit-identical trajectories", func() {
		run := func() hr.Vars {
			m := neuron.New(neuron.DefaultOptions())
			m.SetConfig(neuron.KeyE, 3.0)
			m.SetConfig(neuron.KeyPeriodSeconds, 0.001)
			m.SetConfig(neuron.KeyBurstDuration, 0.5)
			for i := 0; i < 500; i++ {
				m.SetInput(neuron.InputSyn, 0.1*float64(i%7))
				m.Process()
			}
			return m.Vars()
		}

		Expect(run()).To(Equal(run()))
	})

	It("should read outputs", func() {
		n.SetConfig(neuron.KeyX, 0.25)

		Expect(n.Output(neuron.OutX)).To(Equal(0.25))
		Expect(n.Output(neuron.OutVolts)).To(Equal(0.25))
		Expect(n.Output(neuron.OutMillivolts)).To(Equal(250.0))
		Expect(n.Output(neuron.OutZ)).To(Equal(hr.DefaultZ))
		Expect(n.Output(neuron.Output(99))).To(BeZero())

		o, ok := neuron.ParseOutput(neuron.MillivoltsName)
		Expect(ok).To(BeTrue())
		Expect(o).To(Equal(neuron.OutMillivolts))
	})
})
