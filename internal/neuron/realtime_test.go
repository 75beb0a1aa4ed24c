package neuron_test

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/hrneuron/internal/hr"
	"github.com/san-kum/hrneuron/internal/neuron"
)

var _ = Describe("Realtime", func() {
	var r *neuron.Realtime

	BeforeEach(func() {
		r = neuron.NewRealtime(neuron.DefaultOptions())
	})

	It("should apply configuration at the next tick", func() {
		r.SetConfig(neuron.KeyPeriodSeconds, 0.001)

		Expect(r.Timing().Dt).To(Equal(0.0933))
		Expect(r.Process()).To(Equal(3))
		Expect(r.State()).To(Equal(neuron.Configured))
	})

	It("should track a plain neuron fed the same calls", func() {
		plain := neuron.New(neuron.DefaultOptions())
		for _, c := range []struct {
			k neuron.Key
			v float64
		}{
			{neuron.KeyE, 3.0},
			{neuron.KeyPeriodSeconds, 0.001},
			{neuron.KeyBurstDuration, 0.5},
		} {
			r.SetConfig(c.k, c.v)
			plain.SetConfig(c.k, c.v)
		}
		r.SetInput(neuron.InputSyn, 0.2)
		plain.SetInput(neuron.InputSyn, 0.2)

		for i := 0; i < 200; i++ {
			Expect(r.Process()).To(Equal(plain.Process()))
		}
		Expect(r.Vars()).To(Equal(plain.Vars()))
		Expect(r.Output(neuron.OutMillivolts)).To(Equal(plain.Output(neuron.OutMillivolts)))
	})

	It("should not overwrite evolved variables on unrelated updates", func() {
		for i := 0; i < 10; i++ {
			r.Process()
		}
		evolved := r.Vars()

		r.SetConfig(neuron.KeyE, 3.1)
		r.Process()

		Expect(r.Vars()).ToNot(Equal(hr.DefaultVars()))
		Expect(r.Vars()).ToNot(Equal(evolved))
		Expect(r.Params().E).To(Equal(3.1))
	})

	It("should copy only the written variable", func() {
		for i := 0; i < 10; i++ {
			r.Process()
		}
		before := r.Vars()

		r.SetConfig(neuron.KeyX, 0.5)
		r.SetConfig(neuron.KeyPeriodSeconds, 0)
		r.SetConfig(neuron.KeyTimeIncrement, 0)
		r.Process()

		v := r.Vars()
		Expect(v[hr.X]).To(Equal(0.5))
		Expect(v[hr.Y]).To(Equal(before[hr.Y]))
		Expect(v[hr.Z]).To(Equal(before[hr.Z]))
	})

	It("should restore configured values on reset", func() {
		r.SetConfig(neuron.KeyY, -2)
		for i := 0; i < 10; i++ {
			r.Process()
		}

		r.Reset()
		r.SetConfig(neuron.KeyPeriodSeconds, 0)
		r.SetConfig(neuron.KeyTimeIncrement, 0)
		r.Process()

		Expect(r.Vars()).To(Equal(hr.Vars{hr.DefaultX, -2, hr.DefaultZ}))
	})

	It("should reinitialise on init", func() {
		r.SetConfig(neuron.KeyE, 1)
		r.Process()
		r.Init()

		Expect(r.State()).To(Equal(neuron.Unconfigured))
		Expect(r.Params()).To(Equal(hr.DefaultParams()))
	})

	It("should accept configuration from another goroutine", func() {
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				r.SetConfig(neuron.KeyBurstDuration, 0.2+float64(i%5)*0.2)
				r.SetConfigName("e", 3.0+float64(i%3)*0.1)
				r.SetInputName("i_syn", float64(i%4)*0.1)
			}
		}()

		for i := 0; i < 500; i++ {
			steps := r.Process()
			Expect(steps).To(BeNumerically(">=", 1))
			Expect(steps).To(BeNumerically("<=", neuron.DefaultMaxSubsteps))
		}
		wg.Wait()

		Expect(r.Vars().IsValid()).To(BeTrue())
	})
})
