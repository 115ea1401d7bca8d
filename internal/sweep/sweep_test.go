package sweep

import (
	"context"
	"encoding/json"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bethesim/internal/physics"
)

var _ = Describe("Sweep", func() {
	var (
		model  *physics.Model
		params physics.CorrectionParameters
		cfg    Config
	)

	BeforeEach(func() {
		model = physics.NewWaterModel()
		params = physics.DefaultParameters()
		cfg = DefaultConfig()
	})

	Context("with the default grid", func() {
		It("should span 10 MeV to 10000 MeV in 10 MeV steps", func() {
			curve := Sweep(model, cfg, physics.NoCorrection, params)

			Expect(curve).To(HaveLen(1000))
			Expect(curve[0].EnergyMeV).To(Equal(10.0))
			Expect(curve[999].EnergyMeV).To(Equal(10000.0))

			for i := 1; i < len(curve); i++ {
				Expect(curve[i].EnergyMeV - curve[i-1].EnergyMeV).To(BeNumerically("~", 10.0, 1e-9))
			}
		})

		It("should start with a positive finite stopping power", func() {
			curve := Sweep(model, cfg, physics.NoCorrection, params)

			Expect(curve[0].StoppingPower).To(BeNumerically(">", 0))
			Expect(math.IsInf(curve[0].StoppingPower, 0)).To(BeFalse())
			Expect(math.IsNaN(curve[0].StoppingPower)).To(BeFalse())
		})

		It("should stay finite for every variant", func() {
			for _, v := range physics.Variants() {
				curve := Sweep(model, cfg, v, params)
				Expect(curve.IsFinite()).To(BeTrue(), "variant %s", v)
			}
		})

		It("should keep beta below one across the sweep", func() {
			for _, e := range Sweep(model, cfg, physics.NoCorrection, params).Energies() {
				beta := model.Beta(e)
				Expect(beta).To(BeNumerically(">", 0))
				Expect(beta).To(BeNumerically("<", 1))
			}
		})
	})

	Context("when evaluated in parallel", func() {
		It("should match a serial evaluation point for point", func() {
			serial := cfg
			serial.Workers = 1
			parallel := cfg
			parallel.Workers = 8

			for _, v := range physics.Variants() {
				Expect(Sweep(model, parallel, v, params)).To(Equal(Sweep(model, serial, v, params)))
			}
		})

		It("should match direct model evaluation", func() {
			curve := Sweep(model, cfg, physics.AllCorrections, params)
			for i, p := range curve {
				Expect(p.StoppingPower).To(Equal(model.StoppingPower(float64(i+1)*10, physics.AllCorrections, params)))
			}
		})
	})

	Context("with a degenerate config", func() {
		It("should return an empty curve for zero points", func() {
			cfg.Points = 0
			Expect(Sweep(model, cfg, physics.NoCorrection, params)).To(BeEmpty())
		})
	})
})

var _ = Describe("All", func() {
	var model *physics.Model

	BeforeEach(func() {
		model = physics.NewWaterModel()
	})

	It("should return one curve per variant in request order", func() {
		variants := []physics.Variant{physics.AllCorrections, physics.NoCorrection}
		results, err := All(context.Background(), model, DefaultConfig(), physics.DefaultParameters(), variants)

		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(2))
		Expect(results[0].Variant).To(Equal(physics.AllCorrections))
		Expect(results[1].Variant).To(Equal(physics.NoCorrection))
		Expect(results[0].Curve).To(HaveLen(1000))
	})

	It("should produce independent curves", func() {
		results, err := All(context.Background(), model, DefaultConfig(), physics.DefaultParameters(), physics.Variants())
		Expect(err).NotTo(HaveOccurred())

		results[0].Curve[0].StoppingPower = -1
		Expect(results[1].Curve[0].StoppingPower).To(BeNumerically(">", 0))
	})

	It("should reject invalid configs", func() {
		cfg := DefaultConfig()
		cfg.Points = -1
		_, err := All(context.Background(), model, cfg, physics.DefaultParameters(), physics.Variants())
		Expect(err).To(MatchError(ErrNoPoints))

		cfg = DefaultConfig()
		cfg.StepMeV = 0
		_, err = All(context.Background(), model, cfg, physics.DefaultParameters(), physics.Variants())
		Expect(err).To(MatchError(ErrInvalidStep))

		_, err = All(context.Background(), model, DefaultConfig(), physics.DefaultParameters(), nil)
		Expect(err).To(MatchError(ErrNoVariants))
	})

	It("should stop on a canceled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := All(ctx, model, DefaultConfig(), physics.DefaultParameters(), physics.Variants())
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("ParallelFor", func() {
	It("should visit every index exactly once", func() {
		for _, n := range []int{0, 1, 63, 64, 65, 1000, 1001} {
			seen := make([]int, n)
			ParallelFor(n, 16, 4, func(start, end int) {
				for i := start; i < end; i++ {
					seen[i]++
				}
			})
			for i := range seen {
				Expect(seen[i]).To(Equal(1), "n=%d index %d", n, i)
			}
		}
	})
})

var _ = Describe("Curve", func() {
	It("should report NaN and infinite samples", func() {
		Expect(Curve{}.IsFinite()).To(BeTrue())
		Expect(Curve{{EnergyMeV: 10, StoppingPower: 1e-28}}.IsFinite()).To(BeTrue())
		Expect(Curve{{EnergyMeV: 10, StoppingPower: math.NaN()}}.IsFinite()).To(BeFalse())
		Expect(Curve{{EnergyMeV: 10, StoppingPower: math.Inf(-1)}}.IsFinite()).To(BeFalse())
		Expect(Curve{{EnergyMeV: math.Inf(1), StoppingPower: 1}}.IsFinite()).To(BeFalse())
	})

	It("should encode non-finite stopping powers as null", func() {
		curve := Curve{
			{EnergyMeV: 10, StoppingPower: 4.5e-28},
			{EnergyMeV: 1e12, StoppingPower: math.NaN()},
		}

		data, err := json.Marshal(curve)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring(`"stopping_power":null`))

		var back Curve
		Expect(json.Unmarshal(data, &back)).To(Succeed())
		Expect(back).To(HaveLen(2))
		Expect(back[0]).To(Equal(curve[0]))
		Expect(back[1].EnergyMeV).To(Equal(1e12))
		Expect(math.IsNaN(back[1].StoppingPower)).To(BeTrue())
	})
})
