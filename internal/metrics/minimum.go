package metrics

import (
	"math"

	"github.com/san-kum/bethesim/internal/sweep"
)

// Minimum tracks the smallest stopping power seen.
type Minimum struct {
	name    string
	min     float64
	energy  float64
	samples int
}

func NewMinimum() *Minimum {
	m := &Minimum{name: "min_dedx"}
	m.Reset()
	return m
}

func (m *Minimum) Name() string { return m.name }

func (m *Minimum) Observe(p sweep.EnergyPoint) {
	m.samples++
	if p.StoppingPower < m.min {
		m.min = p.StoppingPower
		m.energy = p.EnergyMeV
	}
}

func (m *Minimum) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.min
}

func (m *Minimum) Reset() {
	m.min = math.Inf(1)
	m.energy = 0
	m.samples = 0
}

// MinimumEnergy reports the energy in MeV at which Minimum was reached.
type MinimumEnergy struct {
	Minimum
}

func NewMinimumEnergy() *MinimumEnergy {
	m := &MinimumEnergy{Minimum: *NewMinimum()}
	m.name = "min_dedx_energy_mev"
	return m
}

func (m *MinimumEnergy) Value() float64 {
	return m.energy
}
