package metrics

import "github.com/san-kum/bethesim/internal/sweep"

type Mean struct {
	name    string
	sum     float64
	samples int
}

func NewMean() *Mean {
	return &Mean{name: "mean_dedx"}
}

func (m *Mean) Name() string { return m.name }

func (m *Mean) Observe(p sweep.EnergyPoint) {
	m.sum += p.StoppingPower
	m.samples++
}

func (m *Mean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Mean) Reset() {
	m.sum = 0
	m.samples = 0
}
