package metrics

import "github.com/san-kum/bethesim/internal/sweep"

// Metric accumulates a scalar summary over the samples of a curve.
type Metric interface {
	Name() string
	Observe(p sweep.EnergyPoint)
	Value() float64
	Reset()
}

// Evaluate resets each metric, feeds it the curve in order and collects the
// values by name.
func Evaluate(curve sweep.Curve, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for _, p := range curve {
			m.Observe(p)
		}
		out[m.Name()] = m.Value()
	}
	return out
}

// Default returns the metrics recorded for every curve. reference may be nil,
// in which case no deviation metrics are included.
func Default(reference sweep.Curve) []Metric {
	ms := []Metric{
		NewMinimum(),
		NewMinimumEnergy(),
		NewMean(),
	}
	if reference != nil {
		ms = append(ms, NewMaxDeviation(reference), NewDeviationCount(reference, 0.01))
	}
	return ms
}
