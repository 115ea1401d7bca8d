package metrics

import (
	"math"

	"github.com/san-kum/bethesim/internal/sweep"
)

// MaxDeviation is the largest relative difference |s - ref| / |ref| between
// observed samples and a reference curve, matched by position.
type MaxDeviation struct {
	name      string
	reference sweep.Curve
	idx       int
	max       float64
}

func NewMaxDeviation(reference sweep.Curve) *MaxDeviation {
	return &MaxDeviation{
		name:      "max_rel_deviation",
		reference: reference,
	}
}

func (d *MaxDeviation) Name() string { return d.name }

func (d *MaxDeviation) Observe(p sweep.EnergyPoint) {
	if rel, ok := relative(d.reference, d.idx, p); ok {
		d.max = math.Max(d.max, rel)
	}
	d.idx++
}

func (d *MaxDeviation) Value() float64 { return d.max }

func (d *MaxDeviation) Reset() {
	d.idx = 0
	d.max = 0
}

// DeviationCount is the fraction of samples deviating from the reference by
// more than threshold.
type DeviationCount struct {
	name       string
	reference  sweep.Curve
	threshold  float64
	idx        int
	violations int
}

func NewDeviationCount(reference sweep.Curve, threshold float64) *DeviationCount {
	return &DeviationCount{
		name:      "deviating_fraction",
		reference: reference,
		threshold: threshold,
	}
}

func (d *DeviationCount) Name() string { return d.name }

func (d *DeviationCount) Observe(p sweep.EnergyPoint) {
	if rel, ok := relative(d.reference, d.idx, p); ok && rel > d.threshold {
		d.violations++
	}
	d.idx++
}

func (d *DeviationCount) Value() float64 {
	if d.idx == 0 {
		return 0
	}
	return float64(d.violations) / float64(d.idx)
}

func (d *DeviationCount) Reset() {
	d.idx = 0
	d.violations = 0
}

func relative(reference sweep.Curve, i int, p sweep.EnergyPoint) (float64, bool) {
	if i >= len(reference) {
		return 0, false
	}
	ref := reference[i].StoppingPower
	if ref == 0 {
		return 0, false
	}
	return math.Abs(p.StoppingPower-ref) / math.Abs(ref), true
}
