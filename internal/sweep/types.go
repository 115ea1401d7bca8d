package sweep

import (
	"encoding/json"
	"math"
	"runtime"

	"gonum.org/v1/gonum/floats"
)

// EnergyPoint is one sample of a curve.
type EnergyPoint struct {
	EnergyMeV     float64 `json:"energy_mev"`
	StoppingPower float64 `json:"stopping_power"` // [MeV/cm]
}

type jsonPoint struct {
	EnergyMeV     float64  `json:"energy_mev"`
	StoppingPower *float64 `json:"stopping_power"`
}

// MarshalJSON writes a non-finite stopping power as null.
func (p EnergyPoint) MarshalJSON() ([]byte, error) {
	out := jsonPoint{EnergyMeV: p.EnergyMeV}
	if sp := p.StoppingPower; !math.IsNaN(sp) && !math.IsInf(sp, 0) {
		out.StoppingPower = &sp
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a null stopping power back as NaN.
func (p *EnergyPoint) UnmarshalJSON(data []byte) error {
	var in jsonPoint
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	p.EnergyMeV = in.EnergyMeV
	p.StoppingPower = math.NaN()
	if in.StoppingPower != nil {
		p.StoppingPower = *in.StoppingPower
	}
	return nil
}

// Curve is a sequence of samples ordered by increasing energy.
type Curve []EnergyPoint

func (c Curve) Energies() []float64 {
	out := make([]float64, len(c))
	for i, p := range c {
		out[i] = p.EnergyMeV
	}
	return out
}

func (c Curve) StoppingPowers() []float64 {
	out := make([]float64, len(c))
	for i, p := range c {
		out[i] = p.StoppingPower
	}
	return out
}

// IsFinite reports whether no sample holds NaN or Inf.
func (c Curve) IsFinite() bool {
	return finite(c.Energies()) && finite(c.StoppingPowers())
}

func finite(s []float64) bool {
	if len(s) == 0 {
		return true
	}
	return !floats.HasNaN(s) &&
		!math.IsInf(floats.Max(s), 1) &&
		!math.IsInf(floats.Min(s), -1)
}

type Config struct {
	Points  int
	StepMeV float64
	// Workers bounds the goroutines used per curve; values below 2 run serially.
	Workers int
}

func DefaultConfig() Config {
	return Config{
		Points:  1000,
		StepMeV: 10,
		Workers: runtime.NumCPU(),
	}
}

func (c Config) Validate() error {
	if c.Points <= 0 {
		return ErrNoPoints
	}
	if !(c.StepMeV > 0) || math.IsInf(c.StepMeV, 0) {
		return ErrInvalidStep
	}
	return nil
}

// EnergyAt returns the energy of sample i in MeV.
func (c Config) EnergyAt(i int, unit float64) float64 {
	return unit * float64(i+1) * c.StepMeV
}
