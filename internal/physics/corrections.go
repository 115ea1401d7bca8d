package physics

import "math"

// CorrectionParameters are the Sternheimer density-effect parameters.
type CorrectionParameters struct {
	A  float64 `json:"a"`
	X0 float64 `json:"x0"`
	X1 float64 `json:"x1"`
	M  float64 `json:"m_param"`
	C  float64 `json:"c_param"`
}

const (
	DefaultA  = 0.09116
	DefaultX0 = 0.24
	DefaultX1 = 2.8004
	DefaultC  = 3.5017
	DefaultM  = 3.4773
)

// DefaultParameters returns the liquid water parameter set.
func DefaultParameters() CorrectionParameters {
	return CorrectionParameters{
		A:  DefaultA,
		X0: DefaultX0,
		X1: DefaultX1,
		M:  DefaultM,
		C:  DefaultC,
	}
}

// IonizationConstant is the piecewise mean excitation estimate in MeV used by
// the shell correction. It is distinct from Constants.ExcitationEnergy.
func IonizationConstant(z, zProj float64) float64 {
	if z < 13 {
		return (12*z + 7) / 1e6
	}
	return (9.76*zProj + 58.8*math.Pow(z, -0.19)) / 1e6
}

// DensityEffect returns the density correction delta for a projectile speed
// beta.
func DensityEffect(beta float64, p CorrectionParameters) float64 {
	return densityAt(math.Log10(BetaGamma(beta)), p)
}

// densityAt evaluates delta at x = log10(beta*gamma). The x >= x1 branch is
// tested first so x == x1 lands there and x == x0 lands in the middle branch.
func densityAt(x float64, p CorrectionParameters) float64 {
	switch {
	case x >= p.X1:
		return 2*math.Ln10*x + p.C
	case x >= p.X0:
		return 2*math.Ln10*x + p.C + p.A*math.Pow(p.X1-x, p.M)
	default:
		return 0
	}
}

// ShellTerm returns the shell correction sum for beta*gamma y and the
// ionization constant i (MeV). Undefined at y == 0.
func ShellTerm(y, i float64) float64 {
	y2 := math.Pow(y, -2)
	y4 := math.Pow(y, -4)
	y6 := math.Pow(y, -6)

	first := (0.422377*y2 + 0.0304043*y4 - 0.00038106*y6) * 1e-6 * (i * i * 1e-6)
	second := (3.850190*y2 - 0.1667989*y4 + 0.00157955*y6) * 1e-9 * (i * i * i * 1e-6)
	return first + second
}
