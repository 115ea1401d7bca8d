package physics

import "math"

// Model evaluates the Bethe-Bloch stopping power of a proton in a medium.
// A Model is immutable after construction and safe for concurrent use.
type Model struct {
	consts     Constants
	kin        Kinematics
	ionization float64 // [MeV], consumed by the shell term only
}

func NewModel(c Constants) *Model {
	return &Model{
		consts:     c,
		kin:        DeriveKinematics(c),
		ionization: IonizationConstant(c.AtomicNumber, c.ProjectileChargeNumber),
	}
}

// NewWaterModel is NewModel(WaterConstants()).
func NewWaterModel() *Model {
	return NewModel(WaterConstants())
}

func (m *Model) Constants() Constants   { return m.consts }
func (m *Model) Kinematics() Kinematics { return m.kin }
func (m *Model) Ionization() float64    { return m.ionization }

// BetaOf returns v/c for kinetic energy e and rest mass mass, both in eV.
func BetaOf(e, mass float64) float64 {
	return math.Sqrt(e*(e+2*mass)) / (e + mass)
}

// BetaGamma returns beta/sqrt(1-beta^2); it diverges as beta approaches 1.
func BetaGamma(beta float64) float64 {
	return beta / math.Sqrt(1-beta*beta)
}

// Beta returns v/c of a proton with the given kinetic energy in MeV.
func (m *Model) Beta(energyMeV float64) float64 {
	return BetaOf(energyMeV*1e6, m.kin.ProtonMassEv)
}

// Correction returns the term subtracted from the bracket for variant v.
func (m *Model) Correction(energyMeV float64, v Variant, p CorrectionParameters) float64 {
	beta := m.Beta(energyMeV)

	corr := 0.0
	if v.hasDensity() {
		corr += DensityEffect(beta, p)
	}
	if v.hasShell() {
		corr += 2 * ShellTerm(BetaGamma(beta), m.ionization) / m.consts.AtomicNumber
	}
	return corr
}

// Bracket returns the logarithmic factor of the Bethe-Bloch formula with the
// variant's corrections already subtracted.
func (m *Model) Bracket(energyMeV float64, v Variant, p CorrectionParameters) float64 {
	b2 := m.Beta(energyMeV)
	b2 *= b2

	return math.Log(2*m.kin.ElectronMassEv*b2/m.consts.ExcitationEnergy) -
		math.Log(1-b2) -
		b2 -
		m.Correction(energyMeV, v, p)
}

// Prefactor returns the factor multiplying the bracket at energyMeV.
func (m *Model) Prefactor(energyMeV float64) float64 {
	beta := m.Beta(energyMeV)
	z := m.consts.ProjectileChargeNumber
	return m.kin.ConstGeneral * z * z * m.consts.ElectronDensity / (beta * beta)
}

// StoppingPower returns dE/dx in MeV/cm. Inputs outside the physical domain
// yield NaN or Inf rather than an error.
func (m *Model) StoppingPower(energyMeV float64, v Variant, p CorrectionParameters) float64 {
	return m.Prefactor(energyMeV) * m.Bracket(energyMeV, v, p)
}
