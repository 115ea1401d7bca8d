package physics

import "math"

// Constants holds the fixed physical inputs of the model. Energies are in eV
// unless noted otherwise.
type Constants struct {
	ElectronCharge         float64 // [C]
	ElectronMass           float64 // [kg]
	SpeedOfLight           float64 // [m s^-1]
	AtomicNumber           float64 // effective Z of the medium
	EnergyUnit             float64 // [MeV] per sweep energy unit
	ProtonMass             float64 // [kg]
	ExcitationEnergy       float64 // [eV] mean excitation energy of the medium
	ElectronDensity        float64 // electrons per volume, model units
	CoulombConstant        float64 // [N m^2 C^-2]
	ProjectileChargeNumber float64
}

// WaterConstants returns the constants for protons traversing liquid water.
func WaterConstants() Constants {
	return Constants{
		ElectronCharge:         1.602176634e-19,
		ElectronMass:           9.10938356e-31,
		SpeedOfLight:           299792458.0,
		AtomicNumber:           9.0,
		EnergyUnit:             1.0,
		ProtonMass:             1.6726219e-27,
		ExcitationEnergy:       74.6,
		ElectronDensity:        3.3429,
		CoulombConstant:        8.99e9,
		ProjectileChargeNumber: 1.0,
	}
}

// Kinematics holds quantities derived once from Constants and shared by every
// energy sample.
type Kinematics struct {
	ProtonMassEv   float64 // m_p c^2 [eV]
	ElectronMassJ  float64 // m_e c^2 [J]
	ElectronMassEv float64 // m_e c^2 [eV]
	// ConstGeneral folds 4*pi*e^4*k^2 / (m_e c^2 * e) into MeV cm^2 output units.
	ConstGeneral float64
}

func DeriveKinematics(c Constants) Kinematics {
	c2 := c.SpeedOfLight * c.SpeedOfLight
	electronJ := c.ElectronMass * c2
	e2 := c.ElectronCharge * c.ElectronCharge
	k2 := c.CoulombConstant * c.CoulombConstant

	return Kinematics{
		ProtonMassEv:   c.ProtonMass * c2 / c.ElectronCharge,
		ElectronMassJ:  electronJ,
		ElectronMassEv: electronJ / c.ElectronCharge,
		ConstGeneral:   4.0 * math.Pi * e2 * e2 * k2 / (electronJ * c.ElectronCharge * 1.0e8),
	}
}
