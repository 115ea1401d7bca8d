// Package physics provides the Bethe-Bloch stopping-power model for protons
// traversing water.
//
// A [Model] derives its [Kinematics] once from [Constants] and evaluates
// dE/dx in four [Variant] forms:
//
//   - [NoCorrection]: plain Bethe-Bloch
//   - [DensityCorrection]: Sternheimer density effect (see [DensityEffect])
//   - [ShellCorrection]: low-energy shell term (see [ShellTerm])
//   - [AllCorrections]: density and shell terms together
//
// The shell term uses the piecewise [IonizationConstant]; the bracket itself
// always uses the fixed mean excitation energy in [Constants]. The two are
// different quantities.
//
// # Example
//
//	m := physics.NewWaterModel()
//	p := physics.DefaultParameters()
//	dedx := m.StoppingPower(100, physics.AllCorrections, p) // MeV/cm
//
// A Model is read-only after construction and may be shared across
// goroutines.
package physics
