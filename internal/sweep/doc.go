// Package sweep evaluates stopping-power curves over an energy grid.
//
//   - [Curve]: ordered (energy, dE/dx) samples
//   - [Sweep]: one variant over the grid described by [Config]
//   - [All]: several variants concurrently
//
// # Ordering
//
// Samples are computed in parallel chunks but always written to their own
// index, so a curve is identical to a serial evaluation and sorted by
// increasing energy.
package sweep
