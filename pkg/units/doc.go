// Package units models units and dimensions.
//
// Atomic units and dimensions (BaseUnit, BaseDimension) are created once and
// compared by identity; two atomic units with the same symbol are different
// units. Compound units and dimensions are immutable products of atomic
// factors built on demand through Multiply, Divide, Pow or the fluent
// creators, and compare structurally:
//
//	newton := units.NewUnitCreator(kg, m).Divide(s, s).Create()
//	newton.Dimension() // (L*M)/(T^2)
//
// Unitless and Dimensionless are the identities of the two algebras. They are
// process-wide values and carry no mutable state.
package units
