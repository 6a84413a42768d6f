package units

import "github.com/zjrosen/quants/pkg/algebra"

// UnitCreator builds compound units fluently:
//
//	newton := NewUnitCreator(kg).Multiply(m).Divide(s, s).Create()
type UnitCreator struct {
	factors algebra.Factors[Unit]
}

// NewUnitCreator starts from the product of start, or Unitless when empty.
func NewUnitCreator(start ...Unit) *UnitCreator {
	return &UnitCreator{factors: unitAlgebra.Fold(unitAlgebra.Of(), 1, start...)}
}

// Multiply multiplies the current unit by units.
func (c *UnitCreator) Multiply(units ...Unit) *UnitCreator {
	c.factors = unitAlgebra.Fold(c.factors, 1, units...)
	return c
}

// Divide divides the current unit by units.
func (c *UnitCreator) Divide(units ...Unit) *UnitCreator {
	c.factors = unitAlgebra.Fold(c.factors, -1, units...)
	return c
}

// Create returns the resulting unit in its simplest form.
func (c *UnitCreator) Create() Unit {
	return unitAlgebra.Simplify(c.factors)
}

// DimensionCreator builds compound dimensions fluently:
//
//	force := NewDimensionCreator(mass, length).Divide(time, time).Create()
type DimensionCreator struct {
	factors algebra.Factors[Dimension]
}

// NewDimensionCreator starts from the product of start, or Dimensionless when
// empty.
func NewDimensionCreator(start ...Dimension) *DimensionCreator {
	return &DimensionCreator{factors: dimensionAlgebra.Fold(dimensionAlgebra.Of(), 1, start...)}
}

// Multiply multiplies the current dimension by dimensions.
func (c *DimensionCreator) Multiply(dimensions ...Dimension) *DimensionCreator {
	c.factors = dimensionAlgebra.Fold(c.factors, 1, dimensions...)
	return c
}

// Divide divides the current dimension by dimensions.
func (c *DimensionCreator) Divide(dimensions ...Dimension) *DimensionCreator {
	c.factors = dimensionAlgebra.Fold(c.factors, -1, dimensions...)
	return c
}

// Create returns the resulting dimension in its simplest form.
func (c *DimensionCreator) Create() Dimension {
	return dimensionAlgebra.Simplify(c.factors)
}
