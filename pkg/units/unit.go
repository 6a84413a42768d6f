package units

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/zjrosen/quants/pkg/algebra"
)

// Unit is an immutable unit of measurement belonging to one dimension, e.g.
// "kg" in mass.
type Unit interface {
	// Symbol returns the short form, e.g. "kg".
	Symbol() string
	// Description returns the long form, e.g. "kilogram".
	Description() string
	// Dimension returns the dimension the unit measures.
	Dimension() Dimension
	// Key returns an identity string usable as a map key. Structurally equal
	// units have equal keys.
	Key() string
	Equal(other Unit) bool
	String() string
}

// BaseUnit is an atomic unit. Base units are only equal to themselves, so two
// units sharing a symbol are still distinct.
type BaseUnit struct {
	key         string
	symbol      string
	description string
	dimension   Dimension
}

// NewBaseUnit creates a unit of dimension. A nil dimension means
// Dimensionless.
func NewBaseUnit(symbol, description string, dimension Dimension) *BaseUnit {
	if dimension == nil {
		dimension = Dimensionless
	}
	return &BaseUnit{
		key:         uuid.NewString(),
		symbol:      symbol,
		description: description,
		dimension:   dimension,
	}
}

func (u *BaseUnit) Symbol() string       { return u.symbol }
func (u *BaseUnit) Description() string  { return u.description }
func (u *BaseUnit) Dimension() Dimension { return u.dimension }
func (u *BaseUnit) Key() string          { return u.key }

func (u *BaseUnit) Equal(other Unit) bool {
	o, ok := other.(*BaseUnit)
	return ok && o == u
}

func (u *BaseUnit) String() string {
	return fmt.Sprintf("%s (%s)", u.symbol, u.description)
}

type unitless struct {
	key string
}

// Unitless is the unit of dimensionless quantities and the identity of the
// unit algebra.
var Unitless Unit = &unitless{key: "unitless"}

func (u *unitless) Symbol() string       { return "" }
func (u *unitless) Description() string  { return "dimensionless" }
func (u *unitless) Dimension() Dimension { return Dimensionless }
func (u *unitless) Key() string          { return u.key }
func (u *unitless) String() string       { return "" }

func (u *unitless) Equal(other Unit) bool {
	return other == Unitless
}

var unitAlgebra = algebra.New[Unit](Unitless, func(f algebra.Factors[Unit]) Unit {
	return &CompoundUnit{factors: f}
})

// CompoundUnit is a product of base units raised to integer powers, e.g.
// kg/m^3. Values are never mutated after construction.
type CompoundUnit struct {
	factors algebra.Factors[Unit]
}

// Factors returns the multiset of base units and their exponents.
func (c *CompoundUnit) Factors() algebra.Factors[Unit] { return c.factors }

func (c *CompoundUnit) Symbol() string {
	return unitAlgebra.Render(c.factors, Unit.Symbol)
}

func (c *CompoundUnit) Description() string {
	return unitAlgebra.Render(c.factors, Unit.Description)
}

// Dimension derives the dimension from the factors: each factor's dimension
// raised to the factor's power.
func (c *CompoundUnit) Dimension() Dimension {
	terms := c.factors.Terms()
	dims := make([]algebra.Term[Dimension], len(terms))
	for i, t := range terms {
		dims[i] = algebra.Term[Dimension]{Factor: t.Factor.Dimension(), Power: t.Power}
	}
	return dimensionAlgebra.Product(dims...)
}

func (c *CompoundUnit) Key() string { return c.factors.Key() }

func (c *CompoundUnit) Equal(other Unit) bool {
	o, ok := other.(*CompoundUnit)
	return ok && c.factors.Equal(o.factors)
}

func (c *CompoundUnit) String() string { return c.Symbol() }

// Multiply returns c multiplied by units.
func (c *CompoundUnit) Multiply(units ...Unit) Unit {
	return unitAlgebra.Multiply(c.factors, units...)
}

// Divide returns c divided by units.
func (c *CompoundUnit) Divide(units ...Unit) Unit {
	return unitAlgebra.Divide(c.factors, units...)
}

// Inverse returns 1/c.
func (c *CompoundUnit) Inverse() Unit {
	return unitAlgebra.Inverse(c.factors)
}

// Simplify returns the smallest representation of c.
func (c *CompoundUnit) Simplify() Unit {
	return unitAlgebra.Simplify(c.factors)
}

// SameUnit reports whether a and b are equal, treating nil as Unitless.
func SameUnit(a, b Unit) bool {
	if a == nil {
		a = Unitless
	}
	if b == nil {
		b = Unitless
	}
	return a.Equal(b)
}
