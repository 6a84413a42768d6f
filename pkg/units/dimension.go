package units

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/zjrosen/quants/pkg/algebra"
)

// Dimension is a physical quantity kind such as length or mass. A dimension
// says what a quantity measures; its unit says how.
type Dimension interface {
	// Symbol returns the short symbol, e.g. "L".
	Symbol() string
	// Name returns the long name, e.g. "length".
	Name() string
	// Key returns an identity string usable as a map key. Structurally equal
	// dimensions have equal keys.
	Key() string
	Equal(other Dimension) bool
	String() string
}

// BaseDimension is an elementary dimension. It is only equal to itself.
type BaseDimension struct {
	key    string
	symbol string
	name   string
}

// NewBaseDimension creates a dimension with its own identity.
func NewBaseDimension(symbol, name string) *BaseDimension {
	return &BaseDimension{key: uuid.NewString(), symbol: symbol, name: name}
}

func (d *BaseDimension) Symbol() string { return d.symbol }
func (d *BaseDimension) Name() string   { return d.name }
func (d *BaseDimension) Key() string    { return d.key }

func (d *BaseDimension) Equal(other Dimension) bool {
	o, ok := other.(*BaseDimension)
	return ok && o == d
}

func (d *BaseDimension) String() string {
	return fmt.Sprintf("%s (%s)", d.symbol, d.name)
}

type dimensionless struct {
	key string
}

// Dimensionless is the dimension of scalars and the identity of the
// dimension algebra.
var Dimensionless Dimension = &dimensionless{key: "dimensionless"}

func (d *dimensionless) Symbol() string { return "" }
func (d *dimensionless) Name() string   { return "" }
func (d *dimensionless) Key() string    { return d.key }
func (d *dimensionless) String() string { return "dimensionless" }

func (d *dimensionless) Equal(other Dimension) bool {
	return other == Dimensionless
}

var dimensionAlgebra = algebra.New[Dimension](Dimensionless, func(f algebra.Factors[Dimension]) Dimension {
	return &CompoundDimension{factors: f}
})

// CompoundDimension is a product of base dimensions raised to integer powers,
// e.g. L/T for speed. Values are never mutated after construction.
type CompoundDimension struct {
	factors algebra.Factors[Dimension]
}

// Factors returns the multiset of base dimensions and their exponents.
func (c *CompoundDimension) Factors() algebra.Factors[Dimension] { return c.factors }

func (c *CompoundDimension) Symbol() string {
	return dimensionAlgebra.Render(c.factors, Dimension.Symbol)
}

func (c *CompoundDimension) Name() string {
	return dimensionAlgebra.Render(c.factors, func(d Dimension) string {
		return `"` + d.Name() + `"`
	})
}

func (c *CompoundDimension) Key() string { return c.factors.Key() }

func (c *CompoundDimension) Equal(other Dimension) bool {
	o, ok := other.(*CompoundDimension)
	return ok && c.factors.Equal(o.factors)
}

func (c *CompoundDimension) String() string { return c.Symbol() }

// Multiply returns c multiplied by dimensions.
func (c *CompoundDimension) Multiply(dimensions ...Dimension) Dimension {
	return dimensionAlgebra.Multiply(c.factors, dimensions...)
}

// Divide returns c divided by dimensions.
func (c *CompoundDimension) Divide(dimensions ...Dimension) Dimension {
	return dimensionAlgebra.Divide(c.factors, dimensions...)
}

// Inverse returns 1/c.
func (c *CompoundDimension) Inverse() Dimension {
	return dimensionAlgebra.Inverse(c.factors)
}

// Simplify returns the smallest representation of c.
func (c *CompoundDimension) Simplify() Dimension {
	return dimensionAlgebra.Simplify(c.factors)
}

// PowDimension returns d raised to n.
func PowDimension(d Dimension, n int) Dimension {
	return dimensionAlgebra.Product(algebra.Term[Dimension]{Factor: d, Power: n})
}

// MultiplyDimensions returns the product of dimensions.
func MultiplyDimensions(dimensions ...Dimension) Dimension {
	return dimensionAlgebra.Multiply(dimensionAlgebra.Of(), dimensions...)
}

// DivideDimensions returns dividend divided by divisors.
func DivideDimensions(dividend Dimension, divisors ...Dimension) Dimension {
	return dimensionAlgebra.Divide(dimensionAlgebra.Of(algebra.Term[Dimension]{Factor: dividend, Power: 1}), divisors...)
}

// SameDimension reports whether a and b are equal, treating nil as
// Dimensionless.
func SameDimension(a, b Dimension) bool {
	if a == nil {
		a = Dimensionless
	}
	if b == nil {
		b = Dimensionless
	}
	return a.Equal(b)
}
