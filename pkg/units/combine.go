package units

import "github.com/zjrosen/quants/pkg/algebra"

// Multiply combines two or more units into their product. The order of the
// arguments does not matter.
func Multiply(left, right Unit, more ...Unit) Unit {
	factors := append([]Unit{left, right}, more...)
	return unitAlgebra.Multiply(unitAlgebra.Of(), factors...)
}

// Divide returns dividend/divisor. Dividing a unit by itself is Unitless.
func Divide(dividend, divisor Unit) Unit {
	if dividend.Equal(divisor) {
		return Unitless
	}
	return unitAlgebra.Divide(single(dividend), divisor)
}

// Pow returns u raised to n.
func Pow(u Unit, n int) Unit {
	return unitAlgebra.Product(algebra.Term[Unit]{Factor: u, Power: n})
}

// Inverse returns 1/u.
func Inverse(u Unit) Unit {
	return Pow(u, -1)
}

func single(u Unit) algebra.Factors[Unit] {
	return unitAlgebra.Of(algebra.Term[Unit]{Factor: u, Power: 1})
}
