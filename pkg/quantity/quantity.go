// Package quantity pairs values with units and dispatches arithmetic between
// quantities by the concrete value types of the operands.
//
// Arithmetic is not derived automatically. Every ordered pair of value types
// must be registered on an Arithmetic, for example float64*int and int*float64
// separately. Before dispatch the operands' units are checked: multiplication
// and division reject operands sharing a dimension but not a unit, addition
// and subtraction require identical units.
package quantity

import (
	"fmt"
	"reflect"

	"github.com/zjrosen/quants/pkg/units"
)

// Base is the type-erased view of a quantity used for dispatch.
type Base interface {
	Unit() units.Unit
	Dimension() units.Dimension
	// ValueType is the dynamic type of the wrapped value.
	ValueType() reflect.Type
	// Interface returns the wrapped value.
	Interface() any
	String() string
}

// Quantity is an immutable value of type T measured in a unit.
type Quantity[T any] struct {
	value T
	unit  units.Unit
}

// New creates a quantity. A nil unit means Unitless.
func New[T any](value T, unit units.Unit) Quantity[T] {
	if unit == nil {
		unit = units.Unitless
	}
	return Quantity[T]{value: value, unit: unit}
}

func (q Quantity[T]) Value() T { return q.value }

func (q Quantity[T]) Unit() units.Unit {
	if q.unit == nil {
		return units.Unitless
	}
	return q.unit
}

// Dimension is derived from the unit.
func (q Quantity[T]) Dimension() units.Dimension { return q.Unit().Dimension() }

func (q Quantity[T]) ValueType() reflect.Type { return reflect.TypeOf(q.value) }

func (q Quantity[T]) Interface() any { return q.value }

func (q Quantity[T]) String() string {
	if s := q.Unit().Symbol(); s != "" {
		return fmt.Sprintf("%v %s", q.value, s)
	}
	return fmt.Sprintf("%v", q.value)
}

// TypeOf returns the dispatch type of quantities over T.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf(Quantity[T]{})
}

// MultiplyUnits returns the unit of a product of quantities.
func MultiplyUnits(left, right units.Unit) units.Unit {
	return units.Multiply(orUnitless(left), orUnitless(right))
}

// DivideUnits returns the unit of a quotient of quantities.
func DivideUnits(dividend, divisor units.Unit) units.Unit {
	return units.Divide(orUnitless(dividend), orUnitless(divisor))
}

func orUnitless(u units.Unit) units.Unit {
	if u == nil {
		return units.Unitless
	}
	return u
}
