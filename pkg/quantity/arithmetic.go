package quantity

import (
	"fmt"
	"reflect"

	"github.com/zjrosen/quants/internal/log"
	"github.com/zjrosen/quants/pkg/units"
)

// Arithmetic holds one OperationStore per operator and applies unit checks
// before dispatching to them.
type Arithmetic struct {
	multiply *OperationStore
	divide   *OperationStore
	add      *OperationStore
	subtract *OperationStore
}

func NewArithmetic() *Arithmetic {
	return &Arithmetic{
		multiply: NewOperationStore("multiply"),
		divide:   NewOperationStore("divide"),
		add:      NewOperationStore("add"),
		subtract: NewOperationStore("subtract"),
	}
}

// Multiply returns left*right.
func (a *Arithmetic) Multiply(left, right Base) (Base, error) {
	if err := checkMixedUnits("multiply", left, right); err != nil {
		return nil, err
	}
	return a.multiply.Perform(left, right)
}

// Divide returns dividend/divisor.
func (a *Arithmetic) Divide(dividend, divisor Base) (Base, error) {
	if err := checkMixedUnits("divide", dividend, divisor); err != nil {
		return nil, err
	}
	return a.divide.Perform(dividend, divisor)
}

// Add returns left+right. Both operands must have the same unit.
func (a *Arithmetic) Add(left, right Base) (Base, error) {
	if err := checkSameUnit("add", left, right); err != nil {
		return nil, err
	}
	return a.add.Perform(left, right)
}

// Subtract returns left-right. Both operands must have the same unit.
func (a *Arithmetic) Subtract(left, right Base) (Base, error) {
	if err := checkSameUnit("subtract", left, right); err != nil {
		return nil, err
	}
	return a.subtract.Perform(left, right)
}

func (a *Arithmetic) RegisterMultiply(left, right reflect.Type, op Operation) error {
	return a.multiply.Add(left, right, op)
}

func (a *Arithmetic) RegisterDivide(left, right reflect.Type, op Operation) error {
	return a.divide.Add(left, right, op)
}

func (a *Arithmetic) RegisterAdd(left, right reflect.Type, op Operation) error {
	return a.add.Add(left, right, op)
}

func (a *Arithmetic) RegisterSubtract(left, right reflect.Type, op Operation) error {
	return a.subtract.Add(left, right, op)
}

// Supports reports whether op ("*", "/", "+" or "-") is registered for the
// ordered pair of quantity types.
func (a *Arithmetic) Supports(op string, left, right reflect.Type) bool {
	switch op {
	case "*":
		return a.multiply.Supports(left, right)
	case "/":
		return a.divide.Supports(left, right)
	case "+":
		return a.add.Supports(left, right)
	case "-":
		return a.subtract.Supports(left, right)
	}
	return false
}

// Apply dispatches on an operator symbol.
func (a *Arithmetic) Apply(op string, left, right Base) (Base, error) {
	switch op {
	case "*":
		return a.Multiply(left, right)
	case "/":
		return a.Divide(left, right)
	case "+":
		return a.Add(left, right)
	case "-":
		return a.Subtract(left, right)
	}
	return nil, fmt.Errorf("%w: operator %q", ErrNotSupported, op)
}

// RegisterMultiplyFunc registers fn for Quantity[L]*Quantity[R]. The result
// unit is the product of the operand units.
func RegisterMultiplyFunc[L, R, V any](a *Arithmetic, fn func(L, R) (V, error)) error {
	return a.RegisterMultiply(TypeOf[L](), TypeOf[R](), lift(fn, MultiplyUnits))
}

// RegisterDivideFunc registers fn for Quantity[L]/Quantity[R]. The result
// unit is the quotient of the operand units.
func RegisterDivideFunc[L, R, V any](a *Arithmetic, fn func(L, R) (V, error)) error {
	return a.RegisterDivide(TypeOf[L](), TypeOf[R](), lift(fn, DivideUnits))
}

// RegisterAddFunc registers fn for Quantity[L]+Quantity[R]. The result keeps
// the left unit.
func RegisterAddFunc[L, R, V any](a *Arithmetic, fn func(L, R) (V, error)) error {
	return a.RegisterAdd(TypeOf[L](), TypeOf[R](), lift(fn, leftUnit))
}

// RegisterSubtractFunc registers fn for Quantity[L]-Quantity[R]. The result
// keeps the left unit.
func RegisterSubtractFunc[L, R, V any](a *Arithmetic, fn func(L, R) (V, error)) error {
	return a.RegisterSubtract(TypeOf[L](), TypeOf[R](), lift(fn, leftUnit))
}

func leftUnit(left, _ units.Unit) units.Unit { return left }

func lift[L, R, V any](fn func(L, R) (V, error), unit func(l, r units.Unit) units.Unit) Operation {
	return func(left, right Base) (Base, error) {
		l, lok := left.(Quantity[L])
		r, rok := right.(Quantity[R])
		if !lok || !rok {
			return nil, fmt.Errorf("%w: operands %T and %T", ErrNotSupported, left, right)
		}
		v, err := fn(l.value, r.value)
		if err != nil {
			return nil, err
		}
		return New(v, unit(l.Unit(), r.Unit())), nil
	}
}

func checkMixedUnits(op string, left, right Base) error {
	if left == nil || right == nil {
		return fmt.Errorf("%w: %s", ErrNilOperand, op)
	}
	if units.SameDimension(left.Dimension(), right.Dimension()) && !units.SameUnit(left.Unit(), right.Unit()) {
		log.Warn(log.CatDispatch, "mixed units rejected", "op", op,
			"left", left.Unit().Symbol(), "right", right.Unit().Symbol())
		return fmt.Errorf("%w: %s %q and %q", ErrMixedUnits, op, left.Unit().Symbol(), right.Unit().Symbol())
	}
	return nil
}

func checkSameUnit(op string, left, right Base) error {
	if left == nil || right == nil {
		return fmt.Errorf("%w: %s", ErrNilOperand, op)
	}
	if !units.SameUnit(left.Unit(), right.Unit()) {
		log.Warn(log.CatDispatch, "different units rejected", "op", op,
			"left", left.Unit().Symbol(), "right", right.Unit().Symbol())
		return fmt.Errorf("%w: %s %q and %q", ErrUnitsDiffer, op, left.Unit().Symbol(), right.Unit().Symbol())
	}
	return nil
}
