package catalog

import "github.com/zjrosen/quants/pkg/quantity"

type number interface {
	~int | ~int64 | ~float32 | ~float64
}

func integral[V number]() bool {
	return V(1)/V(2) == 0
}

// registerPair registers Quantity[L]*Quantity[R] and Quantity[L]/Quantity[R]
// producing Quantity[V].
func registerPair[L, R, V number](a *quantity.Arithmetic) error {
	err := quantity.RegisterMultiplyFunc(a, func(l L, r R) (V, error) {
		return V(l) * V(r), nil
	})
	if err != nil {
		return err
	}
	return quantity.RegisterDivideFunc(a, func(l L, r R) (V, error) {
		if integral[V]() && V(r) == 0 {
			return 0, quantity.ErrDivisionByZero
		}
		return V(l) / V(r), nil
	})
}

func registerSame[T number](a *quantity.Arithmetic) error {
	if err := registerPair[T, T, T](a); err != nil {
		return err
	}
	if err := quantity.RegisterAddFunc(a, func(l, r T) (T, error) { return l + r, nil }); err != nil {
		return err
	}
	return quantity.RegisterSubtractFunc(a, func(l, r T) (T, error) { return l - r, nil })
}

// RegisterStandardOperations registers arithmetic over float32, float64, int
// and int64 on a. Every ordered pair is registered for multiplication and
// division; mixed pairs produce the wider type (int, int64, float32, float64
// in that order). Addition and subtraction are registered for equal types
// only.
func RegisterStandardOperations(a *quantity.Arithmetic) error {
	for _, register := range []func(*quantity.Arithmetic) error{
		registerSame[float32],
		registerSame[float64],
		registerSame[int],
		registerSame[int64],

		registerPair[float64, float32, float64],
		registerPair[float32, float64, float64],
		registerPair[float64, int, float64],
		registerPair[int, float64, float64],
		registerPair[float64, int64, float64],
		registerPair[int64, float64, float64],

		registerPair[float32, int, float32],
		registerPair[int, float32, float32],
		registerPair[float32, int64, float32],
		registerPair[int64, float32, float32],

		registerPair[int, int64, int64],
		registerPair[int64, int, int64],
	} {
		if err := register(a); err != nil {
			return err
		}
	}
	return nil
}

// NewStandardArithmetic returns an Arithmetic with the standard operations.
func NewStandardArithmetic() (*quantity.Arithmetic, error) {
	a := quantity.NewArithmetic()
	if err := RegisterStandardOperations(a); err != nil {
		return nil, err
	}
	return a, nil
}
