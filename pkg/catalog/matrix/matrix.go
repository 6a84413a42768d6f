// Package matrix registers quantity arithmetic over gonum matrices and
// vectors, so a Quantity[*mat.Dense] in metres can be scaled, multiplied or
// summed like any scalar quantity.
package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/zjrosen/quants/pkg/quantity"
	"github.com/zjrosen/quants/pkg/units"
)

// ErrShape is returned when operand dimensions do not agree.
var ErrShape = fmt.Errorf("%w: matrix shapes do not agree", units.ErrMismatch)

// Register adds the matrix operations to a:
//
//	Dense*Dense, Dense*VecDense, VecDense*Dense
//	float32|float64 * Dense|VecDense and the reverse
//	Dense±Dense, VecDense±VecDense
//
// Vector-matrix products treat the vector as a row vector.
func Register(a *quantity.Arithmetic) error {
	for _, register := range []func(*quantity.Arithmetic) error{
		func(a *quantity.Arithmetic) error { return quantity.RegisterMultiplyFunc(a, mulDense) },
		func(a *quantity.Arithmetic) error { return quantity.RegisterMultiplyFunc(a, mulDenseVec) },
		func(a *quantity.Arithmetic) error { return quantity.RegisterMultiplyFunc(a, mulVecDense) },

		func(a *quantity.Arithmetic) error { return quantity.RegisterMultiplyFunc(a, scaleDense[float64]) },
		func(a *quantity.Arithmetic) error { return quantity.RegisterMultiplyFunc(a, scaleDense[float32]) },
		func(a *quantity.Arithmetic) error { return quantity.RegisterMultiplyFunc(a, flip(scaleDense[float64])) },
		func(a *quantity.Arithmetic) error { return quantity.RegisterMultiplyFunc(a, flip(scaleDense[float32])) },

		func(a *quantity.Arithmetic) error { return quantity.RegisterMultiplyFunc(a, scaleVec[float64]) },
		func(a *quantity.Arithmetic) error { return quantity.RegisterMultiplyFunc(a, scaleVec[float32]) },
		func(a *quantity.Arithmetic) error { return quantity.RegisterMultiplyFunc(a, flip(scaleVec[float64])) },
		func(a *quantity.Arithmetic) error { return quantity.RegisterMultiplyFunc(a, flip(scaleVec[float32])) },

		func(a *quantity.Arithmetic) error { return quantity.RegisterAddFunc(a, addDense) },
		func(a *quantity.Arithmetic) error { return quantity.RegisterSubtractFunc(a, subDense) },
		func(a *quantity.Arithmetic) error { return quantity.RegisterAddFunc(a, addVec) },
		func(a *quantity.Arithmetic) error { return quantity.RegisterSubtractFunc(a, subVec) },
	} {
		if err := register(a); err != nil {
			return err
		}
	}
	return nil
}

// Format renders m compactly for display.
func Format(m mat.Matrix) string {
	return fmt.Sprintf("%v", mat.Formatted(m, mat.Squeeze()))
}

func flip[L, R, V any](fn func(L, R) (V, error)) func(R, L) (V, error) {
	return func(r R, l L) (V, error) { return fn(l, r) }
}

func mulDense(l, r *mat.Dense) (*mat.Dense, error) {
	if err := nonEmpty(l, r); err != nil {
		return nil, err
	}
	lr, lc := l.Dims()
	rr, rc := r.Dims()
	if lc != rr {
		return nil, fmt.Errorf("%w: %dx%d * %dx%d", ErrShape, lr, lc, rr, rc)
	}
	var out mat.Dense
	out.Mul(l, r)
	return &out, nil
}

func mulDenseVec(m *mat.Dense, v *mat.VecDense) (*mat.VecDense, error) {
	if err := nonEmpty(m, v); err != nil {
		return nil, err
	}
	r, c := m.Dims()
	if c != v.Len() {
		return nil, fmt.Errorf("%w: %dx%d * %d", ErrShape, r, c, v.Len())
	}
	var out mat.VecDense
	out.MulVec(m, v)
	return &out, nil
}

func mulVecDense(v *mat.VecDense, m *mat.Dense) (*mat.VecDense, error) {
	if err := nonEmpty(v, m); err != nil {
		return nil, err
	}
	r, c := m.Dims()
	if r != v.Len() {
		return nil, fmt.Errorf("%w: %d * %dx%d", ErrShape, v.Len(), r, c)
	}
	var out mat.VecDense
	out.MulVec(m.T(), v)
	return &out, nil
}

func scaleDense[S float32 | float64](s S, m *mat.Dense) (*mat.Dense, error) {
	if err := nonEmpty(m); err != nil {
		return nil, err
	}
	var out mat.Dense
	out.Scale(float64(s), m)
	return &out, nil
}

func scaleVec[S float32 | float64](s S, v *mat.VecDense) (*mat.VecDense, error) {
	if err := nonEmpty(v); err != nil {
		return nil, err
	}
	var out mat.VecDense
	out.ScaleVec(float64(s), v)
	return &out, nil
}

// emptier is implemented by *mat.Dense and *mat.VecDense. Empty values have
// no shape, and gonum panics when they are used as operands.
type emptier interface {
	IsEmpty() bool
}

type operand interface {
	mat.Matrix
	emptier
}

func nonEmpty(operands ...emptier) error {
	for _, m := range operands {
		if m.IsEmpty() {
			return fmt.Errorf("%w: empty operand", ErrShape)
		}
	}
	return nil
}

func sameShape(l, r operand) error {
	if err := nonEmpty(l, r); err != nil {
		return err
	}
	lr, lc := l.Dims()
	rr, rc := r.Dims()
	if lr != rr || lc != rc {
		return fmt.Errorf("%w: %dx%d and %dx%d", ErrShape, lr, lc, rr, rc)
	}
	return nil
}

func addDense(l, r *mat.Dense) (*mat.Dense, error) {
	if err := sameShape(l, r); err != nil {
		return nil, err
	}
	var out mat.Dense
	out.Add(l, r)
	return &out, nil
}

func subDense(l, r *mat.Dense) (*mat.Dense, error) {
	if err := sameShape(l, r); err != nil {
		return nil, err
	}
	var out mat.Dense
	out.Sub(l, r)
	return &out, nil
}

func addVec(l, r *mat.VecDense) (*mat.VecDense, error) {
	if err := sameShape(l, r); err != nil {
		return nil, err
	}
	var out mat.VecDense
	out.AddVec(l, r)
	return &out, nil
}

func subVec(l, r *mat.VecDense) (*mat.VecDense, error) {
	if err := sameShape(l, r); err != nil {
		return nil, err
	}
	var out mat.VecDense
	out.SubVec(l, r)
	return &out, nil
}
