package matrix

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/zjrosen/quants/pkg/catalog"
	"github.com/zjrosen/quants/pkg/quantity"
	"github.com/zjrosen/quants/pkg/units"
)

func newArithmetic(t *testing.T) *quantity.Arithmetic {
	t.Helper()
	a, err := catalog.NewStandardArithmetic()
	require.NoError(t, err)
	require.NoError(t, Register(a))
	return a
}

func TestRegister_Twice(t *testing.T) {
	a := newArithmetic(t)
	require.ErrorIs(t, Register(a), quantity.ErrOperationExists)
}

func TestMultiply_DenseDense(t *testing.T) {
	a := newArithmetic(t)
	l := quantity.New(mat.NewDense(2, 2, []float64{1, 2, 3, 4}), catalog.Meter)
	r := quantity.New(mat.NewDense(2, 1, []float64{5, 6}), catalog.Second)

	got, err := a.Multiply(l, r)
	require.NoError(t, err)

	q := got.(quantity.Quantity[*mat.Dense])
	require.Equal(t, []float64{17, 39}, q.Value().RawMatrix().Data)
	require.True(t, q.Unit().Equal(units.Multiply(catalog.Meter, catalog.Second)))
}

func TestMultiply_DenseDenseShapeMismatch(t *testing.T) {
	a := newArithmetic(t)
	l := quantity.New(mat.NewDense(2, 3, nil), catalog.Meter)
	r := quantity.New(mat.NewDense(2, 3, nil), catalog.Second)

	_, err := a.Multiply(l, r)
	require.ErrorIs(t, err, ErrShape)
	require.ErrorIs(t, err, units.ErrMismatch)
}

func TestMultiply_SameUnitSquares(t *testing.T) {
	a := newArithmetic(t)
	m := quantity.New(mat.NewDense(1, 1, []float64{3}), catalog.Meter)

	got, err := a.Multiply(m, m)
	require.NoError(t, err)
	require.True(t, got.Unit().Equal(catalog.SquareMeter))
}

func TestMultiply_MatrixVector(t *testing.T) {
	a := newArithmetic(t)
	m := quantity.New(mat.NewDense(2, 2, []float64{1, 2, 3, 4}), catalog.Kilogram)
	v := quantity.New(mat.NewVecDense(2, []float64{1, 1}), catalog.Meter)

	got, err := a.Multiply(m, v)
	require.NoError(t, err)
	require.Equal(t, []float64{3, 7}, got.(quantity.Quantity[*mat.VecDense]).Value().RawVector().Data)

	got, err = a.Multiply(v, m)
	require.NoError(t, err)
	require.Equal(t, []float64{4, 6}, got.(quantity.Quantity[*mat.VecDense]).Value().RawVector().Data)

	_, err = a.Multiply(quantity.New(mat.NewVecDense(3, nil), catalog.Meter), m)
	require.ErrorIs(t, err, ErrShape)
}

func TestMultiply_Scalars(t *testing.T) {
	a := newArithmetic(t)
	m := quantity.New(mat.NewDense(1, 2, []float64{1, 2}), catalog.Meter)
	v := quantity.New(mat.NewVecDense(2, []float64{1, 2}), catalog.Meter)

	for _, s := range []quantity.Base{quantity.New(2.0, catalog.Second), quantity.New(float32(2), catalog.Second)} {
		got, err := a.Multiply(s, m)
		require.NoError(t, err)
		require.Equal(t, []float64{2, 4}, got.(quantity.Quantity[*mat.Dense]).Value().RawMatrix().Data)

		got, err = a.Multiply(m, s)
		require.NoError(t, err)
		require.Equal(t, []float64{2, 4}, got.(quantity.Quantity[*mat.Dense]).Value().RawMatrix().Data)

		got, err = a.Multiply(s, v)
		require.NoError(t, err)
		require.Equal(t, []float64{2, 4}, got.(quantity.Quantity[*mat.VecDense]).Value().RawVector().Data)

		got, err = a.Multiply(v, s)
		require.NoError(t, err)
		require.Equal(t, []float64{2, 4}, got.(quantity.Quantity[*mat.VecDense]).Value().RawVector().Data)
	}
}

func TestAddSubtract(t *testing.T) {
	a := newArithmetic(t)
	l := quantity.New(mat.NewDense(1, 2, []float64{5, 7}), catalog.Meter)
	r := quantity.New(mat.NewDense(1, 2, []float64{1, 2}), catalog.Meter)

	got, err := a.Add(l, r)
	require.NoError(t, err)
	require.Equal(t, []float64{6, 9}, got.(quantity.Quantity[*mat.Dense]).Value().RawMatrix().Data)
	require.Same(t, catalog.Meter, got.Unit())

	got, err = a.Subtract(l, r)
	require.NoError(t, err)
	require.Equal(t, []float64{4, 5}, got.(quantity.Quantity[*mat.Dense]).Value().RawMatrix().Data)

	lv := quantity.New(mat.NewVecDense(2, []float64{5, 7}), catalog.Meter)
	rv := quantity.New(mat.NewVecDense(2, []float64{1, 2}), catalog.Meter)
	got, err = a.Subtract(lv, rv)
	require.NoError(t, err)
	require.Equal(t, []float64{4, 5}, got.(quantity.Quantity[*mat.VecDense]).Value().RawVector().Data)

	_, err = a.Add(l, quantity.New(mat.NewDense(2, 1, []float64{1, 2}), catalog.Meter))
	require.ErrorIs(t, err, ErrShape)

	_, err = a.Add(l, quantity.New(mat.NewDense(1, 2, []float64{1, 2}), catalog.Centimeter))
	require.ErrorIs(t, err, quantity.ErrUnitsDiffer)
}

func TestEmptyOperandsRejected(t *testing.T) {
	a := newArithmetic(t)
	dense := quantity.New(mat.NewDense(1, 2, []float64{1, 2}), catalog.Meter)
	vec := quantity.New(mat.NewVecDense(2, []float64{1, 2}), catalog.Meter)
	emptyDense := quantity.New(&mat.Dense{}, catalog.Meter)
	emptyVec := quantity.New(&mat.VecDense{}, catalog.Meter)
	scalar := quantity.New(2.0, catalog.Second)

	for name, op := range map[string]func() (quantity.Base, error){
		"dense*empty":   func() (quantity.Base, error) { return a.Multiply(dense, emptyDense) },
		"empty*dense":   func() (quantity.Base, error) { return a.Multiply(emptyDense, dense) },
		"dense*emptyv":  func() (quantity.Base, error) { return a.Multiply(dense, emptyVec) },
		"emptyv*dense":  func() (quantity.Base, error) { return a.Multiply(emptyVec, dense) },
		"scalar*empty":  func() (quantity.Base, error) { return a.Multiply(scalar, emptyDense) },
		"emptyv*scalar": func() (quantity.Base, error) { return a.Multiply(emptyVec, scalar) },
		"dense+empty":   func() (quantity.Base, error) { return a.Add(dense, emptyDense) },
		"empty-dense":   func() (quantity.Base, error) { return a.Subtract(emptyDense, dense) },
		"vec+emptyv":    func() (quantity.Base, error) { return a.Add(vec, emptyVec) },
		"emptyv-emptyv": func() (quantity.Base, error) { return a.Subtract(emptyVec, emptyVec) },
	} {
		t.Run(name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() { _, err = op() })
			require.ErrorIs(t, err, ErrShape)
			require.ErrorIs(t, err, units.ErrMismatch)
		})
	}
}

func TestFormat(t *testing.T) {
	s := Format(mat.NewDense(1, 2, []float64{1, 7}))
	require.Contains(t, s, "1")
	require.Contains(t, s, "7")
}
