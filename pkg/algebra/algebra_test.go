package algebra

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// symbol is a minimal factor type: atoms are *atom, compounds are *compound.
// It is an ordinary interface, so it instantiates Factor without being a
// constraint itself.
type symbol interface {
	Key() string
	Name() string
}

var (
	_ symbol           = (*atom)(nil)
	_ Expander[symbol] = (*compound)(nil)
)

type atom struct{ name string }

func (a *atom) Key() string  { return a.name }
func (a *atom) Name() string { return a.name }

type compound struct{ factors Factors[symbol] }

func (c *compound) Key() string              { return c.factors.Key() }
func (c *compound) Name() string             { return testAlgebra.Render(c.factors, symbol.Name) }
func (c *compound) Factors() Factors[symbol] { return c.factors }

var (
	one         symbol = &atom{name: "1"}
	testAlgebra        = New[symbol](one, func(f Factors[symbol]) symbol { return &compound{factors: f} })
)

func equal(a, b symbol) bool {
	ca, aok := a.(*compound)
	cb, bok := b.(*compound)
	if aok && bok {
		return ca.factors.Equal(cb.factors)
	}
	return a == b
}

func mul(fs ...symbol) symbol {
	return testAlgebra.Multiply(testAlgebra.Of(), fs...)
}

func div(x symbol, fs ...symbol) symbol {
	return testAlgebra.Divide(testAlgebra.Of(Term[symbol]{Factor: x, Power: 1}), fs...)
}

func TestNew_PanicsOnZeroIdentity(t *testing.T) {
	require.Panics(t, func() {
		New[symbol](nil, func(f Factors[symbol]) symbol { return &compound{factors: f} })
	})
}

func TestNew_PanicsOnNilWrap(t *testing.T) {
	require.Panics(t, func() {
		New[symbol](one, nil)
	})
}

func TestSimplify_EmptyIsIdentity(t *testing.T) {
	require.Equal(t, one, testAlgebra.Simplify(testAlgebra.Of()))
}

func TestSimplify_SingleFactorAtPowerOne(t *testing.T) {
	a := &atom{name: "a"}
	require.Same(t, a, testAlgebra.Product(Term[symbol]{Factor: a, Power: 1}))
}

func TestSimplify_SingleFactorAtPowerTwoStaysCompound(t *testing.T) {
	a := &atom{name: "a"}
	got := testAlgebra.Product(Term[symbol]{Factor: a, Power: 2})
	c, ok := got.(*compound)
	require.True(t, ok)
	require.Equal(t, 2, c.factors.Power(a))
}

func TestFold_DropsIdentityAndZeroPowers(t *testing.T) {
	a := &atom{name: "a"}
	f := testAlgebra.Of(
		Term[symbol]{Factor: one, Power: 3},
		Term[symbol]{Factor: a, Power: 0},
	)
	require.Equal(t, 0, f.Len())
}

func TestMultiply_UnrollsCompounds(t *testing.T) {
	a, b, c := &atom{name: "a"}, &atom{name: "b"}, &atom{name: "c"}
	bc := mul(b, c)
	got := mul(a, bc).(*compound)

	require.Equal(t, 3, got.factors.Len())
	for _, term := range got.factors.Terms() {
		_, nested := term.Factor.(*compound)
		require.False(t, nested, "compound factors must never be nested")
	}
}

func TestDivide_CancelsToIdentity(t *testing.T) {
	a, b := &atom{name: "a"}, &atom{name: "b"}
	ab := mul(a, b)
	require.Equal(t, one, div(ab, a, b))
}

func TestInverse_NegatesPowers(t *testing.T) {
	a, b := &atom{name: "a"}, &atom{name: "b"}
	inv := testAlgebra.Inverse(testAlgebra.Of(
		Term[symbol]{Factor: a, Power: 2},
		Term[symbol]{Factor: b, Power: -1},
	)).(*compound)
	require.Equal(t, -2, inv.factors.Power(a))
	require.Equal(t, 1, inv.factors.Power(b))
}

func TestInverse_OfSingleReciprocalIsBareFactor(t *testing.T) {
	a := &atom{name: "a"}
	require.Same(t, a, testAlgebra.Inverse(testAlgebra.Of(Term[symbol]{Factor: a, Power: -1})))
}

func TestKey_IndependentOfOrder(t *testing.T) {
	a, b := &atom{name: "a"}, &atom{name: "b"}
	require.Equal(t, mul(a, b).Key(), mul(b, a).Key())
	require.NotEqual(t, mul(a, a).Key(), mul(a, b).Key())
}

func TestRender(t *testing.T) {
	a, b, c := &atom{name: "a"}, &atom{name: "b"}, &atom{name: "c"}
	tests := []struct {
		name  string
		terms []Term[symbol]
		want  string
	}{
		{"empty renders identity", nil, "1"},
		{"numerator only", []Term[symbol]{{b, 1}, {a, 1}}, "a*b"},
		{"power", []Term[symbol]{{a, 2}}, "a^2"},
		{"single over single", []Term[symbol]{{a, 1}, {b, -1}}, "a/b"},
		{"group over power", []Term[symbol]{{a, 1}, {c, 1}, {b, -2}}, "(a*c)/(b^2)"},
		{"single over group", []Term[symbol]{{a, 1}, {c, -1}, {b, -1}}, "a/(b*c)"},
		{"power over single", []Term[symbol]{{a, 2}, {b, -1}}, "(a^2)/b"},
		{"single over power", []Term[symbol]{{a, 1}, {b, -3}}, "a/(b^3)"},
		{"denominator only", []Term[symbol]{{a, -1}}, "1/a"},
		{"denominator power", []Term[symbol]{{a, -2}}, "1/(a^2)"},
		{"denominator group", []Term[symbol]{{a, -1}, {b, -3}}, "1/(a*b^3)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := testAlgebra.Render(testAlgebra.Of(tt.terms...), symbol.Name)
			require.Equal(t, tt.want, got)
		})
	}
}

// atoms draws a small pool of atoms so properties can reuse the same factor.
func atoms(t *rapid.T) []symbol {
	n := rapid.IntRange(1, 5).Draw(t, "atoms")
	pool := make([]symbol, n)
	for i := range pool {
		pool[i] = &atom{name: string(rune('a' + i))}
	}
	return pool
}

func TestProperty_IdentityIsNeutral(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pool := atoms(t)
		x := rapid.SampledFrom(pool).Draw(t, "x")
		require.Same(t, x, mul(x, one))
		require.Same(t, x, div(x, one))
	})
}

func TestProperty_MultiplyIsCommutative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pool := atoms(t)
		a := rapid.SampledFrom(pool).Draw(t, "a")
		b := rapid.SampledFrom(pool).Draw(t, "b")
		require.True(t, equal(mul(a, b), mul(b, a)))
	})
}

func TestProperty_DivisionCancels(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pool := atoms(t)
		a := rapid.SampledFrom(pool).Draw(t, "a")
		b := rapid.SampledFrom(pool).Draw(t, "b")
		require.True(t, equal(a, div(mul(a, b), b)))
		require.True(t, equal(b, div(mul(a, b), a)))
	})
}

func TestProperty_FlatteningIsAssociative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pool := atoms(t)
		a := rapid.SampledFrom(pool).Draw(t, "a")
		b := rapid.SampledFrom(pool).Draw(t, "b")
		c := rapid.SampledFrom(pool).Draw(t, "c")
		require.True(t, equal(mul(mul(a, b), mul(b, a)), mul(a, a, b, b)))
		require.True(t, equal(mul(a, mul(b, c)), mul(mul(a, b), c)))
		require.True(t, equal(mul(a, mul(b, c)), mul(b, mul(a, c))))
	})
}

func TestProperty_InverseRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pool := atoms(t)
		n := rapid.IntRange(1, 6).Draw(t, "terms")
		terms := make([]Term[symbol], n)
		for i := range terms {
			terms[i] = Term[symbol]{
				Factor: rapid.SampledFrom(pool).Draw(t, "factor"),
				Power:  rapid.IntRange(-3, 3).Draw(t, "power"),
			}
		}
		x := testAlgebra.Product(terms...)
		inv := testAlgebra.Inverse(testAlgebra.Of(Term[symbol]{Factor: x, Power: 1}))
		require.Equal(t, one, mul(x, inv))
	})
}
