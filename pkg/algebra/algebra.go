// Package algebra implements products of factors raised to integer powers.
//
// It is the engine shared by compound units and compound dimensions. A compound
// is a multiset of atomic factors with non-zero exponents. Folding a compound into
// another merges exponents instead of nesting, so every compound stays exactly one
// level deep and equality is independent of the order in which factors were
// combined.
package algebra

import (
	"sort"
	"strconv"
	"strings"
)

// Factor is an element that can be raised to a power inside a compound.
//
// Atomic factors compare by identity, so implementations are pointer types.
// Key must be unique per atomic factor; compounds derive their key from it.
type Factor interface {
	comparable
	Key() string
}

// Expander is implemented by compound values. When a value implementing
// Expander is folded into a compound its factors are merged rather than stored
// as a single nested factor.
type Expander[T Factor] interface {
	Factors() Factors[T]
}

// Term is a factor raised to a power.
type Term[T Factor] struct {
	Factor T
	Power  int
}

// Factors is an immutable multiset mapping atomic factors to exponents.
// It never holds the identity value or a zero exponent.
type Factors[T Factor] struct {
	powers map[T]int
}

// Len returns the number of distinct factors.
func (f Factors[T]) Len() int {
	return len(f.powers)
}

// Power returns the exponent of factor, zero if absent.
func (f Factors[T]) Power(factor T) int {
	return f.powers[factor]
}

// Terms returns the factors ordered by key.
func (f Factors[T]) Terms() []Term[T] {
	terms := make([]Term[T], 0, len(f.powers))
	for factor, power := range f.powers {
		terms = append(terms, Term[T]{Factor: factor, Power: power})
	}
	sort.Slice(terms, func(i, j int) bool {
		return terms[i].Factor.Key() < terms[j].Factor.Key()
	})
	return terms
}

// Equal reports whether both multisets hold the same factors at the same powers.
func (f Factors[T]) Equal(other Factors[T]) bool {
	if len(f.powers) != len(other.powers) {
		return false
	}
	for factor, power := range f.powers {
		if p, ok := other.powers[factor]; !ok || p != power {
			return false
		}
	}
	return true
}

// Key returns a canonical identity string for the multiset. Two multisets have
// the same key iff they are Equal.
func (f Factors[T]) Key() string {
	terms := f.Terms()
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.Factor.Key() + "^" + strconv.Itoa(t.Power)
	}
	return strings.Join(parts, "*")
}

func (f Factors[T]) clone() map[T]int {
	powers := make(map[T]int, len(f.powers))
	for factor, power := range f.powers {
		powers[factor] = power
	}
	return powers
}

// Algebra multiplies, divides, inverts and simplifies compounds of T.
type Algebra[T Factor] struct {
	identity T
	wrap     func(Factors[T]) T
}

// New creates the algebra for T. identity is the value an empty compound
// collapses to; wrap turns a multiset into the concrete compound type, which
// must itself implement Expander[T].
//
// New panics when identity is the zero value or wrap is nil. Both are static
// wiring mistakes that cannot be recovered from at runtime.
func New[T Factor](identity T, wrap func(Factors[T]) T) *Algebra[T] {
	var zero T
	if identity == zero {
		panic("algebra: identity must not be the zero value")
	}
	if wrap == nil {
		panic("algebra: wrap must not be nil")
	}
	return &Algebra[T]{identity: identity, wrap: wrap}
}

// Identity returns the identity value.
func (a *Algebra[T]) Identity() T {
	return a.identity
}

// Of builds a multiset from terms, unrolling compound factors.
func (a *Algebra[T]) Of(terms ...Term[T]) Factors[T] {
	powers := make(map[T]int, len(terms))
	for _, t := range terms {
		a.fold(powers, t.Factor, t.Power)
	}
	return Factors[T]{powers: powers}
}

// Fold returns a copy of self with every factor folded in at power.
func (a *Algebra[T]) Fold(self Factors[T], power int, factors ...T) Factors[T] {
	powers := self.clone()
	for _, factor := range factors {
		a.fold(powers, factor, power)
	}
	return Factors[T]{powers: powers}
}

// Product folds terms into a new multiset and simplifies the result.
func (a *Algebra[T]) Product(terms ...Term[T]) T {
	return a.Simplify(a.Of(terms...))
}

// Multiply returns self multiplied by factors, simplified.
func (a *Algebra[T]) Multiply(self Factors[T], factors ...T) T {
	if a.allIdentity(factors) {
		return a.Simplify(self)
	}
	return a.Simplify(a.Fold(self, 1, factors...))
}

// Divide returns self divided by factors, simplified.
func (a *Algebra[T]) Divide(self Factors[T], factors ...T) T {
	if a.allIdentity(factors) {
		return a.Simplify(self)
	}
	return a.Simplify(a.Fold(self, -1, factors...))
}

// Inverse negates every exponent of self and simplifies.
func (a *Algebra[T]) Inverse(self Factors[T]) T {
	powers := make(map[T]int, len(self.powers))
	for factor, power := range self.powers {
		powers[factor] = -power
	}
	return a.Simplify(Factors[T]{powers: powers})
}

// Simplify returns the smallest representation of self: the identity for an
// empty multiset, the bare factor for a single factor at power one, and the
// wrapped compound otherwise.
func (a *Algebra[T]) Simplify(self Factors[T]) T {
	switch len(self.powers) {
	case 0:
		return a.identity
	case 1:
		for factor, power := range self.powers {
			if factor == a.identity {
				return a.identity
			}
			if power == 1 {
				return factor
			}
		}
	}
	return a.wrap(self)
}

// Render formats self as NUM/DEN. Factors are rendered as "sym" or "sym^n",
// joined with "*" and sorted by their rendered form. A group is
// parenthesized next to a "/" when its exponents sum to more than one, so
// kg/m^3 renders as "kg/(m^3)".
func (a *Algebra[T]) Render(self Factors[T], render func(T) string) string {
	var num, den []string
	var dividends, divisors int
	for factor, power := range self.powers {
		if power > 0 {
			num = append(num, renderTerm(render(factor), power))
			dividends += power
		} else {
			den = append(den, renderTerm(render(factor), -power))
			divisors -= power
		}
	}
	sort.Strings(num)
	sort.Strings(den)

	switch {
	case len(num) > 0 && len(den) > 0:
		return group(num, dividends) + "/" + group(den, divisors)
	case len(num) > 0:
		return strings.Join(num, "*")
	case len(den) > 0:
		return "1/" + group(den, divisors)
	default:
		return render(a.identity)
	}
}

func (a *Algebra[T]) fold(powers map[T]int, factor T, power int) {
	if power == 0 || factor == a.identity {
		return
	}
	if e, ok := any(factor).(Expander[T]); ok {
		for f, p := range e.Factors().powers {
			a.fold(powers, f, p*power)
		}
		return
	}
	if n := powers[factor] + power; n != 0 {
		powers[factor] = n
	} else {
		delete(powers, factor)
	}
}

func (a *Algebra[T]) allIdentity(factors []T) bool {
	for _, f := range factors {
		if f != a.identity {
			return false
		}
	}
	return true
}

func renderTerm(symbol string, power int) string {
	if power == 1 {
		return symbol
	}
	return symbol + "^" + strconv.Itoa(power)
}

// group joins parts, parenthesized when the group's exponents sum to more
// than one.
func group(parts []string, exponents int) string {
	joined := strings.Join(parts, "*")
	if exponents > 1 {
		return "(" + joined + ")"
	}
	return joined
}
