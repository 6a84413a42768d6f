package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zjrosen/quants/pkg/units"
)

var ErrUnknownSymbol = fmt.Errorf("%w: unknown symbol", units.ErrNotFound)

var allUnits = []units.Unit{
	Kilogram, Gram, Tonne, Pound,
	Meter, Decimeter, Centimeter, Kilometer, Inch, Foot,
	Second, Minute, Hour, Day,
	Ampere,
	Kelvin, Celsius, Fahrenheit,
	Candela,
	Mole,
	SquareMeter, SquareCentimeter, SquareKilometer,
	CubicMeter, Liter,
	MetersPerSecond, KilometersPerHour,
	Newton, Pascal, Joule,
}

// aliases are the conventional names of derived units.
var aliases = map[string]units.Unit{
	"m²":   SquareMeter,
	"cm²":  SquareCentimeter,
	"km²":  SquareKilometer,
	"m³":   CubicMeter,
	"L":    Liter,
	"l":    Liter,
	"kph":  KilometersPerHour,
	"C":    Celsius,
	"degC": Celsius,
	"F":    Fahrenheit,
	"degF": Fahrenheit,
	"N":    Newton,
	"Pa":   Pascal,
	"J":    Joule,
}

var bySymbol = index()

func index() map[string]units.Unit {
	m := make(map[string]units.Unit, len(allUnits)+len(aliases))
	for _, u := range allUnits {
		m[u.Symbol()] = u
	}
	for alias, u := range aliases {
		m[alias] = u
	}
	return m
}

// Lookup returns the catalog unit with symbol s. Both rendered symbols such
// as "km/h" and aliases such as "Pa" are accepted. Symbols are matched
// exactly; expressions are not parsed.
func Lookup(s string) (units.Unit, error) {
	if u, ok := bySymbol[s]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("%w: unit %q", ErrUnknownSymbol, s)
}

// Units returns every catalog unit.
func Units() []units.Unit {
	out := make([]units.Unit, len(allUnits))
	copy(out, allUnits)
	return out
}

// Aliases returns the aliases of u, sorted.
func Aliases(u units.Unit) []string {
	var out []string
	for alias, v := range aliases {
		if v.Equal(u) {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}

// IsUnknownSymbol reports whether err came from a failed lookup.
func IsUnknownSymbol(err error) bool {
	return errors.Is(err, ErrUnknownSymbol)
}
