package catalog

import "github.com/zjrosen/quants/pkg/units"

// Mass.
var (
	Kilogram = units.NewBaseUnit("kg", "kilogram", Mass)
	Gram     = units.NewBaseUnit("g", "gram", Mass)
	Tonne    = units.NewBaseUnit("t", "tonne", Mass)
	Pound    = units.NewBaseUnit("lb", "pound", Mass)
)

// Length.
var (
	Meter      = units.NewBaseUnit("m", "metre", Length)
	Decimeter  = units.NewBaseUnit("dm", "decimetre", Length)
	Centimeter = units.NewBaseUnit("cm", "centimetre", Length)
	Kilometer  = units.NewBaseUnit("km", "kilometre", Length)
	Inch       = units.NewBaseUnit("in", "inch", Length)
	Foot       = units.NewBaseUnit("ft", "foot", Length)
)

// Time.
var (
	Second = units.NewBaseUnit("s", "second", Time)
	Minute = units.NewBaseUnit("min", "minute", Time)
	Hour   = units.NewBaseUnit("h", "hour", Time)
	Day    = units.NewBaseUnit("d", "day", Time)
)

var (
	Ampere = units.NewBaseUnit("A", "ampere", ElectricCurrent)

	Kelvin     = units.NewBaseUnit("K", "kelvin", Temperature)
	Celsius    = units.NewBaseUnit("°C", "degree Celsius", Temperature)
	Fahrenheit = units.NewBaseUnit("°F", "degree Fahrenheit", Temperature)

	Candela = units.NewBaseUnit("cd", "candela", LuminousIntensity)
	Mole    = units.NewBaseUnit("mol", "mole", AmountOfSubstance)
)

// Derived units. Their symbols are the rendered compound, e.g. "m^2".
var (
	SquareMeter      = units.NewUnitCreator(Meter, Meter).Create()
	SquareCentimeter = units.NewUnitCreator(Centimeter, Centimeter).Create()
	SquareKilometer  = units.NewUnitCreator(Kilometer, Kilometer).Create()

	CubicMeter = units.NewUnitCreator(Meter, Meter, Meter).Create()
	Liter      = units.NewUnitCreator(Decimeter, Decimeter, Decimeter).Create()

	MetersPerSecond   = units.NewUnitCreator(Meter).Divide(Second).Create()
	KilometersPerHour = units.NewUnitCreator(Kilometer).Divide(Hour).Create()

	Newton = units.NewUnitCreator(Kilogram, Meter).Divide(Second, Second).Create()
	Pascal = units.NewUnitCreator(Newton).Divide(Meter, Meter).Create()
	Joule  = units.NewUnitCreator(Newton, Meter).Create()
)
