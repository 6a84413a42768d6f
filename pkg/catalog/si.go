package catalog

import (
	"fmt"

	"github.com/zjrosen/quants/pkg/conversion"
	"github.com/zjrosen/quants/pkg/system"
	"github.com/zjrosen/quants/pkg/units"
)

type scaledUnit struct {
	source units.Unit
	unit   units.Unit
	scale  float64
	offset float64
}

type dimensionSetup struct {
	dimension units.Dimension
	base      units.Unit
	scaled    []scaledUnit
}

var siSetup = []dimensionSetup{
	{Mass, Kilogram, []scaledUnit{
		{Kilogram, Gram, 1000, 0},
		{Kilogram, Tonne, 1.0 / 1000, 0},
		{Kilogram, Pound, 1 / 0.45359237, 0},
	}},
	{Length, Meter, []scaledUnit{
		{Meter, Centimeter, 100, 0},
		{Meter, Decimeter, 10, 0},
		{Meter, Kilometer, 1.0 / 1000, 0},
		{Meter, Inch, 1 / 0.0254, 0},
		{Meter, Foot, 1 / 0.3048, 0},
	}},
	{Time, Second, []scaledUnit{
		{Second, Minute, 1.0 / 60, 0},
		{Minute, Hour, 1.0 / 60, 0},
		{Hour, Day, 1.0 / 24, 0},
	}},
	{ElectricCurrent, Ampere, nil},
	{Temperature, Kelvin, []scaledUnit{
		{Kelvin, Celsius, 1, -273.15},
		{Celsius, Fahrenheit, 9.0 / 5.0, 32},
	}},
	{LuminousIntensity, Candela, nil},
	{AmountOfSubstance, Mole, nil},
	{Area, SquareMeter, []scaledUnit{
		{SquareMeter, SquareKilometer, 1.0 / (1000 * 1000), 0},
		{SquareMeter, SquareCentimeter, 100 * 100, 0},
	}},
	{Volume, CubicMeter, []scaledUnit{
		{CubicMeter, Liter, 1000, 0},
	}},
	{Pressure, Pascal, nil},
	{Speed, MetersPerSecond, []scaledUnit{
		{MetersPerSecond, KilometersPerHour, 3.6, 0},
	}},
	{Force, Newton, nil},
	{Energy, Joule, nil},
}

// SIFactory creates the SI unit system over the catalog units.
type SIFactory struct {
	Options []system.Option
}

var _ system.Factory = SIFactory{}

func (f SIFactory) Create() (*system.UnitSystem, error) {
	si := system.New(f.Options...)
	for _, setup := range siSetup {
		if err := si.AddDimension(setup.dimension); err != nil {
			return nil, err
		}
		if err := si.AddBaseUnit(setup.base); err != nil {
			return nil, err
		}
		for _, s := range setup.scaled {
			c, err := conversion.NewScaled(s.scale, s.offset, s.source, s.unit)
			if err != nil {
				return nil, err
			}
			if err := si.AddScaledUnit(s.source, s.unit, c); err != nil {
				return nil, fmt.Errorf("adding %q to %s: %w", s.unit.Symbol(), DimensionName(setup.dimension), err)
			}
		}
	}
	return si, nil
}

// NewSI is shorthand for SIFactory{}.Create().
func NewSI(opts ...system.Option) (*system.UnitSystem, error) {
	return SIFactory{Options: opts}.Create()
}
