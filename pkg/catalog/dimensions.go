// Package catalog defines the standard dimensions and units, the SI unit
// system built from them and the arithmetic for Go's numeric types.
package catalog

import (
	"fmt"
	"strings"

	"github.com/zjrosen/quants/pkg/units"
)

// Base dimensions.
var (
	Mass              = units.NewBaseDimension("M", "mass")
	Length            = units.NewBaseDimension("L", "length")
	Time              = units.NewBaseDimension("T", "time")
	ElectricCurrent   = units.NewBaseDimension("I", "electric current")
	Temperature       = units.NewBaseDimension("Θ", "temperature")
	LuminousIntensity = units.NewBaseDimension("J", "luminous intensity")
	AmountOfSubstance = units.NewBaseDimension("N", "amount of substance")
)

// Derived dimensions.
var (
	Area     = units.NewDimensionCreator(Length, Length).Create()
	Volume   = units.NewDimensionCreator(Area, Length).Create()
	Speed    = units.NewDimensionCreator(Length).Divide(Time).Create()
	Force    = units.NewDimensionCreator(Length, Mass).Divide(Time, Time).Create()
	Pressure = units.NewDimensionCreator(Force).Divide(Area).Create()
	Energy   = units.NewDimensionCreator(Force, Length).Create()
)

type namedDimension struct {
	name      string
	dimension units.Dimension
}

var dimensionNames = []namedDimension{
	{"mass", Mass},
	{"length", Length},
	{"time", Time},
	{"electric current", ElectricCurrent},
	{"temperature", Temperature},
	{"luminous intensity", LuminousIntensity},
	{"amount of substance", AmountOfSubstance},
	{"area", Area},
	{"volume", Volume},
	{"speed", Speed},
	{"force", Force},
	{"pressure", Pressure},
	{"energy", Energy},
}

// DimensionName returns the catalog name of d, or its symbol when d is not a
// catalog dimension.
func DimensionName(d units.Dimension) string {
	for _, nd := range dimensionNames {
		if nd.dimension.Equal(d) {
			return nd.name
		}
	}
	return d.Symbol()
}

// LookupDimension finds a catalog dimension by name (case-insensitive) or by
// symbol, e.g. "area" or "L^2".
func LookupDimension(s string) (units.Dimension, error) {
	for _, nd := range dimensionNames {
		if strings.EqualFold(nd.name, s) || nd.dimension.Symbol() == s {
			return nd.dimension, nil
		}
	}
	return nil, fmt.Errorf("%w: dimension %q", ErrUnknownSymbol, s)
}
