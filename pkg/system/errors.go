package system

import (
	"fmt"

	"github.com/zjrosen/quants/pkg/units"
)

var (
	ErrDimensionExists        = fmt.Errorf("%w: dimension already registered", units.ErrConfiguration)
	ErrDimensionNotRegistered = fmt.Errorf("%w: dimension not registered", units.ErrNotFound)
	ErrBaseUnitNotSet         = fmt.Errorf("%w: base unit not set", units.ErrConfiguration)
	ErrRelationExists         = fmt.Errorf("%w: relation between units already registered", units.ErrConfiguration)
	ErrUnitExists             = fmt.Errorf("%w: unit already in conversion graph", units.ErrConfiguration)
	ErrWrongDimension         = fmt.Errorf("%w: unit belongs to another dimension", units.ErrMismatch)
	ErrConverterMismatch      = fmt.Errorf("%w: converter does not map the given units", units.ErrMismatch)
	ErrSameUnit               = fmt.Errorf("%w: source and target unit are equal", units.ErrMismatch)
	ErrUnitNotFound           = fmt.Errorf("%w: unit not in conversion graph", units.ErrNotFound)
	ErrNoConverter            = fmt.Errorf("%w: no converter between units", units.ErrNotFound)
	ErrNotAdjacent            = fmt.Errorf("%w: units are not adjacent", units.ErrInvariant)
)
