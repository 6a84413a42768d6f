package quantity

import (
	"fmt"

	"github.com/zjrosen/quants/pkg/conversion"
	"github.com/zjrosen/quants/pkg/units"
)

// ConverterSource creates converters between units, e.g. a
// *system.UnitSystem.
type ConverterSource interface {
	CreateConverter(source, target units.Unit) (conversion.Converter, error)
}

// Convert expresses q in target. q is returned unchanged when it is already
// in target.
func Convert[T float32 | float64](q Quantity[T], target units.Unit, converters ConverterSource) (Quantity[T], error) {
	if units.SameUnit(q.Unit(), target) {
		return q, nil
	}
	c, err := converters.CreateConverter(q.Unit(), target)
	if err != nil {
		return Quantity[T]{}, fmt.Errorf("converting %s to %q: %w", q, target.Symbol(), err)
	}

	var v T
	switch x := any(q.value).(type) {
	case float32:
		v = T(c.ConvertFloat32(x))
	case float64:
		v = T(c.Convert(x))
	}
	return New(v, target), nil
}
