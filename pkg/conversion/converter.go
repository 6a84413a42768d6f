// Package conversion implements numeric converters between units of the same
// dimension.
package conversion

import (
	"fmt"

	"github.com/zjrosen/quants/pkg/units"
)

var (
	// ErrZeroScale is returned when a scaled converter would not be invertible.
	ErrZeroScale = fmt.Errorf("%w: converter scale must not be zero", units.ErrConfiguration)

	// ErrChainBroken is returned when a stage added to a composite converter does
	// not start where the previous stage ends.
	ErrChainBroken = fmt.Errorf("%w: converter chain is broken", units.ErrConfiguration)
)

// Converter maps numeric values from Source to Target.
type Converter interface {
	Source() units.Unit
	Target() units.Unit
	Convert(v float64) float64
	ConvertFloat32(v float32) float32
	// Inversed returns the converter from Target back to Source.
	Inversed() Converter
}

// ScaledConverter applies an affine map target = scale*source + offset.
type ScaledConverter struct {
	scale  float64
	offset float64
	source units.Unit
	target units.Unit
}

// NewScaled creates a scaled converter. scale must not be zero.
func NewScaled(scale, offset float64, source, target units.Unit) (*ScaledConverter, error) {
	if scale == 0 {
		return nil, fmt.Errorf("%w: %s -> %s", ErrZeroScale, symbol(source), symbol(target))
	}
	return &ScaledConverter{scale: scale, offset: offset, source: source, target: target}, nil
}

// MustScaled is like NewScaled but panics on error. It is meant for static
// catalog definitions.
func MustScaled(scale, offset float64, source, target units.Unit) *ScaledConverter {
	c, err := NewScaled(scale, offset, source, target)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *ScaledConverter) Source() units.Unit { return c.source }
func (c *ScaledConverter) Target() units.Unit { return c.target }
func (c *ScaledConverter) Scale() float64     { return c.scale }
func (c *ScaledConverter) Offset() float64    { return c.offset }

func (c *ScaledConverter) Convert(v float64) float64 {
	return c.scale*v + c.offset
}

// ConvertFloat32 computes in float64 and rounds the result once.
func (c *ScaledConverter) ConvertFloat32(v float32) float32 {
	return float32(c.Convert(float64(v)))
}

// Inversed returns the converter with scale 1/s and offset -o/s.
func (c *ScaledConverter) Inversed() Converter {
	return &ScaledConverter{
		scale:  1 / c.scale,
		offset: -c.offset / c.scale,
		source: c.target,
		target: c.source,
	}
}

func (c *ScaledConverter) String() string {
	if c.offset == 0 {
		return fmt.Sprintf("%s -> %s: x*%g", symbol(c.source), symbol(c.target), c.scale)
	}
	return fmt.Sprintf("%s -> %s: x*%g%+g", symbol(c.source), symbol(c.target), c.scale, c.offset)
}

func symbol(u units.Unit) string {
	if u == nil {
		return "<nil>"
	}
	return u.Symbol()
}
