package conversion

import (
	"fmt"
	"strings"

	"github.com/zjrosen/quants/pkg/units"
)

// CompositeConverter applies a chain of converters in order. Each stage's
// target equals the next stage's source.
type CompositeConverter struct {
	stages []Converter
}

// NewComposite builds a composite from stages, checking every link.
func NewComposite(stages ...Converter) (*CompositeConverter, error) {
	c := &CompositeConverter{stages: make([]Converter, 0, len(stages))}
	for _, s := range stages {
		if err := c.Add(s); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add appends a stage. The stage must start at the current Target.
func (c *CompositeConverter) Add(stage Converter) error {
	if n := len(c.stages); n > 0 {
		last := c.stages[n-1]
		if !units.SameUnit(last.Target(), stage.Source()) {
			return fmt.Errorf("%w: stage %d starts at %q, previous ends at %q",
				ErrChainBroken, n, symbol(stage.Source()), symbol(last.Target()))
		}
	}
	c.stages = append(c.stages, stage)
	return nil
}

// Len returns the number of stages.
func (c *CompositeConverter) Len() int { return len(c.stages) }

// Stages returns a copy of the stages in application order.
func (c *CompositeConverter) Stages() []Converter {
	out := make([]Converter, len(c.stages))
	copy(out, c.stages)
	return out
}

// Source returns the first stage's source, or nil for an empty chain.
func (c *CompositeConverter) Source() units.Unit {
	if len(c.stages) == 0 {
		return nil
	}
	return c.stages[0].Source()
}

// Target returns the last stage's target, or nil for an empty chain.
func (c *CompositeConverter) Target() units.Unit {
	if len(c.stages) == 0 {
		return nil
	}
	return c.stages[len(c.stages)-1].Target()
}

func (c *CompositeConverter) Convert(v float64) float64 {
	for _, s := range c.stages {
		v = s.Convert(v)
	}
	return v
}

func (c *CompositeConverter) ConvertFloat32(v float32) float32 {
	for _, s := range c.stages {
		v = s.ConvertFloat32(v)
	}
	return v
}

// Inversed returns a composite that applies the inverse of every stage in
// reverse order.
func (c *CompositeConverter) Inversed() Converter {
	inv := &CompositeConverter{stages: make([]Converter, len(c.stages))}
	for i, s := range c.stages {
		inv.stages[len(c.stages)-1-i] = s.Inversed()
	}
	return inv
}

func (c *CompositeConverter) String() string {
	if len(c.stages) == 0 {
		return "identity"
	}
	parts := make([]string, 0, len(c.stages)+1)
	parts = append(parts, symbol(c.Source()))
	for _, s := range c.stages {
		parts = append(parts, symbol(s.Target()))
	}
	return strings.Join(parts, " -> ")
}
