package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/zjrosen/quants/pkg/catalog"
	"github.com/zjrosen/quants/pkg/catalog/matrix"
	"github.com/zjrosen/quants/pkg/quantity"
	"github.com/zjrosen/quants/pkg/units"
)

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through conversions and quantity arithmetic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args, func(context.Context) error {
				return a.demo(a.printer(cmd))
			})
		},
	}
}

func (a *app) demo(p *printer) error {
	for _, section := range []struct {
		title string
		run   func(*printer) error
	}{
		{"Multiply three lengths to form a volume", a.demoVolume},
		{"Temperature conversion", a.demoTemperature},
		{"Density of the human body", a.demoDensity},
		{"Pressure under water", a.demoPressure},
		{"Divide pressure with pressure", a.demoSameUnits},
		{"Scale a matrix of lengths", a.demoMatrix},
	} {
		p.linef("--- %s ---", section.title)
		if err := section.run(p); err != nil {
			return fmt.Errorf("%s: %w", section.title, err)
		}
		p.linef("")
	}
	return nil
}

// chain folds quantities left to right with op.
func (a *app) chain(op string, qs ...quantity.Base) (quantity.Base, error) {
	acc := qs[0]
	for _, q := range qs[1:] {
		r, err := a.arithmetic.Apply(op, acc, q)
		if err != nil {
			return nil, err
		}
		acc = r
	}
	return acc, nil
}

func (a *app) show(p *printer, q quantity.Base) string {
	v, err := quantity.Float64(q)
	if err != nil {
		return q.String()
	}
	return p.quantity(v, q.Unit())
}

func (a *app) demoVolume(p *printer) error {
	side := quantity.New(1.0, catalog.Decimeter)
	volume, err := a.chain("*", side, side, side)
	if err != nil {
		return err
	}
	v, err := quantity.Float64(volume)
	if err != nil {
		return err
	}
	inCubicMeters, err := quantity.Convert(quantity.New(v, volume.Unit()), catalog.CubicMeter, a.system)
	if err != nil {
		return err
	}
	p.linef("%s*%s*%s = %s = %s", a.show(p, side), a.show(p, side), a.show(p, side),
		a.show(p, volume), a.show(p, inCubicMeters))
	return nil
}

func (a *app) demoTemperature(p *printer) error {
	celsius := quantity.New(20.0, catalog.Celsius)
	kelvin, err := quantity.Convert(celsius, catalog.Kelvin, a.system)
	if err != nil {
		return err
	}
	fahrenheit, err := quantity.Convert(celsius, catalog.Fahrenheit, a.system)
	if err != nil {
		return err
	}
	back, err := quantity.Convert(fahrenheit, catalog.Kelvin, a.system)
	if err != nil {
		return err
	}
	p.linef("%s is equivalent to %s", a.show(p, celsius), a.show(p, fahrenheit))
	p.linef("%s is equivalent to %s", a.show(p, celsius), a.show(p, kelvin))
	p.linef("%s is equivalent to %s", a.show(p, fahrenheit), a.show(p, back))
	return nil
}

func (a *app) demoDensity(p *printer) error {
	mass := quantity.New(80.0, catalog.Kilogram)
	volume := quantity.New(0.07921, catalog.CubicMeter)
	density, err := a.arithmetic.Divide(mass, volume)
	if err != nil {
		return err
	}
	p.linef("%s / %s = %s", a.show(p, mass), a.show(p, volume), a.show(p, density))
	return nil
}

func (a *app) demoPressure(p *printer) error {
	depth := quantity.New(30.0, catalog.Meter)
	gravity := quantity.New(9.81, units.Divide(catalog.MetersPerSecond, catalog.Second))
	density := quantity.New(1000.0, units.Divide(catalog.Kilogram, catalog.CubicMeter))
	pressure, err := a.chain("*", depth, gravity, density)
	if err != nil {
		return err
	}
	p.linef("At %s: %s (Pa: %t)", a.show(p, depth), a.show(p, pressure), units.SameUnit(pressure.Unit(), catalog.Pascal))
	return nil
}

func (a *app) demoSameUnits(p *printer) error {
	myPascal := units.Divide(catalog.Kilogram, units.Multiply(catalog.Second, catalog.Second, catalog.Meter))
	dividend := quantity.New(782.0, catalog.Pascal)
	divisor := quantity.New(100.0, myPascal)
	ratio, err := a.arithmetic.Divide(dividend, divisor)
	if err != nil {
		return err
	}
	p.linef("%s / %s = %s", a.show(p, dividend), a.show(p, divisor), a.show(p, ratio))
	return nil
}

func (a *app) demoMatrix(p *printer) error {
	lengths := quantity.New(mat.NewDense(2, 2, []float64{1, 2, 3, 4}), catalog.Meter)
	factor := quantity.New(2.0, catalog.Second)
	scaled, err := a.arithmetic.Multiply(factor, lengths)
	if err != nil {
		return err
	}
	m, ok := scaled.Interface().(*mat.Dense)
	if !ok {
		return fmt.Errorf("unexpected result type %s", scaled.ValueType())
	}
	p.linef("%s * %s =", a.show(p, factor), symbolOf(lengths.Unit()))
	p.linef("%s %s", matrix.Format(m), symbolOf(scaled.Unit()))
	return nil
}
