package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/quants/internal/tracing"
	"github.com/zjrosen/quants/pkg/catalog"
	"github.com/zjrosen/quants/pkg/quantity"
	"github.com/zjrosen/quants/pkg/units"
)

func newConvertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <value> <from> <to>",
		Short: "Convert a value between units of one dimension",
		Long: `Convert a value from one unit to another.

Both units must measure the same dimension. The conversion runs through the
unit system's graph, so any two registered units of a dimension convert.

Examples:
  quants convert 1 lb kg
  quants convert 20 C F
  quants convert 100 km/h m/s --precision 3
  quants convert 2.5 km² m^2 --format yaml`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args, func(ctx context.Context) error {
				return a.convert(ctx, cmd, args[0], args[1], args[2])
			})
		},
	}
}

type conversionRecord struct {
	From      quantityRecord `yaml:"from"`
	To        quantityRecord `yaml:"to"`
	Dimension string         `yaml:"dimension"`
	Converter string         `yaml:"converter"`
}

func (a *app) convert(ctx context.Context, cmd *cobra.Command, value, from, to string) error {
	v, err := cast.ToFloat64E(value)
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", value, err)
	}
	source, err := catalog.Lookup(from)
	if err != nil {
		return err
	}
	target, err := catalog.Lookup(to)
	if err != nil {
		return err
	}
	tracing.Annotate(ctx,
		attribute.String(tracing.AttrSourceUnit, source.Symbol()),
		attribute.String(tracing.AttrTargetUnit, target.Symbol()),
	)

	converter := "identity"
	if !units.SameUnit(source, target) {
		c, err := a.system.CreateConverter(source, target)
		if err != nil {
			return err
		}
		converter = fmt.Sprint(c)
	}
	result, err := quantity.Convert(quantity.New(v, source), target, a.system)
	if err != nil {
		return err
	}
	tracing.Annotate(ctx, attribute.String(tracing.AttrConverter, converter))

	p := a.printer(cmd)
	if p.yamlOutput() {
		return p.yaml(conversionRecord{
			From:      p.record(v, source),
			To:        p.record(result.Value(), target),
			Dimension: catalog.DimensionName(source.Dimension()),
			Converter: converter,
		})
	}
	p.linef("%s = %s", p.quantity(v, source), p.quantity(result.Value(), target))
	return nil
}
