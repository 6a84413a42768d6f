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

// valueTypes are the --type values calc accepts.
var valueTypes = []string{"float64", "float32", "int64", "int"}

func newCalcCmd(a *app) *cobra.Command {
	var (
		to        string
		leftType  string
		rightType string
	)

	cmd := &cobra.Command{
		Use:   "calc <value> <unit> <op> <value> <unit>",
		Short: "Multiply, divide, add or subtract two quantities",
		Long: `Apply an operator to two quantities and print the result with its unit.

The operator is one of * (or x), /, + or -. Use "1" as the unit of a plain
number. Multiplication and division reject operands of one dimension in
different units, e.g. m * cm; addition and subtraction need equal units.

Values are float64 unless --type (both operands) or --left-type and
--right-type say otherwise. Mixed types widen: int * float32 is float32,
anything with float64 is float64.

Examples:
  quants calc 2 m x 4 m
  quants calc 2 m x 4 m --to cm^2
  quants calc 80 kg / 0.07921 m^3
  quants calc 7 1 / 2 1 --type int`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			if t, _ := cmd.Flags().GetString("type"); t != "" {
				if !cmd.Flags().Changed("left-type") {
					leftType = t
				}
				if !cmd.Flags().Changed("right-type") {
					rightType = t
				}
			}
			return a.run(cmd, args, func(ctx context.Context) error {
				return a.calc(ctx, cmd, args, leftType, rightType, to)
			})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "convert the result to this unit")
	cmd.Flags().String("type", "", "value type of both operands: float64, float32, int64 or int")
	cmd.Flags().StringVar(&leftType, "left-type", "float64", "value type of the left operand")
	cmd.Flags().StringVar(&rightType, "right-type", "float64", "value type of the right operand")
	return cmd
}

type calcRecord struct {
	Left      quantityRecord  `yaml:"left"`
	Operator  string          `yaml:"operator"`
	Right     quantityRecord  `yaml:"right"`
	Result    quantityRecord  `yaml:"result"`
	Type      string          `yaml:"type"`
	Converted *quantityRecord `yaml:"converted,omitempty"`
}

func (a *app) calc(ctx context.Context, cmd *cobra.Command, args []string, leftType, rightType, to string) error {
	op := args[2]
	if op == "x" {
		op = "*"
	}

	left, err := parseQuantity(args[0], args[1], leftType)
	if err != nil {
		return err
	}
	right, err := parseQuantity(args[3], args[4], rightType)
	if err != nil {
		return err
	}
	tracing.Annotate(ctx,
		attribute.String(tracing.AttrOperator, op),
		attribute.String(tracing.AttrLeftType, left.ValueType().String()),
		attribute.String(tracing.AttrRightType, right.ValueType().String()),
	)

	result, err := a.arithmetic.Apply(op, left, right)
	if err != nil {
		return err
	}

	values, err := float64Values(left, right, result)
	if err != nil {
		return err
	}
	lv, rv, v := values[0], values[1], values[2]

	p := a.printer(cmd)
	var converted *quantityRecord
	var convertedText string
	if to != "" {
		target, err := catalog.Lookup(to)
		if err != nil {
			return err
		}
		cq, err := quantity.Convert(quantity.New(v, result.Unit()), target, a.system)
		if err != nil {
			return err
		}
		r := p.record(cq.Value(), target)
		converted = &r
		convertedText = " = " + p.quantity(cq.Value(), target)
	}

	if p.yamlOutput() {
		return p.yaml(calcRecord{
			Left:      p.record(lv, left.Unit()),
			Operator:  op,
			Right:     p.record(rv, right.Unit()),
			Result:    p.record(v, result.Unit()),
			Type:      result.ValueType().String(),
			Converted: converted,
		})
	}
	p.linef("%s %s %s = %s%s", p.quantity(lv, left.Unit()), op, p.quantity(rv, right.Unit()),
		p.quantity(v, result.Unit()), convertedText)
	return nil
}

// parseQuantity builds a quantity of valueType from its textual value and
// unit symbol. The unit "1" is Unitless.
func parseQuantity(value, symbol, valueType string) (quantity.Base, error) {
	unit := units.Unitless
	if symbol != "1" {
		u, err := catalog.Lookup(symbol)
		if err != nil {
			return nil, err
		}
		unit = u
	}

	var (
		q   quantity.Base
		err error
	)
	switch valueType {
	case "float64", "":
		var v float64
		v, err = cast.ToFloat64E(value)
		q = quantity.New(v, unit)
	case "float32":
		var v float32
		v, err = cast.ToFloat32E(value)
		q = quantity.New(v, unit)
	case "int64":
		var v int64
		v, err = cast.ToInt64E(value)
		q = quantity.New(v, unit)
	case "int":
		var v int
		v, err = cast.ToIntE(value)
		q = quantity.New(v, unit)
	default:
		return nil, fmt.Errorf("unknown value type %q, want one of %v", valueType, valueTypes)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", valueType, value, err)
	}
	return q, nil
}

// float64Values casts each quantity's value to float64 for display. It fails
// on the first value that cannot be cast.
func float64Values(qs ...quantity.Base) ([]float64, error) {
	out := make([]float64, len(qs))
	for i, q := range qs {
		v, err := quantity.Float64(q)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
