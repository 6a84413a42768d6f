package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/quants/pkg/catalog"
	"github.com/zjrosen/quants/pkg/units"
)

func newUnitsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "units [dimension]",
		Short: "List the units of the unit system",
		Long: `List the units registered in the unit system, grouped by dimension.

A dimension can be given by name (e.g. "length", "area") or by symbol
(e.g. "L", "L^2") to list only its units.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args, func(context.Context) error {
				dimensions := a.system.Dimensions()
				if len(args) == 1 {
					d, err := catalog.LookupDimension(args[0])
					if err != nil {
						return err
					}
					dimensions = []units.Dimension{d}
				}
				return a.listUnits(cmd, dimensions)
			})
		},
	}
}

type unitRecord struct {
	Symbol      string   `yaml:"symbol"`
	Description string   `yaml:"description"`
	Base        bool     `yaml:"base,omitempty"`
	Aliases     []string `yaml:"aliases,omitempty"`
}

type dimensionUnits struct {
	Dimension string       `yaml:"dimension"`
	Symbol    string       `yaml:"symbol"`
	Units     []unitRecord `yaml:"units"`
}

func (a *app) listUnits(cmd *cobra.Command, dimensions []units.Dimension) error {
	groups := make([]dimensionUnits, 0, len(dimensions))
	for _, d := range dimensions {
		supported, err := a.system.SupportedUnits(d)
		if err != nil {
			return err
		}
		base, _ := a.system.BaseUnit(d)

		g := dimensionUnits{Dimension: catalog.DimensionName(d), Symbol: d.Symbol()}
		for _, u := range supported {
			g.Units = append(g.Units, unitRecord{
				Symbol:      u.Symbol(),
				Description: u.Description(),
				Base:        base != nil && u.Equal(base),
				Aliases:     catalog.Aliases(u),
			})
		}
		groups = append(groups, g)
	}

	p := a.printer(cmd)
	if p.yamlOutput() {
		return p.yaml(groups)
	}
	for i, g := range groups {
		if i > 0 {
			p.linef("")
		}
		p.linef("%s (%s)", g.Dimension, g.Symbol)
		for _, u := range g.Units {
			line := "  " + padRight(u.Symbol, 12) + u.Description
			if u.Base {
				line += " (base)"
			}
			if len(u.Aliases) > 0 {
				line += " [" + strings.Join(u.Aliases, ", ") + "]"
			}
			p.linef("%s", line)
		}
	}
	return nil
}

func newDimensionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dimensions",
		Short: "List the dimensions of the unit system and their base units",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args, func(context.Context) error {
				return a.listDimensions(cmd)
			})
		},
	}
}

type dimensionRecord struct {
	Name     string `yaml:"name"`
	Symbol   string `yaml:"symbol"`
	BaseUnit string `yaml:"base_unit"`
	Units    int    `yaml:"units"`
}

func (a *app) listDimensions(cmd *cobra.Command) error {
	var records []dimensionRecord
	for _, d := range a.system.Dimensions() {
		base, err := a.system.BaseUnit(d)
		if err != nil {
			return err
		}
		supported, err := a.system.SupportedUnits(d)
		if err != nil {
			return err
		}
		records = append(records, dimensionRecord{
			Name:     catalog.DimensionName(d),
			Symbol:   d.Symbol(),
			BaseUnit: base.Symbol(),
			Units:    len(supported),
		})
	}

	p := a.printer(cmd)
	if p.yamlOutput() {
		return p.yaml(records)
	}
	for _, r := range records {
		p.linef("%s%s%s", padRight(r.Name, 22), padRight(r.Symbol, 12), r.BaseUnit)
	}
	return nil
}

// padRight pads s with spaces to width runes, keeping at least one space.
func padRight(s string, width int) string {
	n := width - len([]rune(s))
	if n < 1 {
		n = 1
	}
	return s + strings.Repeat(" ", n)
}
