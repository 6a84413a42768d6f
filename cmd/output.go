package cmd

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/quants/pkg/units"
)

// printer writes command results as text lines or YAML documents.
type printer struct {
	w         io.Writer
	format    string
	precision int
}

func newPrinter(w io.Writer, format string, precision int) *printer {
	return &printer{w: w, format: format, precision: precision}
}

func (p *printer) yamlOutput() bool { return p.format == "yaml" }

// number formats v to the configured significant digits. Zero precision
// prints the shortest exact form.
func (p *printer) number(v float64) string {
	prec := p.precision
	if prec <= 0 {
		prec = -1
	}
	return strconv.FormatFloat(v, 'g', prec, 64)
}

// rounded is v rounded the way number prints it, for YAML output.
func (p *printer) rounded(v float64) float64 {
	r, err := strconv.ParseFloat(p.number(v), 64)
	if err != nil {
		return v
	}
	return r
}

func (p *printer) quantity(v float64, u units.Unit) string {
	s := p.number(v)
	if sym := symbolOf(u); sym != "" {
		s += " " + sym
	}
	return s
}

func (p *printer) record(v float64, u units.Unit) quantityRecord {
	return quantityRecord{Value: p.rounded(v), Unit: symbolOf(u)}
}

func (p *printer) linef(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) yaml(v any) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return enc.Close()
}

type quantityRecord struct {
	Value float64 `yaml:"value"`
	Unit  string  `yaml:"unit,omitempty"`
}

func symbolOf(u units.Unit) string {
	if u == nil {
		return ""
	}
	return u.Symbol()
}
