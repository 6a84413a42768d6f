package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/zjrosen/quants/internal/config"
	"github.com/zjrosen/quants/pkg/catalog"
	"github.com/zjrosen/quants/pkg/quantity"
	"github.com/zjrosen/quants/pkg/system"
)

// sandbox moves the test into an empty working and home directory so no real
// config file is picked up.
func sandbox(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root, cleanup := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	require.NoError(t, cleanup())
	return out.String(), err
}

func TestConvert(t *testing.T) {
	sandbox(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"scaled", []string{"convert", "1", "kg", "g"}, "1 kg = 1000 g\n"},
		{"offset", []string{"convert", "20", "C", "F"}, "20 °C = 68 °F\n"},
		{"through the root", []string{"convert", "0", "°F", "K"}, "0 °F = 255.372 K\n"},
		{"same unit", []string{"convert", "3", "m", "m"}, "3 m = 3 m\n"},
		{"precision flag", []string{"convert", "1", "lb", "kg", "-p", "3"}, "1 lb = 0.454 kg\n"},
		{"compound", []string{"convert", "36", "km/h", "m/s"}, "36 km/h = 10 m/s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			require.Equal(t, tt.want, out)
		})
	}
}

func TestConvert_YAML(t *testing.T) {
	sandbox(t)
	out, err := execute(t, "convert", "1", "km", "m", "--format", "yaml")
	require.NoError(t, err)
	require.Contains(t, out, "from:\n  value: 1\n  unit: km\n")
	require.Contains(t, out, "to:\n  value: 1000\n  unit: m\n")
	require.Contains(t, out, "dimension: length")
	require.Contains(t, out, "converter: ")
}

func TestConvert_Errors(t *testing.T) {
	sandbox(t)
	tests := []struct {
		name   string
		args   []string
		target error
	}{
		{"across dimensions", []string{"convert", "1", "kg", "m"}, system.ErrWrongDimension},
		{"unknown unit", []string{"convert", "1", "kg", "stone"}, catalog.ErrUnknownSymbol},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.ErrorIs(t, err, tt.target)
		})
	}

	_, err := execute(t, "convert", "heavy", "kg", "g")
	require.ErrorContains(t, err, `invalid value "heavy"`)

	_, err = execute(t, "convert", "1", "kg")
	require.Error(t, err)
}

func TestUnits(t *testing.T) {
	sandbox(t)
	out, err := execute(t, "units", "mass")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Equal(t, "mass (M)", lines[0])
	require.Len(t, lines, 5)
	require.Contains(t, lines[1], "kg")
	require.Contains(t, lines[1], "(base)")
	require.Contains(t, out, "lb")
	require.Contains(t, out, "tonne")
}

func TestUnits_AliasesAndSymbolLookup(t *testing.T) {
	sandbox(t)
	out, err := execute(t, "units", "L^2")
	require.NoError(t, err)
	require.Contains(t, out, "area (L^2)")
	require.Contains(t, out, "[m²]")
}

func TestUnits_All(t *testing.T) {
	sandbox(t)
	out, err := execute(t, "units")
	require.NoError(t, err)
	for _, u := range catalog.Units() {
		require.Contains(t, out, u.Symbol())
	}
}

func TestUnits_UnknownDimension(t *testing.T) {
	sandbox(t)
	_, err := execute(t, "units", "happiness")
	require.ErrorIs(t, err, catalog.ErrUnknownSymbol)
}

func TestDimensions(t *testing.T) {
	sandbox(t)
	out, err := execute(t, "dimensions")
	require.NoError(t, err)
	require.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 13)
	require.Contains(t, out, "mass")
	require.Contains(t, out, "temperature")
	require.Contains(t, out, "speed")

	out, err = execute(t, "dimensions", "--format", "yaml")
	require.NoError(t, err)
	require.Contains(t, out, "- name: mass\n  symbol: M\n  base_unit: kg\n  units: 4\n")
}

func TestCalc(t *testing.T) {
	sandbox(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"area", []string{"calc", "2", "m", "x", "4", "m"}, "2 m * 4 m = 8 m^2\n"},
		{"area converted", []string{"calc", "2", "m", "*", "4", "m", "--to", "cm²"}, "2 m * 4 m = 8 m^2 = 80000 cm^2\n"},
		{"density", []string{"calc", "80", "kg", "/", "0.08", "m^3"}, "80 kg / 0.08 m^3 = 1000 kg/(m^3)\n"},
		{"add", []string{"calc", "2", "m", "+", "3", "m"}, "2 m + 3 m = 5 m\n"},
		{"unitless", []string{"calc", "7", "1", "-", "2", "1"}, "7 - 2 = 5\n"},
		{"integer division", []string{"calc", "7", "1", "/", "2", "1", "--type", "int"}, "7 / 2 = 3\n"},
		{"widening", []string{"calc", "3", "1", "/", "2", "1", "--left-type", "int", "--right-type", "float32"}, "3 / 2 = 1.5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			require.Equal(t, tt.want, out)
		})
	}
}

func TestCalc_YAML(t *testing.T) {
	sandbox(t)
	out, err := execute(t, "calc", "3", "1", "*", "2", "s", "--left-type", "int64", "--right-type", "int", "-f", "yaml")
	require.NoError(t, err)
	require.Contains(t, out, "operator: '*'")
	require.Contains(t, out, "result:\n  value: 6\n  unit: s\n")
	require.Contains(t, out, "type: int64")
	require.NotContains(t, out, "converted:")
}

func TestCalc_Errors(t *testing.T) {
	sandbox(t)
	tests := []struct {
		name   string
		args   []string
		target error
	}{
		{"mixed units", []string{"calc", "1", "m", "*", "1", "cm"}, quantity.ErrMixedUnits},
		{"different units", []string{"calc", "1", "m", "+", "1", "cm"}, quantity.ErrUnitsDiffer},
		{"integer division by zero", []string{"calc", "1", "1", "/", "0", "1", "--type", "int"}, quantity.ErrDivisionByZero},
		{"unknown operator", []string{"calc", "1", "1", "%", "2", "1"}, quantity.ErrNotSupported},
		{"unknown unit", []string{"calc", "1", "furlong", "+", "2", "1"}, catalog.ErrUnknownSymbol},
		{"convert across dimensions", []string{"calc", "2", "m", "*", "4", "m", "--to", "kg"}, system.ErrWrongDimension},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.ErrorIs(t, err, tt.target)
		})
	}

	_, err := execute(t, "calc", "1", "1", "+", "2", "1", "--type", "complex128")
	require.ErrorContains(t, err, "unknown value type")
}

func TestDemo(t *testing.T) {
	sandbox(t)
	out, err := execute(t, "demo")
	require.NoError(t, err)
	require.Contains(t, out, "--- Multiply three lengths to form a volume ---\n1 dm*1 dm*1 dm = 1 dm^3 = 0.001 m^3\n")
	require.Contains(t, out, "20 °C is equivalent to 68 °F\n")
	require.Contains(t, out, "20 °C is equivalent to 293.15 K\n")
	require.Contains(t, out, "80 kg / 0.07921 m^3 = 1009.97 kg/(m^3)\n")
	require.Contains(t, out, "At 30 m: 294300 kg/(m*s^2) (Pa: true)\n")
	require.Contains(t, out, "782 kg/(m*s^2) / 100 kg/(m*s^2) = 7.82\n")
	require.Contains(t, out, "--- Scale a matrix of lengths ---")
}

func TestConfigInit(t *testing.T) {
	dir := sandbox(t)

	out, err := execute(t, "config", "init")
	require.NoError(t, err)
	require.Equal(t, "Created .quants/config.yaml\n", out)

	data, err := os.ReadFile(filepath.Join(dir, ".quants", "config.yaml"))
	require.NoError(t, err)
	require.Equal(t, config.DefaultConfigTemplate(), string(data))

	_, err = execute(t, "config", "init")
	require.ErrorContains(t, err, "already exists")

	_, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigSet_AppliesToLaterCommands(t *testing.T) {
	sandbox(t)
	_, err := execute(t, "config", "init")
	require.NoError(t, err)

	out, err := execute(t, "config", "set", "output.precision", "3")
	require.NoError(t, err)
	require.Equal(t, "Set output.precision = 3 in .quants/config.yaml\n", out)

	out, err = execute(t, "convert", "1", "lb", "kg")
	require.NoError(t, err)
	require.Equal(t, "1 lb = 0.454 kg\n", out)

	// Flags win over the file.
	out, err = execute(t, "convert", "1", "lb", "kg", "--precision", "5")
	require.NoError(t, err)
	require.Equal(t, "1 lb = 0.45359 kg\n", out)
}

func TestConfigSet_RejectsInvalidValue(t *testing.T) {
	dir := sandbox(t)
	_, err := execute(t, "config", "init")
	require.NoError(t, err)

	path := filepath.Join(dir, ".quants", "config.yaml")
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = execute(t, "config", "set", "output.format", "json")
	require.ErrorIs(t, err, config.ErrInvalid)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, string(before), string(after))
}

func TestConfigSet_WithoutFileCreatesLocalConfig(t *testing.T) {
	dir := sandbox(t)
	_, err := execute(t, "config", "set", "output.format", "yaml")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".quants", "config.yaml"))
	require.NoError(t, err)
	require.Equal(t, "output:\n  format: yaml\n", string(data))
}

func TestConfigShow(t *testing.T) {
	sandbox(t)
	out, err := execute(t, "config", "show")
	require.NoError(t, err)
	require.Contains(t, out, "system: si\n")
	require.Contains(t, out, "precision: 6\n")
	require.Contains(t, out, "format: text\n")
}

func TestConfig_ExplicitFile(t *testing.T) {
	dir := sandbox(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: yaml\n"), 0o600))

	out, err := execute(t, "--config", path, "convert", "1", "kg", "g")
	require.NoError(t, err)
	require.Contains(t, out, "value: 1000")

	_, err = execute(t, "--config", filepath.Join(dir, "missing.yaml"), "convert", "1", "kg", "g")
	require.ErrorContains(t, err, "reading config")
}

func TestConfig_InvalidFileIsRejected(t *testing.T) {
	dir := sandbox(t)
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("system: imperial\n"), 0o600))

	_, err := execute(t, "--config", path, "units")
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestDebugLog(t *testing.T) {
	dir := sandbox(t)
	_, err := execute(t, "--debug", "convert", "1", "kg", "g")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "quants-debug.log"))
	require.NoError(t, err)
	require.Contains(t, string(data), "quants starting")
}

func TestTracing_FileExporter(t *testing.T) {
	dir := sandbox(t)
	traces := filepath.Join(dir, "traces.jsonl")
	cfg := "tracing:\n  enabled: true\n  exporter: file\n  file_path: " + traces + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tracing.yaml"), []byte(cfg), 0o600))

	_, err := execute(t, "--config", filepath.Join(dir, "tracing.yaml"), "convert", "1", "kg", "g")
	require.NoError(t, err)

	data, err := os.ReadFile(traces)
	require.NoError(t, err)

	names := map[string]bool{}
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		var rec struct {
			Name       string         `json:"name"`
			Attributes map[string]any `json:"attributes"`
		}
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		names[rec.Name] = true
		if rec.Name == "cli.convert" {
			require.Equal(t, "kg", rec.Attributes["unit.source"])
			require.Equal(t, "g", rec.Attributes["unit.target"])
		}
	}
	require.True(t, names["system.create"])
	require.True(t, names["cli.convert"])
}

func TestConfigInit_ExplicitFileMayNotExist(t *testing.T) {
	dir := sandbox(t)
	path := filepath.Join(dir, "nested", "quants.yaml")

	out, err := execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	require.Equal(t, "Created "+path+"\n", out)

	out, err = execute(t, "--config", path, "config", "set", "output.precision", "2")
	require.NoError(t, err)
	require.Equal(t, "Set output.precision = 2 in "+path+"\n", out)

	out, err = execute(t, "--config", path, "convert", "1", "lb", "g")
	require.NoError(t, err)
	require.Equal(t, "1 lb = 4.5e+02 g\n", out)
}

func TestFloat64Values_ReturnsCastError(t *testing.T) {
	values, err := float64Values(quantity.New(int64(3), catalog.Meter), quantity.New(float32(1.5), catalog.Second))
	require.NoError(t, err)
	require.Equal(t, []float64{3, 1.5}, values)

	_, err = float64Values(quantity.New(2.0, catalog.Meter), quantity.New(mat.NewDense(1, 1, []float64{2}), catalog.Meter))
	require.ErrorIs(t, err, quantity.ErrCast)
}
