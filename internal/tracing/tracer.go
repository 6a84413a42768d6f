// Package tracing records OpenTelemetry spans for CLI commands and unit
// system operations, exporting them to a JSONL file, stdout or an OTLP
// collector.
package tracing

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// DefaultServiceName identifies quants in exported traces.
const DefaultServiceName = "quants"

const defaultOTLPEndpoint = "localhost:4317"

// ErrUnsupportedExporter is returned for an unknown Config.Exporter.
var ErrUnsupportedExporter = errors.New("unsupported exporter type")

// Config configures the tracing subsystem.
type Config struct {
	// Enabled controls whether tracing is active.
	// When false, a no-op tracer is returned.
	Enabled bool

	// Exporter selects the export backend: "none", "file", "stdout" or "otlp".
	Exporter string

	// FilePath is the output file for the "file" exporter.
	FilePath string

	// OTLPEndpoint is the collector endpoint for the "otlp" exporter.
	OTLPEndpoint string

	// SampleRate is the fraction of traces sampled. Zero or less means 1.0.
	SampleRate float64

	ServiceName string
}

// DefaultConfig returns tracing disabled with file export prepared.
func DefaultConfig() Config {
	return Config{
		Enabled:      false,
		Exporter:     "file",
		FilePath:     "",
		OTLPEndpoint: defaultOTLPEndpoint,
		SampleRate:   1.0,
		ServiceName:  DefaultServiceName,
	}
}

func (c Config) serviceName() string {
	if c.ServiceName == "" {
		return DefaultServiceName
	}
	return c.ServiceName
}

func (c Config) sampler() sdktrace.Sampler {
	rate := c.SampleRate
	if rate <= 0 {
		rate = 1.0
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))
}

// Provider owns the SDK tracer provider. A disabled Provider hands out a
// no-op tracer and has nothing to flush.
type Provider struct {
	sdk    *sdktrace.TracerProvider
	tracer trace.Tracer
}

// NewProvider builds the provider for cfg and installs it as the global
// tracer provider when tracing is enabled.
func NewProvider(cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{tracer: noop.NewTracerProvider().Tracer(cfg.serviceName())}, nil
	}

	exporter, err := newExporter(cfg)
	if err != nil {
		return nil, err
	}

	name := cfg.serviceName()
	opts := []sdktrace.TracerProviderOption{
		// Schemaless, so the resource merges with resource.Default() without
		// schema URL conflicts.
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", name))),
		sdktrace.WithSampler(cfg.sampler()),
	}
	if exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	sdk := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(sdk)
	return &Provider{sdk: sdk, tracer: sdk.Tracer(name)}, nil
}

type exporterFunc func(Config) (sdktrace.SpanExporter, error)

// exporters maps Config.Exporter to a constructor. "none" records spans
// without exporting them, so trace IDs still reach the debug log.
var exporters = map[string]exporterFunc{
	"":     noExporter,
	"none": noExporter,
	"file": func(cfg Config) (sdktrace.SpanExporter, error) {
		if cfg.FilePath == "" {
			return nil, errors.New("file_path required for file exporter")
		}
		return NewFileExporter(cfg.FilePath)
	},
	"stdout": func(Config) (sdktrace.SpanExporter, error) {
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	},
	"otlp": func(cfg Config) (sdktrace.SpanExporter, error) {
		endpoint := cfg.OTLPEndpoint
		if endpoint == "" {
			endpoint = defaultOTLPEndpoint
		}
		return otlptracegrpc.New(context.Background(),
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithInsecure(),
		)
	},
}

func noExporter(Config) (sdktrace.SpanExporter, error) { return nil, nil }

func newExporter(cfg Config) (sdktrace.SpanExporter, error) {
	build, ok := exporters[cfg.Exporter]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExporter, cfg.Exporter)
	}
	exporter, err := build(cfg)
	if err != nil {
		return nil, fmt.Errorf("create %s exporter: %w", cfg.Exporter, err)
	}
	return exporter, nil
}

// Tracer returns the tracer spans are started from.
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

func (p *Provider) Enabled() bool {
	return p.sdk != nil
}

// Shutdown flushes pending spans and stops the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.sdk == nil {
		return nil
	}
	return p.sdk.Shutdown(ctx)
}
