package otel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Exporter names accepted in Config.Exporter and OTEL_EXPORTER.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
	ExporterNone   = "none"
)

// DefaultMetricInterval is how often metrics are pushed when
// OTEL_METRIC_INTERVAL is unset.
const DefaultMetricInterval = time.Minute

type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Exporter       string

	// Insecure sends OTLP over plain HTTP. ConfigFromEnv enables it in development.
	Insecure bool

	// MetricInterval overrides DefaultMetricInterval when positive.
	MetricInterval time.Duration

	// Writer receives stdout exporter output. Nil means os.Stdout.
	Writer io.Writer
}

// ConfigFromEnv reads OTEL_SERVICE_NAME, OTEL_SERVICE_VERSION,
// OTEL_ENVIRONMENT, OTEL_EXPORTER and OTEL_METRIC_INTERVAL.
// An unparsable interval falls back to the default.
func ConfigFromEnv() Config {
	env := envOrDefault("OTEL_ENVIRONMENT", "development")

	interval, err := time.ParseDuration(os.Getenv("OTEL_METRIC_INTERVAL"))
	if err != nil {
		interval = 0
	}

	return Config{
		ServiceName:    envOrDefault("OTEL_SERVICE_NAME", "serialgen"),
		ServiceVersion: envOrDefault("OTEL_SERVICE_VERSION", "0.1.0"),
		Environment:    env,
		Exporter:       envOrDefault("OTEL_EXPORTER", ExporterStdout),
		Insecure:       env == "development",
		MetricInterval: interval,
	}
}

// Providers holds the shutdown hook of the registered providers.
type Providers struct {
	Shutdown func(ctx context.Context) error
}

// Setup installs global tracer and meter providers for cfg.
// ExporterNone keeps the global no-op providers.
// Call Shutdown on exit to flush buffered spans and metrics.
func Setup(ctx context.Context, cfg Config) (*Providers, error) {
	switch cfg.Exporter {
	case ExporterNone:
		return &Providers{Shutdown: func(context.Context) error { return nil }}, nil
	case ExporterStdout, ExporterOTLP:
	default:
		return nil, fmt.Errorf("unsupported exporter: %q (use %q, %q or %q)",
			cfg.Exporter, ExporterStdout, ExporterOTLP, ExporterNone)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating otel resource: %w", err)
	}

	spans, err := newSpanExporter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating span exporter: %w", err)
	}
	metrics, err := newMetricExporter(ctx, cfg)
	if err != nil {
		_ = spans.Shutdown(ctx)
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	interval := cfg.MetricInterval
	if interval <= 0 {
		interval = DefaultMetricInterval
	}

	tp := trace.NewTracerProvider(
		trace.WithResource(res),
		trace.WithBatcher(spans),
	)
	mp := metric.NewMeterProvider(
		metric.WithResource(res),
		metric.WithReader(metric.NewPeriodicReader(metrics, metric.WithInterval(interval))),
	)

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &Providers{Shutdown: func(ctx context.Context) error {
		return errors.Join(
			wrapShutdown("tracer", tp.Shutdown(ctx)),
			wrapShutdown("meter", mp.Shutdown(ctx)),
		)
	}}, nil
}

func wrapShutdown(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s shutdown: %w", name, err)
}

func newSpanExporter(ctx context.Context, cfg Config) (trace.SpanExporter, error) {
	if cfg.Exporter == ExporterOTLP {
		var opts []otlptracehttp.Option
		if cfg.Insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, opts...)
	}

	opts := []stdouttrace.Option{stdouttrace.WithPrettyPrint()}
	if cfg.Writer != nil {
		opts = append(opts, stdouttrace.WithWriter(cfg.Writer))
	}
	return stdouttrace.New(opts...)
}

func newMetricExporter(ctx context.Context, cfg Config) (metric.Exporter, error) {
	if cfg.Exporter == ExporterOTLP {
		var opts []otlpmetrichttp.Option
		if cfg.Insecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		return otlpmetrichttp.New(ctx, opts...)
	}

	var opts []stdoutmetric.Option
	if cfg.Writer != nil {
		opts = append(opts, stdoutmetric.WithWriter(cfg.Writer))
	}
	return stdoutmetric.New(opts...)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
