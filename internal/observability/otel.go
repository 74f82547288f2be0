package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

const metricExportInterval = 10 * time.Second

// OpenTelemetryConfig selects the exporters installed by SetupOpenTelemetry.
type OpenTelemetryConfig struct {
	Enabled           bool
	OTLPEndpoint      string
	OTLPTraceHeaders  map[string]string
	OTLPMetricHeaders map[string]string
	ServiceName       string
	ServiceVer        string
	SamplingRatio     float64
	MetricsConsole    bool
}

// ShutdownFunc flushes and stops installed providers.
type ShutdownFunc func(context.Context) error

// SetupOpenTelemetry installs global trace and meter providers plus W3C propagation.
// It is a no-op when cfg.Enabled is false.
func SetupOpenTelemetry(ctx context.Context, log *slog.Logger, cfg OpenTelemetryConfig) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVer),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create otel resource: %w", err)
	}

	var shutdownFns []ShutdownFunc

	tracerProvider, err := newTracerProvider(ctx, cfg, res)
	if err != nil {
		return nil, err
	}
	if tracerProvider != nil {
		otel.SetTracerProvider(tracerProvider)
		shutdownFns = append(shutdownFns, tracerProvider.Shutdown)
	}

	meterProvider, err := newMeterProvider(ctx, cfg, res)
	if err != nil {
		return nil, err
	}
	if meterProvider != nil {
		otel.SetMeterProvider(meterProvider)
		shutdownFns = append(shutdownFns, meterProvider.Shutdown)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	log.Info("OpenTelemetry enabled",
		"service", cfg.ServiceName,
		"version", cfg.ServiceVer,
		"traces_enabled", tracerProvider != nil,
		"metrics_console", cfg.MetricsConsole,
		"metrics_otlp", cfg.OTLPEndpoint != "",
	)

	return func(shutdownCtx context.Context) error {
		var errs []error
		for i := len(shutdownFns) - 1; i >= 0; i-- {
			errs = append(errs, shutdownFns[i](shutdownCtx))
		}
		return errors.Join(errs...)
	}, nil
}

// InstrumentedTransport wraps base so outgoing requests carry trace context.
func InstrumentedTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return otelhttp.NewTransport(base)
}

func newTracerProvider(ctx context.Context, cfg OpenTelemetryConfig, res *resource.Resource) (*sdktrace.TracerProvider, error) {
	if cfg.OTLPEndpoint == "" && len(cfg.OTLPTraceHeaders) == 0 {
		return nil, nil
	}

	var options []otlptracehttp.Option
	if cfg.OTLPEndpoint != "" {
		options = append(options, otlptracehttp.WithEndpointURL(cfg.OTLPEndpoint))
	}
	if len(cfg.OTLPTraceHeaders) > 0 {
		options = append(options, otlptracehttp.WithHeaders(cfg.OTLPTraceHeaders))
	}
	exporter, err := otlptracehttp.New(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("create otlp trace exporter: %w", err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithSampler(configuredSampler(cfg.SamplingRatio)),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	), nil
}

func newMeterProvider(ctx context.Context, cfg OpenTelemetryConfig, res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	options := []sdkmetric.Option{sdkmetric.WithResource(res)}
	readers := 0

	if cfg.OTLPEndpoint != "" {
		metricOptions := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpointURL(cfg.OTLPEndpoint)}
		if len(cfg.OTLPMetricHeaders) > 0 {
			metricOptions = append(metricOptions, otlpmetrichttp.WithHeaders(cfg.OTLPMetricHeaders))
		}
		exporter, err := otlpmetrichttp.New(ctx, metricOptions...)
		if err != nil {
			return nil, fmt.Errorf("create otlp metric exporter: %w", err)
		}
		options = append(options, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(metricExportInterval))))
		readers++
	}
	if cfg.MetricsConsole {
		exporter, err := stdoutmetric.New(stdoutmetric.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("create stdout metric exporter: %w", err)
		}
		options = append(options, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(metricExportInterval))))
		readers++
	}

	if readers == 0 {
		return nil, nil
	}
	return sdkmetric.NewMeterProvider(options...), nil
}

func configuredSampler(ratio float64) sdktrace.Sampler {
	switch {
	case ratio >= 1:
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	case ratio <= 0:
		return sdktrace.ParentBased(sdktrace.NeverSample())
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
	}
}
