package observability

import (
	"context"
	"fmt"

	"github.com/railzwaylabs/paygate/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewTracerProvider returns an OTLP/HTTP backed provider when tracing is
// enabled and a noop provider otherwise. The result is also installed as the
// global provider.
func NewTracerProvider(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (trace.TracerProvider, error) {
	if !cfg.Tracing.Enabled {
		tp := noop.NewTracerProvider()
		otel.SetTracerProvider(tp)
		return tp, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Tracing.Endpoint)}
	if cfg.Tracing.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}

	ratio := cfg.Tracing.SampleRatio
	if ratio <= 0 || ratio > 1 {
		ratio = 1
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", cfg.AppName),
			attribute.String("deployment.environment", cfg.Environment),
		)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	log.Info("tracing enabled", zap.String("endpoint", cfg.Tracing.Endpoint), zap.Float64("sample_ratio", ratio))
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tp.Shutdown(ctx)
		},
	})
	return tp, nil
}
