package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	invoicesIssued   metric.Int64Counter
	invoicesPaid     metric.Int64Counter
	paymentsRecorded metric.Int64Counter
	webhookEvents    metric.Int64Counter
	reportRequests   metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "ledgique"
	}
	meter := provider.Meter(name)

	invoicesIssued, err := meter.Int64Counter("ledgique_invoices_issued_total")
	if err != nil {
		return nil, err
	}
	invoicesPaid, err := meter.Int64Counter("ledgique_invoices_paid_total")
	if err != nil {
		return nil, err
	}
	paymentsRecorded, err := meter.Int64Counter("ledgique_payments_recorded_total")
	if err != nil {
		return nil, err
	}
	webhookEvents, err := meter.Int64Counter("ledgique_identity_webhook_events_total")
	if err != nil {
		return nil, err
	}
	reportRequests, err := meter.Int64Counter("ledgique_report_requests_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		invoicesIssued:   invoicesIssued,
		invoicesPaid:     invoicesPaid,
		paymentsRecorded: paymentsRecorded,
		webhookEvents:    webhookEvents,
		reportRequests:   reportRequests,
	}, nil
}

// RecordInvoiceIssued increments issued invoice counts.
func (m *Metrics) RecordInvoiceIssued(ctx context.Context) {
	if m == nil {
		return
	}
	m.invoicesIssued.Add(ctx, 1)
}

// RecordInvoicePaid increments paid invoice counts.
func (m *Metrics) RecordInvoicePaid(ctx context.Context) {
	if m == nil {
		return
	}
	m.invoicesPaid.Add(ctx, 1)
}

// RecordPayment increments recorded payment counts by method.
func (m *Metrics) RecordPayment(ctx context.Context, method string) {
	if m == nil {
		return
	}
	m.paymentsRecorded.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", strings.TrimSpace(method)),
	))
}

// RecordWebhookEvent increments identity webhook event counts by type.
func (m *Metrics) RecordWebhookEvent(ctx context.Context, eventType string) {
	if m == nil {
		return
	}
	m.webhookEvents.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event_type", strings.TrimSpace(eventType)),
	))
}

// RecordReportRequest increments report composition counts by report kind.
func (m *Metrics) RecordReportRequest(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.reportRequests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", strings.TrimSpace(kind)),
	))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(protocol)) {
	case "", "grpc":
		return otlpmetricgrpc.New(context.Background(),
			otlpmetricgrpc.WithEndpoint(endpoint),
			otlpmetricgrpc.WithInsecure(),
		)
	case "http":
		return otlpmetrichttp.New(context.Background(),
			otlpmetrichttp.WithEndpoint(endpoint),
			otlpmetrichttp.WithInsecure(),
		)
	default:
		return nil, fmt.Errorf("unsupported metric exporter protocol %q", protocol)
	}
}
