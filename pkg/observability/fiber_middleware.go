package observability

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alijeyrad/libremedic_admin/pkg/reqctx"
)

const (
	tracerName = "github.com/Alijeyrad/libremedic_admin/pkg/observability"
)

// FiberMiddleware instruments admin screen requests with a server span and
// per-screen metrics. The span context flows into backend calls through
// c.Context().
func FiberMiddleware(serviceName string) fiber.Handler {
	tracer := otel.Tracer(tracerName)
	meter := otel.Meter(tracerName)

	screenRequests, _ := meter.Int64Counter(
		"admin_screen_requests_total",
		metric.WithDescription("Admin screen requests by screen, method and status"),
		metric.WithUnit("{request}"),
	)
	screenDuration, _ := meter.Float64Histogram(
		"admin_screen_request_duration_ms",
		metric.WithDescription("Admin screen request duration in milliseconds"),
		metric.WithUnit("ms"),
	)

	return func(c fiber.Ctx) error {
		ctx := otel.GetTextMapPropagator().Extract(
			c.Context(),
			propagation.HeaderCarrier(c.GetReqHeaders()),
		)

		route := c.Route().Path
		screen := ScreenFromPath(c.Path())

		ctx, span := tracer.Start(ctx, "screen "+c.Method()+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Method()),
				attribute.String("http.route", route),
				attribute.String("admin.screen", screen),
				attribute.String("http.client_ip", c.IP()),
				attribute.String("service.name", serviceName),
			),
		)
		defer span.End()

		c.SetContext(ctx)
		if span.SpanContext().HasTraceID() {
			c.Set("X-Trace-Id", span.SpanContext().TraceID().String())
		}

		start := time.Now()
		err := c.Next()
		elapsed := float64(time.Since(start).Microseconds()) / 1000

		status := c.Response().StatusCode()
		userType := reqctx.UserTypeFromContext(c.Context(), "anonymous")
		span.SetAttributes(
			attribute.Int("http.status_code", status),
			attribute.String("admin.user_type", userType),
			attribute.String("request.id", reqctx.RequestIDFromContext(c.Context())),
		)

		attrs := metric.WithAttributes(
			attribute.String("screen", screen),
			attribute.String("method", c.Method()),
			attribute.Int("status", status),
		)
		screenRequests.Add(ctx, 1, attrs)
		screenDuration.Record(ctx, elapsed, attrs)

		switch {
		case status >= 500:
			span.SetStatus(codes.Error, "HTTP "+strconv.Itoa(status))
			if err != nil {
				span.RecordError(err)
			}
		default:
			span.SetStatus(codes.Ok, "")
		}

		return err
	}
}

// ScreenFromPath names the admin screen a request path belongs to, e.g.
// "/admin/patients/3/edit" is "patients". Paths outside /admin are "system".
func ScreenFromPath(path string) string {
	rest, ok := strings.CutPrefix(path, "/admin/")
	if !ok || rest == "" {
		return "system"
	}
	screen, _, _ := strings.Cut(rest, "/")
	return screen
}
