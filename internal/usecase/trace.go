package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("pool-league/internal/usecase")
var usecaseNoopSpan = trace.SpanFromContext(context.Background())

// startUsecaseSpan only opens a child span. Calls made outside a traced
// request, such as seeding or tests, stay untraced.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, usecaseNoopSpan
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func seasonAttr(id string) attribute.KeyValue { return attribute.String("league.season_id", id) }
func matchAttr(id string) attribute.KeyValue  { return attribute.String("league.match_id", id) }
func teamAttr(id string) attribute.KeyValue   { return attribute.String("league.team_id", id) }
