package httpapi

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("pool-league/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

// routeAttributes maps mux wildcards to span attribute keys.
var routeAttributes = []struct {
	wildcard string
	key      attribute.Key
}{
	{"seasonID", "league.season_id"},
	{"matchID", "league.match_id"},
	{"teamID", "league.team_id"},
}

// startSpan opens a handler span under the otelhttp server span. Requests the
// tracing middleware filtered out (health, metrics) have no parent and stay
// untraced.
func startSpan(r *http.Request, name string) (context.Context, trace.Span) {
	ctx := r.Context()
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(requestAttributes(r)...))
}

func requestAttributes(r *http.Request) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	for _, ra := range routeAttributes {
		if v := r.PathValue(ra.wildcard); v != "" {
			attrs = append(attrs, ra.key.String(v))
		}
	}
	if actor, ok := actorFromContext(r.Context()); ok {
		attrs = append(attrs, attribute.String("league.actor_id", actor.MemberID))
	}
	return attrs
}

func spanReason(reason string) attribute.KeyValue {
	return attribute.String("error.reason", reason)
}
