// Package observability holds the Prometheus collectors and OpenTelemetry
// tracer shared across the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// AuthFailures counts rejected requests at the access guard by reason.
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_auth_failures_total",
		Help: "Total number of requests rejected by the access guard",
	}, []string{"reason"})

	// UsersRegistered counts account creations by origin (local or provider name).
	UsersRegistered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_users_registered_total",
		Help: "Total number of accounts created",
	}, []string{"origin"})

	// TokensIssued counts bearer tokens minted by flow.
	TokensIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_tokens_issued_total",
		Help: "Total number of bearer tokens issued",
	}, []string{"flow"})
)
