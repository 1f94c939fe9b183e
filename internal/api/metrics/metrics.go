// Package metrics defines and registers all custom Prometheus metrics for
// the market API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import
// time via promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "market"

// LoginsTotal counts login form submissions by outcome.
// Label:
//   - result: "success", "invalid_captcha", or "invalid_credentials"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ChallengesIssuedTotal counts security codes generated for the login form.
var ChallengesIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "challenges_issued_total",
		Help:      "Total number of login challenges generated.",
	},
)

// APIKeyChecksTotal counts API key gate decisions.
// Label:
//   - result: "ok", "missing", or "invalid"
var APIKeyChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_key_checks_total",
		Help:      "Total number of API key verifications, labelled by result.",
	},
	[]string{"result"},
)

// ProductMutationsTotal counts successful product writes.
// Label:
//   - action: "create", "update", or "delete"
var ProductMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_mutations_total",
		Help:      "Total number of successful product writes, by action.",
	},
	[]string{"action"},
)
