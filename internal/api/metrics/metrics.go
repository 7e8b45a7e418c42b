// Package metrics defines and registers the custom Prometheus metrics for the
// LearnHub client gateway. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "learnhub"

// LoginsTotal counts login attempts.
// Labels:
//   - method: "demo" (resolved from the local account table) or "remote"
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by method and result.",
	},
	[]string{"method", "result"},
)

// GuardDecisionsTotal counts route guard outcomes.
// Label:
//   - decision: "allow", "redirect_login", or "redirect_home"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of navigation attempts evaluated by the route guard, by decision.",
	},
	[]string{"decision"},
)

// SessionResetsTotal counts forced session resets.
// Label:
//   - reason: "logout" or "auth_expired"
var SessionResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_resets_total",
		Help:      "Total number of times the session was reset to unauthenticated.",
	},
	[]string{"reason"},
)
