// Package metrics defines and registers all custom Prometheus metrics for the
// BizSphere marketplace API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed on /metrics by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bizsphere"

// ── Identity metrics ──────────────────────────────────────────────────────────

// AccountsRegisteredTotal counts successful registrations.
// Label:
//   - role: the role the account ended up with (e.g. "owner", "admin")
var AccountsRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_registered_total",
		Help:      "Total number of accounts registered, by resulting role.",
	},
	[]string{"role"},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "throttled" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ── Admin metrics ─────────────────────────────────────────────────────────────

// BusinessVerificationsTotal counts admin review decisions.
// Label:
//   - status: "approved", "rejected" or "pending"
var BusinessVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "business_verifications_total",
		Help:      "Total number of business verification decisions, by status.",
	},
	[]string{"status"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// ProductMutationsTotal counts successful product writes.
// Label:
//   - operation: "create", "update" or "delete"
var ProductMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_mutations_total",
		Help:      "Total number of product writes, by operation.",
	},
	[]string{"operation"},
)
