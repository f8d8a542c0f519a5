// Package metrics defines and registers the custom Prometheus metrics of the
// auth service. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation (promauto), so importing the package is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auth"

// Result label values shared by the outcome counters.
const (
	ResultSuccess            = "success"
	ResultInvalidInput       = "invalid_input"
	ResultEmailTaken         = "email_taken"
	ResultInvalidCredentials = "invalid_credentials"
	ResultError              = "error"
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: success, invalid_input, email_taken or error
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, labelled by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: success, invalid_input, invalid_credentials or error
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// RegistrationGuardTotal counts email reservation decisions.
// Label:
//   - result: "acquired", "contended" (held by another request) or "error"
var RegistrationGuardTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registration_guard_total",
		Help:      "Total number of email reservation attempts, labelled by result.",
	},
	[]string{"result"},
)

// PasswordHashDuration measures bcrypt work per operation.
// Label:
//   - op: "hash" or "compare"
var PasswordHashDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_hash_duration_seconds",
		Help:      "Duration of password hash derivation and verification.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
	},
	[]string{"op"},
)
