package auth

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Token verification outcomes.
const (
	verifySuccess = "success"
	verifyMissing = "missing"
	verifyInvalid = "invalid"
	verifyExpired = "expired"
)

var (
	// authRequestsTotal counts login and register attempts by endpoint and result.
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Total authentication requests by endpoint and result",
		},
		[]string{"endpoint", "result"}, // result: success | failure
	)

	// authDuration tracks login and register duration, dominated by bcrypt.
	authDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "auth_duration_seconds",
			Help:    "Authentication duration by endpoint",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		},
		[]string{"endpoint"},
	)

	// tokenVerificationsTotal counts token checks on protected routes.
	tokenVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_token_verifications_total",
			Help: "Token verifications on protected routes by result",
		},
		[]string{"result"},
	)
)

// RecordAuthRequest records the outcome and duration of a login or register call.
func RecordAuthRequest(endpoint string, err error, start time.Time) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	authRequestsTotal.WithLabelValues(endpoint, result).Inc()
	authDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

func recordVerification(result string) {
	tokenVerificationsTotal.WithLabelValues(result).Inc()
}
