package auth

import "github.com/prometheus/client_golang/prometheus"

func TokenVerifications(result string) prometheus.Counter {
	return tokenVerificationsTotal.WithLabelValues(result)
}

func AuthRequests(endpoint, result string) prometheus.Counter {
	return authRequestsTotal.WithLabelValues(endpoint, result)
}
