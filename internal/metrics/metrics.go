// Package metrics exposes Prometheus collectors for the server.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for catalog request metrics.
const (
	OutcomeOK          = "ok"
	OutcomeNotFound    = "not_found"
	OutcomeRateLimited = "rate_limited"
	OutcomeError       = "error"
)

// Collector bundles the server's Prometheus metrics.
// A nil *Collector is a valid no-op recorder, so tests can skip registration.
type Collector struct {
	catalogRequests *prometheus.CounterVec
	httpResponses   *prometheus.CounterVec
}

// NewCollector creates the collectors and registers them with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		catalogRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fandex",
			Subsystem: "catalog",
			Name:      "requests_total",
			Help:      "Outbound catalog API requests by catalog, operation and outcome.",
		}, []string{"catalog", "operation", "outcome"}),
		httpResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fandex",
			Subsystem: "http",
			Name:      "responses_total",
			Help:      "HTTP responses by method and status code.",
		}, []string{"method", "code"}),
	}

	if reg != nil {
		reg.MustRegister(c.catalogRequests, c.httpResponses)
	}

	return c
}

// CatalogRequest records one outbound catalog API call.
func (c *Collector) CatalogRequest(catalog, operation, outcome string) {
	if c == nil {
		return
	}
	c.catalogRequests.WithLabelValues(catalog, operation, outcome).Inc()
}

// HTTPResponse records one served HTTP response.
func (c *Collector) HTTPResponse(method string, code int) {
	if c == nil {
		return
	}
	c.httpResponses.WithLabelValues(method, strconv.Itoa(code)).Inc()
}
