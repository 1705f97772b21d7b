package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/samber/do/v2"

	"github.com/fandexapp/fandex-server/internal/metrics"
)

// ProvideMetricsRegistry provides the Prometheus registry backing /metrics.
func ProvideMetricsRegistry(i do.Injector) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg, nil
}

// ProvideMetricsCollector provides the application metric collectors.
func ProvideMetricsCollector(i do.Injector) (*metrics.Collector, error) {
	reg := do.MustInvoke[*prometheus.Registry](i)
	return metrics.NewCollector(reg), nil
}
