package guardian

import (
	"net/http"
	"sync"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	MetricsInjector = wire.NewSet(NewMetricsContainer, NewPrometheusHandler)
	sharedContainer *MetricsContainer
	once            sync.Once
)

type MetricsContainer struct {
	CyclesRun      prometheus.Counter
	FetchFailures  prometheus.Counter
	QueuesObserved prometheus.Gauge
	WarningsSent   prometheus.Counter
	QueuesDeleted  prometheus.Counter
	CycleDuration  prometheus.Gauge
}

func NewMetricsContainer() *MetricsContainer {
	once.Do(func() {
		sharedContainer = newMetricsContainer()
	})
	return sharedContainer
}

func newMetricsContainer() *MetricsContainer {
	container := &MetricsContainer{}
	container.CyclesRun = promauto.NewCounter(prometheus.CounterOpts{
		Name: "guardian_cycles_run_total",
		Help: "Number of enforcement cycles completed",
	})
	container.FetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "guardian_fetch_failures_total",
		Help: "Number of cycles aborted because the broker snapshot could not be fetched",
	})
	container.QueuesObserved = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "guardian_queues_observed",
		Help: "Number of queues reported by the broker in the latest snapshot",
	})
	container.WarningsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "guardian_warnings_total",
		Help: "Number of queues warned for crossing the warning threshold",
	})
	container.QueuesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "guardian_deletes_total",
		Help: "Number of queues deleted for crossing the delete threshold",
	})
	container.CycleDuration = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "guardian_cycle_duration_seconds",
		Help: "Duration of the latest enforcement cycle",
	})
	return container
}

func NewPrometheusHandler() http.Handler {
	return promhttp.Handler()
}
