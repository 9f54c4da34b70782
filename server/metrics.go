package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/notargets/phenolcst/phenol_water"
)

const MetricNamespace = "phenolcst"

type Metrics struct {
	Registry        *prometheus.Registry
	Experiments     prometheus.Counter
	Fallbacks       *prometheus.CounterVec
	CSVDownloads    prometheus.Counter
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics registers the server collectors on a fresh registry
func NewMetrics() (m *Metrics) {
	m = &Metrics{
		Registry: prometheus.NewRegistry(),
		Experiments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Name:      "experiments_total",
			Help:      "Number of simulated experiments run",
		}),
		Fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Name:      "fit_fallbacks_total",
			Help:      "Experiments reporting the observed maximum instead of the fit vertex, by cause",
		}, []string{"cause"}),
		CSVDownloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Name:      "csv_downloads_total",
			Help:      "Number of observation tables downloaded",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: MetricNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "Time to serve a request, by route and status",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
	m.Registry.MustRegister(
		m.Experiments, m.Fallbacks, m.CSVDownloads, m.RequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return
}

func (m *Metrics) ObserveExperiment(res phenol_water.Result) {
	m.Experiments.Inc()
	if res.Estimate.FellBack() {
		m.Fallbacks.WithLabelValues(res.Estimate.FallbackCause).Inc()
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Instrument records the duration of each request against its chi route pattern
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		t1 := time.Now()
		next.ServeHTTP(ww, r)
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.RequestDuration.WithLabelValues(route, http.StatusText(status)).Observe(time.Since(t1).Seconds())
	})
}
