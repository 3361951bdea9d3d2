// Package metrics exposes Prometheus metrics of the live lead feed
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all feed metrics on a dedicated prometheus registry
type Registry struct {
	reg *prometheus.Registry

	Ticks     *prometheus.CounterVec
	Evictions prometheus.Counter
	ListSize  prometheus.Gauge
	Viewers   prometheus.Gauge
}

// NewRegistry creates a registry with feed metrics and the standard go/process collectors
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		Ticks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zenflow_feed_ticks_total",
				Help: "Total number of feed ticks by result",
			},
			[]string{"result"},
		),
		Evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "zenflow_feed_evictions_total",
			Help: "Total number of leads evicted from the live list",
		}),
		ListSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "zenflow_feed_list_size",
			Help: "Current number of leads in the live list",
		}),
		Viewers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "zenflow_feed_viewers",
			Help: "Number of connected live feed viewers",
		}),
	}

	r.reg.MustRegister(
		r.Ticks, r.Evictions, r.ListSize, r.Viewers,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveTick counts a tick with its result
func (r *Registry) ObserveTick(result string) { r.Ticks.WithLabelValues(result).Inc() }

// ObserveEvictions counts evicted leads
func (r *Registry) ObserveEvictions(n int) {
	if n > 0 {
		r.Evictions.Add(float64(n))
	}
}

// SetListSize records the live list length
func (r *Registry) SetListSize(n int) { r.ListSize.Set(float64(n)) }

// SetViewers records the number of connected viewers
func (r *Registry) SetViewers(n int) { r.Viewers.Set(float64(n)) }

// Handler serves the metrics in the Prometheus exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}
