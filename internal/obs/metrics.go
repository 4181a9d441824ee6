// Package obs exposes the engine's counters: Prometheus series for
// scraping plus in-process latency aggregates for the console report.
package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TicksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "hft_ticks_total", Help: "Count of market ticks processed"},
		[]string{"symbol"},
	)
	OrdersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "hft_orders_total", Help: "Orders admitted past the risk gate"},
		[]string{"strategy", "side"},
	)
	OrdersRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "hft_orders_rejected_total", Help: "Orders rejected by the risk gate"},
		[]string{"reason"},
	)
	FillsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "hft_fills_total", Help: "Orders filled by the execution simulator"},
	)
	OrdersUnfilled = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "hft_orders_unfilled_total", Help: "Orders dropped unfilled by the execution simulator"},
	)
)

func init() {
	prometheus.MustRegister(TicksTotal, OrdersTotal, OrdersRejected, FillsTotal, OrdersUnfilled)
}

// RegisterQueueDepth publishes a queue's live depth as a gauge.
func RegisterQueueDepth(queue string, depth func() int) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name:        "hft_queue_depth",
			Help:        "Items currently waiting in an internal queue",
			ConstLabels: prometheus.Labels{"queue": queue},
		},
		func() float64 { return float64(depth()) },
	))
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
