package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RunCounter cuenta corridas de reposición por tipo y resultado.
	RunCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "replenishment_runs_total",
			Help: "Total de corridas de reposición",
		},
		[]string{"kind", "status"},
	)

	// ItemCounter cuenta unidades de trabajo (definiciones periódicas o productos faltantes).
	ItemCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "replenishment_items_total",
			Help: "Total de ítems procesados u omitidos por las corridas de reposición",
		},
		[]string{"kind", "status"},
	)

	// RunDuration duración de cada corrida en segundos.
	RunDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "replenishment_run_duration_seconds",
			Help:    "Duración de las corridas de reposición en segundos",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	registerOnce sync.Once
)

// Register registra las métricas una sola vez en reg (normalmente prometheus.DefaultRegisterer).
func Register(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(RunCounter, ItemCounter, RunDuration)
	})
}

// ObserveRun registra el resultado y la duración de una corrida.
func ObserveRun(kind, status string, d time.Duration) {
	RunCounter.WithLabelValues(kind, status).Inc()
	RunDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// ObserveItem registra el resultado de una unidad de trabajo.
func ObserveItem(kind, status string) {
	ItemCounter.WithLabelValues(kind, status).Inc()
}

// Handler expone las métricas del registro por defecto.
func Handler() http.Handler {
	return promhttp.Handler()
}
