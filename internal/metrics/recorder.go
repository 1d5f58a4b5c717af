package metrics

import (
	"math"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/san-kum/circsim/internal/circulation"
	"github.com/san-kum/circsim/internal/report"
	"github.com/san-kum/circsim/internal/sim"
)

const namespace = "circsim"

// Recorder exports solver progress and the final indices as Prometheus
// metrics. It implements sim.Observer.
type Recorder struct {
	registry   *prometheus.Registry
	iterations prometheus.Counter
	drift      *prometheus.GaugeVec
	maxDrift   prometheus.Gauge
	converged  prometheus.Gauge
	indices    *prometheus.GaugeVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "iterations_total",
			Help:      "Outer steady-state iterations completed.",
		}),
		drift: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "volume_drift_ml",
			Help:      "Start-to-end volume difference of the last cycle.",
		}, []string{"compartment"}),
		maxDrift: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "max_volume_drift_ml",
			Help:      "Largest compartment drift of the last cycle.",
		}),
		converged: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "converged",
			Help:      "1 once every compartment drift is within tolerance.",
		}),
		indices: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "hemodynamic_index",
			Help:      "Summary hemodynamic indices of the steady-state cycle.",
		}, []string{"index"}),
	}
	r.registry.MustRegister(r.iterations, r.drift, r.maxDrift, r.converged, r.indices)
	return r
}

func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

func (r *Recorder) OnIteration(it sim.Iteration) {
	r.iterations.Inc()

	m := 0.0
	for i, d := range it.Drift {
		r.drift.WithLabelValues(circulation.Compartment(i).String()).Set(d)
		m = math.Max(m, d)
	}
	r.maxDrift.Set(m)

	if it.Converged {
		r.converged.Set(1)
	} else {
		r.converged.Set(0)
	}
}

func (r *Recorder) ObserveIndices(idx report.Indices) {
	for name, v := range idx.Named() {
		r.indices.WithLabelValues(name).Set(v)
	}
}

// WriteTextfile dumps the registry in the node-exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
