package metrics

import (
	"fmt"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg     *prom.Registry
	values  *prom.GaugeVec
	records *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the mirror metrics on reg. A nil
// registry gets a fresh one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		values: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "versobench",
			Name:      "metric_value",
			Help:      "Last recorded value of each benchmark metric",
		}, []string{"metric", "submetric", "unit"}),
		records: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "versobench",
			Name:      "records_total",
			Help:      "Benchmark records written by unit",
		}, []string{"unit"}),
	}
	reg.MustRegister(pr.values, pr.records)
	return pr
}

// Registry returns the registry the mirror metrics live on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) Observe(r Record) {
	if p == nil || p.values == nil {
		return
	}
	unit := string(r.Value.Unit())
	p.records.WithLabelValues(unit).Inc()
	if !r.Value.IsNumeric() {
		return
	}
	p.values.WithLabelValues(r.Path, r.Submetric, unit).Set(r.Value.Float())
}

// WriteTextfile writes the registry in the node_exporter textfile collector format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return fmt.Errorf("write prometheus textfile: %w", err)
	}
	return nil
}
