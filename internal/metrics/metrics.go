// Package metrics instruments the preview server and CLI with Prometheus
// counters. The library packages stay metric-free; call sites record here.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "schemaorg"

// Registry holds every metric this process exposes.
var Registry = prometheus.NewRegistry()

// AppInfo exposes build information as labels; the value is always 1.
var AppInfo = promauto.With(Registry).NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "app_info",
		Help:      "Application build information (always 1, details in labels)",
	},
	[]string{"version", "commit", "build_date"},
)

// RendersTotal counts render operations by output format and outcome.
var RendersTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "renders_total",
		Help:      "Total number of entity render operations",
	},
	[]string{"format", "status"},
)

// RenderDuration records render latency in seconds. Rendering is
// in-process, so the buckets sit well below network scale.
var RenderDuration = promauto.With(Registry).NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "render_duration_seconds",
		Help:      "Entity render latency in seconds",
		Buckets:   []float64{.00005, .0001, .0005, .001, .005, .01, .05, .1},
	},
	[]string{"format"},
)

// ValidationsTotal counts validation runs by outcome.
var ValidationsTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validations_total",
		Help:      "Total number of entity validation runs",
	},
	[]string{"outcome"},
)

// ValidationFindings counts individual findings by severity.
var ValidationFindings = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_findings_total",
		Help:      "Total number of validation findings reported",
	},
	[]string{"severity"},
)

// RecordRender tracks one render call. Pass the start time and the error
// returned by the renderer.
func RecordRender(format string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	RendersTotal.WithLabelValues(format, status).Inc()
	RenderDuration.WithLabelValues(format).Observe(time.Since(start).Seconds())
}

// RecordValidation tracks one validation run and its finding counts.
func RecordValidation(valid bool, errors, warnings int) {
	outcome := "valid"
	if !valid {
		outcome = "invalid"
	}
	ValidationsTotal.WithLabelValues(outcome).Inc()
	if errors > 0 {
		ValidationFindings.WithLabelValues("error").Add(float64(errors))
	}
	if warnings > 0 {
		ValidationFindings.WithLabelValues("warning").Add(float64(warnings))
	}
}

// Init registers runtime collectors and stamps build information.
func Init(version, commit, buildDate string) {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	AppInfo.WithLabelValues(version, commit, buildDate).Set(1)
}
