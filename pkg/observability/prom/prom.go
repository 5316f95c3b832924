// Package prom implements the observability hooks with Prometheus
// collectors.
//
// gentree is a batch tool, so metrics are not scraped; the CLI writes the
// registry to a node_exporter textfile with [WriteTextfile] when the run
// ends.
package prom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	gerrors "github.com/matzehuels/gentree/pkg/errors"
	"github.com/matzehuels/gentree/pkg/observability"
)

const namespace = "gentree"

var durationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// PipelineHooks records pipeline events.
type PipelineHooks struct {
	LoadsTotal     *prometheus.CounterVec   // status
	VerticesLoaded prometheus.Gauge
	LayoutDuration *prometheus.HistogramVec // strategy, status
	LayoutsTotal   *prometheus.CounterVec   // strategy, status
	NodesTotal     *prometheus.CounterVec   // strategy
	FailedRoots    *prometheus.CounterVec   // strategy
	Compressed     *prometheus.CounterVec   // strategy
	RenderDuration *prometheus.HistogramVec // format, status
	RenderBytes    *prometheus.CounterVec   // format
}

// NewPipelineHooks registers the pipeline collectors with reg.
func NewPipelineHooks(reg prometheus.Registerer) *PipelineHooks {
	f := promauto.With(reg)
	return &PipelineHooks{
		LoadsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "load",
			Name:      "total",
			Help:      "Forest files read, by status",
		}, []string{"status"}),
		VerticesLoaded: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "load",
			Name:      "vertices",
			Help:      "Vertices in the last forest read",
		}),
		LayoutDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "layout",
			Name:      "duration_seconds",
			Help:      "Time spent laying out a forest",
			Buckets:   durationBuckets,
		}, []string{"strategy", "status"}),
		LayoutsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "layout",
			Name:      "total",
			Help:      "Layouts computed, by strategy and status",
		}, []string{"strategy", "status"}),
		NodesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "layout",
			Name:      "nodes_total",
			Help:      "Diagram nodes emitted",
		}, []string{"strategy"}),
		FailedRoots: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "layout",
			Name:      "failed_roots_total",
			Help:      "Roots skipped because their subtree is not a forest",
		}, []string{"strategy"}),
		Compressed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "layout",
			Name:      "compressed_vertices_total",
			Help:      "Chain vertices left out of diagrams",
		}, []string{"strategy"}),
		RenderDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "duration_seconds",
			Help:      "Time spent rendering one output format",
			Buckets:   durationBuckets,
		}, []string{"format", "status"}),
		RenderBytes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "bytes_total",
			Help:      "Bytes of rendered output",
		}, []string{"format"}),
	}
}

// status maps an error to a label value: "ok" or its error code.
func status(err error) string {
	if err == nil {
		return "ok"
	}
	if code := gerrors.GetCode(err); code != "" {
		return string(code)
	}
	return "error"
}

func (h *PipelineHooks) OnLoadComplete(_ context.Context, vertexCount, _ int, _ time.Duration, err error) {
	h.LoadsTotal.WithLabelValues(status(err)).Inc()
	if err == nil {
		h.VerticesLoaded.Set(float64(vertexCount))
	}
}

func (h *PipelineHooks) OnLayoutStart(context.Context, string, int) {}

func (h *PipelineHooks) OnLayoutComplete(_ context.Context, strategy string, stats observability.LayoutStats, d time.Duration, err error) {
	st := status(err)
	h.LayoutDuration.WithLabelValues(strategy, st).Observe(d.Seconds())
	h.LayoutsTotal.WithLabelValues(strategy, st).Inc()
	h.NodesTotal.WithLabelValues(strategy).Add(float64(stats.Nodes))
	h.FailedRoots.WithLabelValues(strategy).Add(float64(stats.FailedRoots))
	h.Compressed.WithLabelValues(strategy).Add(float64(stats.Compressed))
}

func (h *PipelineHooks) OnRenderStart(context.Context, []string) {}

func (h *PipelineHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	h.RenderDuration.WithLabelValues(format, status(err)).Observe(d.Seconds())
	if err == nil {
		h.RenderBytes.WithLabelValues(format).Add(float64(size))
	}
}

// CacheHooks records cache events.
type CacheHooks struct {
	Requests *prometheus.CounterVec // key_type, result
	Written  *prometheus.CounterVec // key_type
}

// NewCacheHooks registers the cache collectors with reg.
func NewCacheHooks(reg prometheus.Registerer) *CacheHooks {
	f := promauto.With(reg)
	return &CacheHooks{
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "requests_total",
			Help:      "Cache lookups, by key type and result",
		}, []string{"key_type", "result"}),
		Written: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "written_bytes_total",
			Help:      "Bytes written to the cache",
		}, []string{"key_type"}),
	}
}

func (h *CacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Requests.WithLabelValues(keyType, "hit").Inc()
}

func (h *CacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Requests.WithLabelValues(keyType, "miss").Inc()
}

func (h *CacheHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Written.WithLabelValues(keyType).Add(float64(size))
}

// Register creates both hook sets on a fresh registry, installs them as
// the global hooks and returns the registry.
func Register() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	observability.SetPipelineHooks(NewPipelineHooks(reg))
	observability.SetCacheHooks(NewCacheHooks(reg))
	return reg
}

// WriteTextfile writes every metric in g to path in the text exposition
// format, replacing the file atomically.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}

var (
	_ observability.PipelineHooks = (*PipelineHooks)(nil)
	_ observability.CacheHooks    = (*CacheHooks)(nil)
)
