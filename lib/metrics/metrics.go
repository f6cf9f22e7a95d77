package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Ticks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tallyframe_frame_ticks_total",
		Help: "Total number of frame callbacks run by the frame loop",
	})
	FramesRendered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tallyframe_frames_rendered_total",
		Help: "Total number of chart frames rendered",
	})
	LayersDrawn = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tallyframe_layers_drawn_total",
		Help: "Total number of layers handed to a draw routine",
	}, []string{"scene"})
	Exports = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tallyframe_document_exports_total",
		Help: "Total number of documents exported",
	})
	Imports = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tallyframe_document_imports_total",
		Help: "Total number of documents restored",
	})
	ImportsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tallyframe_document_imports_rejected_total",
		Help: "Total number of documents refused on import",
	})
	MutationsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tallyframe_mutations_rejected_total",
		Help: "Total number of layer or animation mutations that were refused",
	}, []string{"op"})

	CurrentTime = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "tallyframe_timeline_current_time_ms",
		Help: "Playhead position of each scene in milliseconds",
	}, []string{"scene"})
	LayerCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "tallyframe_layers",
		Help: "Number of layers in each scene, root excluded",
	}, []string{"scene"})
)

// SceneMetrics holds the per-scene series so the frame loop does not look
// labels up on every tick.
type SceneMetrics struct {
	CurrentTime prometheus.Gauge
	LayerCount  prometheus.Gauge
	LayersDrawn prometheus.Counter
}

func NewSceneMetrics(name string) SceneMetrics {
	s := SceneMetrics{
		CurrentTime: CurrentTime.WithLabelValues(name),
		LayerCount:  LayerCount.WithLabelValues(name),
		LayersDrawn: LayersDrawn.WithLabelValues(name),
	}
	s.LayersDrawn.Add(0)
	return s
}

// Handler should usually be mounted at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
