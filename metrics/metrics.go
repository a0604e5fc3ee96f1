package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PromptsRendered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slogan_prompts_rendered_total",
		Help: "Prompts rendered by style.",
	}, []string{"style"})

	CompletionRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slogan_completion_requests_total",
		Help: "Completion requests sent, by provider and model.",
	}, []string{"provider", "model"})

	CompletionErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slogan_completion_errors_total",
		Help: "Failed generations by kind.",
	}, []string{"kind"}) // kind: config_missing|request_failed

	CompletionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "slogan_completion_duration_seconds",
		Help:    "Time spent waiting on the completion service.",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 8), // 0.25s..32s
	}, []string{"provider"})
)

func IncPromptRendered(style string) {
	PromptsRendered.WithLabelValues(style).Inc()
}

func IncCompletionRequest(provider, model string) {
	CompletionRequests.WithLabelValues(provider, model).Inc()
}

func IncError(kind string) {
	CompletionErrors.WithLabelValues(kind).Inc()
}

func ObserveCompletion(provider string, d time.Duration) {
	CompletionDuration.WithLabelValues(provider).Observe(d.Seconds())
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
