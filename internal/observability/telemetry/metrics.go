package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Pipeline metrics
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campus_assistant_requests_total",
		Help: "Assistant requests by intent, channel and response type",
	}, []string{"intent", "channel", "response_type"})

	ClassifyLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "campus_assistant_classify_latency_seconds",
		Help:    "Text classification latency",
		Buckets: prometheus.DefBuckets,
	})

	GenerateLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "campus_assistant_generate_latency_seconds",
		Help:    "Response generation latency",
		Buckets: prometheus.DefBuckets,
	})

	TranscriptionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campus_assistant_transcriptions_total",
		Help: "Speech-to-text attempts by status",
	}, []string{"status"})

	TranslationFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "campus_assistant_translation_fallbacks_total",
		Help: "Inputs processed untranslated after a detection or translation failure",
	})

	// Knowledge store metrics
	KnowledgeRecords = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "campus_assistant_knowledge_records",
		Help: "Records stored per knowledge category",
	}, []string{"category"})

	KnowledgeWrites = promauto.NewCounter(prometheus.CounterOpts{
		Name: "campus_assistant_knowledge_writes_total",
		Help: "Full-document rewrites of the knowledge file",
	})
)
