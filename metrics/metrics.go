package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	MessageProcessedCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flowbot_messages_processed_total",
			Help: "Total number of processed user messages",
		},
		[]string{"flow", "status"},
	)

	NodeExecutionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flowbot_node_execution_duration_seconds",
			Help:    "Duration of each node execution in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"nodeType"},
	)
)

func Register() {
	prometheus.MustRegister(MessageProcessedCount)
	prometheus.MustRegister(NodeExecutionDuration)
}
