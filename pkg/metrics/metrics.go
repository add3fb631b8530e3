package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request latency in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// Routing decisions by destination queue and priority tier.
	RoutingDecisionCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routing_decision_count",
			Help: "Total number of routing decisions",
		},
		[]string{"queue", "priority"},
	)

	// LLM completion latency in milliseconds.
	LLMCallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_call_latency_ms",
			Help:    "LLM completion call latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10), // 100ms to ~100s
		},
		[]string{"model", "status"},
	)

	// Agent task executions by agent id and outcome.
	AgentTaskCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_task_count",
			Help: "Total number of agent task executions",
		},
		[]string{"agent", "status"},
	)

	// Workflow webhook trigger outcomes.
	WorkflowTriggerCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_trigger_count",
			Help: "Total number of workflow webhook triggers",
		},
		[]string{"queue", "status"},
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func IncrementRoutingDecision(queue, priority string) {
	RoutingDecisionCount.WithLabelValues(queue, priority).Inc()
}

func RecordLLMCallLatency(model, status string, duration time.Duration) {
	LLMCallLatency.WithLabelValues(model, status).Observe(float64(duration.Milliseconds()))
}

func IncrementAgentTask(agent, status string) {
	AgentTaskCount.WithLabelValues(agent, status).Inc()
}

func IncrementWorkflowTrigger(queue, status string) {
	WorkflowTriggerCount.WithLabelValues(queue, status).Inc()
}
