package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeSuccess            = "success"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeInvalidRequest     = "invalid_request"
	OutcomeNotFound           = "not_found"
	OutcomeError              = "error"
)

var topicsDesc = prometheus.NewDesc(
	"contentdash_topics",
	"Number of topics by review status",
	[]string{"status"},
	nil,
)

var (
	loginAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "contentdash_login_attempts_total",
		Help: "Total login attempts by outcome",
	}, []string{"outcome"})

	topicUpdates = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "contentdash_topic_updates_total",
		Help: "Total topic update requests by field and outcome",
	}, []string{"field", "outcome"})
)

// StatusCounter reports topic counts per status.
type StatusCounter interface {
	CountTopicsByStatus(ctx context.Context) (map[string]int64, error)
}

// TopicCollector is a custom Prometheus collector that reads topic counts
// from the store on each scrape.
type TopicCollector struct {
	store   StatusCounter
	timeout time.Duration
}

// NewTopicCollector creates a collector backed by the given store.
func NewTopicCollector(store StatusCounter) *TopicCollector {
	return &TopicCollector{store: store, timeout: 5 * time.Second}
}

// Describe sends the metric descriptor to the channel.
func (c *TopicCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- topicsDesc
}

// Collect queries the store and emits one gauge per status.
func (c *TopicCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	counts, err := c.store.CountTopicsByStatus(ctx)
	if err != nil {
		slog.Error("failed to collect topic metrics", "error", err)
		return
	}
	for status, n := range counts {
		ch <- prometheus.MustNewConstMetric(topicsDesc, prometheus.GaugeValue, float64(n), status)
	}
}

var initOnce sync.Once

// Init registers the collectors with the default registry.
// Must be called once at startup.
func Init(store StatusCounter) {
	initOnce.Do(func() {
		if err := register(prometheus.DefaultRegisterer, store); err != nil {
			slog.Error("failed to register metrics", "error", err)
		}
	})
}

func register(reg prometheus.Registerer, store StatusCounter) error {
	for _, c := range []prometheus.Collector{NewTopicCollector(store), loginAttempts, topicUpdates} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// RecordLogin counts a login attempt.
func RecordLogin(outcome string) {
	loginAttempts.WithLabelValues(outcome).Inc()
}

// RecordTopicUpdate counts a topic update request.
func RecordTopicUpdate(field, outcome string) {
	topicUpdates.WithLabelValues(field, outcome).Inc()
}
