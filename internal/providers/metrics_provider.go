package providers

import (
	"sld/internal/models"
	"sld/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncMessagesScanned()
	IncCandidates(kind string, count int)
	IncResolutions(outcome string)
	ObserveResolveDuration(duration time.Duration)
	IncRepliesSent()
	IncRepliesSuppressed(reason string)
	IncStoreOps(collection string, result string)
	IncImportItems(result string, count int)
	ObservePersistenceDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	messagesScanned     prometheus.Counter
	candidatesTotal     *prometheus.CounterVec
	resolutionsTotal    *prometheus.CounterVec
	resolveDuration     prometheus.Histogram
	repliesSent         prometheus.Counter
	repliesSuppressed   *prometheus.CounterVec
	storeOpsTotal       *prometheus.CounterVec
	importItemsTotal    *prometheus.CounterVec
	persistenceDuration prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncMessagesScanned() {
	m.messagesScanned.Inc()
}

func (m *MetricsProvider) IncCandidates(kind string, count int) {
	m.candidatesTotal.WithLabelValues(kind).Add(float64(count))
}

func (m *MetricsProvider) IncResolutions(outcome string) {
	m.resolutionsTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) ObserveResolveDuration(duration time.Duration) {
	m.resolveDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncRepliesSent() {
	m.repliesSent.Inc()
}

func (m *MetricsProvider) IncRepliesSuppressed(reason string) {
	m.repliesSuppressed.WithLabelValues(reason).Inc()
}

func (m *MetricsProvider) IncStoreOps(collection string, result string) {
	m.storeOpsTotal.WithLabelValues(collection, result).Inc()
}

func (m *MetricsProvider) IncImportItems(result string, count int) {
	m.importItemsTotal.WithLabelValues(result).Add(float64(count))
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, profiles *models.ProfileStore, groups *models.GroupStore, settings *models.SettingsStore) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sld_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sld_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		messagesScanned: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sld_messages_scanned_total",
			Help: "Total number of messages scanned for Steam links",
		}),

		candidatesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sld_candidates_total",
			Help: "Total number of extracted candidates by pattern kind",
		}, []string{"kind"}),

		resolutionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sld_resolutions_total",
			Help: "Total number of identity resolutions by outcome",
		}, []string{"outcome"}),

		resolveDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "sld_resolve_duration_seconds",
			Help:    "Duration of vanity resolution calls in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		repliesSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sld_replies_sent_total",
			Help: "Total number of automatic detection replies sent",
		}),

		repliesSuppressed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sld_replies_suppressed_total",
			Help: "Total number of suppressed automatic replies by reason",
		}, []string{"reason"}),

		storeOpsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sld_store_ops_total",
			Help: "Total number of directory mutations by collection and result",
		}, []string{"collection", "result"}),

		importItemsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sld_import_items_total",
			Help: "Total number of import items by result",
		}, []string{"result"}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "sld_persistence_duration_seconds",
			Help:    "Duration of persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "sld_profiles_total",
		Help: "Current number of stored profiles",
	}, func() float64 {
		return float64(profiles.Len())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "sld_groups_total",
		Help: "Current number of stored groups",
	}, func() float64 {
		return float64(groups.Len())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "sld_guilds_configured",
		Help: "Number of guilds with an explicit detection setting",
	}, func() float64 {
		return float64(settings.Len())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncMessagesScanned()                              {}
func (n *noopMetrics) IncCandidates(_ string, _ int)                    {}
func (n *noopMetrics) IncResolutions(_ string)                          {}
func (n *noopMetrics) ObserveResolveDuration(_ time.Duration)           {}
func (n *noopMetrics) IncRepliesSent()                                  {}
func (n *noopMetrics) IncRepliesSuppressed(_ string)                    {}
func (n *noopMetrics) IncStoreOps(_ string, _ string)                   {}
func (n *noopMetrics) IncImportItems(_ string, _ int)                   {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
