package db

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	queryCallsDesc = prometheus.NewDesc(
		"db_query_calls_total",
		"Total calls per named query",
		[]string{"query"}, nil,
	)
	queryErrorsDesc = prometheus.NewDesc(
		"db_query_errors_total",
		"Failed calls per named query, excluding no-rows and duplicate keys",
		[]string{"query"}, nil,
	)
	queryLatencyDesc = prometheus.NewDesc(
		"db_query_latency_seconds",
		"Latency over the recent sample window per named query",
		[]string{"query", "quantile"}, nil,
	)
)

type latencyCollector struct {
	db *Database
}

// NewLatencyCollector exports QueryLatencyStats as Prometheus metrics on each scrape.
func NewLatencyCollector(database *Database) prometheus.Collector {
	return &latencyCollector{db: database}
}

func (c *latencyCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- queryCallsDesc
	ch <- queryErrorsDesc
	ch <- queryLatencyDesc
}

func (c *latencyCollector) Collect(ch chan<- prometheus.Metric) {
	for _, stat := range c.db.QueryLatencyStats() {
		ch <- prometheus.MustNewConstMetric(queryCallsDesc, prometheus.CounterValue, float64(stat.Calls), stat.Name)
		ch <- prometheus.MustNewConstMetric(queryErrorsDesc, prometheus.CounterValue, float64(stat.Errors), stat.Name)
		ch <- prometheus.MustNewConstMetric(queryLatencyDesc, prometheus.GaugeValue, stat.P50.Seconds(), stat.Name, "0.5")
		ch <- prometheus.MustNewConstMetric(queryLatencyDesc, prometheus.GaugeValue, stat.P95.Seconds(), stat.Name, "0.95")
		ch <- prometheus.MustNewConstMetric(queryLatencyDesc, prometheus.GaugeValue, stat.Max.Seconds(), stat.Name, "1")
	}
}
