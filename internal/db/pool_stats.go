package db

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// poolCollector exports pgxpool statistics at scrape time
type poolCollector struct {
	pool *pgxpool.Pool

	total        *prometheus.Desc
	idle         *prometheus.Desc
	acquired     *prometheus.Desc
	max          *prometheus.Desc
	acquireCount *prometheus.Desc
	acquireWait  *prometheus.Desc
}

// Collector returns a prometheus collector over the pool statistics
func (db *PostgresDB) Collector() prometheus.Collector {
	return newPoolCollector(db.Pool)
}

func newPoolCollector(pool *pgxpool.Pool) *poolCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName("campuslink", "db_pool", name), help, nil, nil)
	}
	return &poolCollector{
		pool:         pool,
		total:        desc("connections", "Connections currently open."),
		idle:         desc("idle_connections", "Open connections not in use."),
		acquired:     desc("acquired_connections", "Connections checked out by queries."),
		max:          desc("max_connections", "Configured pool size."),
		acquireCount: desc("acquires_total", "Successful connection acquisitions."),
		acquireWait:  desc("acquire_wait_seconds_total", "Time spent waiting for a connection."),
	}
}

func (c *poolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.total
	ch <- c.idle
	ch <- c.acquired
	ch <- c.max
	ch <- c.acquireCount
	ch <- c.acquireWait
}

func (c *poolCollector) Collect(ch chan<- prometheus.Metric) {
	stat := c.pool.Stat()
	ch <- prometheus.MustNewConstMetric(c.total, prometheus.GaugeValue, float64(stat.TotalConns()))
	ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(stat.IdleConns()))
	ch <- prometheus.MustNewConstMetric(c.acquired, prometheus.GaugeValue, float64(stat.AcquiredConns()))
	ch <- prometheus.MustNewConstMetric(c.max, prometheus.GaugeValue, float64(stat.MaxConns()))
	ch <- prometheus.MustNewConstMetric(c.acquireCount, prometheus.CounterValue, float64(stat.AcquireCount()))
	ch <- prometheus.MustNewConstMetric(c.acquireWait, prometheus.CounterValue, stat.AcquireDuration().Seconds())
}
