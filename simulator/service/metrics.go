package service

import (
	"sync"

	"github.com/Gthulhu/schedsim/report"
	"github.com/Gthulhu/schedsim/scheduler"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const metricNamespace = "schedsim"

type policyStats struct {
	runs           float64
	failures       float64
	processes      float64
	lastAvgWaiting float64
	lastAvgTurn    float64
	lastMakespan   float64
}

// MetricCollector exposes simulation counters as a prometheus.Collector.
type MetricCollector struct {
	mu        sync.Mutex
	stats     map[scheduler.Policy]*policyStats
	cacheHits float64
	cacheMiss float64

	runsDesc       *prometheus.Desc
	failuresDesc   *prometheus.Desc
	processesDesc  *prometheus.Desc
	avgWaitingDesc *prometheus.Desc
	avgTurnDesc    *prometheus.Desc
	makespanDesc   *prometheus.Desc
	cacheDesc      *prometheus.Desc
}

func NewMetricCollector(machineID string) *MetricCollector {
	constLabels := prometheus.Labels{"machine_id": machineID}
	policyLabel := []string{"policy"}
	return &MetricCollector{
		stats: make(map[scheduler.Policy]*policyStats),
		runsDesc: prometheus.NewDesc(
			prometheus.BuildFQName(metricNamespace, "", "runs_total"),
			"Number of completed simulations.", policyLabel, constLabels),
		failuresDesc: prometheus.NewDesc(
			prometheus.BuildFQName(metricNamespace, "", "run_failures_total"),
			"Number of simulations rejected or failed.", policyLabel, constLabels),
		processesDesc: prometheus.NewDesc(
			prometheus.BuildFQName(metricNamespace, "", "processes_scheduled_total"),
			"Number of processes scheduled.", policyLabel, constLabels),
		avgWaitingDesc: prometheus.NewDesc(
			prometheus.BuildFQName(metricNamespace, "", "last_average_waiting_time"),
			"Average waiting time of the latest simulation.", policyLabel, constLabels),
		avgTurnDesc: prometheus.NewDesc(
			prometheus.BuildFQName(metricNamespace, "", "last_average_turnaround_time"),
			"Average turnaround time of the latest simulation.", policyLabel, constLabels),
		makespanDesc: prometheus.NewDesc(
			prometheus.BuildFQName(metricNamespace, "", "last_makespan"),
			"Makespan of the latest simulation.", policyLabel, constLabels),
		cacheDesc: prometheus.NewDesc(
			prometheus.BuildFQName(metricNamespace, "", "report_cache_lookups_total"),
			"Report cache lookups by outcome.", []string{"outcome"}, constLabels),
	}
}

func (c *MetricCollector) statsFor(policy scheduler.Policy) *policyStats {
	s, ok := c.stats[policy]
	if !ok {
		s = &policyStats{}
		c.stats[policy] = s
	}
	return s
}

// ObserveRun records a finished simulation.
func (c *MetricCollector) ObserveRun(policy scheduler.Policy, rep *report.Report) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.statsFor(policy)
	s.runs++
	s.processes += float64(len(rep.Rows))
	s.lastAvgWaiting = rep.Summary.AverageWaitingTime
	s.lastAvgTurn = rep.Summary.AverageTurnaroundTime
	s.lastMakespan = rep.Summary.Makespan.Float64()
}

func (c *MetricCollector) ObserveFailure(policy scheduler.Policy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statsFor(policy).failures++
}

func (c *MetricCollector) ObserveCache(hit bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if hit {
		c.cacheHits++
	} else {
		c.cacheMiss++
	}
}

// Describe implements prometheus.Collector.
func (c *MetricCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.runsDesc
	ch <- c.failuresDesc
	ch <- c.processesDesc
	ch <- c.avgWaitingDesc
	ch <- c.avgTurnDesc
	ch <- c.makespanDesc
	ch <- c.cacheDesc
}

// Collect implements prometheus.Collector.
func (c *MetricCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for policy, s := range c.stats {
		p := policy.String()
		ch <- prometheus.MustNewConstMetric(c.runsDesc, prometheus.CounterValue, s.runs, p)
		ch <- prometheus.MustNewConstMetric(c.failuresDesc, prometheus.CounterValue, s.failures, p)
		ch <- prometheus.MustNewConstMetric(c.processesDesc, prometheus.CounterValue, s.processes, p)
		ch <- prometheus.MustNewConstMetric(c.avgWaitingDesc, prometheus.GaugeValue, s.lastAvgWaiting, p)
		ch <- prometheus.MustNewConstMetric(c.avgTurnDesc, prometheus.GaugeValue, s.lastAvgTurn, p)
		ch <- prometheus.MustNewConstMetric(c.makespanDesc, prometheus.GaugeValue, s.lastMakespan, p)
	}
	ch <- prometheus.MustNewConstMetric(c.cacheDesc, prometheus.CounterValue, c.cacheHits, "hit")
	ch <- prometheus.MustNewConstMetric(c.cacheDesc, prometheus.CounterValue, c.cacheMiss, "miss")
}

// registerCollector registers c with the default registry. When a collector
// with the same descriptors is already registered, that one is returned.
func registerCollector(c *MetricCollector) (*MetricCollector, error) {
	err := prometheus.Register(c)
	if err == nil {
		return c, nil
	}
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(*MetricCollector); ok {
			return existing, nil
		}
	}
	return nil, err
}
