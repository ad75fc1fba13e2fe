// Copyright 2026 The sbomvet Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package prometheus implements the stats.Collector interface on top of
// Prometheus metrics.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sbomvet/sbomvet/plugin"
)

// Collector records orchestration events as Prometheus metrics.
type Collector struct {
	pluginRuns     *prometheus.CounterVec
	pluginDuration *prometheus.HistogramVec
	dedupedRuns    *prometheus.CounterVec
	persistErrors  *prometheus.CounterVec
	findingCounts  *prometheus.GaugeVec
}

// NewCollector builds a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		pluginRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sbomvet_plugin_runs_total",
				Help: "Number of plugin invocations by outcome",
			},
			[]string{"plugin", "outcome"},
		),
		pluginDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sbomvet_plugin_run_duration_seconds",
				Help:    "Runtime of plugin invocations",
				Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
			},
			[]string{"plugin"},
		),
		dedupedRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sbomvet_deduplicated_runs_total",
				Help: "Number of run requests dropped because the fingerprint was already reserved",
			},
			[]string{"plugin"},
		),
		persistErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sbomvet_result_persist_errors_total",
				Help: "Number of failures handing results to the persistence sink",
			},
			[]string{"plugin"},
		),
		findingCounts: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sbomvet_assessment_findings",
				Help: "Finding counts of the most recent assessment per artifact",
			},
			[]string{"artifact", "status"},
		),
	}
	reg.MustRegister(c.pluginRuns, c.pluginDuration, c.dedupedRuns, c.persistErrors, c.findingCounts)
	return c
}

// AfterPluginRun implements stats.Collector.
func (c *Collector) AfterPluginRun(pluginName string, runtime time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.pluginRuns.WithLabelValues(pluginName, outcome).Inc()
	c.pluginDuration.WithLabelValues(pluginName).Observe(runtime.Seconds())
}

// AfterAssessment implements stats.Collector.
func (c *Collector) AfterAssessment(artifactID string, runtime time.Duration, summaries []plugin.Summary) {
	total := plugin.Summary{}
	for _, s := range summaries {
		total.TotalFindings += s.TotalFindings
		total.PassCount += s.PassCount
		total.FailCount += s.FailCount
		total.WarningCount += s.WarningCount
		total.ErrorCount += s.ErrorCount
	}
	c.findingCounts.WithLabelValues(artifactID, "pass").Set(float64(total.PassCount))
	c.findingCounts.WithLabelValues(artifactID, "fail").Set(float64(total.FailCount))
	c.findingCounts.WithLabelValues(artifactID, "warning").Set(float64(total.WarningCount))
	c.findingCounts.WithLabelValues(artifactID, "error").Set(float64(total.ErrorCount))
}

// AfterRunDeduplicated implements stats.Collector.
func (c *Collector) AfterRunDeduplicated(pluginName string) {
	c.dedupedRuns.WithLabelValues(pluginName).Inc()
}

// AfterResultPersisted implements stats.Collector.
func (c *Collector) AfterResultPersisted(pluginName string, err error) {
	if err != nil {
		c.persistErrors.WithLabelValues(pluginName).Inc()
	}
}
