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

package prometheus_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/sbomvet/sbomvet/plugin"
	promstats "github.com/sbomvet/sbomvet/stats/prometheus"
)

func TestCollectorRecordsRuns(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := promstats.NewCollector(reg)

	c.AfterPluginRun("compliance/ntia", 120*time.Millisecond, nil)
	c.AfterPluginRun("compliance/ntia", 80*time.Millisecond, nil)
	c.AfterPluginRun("security/osv-scanner", time.Second, errors.New("binary missing"))
	c.AfterRunDeduplicated("compliance/ntia")
	c.AfterResultPersisted("compliance/ntia", nil)
	c.AfterResultPersisted("security/osv-scanner", errors.New("datastore down"))

	want := strings.NewReader(`
# HELP sbomvet_plugin_runs_total Number of plugin invocations by outcome
# TYPE sbomvet_plugin_runs_total counter
sbomvet_plugin_runs_total{outcome="success",plugin="compliance/ntia"} 2
sbomvet_plugin_runs_total{outcome="error",plugin="security/osv-scanner"} 1
# HELP sbomvet_deduplicated_runs_total Number of run requests dropped because the fingerprint was already reserved
# TYPE sbomvet_deduplicated_runs_total counter
sbomvet_deduplicated_runs_total{plugin="compliance/ntia"} 1
# HELP sbomvet_result_persist_errors_total Number of failures handing results to the persistence sink
# TYPE sbomvet_result_persist_errors_total counter
sbomvet_result_persist_errors_total{plugin="security/osv-scanner"} 1
`)
	err := testutil.GatherAndCompare(reg, want,
		"sbomvet_plugin_runs_total",
		"sbomvet_deduplicated_runs_total",
		"sbomvet_result_persist_errors_total")
	if err != nil {
		t.Errorf("metric mismatch: %v", err)
	}

	got, err := testutil.GatherAndCount(reg, "sbomvet_plugin_run_duration_seconds")
	if err != nil {
		t.Fatalf("gathering duration histogram: %v", err)
	}
	if got != 2 {
		t.Errorf("duration histogram has %d series, want 2", got)
	}
}

func TestCollectorRecordsAssessmentTotals(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := promstats.NewCollector(reg)

	c.AfterAssessment("artifact-1", 3*time.Second, []plugin.Summary{
		{TotalFindings: 7, PassCount: 5, FailCount: 1, WarningCount: 1},
		{TotalFindings: 2, PassCount: 1, ErrorCount: 1},
	})

	want := strings.NewReader(`
# HELP sbomvet_assessment_findings Finding counts of the most recent assessment per artifact
# TYPE sbomvet_assessment_findings gauge
sbomvet_assessment_findings{artifact="artifact-1",status="pass"} 6
sbomvet_assessment_findings{artifact="artifact-1",status="fail"} 1
sbomvet_assessment_findings{artifact="artifact-1",status="warning"} 1
sbomvet_assessment_findings{artifact="artifact-1",status="error"} 1
`)
	if err := testutil.GatherAndCompare(reg, want, "sbomvet_assessment_findings"); err != nil {
		t.Errorf("metric mismatch: %v", err)
	}
}
