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

// Package stats contains the interface used to collect metrics from
// assessment runs. It can be implemented with different metric backends to
// enable monitoring of the orchestrator.
package stats

import (
	"time"

	"github.com/sbomvet/sbomvet/plugin"
)

// Collector is notified when orchestration events occur.
type Collector interface {
	// AfterPluginRun is called once per plugin invocation with its runtime
	// and error outcome.
	AfterPluginRun(pluginName string, runtime time.Duration, err error)
	// AfterAssessment is called once per artifact assessment with the
	// aggregate summaries of all plugin results.
	AfterAssessment(artifactID string, runtime time.Duration, summaries []plugin.Summary)
	// AfterRunDeduplicated is called when a run request was dropped because
	// its fingerprint was already reserved.
	AfterRunDeduplicated(pluginName string)
	// AfterResultPersisted is called after a result was handed to the sink.
	AfterResultPersisted(pluginName string, err error)
}

// NoopCollector implements Collector by doing nothing.
type NoopCollector struct{}

// AfterPluginRun implements Collector by doing nothing.
func (NoopCollector) AfterPluginRun(pluginName string, runtime time.Duration, err error) {}

// AfterAssessment implements Collector by doing nothing.
func (NoopCollector) AfterAssessment(artifactID string, runtime time.Duration, summaries []plugin.Summary) {
}

// AfterRunDeduplicated implements Collector by doing nothing.
func (NoopCollector) AfterRunDeduplicated(pluginName string) {}

// AfterResultPersisted implements Collector by doing nothing.
func (NoopCollector) AfterResultPersisted(pluginName string, err error) {}
