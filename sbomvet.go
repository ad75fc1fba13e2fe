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

// Package sbomvet provides an interface for running pluggable compliance and
// security assessments against SBOM documents. The orchestrator parses the
// document once, schedules enabled plugins on a bounded worker pool with
// cross-category dependency barriers, deduplicates runs by fingerprint and
// hands finished results to a persistence sink.
package sbomvet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gohugoio/hashstructure"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"golang.org/x/sync/semaphore"

	"github.com/sbomvet/sbomvet/document"
	"github.com/sbomvet/sbomvet/log"
	"github.com/sbomvet/sbomvet/plugin"
	"github.com/sbomvet/sbomvet/runstore"
	"github.com/sbomvet/sbomvet/stats"
)

// defaultMaxWorkers bounds plugin concurrency when the config doesn't.
const defaultMaxWorkers = 4

// ResultSink accepts finished (or failed) run records together with their
// results. It is implemented by the surrounding system, not by this module.
type ResultSink interface {
	Persist(ctx context.Context, rec *runstore.Record, result *plugin.Result) error
}

// Config stores the settings of an assessment run.
type Config struct {
	// Plugins to run, typically resolved through plugin/list for the
	// owning tenant.
	Plugins []plugin.Plugin
	// Store tracks run records and enforces the dedup guarantee.
	// Defaults to an in-memory store.
	Store runstore.Store
	// Optional: Sink receives every finished or failed run.
	Sink ResultSink
	// Optional: Stats allows to enter a metric hook. If left nil, no
	// metrics will be recorded.
	Stats stats.Collector
	// Optional: MaxWorkers bounds the number of concurrently running
	// plugins.
	MaxWorkers int
	// Optional: PluginConfig is the tenant's plugin configuration. Its
	// stable hash is part of every run fingerprint.
	PluginConfig any
}

// AssessmentReport is the aggregate outcome of one artifact assessment.
type AssessmentReport struct {
	ArtifactID string
	StartTime  time.Time
	EndTime    time.Time
	// Results holds one result per executed plugin, error results included.
	Results []*plugin.Result
	// Records holds the run records, including deduplicated runs that were
	// not re-executed.
	Records []*runstore.Record
}

// Orchestrator is the main entry point for running assessments.
type Orchestrator struct{}

// New creates a new orchestrator instance.
func New() *Orchestrator { return &Orchestrator{} }

// Assess runs the configured plugins against the SBOM file at sbomPath.
// Plugin failures never abort the batch; each failure is converted into an
// error result and a failed run record. The returned error covers
// orchestration problems only (store or sink failures).
func (o *Orchestrator) Assess(ctx context.Context, cfg *Config, artifactID, sbomPath string) (*AssessmentReport, error) {
	return o.assess(ctx, cfg, artifactID, sbomPath, "")
}

// EnqueueReassessment re-runs the configured plugins for an artifact, e.g.
// after the tenant's plugin enablement changed. The reason is folded into
// the run fingerprints so the dedup check doesn't suppress the new runs.
func (o *Orchestrator) EnqueueReassessment(ctx context.Context, cfg *Config, artifactID, sbomPath, reason string) (*AssessmentReport, error) {
	if reason == "" {
		return nil, errors.New("reassessment requires a reason")
	}
	return o.assess(ctx, cfg, artifactID, sbomPath, reason)
}

func (o *Orchestrator) assess(ctx context.Context, cfg *Config, artifactID, sbomPath, reason string) (report *AssessmentReport, err error) {
	store := cfg.Store
	if store == nil {
		store = runstore.NewMemory()
	}
	collector := cfg.Stats
	if collector == nil {
		collector = stats.NoopCollector{}
	}
	report = &AssessmentReport{ArtifactID: artifactID, StartTime: time.Now()}
	defer func() {
		report.EndTime = time.Now()
		summaries := make([]plugin.Summary, 0, len(report.Results))
		for _, r := range report.Results {
			summaries = append(summaries, r.Summary)
		}
		collector.AfterAssessment(artifactID, report.EndTime.Sub(report.StartTime), summaries)
	}()

	configHash, err := hashstructure.Hash(cfg.PluginConfig, nil)
	if err != nil {
		return report, fmt.Errorf("hashing plugin config: %w", err)
	}

	raw, err := os.ReadFile(sbomPath)
	if err != nil {
		return report, fmt.Errorf("reading SBOM %s: %w", sbomPath, err)
	}

	r := &runner{
		cfg:        cfg,
		store:      store,
		stats:      collector,
		artifactID: artifactID,
		configHash: configHash,
		reason:     reason,
		report:     report,
	}

	doc, parseErr := document.Parse(raw)
	if parseErr != nil {
		// Input errors are terminal for the whole assessment: every plugin
		// gets a single error finding and a failed run record, never
		// partial results.
		for _, p := range cfg.Plugins {
			r.recordInputError(ctx, p, parseErr)
		}
		return report, r.err
	}

	target := &plugin.Target{ArtifactID: artifactID, Path: sbomPath, Document: doc}
	r.schedule(ctx, target)
	return report, r.err
}

// runner carries the shared state of one assessment run.
type runner struct {
	cfg        *Config
	store      runstore.Store
	stats      stats.Collector
	artifactID string
	configHash uint64
	reason     string

	mu     sync.Mutex
	report *AssessmentReport
	err    error
	// passed/failed plugin names per category, for DependencyStatus.
	passing map[plugin.Category][]string
	failing map[plugin.Category][]string
	// pending plugins per category; a category is terminal at zero.
	pending map[plugin.Category]int
}

// schedule runs all plugins on a bounded worker pool. Plugins that depend on
// another category are held back until every enabled plugin of that category
// has reached a terminal state; this is a partial-order barrier, independent
// plugins keep running concurrently.
func (r *runner) schedule(ctx context.Context, target *plugin.Target) {
	r.passing = map[plugin.Category][]string{}
	r.failing = map[plugin.Category][]string{}
	r.pending = map[plugin.Category]int{}
	for _, p := range r.cfg.Plugins {
		r.pending[p.Metadata().Category]++
	}

	maxWorkers := r.cfg.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = defaultMaxWorkers
	}
	sem := semaphore.NewWeighted(int64(maxWorkers))
	var wg sync.WaitGroup

	var independent, dependent []plugin.Plugin
	for _, p := range r.cfg.Plugins {
		if reqs := p.Requirements(); reqs != nil && reqs.DependsOn != "" {
			dependent = append(dependent, p)
		} else {
			independent = append(independent, p)
		}
	}

	// Dependent plugins are launched by the barrier only once every plugin
	// of their required categories is terminal, so a worker slot is never
	// parked on a wait.
	var barrier *categoryBarrier
	launch := func(p plugin.Plugin, deps *plugin.DependencyStatus) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer barrier.done(p.Metadata().Category)
			if err := sem.Acquire(ctx, 1); err != nil {
				return
			}
			defer sem.Release(1)
			r.runOne(ctx, p, target, deps)
		}()
	}
	barrier = newCategoryBarrier(dependent, r.pending, launch, r.dependencyStatus)

	for _, p := range independent {
		launch(p, nil)
	}
	barrier.start()
	wg.Wait()
}

// dependencyStatus computes the cross-plugin status of a category once all
// its plugins are terminal.
func (r *runner) dependencyStatus(category plugin.Category) *plugin.DependencyStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	passing := append([]string(nil), r.passing[category]...)
	failing := append([]string(nil), r.failing[category]...)
	if len(passing) == 0 && len(failing) == 0 {
		// No plugin of this category ran; dependent plugins treat the
		// absence of a status as a warning condition.
		return nil
	}
	return &plugin.DependencyStatus{
		Category:       category,
		Satisfied:      len(passing) > 0,
		PassingPlugins: passing,
		FailedPlugins:  failing,
	}
}

// runOne executes a single plugin invocation end to end: fingerprint
// reservation, state transitions, panic containment, result validation,
// sink handoff and metrics.
func (r *runner) runOne(ctx context.Context, p plugin.Plugin, target *plugin.Target, deps *plugin.DependencyStatus) {
	md := p.Metadata()
	fp := runstore.Fingerprint{
		ArtifactID: r.artifactID,
		PluginName: md.Name,
		ConfigHash: r.configHash,
		Reason:     r.reason,
	}
	rec := &runstore.Record{
		ID:            uuid.NewString(),
		Fingerprint:   fp,
		PluginVersion: md.Version,
		State:         runstore.StatePending,
	}
	reserved, err := r.store.Reserve(rec)
	if err != nil {
		r.addErr(fmt.Errorf("reserving run for %s: %w", md.Name, err))
		return
	}
	if !reserved {
		r.stats.AfterRunDeduplicated(md.Name)
		log.Debugf("Skipping duplicate run of %s for artifact %s", md.Name, r.artifactID)
		// The prior run's outcome still feeds the category tallies, so
		// dependent plugins see the same DependencyStatus they would have
		// seen in the original orchestration. A record that is not yet
		// completed (another orchestration is mid-run) counts as failing,
		// keeping Satisfied conservative.
		passed := false
		if existing, ok, err := r.store.Get(fp); err == nil && ok {
			r.addRecord(existing)
			passed = existing.State == runstore.StateCompleted && existing.Passed
		}
		r.mu.Lock()
		if passed {
			r.passing[md.Category] = append(r.passing[md.Category], md.Name)
		} else {
			r.failing[md.Category] = append(r.failing[md.Category], md.Name)
		}
		r.mu.Unlock()
		return
	}

	if ctx.Err() != nil {
		// The run was abandoned before execution; drop the reservation.
		if err := r.store.Delete(fp); err != nil {
			r.addErr(fmt.Errorf("releasing abandoned run for %s: %w", md.Name, err))
		}
		return
	}

	rec.State = runstore.StateRunning
	rec.StartedAt = time.Now()
	if err := r.store.Update(rec); err != nil {
		r.addErr(fmt.Errorf("starting run for %s: %w", md.Name, err))
	}

	result, runErr := invoke(ctx, p, target, deps)
	runtime := time.Since(rec.StartedAt)
	r.stats.AfterPluginRun(md.Name, runtime, runErr)

	if runErr == nil {
		if err := plugin.ValidateResult(result); err != nil {
			runErr = fmt.Errorf("plugin %s returned an invalid result: %w", md.Name, err)
		}
	}
	if runErr != nil {
		log.Errorf("Plugin %s failed for artifact %s: %v", md.Name, r.artifactID, runErr)
		result = plugin.ResultFromErr(md, md.Name+"-run-error", runErr)
		rec.State = runstore.StateFailed
		rec.Error = runErr.Error()
	} else {
		rec.State = runstore.StateCompleted
		rec.Passed = result.Summary.FailCount == 0 && result.Summary.ErrorCount == 0
	}
	rec.FinishedAt = time.Now()
	rec.DurationMS = runtime.Milliseconds()
	if err := r.store.Update(rec); err != nil {
		r.addErr(fmt.Errorf("finishing run for %s: %w", md.Name, err))
	}

	if r.cfg.Sink != nil {
		err := r.cfg.Sink.Persist(ctx, rec, result)
		r.stats.AfterResultPersisted(md.Name, err)
		if err != nil {
			r.addErr(fmt.Errorf("persisting result of %s: %w", md.Name, err))
		}
	}

	r.mu.Lock()
	r.report.Results = append(r.report.Results, result)
	r.report.Records = append(r.report.Records, rec)
	if rec.Passed {
		r.passing[md.Category] = append(r.passing[md.Category], md.Name)
	} else {
		r.failing[md.Category] = append(r.failing[md.Category], md.Name)
	}
	r.mu.Unlock()
}

// invoke calls the plugin with panic containment: a panicking plugin is
// reported as an error instead of crashing the batch.
func invoke(ctx context.Context, p plugin.Plugin, target *plugin.Target, deps *plugin.DependencyStatus) (result *plugin.Result, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			result = nil
			err = fmt.Errorf("plugin panicked: %v", recovered)
		}
	}()
	return p.Assess(ctx, target, deps)
}

// recordInputError writes a failed run record and an error result for a
// plugin that could not run because the input document was unusable.
func (r *runner) recordInputError(ctx context.Context, p plugin.Plugin, inputErr error) {
	md := p.Metadata()
	fp := runstore.Fingerprint{
		ArtifactID: r.artifactID,
		PluginName: md.Name,
		ConfigHash: r.configHash,
		Reason:     r.reason,
	}
	rec := &runstore.Record{
		ID:            uuid.NewString(),
		Fingerprint:   fp,
		PluginVersion: md.Version,
		State:         runstore.StateFailed,
		StartedAt:     time.Now(),
		FinishedAt:    time.Now(),
		Error:         inputErr.Error(),
	}
	reserved, err := r.store.Reserve(rec)
	if err != nil {
		r.addErr(fmt.Errorf("recording input error for %s: %w", md.Name, err))
		return
	}
	if !reserved {
		r.stats.AfterRunDeduplicated(md.Name)
		return
	}
	result := plugin.ResultFromErr(md, md.Name+"-input-error", inputErr)
	if r.cfg.Sink != nil {
		err := r.cfg.Sink.Persist(ctx, rec, result)
		r.stats.AfterResultPersisted(md.Name, err)
		if err != nil {
			r.addErr(fmt.Errorf("persisting input error of %s: %w", md.Name, err))
		}
	}
	r.addRecord(rec)
	r.mu.Lock()
	r.report.Results = append(r.report.Results, result)
	r.mu.Unlock()
}

func (r *runner) addRecord(rec *runstore.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.report.Records = append(r.report.Records, rec)
}

func (r *runner) addErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = multierr.Append(r.err, err)
}
