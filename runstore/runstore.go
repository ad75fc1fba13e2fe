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

// Package runstore tracks assessment run records keyed by their fingerprint
// and provides the atomic check-and-reserve semantics the orchestrator's
// deduplication guarantee relies on.
package runstore

import (
	"fmt"
	"sync"
	"time"
)

// State is the lifecycle state of one assessment run.
type State string

// State values. pending and running are transient; completed and failed are
// terminal.
const (
	StatePending   State = "pending"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

// Fingerprint identifies one (artifact, plugin, configuration) run. Two run
// requests with equal fingerprints are duplicates of each other.
type Fingerprint struct {
	ArtifactID string `json:"artifact_id"`
	PluginName string `json:"plugin_name"`
	// ConfigHash is a stable hash of the plugin configuration.
	ConfigHash uint64 `json:"config_hash"`
	// Reason distinguishes deliberate re-assessments from the initial run.
	Reason string `json:"reason,omitempty"`
}

// Key returns the storage key of the fingerprint.
func (f Fingerprint) Key() string {
	return fmt.Sprintf("%s|%s|%d|%s", f.ArtifactID, f.PluginName, f.ConfigHash, f.Reason)
}

// Record is the persisted state of one assessment run.
type Record struct {
	ID            string      `json:"id"`
	Fingerprint   Fingerprint `json:"fingerprint"`
	PluginVersion string      `json:"plugin_version"`
	State         State       `json:"state"`
	StartedAt     time.Time   `json:"started_at,omitempty"`
	FinishedAt    time.Time   `json:"finished_at,omitempty"`
	DurationMS    int64       `json:"duration_ms,omitempty"`
	// Passed reports whether the completed run ended with zero fail and
	// zero error findings. Dependent-category gating reads it back when a
	// later orchestration deduplicates against this record.
	Passed bool `json:"passed,omitempty"`
	// Error holds the failure reason of a failed run.
	Error string `json:"error,omitempty"`
}

// Store persists run records. Implementations must make Reserve atomic with
// respect to concurrent calls for the same fingerprint.
type Store interface {
	// Reserve creates the record if no record with the same fingerprint
	// exists yet. It reports false, without modifying anything, when the
	// fingerprint is already reserved.
	Reserve(rec *Record) (bool, error)
	// Update overwrites the record with the same fingerprint.
	Update(rec *Record) error
	// Get returns the record for the fingerprint, if one exists.
	Get(fp Fingerprint) (*Record, bool, error)
	// Delete removes a reservation, e.g. when a reserved run is abandoned
	// before execution.
	Delete(fp Fingerprint) error
}

// Memory is an in-process Store for tests and single-process deployments.
type Memory struct {
	mu      sync.Mutex
	records map[string]Record
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: map[string]Record{}}
}

// Reserve implements Store.
func (m *Memory) Reserve(rec *Record) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := rec.Fingerprint.Key()
	if _, exists := m.records[key]; exists {
		return false, nil
	}
	m.records[key] = *rec
	return true, nil
}

// Update implements Store.
func (m *Memory) Update(rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.Fingerprint.Key()] = *rec
	return nil
}

// Get implements Store.
func (m *Memory) Get(fp Fingerprint) (*Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[fp.Key()]
	if !ok {
		return nil, false, nil
	}
	return &rec, true, nil
}

// Delete implements Store.
func (m *Memory) Delete(fp Fingerprint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, fp.Key())
	return nil
}
