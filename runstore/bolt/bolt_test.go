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

package bolt_test

import (
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/sbomvet/sbomvet/runstore"
	"github.com/sbomvet/sbomvet/runstore/bolt"
)

func openStore(t *testing.T) *bolt.Store {
	t.Helper()
	store, err := bolt.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open(): %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close(): %v", err)
		}
	})
	return store
}

func TestReserveRoundTrip(t *testing.T) {
	store := openStore(t)
	fp := runstore.Fingerprint{ArtifactID: "a", PluginName: "compliance/ntia", ConfigHash: 7}
	rec := &runstore.Record{
		ID:            "run-1",
		Fingerprint:   fp,
		PluginVersion: "1.0.0",
		State:         runstore.StatePending,
	}

	reserved, err := store.Reserve(rec)
	if err != nil || !reserved {
		t.Fatalf("Reserve() = %t, %v, want true, nil", reserved, err)
	}
	if reserved, _ := store.Reserve(rec); reserved {
		t.Fatal("second Reserve() succeeded, want duplicate rejection")
	}

	rec.State = runstore.StateCompleted
	rec.Passed = true
	rec.StartedAt = time.Now().UTC().Truncate(time.Millisecond)
	rec.FinishedAt = rec.StartedAt.Add(120 * time.Millisecond)
	rec.DurationMS = 120
	if err := store.Update(rec); err != nil {
		t.Fatalf("Update(): %v", err)
	}

	got, ok, err := store.Get(fp)
	if err != nil || !ok {
		t.Fatalf("Get() = %+v, %t, %v", got, ok, err)
	}
	if diff := cmp.Diff(rec, got); diff != "" {
		t.Errorf("Get() diff (-want +got):\n%s", diff)
	}

	if err := store.Delete(fp); err != nil {
		t.Fatalf("Delete(): %v", err)
	}
	if _, ok, _ := store.Get(fp); ok {
		t.Error("Get() after Delete still finds the record")
	}
}

func TestReserveConcurrent(t *testing.T) {
	store := openStore(t)
	fp := runstore.Fingerprint{ArtifactID: "a", PluginName: "p", ConfigHash: 1}

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reserved, err := store.Reserve(&runstore.Record{Fingerprint: fp, State: runstore.StatePending})
			if err != nil {
				t.Errorf("Reserve(): %v", err)
			}
			if reserved {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	if wins.Load() != 1 {
		t.Errorf("%d concurrent Reserve() calls won, want exactly 1", wins.Load())
	}
}
