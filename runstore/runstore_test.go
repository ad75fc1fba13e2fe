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

package runstore_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/sbomvet/sbomvet/runstore"
)

func TestFingerprintKey(t *testing.T) {
	base := runstore.Fingerprint{ArtifactID: "a", PluginName: "p", ConfigHash: 42}
	same := runstore.Fingerprint{ArtifactID: "a", PluginName: "p", ConfigHash: 42}
	if base.Key() != same.Key() {
		t.Errorf("equal fingerprints produced different keys: %q vs %q", base.Key(), same.Key())
	}

	variants := []runstore.Fingerprint{
		{ArtifactID: "b", PluginName: "p", ConfigHash: 42},
		{ArtifactID: "a", PluginName: "q", ConfigHash: 42},
		{ArtifactID: "a", PluginName: "p", ConfigHash: 43},
		{ArtifactID: "a", PluginName: "p", ConfigHash: 42, Reason: "config-change"},
	}
	for _, v := range variants {
		if v.Key() == base.Key() {
			t.Errorf("fingerprint %+v collides with %+v", v, base)
		}
	}
}

func TestMemoryReserve(t *testing.T) {
	store := runstore.NewMemory()
	fp := runstore.Fingerprint{ArtifactID: "a", PluginName: "p", ConfigHash: 1}

	reserved, err := store.Reserve(&runstore.Record{ID: "first", Fingerprint: fp, State: runstore.StatePending})
	if err != nil || !reserved {
		t.Fatalf("Reserve() = %t, %v, want true, nil", reserved, err)
	}

	reserved, err = store.Reserve(&runstore.Record{ID: "second", Fingerprint: fp, State: runstore.StatePending})
	if err != nil || reserved {
		t.Fatalf("second Reserve() = %t, %v, want false, nil", reserved, err)
	}

	rec, ok, err := store.Get(fp)
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %t, %v", rec, ok, err)
	}
	if rec.ID != "first" {
		t.Errorf("Get().ID = %q, the losing Reserve must not overwrite the record", rec.ID)
	}
}

func TestMemoryReserveConcurrent(t *testing.T) {
	store := runstore.NewMemory()
	fp := runstore.Fingerprint{ArtifactID: "a", PluginName: "p", ConfigHash: 1}

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
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

func TestMemoryUpdateAndDelete(t *testing.T) {
	store := runstore.NewMemory()
	fp := runstore.Fingerprint{ArtifactID: "a", PluginName: "p", ConfigHash: 1}
	rec := &runstore.Record{ID: "r", Fingerprint: fp, State: runstore.StatePending}

	if _, err := store.Reserve(rec); err != nil {
		t.Fatalf("Reserve(): %v", err)
	}

	rec.State = runstore.StateCompleted
	if err := store.Update(rec); err != nil {
		t.Fatalf("Update(): %v", err)
	}
	got, ok, err := store.Get(fp)
	if err != nil || !ok || got.State != runstore.StateCompleted {
		t.Fatalf("Get() after Update = %+v, %t, %v, want completed state", got, ok, err)
	}

	if err := store.Delete(fp); err != nil {
		t.Fatalf("Delete(): %v", err)
	}
	if _, ok, _ := store.Get(fp); ok {
		t.Error("Get() after Delete still finds the record")
	}
	if reserved, _ := store.Reserve(rec); !reserved {
		t.Error("Reserve() after Delete should succeed again")
	}
}
