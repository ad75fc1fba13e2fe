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

package list_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sbomvet/sbomvet/plugin"
	"github.com/sbomvet/sbomvet/plugin/list"
)

func TestFromName(t *testing.T) {
	p, err := list.FromName("compliance/ntia")
	if err != nil {
		t.Fatalf("FromName(): %v", err)
	}
	if got := p.Metadata().Name; got != "compliance/ntia" {
		t.Errorf("Metadata().Name = %q, want compliance/ntia", got)
	}

	if _, err := list.FromName("compliance/nope"); err == nil {
		t.Error("FromName() = nil error for an unknown plugin")
	}
}

func TestFromNamesDeduplicates(t *testing.T) {
	plugins, err := list.FromNames([]string{"compliance/ntia", "compliance/bsi", "compliance/ntia"})
	if err != nil {
		t.Fatalf("FromNames(): %v", err)
	}
	var names []string
	for _, p := range plugins {
		names = append(names, p.Metadata().Name)
	}
	want := []string{"compliance/ntia", "compliance/bsi"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("FromNames() diff (-want +got):\n%s", diff)
	}
}

func TestAll(t *testing.T) {
	want := []string{
		"compliance/bsi",
		"compliance/cra",
		"compliance/fda",
		"compliance/fsct",
		"compliance/ntia",
		"security/osv-scanner",
	}
	var names []string
	for _, p := range list.All() {
		names = append(names, p.Metadata().Name)
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("All() diff (-want +got):\n%s", diff)
	}
}

func TestFromCategory(t *testing.T) {
	for _, p := range list.FromCategory(plugin.CategorySecurity) {
		if got := p.Metadata().Category; got != plugin.CategorySecurity {
			t.Errorf("plugin %s category = %q, want security", p.Metadata().Name, got)
		}
	}
	if got := len(list.FromCategory(plugin.CategorySecurity)); got != 1 {
		t.Errorf("len(FromCategory(security)) = %d, want 1", got)
	}
	if got := len(list.FromCategory(plugin.CategoryCompliance)); got != 5 {
		t.Errorf("len(FromCategory(compliance)) = %d, want 5", got)
	}
}
