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

package bsi_test

import (
	"context"
	"testing"

	"github.com/sbomvet/sbomvet/plugin"
	"github.com/sbomvet/sbomvet/testing/testsbom"
	"github.com/sbomvet/sbomvet/validator/bsi"
)

func assess(t *testing.T, raw []byte) *plugin.Result {
	t.Helper()
	target := &plugin.Target{ArtifactID: "test", Document: testsbom.Parse(t, raw)}
	result, err := bsi.New().Assess(context.Background(), target, nil)
	if err != nil {
		t.Fatalf("Assess(): %v", err)
	}
	if err := plugin.ValidateResult(result); err != nil {
		t.Fatalf("ValidateResult(): %v", err)
	}
	return result
}

func findingByID(t *testing.T, result *plugin.Result, id string) *plugin.Finding {
	t.Helper()
	for _, f := range result.Findings {
		if f.ID == id {
			return f
		}
	}
	t.Fatalf("result has no finding %q", id)
	return nil
}

func TestAssessConformingDocuments(t *testing.T) {
	for name, raw := range testsbom.All() {
		t.Run(name, func(t *testing.T) {
			result := assess(t, raw)
			if result.Summary.FailCount != 0 {
				t.Errorf("Summary.FailCount = %d, want 0; findings: %+v", result.Summary.FailCount, result.Findings)
			}
			if result.Summary.PassCount != 12 {
				t.Errorf("Summary.PassCount = %d, want 12", result.Summary.PassCount)
			}
		})
	}
}

func TestAssessFormatVersion(t *testing.T) {
	tests := []struct {
		name       string
		raw        []byte
		wantStatus plugin.Status
	}{
		{name: "cyclonedx_1.5", raw: testsbom.CycloneDX(), wantStatus: plugin.StatusPass},
		{
			name:       "cyclonedx_1.4_too_old",
			raw:        testsbom.With(t, testsbom.CycloneDX(), "specVersion", "1.4"),
			wantStatus: plugin.StatusFail,
		},
		{name: "spdx_2.3", raw: testsbom.SPDX2(), wantStatus: plugin.StatusPass},
		{
			name:       "spdx_2.2_too_old",
			raw:        testsbom.With(t, testsbom.SPDX2(), "spdxVersion", "SPDX-2.2"),
			wantStatus: plugin.StatusFail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := assess(t, tt.raw)
			if f := findingByID(t, result, "bsi-format-version"); f.Status != tt.wantStatus {
				t.Errorf("bsi-format-version status = %q, want %q", f.Status, tt.wantStatus)
			}
			// A legacy format version never short-circuits the remaining
			// rules.
			if got := len(result.Findings); got != 12 {
				t.Errorf("len(Findings) = %d, want 12", got)
			}
		})
	}
}

func TestAssessCreatorContact(t *testing.T) {
	raw := testsbom.With(t, testsbom.SPDX2(), "creationInfo.creators.0", "Organization: Acme Corp")
	result := assess(t, raw)
	if f := findingByID(t, result, "bsi-sbom-creator-contact"); f.Status != plugin.StatusFail {
		t.Errorf("bsi-sbom-creator-contact status = %q, want fail without an email", f.Status)
	}
}

func TestAssessHashPrefersSHA512(t *testing.T) {
	// SHA-256 alone satisfies the checksum requirement only partially.
	raw := testsbom.Without(t, testsbom.CycloneDX(), "components.0.hashes.1")
	raw = testsbom.Without(t, raw, "components.1.hashes.1")
	result := assess(t, raw)
	if f := findingByID(t, result, "bsi-component-hash"); f.Status != plugin.StatusWarning {
		t.Errorf("bsi-component-hash status = %q, want warning for SHA-256 only", f.Status)
	}
}

func TestAssessLicense(t *testing.T) {
	raw := testsbom.Without(t, testsbom.CycloneDX(), "components.1.licenses")
	result := assess(t, raw)
	f := findingByID(t, result, "bsi-component-license")
	if f.Status != plugin.StatusFail {
		t.Errorf("bsi-component-license status = %q, want fail", f.Status)
	}
}
