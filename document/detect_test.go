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

package document_test

import (
	"errors"
	"testing"

	"github.com/sbomvet/sbomvet/document"
	"github.com/sbomvet/sbomvet/testing/testsbom"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name        string
		raw         []byte
		wantFormat  document.Format
		wantVersion string
		wantErr     error
	}{
		{
			name:        "cyclonedx",
			raw:         testsbom.CycloneDX(),
			wantFormat:  document.FormatCycloneDX,
			wantVersion: "1.5",
		},
		{
			name:        "cyclonedx_without_bomformat",
			raw:         []byte(`{"specVersion": "1.4", "components": []}`),
			wantFormat:  document.FormatCycloneDX,
			wantVersion: "1.4",
		},
		{
			name:        "spdx2",
			raw:         testsbom.SPDX2(),
			wantFormat:  document.FormatSPDX2,
			wantVersion: "2.3",
		},
		{
			name:        "spdx3_jsonld",
			raw:         testsbom.SPDX3(),
			wantFormat:  document.FormatSPDX3,
			wantVersion: "3.0.1",
		},
		{
			name:        "spdx3_via_spdxversion_field",
			raw:         []byte(`{"spdxVersion": "SPDX-3.0"}`),
			wantFormat:  document.FormatSPDX3,
			wantVersion: "3.0",
		},
		{
			name:        "spdx3_jsonld_without_creationinfo",
			raw:         []byte(`{"@context": "https://spdx.org/rdf/3.0.1/spdx-context.jsonld", "@graph": []}`),
			wantFormat:  document.FormatSPDX3,
			wantVersion: "3.0",
		},
		{
			name:       "malformed_json",
			raw:        []byte(`{"bomFormat": "CycloneDX"`),
			wantFormat: document.FormatUnknown,
			wantErr:    document.ErrMalformedJSON,
		},
		{
			name:       "unknown_format",
			raw:        []byte(`{"hello": "world"}`),
			wantFormat: document.FormatUnknown,
			wantErr:    document.ErrUnknownFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, version, err := document.Detect(tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Detect() error = %v, want %v", err, tt.wantErr)
			}
			if format != tt.wantFormat {
				t.Errorf("Detect() format = %q, want %q", format, tt.wantFormat)
			}
			if version != tt.wantVersion {
				t.Errorf("Detect() version = %q, want %q", version, tt.wantVersion)
			}
		})
	}
}
