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

package purl_test

import (
	"testing"

	"github.com/sbomvet/sbomvet/purl"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantType string
		wantName string
		wantErr  bool
	}{
		{
			name:     "golang_with_namespace",
			input:    "pkg:golang/alpha.example/libalpha@1.2.3",
			wantType: "golang",
			wantName: "libalpha",
		},
		{
			name:     "maven_group_artifact",
			input:    "pkg:maven/org.apache.commons/commons-text@1.10.0",
			wantType: "maven",
			wantName: "commons-text",
		},
		{
			name:     "alpine_with_qualifiers",
			input:    "pkg:apk/alpine/busybox@1.36.1-r5?distro=v3.19",
			wantType: "apk",
			wantName: "busybox",
		},
		{
			name:    "missing_scheme",
			input:   "golang/libalpha@1.2.3",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := purl.Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %v, want error", tt.input, p)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.input, err)
			}
			if p.Type != tt.wantType || p.Name != tt.wantName {
				t.Errorf("Parse(%q) = type %q name %q, want %q %q", tt.input, p.Type, p.Name, tt.wantType, tt.wantName)
			}
		})
	}
}

func TestValid(t *testing.T) {
	if !purl.Valid("pkg:npm/%40angular/core@17.0.0") {
		t.Error("Valid() = false for a well-formed npm purl")
	}
	if purl.Valid("not a purl") {
		t.Error("Valid() = true for garbage input")
	}
}

func TestEcosystem(t *testing.T) {
	tests := []struct {
		purlType string
		want     string
		wantOK   bool
	}{
		{"golang", "Go", true},
		{"PyPi", "PyPI", true},
		{"cargo", "crates.io", true},
		{"generic", "", false},
	}
	for _, tt := range tests {
		got, ok := purl.Ecosystem(tt.purlType)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Ecosystem(%q) = %q, %t, want %q, %t", tt.purlType, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestFromEcosystem(t *testing.T) {
	tests := []struct {
		name      string
		ecosystem string
		pkg       string
		version   string
		want      string
	}{
		{
			name:      "go_module_path",
			ecosystem: "Go",
			pkg:       "alpha.example/libalpha",
			version:   "1.2.3",
			want:      "pkg:golang/alpha.example/libalpha@1.2.3",
		},
		{
			name:      "maven_coordinates",
			ecosystem: "Maven",
			pkg:       "org.apache.commons:commons-text",
			version:   "1.10.0",
			want:      "pkg:maven/org.apache.commons/commons-text@1.10.0",
		},
		{
			name:      "alpine_release_becomes_distro_qualifier",
			ecosystem: "Alpine:v3.19",
			pkg:       "busybox",
			version:   "1.36.1-r5",
			want:      "pkg:apk/busybox@1.36.1-r5?distro=v3.19",
		},
		{
			name:      "npm",
			ecosystem: "npm",
			pkg:       "lodash",
			version:   "4.17.21",
			want:      "pkg:npm/lodash@4.17.21",
		},
		{
			name:      "unmapped_ecosystem",
			ecosystem: "GitHub Actions",
			pkg:       "actions/checkout",
			version:   "4",
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := purl.FromEcosystem(tt.ecosystem, tt.pkg, tt.version)
			if got != tt.want {
				t.Errorf("FromEcosystem(%q, %q, %q) = %q, want %q", tt.ecosystem, tt.pkg, tt.version, got, tt.want)
			}
		})
	}
}
