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

// Package purl parses and constructs package URLs and maps between purl
// types and OSV ecosystem names. It is a thin layer over the reference
// purl implementation; SBOM identifier checks and vulnerability finding
// correlation both go through it.
package purl

import (
	"strings"

	"github.com/package-url/packageurl-go"
)

// Purl types that appear in SBOM component identifiers and in scanner
// output. The full purl type catalog is much larger; anything outside
// this set still parses, it just has no OSV ecosystem mapping.
const (
	TypeApk      = "apk"
	TypeCargo    = "cargo"
	TypeComposer = "composer"
	TypeCran     = "cran"
	TypeDebian   = "deb"
	TypeGem      = "gem"
	TypeGolang   = "golang"
	TypeHex      = "hex"
	TypeMaven    = "maven"
	TypeNPM      = "npm"
	TypeNuget    = "nuget"
	TypePyPi     = "pypi"
	TypePub      = "pub"
	TypeSwift    = "swift"
)

// typeToEcosystem maps purl types to the ecosystem names used by the OSV
// schema. The mapping is not total in either direction: OS ecosystems
// carry a release OSV encodes into the ecosystem string itself.
var typeToEcosystem = map[string]string{
	TypeApk:      "Alpine",
	TypeCargo:    "crates.io",
	TypeComposer: "Packagist",
	TypeCran:     "CRAN",
	TypeDebian:   "Debian",
	TypeGem:      "RubyGems",
	TypeGolang:   "Go",
	TypeHex:      "Hex",
	TypeMaven:    "Maven",
	TypeNPM:      "npm",
	TypeNuget:    "NuGet",
	TypePyPi:     "PyPI",
	TypePub:      "Pub",
	TypeSwift:    "SwiftURL",
}

var ecosystemToType = func() map[string]string {
	m := make(map[string]string, len(typeToEcosystem))
	for t, e := range typeToEcosystem {
		m[e] = t
	}
	return m
}()

// Parse parses a purl string, applying the reference implementation's
// normalization rules (case folding per type, qualifier ordering).
func Parse(s string) (packageurl.PackageURL, error) {
	return packageurl.FromString(s)
}

// Valid reports whether s is a syntactically valid purl.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Ecosystem returns the OSV ecosystem name for a purl type, e.g.
// "golang" -> "Go". The second return is false for unmapped types.
func Ecosystem(purlType string) (string, bool) {
	e, ok := typeToEcosystem[strings.ToLower(purlType)]
	return e, ok
}

// FromEcosystem builds a purl string for a package reported by a
// vulnerability scanner under an OSV ecosystem name. OSV suffixes OS
// ecosystems with a release (e.g. "Alpine:v3.20"); the suffix is
// dropped for type resolution and kept as a distro qualifier. Returns
// "" when the ecosystem has no purl type mapping.
func FromEcosystem(ecosystem, name, version string) string {
	base, release, _ := strings.Cut(ecosystem, ":")
	purlType, ok := ecosystemToType[base]
	if !ok {
		return ""
	}
	namespace := ""
	// Maven and Go package names carry their namespace inline.
	switch purlType {
	case TypeMaven:
		if group, artifact, ok := strings.Cut(name, ":"); ok {
			namespace, name = group, artifact
		}
	case TypeGolang:
		if i := strings.LastIndex(name, "/"); i >= 0 {
			namespace, name = name[:i], name[i+1:]
		}
	}
	var qualifiers packageurl.Qualifiers
	if release != "" {
		qualifiers = packageurl.Qualifiers{{Key: "distro", Value: release}}
	}
	return packageurl.NewPackageURL(purlType, namespace, name, version, qualifiers, "").ToString()
}
