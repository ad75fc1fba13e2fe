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

package document

import (
	"strings"

	"github.com/spdx/tools-golang/spdx"
)

// SPDX2Package is the Component view over an SPDX 2.x package.
type SPDX2Package struct {
	p *spdx.Package
}

// Name returns the package name.
func (v SPDX2Package) Name() (string, bool) {
	return v.p.PackageName, v.p.PackageName != ""
}

// Version returns the package version.
func (v SPDX2Package) Version() (string, bool) {
	return v.p.PackageVersion, v.p.PackageVersion != ""
}

// Supplier returns the package supplier, falling back to the originator.
// The SPDX NOASSERTION marker does not satisfy the requirement.
func (v SPDX2Package) Supplier() (string, bool) {
	if v.p.PackageSupplier != nil && usableSPDXValue(v.p.PackageSupplier.Supplier) {
		return v.p.PackageSupplier.Supplier, true
	}
	if v.p.PackageOriginator != nil && usableSPDXValue(v.p.PackageOriginator.Originator) {
		return v.p.PackageOriginator.Originator, true
	}
	return "", false
}

// SupplierContact returns the email embedded in the supplier field, if any.
// SPDX encodes contacts as "Name (email)".
func (v SPDX2Package) SupplierContact() (string, bool) {
	if v.p.PackageSupplier == nil {
		return "", false
	}
	return emailFromParens(v.p.PackageSupplier.Supplier)
}

// Identifiers returns the package's external references filtered to the
// purl/CPE/SWID allow-list.
func (v SPDX2Package) Identifiers() []Identifier {
	var ids []Identifier
	for _, ref := range v.p.PackageExternalReferences {
		if ref == nil {
			continue
		}
		kind, ok := spdx2RefTypes[ref.RefType]
		if !ok {
			continue
		}
		ids = append(ids, Identifier{Kind: kind, Value: ref.Locator})
	}
	return ids
}

// Hashes returns the package checksums with normalized algorithm names.
func (v SPDX2Package) Hashes() []Hash {
	var hashes []Hash
	for _, c := range v.p.PackageChecksums {
		if c.Value == "" {
			continue
		}
		hashes = append(hashes, Hash{
			Algorithm: normalizeHashAlgorithm(string(c.Algorithm)),
			Value:     c.Value,
		})
	}
	return hashes
}

// Licenses returns the concluded and declared license expressions.
func (v SPDX2Package) Licenses() []string {
	var licenses []string
	if usableSPDXValue(v.p.PackageLicenseConcluded) {
		licenses = append(licenses, v.p.PackageLicenseConcluded)
	}
	if usableSPDXValue(v.p.PackageLicenseDeclared) {
		licenses = append(licenses, v.p.PackageLicenseDeclared)
	}
	return licenses
}

// Copyright returns the package copyright text.
func (v SPDX2Package) Copyright() (string, bool) {
	if !usableSPDXValue(v.p.PackageCopyrightText) {
		return "", false
	}
	return v.p.PackageCopyrightText, true
}

func (d *Document) spdx2Packages() []Component {
	comps := make([]Component, 0, len(d.spdx2.Packages))
	for _, p := range d.spdx2.Packages {
		if p == nil {
			continue
		}
		comps = append(comps, SPDX2Package{p: p})
	}
	return comps
}

func (d *Document) spdx2Creators() []string {
	if d.spdx2.CreationInfo == nil {
		return nil
	}
	var persons, tools []string
	for _, c := range d.spdx2.CreationInfo.Creators {
		switch c.CreatorType {
		case "Person", "Organization":
			persons = append(persons, c.Creator)
		case "Tool":
			tools = append(tools, c.Creator)
		}
	}
	if len(persons) > 0 {
		return persons
	}
	return tools
}

func (d *Document) spdx2CreatorContact() (string, bool) {
	if d.spdx2.CreationInfo == nil {
		return "", false
	}
	for _, c := range d.spdx2.CreationInfo.Creators {
		if c.CreatorType != "Person" && c.CreatorType != "Organization" {
			continue
		}
		if email, ok := emailFromParens(c.Creator); ok {
			return email, true
		}
	}
	return "", false
}

// spdxLifecyclePhases are the phase names recognized in the SPDX creator
// comment. SPDX 2.x has no dedicated lifecycle field so producers record
// the phase in free text, e.g. "lifecycle: build".
var spdxLifecyclePhases = []string{
	"design", "pre-build", "build", "post-build", "operations", "discovery", "decommission",
}

func (d *Document) spdx2Lifecycles() []string {
	if d.spdx2.CreationInfo == nil {
		return nil
	}
	comment := strings.ToLower(d.spdx2.CreationInfo.CreatorComment)
	if !strings.Contains(comment, "lifecycle") {
		return nil
	}
	var phases []string
	for _, phase := range spdxLifecyclePhases {
		if strings.Contains(comment, phase) {
			phases = append(phases, phase)
		}
	}
	return phases
}

// spdx2DependencyRelationships lists the relationship types that count as
// dependency edges.
var spdx2DependencyRelationships = map[string]bool{
	"DEPENDS_ON":    true,
	"DEPENDENCY_OF": true,
}

func (d *Document) spdx2DependencyCount() int {
	n := 0
	for _, rel := range d.spdx2.Relationships {
		if rel == nil {
			continue
		}
		if spdx2DependencyRelationships[strings.ToUpper(rel.Relationship)] {
			n++
		}
	}
	return n
}

// spdx2Completeness derives the dependency completeness declaration from the
// SPDX special element values: a dependency relationship to NONE asserts
// that no further dependencies exist, NOASSERTION declares them unknown.
// Without either marker no explicit declaration was made.
func (d *Document) spdx2Completeness() (string, bool) {
	sawNone := false
	for _, rel := range d.spdx2.Relationships {
		if rel == nil || !spdx2DependencyRelationships[strings.ToUpper(rel.Relationship)] {
			continue
		}
		switch rel.RefB.SpecialID {
		case "NOASSERTION":
			return "unknown", true
		case "NONE":
			sawNone = true
		}
	}
	if sawNone {
		return "complete", true
	}
	return "", false
}

// usableSPDXValue reports whether an SPDX string field carries an actual
// value rather than being empty or one of the special markers.
func usableSPDXValue(s string) bool {
	return s != "" && s != "NOASSERTION" && s != "NONE"
}

// emailFromParens extracts an email address from the SPDX "Name (email)"
// convention.
func emailFromParens(s string) (string, bool) {
	open := strings.LastIndex(s, "(")
	end := strings.LastIndex(s, ")")
	if open < 0 || end < open {
		return "", false
	}
	email := strings.TrimSpace(s[open+1 : end])
	if !strings.Contains(email, "@") {
		return "", false
	}
	return email, true
}
