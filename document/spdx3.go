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

	"github.com/tidwall/gjson"
)

// SPDX3Package is the Component view over an SPDX 3.x software_Package graph
// element. Reference fields (suppliedBy, license relationships) are resolved
// against the rest of the element graph; unresolvable references report
// absence.
type SPDX3Package struct {
	el  gjson.Result
	doc *Document
}

// Name returns the element name.
func (v SPDX3Package) Name() (string, bool) {
	name := v.el.Get("name").String()
	return name, name != ""
}

// Version returns the package version.
func (v SPDX3Package) Version() (string, bool) {
	version := v.el.Get("software_packageVersion").String()
	return version, version != ""
}

// Supplier resolves the suppliedBy agent reference to the agent's name,
// falling back to the originatedBy reference.
func (v SPDX3Package) Supplier() (string, bool) {
	for _, field := range []string{"suppliedBy", "originatedBy"} {
		if agent, ok := v.agent(field); ok {
			if name := agent.Get("name").String(); name != "" {
				return name, true
			}
		}
	}
	return "", false
}

// SupplierContact returns an email identifier of the supplying agent.
func (v SPDX3Package) SupplierContact() (string, bool) {
	agent, ok := v.agent("suppliedBy")
	if !ok {
		return "", false
	}
	return spdx3Email(agent)
}

// Identifiers returns the element's external identifiers filtered to the
// purl/CPE/SWID allow-list.
func (v SPDX3Package) Identifiers() []Identifier {
	var ids []Identifier
	for _, ext := range v.el.Get("externalIdentifier").Array() {
		kind, ok := spdx3IdentifierTypes[ext.Get("externalIdentifierType").String()]
		if !ok {
			continue
		}
		if value := ext.Get("identifier").String(); value != "" {
			ids = append(ids, Identifier{Kind: kind, Value: value})
		}
	}
	return ids
}

// Hashes returns the element's verifiedUsing hashes with normalized
// algorithm names.
func (v SPDX3Package) Hashes() []Hash {
	var hashes []Hash
	for _, h := range v.el.Get("verifiedUsing").Array() {
		value := h.Get("hashValue").String()
		if value == "" {
			continue
		}
		hashes = append(hashes, Hash{
			Algorithm: normalizeHashAlgorithm(h.Get("algorithm").String()),
			Value:     value,
		})
	}
	return hashes
}

// Licenses resolves hasDeclaredLicense and hasConcludedLicense relationships
// from this package to the names of the targeted license elements.
func (v SPDX3Package) Licenses() []string {
	spdxID := v.el.Get("spdxId").String()
	if spdxID == "" {
		return nil
	}
	var licenses []string
	for _, el := range v.doc.graph {
		if el.Get("type").String() != "Relationship" {
			continue
		}
		relType := el.Get("relationshipType").String()
		if relType != "hasDeclaredLicense" && relType != "hasConcludedLicense" {
			continue
		}
		if el.Get("from").String() != spdxID {
			continue
		}
		for _, to := range el.Get("to").Array() {
			if lic, ok := v.doc.spdx3Element(to.String()); ok {
				if name := lic.Get("name").String(); name != "" {
					licenses = append(licenses, name)
					continue
				}
			}
			// License expressions are commonly referenced by their SPDX
			// listed-license URI rather than a graph element.
			if id, ok := strings.CutPrefix(to.String(), "https://spdx.org/licenses/"); ok {
				licenses = append(licenses, id)
			}
		}
	}
	return licenses
}

// Copyright returns the copyright text of the element.
func (v SPDX3Package) Copyright() (string, bool) {
	text := v.el.Get("software_copyrightText").String()
	if text == "" || text == "NOASSERTION" {
		return "", false
	}
	return text, true
}

// agent resolves an agent reference field to its graph element.
func (v SPDX3Package) agent(field string) (gjson.Result, bool) {
	ref := v.el.Get(field).String()
	if ref == "" {
		return gjson.Result{}, false
	}
	return v.doc.spdx3Element(ref)
}

func (d *Document) spdx3Packages() []Component {
	var comps []Component
	for _, el := range d.graph {
		if el.Get("type").String() != "software_Package" {
			continue
		}
		comps = append(comps, SPDX3Package{el: el, doc: d})
	}
	return comps
}

// spdx3Element looks up a graph element by its spdxId.
func (d *Document) spdx3Element(spdxID string) (gjson.Result, bool) {
	for _, el := range d.graph {
		if el.Get("spdxId").String() == spdxID {
			return el, true
		}
	}
	return gjson.Result{}, false
}

func (d *Document) spdx3Creators() []string {
	var names []string
	for _, ref := range d.graphFirst("CreationInfo").Get("createdBy").Array() {
		if agent, ok := d.spdx3Element(ref.String()); ok {
			if name := agent.Get("name").String(); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

func (d *Document) spdx3CreatorContact() (string, bool) {
	for _, ref := range d.graphFirst("CreationInfo").Get("createdBy").Array() {
		if agent, ok := d.spdx3Element(ref.String()); ok {
			if email, ok := spdx3Email(agent); ok {
				return email, true
			}
		}
	}
	return "", false
}

// spdx3Email extracts an email external identifier from an agent element.
func spdx3Email(agent gjson.Result) (string, bool) {
	for _, ext := range agent.Get("externalIdentifier").Array() {
		if ext.Get("externalIdentifierType").String() != "email" {
			continue
		}
		if email := ext.Get("identifier").String(); email != "" {
			return email, true
		}
	}
	return "", false
}

func (d *Document) spdx3Lifecycles() []string {
	var phases []string
	for _, el := range d.graph {
		if el.Get("type").String() != "software_Sbom" {
			continue
		}
		for _, t := range el.Get("software_sbomType").Array() {
			if t.String() != "" {
				phases = append(phases, t.String())
			}
		}
	}
	return phases
}

func (d *Document) spdx3DependencyCount() int {
	n := 0
	for _, el := range d.graph {
		if el.Get("type").String() != "Relationship" {
			continue
		}
		if el.Get("relationshipType").String() == "dependsOn" {
			n += len(el.Get("to").Array())
		}
	}
	return n
}

func (d *Document) spdx3Completeness() (string, bool) {
	for _, el := range d.graph {
		if el.Get("type").String() != "Relationship" {
			continue
		}
		if el.Get("relationshipType").String() != "dependsOn" {
			continue
		}
		switch el.Get("completeness").String() {
		case "complete":
			return "complete", true
		case "incomplete":
			return "incomplete", true
		case "noAssertion":
			return "unknown", true
		}
	}
	return "", false
}
